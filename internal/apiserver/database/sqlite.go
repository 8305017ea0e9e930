package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stratocost/stratocost/internal/common/config"

	"github.com/glebarez/sqlite"
)

// NewSQLite creates a new SQLite-backed Database
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	dir := filepath.Dir(cfg.DBName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := newGormDB(sqlite.Open(cfg.DBName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
