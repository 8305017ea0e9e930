package database

import (
	"fmt"

	"github.com/stratocost/stratocost/internal/common/config"

	"gorm.io/driver/postgres"
)

// NewPostgres creates a new PostgreSQL-backed Database
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	db, err := newGormDB(postgres.Open(cfg.GetDSN()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
