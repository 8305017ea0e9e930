package database

import (
	"fmt"

	"github.com/stratocost/stratocost/internal/common/config"

	"gorm.io/driver/mysql"
)

// NewMySQL creates a new MySQL-backed Database
func NewMySQL(cfg *config.DatabaseConfig) (Database, error) {
	db, err := newGormDB(mysql.Open(cfg.GetDSN()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
