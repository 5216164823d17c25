package database

import (
	"fmt"
	"time"

	"stocktracker/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the gorm pool. Callers that own the schema run Migrate.
func NewConnection(dsn string, debug bool) (*gorm.DB, error) {
	cfg := &gorm.Config{PrepareStmt: true}
	if !debug {
		cfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate creates or updates the tables backing every collection
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Item{},
		&model.UsageRecord{},
		&model.Supplier{},
		&model.AuditLog{},
		&model.StockMovement{},
	)
}
