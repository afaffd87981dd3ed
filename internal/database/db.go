package database

import (
	"fmt"
	"log"

	"laundrybill/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection initializes a new connection pool using GORM and migrates the schema.
func NewConnection(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate creates or updates the tables for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.ShopProfile{},
		&model.LaundryItem{},
		&model.Bill{},
		&model.BillLineItem{},
		&model.UserAccount{},
		&model.AuditLog{},
	)
}
