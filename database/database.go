// Package database owns the gorm connection and schema migration.
// File: database/database.go
package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"go-trip-ops/config"
	"go-trip-ops/logger"
	"go-trip-ops/models"
)

// DB is the shared gorm handle, set by Connect.
var DB *gorm.DB

// Connect opens the Postgres connection and migrates the schema.
// If the DB is unreachable the process dies immediately (early fail).
func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Error.Fatalf("Connect: failed to connect database: %v", err)
	}
	DB = db

	if err := db.AutoMigrate(
		&models.Trip{},
		&models.TripSession{},
		&models.Participant{},
		&models.AttendanceRecord{},
		&models.BadgeDefinition{},
		&models.ParticipantBadge{},
		&models.GalleryItem{},
		&models.AdminUser{},
	); err != nil {
		logger.Error.Fatalf("Connect: auto migrate failed: %v", err)
	}

	logger.Info.Printf("Connect: database %s ready", cfg.DBName)
	return db
}
