package database

import (
	"fmt"

	"gorm.io/gorm"
	"taskpro-api/internal/repository"
)

// AutoMigrate runs GORM auto-migration for the key-value document table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repository.AppDocument{}); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
