package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase opens the record store. By default this is a single-file
// SQLite database at DATABASE_PATH; setting DATABASE_URL to a postgres://
// URL switches to the PostgreSQL driver for hosted deployments.
func ConnectDatabase() error {
	var dialector gorm.Dialector

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" && (strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")) {
		log.Println("Using PostgreSQL database from DATABASE_URL")
		dialector = postgres.Open(databaseURL)
	} else {
		databasePath := os.Getenv("DATABASE_PATH")
		if databasePath == "" {
			databasePath = "./data/app.db"
			log.Println("DATABASE_PATH not set, using default:", databasePath)
		}

		// Make sure the data directory exists before opening the file
		if dir := filepath.Dir(databasePath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
		}

		log.Println("Opening database at:", databasePath)
		dialector = sqlite.Open(databasePath)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
