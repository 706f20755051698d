package config

import (
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the database backing durable client-side storage.
// postgres:// and postgresql:// URLs use the PostgreSQL driver; anything else is
// treated as a SQLite path (":memory:" included).
func ConnectDatabase(databaseURL string, log *slog.Logger) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var dialector gorm.Dialector
	driver := "sqlite"
	if IsPostgresURL(databaseURL) {
		dialector = postgres.Open(databaseURL)
		driver = "postgres"
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	// SQLite allows a single writer; ":memory:" databases also exist per connection
	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("Database connection established", "driver", driver)
	return db, nil
}

// IsPostgresURL reports whether databaseURL selects the PostgreSQL driver
func IsPostgresURL(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}
