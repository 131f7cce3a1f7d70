// Package database opens the GORM connection for the configured driver and
// migrates the schema.
package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/axellelanca/shortlinks/internal/config"
	"github.com/axellelanca/shortlinks/internal/models"
)

// sqlitePragmas enables foreign keys and makes writers wait for the lock
// instead of failing immediately with SQLITE_BUSY.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open connects to the database described by cfg.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return open(postgres.Open(cfg.Database.DSN), false)
	case "sqlite", "":
		return OpenSQLite(cfg.Database.Name)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// OpenSQLite opens (or creates) the SQLite file at path.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&" + sqlitePragmas
	} else {
		dsn += "?" + sqlitePragmas
	}
	return open(sqlite.Open(dsn), true)
}

func open(dialector gorm.Dialector, singleConn bool) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.Default(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if singleConn {
		// SQLite allows one writer at a time; one pooled connection turns
		// concurrent requests into a queue.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the users and short_urls tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.ShortURL{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}
