// Package testdb opens throwaway in-memory databases for package tests.
package testdb

import (
	"testing"

	"github.com/openkiosk/stallpos/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated in-memory sqlite handle. Each call is an
// isolated database; the single-connection pool keeps it alive and
// serializes writes the way the production sqlite profile does.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access sql pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// SeedMenu inserts the given menu items.
func SeedMenu(t *testing.T, db *gorm.DB, items ...domain.MenuItem) {
	t.Helper()
	for _, item := range items {
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("seed menu item %d: %v", item.ID, err)
		}
	}
}
