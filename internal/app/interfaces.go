package app

import (
	"github.com/openkiosk/stallpos/config"
	"github.com/openkiosk/stallpos/internal/catalog"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// CatalogProvider provides access to the menu catalog
type CatalogProvider interface {
	Catalog() *catalog.Catalog
}
