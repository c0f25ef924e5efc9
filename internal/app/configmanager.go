package app

import (
	"errors"

	"github.com/openkiosk/stallpos/internal/domain"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigManager reads and writes sys_config rows. Values are stored as
// strings and cast on read.
type ConfigManager struct {
	db *gorm.DB
}

func NewConfigManager(db *gorm.DB) *ConfigManager {
	return &ConfigManager{db: db}
}

func (m *ConfigManager) getValue(category, name string) (string, bool) {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	if err != nil {
		return "", false
	}
	return cfg.Value, true
}

func (m *ConfigManager) GetString(category, name string) string {
	v, _ := m.getValue(category, name)
	return v
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	v, ok := m.getValue(category, name)
	if !ok {
		return 0
	}
	return cast.ToInt64(v)
}

func (m *ConfigManager) GetBool(category, name string) bool {
	v, ok := m.getValue(category, name)
	if !ok {
		return false
	}
	return cast.ToBool(v)
}

// SetValue updates a setting row, creating it if missing.
func (m *ConfigManager) SetValue(category, name, value string) error {
	var cfg domain.SysConfig
	err := m.db.Where("type = ? and name = ?", category, name).First(&cfg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = m.db.Create(&domain.SysConfig{Type: category, Name: name, Value: value}).Error
	case err == nil:
		err = m.db.Model(&domain.SysConfig{}).Where("id = ?", cfg.ID).Update("value", value).Error
	}
	if err != nil {
		zap.L().Error("failed to save setting",
			zap.String("key", category+"."+name),
			zap.Error(err))
	}
	return err
}
