package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/openkiosk/stallpos/config"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func getDatabase(cfg config.DBConfig, workdir string) (*gorm.DB, error) {
	loglevel := logger.Silent
	if cfg.Debug {
		loglevel = logger.Info
	}
	gormCfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(loglevel),
	}

	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=disable TimeZone=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Name, cfg.Passwd, time.Local.String())
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, errors.Wrap(err, "connect postgres")
		}
		return db, nil
	case "sqlite":
		dbfile := filepath.Join(workdir, cfg.Name+".db")
		db, err := gorm.Open(sqlite.Open(dbfile+"?_busy_timeout=5000"), gormCfg)
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite")
		}
		// Serialized writes keep the reserve transaction isolated on sqlite.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, errors.Errorf("unsupported database type: %s", cfg.Type)
	}
}
