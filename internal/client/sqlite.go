package client

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"aimaster-store/internal/model"
)

// InitDemoDB opens the in-memory store backing local/demo mode. Nothing in
// it survives a restart. The database is named so the connection pool shares
// one instance without leaking it to other opens.
func InitDemoDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:demo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open demo db: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Profile{},
		&model.Product{},
		&model.Banner{},
		&model.Order{},
	); err != nil {
		return nil, fmt.Errorf("migrate demo db: %w", err)
	}

	return db, nil
}

// InitSettingsDB opens the file-backed store for branding settings, the only
// entity persisted locally across restarts.
func InitSettingsDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}

	if err := db.AutoMigrate(&model.Settings{}); err != nil {
		return nil, fmt.Errorf("migrate settings db: %w", err)
	}

	return db, nil
}
