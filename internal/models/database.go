package models

import (
	"fmt"

	"github.com/minhph/resourcehub/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&User{},
		&Category{},
		&Resource{},
		&Project{},
		&AuditLog{},
		&SystemConfig{},
		&RefreshToken{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates default config rows if they do not exist.
func SeedDefaultData() error {
	defaults := []SystemConfig{
		{Key: ConfigSiteName, Value: "Resource Hub", Type: "string", Label: "Site Name"},
		{Key: ConfigSiteDescription, Value: "Internal resource management console", Type: "string", Label: "Site Description"},
		{Key: ConfigLogoURL, Value: "", Type: "string", Label: "Logo URL"},
		{Key: ConfigFaviconURL, Value: "", Type: "string", Label: "Favicon URL"},
		{Key: ConfigRegistrationEnabled, Value: "true", Type: "bool", Label: "Allow Self Registration"},
	}

	for _, cfg := range defaults {
		var count int64
		DB.Model(&SystemConfig{}).Where("key = ?", cfg.Key).Count(&count)
		if count == 0 {
			if err := DB.Create(&cfg).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
