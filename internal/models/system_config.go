package models

import "time"

// Branding / behavior keys stored in system_config.
const (
	ConfigSiteName            = "site_name"
	ConfigSiteDescription     = "site_description"
	ConfigLogoURL             = "logo_url"
	ConfigFaviconURL          = "favicon_url"
	ConfigRegistrationEnabled = "registration_enabled"
)

// SystemConfig holds process-wide configuration as key/value rows.
type SystemConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:key;uniqueIndex;size:100;not null" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:20;default:string" json:"type"` // string, int, bool
	Label     string    `gorm:"size:200" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SystemConfig) TableName() string { return "system_config" }
