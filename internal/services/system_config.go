package services

import (
	"github.com/minhph/resourcehub/internal/models"
	"gorm.io/gorm"
)

type SystemConfigService struct {
	db *gorm.DB
}

func NewSystemConfigService(db *gorm.DB) *SystemConfigService {
	return &SystemConfigService{db: db}
}

func (s *SystemConfigService) Get(key string) (string, error) {
	var cfg models.SystemConfig
	if err := s.db.Where("`key` = ?", key).First(&cfg).Error; err != nil {
		return "", err
	}
	return cfg.Value, nil
}

func (s *SystemConfigService) GetWithDefault(key, defaultValue string) string {
	value, err := s.Get(key)
	if err != nil {
		return defaultValue
	}
	return value
}

func (s *SystemConfigService) Set(key, value string) error {
	var cfg models.SystemConfig
	err := s.db.Where("`key` = ?", key).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		cfg = models.SystemConfig{
			Key:   key,
			Value: value,
		}
		return s.db.Create(&cfg).Error
	}
	if err != nil {
		return err
	}
	return s.db.Model(&cfg).Update("value", value).Error
}

// BrandingResponse is the singleton site configuration read at startup by
// clients and re-fetched after admin updates.
type BrandingResponse struct {
	SiteName            string `json:"site_name"`
	SiteDescription     string `json:"site_description"`
	LogoURL             string `json:"logo_url"`
	FaviconURL          string `json:"favicon_url"`
	RegistrationEnabled bool   `json:"registration_enabled"`
}

func (s *SystemConfigService) GetBranding() *BrandingResponse {
	return &BrandingResponse{
		SiteName:            s.GetWithDefault(models.ConfigSiteName, "Resource Hub"),
		SiteDescription:     s.GetWithDefault(models.ConfigSiteDescription, ""),
		LogoURL:             s.GetWithDefault(models.ConfigLogoURL, ""),
		FaviconURL:          s.GetWithDefault(models.ConfigFaviconURL, ""),
		RegistrationEnabled: s.GetWithDefault(models.ConfigRegistrationEnabled, "true") == "true",
	}
}

func (s *SystemConfigService) IsRegistrationEnabled() bool {
	return s.GetWithDefault(models.ConfigRegistrationEnabled, "true") == "true"
}

type UpdateBrandingRequest struct {
	SiteName            *string `json:"site_name"`
	SiteDescription     *string `json:"site_description"`
	LogoURL             *string `json:"logo_url"`
	FaviconURL          *string `json:"favicon_url"`
	RegistrationEnabled *bool   `json:"registration_enabled"`
}

func (s *SystemConfigService) UpdateBranding(req *UpdateBrandingRequest) error {
	if req.SiteName != nil {
		if err := s.Set(models.ConfigSiteName, *req.SiteName); err != nil {
			return err
		}
	}
	if req.SiteDescription != nil {
		if err := s.Set(models.ConfigSiteDescription, *req.SiteDescription); err != nil {
			return err
		}
	}
	if req.LogoURL != nil {
		if err := s.Set(models.ConfigLogoURL, *req.LogoURL); err != nil {
			return err
		}
	}
	if req.FaviconURL != nil {
		if err := s.Set(models.ConfigFaviconURL, *req.FaviconURL); err != nil {
			return err
		}
	}
	if req.RegistrationEnabled != nil {
		value := "false"
		if *req.RegistrationEnabled {
			value = "true"
		}
		if err := s.Set(models.ConfigRegistrationEnabled, value); err != nil {
			return err
		}
	}
	PublishChange("system_config", "update", 0)
	return nil
}
