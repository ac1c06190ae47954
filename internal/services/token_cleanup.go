package services

import (
	"time"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// TokenCleanupService prunes refresh tokens that can never be used again:
// expired ones and revoked ones older than a week.
type TokenCleanupService struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewTokenCleanupService(db *gorm.DB) *TokenCleanupService {
	return &TokenCleanupService{db: db}
}

// Start schedules a daily purge at 03:00.
func (s *TokenCleanupService) Start() error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.Purge(); err != nil {
			logger.Error().Err(err).Msg("Refresh token purge failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Token cleanup scheduled daily at 03:00")
	return nil
}

func (s *TokenCleanupService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Purge deletes expired tokens and revoked tokens past their grace window.
func (s *TokenCleanupService) Purge() error {
	now := time.Now()
	revokedBefore := now.AddDate(0, 0, -7)

	result := s.db.Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", now, revokedBefore).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		logger.Info().Int64("count", result.RowsAffected).Msg("Purged stale refresh tokens")
	}
	return nil
}
