package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/middleware"
	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/response"
	"gorm.io/gorm"
)

type SystemConfigHandler struct {
	configService *services.SystemConfigService
}

func NewSystemConfigHandler(db *gorm.DB) *SystemConfigHandler {
	return &SystemConfigHandler{
		configService: services.NewSystemConfigService(db),
	}
}

// GetBranding returns the site branding singleton. Public: login screens
// read it before any session exists.
// GET /api/branding
func (h *SystemConfigHandler) GetBranding(c *gin.Context) {
	response.Success(c, h.configService.GetBranding())
}

// UpdateBranding partially updates the branding singleton. Admin only.
// PUT /api/branding
func (h *SystemConfigHandler) UpdateBranding(c *gin.Context) {
	var req services.UpdateBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.configService.UpdateBranding(&req); err != nil {
		response.Error(c, err)
		return
	}

	actorID := middleware.GetUserID(c)
	services.RecordAudit(&actorID, middleware.GetUsername(c), models.AuditUpdate, "system_config",
		"updated site branding", c.ClientIP())

	response.Success(c, h.configService.GetBranding())
}
