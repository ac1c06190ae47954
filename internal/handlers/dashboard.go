package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: services.NewDashboardService(db),
	}
}

// GetStats returns entity counts and recent activity for the landing page.
// GET /api/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
