package services

import (
	"github.com/minhph/resourcehub/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	Categories     int64 `json:"categories"`
	Resources      int64 `json:"resources"`
	Projects       int64 `json:"projects"`
	ActiveProjects int64 `json:"active_projects"`
	Users          int64 `json:"users"`
}

type CategoryCount struct {
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}

type DashboardResponse struct {
	Stats          DashboardStats    `json:"stats"`
	CategoryCounts []CategoryCount   `json:"category_counts"`
	RecentActivity []models.AuditLog `json:"recent_activity"`
}

// GetStats returns entity counts, resources per category, and the latest
// audit entries.
func (s *DashboardService) GetStats() (*DashboardResponse, error) {
	var stats DashboardStats

	s.db.Model(&models.Category{}).Count(&stats.Categories)
	s.db.Model(&models.Resource{}).Count(&stats.Resources)
	s.db.Model(&models.Project{}).Count(&stats.Projects)
	s.db.Model(&models.Project{}).Where("status = ?", models.ProjectActive).Count(&stats.ActiveProjects)
	s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.Users)

	var counts []CategoryCount
	s.db.Model(&models.Resource{}).
		Select("category_id, COUNT(*) as count").
		Group("category_id").
		Order("count DESC").
		Scan(&counts)

	for i := range counts {
		var category models.Category
		if err := s.db.First(&category, counts[i].CategoryID).Error; err == nil {
			counts[i].CategoryName = category.Name
		}
	}

	var recent []models.AuditLog
	s.db.Order("created_at DESC").Limit(10).Find(&recent)

	return &DashboardResponse{
		Stats:          stats,
		CategoryCounts: counts,
		RecentActivity: recent,
	}, nil
}
