package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/minhph/resourcehub/internal/models"
	"gorm.io/gorm"
)

var projectCodeRe = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]*$`)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=active completed paused"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=active completed paused"`
}

// List returns paginated projects, newest first.
func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var projects []models.Project
	var total int64

	query := s.db.Model(&models.Project{})

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// ListAll returns every project (used to resolve relation fields).
func (s *ProjectService) ListAll() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("code ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID returns a project by ID.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// CodeExists reports whether a project with the given code already exists,
// optionally excluding one id (for updates).
func (s *ProjectService) CodeExists(code string, excludeID uint) bool {
	var count int64
	query := s.db.Model(&models.Project{}).Where("code = ?", code)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	query.Count(&count)
	return count > 0
}

// Create creates a new project. The code must be unique and uppercase
// alphanumeric with hyphens; a duplicate aborts before the insert.
func (s *ProjectService) Create(req *CreateProjectRequest, actor string, actorID *uint) (*models.Project, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !projectCodeRe.MatchString(code) {
		return nil, errors.New("project code must be uppercase letters, digits and hyphens")
	}

	if s.CodeExists(code, 0) {
		return nil, fmt.Errorf("project code %s already exists", code)
	}

	if req.Status == "" {
		req.Status = models.ProjectActive
	}

	project := models.Project{
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	RecordAudit(actorID, actor, models.AuditCreate, "project",
		fmt.Sprintf("created project %s (%s)", project.Code, project.Name), "")
	PublishChange("projects", "insert", project.ID)

	return &project, nil
}

// Update updates a project. The code is immutable once assigned.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest, actor string, actorID *uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	if err := s.db.Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}

	RecordAudit(actorID, actor, models.AuditUpdate, "project",
		fmt.Sprintf("updated project %s", project.Code), "")
	PublishChange("projects", "update", project.ID)

	return &project, nil
}

// Delete deletes a project.
func (s *ProjectService) Delete(id uint, actor string, actorID *uint) error {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("project not found")
		}
		return err
	}

	if err := s.db.Delete(&project).Error; err != nil {
		return err
	}

	RecordAudit(actorID, actor, models.AuditDelete, "project",
		fmt.Sprintf("deleted project %s", project.Code), "")
	PublishChange("projects", "delete", id)

	return nil
}
