package services

import (
	"errors"
	"fmt"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/schema"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Fields      schema.FieldList `json:"fields" binding:"required"`
	AccessLevel string           `json:"access_level" binding:"omitempty,oneof=public restricted"`
	Icon        string           `json:"icon"`
}

type UpdateCategoryRequest struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Fields      *schema.FieldList `json:"fields"`
	AccessLevel string            `json:"access_level" binding:"omitempty,oneof=public restricted"`
	Icon        *string           `json:"icon"`
}

// List returns all categories ordered by name.
func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID returns a category by ID.
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create creates a new category. The field list must be valid for saving:
// at least one field, unique keys.
func (s *CategoryService) Create(req *CreateCategoryRequest, actor string, actorID *uint) (*models.Category, error) {
	if err := schema.ValidateFields(req.Fields); err != nil {
		return nil, err
	}

	if req.AccessLevel == "" {
		req.AccessLevel = models.AccessPublic
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
		AccessLevel: req.AccessLevel,
		Icon:        req.Icon,
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	RecordAudit(actorID, actor, models.AuditCreate, "category",
		fmt.Sprintf("created category %q with %d fields", category.Name, len(category.Fields)), "")
	PublishChange("categories", "insert", category.ID)

	return &category, nil
}

// Update updates a category. Editing the field list overwrites it wholesale;
// there is no schema versioning or migration of existing records.
func (s *CategoryService) Update(id uint, req *UpdateCategoryRequest, actor string, actorID *uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Fields != nil {
		if err := schema.ValidateFields(*req.Fields); err != nil {
			return nil, err
		}
		updates["fields"] = *req.Fields
	}
	if req.AccessLevel != "" {
		updates["access_level"] = req.AccessLevel
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}

	if err := s.db.Model(&category).Updates(updates).Error; err != nil {
		return nil, err
	}

	RecordAudit(actorID, actor, models.AuditUpdate, "category",
		fmt.Sprintf("updated category %q", category.Name), "")
	PublishChange("categories", "update", category.ID)

	return &category, nil
}

// Delete deletes a category and cascades to its resources in one
// transaction.
func (s *CategoryService) Delete(id uint, actor string, actorID *uint) error {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Resource{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	}); err != nil {
		return err
	}

	RecordAudit(actorID, actor, models.AuditDelete, "category",
		fmt.Sprintf("deleted category %q and its resources", category.Name), "")
	PublishChange("categories", "delete", id)
	PublishChange("resources", "delete", 0)

	return nil
}
