package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/middleware"
	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/permissions"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/response"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	db              *gorm.DB
	categoryService *services.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		db:              db,
		categoryService: services.NewCategoryService(db),
	}
}

// currentUser loads the caller's profile for permission checks.
func currentUser(c *gin.Context, db *gorm.DB) *models.User {
	var user models.User
	if err := db.First(&user, middleware.GetUserID(c)).Error; err != nil {
		return nil
	}
	return &user
}

// List returns the categories the caller may see. Restricted categories are
// filtered out for plain users.
// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	user := currentUser(c, h.db)

	categories, err := h.categoryService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	visible := make([]models.Category, 0, len(categories))
	for i := range categories {
		if permissions.CanViewCategory(user, &categories[i]) {
			visible = append(visible, categories[i])
		}
	}

	response.Success(c, visible)
}

// Get returns one category with its field definitions.
// GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	category, err := h.categoryService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "category not found")
		return
	}

	if !permissions.CanViewCategory(currentUser(c, h.db), category) {
		response.Forbidden(c, "no access to this category")
		return
	}

	response.Success(c, category)
}

// Create defines a new category. Admin only.
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	if !permissions.CanManageSchema(currentUser(c, h.db)) {
		response.Forbidden(c, "admin access required")
		return
	}

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	category, err := h.categoryService.Create(&req, middleware.GetUsername(c), &actorID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, category)
}

// Update edits a category definition. Admin only. A new field list replaces
// the old one wholesale.
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	if !permissions.CanManageSchema(currentUser(c, h.db)) {
		response.Forbidden(c, "admin access required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	category, err := h.categoryService.Update(uint(id), &req, middleware.GetUsername(c), &actorID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, category)
}

// Delete removes a category and all of its records. Admin only.
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	if !permissions.CanManageSchema(currentUser(c, h.db)) {
		response.Forbidden(c, "admin access required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	actorID := middleware.GetUserID(c)
	if err := h.categoryService.Delete(uint(id), middleware.GetUsername(c), &actorID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "category deleted"})
}
