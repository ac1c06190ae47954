package handlers

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/middleware"
	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/permissions"
	"github.com/minhph/resourcehub/internal/query"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/response"
	"gorm.io/gorm"
)

// Query params with meaning of their own; everything else on a list request
// is treated as a field filter keyed by field key.
var reservedListParams = map[string]bool{
	"creator":   true,
	"date_from": true,
	"date_to":   true,
}

type ResourceHandler struct {
	db              *gorm.DB
	resourceService *services.ResourceService
	categoryService *services.CategoryService
}

func NewResourceHandler(db *gorm.DB) *ResourceHandler {
	return &ResourceHandler{
		db:              db,
		resourceService: services.NewResourceService(db),
		categoryService: services.NewCategoryService(db),
	}
}

func (h *ResourceHandler) loadCategory(c *gin.Context) (*models.Category, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return nil, false
	}

	category, err := h.categoryService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "category not found")
		return nil, false
	}
	return category, true
}

func criteriaFromQuery(c *gin.Context) query.Criteria {
	cr := query.Criteria{
		Creator:  c.Query("creator"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}

	for key, values := range c.Request.URL.Query() {
		if reservedListParams[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		if cr.Fields == nil {
			cr.Fields = make(map[string]string)
		}
		cr.Fields[key] = values[0]
	}
	return cr
}

// List returns a category's records, filtered by the query criteria.
// GET /api/categories/:id/resources
func (h *ResourceHandler) List(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	if !permissions.CanViewCategory(currentUser(c, h.db), category) {
		response.Forbidden(c, "no access to this category")
		return
	}

	resources, err := h.resourceService.List(category, criteriaFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resources)
}

type resourceRequest struct {
	Data models.JSONMap `json:"data" binding:"required"`
}

// Create adds one record to a category. Staff only.
// POST /api/categories/:id/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	user := currentUser(c, h.db)
	if !permissions.CanCreateResource(user) {
		response.Forbidden(c, "manager access required")
		return
	}

	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	resource, err := h.resourceService.Create(category, req.Data, user.Username, &actorID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, resource)
}

// Update replaces a record's data. Staff may edit anything; plain users only
// their own records.
// PUT /api/categories/:id/resources/:resourceId
func (h *ResourceHandler) Update(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("resourceId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}

	resource, err := h.resourceService.GetByID(uint(id))
	if err != nil || resource.CategoryID != category.ID {
		response.NotFound(c, "resource not found")
		return
	}

	user := currentUser(c, h.db)
	if !permissions.CanEditResource(user, resource) {
		response.Forbidden(c, "you may only edit your own records")
		return
	}

	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	updated, err := h.resourceService.Update(category, resource, req.Data, middleware.GetUsername(c), &actorID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, updated)
}

// Delete removes a record.
// DELETE /api/categories/:id/resources/:resourceId
func (h *ResourceHandler) Delete(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("resourceId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid resource id")
		return
	}

	resource, err := h.resourceService.GetByID(uint(id))
	if err != nil || resource.CategoryID != category.ID {
		response.NotFound(c, "resource not found")
		return
	}

	if !permissions.CanDeleteResource(currentUser(c, h.db), resource) {
		response.Forbidden(c, "you may only delete your own records")
		return
	}

	actorID := middleware.GetUserID(c)
	if err := h.resourceService.Delete(resource, middleware.GetUsername(c), &actorID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "resource deleted"})
}

// Export streams the current (filtered) list as a CSV download. The same
// query criteria as List apply, so exports mirror what the caller sees.
// GET /api/categories/:id/resources/export
func (h *ResourceHandler) Export(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	if !permissions.CanViewCategory(currentUser(c, h.db), category) {
		response.Forbidden(c, "no access to this category")
		return
	}

	resources, err := h.resourceService.List(category, criteriaFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	data := h.resourceService.ExportCSV(category, resources)

	filename := fmt.Sprintf("%s-%s.csv", category.Name, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "text/csv; charset=utf-8", data)
}

// Import parses an uploaded CSV and inserts its rows as new records with the
// caller as creator. Staff only.
// POST /api/categories/:id/resources/import
func (h *ResourceHandler) Import(c *gin.Context) {
	category, ok := h.loadCategory(c)
	if !ok {
		return
	}

	user := currentUser(c, h.db)
	if !permissions.CanCreateResource(user) {
		response.Forbidden(c, "manager access required")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "csv file required")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	result, err := h.resourceService.ImportCSV(category, data, user.Username, &actorID)
	if err != nil {
		if result != nil && result.Imported > 0 {
			// Partial import: report progress along with the failure
			response.Error(c, response.NewServerError(err.Error()))
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, result)
}
