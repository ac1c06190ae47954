package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/middleware"
	"github.com/minhph/resourcehub/internal/permissions"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	db             *gorm.DB
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		db:             db,
		projectService: services.NewProjectService(db),
	}
}

// List returns paginated projects with optional search and status filters.
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.projectService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListAll returns every project for relation-field pickers.
// GET /api/projects/all
func (h *ProjectHandler) ListAll(c *gin.Context) {
	projects, err := h.projectService.ListAll()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

// Get returns one project.
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	project, err := h.projectService.GetByID(uint(id))
	if err != nil {
		response.NotFound(c, "project not found")
		return
	}

	response.Success(c, project)
}

// Create registers a new project. Staff only; a duplicate code is rejected
// before anything is written.
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	if !permissions.CanManageProjects(currentUser(c, h.db)) {
		response.Forbidden(c, "manager access required")
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	project, err := h.projectService.Create(&req, middleware.GetUsername(c), &actorID)
	if err != nil {
		code := strings.ToUpper(strings.TrimSpace(req.Code))
		if h.projectService.CodeExists(code, 0) {
			response.Conflict(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Created(c, project)
}

// Update edits a project. The code is immutable.
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	if !permissions.CanManageProjects(currentUser(c, h.db)) {
		response.Forbidden(c, "manager access required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	actorID := middleware.GetUserID(c)
	project, err := h.projectService.Update(uint(id), &req, middleware.GetUsername(c), &actorID)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, project)
}

// Delete removes a project.
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if !permissions.CanManageProjects(currentUser(c, h.db)) {
		response.Forbidden(c, "manager access required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	actorID := middleware.GetUserID(c)
	if err := h.projectService.Delete(uint(id), middleware.GetUsername(c), &actorID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{"message": "project deleted"})
}
