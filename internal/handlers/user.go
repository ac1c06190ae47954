package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhph/resourcehub/internal/middleware"
	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/internal/services"
	"github.com/minhph/resourcehub/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List returns paginated users. Admin only.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	username := c.Query("username")
	role := c.Query("role")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var users []models.User
	var total int64

	query := h.db.Model(&models.User{})

	if username != "" {
		query = query.Where("username LIKE ? OR full_name LIKE ?", "%"+username+"%", "%"+username+"%")
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}

	query.Count(&total)
	query.Order("id ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users)

	response.Success(c, gin.H{
		"items":     users,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListAll returns every active user for relation-field pickers. Any signed-in
// user may call this; only display fields are exposed.
// GET /api/users/all
func (h *UserHandler) ListAll(c *gin.Context) {
	var users []models.User
	h.db.Where("is_active = ?", true).Order("username ASC").Find(&users)

	type option struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
	}

	options := make([]option, 0, len(users))
	for _, u := range users {
		options = append(options, option{ID: u.ID, Username: u.Username, FullName: u.FullName})
	}

	response.Success(c, options)
}

type UpdateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// Update changes a user's role, activation flag or profile fields. Admins
// cannot modify their own account through this route.
// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if uint(id) == middleware.GetUserID(c) {
		response.BadRequest(c, "cannot modify your own account")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		response.NotFound(c, "user not found")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			response.BadRequest(c, "invalid role, must be 'admin', 'manager' or 'user'")
			return
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}

	if len(updates) == 0 {
		response.BadRequest(c, "no fields to update")
		return
	}

	if err := h.db.Model(&user).Updates(updates).Error; err != nil {
		response.Error(c, err)
		return
	}

	h.db.First(&user, id)

	actorID := middleware.GetUserID(c)
	services.RecordAudit(&actorID, middleware.GetUsername(c), models.AuditUpdate, "profile",
		"updated account "+user.Username, c.ClientIP())
	services.PublishChange("profiles", "update", user.ID)

	response.Success(c, user)
}

// Delete removes a user account. Admins cannot delete themselves.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if uint(id) == middleware.GetUserID(c) {
		response.BadRequest(c, "cannot delete your own account")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		response.NotFound(c, "user not found")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		response.Error(c, err)
		return
	}

	actorID := middleware.GetUserID(c)
	services.RecordAudit(&actorID, middleware.GetUsername(c), models.AuditDelete, "profile",
		"deleted account "+user.Username, c.ClientIP())
	services.PublishChange("profiles", "delete", user.ID)

	response.Success(c, gin.H{"message": "user deleted"})
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// UpdateAvatar sets the caller's own avatar URL, normally one returned by the
// avatars upload bucket.
// PUT /api/users/me/avatar
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	var req updateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.db.Model(&models.User{}).Where("id = ?", userID).
		Update("avatar", req.Avatar).Error; err != nil {
		response.Error(c, err)
		return
	}

	services.PublishChange("profiles", "update", userID)
	response.Success(c, gin.H{"avatar": req.Avatar})
}
