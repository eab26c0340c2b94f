package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shopstream/backend/internal/application/identity"
	"github.com/shopstream/backend/internal/interfaces/http/dto"
)

// IdentityHandler exposes account commands and credential verification
type IdentityHandler struct {
	users *identityapp.UserService
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(users *identityapp.UserService) *IdentityHandler {
	return &IdentityHandler{users: users}
}

// Register mounts the identity routes on the given router group
func (h *IdentityHandler) Register(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("/:id", h.GetByID)
		users.PUT("/:id/profile", h.UpdateProfile)
		users.DELETE("/:id", h.Delete)
		users.POST("/admin-upsert", h.AdminUpsert)
	}
	r.POST("/auth/login", h.Authenticate)
}

// Create handles POST /users
func (h *IdentityHandler) Create(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.Created(c, resp)
}

// GetByID handles GET /users/:id
func (h *IdentityHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// UpdateProfile handles PUT /users/:id/profile
func (h *IdentityHandler) UpdateProfile(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	var req identityapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.users.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Delete handles DELETE /users/:id
func (h *IdentityHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		dto.BadRequest(c, err)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		dto.Error(c, err)
		return
	}
	dto.NoContent(c)
}

// AdminUpsert handles POST /users/admin-upsert
func (h *IdentityHandler) AdminUpsert(c *gin.Context) {
	var req identityapp.AdminUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.users.AdminUpsert(c.Request.Context(), req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}

// Authenticate handles POST /auth/login
func (h *IdentityHandler) Authenticate(c *gin.Context) {
	var req identityapp.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, err)
		return
	}

	resp, err := h.users.Authenticate(c.Request.Context(), req)
	if err != nil {
		dto.Error(c, err)
		return
	}
	dto.OK(c, resp)
}
