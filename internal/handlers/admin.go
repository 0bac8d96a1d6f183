package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// AdminHandler exposes the super-admin management endpoints.
type AdminHandler struct {
	service *services.AdminService
	posts   *services.PostService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, posts *services.PostService) (*AdminHandler, error) {
	service, err := services.NewAdminService(db)
	if err != nil {
		return nil, err
	}
	return &AdminHandler{service: service, posts: posts}, nil
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type flagPostRequest struct {
	Flagged *bool `json:"flagged" validate:"required"`
}

// Stats returns the community dashboard aggregate.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListUsers returns every account.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// UpdateRole changes a user's privilege role.
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	adminID := c.GetString(middleware.CtxUserIDKey)
	if adminID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updateRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.service.UpdateRole(requestContext(c), adminID,
		strings.TrimSpace(c.Param("id")), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// DeactivateUser soft-deactivates an account.
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	adminID := c.GetString(middleware.CtxUserIDKey)
	if adminID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.service.DeactivateUser(requestContext(c), adminID, strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deactivated")
}

// FlagPost sets or clears the moderation flag on a post.
func (h *AdminHandler) FlagPost(c *gin.Context) {
	var req flagPostRequest
	if !bindAndValidate(c, &req) {
		return
	}

	post, err := h.posts.Flag(requestContext(c), strings.TrimSpace(c.Param("id")), *req.Flagged)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}
