package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// InviteHandler exposes invite code management endpoints.
type InviteHandler struct {
	service *services.InviteService
}

// NewInviteHandler constructs an InviteHandler.
func NewInviteHandler(db *gorm.DB) (*InviteHandler, error) {
	service, err := services.NewInviteService(db)
	if err != nil {
		return nil, err
	}
	return &InviteHandler{service: service}, nil
}

type createInviteRequest struct {
	Code        string     `json:"code" validate:"omitempty,min=4,max=32"`
	Role        string     `json:"role" validate:"required"`
	Ministry    string     `json:"ministry" validate:"omitempty,max=128"`
	FamilyID    *string    `json:"family_id" validate:"omitempty,uuid4"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// Create registers a new invite code.
func (h *InviteHandler) Create(c *gin.Context) {
	var req createInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	creatorID := c.GetString(middleware.CtxUserIDKey)
	if creatorID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	invite, err := h.service.Create(requestContext(c), services.CreateInviteInput{
		Code:        req.Code,
		Role:        req.Role,
		Ministry:    req.Ministry,
		FamilyID:    req.FamilyID,
		Description: req.Description,
		ExpiresAt:   req.ExpiresAt,
		CreatedByID: creatorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, invite)
}

// List returns all invite codes, newest first.
func (h *InviteHandler) List(c *gin.Context) {
	invites, err := h.service.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invites": invites})
}

// Validate reports whether a code could currently be consumed.
func (h *InviteHandler) Validate(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	result, err := h.service.Validate(requestContext(c), code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Deactivate soft-deactivates an invite code.
func (h *InviteHandler) Deactivate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.service.Deactivate(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Invite code deactivated")
}
