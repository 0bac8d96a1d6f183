package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// MentorshipHandler exposes the mentorship workflow endpoints.
type MentorshipHandler struct {
	service *services.MentorshipService
}

// NewMentorshipHandler constructs a MentorshipHandler.
func NewMentorshipHandler(db *gorm.DB, notifications *services.NotificationService) (*MentorshipHandler, error) {
	service, err := services.NewMentorshipService(db, notifications)
	if err != nil {
		return nil, err
	}
	return &MentorshipHandler{service: service}, nil
}

type createMentorshipRequest struct {
	Topic          string   `json:"topic" validate:"required,max=64"`
	Details        string   `json:"details" validate:"omitempty,max=3000"`
	IsAnonymous    bool     `json:"is_anonymous"`
	PreferredTimes []string `json:"preferred_times"`
}

type scheduleMentorshipRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type mentorshipMessageRequest struct {
	Content string `json:"content" validate:"required,max=3000"`
}

// Create submits a mentorship request.
func (h *MentorshipHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createMentorshipRequest
	if !bindAndValidate(c, &req) {
		return
	}

	request, err := h.service.Create(requestContext(c), userID, services.CreateMentorshipInput{
		Topic:          req.Topic,
		Details:        req.Details,
		IsAnonymous:    req.IsAnonymous,
		PreferredTimes: req.PreferredTimes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, request)
}

// ListMine returns the caller's own requests.
func (h *MentorshipHandler) ListMine(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	requests, err := h.service.ListForRequester(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// Manage returns all requests for the leader dashboard.
func (h *MentorshipHandler) Manage(c *gin.Context) {
	requests, err := h.service.ListForLeaders(requestContext(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// Get returns one request including its thread.
func (h *MentorshipHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	request, err := h.service.Get(requestContext(c), userID,
		c.GetString(middleware.CtxRoleKey), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, request)
}

// Accept moves a pending request to accepted.
func (h *MentorshipHandler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept)
}

// Decline moves a request to declined.
func (h *MentorshipHandler) Decline(c *gin.Context) {
	h.transition(c, h.service.Decline)
}

// Complete closes out a scheduled request.
func (h *MentorshipHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// Schedule records the session time.
func (h *MentorshipHandler) Schedule(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req scheduleMentorshipRequest
	if !bindAndValidate(c, &req) {
		return
	}

	request, err := h.service.Schedule(requestContext(c), userID,
		strings.TrimSpace(c.Param("id")), req.ScheduledAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, request)
}

// AddMessage appends to the private thread.
func (h *MentorshipHandler) AddMessage(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req mentorshipMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	message, err := h.service.AddMessage(requestContext(c), userID,
		strings.TrimSpace(c.Param("id")), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, message)
}

func (h *MentorshipHandler) transition(c *gin.Context, fn func(context.Context, string, string) (*models.MentorshipRequest, error)) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	request, err := fn(requestContext(c), userID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, request)
}
