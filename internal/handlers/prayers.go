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

// PrayerHandler exposes the prayer journal endpoints.
type PrayerHandler struct {
	service *services.PrayerService
}

// NewPrayerHandler constructs a PrayerHandler.
func NewPrayerHandler(db *gorm.DB) (*PrayerHandler, error) {
	service, err := services.NewPrayerService(db)
	if err != nil {
		return nil, err
	}
	return &PrayerHandler{service: service}, nil
}

type createPrayerRequest struct {
	Type        string   `json:"type" validate:"required"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required,max=1000"`
	Duration    int      `json:"duration" validate:"required,min=1"`
	Tags        []string `json:"tags"`
	IsPrivate   *bool    `json:"is_private"`
}

type updatePrayerRequest struct {
	Title               *string  `json:"title" validate:"omitempty,max=200"`
	Description         *string  `json:"description" validate:"omitempty,max=1000"`
	Duration            *int     `json:"duration" validate:"omitempty,min=1"`
	Tags                []string `json:"tags"`
	IsAnswered          *bool    `json:"is_answered"`
	AnsweredDescription *string  `json:"answered_description" validate:"omitempty,max=500"`
}

// List returns the caller's entries, optionally windowed and typed.
func (h *PrayerHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	filters := services.PrayerFilters{
		Type:  c.Query("type"),
		Limit: parseIntQuery(c, "limit", 20),
	}
	if start, err := time.Parse(time.RFC3339, c.Query("start")); err == nil {
		filters.Start = &start
	}
	if end, err := time.Parse(time.RFC3339, c.Query("end")); err == nil {
		filters.End = &end
	}

	entries, err := h.service.List(requestContext(c), userID, filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"prayers": entries})
}

// Create records a new entry.
func (h *PrayerHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createPrayerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry, err := h.service.Create(requestContext(c), userID, services.CreatePrayerInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Tags:        req.Tags,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entry)
}

// Update applies a partial update to an owned entry.
func (h *PrayerHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req updatePrayerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	entry, err := h.service.Update(requestContext(c), userID, strings.TrimSpace(c.Param("id")), services.UpdatePrayerInput{
		Title:               req.Title,
		Description:         req.Description,
		Duration:            req.Duration,
		Tags:                req.Tags,
		IsAnswered:          req.IsAnswered,
		AnsweredDescription: req.AnsweredDescription,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entry)
}

// Delete removes an owned entry.
func (h *PrayerHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(requestContext(c), userID, strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Prayer entry deleted")
}

// Stats returns the caller's aggregate prayer statistics.
func (h *PrayerHandler) Stats(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	stats, err := h.service.Stats(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
