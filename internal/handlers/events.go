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

// EventHandler exposes event and RSVP endpoints.
type EventHandler struct {
	service *services.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(db *gorm.DB, notifications *services.NotificationService) (*EventHandler, error) {
	service, err := services.NewEventService(db, notifications)
	if err != nil {
		return nil, err
	}
	return &EventHandler{service: service}, nil
}

type createEventRequest struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description" validate:"required,max=1000"`
	Date         time.Time `json:"date" validate:"required"`
	Time         string    `json:"time" validate:"omitempty,max=32"`
	Location     string    `json:"location" validate:"required,max=200"`
	EventType    string    `json:"event_type" validate:"omitempty,max=32"`
	MaxAttendees *int      `json:"max_attendees"`
	ImageURL     string    `json:"image_url" validate:"omitempty,max=2048"`
}

// List returns active events in date order.
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// Get returns one event.
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(requestContext(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// Create schedules a new event.
func (h *EventHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createEventRequest
	if !bindAndValidate(c, &req) {
		return
	}

	event, err := h.service.Create(requestContext(c), userID, services.CreateEventInput{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		EventType:    req.EventType,
		MaxAttendees: req.MaxAttendees,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, event)
}

// RSVP records the caller's attendance.
func (h *EventHandler) RSVP(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	attendee, err := h.service.RSVP(requestContext(c), userID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, attendee)
}

// CancelRSVP removes the caller's attendance.
func (h *EventHandler) CancelRSVP(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	if err := h.service.CancelRSVP(requestContext(c), userID, strings.TrimSpace(c.Param("id"))); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "RSVP cancelled")
}

// Delete soft-deletes an event.
func (h *EventHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	err := h.service.Delete(requestContext(c), userID,
		c.GetString(middleware.CtxRoleKey), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Event deleted")
}
