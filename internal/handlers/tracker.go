package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// TrackerHandler exposes the spiritual habit tracker endpoints.
type TrackerHandler struct {
	service *services.TrackerService
}

// NewTrackerHandler constructs a TrackerHandler.
func NewTrackerHandler(db *gorm.DB) (*TrackerHandler, error) {
	service, err := services.NewTrackerService(db)
	if err != nil {
		return nil, err
	}
	return &TrackerHandler{service: service}, nil
}

type upsertLogRequest struct {
	Date                time.Time `json:"date" validate:"required"`
	PrayerMinutes       int       `json:"prayer_minutes"`
	BibleReadingMinutes int       `json:"bible_reading_minutes"`
	DevotionMinutes     int       `json:"devotion_minutes"`
	Notes               string    `json:"notes" validate:"omitempty,max=1000"`
}

// Month returns the caller's logs for one calendar month.
func (h *TrackerHandler) Month(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	now := time.Now().UTC()
	year := parseIntQuery(c, "year", now.Year())
	month := parseIntQuery(c, "month", int(now.Month()))

	logs, err := h.service.Month(requestContext(c), userID, year, time.Month(month))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logs": logs})
}

// UpsertDay writes the caller's log for one day.
func (h *TrackerHandler) UpsertDay(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req upsertLogRequest
	if !bindAndValidate(c, &req) {
		return
	}

	log, err := h.service.UpsertDay(requestContext(c), userID, services.UpsertLogInput{
		Date:                req.Date,
		PrayerMinutes:       req.PrayerMinutes,
		BibleReadingMinutes: req.BibleReadingMinutes,
		DevotionMinutes:     req.DevotionMinutes,
		Notes:               req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, log)
}
