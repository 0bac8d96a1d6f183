package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
)

// UpsertLogInput carries one day's habit minutes. Negative values are clamped
// to zero rather than rejected.
type UpsertLogInput struct {
	Date                time.Time
	PrayerMinutes       int
	BibleReadingMinutes int
	DevotionMinutes     int
	Notes               string
}

// TrackerService stores daily spiritual habit logs, one row per user per day.
type TrackerService struct {
	db *gorm.DB
}

// NewTrackerService constructs a TrackerService.
func NewTrackerService(db *gorm.DB) (*TrackerService, error) {
	if db == nil {
		return nil, errors.New("tracker service: db is required")
	}
	return &TrackerService{db: db}, nil
}

// Month returns the user's logs for one calendar month in date order.
func (s *TrackerService) Month(ctx context.Context, userID string, year int, month time.Month) ([]models.SpiritualLog, error) {
	ctx = ensureContext(ctx)

	if year < 1970 || year > 9999 {
		return nil, apperrors.NewBadRequest("year out of range")
	}
	if month < time.January || month > time.December {
		return nil, apperrors.NewBadRequest("month must be between 1 and 12")
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var logs []models.SpiritualLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("tracker service: list month: %w", err)
	}
	return logs, nil
}

// UpsertDay writes the log for one day, replacing any previous values for the
// same (user, day) pair.
func (s *TrackerService) UpsertDay(ctx context.Context, userID string, input UpsertLogInput) (*models.SpiritualLog, error) {
	ctx = ensureContext(ctx)

	if input.Date.IsZero() {
		return nil, apperrors.NewBadRequest("date is required")
	}

	log := &models.SpiritualLog{
		UserID:              userID,
		Date:                normalizeDay(input.Date),
		PrayerMinutes:       clampMinutes(input.PrayerMinutes),
		BibleReadingMinutes: clampMinutes(input.BibleReadingMinutes),
		DevotionMinutes:     clampMinutes(input.DevotionMinutes),
		Notes:               strings.TrimSpace(input.Notes),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"prayer_minutes", "bible_reading_minutes", "devotion_minutes", "notes", "updated_at",
			}),
		}).
		Create(log).Error
	if err != nil {
		return nil, fmt.Errorf("tracker service: upsert day: %w", err)
	}

	// Re-read so callers see the persisted row regardless of which branch
	// the conflict clause took.
	var saved models.SpiritualLog
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, log.Date).
		First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("tracker service: reload day: %w", err)
	}
	return &saved, nil
}

// normalizeDay truncates to midnight UTC so one calendar day maps to exactly
// one row.
func normalizeDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

func clampMinutes(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes
}
