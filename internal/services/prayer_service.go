package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
)

// streakSampleSize bounds how many recent entries feed the streak
// computation; older history does not move the current streak.
const streakSampleSize = 30

// weeklyPrayerGoal is the fixed target surfaced in statistics.
const weeklyPrayerGoal = 7

// PrayerOption customises PrayerService behaviour.
type PrayerOption func(*PrayerService)

// WithPrayerClock injects a custom clock primarily for testing.
func WithPrayerClock(clock func() time.Time) PrayerOption {
	return func(s *PrayerService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// PrayerService manages a member's private prayer journal and its statistics.
type PrayerService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPrayerService constructs a PrayerService.
func NewPrayerService(db *gorm.DB, opts ...PrayerOption) (*PrayerService, error) {
	if db == nil {
		return nil, errors.New("prayer service: db is required")
	}
	service := &PrayerService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// CreatePrayerInput describes a new journal entry.
type CreatePrayerInput struct {
	Type        string
	Title       string
	Description string
	Duration    int
	Tags        []string
	IsPrivate   *bool
}

// UpdatePrayerInput enumerates the mutable entry attributes.
type UpdatePrayerInput struct {
	Title               *string
	Description         *string
	Duration            *int
	Tags                []string
	IsAnswered          *bool
	AnsweredDescription *string
}

// PrayerFilters narrows List results.
type PrayerFilters struct {
	Start *time.Time
	End   *time.Time
	Type  string
	Limit int
}

// PrayerStats is the aggregate view of a member's prayer life.
type PrayerStats struct {
	TotalPrayers    int64 `json:"total_prayers"`
	TotalDuration   int64 `json:"total_duration"`
	AnsweredPrayers int64 `json:"answered_prayers"`
	WeeklyGoal      int   `json:"weekly_goal"`
	CurrentStreak   int   `json:"current_streak"`
	LongestStreak   int   `json:"longest_streak"`
	ThisWeekPrayers int64 `json:"this_week_prayers"`
}

// List returns the owner's entries, newest first.
func (s *PrayerService) List(ctx context.Context, userID string, filters PrayerFilters) ([]models.PrayerEntry, error) {
	ctx = ensureContext(ctx)

	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filters.Start != nil {
		query = query.Where("created_at >= ?", *filters.Start)
	}
	if filters.End != nil {
		query = query.Where("created_at <= ?", *filters.End)
	}
	if prayerType := strings.TrimSpace(filters.Type); prayerType != "" {
		query = query.Where("type = ?", prayerType)
	}

	var entries []models.PrayerEntry
	if err := query.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("prayer service: list entries: %w", err)
	}
	return entries, nil
}

// Create records a new entry for the owner.
func (s *PrayerService) Create(ctx context.Context, userID string, input CreatePrayerInput) (*models.PrayerEntry, error) {
	ctx = ensureContext(ctx)

	prayerType := strings.ToLower(strings.TrimSpace(input.Type))
	if !containsString(models.PrayerTypes, prayerType) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("type must be one of %s", strings.Join(models.PrayerTypes, ", ")))
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewBadRequest("description is required")
	}
	if input.Duration < 1 {
		return nil, apperrors.NewBadRequest("duration must be at least 1 minute")
	}

	entry := &models.PrayerEntry{
		UserID:      userID,
		Type:        prayerType,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Duration:    input.Duration,
		IsPrivate:   true,
	}
	if input.IsPrivate != nil {
		entry.IsPrivate = *input.IsPrivate
	}
	if len(input.Tags) > 0 {
		tags, err := marshalTags(input.Tags)
		if err != nil {
			return nil, err
		}
		entry.Tags = tags
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("prayer service: create entry: %w", err)
	}
	return entry, nil
}

// Update applies a partial update to an entry the user owns. Marking an entry
// answered requires a description of the answer; the transition is one-way.
func (s *PrayerService) Update(ctx context.Context, userID, entryID string, input UpdatePrayerInput) (*models.PrayerEntry, error) {
	ctx = ensureContext(ctx)

	var entry models.PrayerEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("prayer service: load entry: %w", err)
	}

	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewBadRequest("title cannot be empty")
		}
		updates["title"] = title
		entry.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, apperrors.NewBadRequest("description cannot be empty")
		}
		updates["description"] = description
		entry.Description = description
	}
	if input.Duration != nil {
		if *input.Duration < 1 {
			return nil, apperrors.NewBadRequest("duration must be at least 1 minute")
		}
		updates["duration"] = *input.Duration
		entry.Duration = *input.Duration
	}
	if input.Tags != nil {
		tags, err := marshalTags(input.Tags)
		if err != nil {
			return nil, err
		}
		updates["tags"] = tags
		entry.Tags = tags
	}
	if input.IsAnswered != nil {
		if !*input.IsAnswered && entry.IsAnswered {
			return nil, apperrors.NewBadRequest("an answered prayer cannot be marked unanswered")
		}
		if *input.IsAnswered && !entry.IsAnswered {
			description := ""
			if input.AnsweredDescription != nil {
				description = strings.TrimSpace(*input.AnsweredDescription)
			}
			if description == "" {
				return nil, apperrors.NewBadRequest("answered_description is required when marking a prayer answered")
			}
			now := s.now()
			updates["is_answered"] = true
			updates["answered_date"] = now
			updates["answered_description"] = description
			entry.IsAnswered = true
			entry.AnsweredDate = &now
			entry.AnsweredDescription = description
		}
	}

	if len(updates) == 0 {
		return &entry, nil
	}

	if err := s.db.WithContext(ctx).Model(&entry).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("prayer service: update entry: %w", err)
	}
	return &entry, nil
}

// Delete hard-deletes an entry the user owns.
func (s *PrayerService) Delete(ctx context.Context, userID, entryID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.PrayerEntry{})
	if result.Error != nil {
		return fmt.Errorf("prayer service: delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Stats aggregates the owner's prayer statistics. Totals span the entire
// journal; the weekly count starts at the most recent Sunday local midnight;
// the streak walks back day by day from today over the latest entries.
func (s *PrayerService) Stats(ctx context.Context, userID string) (*PrayerStats, error) {
	ctx = ensureContext(ctx)

	stats := &PrayerStats{WeeklyGoal: weeklyPrayerGoal}
	base := s.db.WithContext(ctx).Model(&models.PrayerEntry{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalPrayers).Error; err != nil {
		return nil, fmt.Errorf("prayer service: count entries: %w", err)
	}

	var totalDuration sql.NullInt64
	if err := base.Session(&gorm.Session{}).
		Select("SUM(duration)").
		Scan(&totalDuration).Error; err != nil {
		return nil, fmt.Errorf("prayer service: sum duration: %w", err)
	}
	stats.TotalDuration = totalDuration.Int64

	if err := base.Session(&gorm.Session{}).
		Where("is_answered = ?", true).
		Count(&stats.AnsweredPrayers).Error; err != nil {
		return nil, fmt.Errorf("prayer service: count answered: %w", err)
	}

	now := s.now()
	if err := base.Session(&gorm.Session{}).
		Where("created_at >= ?", startOfWeek(now)).
		Count(&stats.ThisWeekPrayers).Error; err != nil {
		return nil, fmt.Errorf("prayer service: count this week: %w", err)
	}

	var recent []models.PrayerEntry
	if err := s.db.WithContext(ctx).
		Select("created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(streakSampleSize).
		Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("prayer service: load recent entries: %w", err)
	}

	stats.CurrentStreak = currentStreak(recent, now)
	stats.LongestStreak = estimateLongestStreak(stats.CurrentStreak, stats.TotalPrayers)
	return stats, nil
}

// currentStreak counts consecutive calendar days with at least one entry,
// walking back from today. A day without entries, today included, ends the
// streak immediately.
func currentStreak(entries []models.PrayerEntry, now time.Time) int {
	days := make(map[time.Time]struct{}, len(entries))
	for _, entry := range entries {
		days[dayOf(entry.CreatedAt.In(now.Location()))] = struct{}{}
	}

	streak := 0
	for day := dayOf(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// estimateLongestStreak approximates the longest streak without a full
// history scan: the longer of the current streak and one prayer-day per week
// of journalling. Kept in one place so a true historical computation can
// replace it later.
func estimateLongestStreak(current int, totalPrayers int64) int {
	estimate := int(totalPrayers / 7)
	if current > estimate {
		return current
	}
	return estimate
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	data, err := json.Marshal(cleaned)
	if err != nil {
		return nil, fmt.Errorf("prayer service: marshal tags: %w", err)
	}
	return datatypes.JSON(data), nil
}
