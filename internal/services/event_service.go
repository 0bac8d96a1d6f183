package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/logger"
)

// EventOption customises EventService behaviour.
type EventOption func(*EventService)

// WithEventClock injects a custom clock primarily for testing.
func WithEventClock(clock func() time.Time) EventOption {
	return func(s *EventService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// CreateEventInput describes a new gathering.
type CreateEventInput struct {
	Title        string
	Description  string
	Date         time.Time
	Time         string
	Location     string
	EventType    string
	MaxAttendees *int
	ImageURL     string
}

// EventService manages gatherings and their RSVPs.
type EventService struct {
	db            *gorm.DB
	notifications *NotificationService
	now           func() time.Time
	log           *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(db *gorm.DB, notifications *NotificationService, opts ...EventOption) (*EventService, error) {
	if db == nil {
		return nil, errors.New("event service: db is required")
	}
	if notifications == nil {
		return nil, errors.New("event service: notification service is required")
	}
	service := &EventService{
		db:            db,
		notifications: notifications,
		now:           time.Now,
		log:           logger.WithModule("events"),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// List returns active events in date order with organizer and attendees.
func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	ctx = ensureContext(ctx)

	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Organizer").
		Preload("Attendees.User").
		Where("is_active = ?", true).
		Order("date ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("event service: list events: %w", err)
	}
	return events, nil
}

// Get loads one active event.
func (s *EventService) Get(ctx context.Context, eventID string) (*models.Event, error) {
	ctx = ensureContext(ctx)
	return s.loadActiveEvent(ctx, eventID, true)
}

// Create schedules a new event organized by organizerID.
func (s *EventService) Create(ctx context.Context, organizerID string, input CreateEventInput) (*models.Event, error) {
	ctx = ensureContext(ctx)

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	location := strings.TrimSpace(input.Location)
	if title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}
	if description == "" {
		return nil, apperrors.NewBadRequest("description is required")
	}
	if location == "" {
		return nil, apperrors.NewBadRequest("location is required")
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewBadRequest("date is required")
	}

	eventType := strings.ToLower(strings.TrimSpace(input.EventType))
	if eventType == "" {
		eventType = models.EventTypeFellowship
	}
	if !containsString(models.EventTypes, eventType) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("event_type must be one of %s", strings.Join(models.EventTypes, ", ")))
	}
	if input.MaxAttendees != nil && *input.MaxAttendees < 1 {
		return nil, apperrors.NewBadRequest("max_attendees must be at least 1")
	}

	event := &models.Event{
		Title:        title,
		Description:  description,
		Date:         input.Date,
		Time:         strings.TrimSpace(input.Time),
		Location:     location,
		OrganizerID:  organizerID,
		EventType:    eventType,
		MaxAttendees: input.MaxAttendees,
		ImageURL:     strings.TrimSpace(input.ImageURL),
		IsActive:     true,
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("event service: create event: %w", err)
	}
	return event, nil
}

// RSVP records the user's attendance. A second RSVP and an RSVP against a
// full event both fail with a bad request.
func (s *EventService) RSVP(ctx context.Context, userID, eventID string) (*models.EventAttendee, error) {
	ctx = ensureContext(ctx)

	event, err := s.loadActiveEvent(ctx, eventID, false)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.EventAttendee{}).
		Where("event_id = ?", event.ID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("event service: count attendees: %w", err)
	}
	if event.MaxAttendees != nil && count >= int64(*event.MaxAttendees) {
		return nil, apperrors.NewBadRequest("event is full")
	}

	attendee := &models.EventAttendee{
		EventID:  event.ID,
		UserID:   userID,
		RSVPDate: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(attendee).Error; err != nil {
		// The unique index on (event_id, user_id) enforces one RSVP per
		// member no matter how requests interleave.
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewBadRequest("already attending this event")
		}
		return nil, fmt.Errorf("event service: create rsvp: %w", err)
	}

	if _, err := s.notifications.Create(ctx, CreateNotificationInput{
		RecipientID:    event.OrganizerID,
		SenderID:       userID,
		Type:           models.NotificationTypeRSVP,
		Message:        fmt.Sprintf("Someone is attending %s", event.Title),
		RelatedEventID: &event.ID,
	}); err != nil {
		s.log.Warn("rsvp notification failed", zap.Error(err))
	}

	return attendee, nil
}

// CancelRSVP removes the user's attendance record.
func (s *EventService) CancelRSVP(ctx context.Context, userID, eventID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventAttendee{})
	if result.Error != nil {
		return fmt.Errorf("event service: cancel rsvp: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete soft-deletes an event. Only the organizer or a super admin may delete.
func (s *EventService) Delete(ctx context.Context, userID, userRole, eventID string) error {
	ctx = ensureContext(ctx)

	event, err := s.loadActiveEvent(ctx, eventID, false)
	if err != nil {
		return err
	}
	if event.OrganizerID != userID && userRole != models.RoleSuperAdmin {
		return apperrors.NewForbidden("only the organizer or an admin can delete this event")
	}

	if err := s.db.WithContext(ctx).Model(event).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("event service: delete event: %w", err)
	}
	return nil
}

func (s *EventService) loadActiveEvent(ctx context.Context, eventID string, preload bool) (*models.Event, error) {
	query := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", eventID, true)
	if preload {
		query = query.Preload("Organizer").Preload("Attendees.User")
	}

	var event models.Event
	if err := query.First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("event service: load event: %w", err)
	}
	return &event, nil
}
