package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/internal/realtime"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/metrics"
)

// CreateNotificationInput defines attributes required to persist a notification.
type CreateNotificationInput struct {
	RecipientID    string
	SenderID       string
	Type           string
	Message        string
	RelatedPostID  *string
	RelatedEventID *string
}

// ListNotificationsInput defines filters for querying user notifications.
type ListNotificationsInput struct {
	RecipientID string
	Type        string
	UnreadOnly  bool
	Limit       int
	Offset      int
}

// NotificationPage bundles a page of notifications with its counts.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	UnreadCount   int64                 `json:"unread_count"`
}

// NotificationService manages in-app notifications and pushes created events
// to the recipient's realtime stream. The hub is optional; a nil hub keeps
// persistence working without delivery.
type NotificationService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(db *gorm.DB, hub *realtime.Hub) (*NotificationService, error) {
	if db == nil {
		return nil, errors.New("notification service: db is required")
	}
	return &NotificationService{db: db, hub: hub}, nil
}

// Create persists a notification and broadcasts it to the recipient.
// Self-notifications are silently skipped.
func (s *NotificationService) Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	ctx = ensureContext(ctx)

	recipientID := strings.TrimSpace(input.RecipientID)
	senderID := strings.TrimSpace(input.SenderID)
	if recipientID == "" {
		return nil, errors.New("notification service: recipient is required")
	}
	if senderID == "" {
		return nil, errors.New("notification service: sender is required")
	}
	if recipientID == senderID {
		return nil, nil
	}
	notificationType := strings.TrimSpace(input.Type)
	if notificationType == "" {
		return nil, errors.New("notification service: type is required")
	}

	notification := models.Notification{
		RecipientID:    recipientID,
		SenderID:       senderID,
		Type:           notificationType,
		Message:        strings.TrimSpace(input.Message),
		RelatedPostID:  input.RelatedPostID,
		RelatedEventID: input.RelatedEventID,
	}

	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("notification service: create notification: %w", err)
	}

	metrics.NotificationsPublished.WithLabelValues(notificationType).Inc()
	s.push(recipientID, "notification.created", &notification)
	return &notification, nil
}

// CreateForMany fans one notification out to several recipients, skipping the
// sender. Used for leader announcements and mentorship submissions.
func (s *NotificationService) CreateForMany(ctx context.Context, recipientIDs []string, input CreateNotificationInput) error {
	for _, recipientID := range recipientIDs {
		input.RecipientID = recipientID
		if _, err := s.Create(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

// ListForUser returns a page of the user's notifications, newest first, with
// overall and unread totals for the badge.
func (s *NotificationService) ListForUser(ctx context.Context, input ListNotificationsInput) (*NotificationPage, error) {
	ctx = ensureContext(ctx)

	recipientID := strings.TrimSpace(input.RecipientID)
	if recipientID == "" {
		return nil, errors.New("notification service: recipient is required")
	}

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID)
	if notificationType := strings.TrimSpace(input.Type); notificationType != "" {
		query = query.Where("type = ?", notificationType)
	}
	if input.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("notification service: count notifications: %w", err)
	}

	var rows []models.Notification
	if err := query.
		Preload("Sender").
		Preload("RelatedPost").
		Preload("RelatedEvent").
		Order("created_at DESC").
		Limit(limit).
		Offset(max(0, input.Offset)).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("notification service: list notifications: %w", err)
	}

	unread, err := s.UnreadCount(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return &NotificationPage{Notifications: rows, Total: total, UnreadCount: unread}, nil
}

// UnreadCount returns the user's unread notification count.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	ctx = ensureContext(ctx)

	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("notification service: unread count: %w", err)
	}
	return count, nil
}

// MarkRead sets the read flag on a notification owned by the user.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID string) (*models.Notification, error) {
	ctx = ensureContext(ctx)

	var notification models.Notification
	if err := s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("notification service: load notification: %w", err)
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&notification).
		Updates(map[string]any{"is_read": true, "read_at": now}).Error; err != nil {
		return nil, fmt.Errorf("notification service: mark read: %w", err)
	}

	notification.IsRead = true
	notification.ReadAt = &now
	s.push(recipientID, "notification.read", &notification)
	return &notification, nil
}

// MarkAllRead marks every unread notification for the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	ctx = ensureContext(ctx)

	now := time.Now().UTC()
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]any{"is_read": true, "read_at": now}).Error
	if err != nil {
		return fmt.Errorf("notification service: mark all read: %w", err)
	}

	s.push(recipientID, "notification.read_all", nil)
	return nil
}

// Delete removes a notification owned by the user.
func (s *NotificationService) Delete(ctx context.Context, recipientID, notificationID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return fmt.Errorf("notification service: delete notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRead removes all of the user's read notifications, returning the count.
func (s *NotificationService) DeleteRead(ctx context.Context, recipientID string) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("recipient_id = ? AND is_read = ?", recipientID, true).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: delete read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// PurgeReadBefore hard-deletes read notifications older than cutoff. Invoked
// by the maintenance scheduler.
func (s *NotificationService) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Where("is_read = ? AND read_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		return 0, fmt.Errorf("notification service: purge read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *NotificationService) push(recipientID, event string, notification *models.Notification) {
	if s.hub == nil {
		return
	}
	message := realtime.Message{Event: event}
	if notification != nil {
		message.Data = notification
	}
	s.hub.NotifyUser(realtime.StreamNotifications, recipientID, message)
}
