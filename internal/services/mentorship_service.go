package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/logger"
)

// CreateMentorshipInput describes a member's mentorship request.
type CreateMentorshipInput struct {
	Topic          string
	Details        string
	IsAnonymous    bool
	PreferredTimes []string
}

// MentorshipService runs the mentorship workflow: a member submits a request,
// leaders are notified, one leader accepts (or declines), schedules a session
// and finally marks it completed. Requester and assigned leader share a
// private message thread.
type MentorshipService struct {
	db            *gorm.DB
	notifications *NotificationService
	log           *zap.Logger
}

// NewMentorshipService constructs a MentorshipService.
func NewMentorshipService(db *gorm.DB, notifications *NotificationService) (*MentorshipService, error) {
	if db == nil {
		return nil, errors.New("mentorship service: db is required")
	}
	if notifications == nil {
		return nil, errors.New("mentorship service: notification service is required")
	}
	return &MentorshipService{
		db:            db,
		notifications: notifications,
		log:           logger.WithModule("mentorship"),
	}, nil
}

// Create submits a new request and notifies every leader.
func (s *MentorshipService) Create(ctx context.Context, requesterID string, input CreateMentorshipInput) (*models.MentorshipRequest, error) {
	ctx = ensureContext(ctx)

	topic := strings.TrimSpace(input.Topic)
	if !containsString(models.MentorshipTopics, topic) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("topic must be one of %s", strings.Join(models.MentorshipTopics, ", ")))
	}

	request := &models.MentorshipRequest{
		RequesterID: requesterID,
		IsAnonymous: input.IsAnonymous,
		Topic:       topic,
		Details:     strings.TrimSpace(input.Details),
		Status:      models.MentorshipStatusPending,
		IsActive:    true,
	}
	if len(input.PreferredTimes) > 0 {
		data, err := json.Marshal(input.PreferredTimes)
		if err != nil {
			return nil, fmt.Errorf("mentorship service: marshal preferred times: %w", err)
		}
		request.PreferredTimes = datatypes.JSON(data)
	}

	if err := s.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, fmt.Errorf("mentorship service: create request: %w", err)
	}

	leaderIDs, err := s.leaderIDs(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.notifications.CreateForMany(ctx, leaderIDs, CreateNotificationInput{
		SenderID: requesterID,
		Type:     models.NotificationTypeMentorshipSubmitted,
		Message:  fmt.Sprintf("New mentorship request: %s", topic),
	}); err != nil {
		s.log.Warn("leader notification failed", zap.Error(err))
	}

	return request, nil
}

// ListForRequester returns the member's own requests, newest first.
func (s *MentorshipService) ListForRequester(ctx context.Context, requesterID string) ([]models.MentorshipRequest, error) {
	ctx = ensureContext(ctx)

	var requests []models.MentorshipRequest
	err := s.db.WithContext(ctx).
		Preload("AssignedLeader").
		Where("requester_id = ? AND is_active = ?", requesterID, true).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("mentorship service: list requests: %w", err)
	}
	return requests, nil
}

// ListForLeaders returns all active requests for the leader dashboard,
// optionally filtered by status.
func (s *MentorshipService) ListForLeaders(ctx context.Context, status string) ([]models.MentorshipRequest, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Preload("Requester").
		Preload("AssignedLeader").
		Where("is_active = ?", true)
	if status = strings.TrimSpace(status); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.MentorshipRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("mentorship service: list requests: %w", err)
	}
	return requests, nil
}

// Get loads one request including its thread. Only the requester, the
// assigned leader, or a leader reviewing a pending request may read it.
func (s *MentorshipService) Get(ctx context.Context, userID, userRole, requestID string) (*models.MentorshipRequest, error) {
	ctx = ensureContext(ctx)

	request, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !s.isParty(request, userID) && !models.IsLeaderRole(userRole) {
		return nil, apperrors.NewForbidden("not a participant in this request")
	}
	return request, nil
}

// Accept assigns the acting leader and moves the request to accepted.
func (s *MentorshipService) Accept(ctx context.Context, leaderID, requestID string) (*models.MentorshipRequest, error) {
	return s.transition(ctx, leaderID, requestID, models.MentorshipStatusAccepted, nil)
}

// Decline moves the request to declined.
func (s *MentorshipService) Decline(ctx context.Context, leaderID, requestID string) (*models.MentorshipRequest, error) {
	return s.transition(ctx, leaderID, requestID, models.MentorshipStatusDeclined, nil)
}

// Schedule records the session time and moves the request to scheduled.
func (s *MentorshipService) Schedule(ctx context.Context, leaderID, requestID string, at time.Time) (*models.MentorshipRequest, error) {
	if at.IsZero() {
		return nil, apperrors.NewBadRequest("scheduled_at is required")
	}
	return s.transition(ctx, leaderID, requestID, models.MentorshipStatusScheduled, &at)
}

// Complete closes out a scheduled request.
func (s *MentorshipService) Complete(ctx context.Context, leaderID, requestID string) (*models.MentorshipRequest, error) {
	return s.transition(ctx, leaderID, requestID, models.MentorshipStatusCompleted, nil)
}

// AddMessage appends to the private thread and notifies the other party.
func (s *MentorshipService) AddMessage(ctx context.Context, userID, requestID, content string) (*models.MentorshipMessage, error) {
	ctx = ensureContext(ctx)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequest("message content is required")
	}

	request, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !s.isParty(request, userID) {
		return nil, apperrors.NewForbidden("not a participant in this request")
	}

	message := &models.MentorshipMessage{
		RequestID: request.ID,
		SenderID:  userID,
		Content:   content,
	}
	if err := s.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, fmt.Errorf("mentorship service: create message: %w", err)
	}

	recipientID := request.RequesterID
	if userID == request.RequesterID && request.AssignedLeaderID != nil {
		recipientID = *request.AssignedLeaderID
	}
	if _, err := s.notifications.Create(ctx, CreateNotificationInput{
		RecipientID: recipientID,
		SenderID:    userID,
		Type:        models.NotificationTypeMentorshipMessage,
		Message:     "New message on your mentorship request",
	}); err != nil {
		s.log.Warn("message notification failed", zap.Error(err))
	}

	return message, nil
}

func (s *MentorshipService) transition(ctx context.Context, leaderID, requestID, status string, scheduledAt *time.Time) (*models.MentorshipRequest, error) {
	ctx = ensureContext(ctx)

	request, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !allowedTransition(request.Status, status) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("cannot move request from %s to %s", request.Status, status))
	}

	updates := map[string]any{
		"status":             status,
		"assigned_leader_id": leaderID,
	}
	if scheduledAt != nil {
		updates["scheduled_at"] = *scheduledAt
	}

	if err := s.db.WithContext(ctx).Model(request).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("mentorship service: update status: %w", err)
	}
	request.Status = status
	request.AssignedLeaderID = &leaderID
	if scheduledAt != nil {
		request.ScheduledAt = scheduledAt
	}

	if _, err := s.notifications.Create(ctx, CreateNotificationInput{
		RecipientID: request.RequesterID,
		SenderID:    leaderID,
		Type:        models.NotificationTypeMentorshipUpdated,
		Message:     fmt.Sprintf("Your mentorship request is now %s", status),
	}); err != nil {
		s.log.Warn("status notification failed", zap.Error(err))
	}

	return request, nil
}

// allowedTransition encodes the status workflow. Declined and completed are
// terminal.
func allowedTransition(from, to string) bool {
	switch from {
	case models.MentorshipStatusPending:
		return to == models.MentorshipStatusAccepted || to == models.MentorshipStatusDeclined
	case models.MentorshipStatusAccepted:
		return to == models.MentorshipStatusScheduled || to == models.MentorshipStatusDeclined
	case models.MentorshipStatusScheduled:
		return to == models.MentorshipStatusCompleted
	default:
		return false
	}
}

func (s *MentorshipService) load(ctx context.Context, requestID string) (*models.MentorshipRequest, error) {
	var request models.MentorshipRequest
	err := s.db.WithContext(ctx).
		Preload("Requester").
		Preload("AssignedLeader").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Messages.Sender").
		Where("id = ? AND is_active = ?", requestID, true).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("mentorship service: load request: %w", err)
	}
	return &request, nil
}

func (s *MentorshipService) isParty(request *models.MentorshipRequest, userID string) bool {
	if request.RequesterID == userID {
		return true
	}
	return request.AssignedLeaderID != nil && *request.AssignedLeaderID == userID
}

func (s *MentorshipService) leaderIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role IN ? AND is_active = ?", models.InviteRoles, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("mentorship service: load leaders: %w", err)
	}
	return ids, nil
}
