package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
)

func newTestEventService(t *testing.T, db *gorm.DB) *EventService {
	t.Helper()
	svc, err := NewEventService(db, newTestNotificationService(t, db))
	require.NoError(t, err)
	return svc
}

func createTestEvent(t *testing.T, svc *EventService, organizerID string, maxAttendees *int) *models.Event {
	t.Helper()
	event, err := svc.Create(context.Background(), organizerID, CreateEventInput{
		Title:        "Bible Study",
		Description:  "Romans chapter 8",
		Date:         time.Now().AddDate(0, 0, 7),
		Time:         "18:30",
		Location:     "Main Hall",
		EventType:    models.EventTypeBibleStudy,
		MaxAttendees: maxAttendees,
	})
	require.NoError(t, err)
	return event
}

func TestEventCreateValidates(t *testing.T) {
	db := openServiceTestDB(t)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	svc := newTestEventService(t, db)

	event := createTestEvent(t, svc, leader.ID, nil)
	require.Equal(t, models.EventTypeBibleStudy, event.EventType)

	_, err := svc.Create(context.Background(), leader.ID, CreateEventInput{
		Title: "Bad", Description: "x", Date: time.Now(), Location: "Hall",
		EventType: "party",
	})
	require.Error(t, err)

	zero := 0
	_, err = svc.Create(context.Background(), leader.ID, CreateEventInput{
		Title: "Bad", Description: "x", Date: time.Now(), Location: "Hall",
		MaxAttendees: &zero,
	})
	require.Error(t, err)
}

func TestEventRSVPDuplicateRejected(t *testing.T) {
	db := openServiceTestDB(t)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	member := createTestUser(t, db, models.RoleMember)
	svc := newTestEventService(t, db)

	event := createTestEvent(t, svc, leader.ID, nil)

	_, err := svc.RSVP(context.Background(), member.ID, event.ID)
	require.NoError(t, err)

	_, err = svc.RSVP(context.Background(), member.ID, event.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "BAD_REQUEST", appErr.Code)

	var notifications int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", leader.ID, models.NotificationTypeRSVP).
		Count(&notifications).Error)
	require.EqualValues(t, 1, notifications)
}

func TestEventRSVPCapacity(t *testing.T) {
	db := openServiceTestDB(t)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	first := createTestUser(t, db, models.RoleMember)
	second := createTestUser(t, db, models.RoleMember)
	svc := newTestEventService(t, db)

	one := 1
	event := createTestEvent(t, svc, leader.ID, &one)

	_, err := svc.RSVP(context.Background(), first.ID, event.ID)
	require.NoError(t, err)

	_, err = svc.RSVP(context.Background(), second.ID, event.ID)
	require.Error(t, err)
}

func TestEventCancelRSVP(t *testing.T) {
	db := openServiceTestDB(t)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	member := createTestUser(t, db, models.RoleMember)
	svc := newTestEventService(t, db)

	event := createTestEvent(t, svc, leader.ID, nil)

	require.ErrorIs(t, svc.CancelRSVP(context.Background(), member.ID, event.ID), apperrors.ErrNotFound)

	_, err := svc.RSVP(context.Background(), member.ID, event.ID)
	require.NoError(t, err)
	require.NoError(t, svc.CancelRSVP(context.Background(), member.ID, event.ID))

	// Cancelling frees the slot for a fresh RSVP.
	_, err = svc.RSVP(context.Background(), member.ID, event.ID)
	require.NoError(t, err)
}

func TestEventDeleteAuthorization(t *testing.T) {
	db := openServiceTestDB(t)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	member := createTestUser(t, db, models.RoleMember)
	svc := newTestEventService(t, db)

	event := createTestEvent(t, svc, leader.ID, nil)

	require.Error(t, svc.Delete(context.Background(), member.ID, models.RoleMember, event.ID))
	require.NoError(t, svc.Delete(context.Background(), leader.ID, models.RoleTeamLeader, event.ID))

	events, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, events)
}
