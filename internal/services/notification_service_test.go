package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
)

func TestNotificationCreateSkipsSelf(t *testing.T) {
	db := openServiceTestDB(t)
	user := createTestUser(t, db, models.RoleMember)
	svc := newTestNotificationService(t, db)

	created, err := svc.Create(context.Background(), CreateNotificationInput{
		RecipientID: user.ID,
		SenderID:    user.ID,
		Type:        models.NotificationTypeLike,
		Message:     "self",
	})
	require.NoError(t, err)
	require.Nil(t, created)

	count, err := svc.UnreadCount(context.Background(), user.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestNotificationListAndCounts(t *testing.T) {
	db := openServiceTestDB(t)
	recipient := createTestUser(t, db, models.RoleMember)
	sender := createTestUser(t, db, models.RoleMember)
	svc := newTestNotificationService(t, db)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), CreateNotificationInput{
			RecipientID: recipient.ID,
			SenderID:    sender.ID,
			Type:        models.NotificationTypeLike,
			Message:     "liked your post",
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), CreateNotificationInput{
		RecipientID: recipient.ID,
		SenderID:    sender.ID,
		Type:        models.NotificationTypeComment,
		Message:     "commented",
	})
	require.NoError(t, err)

	page, err := svc.ListForUser(context.Background(), ListNotificationsInput{
		RecipientID: recipient.ID,
	})
	require.NoError(t, err)
	require.EqualValues(t, 4, page.Total)
	require.EqualValues(t, 4, page.UnreadCount)
	require.Len(t, page.Notifications, 4)
	require.NotNil(t, page.Notifications[0].Sender)

	typed, err := svc.ListForUser(context.Background(), ListNotificationsInput{
		RecipientID: recipient.ID,
		Type:        models.NotificationTypeComment,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, typed.Total)
}

func TestNotificationMarkReadAndMarkAll(t *testing.T) {
	db := openServiceTestDB(t)
	recipient := createTestUser(t, db, models.RoleMember)
	sender := createTestUser(t, db, models.RoleMember)
	svc := newTestNotificationService(t, db)

	first, err := svc.Create(context.Background(), CreateNotificationInput{
		RecipientID: recipient.ID, SenderID: sender.ID,
		Type: models.NotificationTypeLike, Message: "one",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateNotificationInput{
		RecipientID: recipient.ID, SenderID: sender.ID,
		Type: models.NotificationTypeLike, Message: "two",
	})
	require.NoError(t, err)

	read, err := svc.MarkRead(context.Background(), recipient.ID, first.ID)
	require.NoError(t, err)
	require.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	// Another user cannot mark it.
	_, err = svc.MarkRead(context.Background(), sender.ID, first.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.MarkAllRead(context.Background(), recipient.ID))
	count, err := svc.UnreadCount(context.Background(), recipient.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestNotificationDeleteAndDeleteRead(t *testing.T) {
	db := openServiceTestDB(t)
	recipient := createTestUser(t, db, models.RoleMember)
	sender := createTestUser(t, db, models.RoleMember)
	svc := newTestNotificationService(t, db)

	first, err := svc.Create(context.Background(), CreateNotificationInput{
		RecipientID: recipient.ID, SenderID: sender.ID,
		Type: models.NotificationTypeLike, Message: "one",
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), CreateNotificationInput{
		RecipientID: recipient.ID, SenderID: sender.ID,
		Type: models.NotificationTypeLike, Message: "two",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), recipient.ID, first.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), recipient.ID, first.ID), apperrors.ErrNotFound)

	_, err = svc.MarkRead(context.Background(), recipient.ID, second.ID)
	require.NoError(t, err)

	removed, err := svc.DeleteRead(context.Background(), recipient.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)
}

func TestNotificationPurgeReadBefore(t *testing.T) {
	db := openServiceTestDB(t)
	recipient := createTestUser(t, db, models.RoleMember)
	sender := createTestUser(t, db, models.RoleMember)
	svc := newTestNotificationService(t, db)

	n, err := svc.Create(context.Background(), CreateNotificationInput{
		RecipientID: recipient.ID, SenderID: sender.ID,
		Type: models.NotificationTypeLike, Message: "old",
	})
	require.NoError(t, err)
	_, err = svc.MarkRead(context.Background(), recipient.ID, n.ID)
	require.NoError(t, err)

	purged, err := svc.PurgeReadBefore(context.Background(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)
}
