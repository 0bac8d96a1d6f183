package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
)

func newTestMentorshipService(t *testing.T, db *gorm.DB) *MentorshipService {
	t.Helper()
	svc, err := NewMentorshipService(db, newTestNotificationService(t, db))
	require.NoError(t, err)
	return svc
}

func TestMentorshipCreateNotifiesLeaders(t *testing.T) {
	db := openServiceTestDB(t)
	requester := createTestUser(t, db, models.RoleMember)
	leaderA := createTestUser(t, db, models.RoleTeamLeader)
	leaderB := createTestUser(t, db, models.RoleGeneralLeader)
	svc := newTestMentorshipService(t, db)

	request, err := svc.Create(context.Background(), requester.ID, CreateMentorshipInput{
		Topic:          "Spiritual Growth",
		Details:        "I want to grow in prayer",
		PreferredTimes: []string{"Saturday morning"},
	})
	require.NoError(t, err)
	require.Equal(t, models.MentorshipStatusPending, request.Status)

	var notified int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("type = ? AND recipient_id IN ?",
			models.NotificationTypeMentorshipSubmitted,
			[]string{leaderA.ID, leaderB.ID}).
		Count(&notified).Error)
	require.EqualValues(t, 2, notified)

	_, err = svc.Create(context.Background(), requester.ID, CreateMentorshipInput{Topic: "Gardening"})
	require.Error(t, err)
}

func TestMentorshipWorkflow(t *testing.T) {
	db := openServiceTestDB(t)
	requester := createTestUser(t, db, models.RoleMember)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	svc := newTestMentorshipService(t, db)

	request, err := svc.Create(context.Background(), requester.ID, CreateMentorshipInput{
		Topic: "Career",
	})
	require.NoError(t, err)

	accepted, err := svc.Accept(context.Background(), leader.ID, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.MentorshipStatusAccepted, accepted.Status)
	require.Equal(t, leader.ID, *accepted.AssignedLeaderID)

	// Completed is unreachable before scheduling.
	_, err = svc.Complete(context.Background(), leader.ID, request.ID)
	require.Error(t, err)

	at := time.Now().AddDate(0, 0, 3)
	scheduled, err := svc.Schedule(context.Background(), leader.ID, request.ID, at)
	require.NoError(t, err)
	require.Equal(t, models.MentorshipStatusScheduled, scheduled.Status)
	require.NotNil(t, scheduled.ScheduledAt)

	completed, err := svc.Complete(context.Background(), leader.ID, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.MentorshipStatusCompleted, completed.Status)

	// Terminal states admit no further transitions.
	_, err = svc.Accept(context.Background(), leader.ID, request.ID)
	require.Error(t, err)

	var updates int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", requester.ID, models.NotificationTypeMentorshipUpdated).
		Count(&updates).Error)
	require.EqualValues(t, 3, updates)
}

func TestMentorshipDecline(t *testing.T) {
	db := openServiceTestDB(t)
	requester := createTestUser(t, db, models.RoleMember)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	svc := newTestMentorshipService(t, db)

	request, err := svc.Create(context.Background(), requester.ID, CreateMentorshipInput{
		Topic: "Relationships",
	})
	require.NoError(t, err)

	declined, err := svc.Decline(context.Background(), leader.ID, request.ID)
	require.NoError(t, err)
	require.Equal(t, models.MentorshipStatusDeclined, declined.Status)

	_, err = svc.Schedule(context.Background(), leader.ID, request.ID, time.Now())
	require.Error(t, err)
}

func TestMentorshipThreadPartyOnly(t *testing.T) {
	db := openServiceTestDB(t)
	requester := createTestUser(t, db, models.RoleMember)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	outsider := createTestUser(t, db, models.RoleMember)
	svc := newTestMentorshipService(t, db)

	request, err := svc.Create(context.Background(), requester.ID, CreateMentorshipInput{
		Topic: "Mental Health",
	})
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), leader.ID, request.ID)
	require.NoError(t, err)

	_, err = svc.AddMessage(context.Background(), outsider.ID, request.ID, "let me in")
	require.Error(t, err)

	message, err := svc.AddMessage(context.Background(), requester.ID, request.ID, "thank you")
	require.NoError(t, err)
	require.Equal(t, request.ID, message.RequestID)

	_, err = svc.AddMessage(context.Background(), leader.ID, request.ID, "of course")
	require.NoError(t, err)

	loaded, err := svc.Get(context.Background(), requester.ID, models.RoleMember, request.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)

	_, err = svc.Get(context.Background(), outsider.ID, models.RoleMember, request.ID)
	require.Error(t, err)
}

func TestMentorshipLists(t *testing.T) {
	db := openServiceTestDB(t)
	requester := createTestUser(t, db, models.RoleMember)
	leader := createTestUser(t, db, models.RoleTeamLeader)
	svc := newTestMentorshipService(t, db)

	first, err := svc.Create(context.Background(), requester.ID, CreateMentorshipInput{Topic: "Career"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), requester.ID, CreateMentorshipInput{Topic: "Other"})
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), leader.ID, first.ID)
	require.NoError(t, err)

	mine, err := svc.ListForRequester(context.Background(), requester.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	pending, err := svc.ListForLeaders(context.Background(), models.MentorshipStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	all, err := svc.ListForLeaders(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
