package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
)

func TestUserUpdateProfile(t *testing.T) {
	db := openServiceTestDB(t)
	user := createTestUser(t, db, models.RoleMember)

	svc, err := NewUserService(db)
	require.NoError(t, err)

	name := "New Name"
	bio := "Serving in the choir"
	role := "Graduate"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Name:           &name,
		Bio:            &bio,
		FellowshipRole: &role,
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, "Serving in the choir", updated.Bio)
	require.Equal(t, "Graduate", updated.FellowshipRole)

	empty := " "
	_, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Name: &empty})
	require.Error(t, err)

	_, err = svc.GetProfile(context.Background(), "missing-id")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserChangePassword(t *testing.T) {
	db := openServiceTestDB(t)
	user := createTestUser(t, db, models.RoleMember)

	svc, err := NewUserService(db)
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "newsecret")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), user.ID, "Sup3rSecret!", "short")
	require.Error(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "Sup3rSecret!", "newsecret"))

	var saved models.User
	require.NoError(t, db.First(&saved, "id = ?", user.ID).Error)
	require.True(t, crypto.VerifyPassword(saved.Password, "newsecret"))
}
