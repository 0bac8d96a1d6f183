package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fellowshipconnect/server/internal/app"
	"github.com/fellowshipconnect/server/internal/database/testutil"
	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
)

func TestSeedInitialAdminCreatesAccount(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	cfg := app.BootstrapConfig{
		AdminName:     "First Admin",
		AdminEmail:    "Admin@Example.com",
		AdminPassword: "ChangeMe123",
	}
	require.NoError(t, seedInitialAdmin(context.Background(), db, cfg, nil))

	var admin models.User
	require.NoError(t, db.First(&admin, "role = ?", models.RoleSuperAdmin).Error)
	require.Equal(t, "admin@example.com", admin.Email)
	require.Equal(t, "First Admin", admin.Name)
	require.True(t, admin.IsActive)
	require.True(t, crypto.VerifyPassword(admin.Password, "ChangeMe123"))
}

func TestSeedInitialAdminSkipsWhenAdminExists(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	hashed, err := crypto.HashPassword("existing-password")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Name:     "Existing Admin",
		Email:    "existing@example.com",
		Password: hashed,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}).Error)

	cfg := app.BootstrapConfig{
		AdminEmail:    "new@example.com",
		AdminPassword: "NewPassword1",
	}
	require.NoError(t, seedInitialAdmin(context.Background(), db, cfg, nil))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSeedInitialAdminWithoutCredentialsIsNoop(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	require.NoError(t, seedInitialAdmin(context.Background(), db, app.BootstrapConfig{}, nil))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}
