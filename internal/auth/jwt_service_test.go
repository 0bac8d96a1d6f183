package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fellowshipconnect/server/internal/models"
)

func TestJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	require.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Issuer: "fellowship-connect"})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(AccessTokenInput{
		UserID: "user-1",
		Email:  "grace@example.com",
		Role:   models.RoleMember,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "grace@example.com", claims.Email)
	require.Equal(t, models.RoleMember, claims.Role)
}

func TestTokenExpiresAfterSevenDays(t *testing.T) {
	current := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	svc, err := NewJWTService(JWTConfig{Secret: "test-secret", Clock: clock})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(AccessTokenInput{UserID: "user-1"})
	require.NoError(t, err)

	// Still valid just inside the window.
	current = current.Add(7*24*time.Hour - time.Minute)
	_, err = svc.ValidateAccessToken(token)
	require.NoError(t, err)

	// Rejected once the seven days elapse.
	current = current.Add(2 * time.Minute)
	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{Secret: "secret-a"})
	require.NoError(t, err)
	verifier, err := NewJWTService(JWTConfig{Secret: "secret-b"})
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken(AccessTokenInput{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{Secret: "secret", Issuer: "other-app"})
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(AccessTokenInput{UserID: "user-1"})
	require.NoError(t, err)

	strict, err := NewJWTService(JWTConfig{Secret: "secret", Issuer: "fellowship-connect"})
	require.NoError(t, err)

	_, err = strict.ValidateAccessToken(token)
	require.Error(t, err)
}
