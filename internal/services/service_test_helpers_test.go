package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/database/testutil"
	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
)

var userCounter atomic.Int64

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t)
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	hashed, err := crypto.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	n := userCounter.Add(1)
	user := &models.User{
		Name:     fmt.Sprintf("Member %d", n),
		Email:    fmt.Sprintf("member%d@example.com", n),
		Password: hashed,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestNotificationService(t *testing.T, db *gorm.DB) *NotificationService {
	t.Helper()
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)
	return svc
}
