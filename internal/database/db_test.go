package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fellowshipconnect/server/internal/models"
)

func TestOpenDefaultsToInMemorySQLite(t *testing.T) {
	db, err := Open(Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, sqlDB.Ping())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	require.Error(t, err)
}

func TestAutoMigrateCreatesSchema(t *testing.T) {
	db, err := Open(Config{Driver: "sqlite"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, AutoMigrateAndSeed(db))

	for _, model := range []any{
		&models.User{},
		&models.InviteCode{},
		&models.Post{},
		&models.Event{},
		&models.PrayerEntry{},
		&models.Notification{},
		&models.MentorshipRequest{},
		&models.SpiritualLog{},
	} {
		require.True(t, db.Migrator().HasTable(model))
	}
}
