package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&InviteCode{},
		&Post{},
		&PostComment{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func TestBaseModelGeneratesUUID(t *testing.T) {
	db := openModelTestDB(t)

	user := User{Name: "Ada", Email: "ada@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	require.NotEmpty(t, user.ID)
	require.Equal(t, 36, len(user.ID))
}

func TestPostSearchTextRefreshedOnSave(t *testing.T) {
	db := openModelTestDB(t)

	user := User{Name: "Ada", Email: "search@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	post := Post{
		Title:             "God Provided",
		Content:           "A testimony of Provision",
		Type:              PostTypeTestimony,
		TestimonyCategory: "Provision",
		AuthorID:          user.ID,
		IsActive:          true,
	}
	require.NoError(t, db.Create(&post).Error)
	require.Equal(t, "god provided a testimony of provision provision", post.SearchText)

	post.Title = "Updated Title"
	require.NoError(t, db.Save(&post).Error)

	var reloaded Post
	require.NoError(t, db.First(&reloaded, "id = ?", post.ID).Error)
	require.Contains(t, reloaded.SearchText, "updated title")
}

func TestInviteCodeExpired(t *testing.T) {
	now := time.Now()

	open := InviteCode{}
	require.False(t, open.Expired(now))

	past := now.Add(-time.Hour)
	expired := InviteCode{ExpiresAt: &past}
	require.True(t, expired.Expired(now))

	future := now.Add(time.Hour)
	live := InviteCode{ExpiresAt: &future}
	require.False(t, live.Expired(now))
}

func TestIDSetToggleSemantics(t *testing.T) {
	var set IDSet

	require.True(t, set.Toggle("u1"))
	require.True(t, set.Has("u1"))

	// Toggling again removes the member.
	require.False(t, set.Toggle("u1"))
	require.False(t, set.Has("u1"))

	require.True(t, set.Add("u2"))
	require.False(t, set.Add("u2"), "duplicate add must be a no-op")
	require.Len(t, set, 1)

	require.False(t, set.Remove("missing"))
	require.True(t, set.Remove("u2"))
	require.Empty(t, set)
}

func TestInviteRoleHelpers(t *testing.T) {
	require.True(t, IsInviteRole(RoleFamilyLeader))
	require.True(t, IsInviteRole(RoleSuperAdmin))
	require.False(t, IsInviteRole(RoleMember))
	require.False(t, IsInviteRole("made-up"))

	require.True(t, IsLeaderRole(RoleTeamLeader))
	require.False(t, IsLeaderRole(RoleMember))
}
