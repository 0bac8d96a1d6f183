package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/internal/services"
)

func newAdminTestRouter(t *testing.T, db *gorm.DB, admin *models.User) *gin.Engine {
	t.Helper()

	posts, err := services.NewPostService(db, newTestNotificationServiceForHandlers(t, db))
	require.NoError(t, err)
	handler, err := NewAdminHandler(db, posts)
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api/admin", asUser(admin))
	api.GET("/stats", handler.Stats)
	api.GET("/users", handler.ListUsers)
	api.PUT("/users/:id/role", handler.UpdateRole)
	api.DELETE("/users/:id", handler.DeactivateUser)
	api.PUT("/posts/:id/flag", handler.FlagPost)
	return router
}

func TestAdminStatsAndUsers(t *testing.T) {
	db := openHandlerTestDB(t)
	admin := seedUser(t, db, models.RoleSuperAdmin)
	seedUser(t, db, models.RoleMember)
	router := newAdminTestRouter(t, db, admin)

	rec := performJSON(t, router, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats services.CommunityStats
	decodeData(t, rec, &stats)
	require.Equal(t, int64(2), stats.TotalUsers)
	require.Equal(t, int64(2), stats.ActiveUsers)

	rec = performJSON(t, router, http.MethodGet, "/api/admin/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Users []models.User `json:"users"`
	}
	decodeData(t, rec, &data)
	require.Len(t, data.Users, 2)
}

func TestAdminUpdateRoleAndDeactivate(t *testing.T) {
	db := openHandlerTestDB(t)
	admin := seedUser(t, db, models.RoleSuperAdmin)
	member := seedUser(t, db, models.RoleMember)
	router := newAdminTestRouter(t, db, admin)

	rec := performJSON(t, router, http.MethodPut, "/api/admin/users/"+member.ID+"/role", gin.H{
		"role": models.RoleTeamLeader,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.User
	decodeData(t, rec, &updated)
	require.Equal(t, models.RoleTeamLeader, updated.Role)

	// Admins cannot change or deactivate their own account.
	rec = performJSON(t, router, http.MethodPut, "/api/admin/users/"+admin.ID+"/role", gin.H{
		"role": models.RoleMember,
	})
	requireErrorCode(t, rec, http.StatusForbidden, "FORBIDDEN")

	rec = performJSON(t, router, http.MethodDelete, "/api/admin/users/"+admin.ID, nil)
	requireErrorCode(t, rec, http.StatusForbidden, "FORBIDDEN")

	rec = performJSON(t, router, http.MethodDelete, "/api/admin/users/"+member.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", member.ID).Error)
	require.False(t, reloaded.IsActive)
}

func TestAdminFlagPost(t *testing.T) {
	db := openHandlerTestDB(t)
	admin := seedUser(t, db, models.RoleSuperAdmin)
	author := seedUser(t, db, models.RoleMember)
	router := newAdminTestRouter(t, db, admin)

	posts, err := services.NewPostService(db, newTestNotificationServiceForHandlers(t, db))
	require.NoError(t, err)
	post, err := posts.Create(context.Background(), author.ID, services.CreatePostInput{
		Title:   "Questionable",
		Content: "Needs review.",
		Type:    models.PostTypeAnnouncement,
	})
	require.NoError(t, err)

	rec := performJSON(t, router, http.MethodPut, "/api/admin/posts/"+post.ID+"/flag", gin.H{
		"flagged": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var flagged models.Post
	decodeData(t, rec, &flagged)
	require.True(t, flagged.IsFlagged)
}
