package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/internal/services"
)

func newPostTestRouter(t *testing.T, db *gorm.DB, user *models.User) *gin.Engine {
	t.Helper()

	handler, err := NewPostHandler(db, newTestNotificationServiceForHandlers(t, db))
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api", asUser(user))
	api.GET("/posts", handler.List)
	api.POST("/posts", handler.Create)
	api.POST("/posts/:id/like", handler.Like)
	api.POST("/posts/:id/pray", handler.Pray)
	api.POST("/posts/:id/reactions/:kind", handler.React)
	api.POST("/posts/:id/comment", handler.Comment)
	return router
}

func newTestNotificationServiceForHandlers(t *testing.T, db *gorm.DB) *services.NotificationService {
	t.Helper()
	svc, err := services.NewNotificationService(db, nil)
	require.NoError(t, err)
	return svc
}

func TestCreateAndListPosts(t *testing.T) {
	db := openHandlerTestDB(t)
	user := seedUser(t, db, models.RoleMember)
	router := newPostTestRouter(t, db, user)

	rec := performJSON(t, router, http.MethodPost, "/api/posts", gin.H{
		"title":   "Pray for my exams",
		"content": "Finals are next week and I am anxious.",
		"type":    models.PostTypePrayer,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Post
	decodeData(t, rec, &created)
	require.Equal(t, user.ID, created.AuthorID)

	rec = performJSON(t, router, http.MethodGet, "/api/posts?type=prayer", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Posts []models.Post `json:"posts"`
		Total int64         `json:"total"`
	}
	decodeData(t, rec, &page)
	require.Len(t, page.Posts, 1)
}

func TestCreatePostRejectsUnknownType(t *testing.T) {
	db := openHandlerTestDB(t)
	user := seedUser(t, db, models.RoleMember)
	router := newPostTestRouter(t, db, user)

	rec := performJSON(t, router, http.MethodPost, "/api/posts", gin.H{
		"title":   "Hello",
		"content": "World",
		"type":    "gossip",
	})
	requireErrorCode(t, rec, http.StatusBadRequest, "BAD_REQUEST")
}

func TestPostReactionEndpoints(t *testing.T) {
	db := openHandlerTestDB(t)
	author := seedUser(t, db, models.RoleMember)
	reactor := seedUser(t, db, models.RoleMember)
	router := newPostTestRouter(t, db, reactor)

	rec := performJSON(t, newPostTestRouter(t, db, author), http.MethodPost, "/api/posts", gin.H{
		"title":   "Testimony",
		"content": "God is good.",
		"type":    models.PostTypeTestimony,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decodeData(t, rec, &post)

	var reaction struct {
		Reacted bool `json:"reacted"`
		Count   int  `json:"count"`
	}

	rec = performJSON(t, router, http.MethodPost, "/api/posts/"+post.ID+"/like", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &reaction)
	require.True(t, reaction.Reacted)
	require.Equal(t, 1, reaction.Count)

	// A second like toggles it back off.
	rec = performJSON(t, router, http.MethodPost, "/api/posts/"+post.ID+"/like", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &reaction)
	require.False(t, reaction.Reacted)
	require.Zero(t, reaction.Count)

	rec = performJSON(t, router, http.MethodPost, "/api/posts/"+post.ID+"/pray", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &reaction)
	require.True(t, reaction.Reacted)
	require.Equal(t, 1, reaction.Count)

	rec = performJSON(t, router, http.MethodPost, "/api/posts/"+post.ID+"/reactions/amen", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &reaction)
	require.True(t, reaction.Reacted)

	var saved models.Post
	require.NoError(t, db.First(&saved, "id = ?", post.ID).Error)
	require.True(t, saved.PrayedFor.Has(reactor.ID))
	require.True(t, saved.Amens.Has(reactor.ID))
	require.False(t, saved.Likes.Has(reactor.ID))

	rec = performJSON(t, router, http.MethodPost, "/api/posts/"+post.ID+"/reactions/shrug", nil)
	requireErrorCode(t, rec, http.StatusBadRequest, "BAD_REQUEST")
}

func TestCommentEndpoint(t *testing.T) {
	db := openHandlerTestDB(t)
	user := seedUser(t, db, models.RoleMember)
	router := newPostTestRouter(t, db, user)

	rec := performJSON(t, router, http.MethodPost, "/api/posts", gin.H{
		"title":   "Potluck",
		"content": "Bring a dish on Sunday.",
		"type":    models.PostTypeAnnouncement,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decodeData(t, rec, &post)

	rec = performJSON(t, router, http.MethodPost, "/api/posts/"+post.ID+"/comment", gin.H{
		"content": "I will bring rice.",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var comment models.PostComment
	decodeData(t, rec, &comment)
	require.Equal(t, post.ID, comment.PostID)
	require.Equal(t, user.ID, comment.UserID)
}
