package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/middleware"
	"github.com/fellowshipconnect/server/internal/services"
	"github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/response"
)

// PostHandler exposes the community feed endpoints.
type PostHandler struct {
	service *services.PostService
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(db *gorm.DB, notifications *services.NotificationService) (*PostHandler, error) {
	service, err := services.NewPostService(db, notifications)
	if err != nil {
		return nil, err
	}
	return &PostHandler{service: service}, nil
}

type createPostRequest struct {
	Title               string `json:"title" validate:"required,max=200"`
	Content             string `json:"content" validate:"required,max=2000"`
	Type                string `json:"type" validate:"required"`
	TestimonyCategory   string `json:"testimony_category" validate:"omitempty,max=32"`
	CelebrationCategory string `json:"celebration_category" validate:"omitempty,max=32"`
	IsAnonymous         bool   `json:"is_anonymous"`
	MediaURL            string `json:"media_url" validate:"omitempty,max=2048"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// List returns a page of the feed.
func (h *PostHandler) List(c *gin.Context) {
	page, err := h.service.List(requestContext(c), services.ListPostsInput{
		Type:   c.Query("type"),
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 20),
		Offset: parseIntQuery(c, "offset", 0),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Get returns one post.
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.service.Get(requestContext(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, post)
}

// Create publishes a new post.
func (h *PostHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req createPostRequest
	if !bindAndValidate(c, &req) {
		return
	}

	post, err := h.service.Create(requestContext(c), userID, services.CreatePostInput{
		Title:               req.Title,
		Content:             req.Content,
		Type:                req.Type,
		TestimonyCategory:   req.TestimonyCategory,
		CelebrationCategory: req.CelebrationCategory,
		IsAnonymous:         req.IsAnonymous,
		MediaURL:            req.MediaURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, post)
}

// Like toggles the caller's like on a post.
func (h *PostHandler) Like(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	result, err := h.service.ToggleLike(requestContext(c), userID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Pray adds the caller to the prayed-for set.
func (h *PostHandler) Pray(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	result, err := h.service.Pray(requestContext(c), userID, strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// React toggles a named reaction.
func (h *PostHandler) React(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	result, err := h.service.React(requestContext(c), userID,
		strings.TrimSpace(c.Param("id")), strings.TrimSpace(c.Param("kind")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Comment appends a comment.
func (h *PostHandler) Comment(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	var req commentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	comment, err := h.service.Comment(requestContext(c), userID, strings.TrimSpace(c.Param("id")), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, comment)
}

// Delete soft-deletes a post.
func (h *PostHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	if userID == "" {
		response.Error(c, errors.ErrUnauthorized)
		return
	}

	err := h.service.Delete(requestContext(c), userID,
		c.GetString(middleware.CtxRoleKey), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Post deleted")
}
