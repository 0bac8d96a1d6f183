package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/logger"
)

// Reaction kinds accepted by React. Like and pray have dedicated endpoints;
// the rest share one.
const (
	ReactionLike     = "like"
	ReactionPray     = "pray"
	ReactionAmen     = "amen"
	ReactionBless    = "bless"
	ReactionCongrats = "congrats"
	ReactionHeart    = "heart"
)

// CreatePostInput describes a new feed post.
type CreatePostInput struct {
	Title               string
	Content             string
	Type                string
	TestimonyCategory   string
	CelebrationCategory string
	IsAnonymous         bool
	MediaURL            string
}

// ListPostsInput filters and pages the feed.
type ListPostsInput struct {
	Type   string
	Search string
	Limit  int
	Offset int
}

// PostPage bundles a page of posts with the overall total.
type PostPage struct {
	Posts []models.Post `json:"posts"`
	Total int64         `json:"total"`
}

// ReactionResult reports the state of one reaction set after a toggle.
type ReactionResult struct {
	Reacted bool `json:"reacted"`
	Count   int  `json:"count"`
}

// PostService manages the community feed: posts, reactions and comments.
type PostService struct {
	db            *gorm.DB
	notifications *NotificationService
	log           *zap.Logger
}

// NewPostService constructs a PostService.
func NewPostService(db *gorm.DB, notifications *NotificationService) (*PostService, error) {
	if db == nil {
		return nil, errors.New("post service: db is required")
	}
	if notifications == nil {
		return nil, errors.New("post service: notification service is required")
	}
	return &PostService{
		db:            db,
		notifications: notifications,
		log:           logger.WithModule("posts"),
	}, nil
}

// List returns active posts, newest first, with authors and comments preloaded.
func (s *PostService) List(ctx context.Context, input ListPostsInput) (*PostPage, error) {
	ctx = ensureContext(ctx)

	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("is_active = ?", true)
	if postType := strings.TrimSpace(input.Type); postType != "" {
		query = query.Where("type = ?", postType)
	}
	if search := strings.ToLower(strings.TrimSpace(input.Search)); search != "" {
		query = query.Where("search_text LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("post service: count posts: %w", err)
	}

	var posts []models.Post
	if err := query.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User").
		Order("created_at DESC").
		Limit(limit).
		Offset(max(0, input.Offset)).
		Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("post service: list posts: %w", err)
	}

	return &PostPage{Posts: posts, Total: total}, nil
}

// Get loads one active post with author and comments.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	ctx = ensureContext(ctx)

	var post models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments.User").
		Where("id = ? AND is_active = ?", postID, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("post service: load post: %w", err)
	}
	return &post, nil
}

// Create publishes a new post by authorID.
func (s *PostService) Create(ctx context.Context, authorID string, input CreatePostInput) (*models.Post, error) {
	ctx = ensureContext(ctx)

	postType := strings.ToLower(strings.TrimSpace(input.Type))
	if !containsString(models.PostTypes, postType) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("type must be one of %s", strings.Join(models.PostTypes, ", ")))
	}
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}
	if len(title) > 200 {
		return nil, apperrors.NewBadRequest("title must be 200 characters or fewer")
	}
	if content == "" {
		return nil, apperrors.NewBadRequest("content is required")
	}
	if len(content) > 2000 {
		return nil, apperrors.NewBadRequest("content must be 2000 characters or fewer")
	}

	post := &models.Post{
		Title:               title,
		Content:             content,
		Type:                postType,
		TestimonyCategory:   strings.TrimSpace(input.TestimonyCategory),
		CelebrationCategory: strings.TrimSpace(input.CelebrationCategory),
		AuthorID:            authorID,
		IsAnonymous:         input.IsAnonymous,
		MediaURL:            strings.TrimSpace(input.MediaURL),
		IsActive:            true,
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("post service: create post: %w", err)
	}
	return post, nil
}

// ToggleLike flips the user's like on a post.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (*ReactionResult, error) {
	return s.toggleReaction(ctx, userID, postID, ReactionLike)
}

// Pray adds the user to the prayed-for set. Unlike other reactions it cannot
// be withdrawn; praying again is a no-op. The post author is notified on the
// first prayer from each member.
func (s *PostService) Pray(ctx context.Context, userID, postID string) (*ReactionResult, error) {
	ctx = ensureContext(ctx)

	post, err := s.loadActivePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	added := post.PrayedFor.Add(userID)
	if added {
		if err := s.db.WithContext(ctx).Model(post).
			Update("prayed_for", post.PrayedFor).Error; err != nil {
			return nil, fmt.Errorf("post service: save prayed_for: %w", err)
		}
		if _, err := s.notifications.Create(ctx, CreateNotificationInput{
			RecipientID:   post.AuthorID,
			SenderID:      userID,
			Type:          models.NotificationTypePrayer,
			Message:       "Someone prayed for your request",
			RelatedPostID: &post.ID,
		}); err != nil {
			s.log.Warn("prayer notification failed", zap.Error(err))
		}
	}

	return &ReactionResult{Reacted: true, Count: len(post.PrayedFor)}, nil
}

// React toggles one of the named reaction sets (amen, bless, congrats, heart).
func (s *PostService) React(ctx context.Context, userID, postID, kind string) (*ReactionResult, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ReactionAmen, ReactionBless, ReactionCongrats, ReactionHeart:
		return s.toggleReaction(ctx, userID, postID, strings.ToLower(strings.TrimSpace(kind)))
	default:
		return nil, apperrors.NewBadRequest("reaction must be one of amen, bless, congrats, heart")
	}
}

func (s *PostService) toggleReaction(ctx context.Context, userID, postID, kind string) (*ReactionResult, error) {
	ctx = ensureContext(ctx)

	post, err := s.loadActivePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var set *models.IDSet
	var column string
	switch kind {
	case ReactionLike:
		set, column = &post.Likes, "likes"
	case ReactionAmen:
		set, column = &post.Amens, "amens"
	case ReactionBless:
		set, column = &post.Blessings, "blessings"
	case ReactionCongrats:
		set, column = &post.Congrats, "congrats"
	case ReactionHeart:
		set, column = &post.Hearts, "hearts"
	default:
		return nil, apperrors.NewBadRequest("unknown reaction")
	}

	reacted := set.Toggle(userID)
	if err := s.db.WithContext(ctx).Model(post).Update(column, *set).Error; err != nil {
		return nil, fmt.Errorf("post service: save %s: %w", column, err)
	}

	if reacted && kind == ReactionLike {
		if _, err := s.notifications.Create(ctx, CreateNotificationInput{
			RecipientID:   post.AuthorID,
			SenderID:      userID,
			Type:          models.NotificationTypeLike,
			Message:       "Someone liked your post",
			RelatedPostID: &post.ID,
		}); err != nil {
			s.log.Warn("like notification failed", zap.Error(err))
		}
	}

	return &ReactionResult{Reacted: reacted, Count: len(*set)}, nil
}

// Comment appends a comment to a post and notifies the author.
func (s *PostService) Comment(ctx context.Context, userID, postID, content string) (*models.PostComment, error) {
	ctx = ensureContext(ctx)

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewBadRequest("comment content is required")
	}
	if len(content) > 1000 {
		return nil, apperrors.NewBadRequest("comment must be 1000 characters or fewer")
	}

	post, err := s.loadActivePost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		PostID:  post.ID,
		UserID:  userID,
		Content: content,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("post service: create comment: %w", err)
	}

	if _, err := s.notifications.Create(ctx, CreateNotificationInput{
		RecipientID:   post.AuthorID,
		SenderID:      userID,
		Type:          models.NotificationTypeComment,
		Message:       "Someone commented on your post",
		RelatedPostID: &post.ID,
	}); err != nil {
		s.log.Warn("comment notification failed", zap.Error(err))
	}

	return comment, nil
}

// Delete soft-deletes a post. Only the author or a super admin may delete.
func (s *PostService) Delete(ctx context.Context, userID, userRole, postID string) error {
	ctx = ensureContext(ctx)

	post, err := s.loadActivePost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && userRole != models.RoleSuperAdmin {
		return apperrors.NewForbidden("only the author or an admin can delete this post")
	}

	if err := s.db.WithContext(ctx).Model(post).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("post service: delete post: %w", err)
	}
	return nil
}

// Flag sets or clears the moderation flag on a post.
func (s *PostService) Flag(ctx context.Context, postID string, flagged bool) (*models.Post, error) {
	ctx = ensureContext(ctx)

	post, err := s.loadActivePost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(post).Update("is_flagged", flagged).Error; err != nil {
		return nil, fmt.Errorf("post service: flag post: %w", err)
	}
	post.IsFlagged = flagged
	return post, nil
}

func (s *PostService) loadActivePost(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", postID, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("post service: load post: %w", err)
	}
	return &post, nil
}
