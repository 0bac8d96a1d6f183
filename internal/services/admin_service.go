package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
)

// CommunityStats is the admin dashboard aggregate.
type CommunityStats struct {
	TotalUsers     int64         `json:"total_users"`
	ActiveUsers    int64         `json:"active_users"`
	TotalPosts     int64         `json:"total_posts"`
	TotalEvents    int64         `json:"total_events"`
	TotalPrayers   int64         `json:"total_prayers"`
	PendingInvites int64         `json:"pending_invites"`
	RecentPosts    []models.Post `json:"recent_posts"`
	RecentUsers    []models.User `json:"recent_users"`
}

// AdminService exposes the super-admin management surface.
type AdminService struct {
	db *gorm.DB
}

// NewAdminService constructs an AdminService.
func NewAdminService(db *gorm.DB) (*AdminService, error) {
	if db == nil {
		return nil, errors.New("admin service: db is required")
	}
	return &AdminService{db: db}, nil
}

// Stats aggregates community-wide counts plus the most recent posts and users.
func (s *AdminService) Stats(ctx context.Context) (*CommunityStats, error) {
	ctx = ensureContext(ctx)

	stats := &CommunityStats{}
	counts := []struct {
		dest  *int64
		model any
		query func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalUsers, &models.User{}, nil},
		{&stats.ActiveUsers, &models.User{}, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }},
		{&stats.TotalPosts, &models.Post{}, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }},
		{&stats.TotalEvents, &models.Event{}, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }},
		{&stats.TotalPrayers, &models.PrayerEntry{}, nil},
		{&stats.PendingInvites, &models.InviteCode{}, func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ? AND used_by_id IS NULL", true)
		}},
	}
	for _, count := range counts {
		query := s.db.WithContext(ctx).Model(count.model)
		if count.query != nil {
			query = count.query(query)
		}
		if err := query.Count(count.dest).Error; err != nil {
			return nil, fmt.Errorf("admin service: count: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentPosts).Error; err != nil {
		return nil, fmt.Errorf("admin service: recent posts: %w", err)
	}

	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentUsers).Error; err != nil {
		return nil, fmt.Errorf("admin service: recent users: %w", err)
	}

	return stats, nil
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx = ensureContext(ctx)

	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("admin service: list users: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's privilege role. Admins cannot demote themselves,
// which keeps at least one super admin reachable.
func (s *AdminService) UpdateRole(ctx context.Context, actingAdminID, userID, role string) (*models.User, error) {
	ctx = ensureContext(ctx)

	role = strings.ToUpper(strings.TrimSpace(role))
	if role != models.RoleMember && !models.IsInviteRole(role) {
		return nil, apperrors.NewBadRequest("unknown role")
	}
	if userID == actingAdminID {
		return nil, apperrors.NewForbidden("cannot change your own role")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("admin service: load user: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("admin service: update role: %w", err)
	}
	user.Role = role
	return &user, nil
}

// DeactivateUser soft-deactivates an account. Self-deactivation is rejected.
func (s *AdminService) DeactivateUser(ctx context.Context, actingAdminID, userID string) error {
	ctx = ensureContext(ctx)

	if userID == actingAdminID {
		return apperrors.NewForbidden("cannot deactivate your own account")
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("admin service: deactivate user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
