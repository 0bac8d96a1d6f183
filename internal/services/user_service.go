package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
)

// UpdateProfileInput enumerates the profile fields a member may edit.
type UpdateProfileInput struct {
	Name           *string
	Bio            *string
	FellowshipRole *string
	ProfilePhoto   *string
}

// UserService manages member profiles and credentials.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// GetProfile loads an active user by ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", userID, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("user service: load user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	ctx = ensureContext(ctx)

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewBadRequest("name cannot be empty")
		}
		updates["name"] = name
		user.Name = name
	}
	if input.Bio != nil {
		updates["bio"] = strings.TrimSpace(*input.Bio)
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.FellowshipRole != nil {
		role := strings.TrimSpace(*input.FellowshipRole)
		if role == "" {
			return nil, apperrors.NewBadRequest("fellowship_role cannot be empty")
		}
		updates["fellowship_role"] = role
		user.FellowshipRole = role
	}
	if input.ProfilePhoto != nil {
		updates["profile_photo"] = strings.TrimSpace(*input.ProfilePhoto)
		user.ProfilePhoto = strings.TrimSpace(*input.ProfilePhoto)
	}

	if len(updates) == 0 {
		return user, nil
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("user service: update profile: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	ctx = ensureContext(ctx)

	if len(newPassword) < 6 {
		return apperrors.NewBadRequest("password must be at least 6 characters")
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.VerifyPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("user service: hash password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("user service: update password: %w", err)
	}
	return nil
}
