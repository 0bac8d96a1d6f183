package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/auth"
	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/metrics"
)

// RegisterInput describes a registration request. InviteCode is optional;
// without one the account starts as a plain member.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	FellowshipRole string
	InviteCode     string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult bundles the signed token with the authenticated user.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	db      *gorm.DB
	jwt     *auth.JWTService
	invites *InviteService
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, jwt *auth.JWTService, invites *InviteService) (*AuthService, error) {
	if db == nil {
		return nil, errors.New("auth service: db is required")
	}
	if jwt == nil {
		return nil, errors.New("auth service: jwt service is required")
	}
	if invites == nil {
		return nil, errors.New("auth service: invite service is required")
	}
	return &AuthService{db: db, jwt: jwt, invites: invites}, nil
}

// Register creates an account. When an invite code is supplied, the user row
// and the code claim commit in one transaction: the conditional update on the
// code arbitrates concurrent registrations, and any failure rolls back both
// sides so the code stays claimable. Privilege, ministry and family always
// come from the code, never from the request.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}
	if email == "" {
		return nil, apperrors.NewBadRequest("email is required")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewBadRequest("password must be at least 6 characters")
	}

	hashed, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth service: hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleMember,
		IsActive: true,
	}
	user.ID = uuid.NewString()

	if role := strings.TrimSpace(input.FellowshipRole); role != "" {
		user.FellowshipRole = role
	}

	// Duplicate email outranks any invite problem in the reported error.
	var taken int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("auth service: check email: %w", err)
	}
	if taken > 0 {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, apperrors.ErrDuplicateEmail
	}

	inviteCode := normalizeCode(input.InviteCode)
	var invite *models.InviteCode
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if inviteCode != "" {
			claimable, err := s.invites.findClaimable(tx, inviteCode)
			if err != nil {
				return err
			}
			invite = claimable
			user.Role = invite.Role
			user.Ministry = invite.Ministry
			user.FamilyID = invite.FamilyID
		}

		if err := tx.Create(user).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.ErrDuplicateEmail
			}
			return fmt.Errorf("auth service: create user: %w", err)
		}

		if invite != nil {
			// The claim lands after the insert so the consumer reference
			// points at a committed row; the conditional update still
			// arbitrates concurrent claims on the code.
			if err := s.invites.claim(tx, invite.Code, user.ID); err != nil {
				return err
			}
			invite.UsedByID = &user.ID
		}
		return nil
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		return nil, err
	}

	token, err := s.jwt.GenerateAccessToken(auth.AccessTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: sign token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates credentials. Unknown emails and wrong passwords share
// one error value so responses never reveal whether an account exists.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	ctx = ensureContext(ctx)

	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: find user: %w", err)
	}

	if !crypto.VerifyPassword(user.Password, input.Password) {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(auth.AccessTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: sign token: %w", err)
	}

	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	return &AuthResult{Token: token, User: &user}, nil
}

// GetUser loads an active user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", userID, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("auth service: find user: %w", err)
	}
	return &user, nil
}
