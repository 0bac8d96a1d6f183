package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
	apperrors "github.com/fellowshipconnect/server/pkg/errors"
	"github.com/fellowshipconnect/server/pkg/metrics"
)

const defaultInviteCodeLength = 8

// InviteOption customises InviteService behaviour.
type InviteOption func(*InviteService)

// WithInviteClock injects a custom clock primarily for testing.
func WithInviteClock(clock func() time.Time) InviteOption {
	return func(s *InviteService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// InviteService manages the lifecycle of single-use invite codes: creation by
// an admin, public validation, consumption during registration, and
// soft-deactivation.
type InviteService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewInviteService constructs an InviteService with the provided dependencies.
func NewInviteService(db *gorm.DB, opts ...InviteOption) (*InviteService, error) {
	if db == nil {
		return nil, errors.New("invite service: db is required")
	}

	service := &InviteService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// CreateInviteInput describes a new invite code.
type CreateInviteInput struct {
	Code        string
	Role        string
	Ministry    string
	FamilyID    *string
	Description string
	ExpiresAt   *time.Time
	CreatedByID string
}

// Create registers a new invite code. An empty Code is generated randomly.
func (s *InviteService) Create(ctx context.Context, input CreateInviteInput) (*models.InviteCode, error) {
	ctx = ensureContext(ctx)

	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if !models.IsInviteRole(role) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("role must be one of %s", strings.Join(models.InviteRoles, ", ")))
	}
	if strings.TrimSpace(input.CreatedByID) == "" {
		return nil, apperrors.NewBadRequest("creator is required")
	}

	code := normalizeCode(input.Code)
	if code == "" {
		generated, err := crypto.GenerateInviteCode(defaultInviteCodeLength)
		if err != nil {
			return nil, fmt.Errorf("invite service: generate code: %w", err)
		}
		code = generated
	}

	invite := &models.InviteCode{
		Code:        code,
		Role:        role,
		Ministry:    strings.TrimSpace(input.Ministry),
		FamilyID:    input.FamilyID,
		Description: strings.TrimSpace(input.Description),
		CreatedByID: input.CreatedByID,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    true,
	}

	if err := s.db.WithContext(ctx).Create(invite).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.ErrDuplicateInviteCode
		}
		return nil, fmt.Errorf("invite service: create invite: %w", err)
	}

	return invite, nil
}

// List returns all invite codes, newest first, with creator and consumer preloaded.
func (s *InviteService) List(ctx context.Context) ([]models.InviteCode, error) {
	ctx = ensureContext(ctx)

	var invites []models.InviteCode
	if err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("UsedBy").
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, fmt.Errorf("invite service: list invites: %w", err)
	}
	return invites, nil
}

// InviteValidation is the public projection returned when a prospective member
// checks a code before registering.
type InviteValidation struct {
	Valid       bool       `json:"valid"`
	Status      string     `json:"status"`
	Role        string     `json:"role,omitempty"`
	Ministry    string     `json:"ministry,omitempty"`
	Description string     `json:"description,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Validate reports whether a code could currently be consumed, without
// consuming it. Unknown, deactivated and used codes read as invalid; unused
// codes past expiry read as expired.
func (s *InviteService) Validate(ctx context.Context, code string) (*InviteValidation, error) {
	ctx = ensureContext(ctx)

	code = normalizeCode(code)
	if code == "" {
		return &InviteValidation{Valid: false, Status: "invalid"}, nil
	}

	var invite models.InviteCode
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &InviteValidation{Valid: false, Status: "invalid"}, nil
		}
		return nil, fmt.Errorf("invite service: find invite: %w", err)
	}

	if !invite.IsActive || invite.UsedByID != nil {
		return &InviteValidation{Valid: false, Status: "invalid"}, nil
	}
	if invite.Expired(s.now()) {
		return &InviteValidation{Valid: false, Status: "expired"}, nil
	}

	return &InviteValidation{
		Valid:       true,
		Status:      "valid",
		Role:        invite.Role,
		Ministry:    invite.Ministry,
		Description: invite.Description,
		ExpiresAt:   invite.ExpiresAt,
	}, nil
}

// Consume claims the code for an existing user. The conditional update inside
// claim is the sole arbiter under concurrency: only the caller whose UPDATE
// matches a row wins; every other concurrent caller observes zero rows
// affected and fails with the invalid-code error.
func (s *InviteService) Consume(ctx context.Context, code, userID string) (*models.InviteCode, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(userID) == "" {
		metrics.InviteConsumptions.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidInviteCode
	}

	db := s.db.WithContext(ctx)
	invite, err := s.findClaimable(db, code)
	if err != nil {
		return nil, err
	}
	if err := s.claim(db, invite.Code, userID); err != nil {
		return nil, err
	}
	invite.UsedByID = &userID
	return invite, nil
}

// findClaimable loads a code that could be claimed right now.
//
// Error ordering: unknown, deactivated or already-used codes fail as invalid
// before expiry is ever considered; only an unused code can fail as expired.
func (s *InviteService) findClaimable(db *gorm.DB, code string) (*models.InviteCode, error) {
	code = normalizeCode(code)
	if code == "" {
		metrics.InviteConsumptions.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidInviteCode
	}

	var invite models.InviteCode
	err := db.Where("code = ?", code).First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.InviteConsumptions.WithLabelValues("invalid").Inc()
			return nil, apperrors.ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("invite service: find invite: %w", err)
	}

	if !invite.IsActive || invite.UsedByID != nil {
		metrics.InviteConsumptions.WithLabelValues("invalid").Inc()
		return nil, apperrors.ErrInvalidInviteCode
	}
	if invite.Expired(s.now()) {
		metrics.InviteConsumptions.WithLabelValues("expired").Inc()
		return nil, apperrors.ErrExpiredInviteCode
	}
	return &invite, nil
}

// claim stamps used_by_id with a conditional update. The referenced user row
// must already exist on db's connection when the update lands. Zero rows
// affected means another claimant won between findClaimable and here.
func (s *InviteService) claim(db *gorm.DB, code, userID string) error {
	result := db.Model(&models.InviteCode{}).
		Where("code = ? AND is_active = ? AND used_by_id IS NULL", code, true).
		Update("used_by_id", userID)
	if result.Error != nil {
		return fmt.Errorf("invite service: consume invite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		metrics.InviteConsumptions.WithLabelValues("invalid").Inc()
		return apperrors.ErrInvalidInviteCode
	}
	metrics.InviteConsumptions.WithLabelValues("consumed").Inc()
	return nil
}

// Deactivate soft-deactivates an invite code so it can no longer be consumed.
func (s *InviteService) Deactivate(ctx context.Context, inviteID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Model(&models.InviteCode{}).
		Where("id = ?", inviteID).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("invite service: deactivate invite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateExpired sweeps unused codes past their expiry, returning how many
// were deactivated. Invoked by the maintenance scheduler.
func (s *InviteService) DeactivateExpired(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Model(&models.InviteCode{}).
		Where("is_active = ? AND used_by_id IS NULL AND expires_at IS NOT NULL AND expires_at < ?", true, s.now()).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("invite service: deactivate expired: %w", result.Error)
	}
	return result.RowsAffected, nil
}
