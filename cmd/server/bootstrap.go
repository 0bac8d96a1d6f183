package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fellowshipconnect/server/internal/app"
	"github.com/fellowshipconnect/server/internal/models"
	"github.com/fellowshipconnect/server/pkg/crypto"
)

// seedInitialAdmin creates the first super admin account when the database
// holds none and bootstrap credentials are configured. Existing deployments
// are left untouched.
func seedInitialAdmin(ctx context.Context, db *gorm.DB, cfg app.BootstrapConfig, log *zap.Logger) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	var admins int64
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&admins).Error; err != nil {
		return fmt.Errorf("count super admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	password := cfg.AdminPassword
	if email == "" || password == "" {
		if log != nil {
			log.Warn("no super admin exists and bootstrap credentials are not configured")
		}
		return nil
	}

	name := strings.TrimSpace(cfg.AdminName)
	if name == "" {
		name = "Administrator"
	}

	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	admin := &models.User{
		Name:           name,
		Email:          email,
		Password:       hashed,
		Role:           models.RoleSuperAdmin,
		FellowshipRole: "Administrator",
		IsActive:       true,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	if log != nil {
		log.Info("seeded initial super admin", zap.String("email", email))
	}
	return nil
}
