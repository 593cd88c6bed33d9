// Package seed creates the default records a fresh installation needs.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/config"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/auth"
	"github.com/medhashaala/erp/internal/pkg/logger"
)

// CreateDefaultData ensures the default administrator account exists. It is
// a no-op when the configured admin email is empty or already registered.
func CreateDefaultData(ctx context.Context, cfg *config.Config, users repositories.IUserRepository) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Debug().Msg("No default admin configured, skipping seed")
		return nil
	}

	_, err := users.GetByEmail(ctx, cfg.Admin.Email)
	if err == nil {
		logger.Debug().Str("email", cfg.Admin.Email).Msg("Default admin already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to look up default admin: %w", err)
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.User{
		Email:     cfg.Admin.Email,
		Password:  hashed,
		FirstName: "Admin",
		Role:      models.RoleAdmin,
		IsStaff:   true,
		IsActive:  true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	logger.Info().Str("email", admin.Email).Msg("Default admin account created")
	return nil
}
