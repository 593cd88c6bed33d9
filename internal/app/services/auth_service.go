package services

import (
	"context"
	"errors"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/auth"
	"github.com/medhashaala/erp/internal/pkg/logger"
)

// AuthService exchanges credentials for bearer tokens.
type AuthService struct {
	users        repositories.IUserRepository
	tokenService *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.IUserRepository, tokenService *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokenService: tokenService}
}

// Authenticate verifies an email and password pair and issues a token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", apperrors.ErrAccountDisabled
	}

	token, err := s.tokenService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error generating token")
		return nil, "", err
	}
	return user, token, nil
}
