package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasklet/core/internal/domain/entities"
	"github.com/tasklet/core/internal/infrastructure/logger"
	"github.com/tasklet/core/internal/ports"
)

// AuthService handles login and session resolution
type AuthService struct {
	userRepo ports.UserRepository
	codec    SessionCodec
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session token. The returned
// user record has its password stripped.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*entities.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.logger.Warn("Login attempt with non-existent email", "email", req.Email)
			return nil, "", entities.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	// Seed-data accounts carry plaintext passwords; compared as-is.
	if user.Password != req.Password {
		s.logger.Warn("Login attempt with invalid password", "email", req.Email, "user_id", user.ID)
		return nil, "", entities.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "email", user.Email, "remember_me", req.RememberMe)

	return user.Sanitized(), token, nil
}

// CheckSession resolves a session token to its user record. A token
// that fails to decode yields ErrInvalidSession; a decodable token
// naming an unknown user yields ErrUserNotFound.
func (s *AuthService) CheckSession(ctx context.Context, token string) (*entities.User, error) {
	userID, err := s.codec.Decode(token)
	if err != nil {
		return nil, entities.ErrInvalidSession
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up session user: %w", err)
	}

	return user.Sanitized(), nil
}
