package services

import (
	"context"
	"errors"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/pkg/apperrors"
	"github.com/libraria/libraria/internal/pkg/auth"
	"github.com/libraria/libraria/internal/pkg/logger"
)

// UserStore is the persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// AuthService handles registration, login and password changes
type AuthService struct {
	userRepo   UserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo UserStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account with a hashed password
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		RoleType:     models.RoleLibrarian,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, int, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", 0, apperrors.ErrInvalidCredentials
		}
		return "", 0, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", 0, err
	}

	logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return token, expiresIn, nil
}

// ChangePassword replaces the password of the authenticated user after
// verifying the current one. Callers must pass the principal's own id; a
// user cannot change someone else's password.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	logger.Info().Int64("userId", userID).Msg("Password changed")
	return nil
}
