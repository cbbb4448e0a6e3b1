package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/app/repositories"
	"github.com/libraria/libraria/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@libraria.local"
	defaultAdminPassword = "admin123!"
)

// CreateDefaultData seeds the default admin account when no users exist yet
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(pool)

	count, err := userRepo.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("users", count).Msg("Users already present, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.User{
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		RoleType:     models.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created, change the password immediately")
	return nil
}
