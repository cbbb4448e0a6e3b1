package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/libraria/libraria/internal/app/models"
	"github.com/libraria/libraria/internal/db"
	"github.com/libraria/libraria/internal/pkg/apperrors"
	"github.com/libraria/libraria/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, role_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.q(ctx).QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.RoleType,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, email, password_hash, role_type, created_at FROM users WHERE id = $1`

	var user models.User
	err := r.q(ctx).QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.RoleType, &user.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, email, password_hash, role_type, created_at FROM users WHERE email = $1`

	var user models.User
	err := r.q(ctx).QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.RoleType, &user.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash of a user
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmdTag, err := r.q(ctx).Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating user password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// CountAll returns the number of user accounts
func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}

	return count, nil
}
