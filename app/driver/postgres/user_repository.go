package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"auth-bridge/app/domain"
	"auth-bridge/app/port"
)

// UserRepository implements port.UserRepository for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// Exists checks whether a user record exists for the username.
func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		r.logger.Error("failed to check user existence", "username", username, "error", err)
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, password_hash,
			active, externally_managed, created_at, updated_at, last_login_at
		FROM users WHERE username = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Active,
		&user.ExternallyManaged,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to get user", "username", username, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Create inserts a new user record. A username or email collision reports
// domain.ErrUserAlreadyExists so callers can treat a lost create race as
// success.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, username, email, first_name, last_name, password_hash,
			active, externally_managed, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Active,
		user.ExternallyManaged,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		r.logger.Error("failed to create user", "username", user.Username, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("user created", "username", user.Username, "user_id", user.ID)
	return nil
}

// Update refreshes the directory-sourced profile fields. The WHERE clause
// only matches when at least one field differs, so the rows-affected count
// tells apart a real change from a no-op refresh.
func (r *UserRepository) Update(ctx context.Context, update domain.UserUpdate) (bool, error) {
	query := `
		UPDATE users SET
			first_name = $2, last_name = $3, email = $4,
			externally_managed = $5, updated_at = CURRENT_TIMESTAMP
		WHERE username = $1 AND (
			first_name IS DISTINCT FROM $2 OR
			last_name IS DISTINCT FROM $3 OR
			email IS DISTINCT FROM $4 OR
			externally_managed IS DISTINCT FROM $5
		)`

	result, err := r.db.Exec(ctx, query,
		update.Username,
		update.FirstName,
		update.LastName,
		update.Email,
		update.ExternallyManaged,
	)

	if err != nil {
		r.logger.Error("failed to update user", "username", update.Username, "error", err)
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	changed := result.RowsAffected() > 0
	if changed {
		r.logger.Info("user profile updated", "username", update.Username)
	}

	return changed, nil
}

// RecordLogin stamps the user's last login time.
func (r *UserRepository) RecordLogin(ctx context.Context, username string) error {
	query := `
		UPDATE users SET last_login_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE username = $1`

	result, err := r.db.Exec(ctx, query, username)
	if err != nil {
		r.logger.Error("failed to record login", "username", username, "error", err)
		return fmt.Errorf("failed to record login: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
