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

// SessionRepository implements port.SessionRepository for PostgreSQL
type SessionRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db DatabaseIface, logger *slog.Logger) port.SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger.With("component", "session_repository"),
	}
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (
			id, username, token, active, created_at, expires_at,
			updated_at, last_activity_at, ip_address, user_agent
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.Username,
		session.Token,
		session.Active,
		session.CreatedAt,
		session.ExpiresAt,
		session.UpdatedAt,
		session.LastActivityAt,
		session.IPAddress,
		session.UserAgent,
	)

	if err != nil {
		r.logger.Error("failed to create session",
			"session_id", session.ID, "username", session.Username, "error", err)
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug("session created", "session_id", session.ID, "username", session.Username)
	return nil
}

// GetByToken retrieves a session by its token.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT id, username, token, active, created_at, expires_at,
			updated_at, last_activity_at, ip_address, user_agent
		FROM sessions WHERE token = $1`

	var session domain.Session
	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.Username,
		&session.Token,
		&session.Active,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.UpdatedAt,
		&session.LastActivityAt,
		&session.IPAddress,
		&session.UserAgent,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		r.logger.Error("failed to get session by token", "error", err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// Deactivate marks the session bound to the token as inactive.
func (r *SessionRepository) Deactivate(ctx context.Context, token string) error {
	query := `
		UPDATE sessions SET active = false, updated_at = CURRENT_TIMESTAMP
		WHERE token = $1 AND active = true`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.logger.Error("failed to deactivate session", "error", err)
		return fmt.Errorf("failed to deactivate session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}

	r.logger.Debug("session deactivated")
	return nil
}
