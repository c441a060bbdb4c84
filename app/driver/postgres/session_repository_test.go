package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-bridge/app/domain"
)

func storedSession(t *testing.T) *domain.Session {
	session, err := domain.NewSession("jdoe", "token-1", time.Hour)
	require.NoError(t, err)
	return session
}

func TestSessionRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	session := storedSession(t)
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(
			session.ID, session.Username, session.Token, session.Active,
			session.CreatedAt, session.ExpiresAt, session.UpdatedAt,
			session.LastActivityAt, session.IPAddress, session.UserAgent,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewSessionRepository(mock, testLogger(t))
	err = repo.Create(context.Background(), session)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Create_Failure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	session := storedSession(t)
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(
			session.ID, session.Username, session.Token, session.Active,
			session.CreatedAt, session.ExpiresAt, session.UpdatedAt,
			session.LastActivityAt, session.IPAddress, session.UserAgent,
		).
		WillReturnError(errors.New("insert failed"))

	repo := NewSessionRepository(mock, testLogger(t))
	err = repo.Create(context.Background(), session)

	assert.Error(t, err)
}

func TestSessionRepository_GetByToken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	session := storedSession(t)
	rows := pgxmock.NewRows([]string{
		"id", "username", "token", "active", "created_at", "expires_at",
		"updated_at", "last_activity_at", "ip_address", "user_agent",
	}).AddRow(
		session.ID, session.Username, session.Token, session.Active,
		session.CreatedAt, session.ExpiresAt, session.UpdatedAt,
		session.LastActivityAt, session.IPAddress, session.UserAgent,
	)

	mock.ExpectQuery("SELECT id, username, token").
		WithArgs("token-1").
		WillReturnRows(rows)

	repo := NewSessionRepository(mock, testLogger(t))
	got, err := repo.GetByToken(context.Background(), "token-1")

	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, "jdoe", got.Username)
	assert.True(t, got.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_GetByToken_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, username, token").
		WithArgs("ghost-token").
		WillReturnError(pgx.ErrNoRows)

	repo := NewSessionRepository(mock, testLogger(t))
	got, err := repo.GetByToken(context.Background(), "ghost-token")

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Nil(t, got)
}

func TestSessionRepository_Deactivate(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "session deactivated", rowsAffected: 1},
		{name: "no active session for token", rowsAffected: 0, wantErr: domain.ErrSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec("UPDATE sessions SET active = false").
				WithArgs("token-1").
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.rowsAffected))

			repo := NewSessionRepository(mock, testLogger(t))
			err = repo.Deactivate(context.Background(), "token-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
