package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"auth-bridge/app/domain"
	"auth-bridge/app/port"
)

// LocalAuthUsecase authenticates against the local store. It is the
// fallback path when the directory is unreachable or does not know the
// principal, and it never consults the directory itself.
type LocalAuthUsecase struct {
	users    port.UserRepository
	sessions *sessionService
	logger   *slog.Logger
}

// NewLocalAuthUsecase creates a new LocalAuthUsecase instance
func NewLocalAuthUsecase(users port.UserRepository, tokens port.TokenIssuer, sessionRepo port.SessionRepository, sessionTTL time.Duration, logger *slog.Logger) *LocalAuthUsecase {
	return &LocalAuthUsecase{
		users:    users,
		sessions: newSessionService(tokens, sessionRepo, users, sessionTTL, logger),
		logger:   logger.With("component", "local_auth_usecase"),
	}
}

// Authenticate verifies the credential against the locally stored hash and
// issues a session on success. An unknown username reports invalid
// credentials rather than leaking which usernames exist.
func (uc *LocalAuthUsecase) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.logger.Info("local authentication failed, user not found", "username", username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.NewAuthSystemError("failed to load user for local authentication", err)
	}

	if !user.IsActive() {
		uc.logger.Warn("local authentication rejected, user inactive", "username", username)
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Info("local authentication failed, credential mismatch", "username", username)
		return nil, domain.ErrInvalidCredentials
	}

	return uc.sessions.issue(ctx, user.Username)
}
