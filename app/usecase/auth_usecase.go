package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"auth-bridge/app/domain"
	"auth-bridge/app/port"
)

// AuthUsecase drives the end-to-end authentication flow: directory
// authentication, identity mapping, reconciliation and session issuance,
// with explicit fallback to local authentication when the directory is
// unreachable or does not know the principal.
type AuthUsecase struct {
	directory  port.DirectoryAuthenticator
	mapper     port.IdentityMapper
	reconciler port.Reconciler
	local      port.LocalAuthenticator
	sessions   *sessionService
	users      port.UserRepository
	logger     *slog.Logger
}

// NewAuthUsecase creates a new AuthUsecase instance
func NewAuthUsecase(
	directory port.DirectoryAuthenticator,
	mapper port.IdentityMapper,
	reconciler port.Reconciler,
	local port.LocalAuthenticator,
	tokens port.TokenIssuer,
	sessionRepo port.SessionRepository,
	users port.UserRepository,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		directory:  directory,
		mapper:     mapper,
		reconciler: reconciler,
		local:      local,
		sessions:   newSessionService(tokens, sessionRepo, users, sessionTTL, logger),
		users:      users,
		logger:     logger.With("component", "auth_usecase"),
	}
}

// Authenticate authenticates the principal against the directory and
// reconciles its identity into the local store.
//
// Outcome classification:
//   - principal unknown or directory unreachable: delegate to local
//     authentication, returning its result or error unchanged
//   - credential rejected by the directory: fail, never fall back
//   - any other directory failure, an unusable identity, or a user-level
//     reconciliation failure: fail with a system-level error
func (uc *AuthUsecase) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	attrs, err := uc.directory.Authenticate(ctx, username, password)
	switch {
	case errors.Is(err, domain.ErrPrincipalNotFound):
		uc.logger.Info("user not found with external security provider, trying local store",
			"username", username)
		return uc.local.Authenticate(ctx, username, password)

	case errors.Is(err, domain.ErrDirectoryUnavailable):
		uc.logger.Info("failed to connect with external security provider, trying local store",
			"username", username, "error", err)
		return uc.local.Authenticate(ctx, username, password)

	case errors.Is(err, domain.ErrInvalidCredentials):
		uc.logger.Error("authentication failed with the directory", "username", username)
		return nil, domain.ErrInvalidCredentials

	case err != nil:
		uc.logger.Error("authentication failed with the directory", "username", username, "error", err)
		return nil, domain.NewAuthSystemError("authentication failed with the directory", err)
	}

	identity, err := uc.mapper.MapPrincipal(ctx, username, attrs)
	if err != nil {
		// The principal is known to the directory but unusable; falling
		// back here would mask the mapping problem behind the wrong store.
		uc.logger.Error("failed to retrieve directory user details", "username", username, "error", err)
		return nil, domain.NewAuthSystemError("failed to retrieve directory user details", err)
	}

	user, err := uc.reconciler.Reconcile(ctx, identity)
	if err != nil {
		return nil, err
	}

	return uc.sessions.issue(ctx, user.Username)
}

// ValidateToken resolves a session token into a session context.
func (uc *AuthUsecase) ValidateToken(ctx context.Context, token string) (*domain.SessionContext, error) {
	username, err := uc.sessions.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessions.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if !session.IsValid() {
		if session.IsExpired() {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrSessionInactive
	}

	sessionContext := &domain.SessionContext{
		Username:       username,
		SessionID:      session.ID.String(),
		IsActive:       session.Active,
		ExpiresAt:      session.ExpiresAt,
		LastActivityAt: session.LastActivityAt,
	}

	if user, err := uc.users.GetByUsername(ctx, username); err == nil {
		sessionContext.Email = user.Email
	}

	return sessionContext, nil
}

// Logout deactivates the session bound to the token.
func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	if _, err := uc.sessions.tokens.Verify(token); err != nil {
		return err
	}
	return uc.sessions.repo.Deactivate(ctx, token)
}

// sessionService issues and persists session credentials. Shared by the
// directory path and the local fallback path so both produce identical
// session artifacts.
type sessionService struct {
	tokens port.TokenIssuer
	repo   port.SessionRepository
	users  port.UserRepository
	ttl    time.Duration
	logger *slog.Logger
}

func newSessionService(tokens port.TokenIssuer, repo port.SessionRepository, users port.UserRepository, ttl time.Duration, logger *slog.Logger) *sessionService {
	return &sessionService{
		tokens: tokens,
		repo:   repo,
		users:  users,
		ttl:    ttl,
		logger: logger.With("component", "session_service"),
	}
}

// issue mints a token, persists the session row and records the login.
func (s *sessionService) issue(ctx context.Context, username string) (*domain.Session, error) {
	token, err := s.tokens.Issue(username)
	if err != nil {
		return nil, domain.NewAuthSystemError("failed to create session token", err)
	}

	session, err := domain.NewSession(username, token, s.ttl)
	if err != nil {
		return nil, domain.NewAuthSystemError("failed to build session", err)
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, domain.NewAuthSystemError("failed to store session", err)
	}

	if err := s.users.RecordLogin(ctx, username); err != nil {
		// Login bookkeeping is best-effort; the session is already valid.
		s.logger.Warn("failed to record login time", "username", username, "error", err)
	}

	return session, nil
}
