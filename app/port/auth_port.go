package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"

	"auth-bridge/app/domain"
)

// AuthUsecase defines the end-to-end authentication contract exposed to the
// transport layer.
type AuthUsecase interface {
	// Authenticate runs the full directory-first flow and returns an issued
	// session, or one classified error.
	Authenticate(ctx context.Context, username, password string) (*domain.Session, error)

	// ValidateToken resolves a session token into a session context.
	ValidateToken(ctx context.Context, token string) (*domain.SessionContext, error)

	// Logout deactivates the session bound to the token.
	Logout(ctx context.Context, token string) error
}

// LocalAuthenticator is the fallback authentication path, invoked when the
// directory is unreachable or does not know the principal. Its result (or
// error) is returned to the caller unchanged.
type LocalAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Session, error)
}

// Reconciler synchronizes a normalized directory identity into the local
// store and returns the session-eligible user.
type Reconciler interface {
	Reconcile(ctx context.Context, identity *domain.DirectoryIdentity) (*domain.User, error)
}

// TokenIssuer mints and verifies session token strings.
type TokenIssuer interface {
	Issue(username string) (token string, err error)
	Verify(token string) (username string, err error)
}

// SessionRepository defines session data access.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Deactivate(ctx context.Context, token string) error
}
