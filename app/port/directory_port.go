package port

//go:generate mockgen -source=directory_port.go -destination=../mocks/mock_directory_port.go

import (
	"context"

	"auth-bridge/app/domain"
)

// DirectoryAuthenticator defines the directory-side authentication contract.
// Implementations classify failures into the domain sentinels so the
// orchestrator can route them:
//
//   - domain.ErrPrincipalNotFound: the directory does not know the principal
//   - domain.ErrDirectoryUnavailable: transport or communication failure
//   - domain.ErrInvalidCredentials: the directory rejected the credential
//
// Any other error is an unclassified directory failure and aborts the
// attempt.
type DirectoryAuthenticator interface {
	// Authenticate verifies the credential against the directory and, on
	// success, returns the principal's attributes.
	Authenticate(ctx context.Context, username, password string) (domain.AttributeSet, error)
}

// IdentityMapper produces a normalized identity from raw directory
// attributes, or domain.ErrIdentityUnusable when no usable record can be
// built (e.g. the mandatory email attribute is missing).
type IdentityMapper interface {
	MapPrincipal(ctx context.Context, username string, attrs domain.AttributeSet) (*domain.DirectoryIdentity, error)
}
