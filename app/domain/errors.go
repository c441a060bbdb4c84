package domain

import "errors"

// Authentication and reconciliation errors
var (
	// Directory outcomes
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPrincipalNotFound    = errors.New("principal not found in directory")
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	ErrIdentityUnusable     = errors.New("failed to retrieve directory user details")

	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")

	// Group and membership errors
	ErrGroupNotFound      = errors.New("group not found")
	ErrGroupAlreadyExists = errors.New("group already exists")
	ErrAlreadyMember      = errors.New("user already in group")

	// Tenant errors
	ErrTenantNotFound = errors.New("tenant not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionInactive = errors.New("session inactive")
	ErrInvalidToken    = errors.New("invalid token")
)

// AuthSystemError represents a fatal system-level authentication failure
// carrying the original cause for diagnostics. It is distinct from a
// credential rejection: the attempt failed because a collaborator failed,
// not because the principal proved nothing.
type AuthSystemError struct {
	Message string
	Cause   error
}

func (e *AuthSystemError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AuthSystemError) Unwrap() error {
	return e.Cause
}

// NewAuthSystemError creates a new system-level authentication error
func NewAuthSystemError(message string, cause error) *AuthSystemError {
	return &AuthSystemError{
		Message: message,
		Cause:   cause,
	}
}

// IsAuthSystemError checks if an error is an AuthSystemError
func IsAuthSystemError(err error) bool {
	var sysErr *AuthSystemError
	return errors.As(err, &sysErr)
}
