package errors

import (
	"errors"
	"fmt"
	"net/http"

	"auth-bridge/app/domain"
)

// ErrorCode identifies a response error category. Every code maps to a
// fixed HTTP status so handlers never pick status codes ad hoc.
type ErrorCode string

const (
	// Request errors
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Authentication errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"

	// Policy errors
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeSecurityViolation ErrorCode = "SECURITY_VIOLATION"

	// System errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError is a coded application error carrying the HTTP status its code
// maps to. The cause never serializes; callers see code and message only.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusForCode(code),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusForCode(code),
		Cause:      cause,
	}
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatusCode gets the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// statusForCode maps error codes to HTTP status codes
func statusForCode(code ErrorCode) int {
	switch code {
	case ErrCodeBadRequest, ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeUnauthorized, ErrCodeInvalidCredentials, ErrCodeUserInactive,
		ErrCodeInvalidToken, ErrCodeSessionNotFound:
		return http.StatusUnauthorized
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeSecurityViolation:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Predefined response errors

var (
	ErrBadRequest         = New(ErrCodeBadRequest, "invalid request body")
	ErrTokenRequired      = New(ErrCodeUnauthorized, "session token required")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "invalid credentials")
	ErrUserInactive       = New(ErrCodeUserInactive, "user account is inactive")
	ErrInvalidSession     = New(ErrCodeInvalidToken, "invalid session")
	ErrSessionNotFound    = New(ErrCodeSessionNotFound, "session not found")
	ErrRateLimitExceeded  = New(ErrCodeRateLimitExceeded, "rate limit exceeded")
)

// FromAuthError maps an authentication outcome to its response error.
// Credential rejections and inactive accounts keep their codes; anything
// else collapses into an opaque internal error so system failures never
// leak detail to the caller.
func FromAuthError(err error) *AppError {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return ErrInvalidCredentials
	case errors.Is(err, domain.ErrUserInactive):
		return ErrUserInactive
	default:
		return Wrap(ErrCodeInternalError, "authentication failed", err)
	}
}

// FromLogoutError maps a logout failure to its response error. A session
// that is already gone still answers 401, not 404; the token holder learns
// nothing about session existence.
func FromLogoutError(err error) *AppError {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrSessionInactive),
		errors.Is(err, domain.ErrInvalidToken):
		return ErrInvalidSession
	default:
		return Wrap(ErrCodeInternalError, "logout failed", err)
	}
}
