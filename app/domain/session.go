package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session represents an issued session credential bound to a username.
type Session struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Token          string    `json:"token"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	IPAddress      *string   `json:"ip_address,omitempty"`
	UserAgent      *string   `json:"user_agent,omitempty"`
}

// SessionContext represents session context for requests
type SessionContext struct {
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	SessionID      string    `json:"session_id"`
	IsActive       bool      `json:"is_active"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// NewSession creates a new session with validation
func NewSession(username, token string, duration time.Duration) (*Session, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if token == "" {
		return nil, fmt.Errorf("session token is required")
	}

	if duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}

	now := time.Now()

	session := &Session{
		ID:             uuid.New(),
		Username:       username,
		Token:          token,
		Active:         true,
		CreatedAt:      now,
		ExpiresAt:      now.Add(duration),
		UpdatedAt:      now,
		LastActivityAt: now,
	}

	return session, nil
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid returns true if the session is active and not expired
func (s *Session) IsValid() bool {
	return s.Active && !s.IsExpired()
}

// UpdateActivity updates the last activity timestamp
func (s *Session) UpdateActivity() {
	now := time.Now()
	s.LastActivityAt = now
	s.UpdatedAt = now
}

// Deactivate marks the session as inactive
func (s *Session) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}
