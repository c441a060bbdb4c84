package domain

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// User represents a user account in the local store. For directory-backed
// users the directory remains the credential of record; PasswordHash only
// carries a generated placeholder (or a real hash for local-only accounts).
type User struct {
	ID                uuid.UUID  `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name,omitempty"`
	LastName          string     `json:"last_name,omitempty"`
	PasswordHash      string     `json:"-"` // Exclude from JSON
	Active            bool       `json:"active"`
	ExternallyManaged bool       `json:"externally_managed"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	LastLoginAt       *time.Time `json:"last_login_at,omitempty"`
}

// NewExternalUser creates a user record sourced from the directory.
func NewExternalUser(username, email, firstName, lastName, passwordHash string) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}

	now := time.Now()

	user := &User{
		ID:                uuid.New(),
		Username:          username,
		Email:             email,
		FirstName:         firstName,
		LastName:          lastName,
		PasswordHash:      passwordHash,
		Active:            true,
		ExternallyManaged: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return user, nil
}

// RecordLogin records the last login time
func (u *User) RecordLogin(loginTime time.Time) {
	u.LastLoginAt = &loginTime
	u.UpdatedAt = time.Now()
}

// IsActive returns true if the user may authenticate
func (u *User) IsActive() bool {
	return u.Active
}

// UserUpdate carries the profile fields refreshed from the directory on
// each successful authentication. Username is the record's identity and is
// never updated.
type UserUpdate struct {
	Username          string
	FirstName         string
	LastName          string
	Email             string
	ExternallyManaged bool
}
