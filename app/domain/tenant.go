package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusDeleted   TenantStatus = "deleted"
)

// Tenant represents a site in the multi-tenant system. The bridge only ever
// reads tenants (to validate a site key from the directory and obtain its
// internal identifier); it never creates or mutates them.
type Tenant struct {
	ID          uuid.UUID    `json:"id"`
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Status      TenantStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	DeletedAt   *time.Time   `json:"deleted_at,omitempty"`
}

// slugRegex validates tenant slugs (lowercase, alphanumeric, hyphens only)
var slugRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// NewTenant creates a new tenant with validation
func NewTenant(slug, name string) (*Tenant, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}

	if len(slug) > 100 {
		return nil, fmt.Errorf("slug must be 100 characters or less")
	}

	if !slugRegex.MatchString(slug) {
		return nil, fmt.Errorf("slug must contain only lowercase letters, numbers, and hyphens")
	}

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty or whitespace only")
	}

	now := time.Now()

	tenant := &Tenant{
		ID:        uuid.New(),
		Slug:      slug,
		Name:      name,
		Status:    TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return tenant, nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// IsDeleted returns true if the tenant is soft deleted
func (t *Tenant) IsDeleted() bool {
	return t.DeletedAt != nil || t.Status == TenantStatusDeleted
}
