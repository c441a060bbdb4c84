package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Group represents a site-scoped group. Name and tenant slug together are
// the group's identity; groups created by the bridge are always externally
// managed.
type Group struct {
	ID                uuid.UUID `json:"id"`
	TenantSlug        string    `json:"tenant_slug"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ExternallyManaged bool      `json:"externally_managed"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewExternalGroup creates a group record owned by the directory.
func NewExternalGroup(name, description, tenantSlug string) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required")
	}

	if tenantSlug == "" {
		return nil, fmt.Errorf("tenant slug is required")
	}

	now := time.Now()

	group := &Group{
		ID:                uuid.New(),
		TenantSlug:        tenantSlug,
		Name:              name,
		Description:       description,
		ExternallyManaged: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return group, nil
}
