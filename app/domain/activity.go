package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType classifies an audit event.
type ActivityType string

const (
	ActivityTypeCreated        ActivityType = "created"
	ActivityTypeUpdated        ActivityType = "updated"
	ActivityTypeAddUserToGroup ActivityType = "add_user_to_group"
)

// ActivitySource identifies where an audit event originated.
type ActivitySource string

const (
	ActivitySourceAPI ActivitySource = "api"
)

// ContentTypeUser tags user-related audit events in ExtraInfo.
const ContentTypeUser = "user"

// Activity is one append-only audit event. Events record actual state
// changes only; repeated reconciliation of unchanged state emits nothing.
type Activity struct {
	ID         uuid.UUID         `json:"id"`
	TenantSlug string            `json:"tenant_slug"`
	Actor      string            `json:"actor"`
	Subject    string            `json:"subject"`
	Type       ActivityType      `json:"type"`
	Source     ActivitySource    `json:"source"`
	ExtraInfo  map[string]string `json:"extra_info,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewActivity creates an audit event.
func NewActivity(tenantSlug, actor, subject string, activityType ActivityType, source ActivitySource, extraInfo map[string]string) *Activity {
	return &Activity{
		ID:         uuid.New(),
		TenantSlug: tenantSlug,
		Actor:      actor,
		Subject:    subject,
		Type:       activityType,
		Source:     source,
		ExtraInfo:  extraInfo,
		CreatedAt:  time.Now(),
	}
}
