package port

//go:generate mockgen -source=tenant_port.go -destination=../mocks/mock_tenant_port.go

import (
	"context"

	"auth-bridge/app/domain"
)

// TenantRepository defines read-only tenant lookup. The bridge validates
// site keys decoded from directory attributes and never creates or mutates
// tenants; a miss returns domain.ErrTenantNotFound.
type TenantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// ActivityRecorder appends audit events. Recording is fire-and-forget from
// the caller's perspective: implementations log failures and never let them
// escalate into the authentication flow.
type ActivityRecorder interface {
	Record(ctx context.Context, activity *domain.Activity)
}
