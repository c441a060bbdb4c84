package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"auth-bridge/app/domain"
	"auth-bridge/app/port"
)

// TenantRepository implements port.TenantRepository for PostgreSQL. The
// bridge only reads tenants, so lookup by slug is the whole surface.
type TenantRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db DatabaseIface, logger *slog.Logger) port.TenantRepository {
	return &TenantRepository{
		db:     db,
		logger: logger.With("component", "tenant_repository"),
	}
}

// GetBySlug retrieves a tenant by slug.
func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	query := `
		SELECT id, slug, name, description, status, created_at, updated_at, deleted_at
		FROM tenants WHERE slug = $1 AND deleted_at IS NULL`

	var tenant domain.Tenant
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&tenant.ID,
		&tenant.Slug,
		&tenant.Name,
		&tenant.Description,
		&tenant.Status,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
		&tenant.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		r.logger.Error("failed to get tenant by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &tenant, nil
}
