package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"auth-bridge/app/domain"
	"auth-bridge/app/port"
)

// GroupRepository implements port.GroupRepository for PostgreSQL. Groups are
// addressed by (tenant slug, name); the tenant's internal id is resolved
// inside each statement so callers never handle tenant ids.
type GroupRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewGroupRepository creates a new PostgreSQL group repository
func NewGroupRepository(db DatabaseIface, logger *slog.Logger) port.GroupRepository {
	return &GroupRepository{
		db:     db,
		logger: logger.With("component", "group_repository"),
	}
}

// Exists checks whether the group exists within the tenant.
func (r *GroupRepository) Exists(ctx context.Context, tenantSlug, name string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM groups g
			JOIN tenants t ON g.tenant_id = t.id
			WHERE t.slug = $1 AND g.name = $2
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, tenantSlug, name).Scan(&exists); err != nil {
		r.logger.Error("failed to check group existence",
			"tenant", tenantSlug, "group", name, "error", err)
		return false, fmt.Errorf("failed to check group existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new group, resolving the tenant id from the slug. A
// (tenant, name) collision reports domain.ErrGroupAlreadyExists; an unknown
// tenant reports domain.ErrTenantNotFound.
func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (
			id, tenant_id, name, description, externally_managed, created_at, updated_at
		)
		SELECT $1, t.id, $3, $4, $5, $6, $7
		FROM tenants t
		WHERE t.slug = $2 AND t.deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query,
		group.ID,
		group.TenantSlug,
		group.Name,
		group.Description,
		group.ExternallyManaged,
		group.CreatedAt,
		group.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrGroupAlreadyExists
		}
		r.logger.Error("failed to create group",
			"tenant", group.TenantSlug, "group", group.Name, "error", err)
		return fmt.Errorf("failed to create group: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}

	r.logger.Info("group created", "tenant", group.TenantSlug, "group", group.Name)
	return nil
}

// UserInGroup checks whether the user is already a member of the group.
func (r *GroupRepository) UserInGroup(ctx context.Context, tenantSlug, name, username string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM group_members gm
			JOIN groups g ON gm.group_id = g.id
			JOIN tenants t ON g.tenant_id = t.id
			JOIN users u ON gm.user_id = u.id
			WHERE t.slug = $1 AND g.name = $2 AND u.username = $3
		)`

	var inGroup bool
	if err := r.db.QueryRow(ctx, query, tenantSlug, name, username).Scan(&inGroup); err != nil {
		r.logger.Error("failed to check group membership",
			"tenant", tenantSlug, "group", name, "username", username, "error", err)
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}

	return inGroup, nil
}

// AddUser adds the user to the group. An existing membership reports
// domain.ErrAlreadyMember. The insert joins both the group and the user;
// if either row is missing nothing is inserted and the error wraps
// domain.ErrGroupNotFound, naming both candidates.
func (r *GroupRepository) AddUser(ctx context.Context, tenantSlug, name, username string) error {
	query := `
		INSERT INTO group_members (group_id, user_id, created_at)
		SELECT g.id, u.id, CURRENT_TIMESTAMP
		FROM groups g
		JOIN tenants t ON g.tenant_id = t.id, users u
		WHERE t.slug = $1 AND g.name = $2 AND u.username = $3`

	result, err := r.db.Exec(ctx, query, tenantSlug, name, username)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		r.logger.Error("failed to add user to group",
			"tenant", tenantSlug, "group", name, "username", username, "error", err)
		return fmt.Errorf("failed to add user to group: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: group %s/%s or user %s missing for membership",
			domain.ErrGroupNotFound, tenantSlug, name, username)
	}

	r.logger.Info("user added to group", "tenant", tenantSlug, "group", name, "username", username)
	return nil
}
