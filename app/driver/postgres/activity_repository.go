package postgres

import (
	"context"
	"log/slog"

	"auth-bridge/app/domain"
	"auth-bridge/app/port"
)

// ActivityRepository implements port.ActivityRecorder for PostgreSQL. The
// audit trail is best-effort: a failed insert is logged and swallowed so it
// never breaks an authentication that already succeeded.
type ActivityRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewActivityRepository creates a new PostgreSQL activity repository
func NewActivityRepository(db DatabaseIface, logger *slog.Logger) port.ActivityRecorder {
	return &ActivityRepository{
		db:     db,
		logger: logger.With("component", "activity_repository"),
	}
}

// Record appends an audit event. The tenant id is resolved from the slug; an
// event for an unknown tenant is dropped with a warning.
func (r *ActivityRepository) Record(ctx context.Context, activity *domain.Activity) {
	query := `
		INSERT INTO activities (
			id, tenant_id, actor, subject, type, source, extra_info, created_at
		)
		SELECT $1, t.id, $3, $4, $5, $6, $7, $8
		FROM tenants t
		WHERE t.slug = $2`

	result, err := r.db.Exec(ctx, query,
		activity.ID,
		activity.TenantSlug,
		activity.Actor,
		activity.Subject,
		activity.Type,
		activity.Source,
		activity.ExtraInfo,
		activity.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to record activity",
			"tenant", activity.TenantSlug,
			"type", activity.Type,
			"subject", activity.Subject,
			"error", err)
		return
	}

	if result.RowsAffected() == 0 {
		r.logger.Warn("activity dropped, unknown tenant",
			"tenant", activity.TenantSlug, "type", activity.Type)
	}
}
