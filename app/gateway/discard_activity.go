package gateway

import (
	"context"
	"log/slog"

	"auth-bridge/app/domain"
)

// DiscardActivityRecorder drops audit events. Wired in place of the
// persistent recorder when audit logging is disabled by configuration.
type DiscardActivityRecorder struct {
	logger *slog.Logger
}

// NewDiscardActivityRecorder creates a recorder that discards every event.
func NewDiscardActivityRecorder(logger *slog.Logger) *DiscardActivityRecorder {
	return &DiscardActivityRecorder{
		logger: logger.With("component", "discard_activity_recorder"),
	}
}

// Record drops the event.
func (r *DiscardActivityRecorder) Record(_ context.Context, activity *domain.Activity) {
	r.logger.Debug("audit logging disabled, dropping activity",
		"tenant", activity.TenantSlug,
		"type", activity.Type)
}
