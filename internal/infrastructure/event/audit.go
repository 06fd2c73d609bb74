package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/proptraka/backend/internal/domain/shared"
)

// AuditLogHandler writes every domain event to the structured log. It gives
// operators a flat audit trail of tenancy and payment activity without a
// dedicated audit store.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates an audit handler backed by the given logger.
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.Named("audit")}
}

// Handle logs the event. It never returns an error; the audit trail is
// best-effort and must not fail the publishing operation.
func (h *AuditLogHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", e.EventType()),
		zap.String("event_id", e.EventID().String()),
		zap.String("aggregate_type", e.AggregateType()),
		zap.String("aggregate_id", e.AggregateID().String()),
		zap.String("landlord_id", e.OwnerID().String()),
		zap.Time("occurred_at", e.OccurredAt()),
	)
	return nil
}

// EventTypes returns an empty slice so the handler receives all events.
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*AuditLogHandler)(nil)
