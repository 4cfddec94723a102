package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/shared"
)

// ActivityLogHandler is a wildcard handler that records every domain event
// to the structured log. It gives operators a chronological activity trail
// without a dedicated audit store.
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new activity log handler
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger}
}

// EventTypes returns an empty slice so the handler receives all events
func (h *ActivityLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event metadata
func (h *ActivityLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// Ensure ActivityLogHandler implements shared.EventHandler
var _ shared.EventHandler = (*ActivityLogHandler)(nil)
