package observability

import (
	"context"
	"log/slog"

	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/ports"
)

// Dispatcher is the raw outbound notification transport (email, SMS, push).
// Implementations live outside the core.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID kernel.UUID, kind ports.NotificationKind, message string, relatedOrderID kernel.UUID) error
}

// SafeNotifier adapts a Dispatcher to the fire-and-forget Notifier port:
// dispatch failures are counted and logged, never propagated.
type SafeNotifier struct {
	dispatcher Dispatcher
	metrics    *Metrics
	logger     *slog.Logger
}

// NewSafeNotifier creates the swallowing notifier wrapper.
func NewSafeNotifier(dispatcher Dispatcher, metrics *Metrics, logger *slog.Logger) *SafeNotifier {
	return &SafeNotifier{
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger.With("component", "notifier"),
	}
}

// Notify dispatches the notification, swallowing any transport error.
func (n *SafeNotifier) Notify(
	ctx context.Context,
	userID kernel.UUID,
	kind ports.NotificationKind,
	message string,
	relatedOrderID kernel.UUID,
) {
	if err := n.dispatcher.Dispatch(ctx, userID, kind, message, relatedOrderID); err != nil {
		n.metrics.NotificationFailures.Inc()
		n.logger.WarnContext(ctx, "Notification dispatch failed",
			"kind", kind,
			"order_id", relatedOrderID.String(),
			"error", err,
		)
	}
}
