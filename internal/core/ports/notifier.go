package ports

import (
	"context"

	"factoryorders/internal/core/domain/model/kernel"
)

// NotificationKind classifies outbound notifications.
type NotificationKind string

// Notification kinds emitted by the core.
const (
	NotifyStatusChanged   NotificationKind = "status_changed"
	NotifyPricingRequired NotificationKind = "pricing_required"
	NotifyInvoicePaid     NotificationKind = "invoice_paid"
	NotifySampleFeePaid   NotificationKind = "sample_fee_paid"
)

// Notifier dispatches fire-and-forget notifications to users. Delivery
// mechanics live outside the core; implementations must not let a delivery
// failure surface to the mutating operation that triggered it.
type Notifier interface {
	Notify(ctx context.Context, userID kernel.UUID, kind NotificationKind, message string, relatedOrderID kernel.UUID)
}
