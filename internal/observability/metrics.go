// Package observability carries the side channel for failures the core
// swallows on purpose: audit writes and notification dispatches never fail
// their primary operation, so their errors surface here as metrics and logs
// instead.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters for swallowed failures and background sweeps.
type Metrics struct {
	// AuditLogFailures counts audit entries that could not be persisted.
	AuditLogFailures prometheus.Counter

	// NotificationFailures counts notifications that could not be dispatched.
	NotificationFailures prometheus.Counter

	// DraftsPurged counts orders removed by the draft-expiry sweep.
	DraftsPurged prometheus.Counter

	// DraftPurgeFailures counts orders the sweep failed to remove.
	DraftPurgeFailures prometheus.Counter

	// PricesRepaired counts client prices written by the margin repair batch.
	PricesRepaired prometheus.Counter
}

// NewMetrics registers the counters with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AuditLogFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "factoryorders_audit_log_failures_total",
			Help: "Audit entries that could not be persisted and were dropped.",
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "factoryorders_notification_failures_total",
			Help: "Notifications that could not be dispatched.",
		}),
		DraftsPurged: factory.NewCounter(prometheus.CounterOpts{
			Name: "factoryorders_drafts_purged_total",
			Help: "Expired draft orders removed by the cascade sweep.",
		}),
		DraftPurgeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "factoryorders_draft_purge_failures_total",
			Help: "Expired draft orders the cascade sweep failed to remove.",
		}),
		PricesRepaired: factory.NewCounter(prometheus.CounterOpts{
			Name: "factoryorders_prices_repaired_total",
			Help: "Client prices written by the margin repair batch.",
		}),
	}
}
