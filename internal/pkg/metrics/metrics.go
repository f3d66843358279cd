// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forwarding_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	RuleWarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forwarding_rule_warnings_total",
		Help: "Warnings produced by rule evaluation, by warning code.",
	},
		[]string{"code"},
	)

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forwarding_order_status_transitions_total",
		Help: "Successful order status transitions, by target status.",
	},
		[]string{"status"},
	)

	CapacityRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forwarding_capacity_rejections_total",
		Help: "Load additions rejected because a location bound would be exceeded.",
	})

	ValidationFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forwarding_validation_fallbacks_total",
		Help: "Validation gateway calls answered by the local format check.",
	},
		[]string{"code_type"},
	)

	BulkScanUnitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forwarding_bulk_scan_units_total",
		Help: "Units processed by bulk scans, by outcome.",
	},
		[]string{"outcome"},
	)

	SourceReleaseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forwarding_source_release_failures_total",
		Help: "Committed moves whose source location kept the moved load.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forwarding_notification_failures_total",
		Help: "Notifications that could not be published.",
	})

	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forwarding_job_runs_total",
		Help: "Background job executions, by job and result.",
	},
		[]string{"job", "result"},
	)
)
