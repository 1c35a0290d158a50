// Package metrics provides Prometheus observability metrics for the staffing
// engine's HTTP surface and core computations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// ENGINE METRICS
// =============================================================================

// ReportsComputed counts hour-report aggregations, labeled by granularity.
var ReportsComputed = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "reports_computed_total",
	Help:      "Number of hour reports computed",
}, []string{"granularity"})

// LayoutsComputed counts grid layout computations, labeled by granularity.
var LayoutsComputed = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "layouts_computed_total",
	Help:      "Number of grid layouts computed",
}, []string{"granularity"})

// ConflictChecks counts conflict detections and how many found conflicts.
var ConflictChecks = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "conflict_checks_total",
	Help:      "Number of time-off conflict checks run",
}, []string{"result"}) // "clean" or "conflict"

// SkippedAssignments counts assignments excluded for malformed input.
// A rising rate points at upstream data corruption.
var SkippedAssignments = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "skipped_assignments_total",
	Help:      "Number of assignments excluded from aggregation due to invalid data",
})

// =============================================================================
// HTTP METRICS
// =============================================================================

// HTTPRequests counts API requests by route pattern and status class.
var HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "http_requests_total",
	Help:      "Number of HTTP requests served",
}, []string{"route", "status"})
