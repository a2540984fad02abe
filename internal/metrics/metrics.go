// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "monney"

var (
	// HTTPRequests counts served requests.
	// Labels: method, route (gin full path), status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests served",
	}, []string{"method", "route", "status"})

	// HTTPDuration measures request latency.
	// Labels: method, route
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	// CategoriesCreated counts created categories.
	// Labels: type (income, expense), source (user, defaults)
	CategoriesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "categories",
		Name:      "created_total",
		Help:      "Total categories created",
	}, []string{"type", "source"})

	// ReorderEntries counts reorder batch entries by outcome.
	// Labels: outcome (applied, skipped)
	ReorderEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "categories",
		Name:      "reorder_entries_total",
		Help:      "Category reorder entries by outcome",
	}, []string{"outcome"})

	// TransactionsWritten counts transaction writes.
	// Labels: op (create, update, delete)
	TransactionsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "transactions",
		Name:      "written_total",
		Help:      "Total transaction writes",
	}, []string{"op"})

	// DashboardDuration measures dashboard aggregate computation.
	// Labels: view (stats, daily, by_category, sankey, overview)
	DashboardDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "compute_duration_seconds",
		Help:      "Dashboard aggregation latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"view"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
