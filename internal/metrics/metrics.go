// Package metrics exposes the dashboard's Prometheus instrumentation on a
// private registry, kept separate from the default one so tests can register
// freely without collisions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// WarehouseFetches counts warehouse queries by outcome.
	WarehouseFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_warehouse_fetches_total",
			Help: "Warehouse fetches by status (ok, error, rejected)",
		},
		[]string{"status"},
	)

	// WarehouseFetchDuration observes how long a warehouse round trip takes.
	WarehouseFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_warehouse_fetch_duration_seconds",
			Help:    "Warehouse fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheRequests counts cache lookups by backend and result.
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_requests_total",
			Help: "Cache lookups by backend and result (hit, miss, error)",
		},
		[]string{"backend", "result"},
	)

	// ChartRenders counts figure builds per chart, memoized hits excluded.
	ChartRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_chart_renders_total",
			Help: "Figure builds per chart",
		},
		[]string{"chart"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		WarehouseFetches,
		WarehouseFetchDuration,
		CacheRequests,
		ChartRenders,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func Registry() *prometheus.Registry {
	return registry
}
