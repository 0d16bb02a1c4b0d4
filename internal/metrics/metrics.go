// Package metrics holds the Prometheus instruments shared by the API. All
// collectors are registered with the default registry in init, so mounting
// promhttp.Handler() on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// IdentifierLookups counts dispatched lookups by entity, candidate kind and
	// outcome (found, not_found, error).
	IdentifierLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdvg_identifier_lookups_total",
			Help: "Identifier lookups by entity, candidate kind and outcome.",
		},
		[]string{"entity", "kind", "outcome"},
	)

	// URLBuildFailures counts records that could not be linked.
	URLBuildFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdvg_url_build_failures_total",
			Help: "Canonical URL builds rejected because the record has no public ID.",
		},
		[]string{"entity"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdvg_http_requests_total",
			Help: "HTTP requests by route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gdvg_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdvg_cache_hits_total",
			Help: "Cache lookups by namespace and result (hit, miss).",
		},
		[]string{"namespace", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		IdentifierLookups,
		URLBuildFailures,
		HTTPRequests,
		HTTPDuration,
		CacheHits,
	)
}
