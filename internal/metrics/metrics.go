// Package metrics holds the prometheus collectors of the service on a private
// registry so tests and binaries never collide on the global one.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Cache lookups by data kind (bikes, current, hourly, daily) and result (hit, miss, error).
	CacheLookupsTotal *prometheus.CounterVec

	// Rows written on a cache miss, by table.
	CacheRowsPersistedTotal *prometheus.CounterVec

	// Upstream calls by provider and outcome (success, error, breaker_open).
	UpstreamCallsTotal *prometheus.CounterVec

	// Upstream latency by provider.
	UpstreamDuration *prometheus.HistogramVec

	// Forecast entries dropped while decoding.
	UpstreamMalformedEntriesTotal *prometheus.CounterVec

	// Sweep runs by outcome (skipped, completed, failed).
	SweepRunsTotal *prometheus.CounterVec

	// Rows removed by the sweep, by table.
	SweepDeletedRowsTotal *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by data kind and result",
		},
		[]string{"kind", "result"},
	)
	CacheRowsPersistedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_rows_persisted_total",
			Help: "Rows written to the cache tables after an upstream fetch",
		},
		[]string{"table"},
	)
	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Upstream API calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Upstream API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
	UpstreamMalformedEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_malformed_entries_total",
			Help: "Upstream list entries skipped because they could not be decoded",
		},
		[]string{"provider"},
	)
	SweepRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_sweep_runs_total",
			Help: "Eviction sweep invocations by outcome",
		},
		[]string{"outcome"},
	)
	SweepDeletedRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_sweep_deleted_rows_total",
			Help: "Rows deleted by the eviction sweep",
		},
		[]string{"table"},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(
		CacheLookupsTotal,
		CacheRowsPersistedTotal,
		UpstreamCallsTotal,
		UpstreamDuration,
		UpstreamMalformedEntriesTotal,
		SweepRunsTotal,
		SweepDeletedRowsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// Handler serves the registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Registry exposes the registry for tests.
func Registry() *prometheus.Registry {
	return registry
}
