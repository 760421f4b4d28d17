// Package metrics registers and records Prometheus metrics for the API
// server and the record sync loop.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "Count of HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Help:    "HTTP request latency by endpoint and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "method"})

	syncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_sync_runs_total",
		Help: "Count of record sync runs by outcome.",
	}, []string{"outcome"})

	syncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_sync_duration_seconds",
		Help:    "Duration of record sync runs.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_cache_lookups_total",
		Help: "Count of lookup cache hits and misses.",
	}, []string{"result"})
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(endpoint, method, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	httpRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// RecordSync records one sync run.
func RecordSync(success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	syncRunsTotal.WithLabelValues(outcome).Inc()
	syncDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(result).Inc()
}
