// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// Observe records one finished request.
func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeRoute(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func normalizeRoute(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}

// PoolStats is a point-in-time view of a connection pool.
type PoolStats struct {
	Total    int32
	Acquired int32
	Idle     int32
}

// RegisterPool exports connection pool gauges read from stats on every scrape.
func RegisterPool(reg prometheus.Registerer, stats func() PoolStats) {
	if reg == nil || stats == nil {
		return
	}
	gauge := func(name, help string, pick func(PoolStats) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: name,
			Help: help,
		}, func() float64 { return float64(pick(stats())) })
	}
	reg.MustRegister(
		gauge("db_pool_total_conns", "Open database connections.", func(s PoolStats) int32 { return s.Total }),
		gauge("db_pool_acquired_conns", "Database connections in use.", func(s PoolStats) int32 { return s.Acquired }),
		gauge("db_pool_idle_conns", "Idle database connections.", func(s PoolStats) int32 { return s.Idle }),
	)
}
