package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the probe service
type Metrics struct {
	registry *prometheus.Registry

	// Request metrics
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	requestErrors   *prometheus.CounterVec

	// Probe metrics
	probeTotal    *prometheus.CounterVec
	probeDuration prometheus.Histogram
}

// NewMetrics creates a new metrics instance with its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		// Request metrics
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_request_errors_total",
				Help: "Total number of HTTP requests answered with an error status",
			},
			[]string{"method", "path", "status"},
		),

		// Probe metrics
		probeTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probe_outcomes_total",
				Help: "Total number of fetch probes by outcome kind",
			},
			[]string{"kind"},
		),
		probeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "probe_duration_seconds",
				Help:    "Duration of fetch probes in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Registry returns the registry backing these metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(wrw.statusCode)

		m.requestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(duration)
		m.requestTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()

		if wrw.statusCode >= 400 {
			m.requestErrors.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		}
	})
}

// RecordProbe records one fetch probe outcome
func (m *Metrics) RecordProbe(kind string, duration time.Duration) {
	m.probeTotal.WithLabelValues(kind).Inc()
	m.probeDuration.Observe(duration.Seconds())
}
