package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Router creates and configures the HTTP router
func Router(handler *Handler, metrics *Metrics, logger zerolog.Logger) http.Handler {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(
		SecurityHeaders,
		RequestLogger(logger),
		Recovery(logger),
		metrics.Middleware,
	)
	if handler.tracer != nil {
		router.Use(handler.tracer.TracingMiddleware)
	}

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/fetch", handler.FetchDocument).Methods(http.MethodGet)
	api.HandleFunc("/health", handler.health.Handler).Methods(http.MethodGet)

	// Prometheus endpoint
	router.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router
}
