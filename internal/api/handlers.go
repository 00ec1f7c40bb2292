package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/sajjad-MoBe/fetchprobe/internal/report"
	"github.com/sajjad-MoBe/fetchprobe/outcome"
)

// Fetcher runs one remote fetch operation
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) outcome.Outcome
}

// Handler handles HTTP requests for the probe service
type Handler struct {
	fetcher  Fetcher
	reporter report.Reporter
	metrics  *Metrics
	tracer   *Tracer
	health   *HealthManager
}

// NewHandler creates a new probe handler. reporter and tracer may be nil.
func NewHandler(fetcher Fetcher, reporter report.Reporter, metrics *Metrics, tracer *Tracer) *Handler {
	health := NewHealthManager()
	health.RegisterChecker("fetcher", CheckerFunc(func(ctx context.Context) HealthStatus {
		return HealthStatus{Status: "healthy", Timestamp: time.Now()}
	}))

	return &Handler{
		fetcher:  fetcher,
		reporter: reporter,
		metrics:  metrics,
		tracer:   tracer,
		health:   health,
	}
}

// probeResponse is the body returned by the fetch endpoint
type probeResponse struct {
	URL      string      `json:"url"`
	Outcome  string      `json:"outcome"`
	Document any         `json:"document,omitempty"`
	Error    *probeError `json:"error,omitempty"`
}

// probeError carries the failure kind and reason
type probeError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FetchDocument handles GET requests that run one fetch probe
func (h *Handler) FetchDocument(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "url parameter is required")
		return
	}
	if parsed, err := url.ParseRequestURI(rawURL); err != nil || parsed.Scheme != "http" && parsed.Scheme != "https" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "url must be absolute http or https")
		return
	}

	var out outcome.Outcome
	if h.tracer != nil {
		out = h.tracer.TraceFetch(r.Context(), rawURL, func(ctx context.Context) outcome.Outcome {
			return h.fetcher.Fetch(ctx, rawURL)
		})
	} else {
		out = h.fetcher.Fetch(r.Context(), rawURL)
	}

	if h.reporter != nil {
		h.reporter.Report(rawURL, out)
	}
	h.metrics.RecordProbe(probeKind(out), time.Since(start))

	if doc, ok := out.Document(); ok {
		writeJSON(w, http.StatusOK, probeResponse{
			URL:      rawURL,
			Outcome:  "success",
			Document: doc.Value(),
		})
		return
	}

	ferr := out.Err()
	writeJSON(w, http.StatusBadGateway, probeResponse{
		URL:     rawURL,
		Outcome: "failure",
		Error: &probeError{
			Kind:    string(ferr.Kind),
			Message: ferr.Message,
		},
	})
}

// probeKind labels the outcome for metrics
func probeKind(out outcome.Outcome) string {
	if out.IsSuccess() {
		return "success"
	}
	return string(out.Err().Kind)
}
