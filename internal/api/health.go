package api

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// HealthStatus represents the health status of a component
type HealthStatus struct {
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthChecker defines the interface for health checks
type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}

// HealthManager manages health checks
type HealthManager struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	started  time.Time
}

// NewHealthManager creates a new health manager
func NewHealthManager() *HealthManager {
	return &HealthManager{
		checkers: make(map[string]HealthChecker),
		started:  time.Now(),
	}
}

// RegisterChecker registers a health checker
func (hm *HealthManager) RegisterChecker(name string, checker HealthChecker) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.checkers[name] = checker
}

// Handler answers liveness requests with the status of every component
func (hm *HealthManager) Handler(w http.ResponseWriter, r *http.Request) {
	hm.mu.RLock()
	defer hm.mu.RUnlock()

	components := make(map[string]HealthStatus, len(hm.checkers))
	healthy := true
	for name, checker := range hm.checkers {
		status := checker.Check(r.Context())
		components[name] = status
		if status.Status != "healthy" {
			healthy = false
		}
	}

	overall := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		overall = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, map[string]any{
		"status":     overall,
		"uptime":     time.Since(hm.started).String(),
		"components": components,
	})
}

// CheckerFunc adapts a function to the HealthChecker interface
type CheckerFunc func(ctx context.Context) HealthStatus

// Check implements HealthChecker
func (f CheckerFunc) Check(ctx context.Context) HealthStatus {
	return f(ctx)
}
