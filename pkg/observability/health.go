package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Pinger is the subset of the storage layer used by readiness checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker provides liveness and readiness probes
type HealthChecker struct {
	store Pinger
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(store Pinger) *HealthChecker {
	return &HealthChecker{store: store}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Liveness returns 200 whenever the process is serving requests
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	writeHealth(w, http.StatusOK, HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	})
}

// Readiness checks the storage backend and returns 503 when it is unreachable
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}
	code := http.StatusOK

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Error = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	writeHealth(w, code, status)
}

func writeHealth(w http.ResponseWriter, code int, status HealthStatus) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
