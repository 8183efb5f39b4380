package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/redact"
)

// Health statuses.
const (
	StatusHealthy       = "healthy"
	StatusDegraded      = "degraded"
	StatusUnhealthy     = "unhealthy"
	StatusNotConfigured = "not_configured"
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DependencyStatus is the health of one dependency.
type DependencyStatus struct {
	Status string `json:"status"`
	Type   string `json:"type,omitempty"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is returned by /health and /health/detailed.
type HealthResponse struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// RootResponse is the welcome document served at /.
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
}

// HealthHandler serves the unauthenticated service endpoints.
type HealthHandler struct {
	version string
	// redis is nil when no Redis is configured.
	redis Pinger
	now   func() time.Time
}

// NewHealthHandler creates a HealthHandler. redis may be nil.
func NewHealthHandler(version string, redis Pinger) *HealthHandler {
	return &HealthHandler{
		version: version,
		redis:   redis,
		now:     time.Now,
	}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, RootResponse{
		Message: "Welcome to Task Management API",
		Version: h.version,
		Health:  "/health",
	})
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    StatusHealthy,
		Timestamp: h.now().UTC(),
	})
}

// Detailed handles GET /health/detailed. A Redis failure degrades the
// service but does not fail the check, since the rate limiter fails open.
func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    StatusHealthy,
		Timestamp: h.now().UTC(),
		Dependencies: map[string]DependencyStatus{
			"database": {Status: StatusHealthy, Type: "in-memory"},
		},
	}

	switch {
	case h.redis == nil:
		resp.Dependencies["redis"] = DependencyStatus{Status: StatusNotConfigured}
	default:
		if err := h.redis.Ping(r.Context()); err != nil {
			resp.Status = StatusDegraded
			resp.Dependencies["redis"] = DependencyStatus{
				Status: StatusUnhealthy,
				Error:  redact.Error(err),
			}
		} else {
			resp.Dependencies["redis"] = DependencyStatus{Status: StatusHealthy}
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
