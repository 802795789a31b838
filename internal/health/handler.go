package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"internship-service/internal/httputil"

	"github.com/go-chi/chi/v5"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
	logger *slog.Logger
}

func NewHandler(checks map[string]Check, logger *slog.Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status, results := h.Probe(r.Context())
	code := http.StatusOK
	if status != "ready" {
		code = http.StatusServiceUnavailable
	}
	httputil.RespondWithJSON(w, code, HealthResponse{Status: status, Checks: results})
}

// Probe runs every check and returns "ready" only if all pass.
func (h *Handler) Probe(ctx context.Context) (string, map[string]string) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := "ready"
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
			results[name] = "down"
			status = "not ready"
			continue
		}
		results[name] = "up"
	}
	return status, results
}
