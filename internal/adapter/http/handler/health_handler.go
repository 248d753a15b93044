package handler

import (
	"context"
	"net/http"
)

// ConsistencyChecker reports whether the ledger still adds up.
type ConsistencyChecker interface {
	CheckConsistency(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	checker ConsistencyChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checker ConsistencyChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the ledger is consistent.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		if err := h.checker.CheckConsistency(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "ledger unhealthy", err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"ledger": "ok",
	})
}
