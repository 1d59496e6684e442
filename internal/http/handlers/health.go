package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/platform-accounts/internal/http/respond"
)

// HealthHandler returns uptime and database reachability.
type HealthHandler struct {
	startedAt time.Time
	ping      func(context.Context) error
}

// NewHealthHandler creates a health endpoint handler. ping may be nil.
func NewHealthHandler(startedAt time.Time, ping func(context.Context) error) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, ping: ping}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}
	respond.JSON(w, code, map[string]string{
		"status": status,
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
