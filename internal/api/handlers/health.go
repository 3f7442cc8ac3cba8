package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and, when a database is configured, whether
// it answers a ping.
type HealthHandler struct {
	DB Pinger
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok"}

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.DB.PingContext(ctx); err != nil {
			log.Printf("health: db ping failed: %v", err)
			res["status"], res["db"] = "degraded", "unreachable"
			writeJSON(w, r, http.StatusServiceUnavailable, res)
			return
		}
		res["db"] = "ok"
	}

	writeJSON(w, r, http.StatusOK, res)
}
