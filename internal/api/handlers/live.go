package handlers

import (
	"hos-log-service/internal/geometry"
	"hos-log-service/internal/live"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// LiveHandler upgrades to a websocket and hosts a live grid session: the
// client streams surface measurements and inputs, the server answers with
// grids whenever their geometry changes.
type LiveHandler struct {
	Layouts  map[string]geometry.Layout
	Upgrader websocket.Upgrader
}

func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade failed: %v", err)
		return
	}

	live.NewSession(conn, h.Layouts).Run(r.Context())
}
