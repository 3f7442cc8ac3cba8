package handlers

import (
	"encoding/json"
	"errors"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/geometry"
	"hos-log-service/internal/platform/obs"
	"hos-log-service/internal/ports"
	"io"
	"log"
	"net/http"
)

// Request bodies carry at most a few days of stops or segments.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
// On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeDomainError maps engine and storage errors onto HTTP statuses.
// Input problems surface their message; anything else is logged and hidden.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidTimestamp),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrUnknownLane),
		errors.Is(err, domain.ErrInvalidChanges):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, geometry.ErrUnmeasured):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ports.ErrTripNotFound):
		writeError(w, r, http.StatusNotFound, "trip not found")
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
