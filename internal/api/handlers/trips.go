package handlers

import (
	"hos-log-service/internal/api/dto"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/ports"
	"hos-log-service/internal/services"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type TripHandler struct {
	Repo    ports.TripRepository
	Options services.TripLogOptions
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		writeDomainError(w, r, "list trips", err)
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.NewTripResponse(t))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	stops, err := dto.ToStops(req.Stops)
	if err != nil {
		writeDomainError(w, r, "create trip", err)
		return
	}
	departAt, err := dto.ParseNow(req.DepartAt, time.Time{})
	if err != nil {
		writeDomainError(w, r, "create trip", err)
		return
	}

	trip := domain.NewTrip(name, departAt, stops)
	if err := h.Repo.SaveTrip(r.Context(), trip); err != nil {
		writeDomainError(w, r, "create trip", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewTripResponse(trip))
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "get trip", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewTripResponse(trip))
}

// Timeline returns the trip's canonical single-day log.
func (h *TripHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	tl, ok := h.tripLog(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewDayTimelineResponse(tl.Timeline))
}

// Days returns the trip split into calendar days, one window per day.
func (h *TripHandler) Days(w http.ResponseWriter, r *http.Request) {
	tl, ok := h.tripLog(w, r)
	if !ok {
		return
	}

	res := dto.TripDaysResponse{
		TripID:  tl.Trip.ID.String(),
		Buckets: dto.FromBuckets(tl.Buckets),
		Days:    make([]dto.DayWindowResponse, 0, len(tl.Days)),
	}
	for _, d := range tl.Days {
		res.Days = append(res.Days, dto.NewDayWindowResponse(d))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) tripLog(w http.ResponseWriter, r *http.Request) (*domain.TripLog, bool) {
	id, ok := tripID(w, r)
	if !ok {
		return nil, false
	}

	opts := h.Options
	q := r.URL.Query()
	if v := q.Get("seed"); v != "" {
		opts.SeedFirstDay = v == "true" || v == "1"
	}
	if v := q.Get("fillGaps"); v != "" {
		opts.FillGaps = v == "true" || v == "1"
	}

	tl, err := services.PlanTripLog(r.Context(), h.Repo, id, opts)
	if err != nil {
		writeDomainError(w, r, "plan trip log", err)
		return nil, false
	}
	return tl, true
}

func tripID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid trip id")
		return uuid.Nil, false
	}
	return id, true
}
