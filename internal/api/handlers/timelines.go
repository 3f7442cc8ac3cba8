package handlers

import (
	"hos-log-service/internal/api/dto"
	"hos-log-service/internal/services"
	"net/http"
	"time"
)

type TimelineHandler struct {
	// Now is the fallback day anchor for empty stop lists.
	Now func() time.Time
}

// Day derives the canonical single-day change-points from a stop list.
func (h *TimelineHandler) Day(w http.ResponseWriter, r *http.Request) {
	var req dto.DayTimelineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stops, err := dto.ToStops(req.Stops)
	if err != nil {
		writeDomainError(w, r, "derive day timeline", err)
		return
	}
	now, err := dto.ParseNow(req.Now, h.now())
	if err != nil {
		writeDomainError(w, r, "derive day timeline", err)
		return
	}

	tl, err := services.DeriveDayTimeline(stops, now)
	if err != nil {
		writeDomainError(w, r, "derive day timeline", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewDayTimelineResponse(tl))
}

// Window clips a day bucket to its calendar day.
func (h *TimelineHandler) Window(w http.ResponseWriter, r *http.Request) {
	var req dto.WindowRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	bucket, err := req.Bucket.ToDomain()
	if err != nil {
		writeDomainError(w, r, "window day", err)
		return
	}

	win, err := services.WindowDay(bucket, req.WindowOptions.ToDomain())
	if err != nil {
		writeDomainError(w, r, "window day", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewDayWindowResponse(win))
}

func (h *TimelineHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
