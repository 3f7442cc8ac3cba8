package handlers

import (
	"hos-log-service/internal/api/dto"
	"hos-log-service/internal/geometry"
	"hos-log-service/internal/services"
	"net/http"
)

type GridHandler struct {
	Layouts map[string]geometry.Layout
}

// Daily lays out the stepped single-day grid for a change list.
func (h *GridHandler) Daily(w http.ResponseWriter, r *http.Request) {
	var req dto.DailyGridRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	changes, err := dto.ToChanges(req.Changes)
	if err != nil {
		writeDomainError(w, r, "daily grid", err)
		return
	}

	g, _, err := geometry.RemeasureDaily(nil, h.layout(geometry.LayoutDaily), req.Surface.ToDomain(), changes)
	if err != nil {
		writeDomainError(w, r, "daily grid", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewDailyGridResponse(g))
}

// Hos windows a day bucket and lays out its segment grid.
func (h *GridHandler) Hos(w http.ResponseWriter, r *http.Request) {
	var req dto.HosGridRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	bucket, err := req.Bucket.ToDomain()
	if err != nil {
		writeDomainError(w, r, "hos grid", err)
		return
	}
	win, err := services.WindowDay(bucket, req.WindowOptions.ToDomain())
	if err != nil {
		writeDomainError(w, r, "hos grid", err)
		return
	}

	g, _, err := geometry.RemeasureHos(nil, h.layout(geometry.LayoutHos), req.Surface.ToDomain(), win)
	if err != nil {
		writeDomainError(w, r, "hos grid", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewHosGridResponse(g))
}

func (h *GridHandler) layout(name string) geometry.Layout {
	if l, ok := h.Layouts[name]; ok {
		return l
	}
	return geometry.DefaultLayouts()[name]
}
