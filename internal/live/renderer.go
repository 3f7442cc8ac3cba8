package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"hos-log-service/internal/api/dto"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/geometry"
	"hos-log-service/internal/services"
	"time"
)

// Message types exchanged over a live session.
const (
	TypeMeasure = "measure"
	TypeChanges = "changes"
	TypeStops   = "stops"
	TypeBucket  = "bucket"

	TypeDailyGrid = "daily_grid"
	TypeHosGrid   = "hos_grid"
	TypeError     = "error"
)

type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Inputs is everything a grid depends on. Slices are replaced on update and
// never mutated, so snapshots can be handed between goroutines.
type Inputs struct {
	Surface  geometry.Surface
	Measured bool
	Changes  []domain.DutyChange
	Window   *domain.DayWindow
}

// Apply folds one inbound message into the inputs.
func (in *Inputs) Apply(msg Inbound, now time.Time) error {
	switch msg.Type {
	case TypeMeasure:
		var s dto.Surface
		if err := json.Unmarshal(msg.Data, &s); err != nil {
			return fmt.Errorf("measure: %w", err)
		}
		in.Surface, in.Measured = s.ToDomain(), true

	case TypeChanges:
		var req struct {
			Changes []dto.DutyChange `json:"changes"`
		}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return fmt.Errorf("changes: %w", err)
		}
		changes, err := dto.ToChanges(req.Changes)
		if err != nil {
			return fmt.Errorf("changes: %w", err)
		}
		in.Changes = changes

	case TypeStops:
		var req dto.DayTimelineRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return fmt.Errorf("stops: %w", err)
		}
		stops, err := dto.ToStops(req.Stops)
		if err != nil {
			return fmt.Errorf("stops: %w", err)
		}
		anchor, err := dto.ParseNow(req.Now, now)
		if err != nil {
			return fmt.Errorf("stops: %w", err)
		}
		tl, err := services.DeriveDayTimeline(stops, anchor)
		if err != nil {
			return fmt.Errorf("stops: %w", err)
		}
		in.Changes = tl.Changes

	case TypeBucket:
		var req dto.WindowRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return fmt.Errorf("bucket: %w", err)
		}
		bucket, err := req.Bucket.ToDomain()
		if err != nil {
			return fmt.Errorf("bucket: %w", err)
		}
		w, err := services.WindowDay(bucket, req.WindowOptions.ToDomain())
		if err != nil {
			return fmt.Errorf("bucket: %w", err)
		}
		in.Window = &w

	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// Renderer owns the last geometry sent to the client and only reports grids
// whose geometry actually changed.
type Renderer struct {
	daily   geometry.Layout
	hos     geometry.Layout
	lastDay *geometry.DailyGrid
	lastHos *geometry.HosGrid
}

func NewRenderer(layouts map[string]geometry.Layout) *Renderer {
	r := &Renderer{daily: geometry.DailyLayout, hos: geometry.HosLayout}
	if l, ok := layouts[geometry.LayoutDaily]; ok {
		r.daily = l
	}
	if l, ok := layouts[geometry.LayoutHos]; ok {
		r.hos = l
	}
	return r
}

// Render recomputes both grids. A surface that cannot be measured keeps the
// previous geometry and is reported as an error alongside any other output.
func (r *Renderer) Render(in Inputs) ([]Outbound, error) {
	if !in.Measured {
		return nil, nil
	}

	var (
		out  []Outbound
		errs []error
	)

	if in.Changes != nil {
		g, changed, err := geometry.RemeasureDaily(r.lastDay, r.daily, in.Surface, in.Changes)
		if err != nil {
			errs = append(errs, err)
		}
		r.lastDay = g
		if changed {
			out = append(out, Outbound{Type: TypeDailyGrid, Data: dto.NewDailyGridResponse(g)})
		}
	}

	if in.Window != nil {
		g, changed, err := geometry.RemeasureHos(r.lastHos, r.hos, in.Surface, *in.Window)
		if err != nil {
			errs = append(errs, err)
		}
		r.lastHos = g
		if changed {
			out = append(out, Outbound{Type: TypeHosGrid, Data: dto.NewHosGridResponse(g)})
		}
	}

	return out, errors.Join(errs...)
}
