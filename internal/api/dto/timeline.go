package dto

import (
	"fmt"
	"hos-log-service/internal/domain"
	"time"
)

type Stop struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	ETAIso      string  `json:"etaIso"`
	DurationMin float64 `json:"durationMin"`
}

type DayTimelineRequest struct {
	Stops []Stop `json:"stops"`
	// Now anchors the day when there are no stops. Defaults to the server clock.
	Now string `json:"now,omitempty"`
}

type DutyChange struct {
	TMin int    `json:"tMin"`
	Lane string `json:"lane"`
}

// LaneTotals holds one formatted value per lane, keyed by lane key.
type LaneTotals struct {
	Off     string `json:"off"`
	SB      string `json:"sb"`
	Driving string `json:"driving"`
	OnDuty  string `json:"onduty"`
}

type LaneMinutes struct {
	Off     int `json:"off"`
	SB      int `json:"sb"`
	Driving int `json:"driving"`
	OnDuty  int `json:"onduty"`
}

type DayTimelineResponse struct {
	Anchor  string       `json:"anchor"`
	Changes []DutyChange `json:"changes"`
	Totals  LaneTotals   `json:"totals"`
}

func (s Stop) ToDomain() (domain.Stop, error) {
	eta, err := domain.ParseInstant(s.ETAIso)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("stop %q: %w", s.ID, err)
	}
	typ := domain.StopType(s.Type)
	if _, err := typ.Lane(); err != nil {
		return domain.Stop{}, fmt.Errorf("stop %q: %w", s.ID, err)
	}
	return domain.Stop{ID: s.ID, Type: typ, ETA: eta, DurationMin: domain.MinutesFromFloat(s.DurationMin)}, nil
}

func ToStops(in []Stop) ([]domain.Stop, error) {
	out := make([]domain.Stop, 0, len(in))
	for _, s := range in {
		ds, err := s.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}

func FromStops(in []domain.Stop) []Stop {
	out := make([]Stop, 0, len(in))
	for _, s := range in {
		out = append(out, Stop{
			ID:          s.ID,
			Type:        string(s.Type),
			ETAIso:      FormatInstant(s.ETA),
			DurationMin: float64(s.DurationMin),
		})
	}
	return out
}

// ParseNow reads an optional instant, falling back to fallback when empty.
func ParseNow(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return domain.ParseInstant(s)
}

func ToChanges(in []DutyChange) ([]domain.DutyChange, error) {
	out := make([]domain.DutyChange, 0, len(in))
	for i, c := range in {
		lane, err := domain.ParseLaneKey(c.Lane)
		if err != nil {
			return nil, fmt.Errorf("change #%d: %w", i+1, err)
		}
		out = append(out, domain.DutyChange{Minute: c.TMin, Lane: lane})
	}
	if err := domain.ValidateChanges(out); err != nil {
		return nil, err
	}
	return out, nil
}

func FromChanges(in []domain.DutyChange) []DutyChange {
	out := make([]DutyChange, 0, len(in))
	for _, c := range in {
		out = append(out, DutyChange{TMin: c.Minute, Lane: c.Lane.Key()})
	}
	return out
}

func NewDayTimelineResponse(tl domain.DayTimeline) DayTimelineResponse {
	return DayTimelineResponse{
		Anchor:  FormatInstant(tl.Anchor),
		Changes: FromChanges(tl.Changes),
		Totals:  NewLaneTotals(tl.Hours()),
	}
}

func NewLaneTotals(v [domain.LaneCount]string) LaneTotals {
	return LaneTotals{
		Off:     v[domain.LaneOff],
		SB:      v[domain.LaneSleeperBerth],
		Driving: v[domain.LaneDriving],
		OnDuty:  v[domain.LaneOnDuty],
	}
}

func NewLaneMinutes(m domain.LaneMinutes) LaneMinutes {
	return LaneMinutes{
		Off:     m[domain.LaneOff],
		SB:      m[domain.LaneSleeperBerth],
		Driving: m[domain.LaneDriving],
		OnDuty:  m[domain.LaneOnDuty],
	}
}

// FormatInstant renders t as RFC 3339 in UTC; the zero time renders empty.
func FormatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
