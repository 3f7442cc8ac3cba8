package geometry

import (
	"fmt"
	"hos-log-service/internal/domain"
	"slices"
	"time"
)

// DailyGrid is the drawable single-day log: one stepped path over four lanes.
type DailyGrid struct {
	Bounds       Bounds
	ShowHourBand bool
	Lanes        []LaneBand
	Ticks        []Tick
	Path         string
	Totals       [domain.LaneCount]string
}

// HosGrid is the drawable windowed day: independent strokes per segment
// plus connectors.
type HosGrid struct {
	Date         string
	Bounds       Bounds
	ShowHourBand bool
	Lanes        []LaneBand
	Ticks        []Tick
	Lines        []Line
	Totals       [domain.LaneCount]string
}

func BuildDailyGrid(b Bounds, showHourBand bool, changes []domain.DutyChange) *DailyGrid {
	m := NewMapper(b, time.Time{})
	g := &DailyGrid{
		Bounds:       b,
		ShowHourBand: showHourBand,
		Lanes:        m.LaneBands(),
		Path:         StepPath(m, changes),
		Totals:       formatTotals(domain.ChangeTotals(changes)),
	}
	if showHourBand {
		g.Ticks = HourTicks(m)
	}
	return g
}

func BuildHosGrid(b Bounds, showHourBand bool, w domain.DayWindow) *HosGrid {
	m := NewMapper(b, w.Start)
	g := &HosGrid{
		Date:         w.Date,
		Bounds:       b,
		ShowHourBand: showHourBand,
		Lanes:        m.LaneBands(),
		Lines:        SegmentStrokes(m, w),
		Totals:       formatTotals(w.Minutes),
	}
	if showHourBand {
		g.Ticks = HourTicks(m)
	}
	return g
}

// RemeasureDaily recomputes the daily grid for a new surface or change list.
// An unmeasurable surface keeps prev. A result identical to prev returns prev
// with changed=false so callers can skip redundant updates.
func RemeasureDaily(prev *DailyGrid, layout Layout, s Surface, changes []domain.DutyChange) (*DailyGrid, bool, error) {
	b, err := layout.Bounds(s)
	if err != nil {
		return prev, false, fmt.Errorf("remeasure daily grid: %w", err)
	}

	next := BuildDailyGrid(b, s.ShowHourBand, changes)
	if prev != nil && prev.sameAs(next) {
		return prev, false, nil
	}
	return next, true, nil
}

// RemeasureHos is RemeasureDaily for the windowed segment grid.
func RemeasureHos(prev *HosGrid, layout Layout, s Surface, w domain.DayWindow) (*HosGrid, bool, error) {
	b, err := layout.Bounds(s)
	if err != nil {
		return prev, false, fmt.Errorf("remeasure hos grid %s: %w", w.Date, err)
	}

	next := BuildHosGrid(b, s.ShowHourBand, w)
	if prev != nil && prev.sameAs(next) {
		return prev, false, nil
	}
	return next, true, nil
}

func (g *DailyGrid) sameAs(o *DailyGrid) bool {
	return g.Bounds == o.Bounds &&
		g.ShowHourBand == o.ShowHourBand &&
		g.Path == o.Path &&
		g.Totals == o.Totals
}

func (g *HosGrid) sameAs(o *HosGrid) bool {
	return g.Date == o.Date &&
		g.Bounds == o.Bounds &&
		g.ShowHourBand == o.ShowHourBand &&
		g.Totals == o.Totals &&
		slices.Equal(g.Lines, o.Lines)
}

func formatTotals(m domain.LaneMinutes) [domain.LaneCount]string {
	var out [domain.LaneCount]string
	for _, l := range domain.AllLanes {
		out[l] = domain.FormatHHMM(m[l])
	}
	return out
}
