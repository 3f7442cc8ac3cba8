package dto

import "hos-log-service/internal/geometry"

type Surface struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	ShowHourBand bool    `json:"showHourBand"`
}

type DailyGridRequest struct {
	Changes []DutyChange `json:"changes"`
	Surface Surface      `json:"surface"`
}

type HosGridRequest struct {
	Bucket  DayBucket `json:"bucket"`
	Surface Surface   `json:"surface"`
	WindowOptions
}

type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Line struct {
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
	Kind string  `json:"kind"`
	Lane string  `json:"lane"`
}

type Tick struct {
	Hour  int     `json:"hour"`
	X     float64 `json:"x"`
	Label string  `json:"label"`
}

type LaneBand struct {
	Lane    string  `json:"lane"`
	Label   string  `json:"label"`
	Top     float64 `json:"top"`
	Bottom  float64 `json:"bottom"`
	CenterY float64 `json:"centerY"`
}

type GridResponse struct {
	Date   string     `json:"date,omitempty"`
	Bounds Bounds     `json:"bounds"`
	Lanes  []LaneBand `json:"lanes"`
	Ticks  []Tick     `json:"ticks,omitempty"`
	Path   string     `json:"path"`
	Lines  []Line     `json:"lines"`
	Totals LaneTotals `json:"totals"`
}

func (s Surface) ToDomain() geometry.Surface {
	return geometry.Surface{Width: s.Width, Height: s.Height, ShowHourBand: s.ShowHourBand}
}

func NewDailyGridResponse(g *geometry.DailyGrid) GridResponse {
	return GridResponse{
		Bounds: newBounds(g.Bounds),
		Lanes:  newLaneBands(g.Lanes),
		Ticks:  newTicks(g.Ticks),
		Path:   g.Path,
		Lines:  []Line{},
		Totals: NewLaneTotals(g.Totals),
	}
}

func NewHosGridResponse(g *geometry.HosGrid) GridResponse {
	lines := make([]Line, 0, len(g.Lines))
	for _, l := range g.Lines {
		lines = append(lines, Line{X1: l.X1, Y1: l.Y1, X2: l.X2, Y2: l.Y2, Kind: string(l.Kind), Lane: l.Lane.Key()})
	}
	return GridResponse{
		Date:   g.Date,
		Bounds: newBounds(g.Bounds),
		Lanes:  newLaneBands(g.Lanes),
		Ticks:  newTicks(g.Ticks),
		Lines:  lines,
		Totals: NewLaneTotals(g.Totals),
	}
}

func newBounds(b geometry.Bounds) Bounds {
	return Bounds{X: b.Left, Y: b.Top, Width: b.Width, Height: b.Height}
}

func newLaneBands(in []geometry.LaneBand) []LaneBand {
	out := make([]LaneBand, 0, len(in))
	for _, b := range in {
		out = append(out, LaneBand{Lane: b.Lane.Key(), Label: b.Label, Top: b.Top, Bottom: b.Bottom, CenterY: b.CenterY})
	}
	return out
}

func newTicks(in []geometry.Tick) []Tick {
	if len(in) == 0 {
		return nil
	}
	out := make([]Tick, 0, len(in))
	for _, t := range in {
		out = append(out, Tick{Hour: t.Hour, X: t.X, Label: t.Label})
	}
	return out
}
