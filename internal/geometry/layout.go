package geometry

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnmeasured = errors.New("surface not measured")

// Surface is the measured pixel size of the container hosting a grid.
type Surface struct {
	Width        float64
	Height       float64
	ShowHourBand bool
}

// Layout describes the fixed chrome around the lane tracks of a grid.
// Margins leave room for lane labels on the left and per-lane totals on the right.
type Layout struct {
	MarginLeft    float64 `yaml:"margin_left"`
	MarginRight   float64 `yaml:"margin_right"`
	MarginTop     float64 `yaml:"margin_top"`
	MarginBottom  float64 `yaml:"margin_bottom"`
	HourBand      float64 `yaml:"hour_band"`       // header height added when the hour band is shown
	MinTrackWidth float64 `yaml:"min_track_width"` // lower bound on the plotted width
}

// Bounds is the plotting rectangle of the four lane tracks.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (b Bounds) Right() float64  { return b.Left + b.Width }
func (b Bounds) Bottom() float64 { return b.Top + b.Height }

const (
	LayoutDaily = "daily"
	LayoutHos   = "hos"
)

// DailyLayout matches the stepped single-day grid: a 70px label column,
// a 60px totals column and a 32px hour header.
var DailyLayout = Layout{
	MarginLeft:  70,
	MarginRight: 60,
	HourBand:    32,
}

// HosLayout matches the multi-day segment grid with its 140px totals gutter.
var HosLayout = Layout{
	MarginLeft:    140,
	MarginRight:   160,
	MarginTop:     30,
	MarginBottom:  180,
	HourBand:      40,
	MinTrackWidth: 200,
}

func DefaultLayouts() map[string]Layout {
	return map[string]Layout{
		LayoutDaily: DailyLayout,
		LayoutHos:   HosLayout,
	}
}

// Bounds computes the lane-track rectangle for a measured surface.
func (l Layout) Bounds(s Surface) (Bounds, error) {
	if !measured(s.Width) || !measured(s.Height) {
		return Bounds{}, fmt.Errorf("bounds %gx%g: %w", s.Width, s.Height, ErrUnmeasured)
	}

	top := l.MarginTop
	if s.ShowHourBand {
		top += l.HourBand
	}

	width := max(s.Width-l.MarginLeft-l.MarginRight, l.MinTrackWidth)
	height := s.Height - top - l.MarginBottom
	if width <= 0 || height <= 0 {
		return Bounds{}, fmt.Errorf("bounds %gx%g: no room for lanes: %w", s.Width, s.Height, ErrUnmeasured)
	}

	return Bounds{Left: l.MarginLeft, Top: top, Width: width, Height: height}, nil
}

func measured(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
