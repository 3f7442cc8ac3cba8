package geometry

import (
	"hos-log-service/internal/domain"
	"time"
)

// Mapper converts minutes, instants and lanes into coordinates inside Bounds.
// DayStart is only needed for instant conversions.
type Mapper struct {
	Bounds   Bounds
	DayStart time.Time
}

func NewMapper(b Bounds, dayStart time.Time) Mapper {
	return Mapper{Bounds: b, DayStart: dayStart}
}

// XForMinute maps a minute of the day linearly onto the track, clamped to [0,1440].
func (m Mapper) XForMinute(minute float64) float64 {
	minute = min(max(minute, 0), domain.MinutesPerDay)
	return m.Bounds.Left + minute*m.Bounds.Width/domain.MinutesPerDay
}

// XForInstant clamps t to the mapper's day and maps its fractional position.
func (m Mapper) XForInstant(t time.Time) float64 {
	return m.XForMinute(float64(t.Sub(m.DayStart)) / float64(time.Minute))
}

// MinuteForX inverts XForMinute for x inside the track.
func (m Mapper) MinuteForX(x float64) float64 {
	if m.Bounds.Width <= 0 {
		return 0
	}
	frac := (x - m.Bounds.Left) / m.Bounds.Width
	return min(max(frac, 0), 1) * domain.MinutesPerDay
}

func (m Mapper) LaneHeight() float64 {
	return m.Bounds.Height / domain.LaneCount
}

// YForLane returns the vertical center of the lane's band.
func (m Mapper) YForLane(l domain.DutyLane) float64 {
	return m.Bounds.Top + m.LaneHeight()*(float64(l.Index())+0.5)
}

// LaneBand is one horizontal row of the grid.
type LaneBand struct {
	Lane    domain.DutyLane
	Label   string
	Top     float64
	Bottom  float64
	CenterY float64
}

func (m Mapper) LaneBands() []LaneBand {
	h := m.LaneHeight()
	out := make([]LaneBand, 0, domain.LaneCount)
	for _, l := range domain.AllLanes {
		top := m.Bounds.Top + h*float64(l.Index())
		out = append(out, LaneBand{
			Lane:    l,
			Label:   l.String(),
			Top:     top,
			Bottom:  top + h,
			CenterY: m.YForLane(l),
		})
	}
	return out
}
