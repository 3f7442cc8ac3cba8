package geometry

import (
	"errors"
	"hos-log-service/internal/domain"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// 1440px wide and 400px tall tracks keep one pixel per minute and 100px lanes.
var (
	dailySurface = Surface{Width: 1570, Height: 400}
	hosSurface   = Surface{Width: 1740, Height: 610}
)

func TestLayoutBounds(t *testing.T) {
	tests := []struct {
		name    string
		layout  Layout
		surface Surface
		want    Bounds
	}{
		{name: "daily", layout: DailyLayout, surface: dailySurface, want: Bounds{Left: 70, Top: 0, Width: 1440, Height: 400}},
		{name: "daily with hour band", layout: DailyLayout, surface: Surface{Width: 1570, Height: 432, ShowHourBand: true}, want: Bounds{Left: 70, Top: 32, Width: 1440, Height: 400}},
		{name: "hos", layout: HosLayout, surface: hosSurface, want: Bounds{Left: 140, Top: 30, Width: 1440, Height: 400}},
		{name: "hos minimum track width", layout: HosLayout, surface: Surface{Width: 400, Height: 610}, want: Bounds{Left: 140, Top: 30, Width: 200, Height: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.layout.Bounds(tt.surface)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutBoundsUnmeasured(t *testing.T) {
	for _, s := range []Surface{
		{},
		{Width: 800},
		{Width: math.NaN(), Height: 300},
		{Width: 100, Height: 300},
	} {
		_, err := DailyLayout.Bounds(s)
		assert.True(t, errors.Is(err, ErrUnmeasured), "surface %+v", s)
	}

	_, err := HosLayout.Bounds(Surface{Width: 1000, Height: 200})
	assert.True(t, errors.Is(err, ErrUnmeasured))
}

func TestMapper(t *testing.T) {
	m := NewMapper(Bounds{Left: 70, Top: 0, Width: 1440, Height: 400}, day)

	assert.Equal(t, 70.0, m.XForMinute(0))
	assert.Equal(t, 790.0, m.XForMinute(720))
	assert.Equal(t, 1510.0, m.XForMinute(1440))
	assert.Equal(t, 70.0, m.XForMinute(-15))
	assert.Equal(t, 1510.0, m.XForMinute(2000))

	assert.Equal(t, 670.5, m.XForInstant(day.Add(10*time.Hour+30*time.Second)))
	assert.Equal(t, 1510.0, m.XForInstant(day.Add(30*time.Hour)))
	assert.Equal(t, 70.0, m.XForInstant(day.Add(-time.Hour)))

	assert.Equal(t, 720.0, m.MinuteForX(790))
	assert.Equal(t, 0.0, m.MinuteForX(0))

	assert.Equal(t, 50.0, m.YForLane(domain.LaneOff))
	assert.Equal(t, 150.0, m.YForLane(domain.LaneSleeperBerth))
	assert.Equal(t, 250.0, m.YForLane(domain.LaneDriving))
	assert.Equal(t, 350.0, m.YForLane(domain.LaneOnDuty))

	bands := m.LaneBands()
	require.Len(t, bands, domain.LaneCount)
	assert.Equal(t, 300.0, bands[3].Top)
	assert.Equal(t, "On Duty (not driving)", bands[3].Label)
}

func TestMapperRoundTrip(t *testing.T) {
	m := NewMapper(Bounds{Left: 140, Top: 70, Width: 997, Height: 333}, day)
	for minute := 0.0; minute <= domain.MinutesPerDay; minute += 37.5 {
		assert.InDelta(t, minute, m.MinuteForX(m.XForMinute(minute)), 1e-9)
	}
}

func TestStepPath(t *testing.T) {
	m := NewMapper(Bounds{Left: 70, Top: 0, Width: 1440, Height: 400}, day)

	changes := []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 60, Lane: domain.LaneOnDuty},
		{Minute: 90, Lane: domain.LaneDriving},
		{Minute: 1440, Lane: domain.LaneOff},
	}
	assert.Equal(t,
		"M 70 50 L 130 50 L 130 350 L 160 350 L 160 250 L 1510 250 L 1510 50",
		StepPath(m, changes))

	assert.Equal(t, "", StepPath(m, nil))
}

func TestSegmentStrokesDrawOrder(t *testing.T) {
	m := NewMapper(Bounds{Left: 140, Top: 30, Width: 1440, Height: 400}, day)

	w := domain.DayWindow{
		Date:  "2025-03-01",
		Start: day,
		End:   day.Add(domain.Day),
		Segments: []domain.ClippedSegment{
			clipped(0, 600*time.Minute, domain.LaneOff),
			clipped(600*time.Minute+30*time.Second, 18*time.Hour, domain.LaneSleeperBerth),
		},
		Connectors: []domain.Connector{
			{At: day.Add(600*time.Minute + 30*time.Second), From: domain.LaneOff, To: domain.LaneSleeperBerth},
		},
	}

	lines := SegmentStrokes(m, w)
	require.Len(t, lines, 3)
	assert.Equal(t, Line{X1: 740.5, Y1: 80, X2: 740.5, Y2: 180, Kind: KindConnector, Lane: domain.LaneSleeperBerth}, lines[0])
	assert.Equal(t, Line{X1: 140, Y1: 80, X2: 740, Y2: 80, Kind: KindSegment, Lane: domain.LaneOff}, lines[1])
	assert.Equal(t, Line{X1: 740.5, Y1: 180, X2: 1220, Y2: 180, Kind: KindSegment, Lane: domain.LaneSleeperBerth}, lines[2])

	assert.Empty(t, SegmentStrokes(m, domain.DayWindow{Start: day}))
}

func clipped(from, to time.Duration, lane domain.DutyLane) domain.ClippedSegment {
	s := domain.Segment{Start: day.Add(from), End: day.Add(to), Lane: lane}
	return domain.ClippedSegment{Segment: s, ClippedStart: s.Start, ClippedEnd: s.End}
}

func TestHourTicks(t *testing.T) {
	ticks := HourTicks(NewMapper(Bounds{Left: 70, Width: 1440, Height: 400}, day))

	require.Len(t, ticks, 25)
	assert.Equal(t, Tick{Hour: 0, X: 70, Label: "Mid."}, ticks[0])
	assert.Equal(t, Tick{Hour: 12, X: 790, Label: "Noon"}, ticks[12])
	assert.Equal(t, "1", ticks[13].Label)
	assert.Equal(t, "11", ticks[11].Label)
	assert.Equal(t, "Mid.", ticks[24].Label)
}
