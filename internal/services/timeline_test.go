package services

import (
	"errors"
	"hos-log-service/internal/domain"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func at(min int) time.Time { return day.Add(time.Duration(min) * time.Minute) }

func stop(id string, typ domain.StopType, min, dur int) domain.Stop {
	return domain.Stop{ID: id, Type: typ, ETA: at(min), DurationMin: dur}
}

func TestDeriveDayTimelineEmpty(t *testing.T) {
	tl, err := DeriveDayTimeline(nil, day.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, day, tl.Anchor)
	assert.Equal(t, []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 1440, Lane: domain.LaneOff},
	}, tl.Changes)
	assert.Equal(t, [domain.LaneCount]string{"24.0", "0.0", "0.0", "0.0"}, tl.Hours())
}

func TestDeriveDayTimelineSinglePickup(t *testing.T) {
	tl, err := DeriveDayTimeline([]domain.Stop{stop("p", domain.StopPickup, 60, 30)}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 60, Lane: domain.LaneOnDuty},
		{Minute: 90, Lane: domain.LaneDriving},
		{Minute: 1440, Lane: domain.LaneOff},
	}, tl.Changes)
	assert.Equal(t, 60, tl.Minutes[domain.LaneOff])
	assert.Equal(t, 30, tl.Minutes[domain.LaneOnDuty])
	assert.Equal(t, 1350, tl.Minutes[domain.LaneDriving])
	assert.Equal(t, "0.5", tl.Hours()[domain.LaneOnDuty])
}

func TestDeriveDayTimelineSortsByETA(t *testing.T) {
	tl, err := DeriveDayTimeline([]domain.Stop{
		stop("drop", domain.StopDropoff, 600, 30),
		stop("pick", domain.StopPickup, 120, 60),
		stop("brk", domain.StopBreak, 360, 30),
	}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 120, Lane: domain.LaneOnDuty},
		{Minute: 180, Lane: domain.LaneDriving},
		{Minute: 360, Lane: domain.LaneOff},
		{Minute: 390, Lane: domain.LaneDriving},
		{Minute: 600, Lane: domain.LaneOnDuty},
		{Minute: 630, Lane: domain.LaneDriving},
		{Minute: 1440, Lane: domain.LaneOff},
	}, tl.Changes)
	assert.Equal(t, 1440, tl.Minutes.Sum())
}

func TestDeriveDayTimelineSameMinuteBoundary(t *testing.T) {
	// The pickup ends exactly when the fuel stop begins; the higher lane wins
	// the shared minute so no zero-length DRIVING change survives.
	tl, err := DeriveDayTimeline([]domain.Stop{
		stop("pick", domain.StopPickup, 60, 60),
		stop("fuel", domain.StopFuel, 120, 20),
	}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 60, Lane: domain.LaneOnDuty},
		{Minute: 140, Lane: domain.LaneDriving},
		{Minute: 1440, Lane: domain.LaneOff},
	}, tl.Changes)
	assert.Equal(t, 80, tl.Minutes[domain.LaneOnDuty])
}

func TestDeriveDayTimelineClampsAtMidnight(t *testing.T) {
	tl, err := DeriveDayTimeline([]domain.Stop{
		stop("rest", domain.StopRest, 1380, 600),
	}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 1380, Lane: domain.LaneSleeperBerth},
		{Minute: 1440, Lane: domain.LaneOff},
	}, tl.Changes)
	assert.Equal(t, 60, tl.Minutes[domain.LaneSleeperBerth])
	assert.Equal(t, 1380, tl.Minutes[domain.LaneOff])
}

func TestDeriveDayTimelineChangeAtMidnightOverridesOff(t *testing.T) {
	tl, err := DeriveDayTimeline([]domain.Stop{
		stop("pick", domain.StopPickup, 1260, 60),
		stop("drop", domain.StopDropoff, 1440, 30),
	}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 1260, Lane: domain.LaneOnDuty},
		{Minute: 1320, Lane: domain.LaneDriving},
		{Minute: 1440, Lane: domain.LaneOnDuty},
	}, tl.Changes)
	assert.Equal(t, 1440, tl.Minutes.Sum())
}

func TestDeriveDayTimelineNegativeDuration(t *testing.T) {
	tl, err := DeriveDayTimeline([]domain.Stop{stop("brk", domain.StopBreak, 300, -30)}, time.Time{})
	require.NoError(t, err)

	// Only the start change survives; the day stays OFF from there.
	assert.Equal(t, []domain.DutyChange{
		{Minute: 0, Lane: domain.LaneOff},
		{Minute: 1440, Lane: domain.LaneOff},
	}, tl.Changes)
}

func TestDeriveDayTimelineUnknownStopType(t *testing.T) {
	_, err := DeriveDayTimeline([]domain.Stop{stop("x", domain.StopType("lunch"), 60, 30)}, time.Time{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownLane))
	assert.Contains(t, err.Error(), `stop "x"`)
}

func TestDeriveDayTimelineEqualETAPermutations(t *testing.T) {
	a := stop("a", domain.StopPickup, 300, 45)
	b := stop("b", domain.StopRest, 300, 120)
	c := stop("c", domain.StopBreak, 300, 30)

	want, err := DeriveDayTimeline([]domain.Stop{a, b, c}, time.Time{})
	require.NoError(t, err)

	for _, perm := range [][]domain.Stop{{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}} {
		got, err := DeriveDayTimeline(perm, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDeriveDayTimelineProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := []domain.StopType{domain.StopPickup, domain.StopDropoff, domain.StopFuel, domain.StopBreak, domain.StopRest}

	for n := 0; n < 200; n++ {
		stops := make([]domain.Stop, rng.Intn(8))
		for i := range stops {
			stops[i] = domain.Stop{
				Type:        types[rng.Intn(len(types))],
				ETA:         day.Add(time.Duration(rng.Intn(1500*60)) * time.Second),
				DurationMin: rng.Intn(700) - 30,
			}
		}

		tl, err := DeriveDayTimeline(stops, day)
		require.NoError(t, err)

		require.NotEmpty(t, tl.Changes)
		assert.Equal(t, 0, tl.Changes[0].Minute)
		assert.Equal(t, domain.MinutesPerDay, tl.Changes[len(tl.Changes)-1].Minute)
		assert.Equal(t, domain.MinutesPerDay, tl.Minutes.Sum(), "partition, case %d", n)

		for i := 1; i < len(tl.Changes); i++ {
			assert.Less(t, tl.Changes[i-1].Minute, tl.Changes[i].Minute, "monotonic, case %d", n)
		}
		for i := 1; i < len(tl.Changes)-1; i++ {
			assert.NotEqual(t, tl.Changes[i-1].Lane, tl.Changes[i].Lane, "adjacent duplicate, case %d", n)
		}

		again, err := DeriveDayTimeline(stops, day)
		require.NoError(t, err)
		assert.Equal(t, tl, again)
	}
}
