package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a planned journey: a departure instant and the stops along the way.
// Stops are stored in input order; consumers sort by ETA themselves.
type Trip struct {
	ID        uuid.UUID
	Name      string
	DepartAt  time.Time
	CreatedAt time.Time
	Stops     []Stop
}

func NewTrip(name string, departAt time.Time, stops []Stop) *Trip {
	for i := range stops {
		if stops[i].ID == "" {
			stops[i].ID = uuid.NewString()
		}
	}
	return &Trip{
		ID:        uuid.New(),
		Name:      name,
		DepartAt:  departAt.UTC(),
		CreatedAt: time.Now().UTC(),
		Stops:     stops,
	}
}

// Start returns the instant the trip begins: DepartAt, or the earliest stop
// ETA when no departure was recorded.
func (t *Trip) Start() time.Time {
	if !t.DepartAt.IsZero() {
		return t.DepartAt
	}

	var first time.Time
	for _, s := range t.Stops {
		if first.IsZero() || s.ETA.Before(first) {
			first = s.ETA
		}
	}
	return first
}

// TripLog is the full set of derived views for one trip.
type TripLog struct {
	Trip     *Trip
	Timeline DayTimeline
	Buckets  []DayBucket
	Days     []DayWindow
}
