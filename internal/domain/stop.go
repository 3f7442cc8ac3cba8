package domain

import (
	"fmt"
	"time"
)

type StopType string

const (
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopFuel    StopType = "fuel"
	StopBreak   StopType = "break"
	StopRest    StopType = "rest"
)

// Lane maps a stop type onto the duty lane the driver occupies during the stop.
func (t StopType) Lane() (DutyLane, error) {
	switch t {
	case StopPickup, StopDropoff, StopFuel:
		return LaneOnDuty, nil
	case StopBreak:
		return LaneOff, nil
	case StopRest:
		return LaneSleeperBerth, nil
	}
	return 0, fmt.Errorf("stop type %q: %w", string(t), ErrUnknownLane)
}

// Label is the human readable remark attached to segments built from the stop.
func (t StopType) Label() string {
	switch t {
	case StopPickup:
		return "Pickup"
	case StopDropoff:
		return "Dropoff"
	case StopFuel:
		return "Fuel"
	case StopBreak:
		return "Break"
	case StopRest:
		return "Rest"
	}
	return string(t)
}

// Represents a planned interruption of driving along a trip.
// ETA is an absolute instant; DurationMin may be zero or even negative,
// in which case the stop contributes only its start change-point.
type Stop struct {
	ID          string
	Type        StopType
	ETA         time.Time
	DurationMin int
}

// End returns the instant the stop is expected to finish.
func (s Stop) End() time.Time {
	return s.ETA.Add(time.Duration(s.DurationMin) * time.Minute)
}
