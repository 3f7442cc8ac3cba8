package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidChanges = errors.New("invalid change list")

// DutyChange is an instantaneous status transition at a minute of the day.
// The lane holds until the next change or midnight.
type DutyChange struct {
	Minute int
	Lane   DutyLane
}

// Represents the canonical single-day log derived from a stop list.
// Changes start at minute 0 and end at minute 1440; Minutes partitions
// the whole day across the four lanes.
type DayTimeline struct {
	Anchor  time.Time
	Changes []DutyChange
	Minutes LaneMinutes
}

// Hours formats the lane totals as "H.D" hour strings.
func (t DayTimeline) Hours() [LaneCount]string {
	var out [LaneCount]string
	for _, l := range AllLanes {
		out[l] = FormatHours(t.Minutes[l])
	}
	return out
}

// ChangeTotals sums the minutes each lane holds between consecutive changes.
func ChangeTotals(changes []DutyChange) LaneMinutes {
	var m LaneMinutes
	for i := 0; i+1 < len(changes); i++ {
		cur := changes[i]
		if cur.Lane.Valid() {
			m[cur.Lane] += changes[i+1].Minute - cur.Minute
		}
	}
	return m
}

// ValidateChanges checks that changes describe one day: the first change is
// at minute 0, minutes stay within [0, 1440] and strictly increase, and every
// lane is known. An empty list is valid and draws nothing.
func ValidateChanges(changes []DutyChange) error {
	for i, c := range changes {
		switch {
		case !c.Lane.Valid():
			return fmt.Errorf("change #%d: lane %d: %w", i+1, int(c.Lane), ErrUnknownLane)
		case c.Minute < 0 || c.Minute > MinutesPerDay:
			return fmt.Errorf("change #%d: minute %d outside [0, %d]: %w", i+1, c.Minute, MinutesPerDay, ErrInvalidChanges)
		case i == 0 && c.Minute != 0:
			return fmt.Errorf("change #1: day must start at minute 0, got %d: %w", c.Minute, ErrInvalidChanges)
		case i > 0 && c.Minute <= changes[i-1].Minute:
			return fmt.Errorf("change #%d: minute %d does not follow %d: %w", i+1, c.Minute, changes[i-1].Minute, ErrInvalidChanges)
		}
	}
	return nil
}
