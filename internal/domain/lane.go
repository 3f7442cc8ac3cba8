package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownLane = errors.New("unknown duty lane")

// DutyLane is one of the four rows of the daily log grid.
// The numeric value is the lane index: display order top-to-bottom and the
// tie-break key when two entries land on the same minute.
type DutyLane int

const (
	LaneOff DutyLane = iota
	LaneSleeperBerth
	LaneDriving
	LaneOnDuty
)

// LaneCount is the number of horizontal bands on a log grid.
const LaneCount = 4

// AllLanes lists lanes in display order.
var AllLanes = [LaneCount]DutyLane{LaneOff, LaneSleeperBerth, LaneDriving, LaneOnDuty}

var laneKeys = [LaneCount]string{"off", "sb", "driving", "onduty"}

var laneStatuses = [LaneCount]string{"OFF", "SB", "DRIVING", "ONDUTY"}

var laneNames = [LaneCount]string{"Off Duty", "Sleeper Berth", "Driving", "On Duty (not driving)"}

func (l DutyLane) Valid() bool { return l >= LaneOff && l <= LaneOnDuty }

// Index returns the 0-based band position of the lane.
func (l DutyLane) Index() int { return int(l) }

// Key is the single-day wire name ("off", "sb", "driving", "onduty").
func (l DutyLane) Key() string {
	if !l.Valid() {
		return ""
	}
	return laneKeys[l]
}

// Status is the multi-day wire name ("OFF", "SB", "DRIVING", "ONDUTY").
func (l DutyLane) Status() string {
	if !l.Valid() {
		return ""
	}
	return laneStatuses[l]
}

func (l DutyLane) String() string {
	if !l.Valid() {
		return fmt.Sprintf("DutyLane(%d)", int(l))
	}
	return laneNames[l]
}

// ParseLaneKey parses a single-day lane key.
func ParseLaneKey(s string) (DutyLane, error) {
	for i, k := range laneKeys {
		if k == s {
			return DutyLane(i), nil
		}
	}
	return 0, fmt.Errorf("parse lane key %q: %w", s, ErrUnknownLane)
}

// ParseStatus parses a multi-day segment status.
func ParseStatus(s string) (DutyLane, error) {
	for i, k := range laneStatuses {
		if k == s {
			return DutyLane(i), nil
		}
	}
	return 0, fmt.Errorf("parse status %q: %w", s, ErrUnknownLane)
}

// LaneMinutes accumulates minutes per lane, indexed by DutyLane.
type LaneMinutes [LaneCount]int

func (m LaneMinutes) Sum() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
