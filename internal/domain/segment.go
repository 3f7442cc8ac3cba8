package domain

import "time"

// Segment is a stretch of absolute time spent in one lane.
// It may span several calendar days or lie outside a given day entirely.
type Segment struct {
	Start time.Time
	End   time.Time
	Lane  DutyLane
	Label string
}

func (s Segment) Duration() time.Duration { return s.End.Sub(s.Start) }

// DayBucket groups the segments whose extent intersects one UTC calendar day.
type DayBucket struct {
	Date     string
	Segments []Segment
}

// ClippedSegment is a segment restricted to a day window.
// Seed marks the synthetic pre-trip entry of a trip's first day;
// Filler marks OFF time synthesized to close a gap.
type ClippedSegment struct {
	Segment
	ClippedStart time.Time
	ClippedEnd   time.Time
	Seed         bool
	Filler       bool
}

func (c ClippedSegment) Minutes() int { return RoundMinutes(c.ClippedEnd.Sub(c.ClippedStart)) }

// Connector joins two lanes whose boundary times coincide within tolerance.
// It is drawn as a vertical stroke at At.
type Connector struct {
	At   time.Time
	From DutyLane
	To   DutyLane
}

// DayWindow is the per-day view of a bucket: segments clipped to
// [Start, End), sorted by start, with lane totals and connectors.
// Unlike DayTimeline the totals may leave gaps and need not sum to 1440.
type DayWindow struct {
	Date       string
	Start      time.Time
	End        time.Time
	Segments   []ClippedSegment
	Minutes    LaneMinutes
	Connectors []Connector
}
