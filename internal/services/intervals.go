package services

import (
	"cmp"
	"hos-log-service/internal/domain"
	"slices"
	"time"
)

// SequenceOptions controls how a day's intervals are normalized.
type SequenceOptions struct {
	// LeadingSeed prepends an OFF segment from the window start to the first
	// retained segment (pre-trip status on a trip's first day).
	LeadingSeed bool
	// FillGaps synthesizes OFF segments wherever no segment covers the window.
	FillGaps bool
}

// IntervalSequence is the canonical per-day view shared by the single-day
// deriver and the multi-day windower: segments clipped to [Start, End),
// without degenerate entries, ordered by clipped start.
type IntervalSequence struct {
	Start    time.Time
	End      time.Time
	Segments []domain.ClippedSegment
	filled   bool
}

// NewIntervalSequence clips segments to the 24h window beginning at start.
func NewIntervalSequence(start time.Time, segments []domain.Segment, opts SequenceOptions) IntervalSequence {
	end := start.Add(domain.Day)

	clipped := make([]domain.ClippedSegment, 0, len(segments)+1)
	for _, seg := range segments {
		cs := clampTime(seg.Start, start, end)
		ce := clampTime(seg.End, start, end)
		if !ce.After(cs) {
			continue
		}
		clipped = append(clipped, domain.ClippedSegment{Segment: seg, ClippedStart: cs, ClippedEnd: ce})
	}

	// Stable: segments starting together keep their input order.
	slices.SortStableFunc(clipped, func(a, b domain.ClippedSegment) int {
		if c := a.ClippedStart.Compare(b.ClippedStart); c != 0 {
			return c
		}
		return a.Start.Compare(b.Start)
	})

	if opts.LeadingSeed && len(clipped) > 0 && clipped[0].ClippedStart.After(start) {
		seed := offSegment(start, clipped[0].ClippedStart, "Pre-trip")
		seed.Seed = true
		clipped = append([]domain.ClippedSegment{seed}, clipped...)
	}

	seq := IntervalSequence{Start: start, End: end, Segments: clipped}
	if opts.FillGaps {
		seq = seq.filledWithOff()
	}
	return seq
}

// Totals accumulates rounded minutes per lane across all retained segments.
func (s IntervalSequence) Totals() domain.LaneMinutes {
	var m domain.LaneMinutes
	for _, seg := range s.Segments {
		if seg.Lane.Valid() {
			m[seg.Lane] += seg.Minutes()
		}
	}
	return m
}

// Connectors returns one connector per adjacent pair whose boundary gap is
// within tolerance and whose lanes differ, placed at the later segment's start.
func (s IntervalSequence) Connectors(tolerance time.Duration) []domain.Connector {
	out := []domain.Connector{}
	for i := 0; i+1 < len(s.Segments); i++ {
		a, b := s.Segments[i], s.Segments[i+1]
		gap := b.ClippedStart.Sub(a.ClippedEnd)
		if gap < 0 {
			gap = -gap
		}
		if gap <= tolerance && a.Lane != b.Lane {
			out = append(out, domain.Connector{At: b.ClippedStart, From: a.Lane, To: b.Lane})
		}
	}
	return out
}

// Changes converts the sequence into canonical minute-of-day change-points.
// Uncovered time reads as OFF.
func (s IntervalSequence) Changes() []domain.DutyChange {
	seq := s
	if !seq.filled {
		seq = seq.filledWithOff()
	}

	raw := make([]domain.DutyChange, 0, len(seq.Segments)+2)
	raw = append(raw, domain.DutyChange{Minute: 0, Lane: domain.LaneOff})
	for _, seg := range seq.Segments {
		raw = append(raw, domain.DutyChange{Minute: minuteOfDay(s.Start, seg.ClippedStart), Lane: seg.Lane})
	}
	raw = append(raw, domain.DutyChange{Minute: domain.MinutesPerDay, Lane: domain.LaneOff})

	return canonicalize(raw)
}

func (s IntervalSequence) filledWithOff() IntervalSequence {
	out := make([]domain.ClippedSegment, 0, 2*len(s.Segments)+1)
	cursor := s.Start
	for _, seg := range s.Segments {
		if seg.ClippedStart.After(cursor) {
			out = append(out, offSegment(cursor, seg.ClippedStart, ""))
		}
		out = append(out, seg)
		if seg.ClippedEnd.After(cursor) {
			cursor = seg.ClippedEnd
		}
	}
	if s.End.After(cursor) {
		out = append(out, offSegment(cursor, s.End, ""))
	}

	return IntervalSequence{Start: s.Start, End: s.End, Segments: out, filled: true}
}

// canonicalize sorts raw change entries by (minute, lane), lets the last
// entry sorted onto a minute decide that minute's lane, drops minutes that
// repeat the previous lane and terminates the sequence at midnight.
func canonicalize(raw []domain.DutyChange) []domain.DutyChange {
	sorted := slices.Clone(raw)
	slices.SortFunc(sorted, func(a, b domain.DutyChange) int {
		if a.Minute != b.Minute {
			return cmp.Compare(a.Minute, b.Minute)
		}
		return cmp.Compare(a.Lane, b.Lane)
	})

	out := make([]domain.DutyChange, 0, len(sorted)+1)
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1].Minute == sorted[i].Minute {
			j++
		}
		winner := sorted[j]
		if len(out) == 0 || out[len(out)-1].Lane != winner.Lane {
			out = append(out, winner)
		}
		i = j + 1
	}

	if len(out) == 0 || out[len(out)-1].Minute != domain.MinutesPerDay {
		out = append(out, domain.DutyChange{Minute: domain.MinutesPerDay, Lane: domain.LaneOff})
	}
	return out
}

func offSegment(start, end time.Time, label string) domain.ClippedSegment {
	return domain.ClippedSegment{
		Segment:      domain.Segment{Start: start, End: end, Lane: domain.LaneOff, Label: label},
		ClippedStart: start,
		ClippedEnd:   end,
		Filler:       label == "",
	}
}

func minuteOfDay(anchor, t time.Time) int {
	return min(max(domain.RoundMinutes(t.Sub(anchor)), 0), domain.MinutesPerDay)
}

func clampTime(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
