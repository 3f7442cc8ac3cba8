package services

import (
	"fmt"
	"hos-log-service/internal/domain"
	"slices"
	"time"
)

// DeriveDayTimeline converts a stop list into the canonical change-point
// sequence of one calendar day.
//
// The day is anchored at UTC midnight of the earliest ETA (of now when there
// are no stops). Each stop switches to its mapped lane at its start minute and
// back to DRIVING when it ends before midnight; the day opens and closes OFF.
// Stop boundaries landing on the same minute are resolved last-writer-wins
// after sorting by (minute, lane), so the output does not depend on the order
// of stops sharing an ETA. Stops reaching past midnight are truncated.
func DeriveDayTimeline(stops []domain.Stop, now time.Time) (domain.DayTimeline, error) {
	ordered := slices.Clone(stops)
	slices.SortStableFunc(ordered, func(a, b domain.Stop) int {
		return a.ETA.Compare(b.ETA)
	})

	anchor := domain.StartOfDay(now)
	if len(ordered) > 0 {
		anchor = domain.StartOfDay(ordered[0].ETA)
	}

	raw := make([]domain.DutyChange, 0, 2*len(ordered)+2)
	raw = append(raw, domain.DutyChange{Minute: 0, Lane: domain.LaneOff})

	for _, s := range ordered {
		lane, err := s.Type.Lane()
		if err != nil {
			return domain.DayTimeline{}, fmt.Errorf("derive day timeline: stop %q: %w", s.ID, err)
		}

		start := minuteOfDay(anchor, s.ETA)
		end := minuteOfDay(anchor, s.End())

		raw = append(raw, domain.DutyChange{Minute: start, Lane: lane})
		// Resume driving until the next event.
		if end > start && end < domain.MinutesPerDay {
			raw = append(raw, domain.DutyChange{Minute: end, Lane: domain.LaneDriving})
		}
	}
	raw = append(raw, domain.DutyChange{Minute: domain.MinutesPerDay, Lane: domain.LaneOff})

	changes := canonicalize(raw)

	return domain.DayTimeline{
		Anchor:  anchor,
		Changes: changes,
		Minutes: changesSequence(anchor, changes).Totals(),
	}, nil
}

// changesSequence expands change-points into the interval sequence they
// describe: each lane holds from its change until the next one.
func changesSequence(anchor time.Time, changes []domain.DutyChange) IntervalSequence {
	segs := make([]domain.Segment, 0, len(changes))
	for i := 0; i+1 < len(changes); i++ {
		cur, next := changes[i], changes[i+1]
		segs = append(segs, domain.Segment{
			Start: anchor.Add(time.Duration(cur.Minute) * time.Minute),
			End:   anchor.Add(time.Duration(next.Minute) * time.Minute),
			Lane:  cur.Lane,
		})
	}
	return NewIntervalSequence(anchor, segs, SequenceOptions{FillGaps: true})
}
