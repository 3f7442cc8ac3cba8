package services

import (
	"fmt"
	"hos-log-service/internal/domain"
	"time"
)

// DefaultConnectorTolerance absorbs sub-minute drift between upstream ISO
// timestamps; boundaries further apart are drawn with a visible gap.
const DefaultConnectorTolerance = 60 * time.Second

type WindowOptions struct {
	// IncludeLeadingOffSeed is set for the first day bucket of a trip only.
	IncludeLeadingOffSeed bool
	FillGaps              bool
	// Tolerance defaults to DefaultConnectorTolerance when zero.
	Tolerance time.Duration
}

// WindowDay clips a bucket's segments to its UTC calendar day and computes
// lane totals and same-instant connectors.
func WindowDay(bucket domain.DayBucket, opts WindowOptions) (domain.DayWindow, error) {
	dayStart, err := domain.ParseDay(bucket.Date)
	if err != nil {
		return domain.DayWindow{}, fmt.Errorf("window day: %w", err)
	}

	for i, seg := range bucket.Segments {
		if !seg.Lane.Valid() {
			return domain.DayWindow{}, fmt.Errorf("window day %s: segment #%d lane %d: %w", bucket.Date, i+1, int(seg.Lane), domain.ErrUnknownLane)
		}
	}

	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultConnectorTolerance
	}

	seq := NewIntervalSequence(dayStart, bucket.Segments, SequenceOptions{
		LeadingSeed: opts.IncludeLeadingOffSeed,
		FillGaps:    opts.FillGaps,
	})

	return domain.DayWindow{
		Date:       bucket.Date,
		Start:      seq.Start,
		End:        seq.End,
		Segments:   seq.Segments,
		Minutes:    seq.Totals(),
		Connectors: seq.Connectors(tolerance),
	}, nil
}

// WindowChanges returns the canonical change-points of a windowed day so it
// can be drawn on the stepped daily grid. Gaps read as OFF.
func WindowChanges(w domain.DayWindow) []domain.DutyChange {
	segs := make([]domain.Segment, 0, len(w.Segments))
	for _, s := range w.Segments {
		segs = append(segs, domain.Segment{Start: s.ClippedStart, End: s.ClippedEnd, Lane: s.Lane, Label: s.Label})
	}
	return NewIntervalSequence(w.Start, segs, SequenceOptions{}).Changes()
}
