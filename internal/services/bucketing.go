package services

import (
	"fmt"
	"hos-log-service/internal/domain"
	"slices"
	"sort"
	"time"
)

// BuildSegments lays a trip out on the wall clock. Starting from departAt the
// vehicle drives until each stop's ETA, then spends the stop in its mapped
// lane. Stops overlapping the previous one start when it ends.
func BuildSegments(departAt time.Time, stops []domain.Stop) ([]domain.Segment, error) {
	ordered := slices.Clone(stops)
	slices.SortStableFunc(ordered, func(a, b domain.Stop) int {
		return a.ETA.Compare(b.ETA)
	})

	cursor := departAt.UTC()
	if cursor.IsZero() && len(ordered) > 0 {
		cursor = ordered[0].ETA
	}

	out := make([]domain.Segment, 0, 2*len(ordered))
	for _, s := range ordered {
		lane, err := s.Type.Lane()
		if err != nil {
			return nil, fmt.Errorf("build segments: stop %q: %w", s.ID, err)
		}

		if s.ETA.After(cursor) {
			out = append(out, domain.Segment{Start: cursor, End: s.ETA, Lane: domain.LaneDriving})
			cursor = s.ETA
		}

		end := s.End()
		if end.After(cursor) {
			out = append(out, domain.Segment{Start: cursor, End: end, Lane: lane, Label: s.Type.Label()})
			cursor = end
		}
	}
	return out, nil
}

// BucketByDay splits segments at UTC midnight. Buckets are returned in date
// order and their segments in start order.
func BucketByDay(segments []domain.Segment) []domain.DayBucket {
	byDay := make(map[string][]domain.Segment)

	for _, seg := range segments {
		cur, end := seg.Start.UTC(), seg.End.UTC()
		for cur.Before(end) {
			dayStart := domain.StartOfDay(cur)
			chunkEnd := dayStart.Add(domain.Day)
			if end.Before(chunkEnd) {
				chunkEnd = end
			}

			key := dayStart.Format(domain.DateLayout)
			byDay[key] = append(byDay[key], domain.Segment{
				Start: cur,
				End:   chunkEnd,
				Lane:  seg.Lane,
				Label: seg.Label,
			})
			cur = chunkEnd
		}
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]domain.DayBucket, 0, len(dates))
	for _, d := range dates {
		segs := byDay[d]
		slices.SortStableFunc(segs, func(a, b domain.Segment) int {
			return a.Start.Compare(b.Start)
		})
		out = append(out, domain.DayBucket{Date: d, Segments: segs})
	}
	return out
}
