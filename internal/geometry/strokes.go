package geometry

import "hos-log-service/internal/domain"

type LineKind string

const (
	KindConnector LineKind = "connector"
	KindSegment   LineKind = "segment"
)

// Line is a straight stroke on the HOS grid. Connector lines carry the lane
// they lead into.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Kind   LineKind
	Lane   domain.DutyLane
}

// SegmentStrokes draws a windowed day. Connectors come first so the rounded
// caps of the horizontal strokes cover their joints.
func SegmentStrokes(m Mapper, w domain.DayWindow) []Line {
	out := make([]Line, 0, len(w.Connectors)+len(w.Segments))

	for _, c := range w.Connectors {
		x := round2(m.XForInstant(c.At))
		out = append(out, Line{
			X1: x, Y1: round2(m.YForLane(c.From)),
			X2: x, Y2: round2(m.YForLane(c.To)),
			Kind: KindConnector,
			Lane: c.To,
		})
	}

	for _, s := range w.Segments {
		y := round2(m.YForLane(s.Lane))
		out = append(out, Line{
			X1: round2(m.XForInstant(s.ClippedStart)), Y1: y,
			X2: round2(m.XForInstant(s.ClippedEnd)), Y2: y,
			Kind: KindSegment,
			Lane: s.Lane,
		})
	}
	return out
}
