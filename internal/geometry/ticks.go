package geometry

import "strconv"

type Tick struct {
	Hour  int
	X     float64
	Label string
}

// HourTicks returns the 25 hour marks of the header band, midnight to midnight.
func HourTicks(m Mapper) []Tick {
	out := make([]Tick, 0, 25)
	for h := 0; h <= 24; h++ {
		out = append(out, Tick{Hour: h, X: round2(m.XForMinute(float64(h * 60))), Label: hourLabel(h)})
	}
	return out
}

func hourLabel(h int) string {
	switch h {
	case 0, 24:
		return "Mid."
	case 12:
		return "Noon"
	}
	return strconv.Itoa(h % 12)
}
