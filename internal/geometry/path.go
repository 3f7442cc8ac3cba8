package geometry

import (
	"hos-log-service/internal/domain"
	"math"
	"strconv"
	"strings"
)

// StepPath assembles the stepped single-day waveform: start at the first
// change, then for each later change run horizontally at the old lane's
// height and drop vertically onto the new lane.
func StepPath(m Mapper, changes []domain.DutyChange) string {
	if len(changes) == 0 {
		return ""
	}

	var b strings.Builder
	x, y := m.XForMinute(float64(changes[0].Minute)), m.YForLane(changes[0].Lane)
	b.WriteString("M ")
	writePoint(&b, x, y)

	for _, c := range changes[1:] {
		x = m.XForMinute(float64(c.Minute))
		b.WriteString(" L ")
		writePoint(&b, x, y)
		y = m.YForLane(c.Lane)
		b.WriteString(" L ")
		writePoint(&b, x, y)
	}
	return b.String()
}

func writePoint(b *strings.Builder, x, y float64) {
	b.WriteString(num(x))
	b.WriteByte(' ')
	b.WriteString(num(y))
}

// num renders a coordinate with at most two decimals so that equal geometry
// always serializes to equal bytes.
func num(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
