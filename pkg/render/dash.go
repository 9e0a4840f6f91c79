package render

import (
	"math"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
)

// dashSegments splits the polyline pts into the "on" runs of a dash pattern.
// The pattern alternates on and off lengths; offset shifts it along the path
// the same way a canvas line-dash offset does, so a negative offset moves the
// dashes forward.
func dashSegments(pts []court.Point, pattern []float64, offset float64) [][]court.Point {
	if len(pts) < 2 {
		return nil
	}
	if len(pattern)%2 == 1 {
		pattern = append(append([]float64(nil), pattern...), pattern...)
	}
	total := 0.0
	for _, v := range pattern {
		total += v
	}
	if total <= 0 {
		return [][]court.Point{pts}
	}

	// locate the pattern phase at the start of the path
	phase := math.Mod(offset, total)
	if phase < 0 {
		phase += total
	}
	idx := 0
	for phase >= pattern[idx] {
		phase -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	remaining := pattern[idx] - phase
	on := idx%2 == 0

	var out [][]court.Point
	var cur []court.Point
	if on {
		cur = []court.Point{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := a.Dist(b)
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			p := court.Lerp(a, b, pos/segLen)
			if on {
				cur = append(cur, p)
				out = append(out, cur)
				cur = nil
			} else {
				cur = []court.Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) >= 2 {
		out = append(out, cur)
	}
	return out
}
