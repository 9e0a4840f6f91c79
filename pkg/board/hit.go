package board

import "github.com/OpenTraceLab/CourtCoach/pkg/court"

// Pixel tolerances for pointer hits.
const (
	HitTolerance   = 5.0
	EraseTolerance = 14.0
)

// hitMarker returns the placed marker under screen point p. Players are tested
// before balls and later entities before earlier ones, so the marker drawn on
// top wins.
func hitMarker(s *Scene, o *court.Ortho, p court.Point) (Ref, bool) {
	for _, k := range []Kind{KindPlayer, KindBall} {
		g := s.group(k)
		for i := len(g) - 1; i >= 0; i-- {
			e := &g[i]
			if !e.Placed() {
				continue
			}
			if p.Dist(o.ToScreen(*e.Pos)) <= e.Radius()+HitTolerance {
				return Ref{Kind: k, Index: i}, true
			}
		}
	}
	return Ref{}, false
}

// strokeNear finds the first stroke with a point strictly closer than
// EraseTolerance to screen point p. Groups are searched players, balls, then
// annotations; within an entity the newest stroke is tried first.
func strokeNear(s *Scene, o *court.Ortho, p court.Point) (Ref, int, bool) {
	for _, k := range []Kind{KindPlayer, KindBall, KindAnnot} {
		g := s.group(k)
		for i := range g {
			strokes := g[i].Strokes
			for si := len(strokes) - 1; si >= 0; si-- {
				for _, pt := range strokes[si].Points {
					if p.Dist(o.ToScreen(pt)) < EraseTolerance {
						return Ref{Kind: k, Index: i}, si, true
					}
				}
			}
		}
	}
	return Ref{}, 0, false
}
