package render

import (
	"image/color"
	"math"

	"gioui.org/layout"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

// Trajectory dash pattern (pixels) and how far it travels per pulse cycle.
var trajectoryDash = []float64{8, 6}

const trajectoryTravel = 28.0

// Trainer draws the footwork trainer canvas for a sequencer snapshot. The
// perspective must already be sized and set to the snapshot's side.
func Trainer(gtx layout.Context, s trainer.Snapshot, p *court.Perspective) {
	fillRect(gtx, court.Pt(0, 0), court.Pt(p.CanvasWidth, p.CanvasHeight), trainerBackground)
	if p.DrawHeight() <= 0 {
		return
	}

	renderPerspectiveCourt(gtx, p)
	renderOpponents(gtx, s, p)
	renderMyPositions(gtx, s, p)
	renderTrajectory(gtx, s, p)
}

// renderPerspectiveCourt draws the two-tone surface, markings and net.
func renderPerspectiveCourt(gtx layout.Context, p *court.Perspective) {
	netL := p.Map(court.NetX, 0)
	netR := p.Map(court.NetX, court.Height)

	// near half is the trained side
	fillPolygon(gtx, []court.Point{p.NearLeft, p.NearRight, netR, netL}, nearHalfColor)
	fillPolygon(gtx, []court.Point{netL, netR, p.FarRight, p.FarLeft}, farHalfColor)

	lw := p.LineWidth()
	for _, l := range court.Lines() {
		c := courtLineColor
		if l.Dim {
			c = courtDimColor
		}
		line(gtx, p.MapPoint(l.A), p.MapPoint(l.B), lw, c)
	}

	h := p.NetHeight()
	up := court.Pt(0, -h)
	line(gtx, netL.Add(up), netR.Add(up), math.Max(2, p.CanvasWidth*0.0020), netTapeColor)
	postW := math.Max(2, p.CanvasWidth*0.0018)
	line(gtx, netL, netL.Add(up), postW, netPostColor)
	line(gtx, netR, netR.Add(up), postW, netPostColor)
}

func renderOpponents(gtx layout.Context, s trainer.Snapshot, p *court.Perspective) {
	for i, o := range s.Opponents {
		at := p.Map(o.X, o.Y)
		r := p.Radius(o.X)

		if i == s.Opponent && s.Running {
			glow(gtx, at, r*(1.5+s.Pulse*0.8), oppGlowInner)
			fillCircle(gtx, at, r, oppActiveColor)
			strokeCircle(gtx, at, r, 2, white)
			centeredText(gtx, at, r*0.9, true, white, "×")
			continue
		}
		fillCircle(gtx, at, r*0.65, oppIdleFill)
		strokeCircle(gtx, at, r*0.65, 1.5, oppIdleStroke)
	}
}

func renderMyPositions(gtx layout.Context, s trainer.Snapshot, p *court.Perspective) {
	for i, pos := range s.Positions {
		at := p.Map(pos.X, pos.Y)
		r := p.Radius(pos.X)

		switch {
		case !s.Zones.Enabled(pos.Zone):
			fillCircle(gtx, at, r*0.45, disabledFill)
			strokeCircle(gtx, at, r*0.45, 1.5, disabledStroke)

		case i == s.Current:
			glow(gtx, at, r*(1.5+s.Pulse*0.8), myGlowInner)
			fillCircle(gtx, at, r, myActiveColor)
			strokeCircle(gtx, at, r, 2, white)
			renderActiveCard(gtx, s, i, at, r)

		default:
			fillCircle(gtx, at, r*0.65, myIdleFill)
			strokeCircle(gtx, at, r*0.65, 1.5, myIdleStroke)
			arrow, size := "↑↓", r*0.62
			if trainer.IsBack(i) {
				arrow, size = "↑", r*0.92
			}
			centeredText(gtx, at, size*0.8, false, myIdleText, arrow)
		}
	}
}

// renderActiveCard draws the direction arrow on the lit dot and the card
// above it: the hand for front and mid positions, the shot for the back.
func renderActiveCard(gtx layout.Context, s trainer.Snapshot, i int, at court.Point, r float64) {
	arrow := "↑"
	if !trainer.IsBack(i) && s.Hand == trainer.Underhand {
		arrow = "↓"
	}
	centeredText(gtx, at, r*0.92, true, white, arrow)

	size := math.Max(12, math.Round(r*0.55))
	above := court.Pt(at.X, at.Y-r-4)
	if !trainer.IsBack(i) {
		bg := overheadCard
		if s.Hand == trainer.Underhand {
			bg = underhandCard
		}
		card(gtx, above, size, bg, s.Hand.String()+" "+arrow)
		return
	}
	if s.Shot != trainer.ShotNone {
		card(gtx, above, size, shotCardColor(s.Shot), s.Shot.String())
	}
}

func shotCardColor(shot trainer.Shot) color.NRGBA {
	switch shot {
	case trainer.ShotLong:
		return longShotCard
	case trainer.ShotDrop:
		return dropShotCard
	case trainer.ShotSmash:
		return smashShotCard
	}
	return defaultShotCard
}

// renderTrajectory draws the flashing dashed line from the lit position to
// the opponent target.
func renderTrajectory(gtx layout.Context, s trainer.Snapshot, p *court.Perspective) {
	if !s.Running || s.Current < 0 || s.Opponent < 0 {
		return
	}
	if s.Current >= len(s.Positions) || s.Opponent >= len(s.Opponents) {
		return
	}
	from := p.MapPoint(s.Positions[s.Current].Point())
	to := p.MapPoint(s.Opponents[s.Opponent].Point())
	c := withAlpha(trajectoryColor, 0.4+s.Pulse*0.45)
	dashedPolyline(gtx, []court.Point{from, to}, 2, trajectoryDash, -s.Pulse*trajectoryTravel, c)
}
