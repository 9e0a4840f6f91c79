package render

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/court"
)

// Board marker styling (pixels).
const (
	activeRingGap   = 5.0
	serveMarkRadius = 20.0
	serveMarkDepth  = 1.5 // meters from the back line
	netPostRadius   = 5.0
	underlayExtra   = 3.0
)

var activeRingDash = []float64{4, 3}

// Board draws the tactical board canvas: court, strokes, then markers. Nothing
// is drawn until the editor's mapping has been sized.
func Board(gtx layout.Context, e *board.Editor) {
	o := e.Ortho()
	if !o.Ready() {
		return
	}
	fillRect(gtx, court.Pt(0, 0), court.Pt(o.Width, o.Height), boardBackground)
	renderFlatCourt(gtx, e)
	renderStrokes(gtx, e)
	renderMarkers(gtx, e)
}

// renderFlatCourt draws the orthographic court with home/away tinting.
func renderFlatCourt(gtx layout.Context, e *board.Editor) {
	o := e.Ortho()
	left, right := homeTint, awayTint
	if e.HomeSide() == court.SideRight {
		left, right = awayTint, homeTint
	}
	fillRect(gtx, o.ToScreen(court.Pt(0, 0)), o.ToScreen(court.Pt(court.NetX, court.Height)), left)
	fillRect(gtx, o.ToScreen(court.Pt(court.NetX, 0)), o.ToScreen(court.Pt(court.Width, court.Height)), right)

	if e.CourtType() == court.Singles {
		fillRect(gtx, o.ToScreen(court.Pt(0, 0)), o.ToScreen(court.Pt(court.Width, court.SideMargin)), singlesShade)
		fillRect(gtx, o.ToScreen(court.Pt(0, court.Height-court.SideMargin)), o.ToScreen(court.Pt(court.Width, court.Height)), singlesShade)
	}

	for _, l := range court.Lines() {
		line(gtx, o.ToScreen(l.A), o.ToScreen(l.B), 2, boardLineColor)
	}

	netTop := o.ToScreen(court.Pt(court.NetX, 0))
	netBottom := o.ToScreen(court.Pt(court.NetX, court.Height))
	line(gtx, netTop, netBottom, 3, boardNetColor)
	fillCircle(gtx, netTop, netPostRadius, boardPostColor)
	fillCircle(gtx, netBottom, netPostRadius, boardPostColor)

	var x float64
	switch e.Serve() {
	case board.ServeLeft:
		x = serveMarkDepth
	case board.ServeRight:
		x = court.Width - serveMarkDepth
	default:
		return
	}
	fillCircle(gtx, o.ToScreen(court.Pt(x, court.Height/2)), serveMarkRadius, serveColor)
}

// renderStrokes draws every committed stroke, then the stroke being drawn.
// Hidden players and shuttles keep their strokes but do not show them;
// annotation pens always show.
func renderStrokes(gtx layout.Context, e *board.Editor) {
	o := e.Ortho()
	e.Scene().Each(func(_ board.Ref, ent *board.Entity) {
		if ent.Kind.Positioned() && !ent.Visible {
			return
		}
		for _, s := range ent.Strokes {
			renderStroke(gtx, o, s, ent)
		}
	})

	if pts := e.InProgress(); len(pts) >= 2 {
		if ent := e.ActiveEntity(); ent != nil {
			renderStroke(gtx, o, board.Stroke{Points: pts, Width: e.LineWidth(), Dash: e.Dash()}, ent)
		}
	}
}

// renderStroke paints a stroke twice: a wider dark underlay, then the color.
func renderStroke(gtx layout.Context, o *court.Ortho, s board.Stroke, ent *board.Entity) {
	if len(s.Points) < 2 {
		return
	}
	pts := make([]court.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = o.ToScreen(p)
	}
	pattern := s.Dash.Pattern(s.Width)
	dashedPolyline(gtx, pts, s.Width+underlayExtra, pattern, 0, underlayColor)
	dashedPolyline(gtx, pts, s.Width, pattern, 0, ent.Color)
}

func renderMarkers(gtx layout.Context, e *board.Editor) {
	o := e.Ortho()
	active := e.Active()
	e.Scene().Each(func(r board.Ref, ent *board.Entity) {
		if !ent.Placed() {
			return
		}
		at := o.ToScreen(*ent.Pos)
		isActive := r == active
		if isActive {
			rad := ent.Radius() * (1.3 + 0.4*e.Pulse())
			glow(gtx, at, rad, withAlpha(ent.Color, 0.8))
		}
		switch ent.Kind {
		case board.KindPlayer:
			renderPlayerMarker(gtx, at, ent, isActive)
		case board.KindBall:
			renderShuttleMarker(gtx, at, ent.Radius(), isActive)
		}
	})
}

func renderPlayerMarker(gtx layout.Context, at court.Point, ent *board.Entity, isActive bool) {
	r := ent.Radius()
	fillCircle(gtx, at.Add(court.Pt(2, 2)), r+1, shadowColor)
	fillCircle(gtx, at, r, ent.Color)
	if isActive {
		strokeCircle(gtx, at, r, 2.5, white)
	} else {
		strokeCircle(gtx, at, r, 1.5, markerRing)
	}
	centeredText(gtx, at, math.Round(r*0.95), true, white, ent.Name)
	if isActive {
		dashedCircle(gtx, at, r+activeRingGap, 1.5, activeRingDash, activeRingColor)
	}
}

// renderShuttleMarker draws a dark disc with a fanned feather skirt and a
// cork at the bottom.
func renderShuttleMarker(gtx layout.Context, at court.Point, r float64, isActive bool) {
	fillCircle(gtx, at.Add(court.Pt(2, 2)), r+1, shadowColor)
	fillCircle(gtx, at, r, shuttleBody)
	if isActive {
		strokeCircle(gtx, at, r, 2.5, white)
	} else {
		strokeCircle(gtx, at, r, 1.5, withAlpha(white, 0.35))
	}

	featherR := r * 0.75
	quill := at.Add(court.Pt(0, r*0.1))
	const feathers = 9
	for i := 0; i < feathers; i++ {
		t := float64(i) / (feathers - 1)
		ang := -math.Pi*0.72 + t*math.Pi*1.44
		tip := court.Pt(at.X+math.Cos(ang)*featherR, at.Y-featherR*0.55+math.Sin(ang)*featherR*0.35)
		line(gtx, quill, tip, 0.9, featherColor)
	}
	skirtCenter := at.Add(court.Pt(0, -featherR*0.3))
	strokeEllipse(gtx, skirtCenter, featherR*0.82, featherR*0.28, 0.85, withAlpha(white, 0.5))

	cork := at.Add(court.Pt(0, r*0.28))
	fillCircle(gtx, cork, r*0.32, corkColor)
	strokeCircle(gtx, cork, r*0.32, 0.8, corkRim)

	if isActive {
		dashedCircle(gtx, at, r+activeRingGap, 1.5, activeRingDash, activeRingColor)
	}
}

func strokeEllipse(gtx layout.Context, center court.Point, rx, ry, width float64, c color.NRGBA) {
	stack := op.Affine(f32.Affine2D{}.Offset(pt(center))).Push(gtx.Ops)
	defer stack.Pop()

	x, y := int(math.Round(rx)), int(math.Round(ry))
	e := clip.Ellipse(image.Rect(-x, -y, x, y))
	paint.FillShape(gtx.Ops, c, clip.Stroke{Path: e.Path(gtx.Ops), Width: float32(width)}.Op())
}

// Ghost draws the palette drag indicator at its pointer position. Callers
// draw it in the same coordinate space the palette events were reported in.
func Ghost(gtx layout.Context, g board.Ghost) {
	if !g.Visible {
		return
	}
	r := court.PlayerRadius
	fillCircle(gtx, g.At, r, withAlpha(g.Color, 0.75))
	strokeCircle(gtx, g.At, r, 2, white)
	if g.Ref.Kind == board.KindPlayer {
		centeredText(gtx, g.At, math.Round(r*0.95), true, white, g.Label)
	}
}
