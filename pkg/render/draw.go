// Package render draws the footwork trainer and the tactical board with Gio
// operations. Both canvases are redrawn from scratch every frame from the
// state held by the trainer and board packages.
package render

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
)

// Global theme for text rendering
var defaultTheme = material.NewTheme()

func init() {
	defaultTheme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
}

func pt(p court.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

// fillRect fills an axis-aligned rectangle given by two corners.
func fillRect(gtx layout.Context, a, b court.Point, c color.NRGBA) {
	r := image.Rect(int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)))
	paint.FillShape(gtx.Ops, c, clip.Rect(r).Op())
}

// circleShape returns a circle of the given radius around the origin.
func circleShape(radius float64) clip.Ellipse {
	r := int(math.Round(radius))
	return clip.Ellipse(image.Rect(-r, -r, r, r))
}

// fillCircle renders a filled circle
func fillCircle(gtx layout.Context, center court.Point, radius float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	stack := op.Affine(f32.Affine2D{}.Offset(pt(center))).Push(gtx.Ops)
	defer stack.Pop()

	paint.FillShape(gtx.Ops, c, circleShape(radius).Op(gtx.Ops))
}

// strokeCircle renders a circle outline
func strokeCircle(gtx layout.Context, center court.Point, radius, width float64, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	stack := op.Affine(f32.Affine2D{}.Offset(pt(center))).Push(gtx.Ops)
	defer stack.Pop()

	stroke := clip.Stroke{Path: circleShape(radius).Path(gtx.Ops), Width: float32(width)}.Op()
	paint.FillShape(gtx.Ops, c, stroke)
}

// dashedCircle renders a dashed circle outline by splitting its perimeter.
func dashedCircle(gtx layout.Context, center court.Point, radius, width float64, pattern []float64, c color.NRGBA) {
	const segments = 48
	ring := make([]court.Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		ring = append(ring, center.Add(court.Pt(radius*math.Cos(a), radius*math.Sin(a))))
	}
	for _, seg := range dashSegments(ring, pattern, 0) {
		polyline(gtx, seg, width, c)
	}
}

// line renders a line with given width
func line(gtx layout.Context, a, b court.Point, width float64, c color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(a))
	path.LineTo(pt(b))

	stroke := clip.Stroke{
		Path:  path.End(),
		Width: float32(width),
	}.Op()

	paint.FillShape(gtx.Ops, c, stroke)
}

// polyline renders an open path through pts.
func polyline(gtx layout.Context, pts []court.Point, width float64, c color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(pts[0]))
	for _, p := range pts[1:] {
		path.LineTo(pt(p))
	}
	stroke := clip.Stroke{Path: path.End(), Width: float32(width)}.Op()
	paint.FillShape(gtx.Ops, c, stroke)
}

// dashedPolyline renders pts with a dash pattern. An empty pattern draws a
// solid line.
func dashedPolyline(gtx layout.Context, pts []court.Point, width float64, pattern []float64, offset float64, c color.NRGBA) {
	if len(pattern) == 0 {
		polyline(gtx, pts, width, c)
		return
	}
	for _, seg := range dashSegments(pts, pattern, offset) {
		polyline(gtx, seg, width, c)
	}
}

// fillPolygon fills the closed shape through pts.
func fillPolygon(gtx layout.Context, pts []court.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(pt(pts[0]))
	for _, p := range pts[1:] {
		path.LineTo(pt(p))
	}
	path.Close()
	paint.FillShape(gtx.Ops, c, clip.Outline{Path: path.End()}.Op())
}

// glow approximates a radial falloff with concentric discs, strongest at the
// center and fading to nothing at radius.
func glow(gtx layout.Context, center court.Point, radius float64, inner color.NRGBA) {
	const rings = 6
	for i := 0; i < rings; i++ {
		c := inner
		c.A = uint8(float64(inner.A) * float64(i+1) / rings * 0.35)
		fillCircle(gtx, center, radius*(1-float64(i)/rings), c)
	}
}

// textLabel lays out a single line of text without painting it.
func textLabel(gtx layout.Context, size float64, bold bool, c color.NRGBA, s string) (op.CallOp, image.Point) {
	lbl := material.Label(defaultTheme, unit.Sp(float32(size)), s)
	lbl.Color = c
	lbl.MaxLines = 1
	lbl.Alignment = text.Start
	if bold {
		lbl.Font.Weight = font.Bold
	}

	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max = image.Pt(1<<14, 1<<14)
	macro := op.Record(gtx.Ops)
	dims := lbl.Layout(gtx)
	return macro.Stop(), dims.Size
}

// centeredText draws s centered on at.
func centeredText(gtx layout.Context, at court.Point, size float64, bold bool, c color.NRGBA, s string) {
	if s == "" {
		return
	}
	call, sz := textLabel(gtx, size, bold, c, s)
	off := image.Pt(int(math.Round(at.X))-sz.X/2, int(math.Round(at.Y))-sz.Y/2)
	stack := op.Offset(off).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}

// card draws a rounded label card centered horizontally on at, with its
// bottom edge at at.Y.
func card(gtx layout.Context, at court.Point, size float64, bg color.NRGBA, s string) {
	call, sz := textLabel(gtx, size, true, white, s)
	padX := int(size * 0.4)
	padY := int(size * 0.3)
	w := sz.X + 2*padX
	h := sz.Y + 2*padY
	x := int(math.Round(at.X)) - w/2
	y := int(math.Round(at.Y)) - h

	rect := image.Rect(x, y, x+w, y+h)
	paint.FillShape(gtx.Ops, bg, clip.UniformRRect(rect, 5).Op(gtx.Ops))

	stack := op.Offset(image.Pt(x+padX, y+padY)).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
}
