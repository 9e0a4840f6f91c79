package court

import "math"

// Perspective taper ratios. The near edge of the court spans NearHalfWidth of
// the canvas width on each side of center, the far edge FarHalfWidth.
const (
	NearHalfWidth = 0.44
	FarHalfWidth  = 0.20
	NearYRatio    = 0.90
	FarYRatio     = 0.09

	netHeightRatio = 0.075
)

// Perspective maps court meters onto a trapezoid that simulates looking down
// the court from behind the trained player's back line.
//
// The trained side is always the near edge: when the trained side is the
// right half, depth is measured from the right back line instead.
type Perspective struct {
	CanvasWidth  float64
	CanvasHeight float64
	HUDHeight    float64
	Side         HomeSide

	// Anchor points (pixels)
	NearLeft  Point
	NearRight Point
	FarLeft   Point
	FarRight  Point
}

// NewPerspective builds the trapezoid for a canvas. hudHeight is reserved at
// the bottom for controls and excluded from the court area.
func NewPerspective(canvasW, canvasH, hudHeight float64, side HomeSide) *Perspective {
	p := &Perspective{HUDHeight: hudHeight, Side: side}
	p.Resize(canvasW, canvasH)
	return p
}

// Resize recomputes the anchors for a new canvas size. Non-positive sizes are
// ignored.
func (p *Perspective) Resize(canvasW, canvasH float64) bool {
	if canvasW <= 0 || canvasH <= 0 {
		return false
	}
	p.CanvasWidth = canvasW
	p.CanvasHeight = canvasH
	p.rebuild()
	return true
}

// SetSide changes the trained side and recomputes the anchors.
func (p *Perspective) SetSide(side HomeSide) {
	p.Side = side
	p.rebuild()
}

// SetHUDHeight changes the reserved HUD height and recomputes the anchors.
func (p *Perspective) SetHUDHeight(h float64) {
	p.HUDHeight = h
	p.rebuild()
}

func (p *Perspective) rebuild() {
	drawH := p.DrawHeight()
	cx := p.CanvasWidth / 2
	nw := p.CanvasWidth * NearHalfWidth
	fw := p.CanvasWidth * FarHalfWidth
	nearY := drawH * NearYRatio
	farY := drawH * FarYRatio

	p.NearLeft = Point{X: cx - nw, Y: nearY}
	p.NearRight = Point{X: cx + nw, Y: nearY}
	p.FarLeft = Point{X: cx - fw, Y: farY}
	p.FarRight = Point{X: cx + fw, Y: farY}
}

// DrawHeight is the canvas height available to the court.
func (p *Perspective) DrawHeight() float64 {
	h := p.CanvasHeight - p.HUDHeight
	if h < 0 {
		return 0
	}
	return h
}

// Depth returns the depth fraction u in [0, 1] for a court X coordinate:
// 0 at the trained side's back line, 1 at the far back line.
func (p *Perspective) Depth(mx float64) float64 {
	if p.Side == SideRight {
		return (Width - mx) / Width
	}
	return mx / Width
}

// Map converts court coordinates (meters) to screen coordinates (pixels).
func (p *Perspective) Map(mx, my float64) Point {
	u := p.Depth(mx)
	v := my / Height
	left := Lerp(p.NearLeft, p.FarLeft, u)
	right := Lerp(p.NearRight, p.FarRight, u)
	return Lerp(left, right, v)
}

// MapPoint is Map for a Point.
func (p *Perspective) MapPoint(m Point) Point {
	return p.Map(m.X, m.Y)
}

// BaseRadius is the marker radius at the near edge before depth scaling is
// applied.
func (p *Perspective) BaseRadius() float64 {
	return math.Max(9, math.Min(p.CanvasWidth, p.DrawHeight())*0.019)
}

// Radius returns a marker radius that shrinks with depth, giving a near/far
// size cue.
func (p *Perspective) Radius(mx float64) float64 {
	return p.BaseRadius() * (1.6 - p.Depth(mx))
}

// NetHeight returns the on-screen height of the net tape above the court.
func (p *Perspective) NetHeight() float64 {
	drawH := p.DrawHeight()
	return (drawH*NearYRatio - drawH*FarYRatio) * netHeightRatio
}

// LineWidth returns the court line width for the canvas size.
func (p *Perspective) LineWidth() float64 {
	return math.Max(1.5, p.CanvasWidth*0.0015)
}
