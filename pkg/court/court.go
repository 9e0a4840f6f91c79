// Package court holds badminton court measurements and the two mappings used to
// draw a court on screen: an orthographic map for the tactical board and a
// perspective trapezoid for the footwork trainer.
package court

import "math"

// Court dimensions in meters. The court is laid out horizontally: X runs from
// one back line to the other across the net, Y runs from sideline to sideline.
const (
	Width  = 13.4
	Height = 6.1
	NetX   = Width / 2

	ShortServiceLine = 1.98 // distance from net
	LongServiceLine  = 0.76 // distance from back line
	SideMargin       = 0.46 // doubles sideline to singles sideline
)

// Point is a 2D coordinate. Depending on context it is either in court meters
// or in screen pixels.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp interpolates between a and b by t.
func Lerp(a, b Point, t float64) Point {
	return Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}

// HomeSide selects which half of the court belongs to the home team.
type HomeSide int

const (
	SideLeft HomeSide = iota
	SideRight
)

func (s HomeSide) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Opposite returns the other half.
func (s HomeSide) Opposite() HomeSide {
	if s == SideRight {
		return SideLeft
	}
	return SideRight
}

// ParseHomeSide accepts "left" or "right"; anything else is reported as false.
func ParseHomeSide(s string) (HomeSide, bool) {
	switch s {
	case "left", "l":
		return SideLeft, true
	case "right", "r":
		return SideRight, true
	}
	return SideLeft, false
}

// CourtType selects doubles or singles line emphasis.
type CourtType int

const (
	Doubles CourtType = iota
	Singles
)

func (t CourtType) String() string {
	if t == Singles {
		return "singles"
	}
	return "doubles"
}

// ParseCourtType accepts "doubles" or "singles".
func ParseCourtType(s string) (CourtType, bool) {
	switch s {
	case "doubles":
		return Doubles, true
	case "singles":
		return Singles, true
	}
	return Doubles, false
}

// Line is a court marking segment in meters.
type Line struct {
	A, B Point
	Dim  bool // secondary marking (drawn lighter on the trainer)
}

// Lines returns the standard court markings: outer frame, singles sidelines,
// long and short service lines and the two center lines. The net is not
// included.
func Lines() []Line {
	ssl := NetX - ShortServiceLine
	return []Line{
		// outer frame
		{A: Pt(0, 0), B: Pt(0, Height)},
		{A: Pt(Width, 0), B: Pt(Width, Height)},
		{A: Pt(0, 0), B: Pt(Width, 0)},
		{A: Pt(0, Height), B: Pt(Width, Height)},

		// singles sidelines
		{A: Pt(0, SideMargin), B: Pt(Width, SideMargin), Dim: true},
		{A: Pt(0, Height-SideMargin), B: Pt(Width, Height-SideMargin), Dim: true},

		// doubles long service lines
		{A: Pt(LongServiceLine, 0), B: Pt(LongServiceLine, Height), Dim: true},
		{A: Pt(Width-LongServiceLine, 0), B: Pt(Width-LongServiceLine, Height), Dim: true},

		// short service lines
		{A: Pt(ssl, 0), B: Pt(ssl, Height), Dim: true},
		{A: Pt(Width-ssl, 0), B: Pt(Width-ssl, Height), Dim: true},

		// center lines, long service line to short service line on each half
		{A: Pt(LongServiceLine, Height/2), B: Pt(ssl, Height/2), Dim: true},
		{A: Pt(Width-ssl, Height/2), B: Pt(Width-LongServiceLine, Height/2), Dim: true},
	}
}
