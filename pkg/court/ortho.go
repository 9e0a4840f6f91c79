package court

import "math"

// Screen-space marker sizes on the tactical board (pixels).
const (
	PlayerRadius = 15.0
	BallRadius   = 12.0
	BoardMargin  = 18.0

	// ContainerPadding is subtracted from the container before fitting the canvas.
	ContainerPadding = 12.0
)

// Ortho maps court meters onto a flat drawing area with a uniform scale.
// The court rectangle is centered inside the area, keeping Margin pixels free
// on the tighter axis.
type Ortho struct {
	// Drawing area size (pixels)
	Width  float64
	Height float64

	// Margin kept around the court (pixels)
	Margin float64

	// Pixels per meter
	Scale float64

	// Screen position of court coordinate (0, 0)
	OriginX float64
	OriginY float64
}

// NewOrtho creates an orthographic mapping for a drawing area. A zero-sized
// area yields an unready mapping; call Resize once the area is measured.
func NewOrtho(width, height, margin float64) *Ortho {
	o := &Ortho{Margin: margin}
	o.Resize(width, height)
	return o
}

// Resize recomputes scale and origin for a new drawing area size.
// Sizes that are not positive are ignored so a resize before the container has
// been measured leaves the previous mapping in place.
func (o *Ortho) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	o.Width = width
	o.Height = height

	scW := (width - o.Margin*2) / Width
	scH := (height - o.Margin*2) / Height
	o.Scale = math.Min(scW, scH)
	o.OriginX = (width - Width*o.Scale) / 2
	o.OriginY = (height - Height*o.Scale) / 2
	return true
}

// Ready reports whether the mapping has been sized.
func (o *Ortho) Ready() bool {
	return o.Width > 0 && o.Height > 0 && o.Scale > 0
}

// X converts a court X coordinate (meters) to a screen X coordinate.
func (o *Ortho) X(m float64) float64 {
	return o.OriginX + m*o.Scale
}

// Y converts a court Y coordinate (meters) to a screen Y coordinate.
func (o *Ortho) Y(m float64) float64 {
	return o.OriginY + m*o.Scale
}

// ToScreen converts court coordinates (meters) to screen coordinates (pixels).
func (o *Ortho) ToScreen(p Point) Point {
	return Point{X: o.X(p.X), Y: o.Y(p.Y)}
}

// ToCourt converts screen coordinates (pixels) back to court coordinates.
func (o *Ortho) ToCourt(p Point) Point {
	if o.Scale == 0 {
		return Point{}
	}
	return Point{X: (p.X - o.OriginX) / o.Scale, Y: (p.Y - o.OriginY) / o.Scale}
}

// FitCanvas returns the largest canvas with the court's aspect ratio that fits
// inside a container of the given size, after removing ContainerPadding.
// It returns zero sizes when the container has not been measured yet.
func FitCanvas(containerW, containerH float64) (int, int) {
	availW := containerW - ContainerPadding
	availH := containerH - ContainerPadding
	if availW <= 0 || availH <= 0 {
		return 0, 0
	}
	aspect := Width / Height
	var w, h float64
	if availW/availH > aspect {
		h = availH
		w = h * aspect
	} else {
		w = availW
		h = w / aspect
	}
	return int(math.Floor(w)), int(math.Floor(h))
}
