package board

import (
	"image/color"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
)

// DragThreshold is how far, in pixels, a palette press must travel before it
// becomes a drag.
const DragThreshold = 8.0

// PaletteState is the palette drag state machine.
type PaletteState int

const (
	PaletteIdle PaletteState = iota
	PaletteMaybeDrag
	PaletteDragging
)

func (s PaletteState) String() string {
	switch s {
	case PaletteMaybeDrag:
		return "maybe-drag"
	case PaletteDragging:
		return "dragging"
	}
	return "idle"
}

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	Min, Max court.Point
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p court.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Ghost is the floating indicator that follows a palette drag.
type Ghost struct {
	Visible bool
	At      court.Point // window pixels
	Ref     Ref
	Label   string
	Color   color.NRGBA
}

type palette struct {
	state  PaletteState
	target Ref
	start  court.Point
	ghost  Ghost
}

// PaletteState returns the drag state.
func (e *Editor) PaletteState() PaletteState { return e.palette.state }

// Ghost returns the drag indicator.
func (e *Editor) Ghost() Ghost { return e.palette.ghost }

// PalettePress starts a press on a palette icon at window point p. Pressing an
// annotation pen selects it immediately since pens cannot be dropped.
func (e *Editor) PalettePress(r Ref, p court.Point) {
	ent := e.scene.Entity(r)
	if ent == nil {
		return
	}
	if !ent.Kind.Positioned() {
		e.Select(r)
		return
	}
	e.palette = palette{state: PaletteMaybeDrag, target: r, start: p}
}

// PaletteMove tracks the pointer during a palette press.
func (e *Editor) PaletteMove(p court.Point) {
	pl := &e.palette
	switch pl.state {
	case PaletteIdle:
		return
	case PaletteMaybeDrag:
		if p.Dist(pl.start) < DragThreshold {
			return
		}
		ent := e.scene.Entity(pl.target)
		pl.state = PaletteDragging
		pl.ghost = Ghost{Visible: true, Ref: pl.target, Label: ent.Name, Color: ent.Color}
		if ent.Kind == KindBall {
			pl.ghost.Color = BallPaletteColor
		}
	}
	pl.ghost.At = p
	e.invalidate()
}

// PaletteRelease ends a palette press at window point p. A drag released inside
// canvas places the entity there and selects it; a press that never became a
// drag selects the entity.
func (e *Editor) PaletteRelease(p court.Point, canvas Rect) {
	pl := e.palette
	e.palette = palette{}

	switch pl.state {
	case PaletteIdle:
		return
	case PaletteMaybeDrag:
		e.Select(pl.target)
		return
	}

	if !canvas.Contains(p) || !e.ortho.Ready() {
		e.invalidate()
		return
	}
	ent := e.scene.Entity(pl.target)
	e.push(Action{Kind: ActPlace, Target: pl.target, From: clonePoint(ent.Pos)})
	pos := e.ortho.ToCourt(p.Sub(canvas.Min))
	ent.Pos = &pos
	e.active = pl.target
	e.pending = false
	e.invalidate()
}

// PaletteCancel abandons a palette press without selecting anything.
func (e *Editor) PaletteCancel() {
	if e.palette.state == PaletteIdle {
		return
	}
	e.palette = palette{}
	e.invalidate()
}
