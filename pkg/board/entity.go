// Package board implements the tactical board: a fixed set of players, one
// shuttle and six annotation pens, each owning freehand strokes, edited through
// draw, place and erase pointer modes with bounded undo.
//
// Positions and stroke points are stored in court meters so the scene survives
// a resize; pointer input and hit tolerances are in screen pixels.
package board

import (
	"image/color"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
)

// Kind identifies an entity group.
type Kind int

const (
	KindPlayer Kind = iota
	KindBall
	KindAnnot
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBall:
		return "ball"
	case KindAnnot:
		return "annot"
	}
	return "unknown"
}

// Positioned reports whether entities of this kind can be placed on the court.
func (k Kind) Positioned() bool {
	return k == KindPlayer || k == KindBall
}

// Ref addresses one entity in a Scene.
type Ref struct {
	Kind  Kind
	Index int
}

// Dash is a stroke line style.
type Dash int

const (
	DashSolid Dash = iota
	DashDashed
)

func (d Dash) String() string {
	if d == DashDashed {
		return "dashed"
	}
	return "solid"
}

// ParseDash accepts "solid" or "dashed".
func ParseDash(s string) (Dash, bool) {
	switch s {
	case "solid":
		return DashSolid, true
	case "dashed":
		return DashDashed, true
	}
	return DashSolid, false
}

// Pattern returns the on/off dash lengths for a stroke of width w, or nil for
// a solid line.
func (d Dash) Pattern(w float64) []float64 {
	if d != DashDashed {
		return nil
	}
	return []float64{3 * w, 2 * w}
}

// Stroke is a committed freehand path.
type Stroke struct {
	Points []court.Point
	Width  float64
	Dash   Dash
}

// Entity is a player, the shuttle or an annotation pen.
type Entity struct {
	Kind    Kind
	ID      int
	Name    string
	Label   string
	Color   color.NRGBA
	Border  color.NRGBA
	Visible bool
	Pos     *court.Point // nil until placed; always nil for annotations
	Strokes []Stroke
}

// Radius returns the marker radius in pixels, or 0 for annotations.
func (e *Entity) Radius() float64 {
	switch e.Kind {
	case KindPlayer:
		return court.PlayerRadius
	case KindBall:
		return court.BallRadius
	}
	return 0
}

// Placed reports whether the entity is drawn as a marker.
func (e *Entity) Placed() bool {
	return e.Kind.Positioned() && e.Visible && e.Pos != nil
}

func rgb(v uint32) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Entity colors.
var (
	PlayerColors = [4]color.NRGBA{rgb(0xE74C3C), rgb(0x3498DB), rgb(0x2ECC71), rgb(0xF39C12)}
	AnnotColors  = [6]color.NRGBA{
		rgb(0xE74C3C), rgb(0xF39C12), rgb(0xF1C40F),
		rgb(0x2ECC71), rgb(0x5DADE2), rgb(0x9B59B6),
	}
	BallColor       = rgb(0xffffff)
	BallBorderColor = rgb(0xbbbbbb)
	// BallPaletteColor tints the palette drag indicator for the shuttle.
	BallPaletteColor = rgb(0xdab86a)
)

var annotLabels = [6]string{"Red", "Orange", "Yellow", "Green", "Light blue", "Purple"}

// Scene owns every entity on the board.
type Scene struct {
	Players []Entity
	Balls   []Entity
	Annots  []Entity
}

// NewScene returns the default board: four players, one shuttle and six pens,
// nothing placed and nothing drawn.
func NewScene() *Scene {
	s := &Scene{}
	for i, c := range PlayerColors {
		s.Players = append(s.Players, Entity{
			Kind:    KindPlayer,
			ID:      i,
			Name:    "P" + string(rune('1'+i)),
			Label:   "Player " + string(rune('1'+i)),
			Color:   c,
			Visible: true,
		})
	}
	s.Balls = append(s.Balls, Entity{
		Kind:    KindBall,
		Name:    "Shuttle",
		Label:   "Shuttle",
		Color:   BallColor,
		Border:  BallBorderColor,
		Visible: true,
	})
	for i, c := range AnnotColors {
		s.Annots = append(s.Annots, Entity{
			Kind:    KindAnnot,
			ID:      i,
			Label:   annotLabels[i],
			Color:   c,
			Visible: true,
		})
	}
	return s
}

func (s *Scene) group(k Kind) []Entity {
	switch k {
	case KindPlayer:
		return s.Players
	case KindBall:
		return s.Balls
	case KindAnnot:
		return s.Annots
	}
	return nil
}

// Entity returns the entity addressed by r, or nil if r is out of range.
func (s *Scene) Entity(r Ref) *Entity {
	g := s.group(r.Kind)
	if r.Index < 0 || r.Index >= len(g) {
		return nil
	}
	return &g[r.Index]
}

// Each calls fn for every entity in drawing order: players, balls, then
// annotations.
func (s *Scene) Each(fn func(r Ref, e *Entity)) {
	for _, k := range []Kind{KindPlayer, KindBall, KindAnnot} {
		g := s.group(k)
		for i := range g {
			fn(Ref{Kind: k, Index: i}, &g[i])
		}
	}
}

// Clear removes every stroke and position.
func (s *Scene) Clear() {
	s.Each(func(_ Ref, e *Entity) {
		e.Strokes = nil
		e.Pos = nil
	})
}

// StrokeCount returns the total number of committed strokes.
func (s *Scene) StrokeCount() int {
	n := 0
	s.Each(func(_ Ref, e *Entity) { n += len(e.Strokes) })
	return n
}
