package board

import (
	"github.com/rs/zerolog"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/sched"
)

// Mode selects how pointer-down on the board is interpreted.
type Mode int

const (
	ModeDraw Mode = iota
	ModePlace
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModePlace:
		return "place"
	case ModeErase:
		return "erase"
	}
	return "unknown"
}

// ServeSide marks which end is serving.
type ServeSide int

const (
	ServeNone ServeSide = iota
	ServeLeft
	ServeRight
)

func (s ServeSide) String() string {
	switch s {
	case ServeLeft:
		return "left"
	case ServeRight:
		return "right"
	}
	return "none"
}

// Line width bounds in pixels.
const (
	MinLineWidth     = 1
	MaxLineWidth     = 8
	DefaultLineWidth = 3
)

// ResetPrompt is the question asked before clearing the whole board.
const ResetPrompt = "Clear all strokes and positions?"

// Confirmer asks the user to approve a destructive action. Implementations
// call proceed only when the user accepts; they may do so later.
type Confirmer interface {
	Confirm(prompt string, proceed func())
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string, proceed func())

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string, proceed func()) { f(prompt, proceed) }

// Options configures a new Editor.
type Options struct {
	LineWidth float64
	Dash      Dash
	CourtType court.CourtType
	HomeSide  court.HomeSide

	// Confirmer gates ResetAll. A nil Confirmer accepts immediately.
	Confirmer Confirmer
	Logger    zerolog.Logger
}

// DefaultOptions returns the board's start-up settings.
func DefaultOptions() Options {
	return Options{
		LineWidth: DefaultLineWidth,
		Dash:      DashSolid,
		CourtType: court.Doubles,
		HomeSide:  court.SideLeft,
		Logger:    zerolog.Nop(),
	}
}

// Editor owns the board scene and turns pointer and keyboard input into scene
// edits. It is not safe for concurrent use.
type Editor struct {
	scene *Scene
	undo  UndoStack
	ortho *court.Ortho

	mode      Mode
	active    Ref
	pending   bool
	lineWidth float64
	dash      Dash
	courtType court.CourtType
	homeSide  court.HomeSide
	serve     ServeSide

	// In-progress stroke in court meters; only committed on pointer-up.
	drawing bool
	current []court.Point

	dragging   bool
	dragTarget Ref
	dragOffset court.Point // pointer minus marker center, pixels

	palette palette

	anim    sched.Animator
	confirm Confirmer
	log     zerolog.Logger

	onInvalidate func()
}

// NewEditor creates an editor with the default scene. The board must be sized
// with Resize before pointer input has any effect.
func NewEditor(opts Options) *Editor {
	lw := opts.LineWidth
	if lw == 0 {
		lw = DefaultLineWidth
	}
	e := &Editor{
		scene:     NewScene(),
		ortho:     court.NewOrtho(0, 0, court.BoardMargin),
		active:    Ref{Kind: KindPlayer},
		lineWidth: clampWidth(lw),
		dash:      opts.Dash,
		courtType: opts.CourtType,
		homeSide:  opts.HomeSide,
		confirm:   opts.Confirmer,
		log:       opts.Logger,
	}
	e.anim.Pulse.Reset()
	e.anim.OnFrame = e.invalidate
	return e
}

func clampWidth(w float64) float64 {
	return min(max(w, MinLineWidth), MaxLineWidth)
}

// SetInvalidateCallback sets a callback to notify the host when a redraw is needed.
func (e *Editor) SetInvalidateCallback(cb func()) {
	e.onInvalidate = cb
}

// SetConfirmer replaces the reset confirmation.
func (e *Editor) SetConfirmer(c Confirmer) {
	e.confirm = c
}

func (e *Editor) invalidate() {
	if e.onInvalidate != nil {
		e.onInvalidate()
	}
}

// Scene returns the scene. Callers must treat it as read-only.
func (e *Editor) Scene() *Scene { return e.scene }

// Ortho returns the current court mapping.
func (e *Editor) Ortho() *court.Ortho { return e.ortho }

// Mode returns the pointer mode.
func (e *Editor) Mode() Mode { return e.mode }

// Active returns the selected entity.
func (e *Editor) Active() Ref { return e.active }

// ActiveEntity returns the selected entity.
func (e *Editor) ActiveEntity() *Entity { return e.scene.Entity(e.active) }

// Pending reports whether the next click in draw mode places the active marker.
func (e *Editor) Pending() bool { return e.pending }

// LineWidth returns the width for new strokes.
func (e *Editor) LineWidth() float64 { return e.lineWidth }

// Dash returns the style for new strokes.
func (e *Editor) Dash() Dash { return e.dash }

// CourtType returns the court layout shown.
func (e *Editor) CourtType() court.CourtType { return e.courtType }

// HomeSide returns which half is tinted as home.
func (e *Editor) HomeSide() court.HomeSide { return e.homeSide }

// Serve returns the serve indicator side.
func (e *Editor) Serve() ServeSide { return e.serve }

// UndoDepth returns the number of undoable actions.
func (e *Editor) UndoDepth() int { return e.undo.Len() }

// Drawing reports whether a stroke is in progress.
func (e *Editor) Drawing() bool { return e.drawing }

// InProgress returns the uncommitted stroke points in court meters.
func (e *Editor) InProgress() []court.Point { return e.current }

// Pulse returns the glow value for the active marker.
func (e *Editor) Pulse() float64 { return e.anim.Pulse.Value() }

// Animate starts pulsing the active marker from s's frame callback.
func (e *Editor) Animate(s sched.Scheduler) {
	e.anim.Start(s)
}

// StopAnimation stops the pulse.
func (e *Editor) StopAnimation() {
	e.anim.Stop()
}

// Resize updates the drawing area. Sizes that are not positive, or equal to
// the current size, are ignored.
func (e *Editor) Resize(width, height float64) {
	if width == e.ortho.Width && height == e.ortho.Height {
		return
	}
	if e.ortho.Resize(width, height) {
		e.log.Debug().Float64("width", width).Float64("height", height).Float64("scale", e.ortho.Scale).Msg("board resized")
		e.invalidate()
	}
}

func (e *Editor) push(a Action) {
	e.undo.Push(a)
	e.log.Debug().Str("action", a.Kind.String()).Str("kind", a.Target.Kind.String()).Int("index", a.Target.Index).Int("depth", e.undo.Len()).Msg("undo push")
}

// Select makes r the active entity. Players and the shuttle that have not been
// placed yet become pending placement.
func (e *Editor) Select(r Ref) {
	ent := e.scene.Entity(r)
	if ent == nil {
		return
	}
	e.active = r
	e.pending = ent.Kind.Positioned() && ent.Pos == nil
	e.invalidate()
}

// CancelPending drops a pending placement.
func (e *Editor) CancelPending() bool {
	if !e.pending {
		return false
	}
	e.pending = false
	e.invalidate()
	return true
}

// HitMarker returns the placed marker under screen point p.
func (e *Editor) HitMarker(p court.Point) (Ref, bool) {
	if !e.ortho.Ready() {
		return Ref{}, false
	}
	return hitMarker(e.scene, e.ortho, p)
}

func (e *Editor) beginDrag(r Ref, p court.Point) {
	ent := e.scene.Entity(r)
	e.dragging = true
	e.dragTarget = r
	e.dragOffset = p.Sub(e.ortho.ToScreen(*ent.Pos))
	e.Select(r)
}

// PointerDown handles a press at screen point p, relative to the board canvas.
func (e *Editor) PointerDown(p court.Point) {
	if !e.ortho.Ready() {
		return
	}
	switch e.mode {
	case ModePlace:
		e.downPlace(p)
	case ModeErase:
		e.downErase(p)
	default:
		e.downDraw(p)
	}
}

func (e *Editor) downPlace(p court.Point) {
	if r, ok := hitMarker(e.scene, e.ortho, p); ok {
		e.beginDrag(r, p)
		return
	}
	ent := e.scene.Entity(e.active)
	if !ent.Kind.Positioned() {
		return
	}
	from := clonePoint(ent.Pos)
	pos := e.ortho.ToCourt(p)
	ent.Pos = &pos
	e.push(Action{Kind: ActPlace, Target: e.active, From: from})
	e.pending = false
	e.invalidate()
}

func (e *Editor) downErase(p court.Point) {
	if r, ok := hitMarker(e.scene, e.ortho, p); ok {
		ent := e.scene.Entity(r)
		e.push(Action{Kind: ActEraseMarker, Target: r, Pos: *ent.Pos})
		ent.Pos = nil
	} else if r, idx, ok := strokeNear(e.scene, e.ortho, p); ok {
		ent := e.scene.Entity(r)
		st := ent.Strokes[idx]
		ent.Strokes = append(ent.Strokes[:idx:idx], ent.Strokes[idx+1:]...)
		e.push(Action{Kind: ActEraseStroke, Target: r, Index: idx, Stroke: st})
	}
	e.invalidate()
}

func (e *Editor) downDraw(p court.Point) {
	if r, ok := hitMarker(e.scene, e.ortho, p); ok {
		e.beginDrag(r, p)
		return
	}
	if ent := e.scene.Entity(e.active); e.pending && ent.Kind.Positioned() {
		e.push(Action{Kind: ActPlace, Target: e.active})
		pos := e.ortho.ToCourt(p)
		ent.Pos = &pos
		e.pending = false
		e.invalidate()
		return
	}
	e.drawing = true
	e.current = []court.Point{e.ortho.ToCourt(p)}
}

// PointerMove handles motion at screen point p.
func (e *Editor) PointerMove(p court.Point) {
	if !e.ortho.Ready() {
		return
	}
	if e.dragging {
		pos := e.ortho.ToCourt(p.Sub(e.dragOffset))
		e.scene.Entity(e.dragTarget).Pos = &pos
		e.invalidate()
		return
	}
	if e.drawing {
		e.current = append(e.current, e.ortho.ToCourt(p))
		e.invalidate()
	}
}

// PointerUp finishes a drag or commits the stroke in progress. Strokes with
// fewer than two points are dropped.
//
// A finished drag records a place action whose prior position is nil, so
// undoing it unplaces the marker rather than returning it to where the drag
// began.
func (e *Editor) PointerUp() {
	if e.dragging {
		e.push(Action{Kind: ActPlace, Target: e.dragTarget})
		e.dragging = false
		e.invalidate()
		return
	}
	if !e.drawing {
		return
	}
	e.drawing = false
	if len(e.current) >= 2 {
		ent := e.scene.Entity(e.active)
		ent.Strokes = append(ent.Strokes, Stroke{
			Points: e.current,
			Width:  e.lineWidth,
			Dash:   e.dash,
		})
		e.push(Action{Kind: ActStroke, Target: e.active})
	}
	e.current = nil
	e.invalidate()
}

// PointerLeave is treated like a release.
func (e *Editor) PointerLeave() {
	e.PointerUp()
}

// Undo reverts the newest action. It reports whether anything was undone.
func (e *Editor) Undo() bool {
	a, ok := e.undo.Pop()
	if !ok {
		return false
	}
	e.scene.Revert(a)
	e.log.Debug().Str("action", a.Kind.String()).Int("depth", e.undo.Len()).Msg("undo")
	e.invalidate()
	return true
}

// ClearActive removes the active entity's strokes and position. It is not
// recorded for undo.
func (e *Editor) ClearActive() {
	ent := e.scene.Entity(e.active)
	ent.Strokes = nil
	if ent.Kind.Positioned() {
		ent.Pos = nil
	}
	e.invalidate()
}

// ResetAll asks for confirmation and then clears every stroke, position, the
// undo history and the serve indicator.
func (e *Editor) ResetAll() {
	proceed := func() {
		e.scene.Clear()
		e.undo.Clear()
		e.serve = ServeNone
		e.drawing = false
		e.current = nil
		e.dragging = false
		e.log.Info().Msg("board reset")
		e.invalidate()
	}
	if e.confirm == nil {
		proceed()
		return
	}
	e.confirm.Confirm(ResetPrompt, proceed)
}

// SetMode changes the pointer mode.
func (e *Editor) SetMode(m Mode) {
	e.mode = m
	e.invalidate()
}

// SetLineWidth sets the width for new strokes, clamped to 1..8.
func (e *Editor) SetLineWidth(w float64) {
	e.lineWidth = clampWidth(w)
	e.invalidate()
}

// SetDash sets the style for new strokes.
func (e *Editor) SetDash(d Dash) {
	e.dash = d
	e.invalidate()
}

// SetCourtType changes the court layout shown.
func (e *Editor) SetCourtType(t court.CourtType) {
	e.courtType = t
	e.invalidate()
}

// ToggleCourtType switches between doubles and singles.
func (e *Editor) ToggleCourtType() {
	if e.courtType == court.Doubles {
		e.SetCourtType(court.Singles)
		return
	}
	e.SetCourtType(court.Doubles)
}

// SetHomeSide changes which half is tinted as home.
func (e *Editor) SetHomeSide(s court.HomeSide) {
	e.homeSide = s
	e.invalidate()
}

// SetServe sets or clears the serve indicator.
func (e *Editor) SetServe(s ServeSide) {
	e.serve = s
	e.invalidate()
}

// SetVisible shows or hides a player or the shuttle.
func (e *Editor) SetVisible(r Ref, visible bool) {
	if ent := e.scene.Entity(r); ent != nil {
		ent.Visible = visible
		e.invalidate()
	}
}
