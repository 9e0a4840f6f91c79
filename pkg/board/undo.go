package board

import "github.com/OpenTraceLab/CourtCoach/pkg/court"

// UndoLimit is the maximum number of undo entries kept.
const UndoLimit = 60

// ActionKind tags an undo entry.
type ActionKind int

const (
	ActStroke      ActionKind = iota // a stroke was appended
	ActPlace                         // a marker was positioned
	ActEraseMarker                   // a marker position was cleared
	ActEraseStroke                   // a stroke was removed
)

func (k ActionKind) String() string {
	switch k {
	case ActStroke:
		return "stroke"
	case ActPlace:
		return "place"
	case ActEraseMarker:
		return "erase-marker"
	case ActEraseStroke:
		return "erase-stroke"
	}
	return "unknown"
}

// Action is one invertible edit. Only the fields relevant to Kind are set.
type Action struct {
	Kind   ActionKind
	Target Ref

	From   *court.Point // ActPlace: position before the edit
	Pos    court.Point  // ActEraseMarker: the erased position
	Index  int          // ActEraseStroke: where the stroke was
	Stroke Stroke       // ActEraseStroke: the removed stroke
}

// UndoStack is a bounded LIFO. Pushing beyond UndoLimit drops the oldest entry.
type UndoStack struct {
	items []Action
}

// Push records a.
func (u *UndoStack) Push(a Action) {
	u.items = append(u.items, a)
	if len(u.items) > UndoLimit {
		copy(u.items, u.items[1:])
		u.items = u.items[:UndoLimit]
	}
}

// Pop removes and returns the newest entry.
func (u *UndoStack) Pop() (Action, bool) {
	if len(u.items) == 0 {
		return Action{}, false
	}
	a := u.items[len(u.items)-1]
	u.items = u.items[:len(u.items)-1]
	return a, true
}

// Len returns the number of entries.
func (u *UndoStack) Len() int { return len(u.items) }

// Clear drops every entry.
func (u *UndoStack) Clear() { u.items = u.items[:0] }

// Revert inverts a on the scene.
func (s *Scene) Revert(a Action) {
	e := s.Entity(a.Target)
	if e == nil {
		return
	}
	switch a.Kind {
	case ActStroke:
		if n := len(e.Strokes); n > 0 {
			e.Strokes = e.Strokes[:n-1]
		}
	case ActPlace:
		if e.Kind.Positioned() {
			e.Pos = clonePoint(a.From)
		}
	case ActEraseMarker:
		if e.Kind.Positioned() {
			p := a.Pos
			e.Pos = &p
		}
	case ActEraseStroke:
		i := min(max(a.Index, 0), len(e.Strokes))
		e.Strokes = append(e.Strokes, Stroke{})
		copy(e.Strokes[i+1:], e.Strokes[i:])
		e.Strokes[i] = a.Stroke
	}
}

func clonePoint(p *court.Point) *court.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
