package board

import "strings"

// Modifiers are the keyboard modifiers relevant to board shortcuts.
type Modifiers uint8

const (
	// ModShortcut is Ctrl, or Cmd on macOS.
	ModShortcut Modifiers = 1 << iota
)

// Key names understood by Key besides single letters and digits.
const (
	KeyEscape = "Escape"
)

// quickSelect maps digit keys to entities.
var quickSelect = map[string]Ref{
	"1": {KindPlayer, 0},
	"2": {KindPlayer, 1},
	"3": {KindPlayer, 2},
	"4": {KindPlayer, 3},
	"5": {KindBall, 0},
	"6": {KindAnnot, 0},
	"7": {KindAnnot, 1},
	"8": {KindAnnot, 2},
}

// Key applies a keyboard shortcut and reports whether it was handled. Letter
// names are case-insensitive.
//
//	Shortcut+Z  undo
//	Escape      cancel pending placement
//	Q W E       draw, place, erase mode
//	A D         serve left, right
//	S           toggle doubles/singles
//	R           reset everything (asks first)
//	1-4 5 6-8   select player, shuttle, first three pens
func (e *Editor) Key(name string, mods Modifiers) bool {
	k := strings.ToLower(name)
	if mods&ModShortcut != 0 {
		if k == "z" {
			e.Undo()
			return true
		}
		return false
	}
	if name == KeyEscape {
		return e.CancelPending()
	}
	if r, ok := quickSelect[k]; ok {
		e.Select(r)
		return true
	}
	switch k {
	case "q":
		e.SetMode(ModeDraw)
	case "w":
		e.SetMode(ModePlace)
	case "e":
		e.SetMode(ModeErase)
	case "a":
		e.SetServe(ServeLeft)
	case "d":
		e.SetServe(ServeRight)
	case "s":
		e.ToggleCourtType()
	case "r":
		e.ResetAll()
	default:
		return false
	}
	return true
}
