package ui

import (
	"gioui.org/io/key"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

// keyName maps a Gio key name to the names the trainer and board understand.
// Letters and digits pass through unchanged.
func keyName(n key.Name) string {
	switch n {
	case key.NameSpace:
		return trainer.KeyToggle
	case key.NameLeftArrow:
		return trainer.KeyLeft
	case key.NameRightArrow:
		return trainer.KeyRight
	case key.NameEscape:
		return board.KeyEscape
	case key.NameReturn, key.NameEnter:
		return keyConfirm
	}
	return string(n)
}

// keyConfirm accepts the confirm dialog.
const keyConfirm = "Return"

func modifiers(m key.Modifiers) board.Modifiers {
	var out board.Modifiers
	if m.Contain(key.ModShortcut) {
		out |= board.ModShortcut
	}
	return out
}
