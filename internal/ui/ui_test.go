package ui

import (
	"testing"

	"gioui.org/io/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/sched"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

func newTestApp() *App {
	return &App{host: sched.NewHost()}
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, trainer.KeyToggle, keyName(key.NameSpace))
	assert.Equal(t, trainer.KeyLeft, keyName(key.NameLeftArrow))
	assert.Equal(t, trainer.KeyRight, keyName(key.NameRightArrow))
	assert.Equal(t, board.KeyEscape, keyName(key.NameEscape))
	assert.Equal(t, keyConfirm, keyName(key.NameReturn))
	assert.Equal(t, "Q", keyName(key.Name("Q")))
}

func TestModifiers(t *testing.T) {
	assert.Equal(t, board.ModShortcut, modifiers(key.ModShortcut))
	assert.Equal(t, board.Modifiers(0), modifiers(key.ModShift))
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("board")
	assert.True(t, ok)
	assert.Equal(t, ViewBoard, v)
	assert.Equal(t, "board", v.String())

	v, ok = ParseView("court")
	assert.False(t, ok)
	assert.Equal(t, ViewTrainer, v)
}

func TestSliderMapping(t *testing.T) {
	assert.Equal(t, trainer.MinSpeed, sliderSpeed(0))
	assert.Equal(t, trainer.MaxSpeed, sliderSpeed(1))
	assert.Equal(t, float64(board.MinLineWidth), sliderWidth(0))
	assert.Equal(t, float64(board.MaxLineWidth), sliderWidth(1))

	v := newTrainerView(newTestApp(), trainer.DefaultOptions())
	v.syncSpeed()
	assert.Equal(t, trainer.DefaultSpeed, sliderSpeed(v.speed.Value))
}

func TestConfirmDialog(t *testing.T) {
	d := newConfirmDialog(newTestApp())
	called := 0

	d.Confirm(board.ResetPrompt, func() { called++ })
	require.True(t, d.Visible())
	d.Key(board.KeyEscape)
	assert.False(t, d.Visible())
	assert.Zero(t, called)

	d.Confirm(board.ResetPrompt, func() { called++ })
	d.Key("x")
	assert.True(t, d.Visible(), "unrelated keys leave the dialog open")
	d.Key(keyConfirm)
	assert.False(t, d.Visible())
	assert.Equal(t, 1, called)
}

func TestBoardResetGoesThroughDialog(t *testing.T) {
	a := newTestApp()
	a.confirm = newConfirmDialog(a)
	opts := board.DefaultOptions()
	opts.Confirmer = a.confirm
	v := newBoardView(a, opts)

	v.ed.Resize(800, 400)
	v.ed.Select(board.Ref{Kind: board.KindPlayer})
	v.ed.PointerDown(court.Pt(200, 200))
	v.ed.PointerUp()
	require.NotNil(t, v.ed.ActiveEntity().Pos)

	v.ed.ResetAll()
	require.True(t, a.confirm.Visible())
	assert.NotNil(t, v.ed.ActiveEntity().Pos, "nothing cleared before the answer")

	a.confirm.Key(keyConfirm)
	assert.Nil(t, v.ed.Scene().Entity(board.Ref{Kind: board.KindPlayer}).Pos)
}

func TestPaletteEntries(t *testing.T) {
	v := newBoardView(newTestApp(), board.DefaultOptions())
	assert.Len(t, v.palette, 11)
	assert.Len(t, v.visible, 5)
	assert.Contains(t, v.status(), "Mode: draw")
}

func TestTrainerStatus(t *testing.T) {
	v := newTrainerView(newTestApp(), trainer.DefaultOptions())
	assert.Contains(t, v.status(), "Mode: Random")
	assert.Contains(t, v.status(), "Interval: 2.0s")
}
