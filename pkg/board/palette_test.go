package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
)

var testCanvas = Rect{Min: court.Pt(100, 50), Max: court.Pt(1100, 550)}

func TestPaletteDropPlaces(t *testing.T) {
	e := newTestEditor(t)
	ref := Ref{Kind: KindPlayer, Index: 2}

	e.PalettePress(ref, court.Pt(10, 10))
	assert.Equal(t, PaletteMaybeDrag, e.PaletteState())

	e.PaletteMove(court.Pt(14, 14))
	assert.Equal(t, PaletteMaybeDrag, e.PaletteState())
	assert.False(t, e.Ghost().Visible)

	e.PaletteMove(court.Pt(300, 200))
	require.Equal(t, PaletteDragging, e.PaletteState())
	g := e.Ghost()
	assert.True(t, g.Visible)
	assert.Equal(t, court.Pt(300, 200), g.At)
	assert.Equal(t, "P3", g.Label)
	assert.Equal(t, PlayerColors[2], g.Color)

	e.PaletteRelease(court.Pt(300, 200), testCanvas)
	assert.Equal(t, PaletteIdle, e.PaletteState())
	assert.False(t, e.Ghost().Visible)
	assert.Equal(t, ref, e.Active())
	assert.False(t, e.Pending())
	assert.Equal(t, 1, e.UndoDepth())

	pos := e.Scene().Players[2].Pos
	require.NotNil(t, pos)
	assertPointNear(t, e.Ortho().ToCourt(court.Pt(200, 150)), *pos)

	// a second drop records the previous position
	e.PalettePress(ref, court.Pt(10, 10))
	e.PaletteMove(court.Pt(500, 300))
	e.PaletteRelease(court.Pt(500, 300), testCanvas)
	e.Undo()
	assertPointNear(t, e.Ortho().ToCourt(court.Pt(200, 150)), *e.Scene().Players[2].Pos)
}

func TestPaletteClickSelects(t *testing.T) {
	e := newTestEditor(t)
	ref := Ref{Kind: KindBall}

	e.PalettePress(ref, court.Pt(10, 10))
	e.PaletteMove(court.Pt(13, 10))
	e.PaletteRelease(court.Pt(13, 10), testCanvas)
	assert.Equal(t, ref, e.Active())
	assert.True(t, e.Pending())
	assert.Nil(t, e.Scene().Balls[0].Pos)
	assert.Equal(t, 0, e.UndoDepth())
}

func TestPaletteDropOutsideCanvas(t *testing.T) {
	e := newTestEditor(t)
	ref := Ref{Kind: KindBall}

	e.PalettePress(ref, court.Pt(10, 10))
	e.PaletteMove(court.Pt(40, 20))
	assert.Equal(t, BallPaletteColor, e.Ghost().Color)
	e.PaletteRelease(court.Pt(40, 20), testCanvas)

	assert.Nil(t, e.Scene().Balls[0].Pos)
	assert.Equal(t, Ref{Kind: KindPlayer}, e.Active())
	assert.Equal(t, 0, e.UndoDepth())
	assert.False(t, e.Ghost().Visible)
}

func TestPalettePenSelectsImmediately(t *testing.T) {
	e := newTestEditor(t)
	e.PalettePress(Ref{Kind: KindAnnot, Index: 5}, court.Pt(0, 0))
	assert.Equal(t, PaletteIdle, e.PaletteState())
	assert.Equal(t, Ref{Kind: KindAnnot, Index: 5}, e.Active())
}

func TestPaletteCancel(t *testing.T) {
	e := newTestEditor(t)
	e.PalettePress(Ref{Kind: KindPlayer, Index: 1}, court.Pt(0, 0))
	e.PaletteMove(court.Pt(50, 50))
	e.PaletteCancel()
	assert.Equal(t, PaletteIdle, e.PaletteState())
	assert.False(t, e.Ghost().Visible)
	assert.Equal(t, Ref{Kind: KindPlayer}, e.Active())
}

func TestRectContains(t *testing.T) {
	assert.True(t, testCanvas.Contains(court.Pt(100, 50)))
	assert.True(t, testCanvas.Contains(court.Pt(1100, 550)))
	assert.False(t, testCanvas.Contains(court.Pt(99.9, 300)))
}
