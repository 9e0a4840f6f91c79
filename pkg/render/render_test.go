package render

import (
	"image"
	"testing"
	"time"

	"gioui.org/layout"
	"gioui.org/op"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/sched"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

func assertPointsNear(t *testing.T, want, got []court.Point) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-9, "point %d x", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-9, "point %d y", i)
	}
}

func TestDashSegmentsStraight(t *testing.T) {
	pts := []court.Point{court.Pt(0, 0), court.Pt(20, 0)}
	segs := dashSegments(pts, []float64{8, 6}, 0)

	require.Len(t, segs, 2)
	assertPointsNear(t, []court.Point{court.Pt(0, 0), court.Pt(8, 0)}, segs[0])
	assertPointsNear(t, []court.Point{court.Pt(14, 0), court.Pt(20, 0)}, segs[1])
}

func TestDashSegmentsOffset(t *testing.T) {
	pts := []court.Point{court.Pt(0, 0), court.Pt(20, 0)}

	// a negative offset pushes the pattern forward: the path opens in a gap
	segs := dashSegments(pts, []float64{8, 6}, -3)
	require.Len(t, segs, 2)
	assertPointsNear(t, []court.Point{court.Pt(3, 0), court.Pt(11, 0)}, segs[0])
	assertPointsNear(t, []court.Point{court.Pt(17, 0), court.Pt(20, 0)}, segs[1])

	// a full period is the same as no offset
	assert.Equal(t, dashSegments(pts, []float64{8, 6}, 0), dashSegments(pts, []float64{8, 6}, -28))
}

func TestDashSegmentsAcrossCorner(t *testing.T) {
	pts := []court.Point{court.Pt(0, 0), court.Pt(4, 0), court.Pt(4, 10)}
	segs := dashSegments(pts, []float64{6, 2}, 0)

	require.Len(t, segs, 2)
	// the first dash bends around the corner
	assertPointsNear(t, []court.Point{court.Pt(0, 0), court.Pt(4, 0), court.Pt(4, 2)}, segs[0])
	assertPointsNear(t, []court.Point{court.Pt(4, 4), court.Pt(4, 10)}, segs[1])
}

func TestDashSegmentsDegenerate(t *testing.T) {
	assert.Nil(t, dashSegments([]court.Point{court.Pt(1, 1)}, []float64{8, 6}, 0))

	pts := []court.Point{court.Pt(0, 0), court.Pt(5, 0)}
	assert.Equal(t, [][]court.Point{pts}, dashSegments(pts, []float64{0, 0}, 0))
}

func newContext(w, h int) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(image.Pt(w, h)),
	}
}

func TestTrainerDraws(t *testing.T) {
	clock := sched.NewManual(time.Unix(0, 0))
	opts := trainer.DefaultOptions()
	opts.Mode = trainer.ModeSequential
	seq := trainer.New(clock, opts)
	require.True(t, seq.Start())
	clock.Frames(3)

	p := court.NewPerspective(900, 700, 120, court.SideLeft)
	gtx := newContext(900, 700)
	assert.NotPanics(t, func() { Trainer(gtx, seq.Snapshot(), p) })

	// back position with a shot card
	for seq.Current() != trainer.BL {
		seq.Step()
	}
	assert.NotPanics(t, func() { Trainer(gtx, seq.Snapshot(), p) })

	seq.Stop()
	assert.NotPanics(t, func() { Trainer(gtx, seq.Snapshot(), p) })
}

func TestBoardDraws(t *testing.T) {
	e := board.NewEditor(board.DefaultOptions())
	gtx := newContext(1000, 500)

	// unsized board draws nothing
	Board(gtx, e)

	e.Resize(1000, 500)
	e.SetServe(board.ServeRight)
	e.SetCourtType(court.Singles)
	e.SetDash(board.DashDashed)

	e.SetMode(board.ModePlace)
	e.PointerDown(court.Pt(300, 200))
	e.PointerUp()
	e.Select(board.Ref{Kind: board.KindBall})
	e.PointerDown(court.Pt(500, 250))
	e.PointerUp()

	e.SetMode(board.ModeDraw)
	e.Select(board.Ref{Kind: board.KindAnnot, Index: 1})
	e.PointerDown(court.Pt(100, 100))
	e.PointerMove(court.Pt(150, 120))
	e.PointerMove(court.Pt(200, 160))

	assert.NotPanics(t, func() { Board(gtx, e) })
	e.PointerUp()
	assert.NotPanics(t, func() { Board(gtx, e) })

	assert.NotPanics(t, func() {
		Ghost(gtx, board.Ghost{Visible: true, At: court.Pt(40, 40), Ref: board.Ref{Kind: board.KindPlayer}, Label: "P1", Color: board.PlayerColors[0]})
	})
}
