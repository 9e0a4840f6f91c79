package trainer

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/sched"
)

// scriptedRand replays fixed values and returns 0 once a queue runs dry.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func newTestSequencer(t *testing.T, opts Options) (*Sequencer, *sched.Manual) {
	t.Helper()
	m := sched.NewManual(time.Unix(0, 0))
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(7, 11))
	}
	return New(m, opts), m
}

func seqOptions(mode Mode) Options {
	opts := DefaultOptions()
	opts.Mode = mode
	return opts
}

func TestBuildPositionsMirror(t *testing.T) {
	left := BuildPositions(court.SideLeft)
	right := BuildPositions(court.SideRight)
	require.Len(t, left, NumPositions)
	require.Len(t, right, NumPositions)

	for i := range left {
		assert.Less(t, left[i].X, court.NetX, "left position %d", i)
		assert.Greater(t, right[i].X, court.NetX, "right position %d", i)
		assert.InDelta(t, court.Width, left[i].X+right[i].X, 1e-9)
		assert.Equal(t, left[i].Y, right[i].Y)
	}

	opp := BuildOpponents(court.SideLeft)
	for i := range opp {
		assert.Equal(t, right[i].X, opp[i].X)
	}
	assert.Less(t, left[FL].X-court.NetX, 0.0)
	assert.Greater(t, court.NetX-left[BL].X, court.NetX-left[ML].X)
}

func TestActivePool(t *testing.T) {
	pos := BuildPositions(court.SideLeft)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ActivePool(pos, AllZones))
	assert.Equal(t, []int{0, 1, 4, 5}, ActivePool(pos, Zones{Front: true, Back: true}))
	assert.Empty(t, ActivePool(pos, Zones{}))
	assert.True(t, Zones{}.None())
	assert.False(t, AllZones.Toggle(ZoneMid).Mid)
}

func TestSequentialVisitsPoolInOrder(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeSequential))
	require.True(t, q.Start())

	visited := []int{q.Current()}
	for i := 0; i < 6; i++ {
		m.Advance(q.Interval())
		visited = append(visited, q.Current())
		if i == 4 {
			assert.Equal(t, 1, q.RoundsDone())
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 0}, visited)
	assert.Equal(t, 1, q.RoundsDone())
	assert.Equal(t, 1, q.Snapshot().RoundCount)
}

func TestRandomNeverRepeats(t *testing.T) {
	q, _ := newTestSequencer(t, seqOptions(ModeRandom))
	require.True(t, q.Start())
	prev := q.Current()
	for i := 0; i < 200; i++ {
		require.True(t, q.Step())
		assert.NotEqual(t, prev, q.Current())
		prev = q.Current()
	}
}

func TestRandomSingleEntryPool(t *testing.T) {
	pos := BuildPositions(court.SideLeft)
	pool := ActivePool(pos, Zones{Back: true})[:1]
	rnd := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10; i++ {
		assert.Equal(t, pool[0], pickRandom(pool, pool[0], rnd))
	}
}

func TestHandDirection(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	seen := map[Hand]bool{}
	for i := 0; i < 100; i++ {
		assert.Equal(t, Overhead, pickHand(BL, rnd))
		assert.Equal(t, Overhead, pickHand(BR, rnd))
		seen[pickHand(FL, rnd)] = true
	}
	assert.True(t, seen[Overhead])
	assert.True(t, seen[Underhand])
}

func TestGravityTable(t *testing.T) {
	shot, opp := pickShotAndOpponent(FL, &scriptedRand{floats: []float64{0.1}})
	assert.Equal(t, ShotNone, shot)
	assert.Equal(t, BR, opp)

	_, opp = pickShotAndOpponent(FL, &scriptedRand{floats: []float64{0.9}})
	assert.Equal(t, BL, opp)

	_, opp = pickShotAndOpponent(MR, &scriptedRand{floats: []float64{0.79}})
	assert.Equal(t, BL, opp)
}

func TestBackShotDecidesOpponent(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 300; i++ {
		my := BL + i%2
		shot, opp := pickShotAndOpponent(my, rnd)
		switch shot {
		case ShotDrop:
			assert.Contains(t, []int{FL, FR}, opp)
		case ShotSmash:
			assert.Contains(t, []int{ML, MR}, opp)
		case ShotLong:
			assert.Contains(t, []int{BL, BR}, opp)
		default:
			t.Fatalf("unexpected shot %v for back position", shot)
		}
		assert.Equal(t, shot, ShotForTarget(opp))
	}
}

func TestTacticBackSmashTargetsMidCourt(t *testing.T) {
	// no mid transition, back pool entry 1 (BR), smash, second of the pair
	rnd := &scriptedRand{floats: []float64{0.9, 0.7}, ints: []int{1, 2}}
	opts := seqOptions(ModeTactic)
	opts.Rand = rnd
	q, _ := newTestSequencer(t, opts)

	require.True(t, q.Start())
	snap := q.Snapshot()
	assert.Equal(t, BR, snap.Current)
	assert.Equal(t, ShotSmash, snap.Shot)
	assert.Contains(t, []int{ML, MR}, snap.Opponent)
	require.NotNil(t, snap.Tactic)
	assert.Equal(t, ShotSmash, snap.Tactic.Shot)
	assert.Equal(t, "Back right", snap.Tactic.Mine)
	assert.Equal(t, snap.Opponents[snap.Opponent].Label, snap.Tactic.Opponent)
	assert.True(t, q.ShowTacticHint())
}

func TestTacticAlternatesFrontAndBack(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.9, 0.5, 0.9, 0.5, 0.9, 0.5, 0.9, 0.5}}
	pool := []int{0, 1, 2, 3, 4, 5}
	nextBack := true
	var got []bool
	for i := 0; i < 4; i++ {
		got = append(got, IsBack(pickTacticPosition(pool, &nextBack, rnd)))
	}
	assert.Equal(t, []bool{true, false, true, false}, got)
}

func TestTacticMidTransition(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.1}, ints: []int{1}}
	nextBack := true
	assert.Equal(t, MR, pickTacticPosition([]int{0, 1, 2, 3, 4, 5}, &nextBack, rnd))
	assert.True(t, nextBack, "mid transition leaves alternation untouched")

	// no mid in pool: falls through to the alternation
	rnd = &scriptedRand{floats: []float64{0.1}}
	assert.True(t, IsBack(pickTacticPosition([]int{0, 1, 4, 5}, &nextBack, rnd)))
}

func TestTacticPropertyOverManyPicks(t *testing.T) {
	q, _ := newTestSequencer(t, seqOptions(ModeTactic))
	require.True(t, q.Start())
	for i := 0; i < 500; i++ {
		require.True(t, q.Step())
		snap := q.Snapshot()
		require.NotNil(t, snap.Tactic)
		if IsBack(snap.Current) {
			assert.Equal(t, snap.Shot, ShotForTarget(snap.Opponent))
			assert.Equal(t, snap.Shot, snap.Tactic.Shot)
		} else {
			assert.Equal(t, ShotNone, snap.Shot)
		}
	}
}

func TestFarthestOpponent(t *testing.T) {
	opp := BuildOpponents(court.SideLeft)
	assert.Equal(t, BR, farthestOpponent(opp, FL, RightHanded, &scriptedRand{}))
	assert.Equal(t, BL, farthestOpponent(opp, FR, RightHanded, &scriptedRand{}))

	first := farthestOpponent(opp, -1, RightHanded, &scriptedRand{ints: []int{2}})
	assert.Equal(t, BL, first)
	first = farthestOpponent(opp, -1, LeftHanded, &scriptedRand{ints: []int{1}})
	assert.Equal(t, MR, first)
}

func TestRoundTargetStopsTraining(t *testing.T) {
	opts := seqOptions(ModeSequential)
	opts.RoundTarget = 1
	q, m := newTestSequencer(t, opts)
	require.True(t, q.Start())
	assert.True(t, q.ShowRoundCounter())

	m.Advance(5 * q.Interval())
	assert.False(t, q.Running())
	assert.Equal(t, -1, q.Current())
	assert.Equal(t, -1, q.Opponent())
	assert.Equal(t, 1, q.RoundsDone())
	assert.Equal(t, 0, m.Timers())
	assert.Equal(t, 0, m.FrameCallbacks())
}

func TestRoundTargetStopsOnHostFrames(t *testing.T) {
	t0 := time.Unix(0, 0)
	newHostSequencer := func() (*Sequencer, *sched.Host, *int) {
		h := sched.NewHost()
		h.Step(t0)
		opts := seqOptions(ModeSequential)
		opts.RoundTarget = 1
		opts.Speed = MinSpeed
		opts.Rand = rand.New(rand.NewPCG(7, 11))
		q := New(h, opts)
		picks := 0
		q.SetPickCallback(func(Snapshot) { picks++ })
		require.True(t, q.Start())
		return q, h, &picks
	}

	t.Run("late frame", func(t *testing.T) {
		q, h, picks := newHostSequencer()
		h.Step(t0.Add(20 * time.Second))
		assert.Equal(t, 2, *picks, "missed ticks are not replayed")
		assert.True(t, q.Running())
		assert.Zero(t, q.RoundsDone())
	})

	t.Run("frame per interval", func(t *testing.T) {
		q, h, picks := newHostSequencer()
		for i := 1; i <= 20; i++ {
			h.Step(t0.Add(time.Duration(i) * q.Interval()))
		}
		assert.False(t, q.Running())
		assert.Equal(t, 1, q.RoundsDone())
		assert.Equal(t, NumPositions, *picks)
	})

	t.Run("timers pile up behind one frame", func(t *testing.T) {
		q, h, picks := newHostSequencer()
		for i := 1; i <= 4; i++ {
			h.Step(t0.Add(time.Duration(i) * q.Interval()))
		}
		require.Equal(t, 5, *picks)
		h.Step(t0.Add(30 * time.Second))
		assert.False(t, q.Running())
		assert.Equal(t, 1, q.RoundsDone())
		assert.Equal(t, NumPositions, *picks)
	})
}

func TestSequentialAdaptsToZoneChange(t *testing.T) {
	q, _ := newTestSequencer(t, seqOptions(ModeSequential))
	for i := 0; i < 5; i++ {
		require.True(t, q.Step())
	}
	require.Equal(t, 4, q.Current())

	q.SetZones(Zones{Front: true, Back: true})
	pool := []int{0, 1, 4, 5}
	var picked []int
	for i := 0; i < 5; i++ {
		require.True(t, q.Step())
		assert.Contains(t, pool, q.Current())
		picked = append(picked, q.Current())
	}
	assert.Equal(t, []int{1, 4, 5, 0, 1}, picked)
}

func TestSetZonesStopsWithoutRestart(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeSequential))
	require.True(t, q.Start())

	q.SetZones(Zones{Mid: true})
	assert.False(t, q.Running())
	assert.Zero(t, m.Pending())
	m.Advance(3 * q.Interval())
	assert.False(t, q.Running())
	assert.Equal(t, []int{2, 3}, q.Pool())
}

func TestStaleAutoStopIgnoredAfterRestart(t *testing.T) {
	opts := seqOptions(ModeManual)
	opts.RoundTarget = 1
	opts.Zones = Zones{Back: true}
	q, m := newTestSequencer(t, opts)
	require.True(t, q.Start())
	require.True(t, q.Tap())
	require.Equal(t, 1, m.Pending())

	q.Stop()
	require.True(t, q.Start())
	m.Flush()
	assert.True(t, q.Running())
}

func TestEmptyPoolIsNoop(t *testing.T) {
	opts := seqOptions(ModeRandom)
	opts.Zones = Zones{}
	q, m := newTestSequencer(t, opts)

	assert.False(t, q.Start())
	assert.False(t, q.Step())
	assert.False(t, q.Running())
	assert.Equal(t, -1, q.Current())
	assert.Equal(t, 0, m.Timers())
}

func TestZoneToggleRestarts(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeSequential))
	require.True(t, q.Start())

	q.ToggleZone(ZoneBack)
	assert.False(t, q.Running())
	assert.Equal(t, 1, m.Pending())

	m.Flush()
	assert.True(t, q.Running())
	assert.Equal(t, []int{0, 1, 2, 3}, q.Pool())
	assert.Equal(t, 0, q.Current())
	assert.Equal(t, 1, m.Timers())
}

func TestZoneToggleWhileStopped(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeSequential))
	q.ToggleZone(ZoneFront)
	assert.Equal(t, 0, m.Pending())
	assert.False(t, q.Zones().Front)
}

func TestManualModeTaps(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeManual))
	assert.False(t, q.Tap())

	require.True(t, q.Start())
	assert.Equal(t, 0, m.Timers())
	assert.True(t, q.ShowManualHint())
	assert.False(t, q.ShowRoundCounter())

	m.Advance(time.Minute)
	before := q.Snapshot().RoundCount
	assert.Equal(t, 1, before)

	assert.True(t, q.Tap())
	assert.Equal(t, 2, q.Snapshot().RoundCount)
}

func TestTapIgnoredOutsideManual(t *testing.T) {
	q, _ := newTestSequencer(t, seqOptions(ModeSequential))
	require.True(t, q.Start())
	assert.False(t, q.Tap())
	assert.Equal(t, 0, q.Current())
}

func TestSpeed(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeSequential))
	assert.Equal(t, "2.0s", q.SpeedLabel())
	assert.Equal(t, 2*time.Second, q.Interval())

	q.SetSpeed(100)
	assert.Equal(t, MaxSpeed, q.Speed())
	q.SetSpeed(1)
	assert.Equal(t, MinSpeed, q.Speed())
	assert.Equal(t, "1.0s", q.SpeedLabel())

	require.True(t, q.Start())
	q.SetSpeed(15)
	assert.Equal(t, 1, m.Timers())

	m.Advance(2 * time.Second)
	assert.Equal(t, 0, q.Current(), "old interval no longer fires")
	m.Advance(time.Second)
	assert.Equal(t, 1, q.Current())
}

func TestModeAndSideChangesStop(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeSequential))
	require.True(t, q.Start())
	q.SetMode(ModeRandom)
	assert.False(t, q.Running())
	assert.Equal(t, 0, m.Timers())

	require.True(t, q.Start())
	q.SetHomeSide(court.SideRight)
	assert.False(t, q.Running())
	assert.Greater(t, q.Snapshot().Positions[0].X, court.NetX)
	assert.Less(t, q.Snapshot().Opponents[0].X, court.NetX)
}

func TestKeys(t *testing.T) {
	q, _ := newTestSequencer(t, seqOptions(ModeSequential))
	assert.True(t, q.Key(KeyToggle))
	assert.True(t, q.Running())
	assert.True(t, q.Key(KeyToggle))
	assert.False(t, q.Running())

	assert.True(t, q.Key(KeyRight))
	assert.Equal(t, court.SideRight, q.HomeSide())
	assert.True(t, q.Key(KeyLeft))
	assert.Equal(t, court.SideLeft, q.HomeSide())
	assert.False(t, q.Key("X"))
}

func TestPulseRunsWhileActive(t *testing.T) {
	q, m := newTestSequencer(t, seqOptions(ModeSequential))
	redraws := 0
	q.SetInvalidateCallback(func() { redraws++ })

	require.True(t, q.Start())
	assert.Equal(t, 1, m.FrameCallbacks())
	m.Frames(4)
	assert.InDelta(t, 0.2, q.Pulse(), 1e-9)
	assert.Greater(t, redraws, 4)

	m.Advance(q.Interval())
	assert.Equal(t, 0.0, q.Pulse(), "a new pick restarts the glow")

	q.Stop()
	assert.Equal(t, 0, m.FrameCallbacks())
	assert.Equal(t, 0.0, q.Pulse())
}

func TestParseHelpers(t *testing.T) {
	for _, m := range []Mode{ModeSequential, ModeRandom, ModeManual, ModeTactic} {
		got, ok := ParseMode(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ParseMode("bogus")
	assert.False(t, ok)

	z, ok := ParseZone("mid")
	assert.True(t, ok)
	assert.Equal(t, ZoneMid, z)

	h, ok := ParseDominantHand("left")
	assert.True(t, ok)
	assert.Equal(t, LeftHanded, h)
	assert.Equal(t, []int{FR, MR, BR}, h.Backhand())
}
