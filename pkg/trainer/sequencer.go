// Package trainer implements the footwork training sequencer: it lights one of
// six standing positions at a time, picks where the opponent is sent, and
// counts rounds while a timer or a tap advances the drill.
package trainer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/sched"
)

// Speed slider bounds. The pick interval is the slider value times SpeedUnit.
const (
	MinSpeed     = 5
	MaxSpeed     = 30
	DefaultSpeed = 10
	SpeedUnit    = 200 * time.Millisecond
)

// RoundOptions are the round targets offered in the HUD; 0 means unlimited.
var RoundOptions = []int{10, 20, 30, 0}

// TacticHint is the text shown in tactic mode.
type TacticHint struct {
	Shot     Shot
	Opponent string
	Mine     string
}

func (h TacticHint) String() string {
	return fmt.Sprintf("%s: %s -> %s", h.Mine, h.Shot, h.Opponent)
}

// Options configures a new Sequencer.
type Options struct {
	Side        court.HomeSide
	Zones       Zones
	Mode        Mode
	Speed       int
	RoundTarget int
	OppHand     DominantHand

	// Rand defaults to a time-seeded PCG source.
	Rand   Rand
	Logger zerolog.Logger
}

// DefaultOptions returns the trainer's start-up settings.
func DefaultOptions() Options {
	return Options{
		Side:    court.SideLeft,
		Zones:   AllZones,
		Mode:    ModeRandom,
		Speed:   DefaultSpeed,
		OppHand: RightHanded,
		Logger:  zerolog.Nop(),
	}
}

// Snapshot is a copy of the sequencer state for rendering and display.
type Snapshot struct {
	Side      court.HomeSide
	Zones     Zones
	Mode      Mode
	Running   bool
	Positions []TrainPosition
	Opponents []OppPosition

	Current  int // -1 when nothing is lit
	Opponent int // -1 when nothing is lit
	Hand     Hand
	OppHand  DominantHand
	Shot     Shot
	Tactic   *TacticHint

	Speed       int
	RoundTarget int
	RoundsDone  int
	RoundCount  int
	Pulse       float64
}

// Sequencer owns the footwork drill state. It is not safe for concurrent use;
// every method is expected to run on the host's event loop.
type Sequencer struct {
	sched sched.Scheduler
	rnd   Rand
	log   zerolog.Logger

	side        court.HomeSide
	zones       Zones
	mode        Mode
	speed       int
	roundTarget int
	oppHand     DominantHand

	positions []TrainPosition
	opponents []OppPosition

	running  bool
	current  int
	opponent int
	hand     Hand
	shot     Shot
	tactic   *TacticHint

	roundCounter int
	roundsDone   int
	seqCursor    int
	tacticBack   bool // next tactic alternation lands in the back court

	// generation changes on every Start so a stale deferred stop is ignored.
	generation int

	anim       sched.Animator
	cancelTick sched.Cancel

	onInvalidate func()
	onPick       func(Snapshot)
}

// New creates a sequencer driven by s.
func New(s sched.Scheduler, opts Options) *Sequencer {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	q := &Sequencer{
		sched:       s,
		rnd:         opts.Rand,
		log:         opts.Logger,
		side:        opts.Side,
		zones:       opts.Zones,
		mode:        opts.Mode,
		speed:       clampSpeed(opts.Speed),
		roundTarget: max(opts.RoundTarget, 0),
		oppHand:     opts.OppHand,
		current:     -1,
		opponent:    -1,
		tacticBack:  true,
	}
	q.positions = BuildPositions(q.side)
	q.opponents = BuildOpponents(q.side)
	q.anim.Pulse.Reset()
	q.anim.OnFrame = q.invalidate
	return q
}

func clampSpeed(v int) int {
	if v == 0 {
		return DefaultSpeed
	}
	return min(max(v, MinSpeed), MaxSpeed)
}

// SetInvalidateCallback sets a callback to notify the host when a redraw is needed.
func (q *Sequencer) SetInvalidateCallback(cb func()) {
	q.onInvalidate = cb
}

// SetPickCallback sets a callback run after every pick with the new state.
func (q *Sequencer) SetPickCallback(cb func(Snapshot)) {
	q.onPick = cb
}

func (q *Sequencer) invalidate() {
	if q.onInvalidate != nil {
		q.onInvalidate()
	}
}

// Pool returns the indices of positions whose zone is enabled.
func (q *Sequencer) Pool() []int {
	return ActivePool(q.positions, q.zones)
}

// Interval returns the time between automatic picks.
func (q *Sequencer) Interval() time.Duration {
	return time.Duration(q.speed) * SpeedUnit
}

// Running reports whether a drill is in progress.
func (q *Sequencer) Running() bool { return q.running }

// Mode returns the current picking mode.
func (q *Sequencer) Mode() Mode { return q.mode }

// Current returns the lit position index, or -1.
func (q *Sequencer) Current() int { return q.current }

// Opponent returns the lit opponent index, or -1.
func (q *Sequencer) Opponent() int { return q.opponent }

// RoundsDone returns the number of completed rounds since Start.
func (q *Sequencer) RoundsDone() int { return q.roundsDone }

// Pulse returns the glow animation value.
func (q *Sequencer) Pulse() float64 { return q.anim.Pulse.Value() }

// Snapshot returns a copy of the state.
func (q *Sequencer) Snapshot() Snapshot {
	s := Snapshot{
		Side:        q.side,
		Zones:       q.zones,
		Mode:        q.mode,
		Running:     q.running,
		Positions:   append([]TrainPosition(nil), q.positions...),
		Opponents:   append([]OppPosition(nil), q.opponents...),
		Current:     q.current,
		Opponent:    q.opponent,
		Hand:        q.hand,
		OppHand:     q.oppHand,
		Shot:        q.shot,
		Speed:       q.speed,
		RoundTarget: q.roundTarget,
		RoundsDone:  q.roundsDone,
		RoundCount:  q.roundCounter,
		Pulse:       q.anim.Pulse.Value(),
	}
	if q.tactic != nil {
		h := *q.tactic
		s.Tactic = &h
	}
	return s
}

// Step performs one pick for the current mode. It is a no-op, returning false,
// when no zone is enabled.
func (q *Sequencer) Step() bool {
	pool := q.Pool()
	if len(pool) == 0 {
		return false
	}

	var my, opp int
	switch q.mode {
	case ModeSequential:
		my = pickSequential(pool, &q.seqCursor)
		q.hand = pickHand(my, q.rnd)
		q.shot, opp = pickShotAndOpponent(my, q.rnd)
	case ModeRandom, ModeManual:
		my = pickRandom(pool, q.current, q.rnd)
		q.hand = pickHand(my, q.rnd)
		q.shot, opp = pickShotAndOpponent(my, q.rnd)
	case ModeTactic:
		my, opp = q.stepTactic(pool)
	}

	q.current = my
	q.opponent = opp
	q.anim.Pulse.Reset()
	q.log.Debug().
		Str("mode", q.mode.String()).
		Int("position", my).
		Int("opponent", opp).
		Str("hand", q.hand.String()).
		Str("shot", q.shot.String()).
		Msg("pick")

	q.countPick(len(pool))
	if q.onPick != nil {
		q.onPick(q.Snapshot())
	}
	q.invalidate()
	return true
}

func (q *Sequencer) stepTactic(pool []int) (int, int) {
	my := pickTacticPosition(pool, &q.tacticBack, q.rnd)
	q.hand = pickHand(my, q.rnd)

	var opp int
	hint := TacticHint{Mine: q.positions[my].Label}
	if IsBack(my) {
		q.shot, opp = pickShotAndOpponent(my, q.rnd)
		hint.Shot = q.shot
	} else {
		q.shot = ShotNone
		opp = farthestOpponent(q.opponents, q.opponent, q.oppHand, q.rnd)
		hint.Shot = hintShots[q.rnd.IntN(len(hintShots))]
	}
	hint.Opponent = q.opponents[opp].Label
	q.tactic = &hint
	return my, opp
}

// countPick advances the round counter. A round is complete after as many
// picks as there are active positions.
func (q *Sequencer) countPick(poolSize int) {
	q.roundCounter++
	if q.roundCounter < poolSize {
		return
	}
	q.roundCounter = 0
	q.roundsDone++
	q.log.Debug().Int("rounds", q.roundsDone).Int("target", q.roundTarget).Msg("round complete")

	if q.roundTarget > 0 && q.roundsDone >= q.roundTarget && q.running {
		gen := q.generation
		q.sched.Defer(func() {
			if q.running && q.generation == gen {
				q.log.Info().Int("rounds", q.roundsDone).Msg("round target reached")
				q.Stop()
			}
		})
	}
}

// Start begins a drill: counters reset, the first pick happens immediately,
// the glow animator starts and, outside manual mode, the auto-advance timer is
// armed. It returns false when no zone is enabled.
func (q *Sequencer) Start() bool {
	if len(q.Pool()) == 0 {
		q.log.Debug().Msg("start ignored: no active zones")
		return false
	}
	q.stopTimers()

	q.roundCounter = 0
	q.roundsDone = 0
	q.seqCursor = 0
	q.tactic = nil
	q.shot = ShotNone
	q.running = true
	q.generation++

	q.log.Info().
		Str("mode", q.mode.String()).
		Str("side", q.side.String()).
		Dur("interval", q.Interval()).
		Int("rounds", q.roundTarget).
		Msg("training started")

	q.Step()
	q.anim.Start(q.sched)
	if q.mode != ModeManual {
		q.armTimer()
	}
	q.invalidate()
	return true
}

func (q *Sequencer) armTimer() {
	if q.cancelTick != nil {
		q.cancelTick()
	}
	q.cancelTick = q.sched.OnTick(q.Interval(), func() {
		if q.running {
			q.Step()
		}
	})
}

func (q *Sequencer) stopTimers() {
	if q.cancelTick != nil {
		q.cancelTick()
		q.cancelTick = nil
	}
	q.anim.Stop()
}

// Stop ends the drill, cancels the timer and animator and clears the lit
// positions and hints.
func (q *Sequencer) Stop() {
	wasRunning := q.running
	q.running = false
	q.current = -1
	q.opponent = -1
	q.tactic = nil
	q.shot = ShotNone
	q.stopTimers()
	if wasRunning {
		q.log.Info().Int("rounds", q.roundsDone).Msg("training stopped")
	}
	q.invalidate()
}

// Toggle starts a stopped drill or stops a running one.
func (q *Sequencer) Toggle() {
	if q.running {
		q.Stop()
		return
	}
	q.Start()
}

// Tap advances a running manual-mode drill. Taps in other modes are ignored.
func (q *Sequencer) Tap() bool {
	if !q.running || q.mode != ModeManual {
		return false
	}
	return q.Step()
}

// SetMode switches the picking mode, stopping a running drill.
func (q *Sequencer) SetMode(m Mode) {
	q.mode = m
	if q.running {
		q.Stop()
	}
	q.invalidate()
}

// SetHomeSide switches the trained half, rebuilding both position sets and
// stopping a running drill.
func (q *Sequencer) SetHomeSide(side court.HomeSide) {
	q.side = side
	q.positions = BuildPositions(side)
	q.opponents = BuildOpponents(side)
	if q.running {
		q.Stop()
	}
	q.invalidate()
}

// HomeSide returns the trained half.
func (q *Sequencer) HomeSide() court.HomeSide { return q.side }

// Zones returns the zone toggles.
func (q *Sequencer) Zones() Zones { return q.zones }

// ToggleZone flips a zone. A running drill is stopped and restarted once the
// new pool is in effect.
func (q *Sequencer) ToggleZone(z Zone) {
	q.zones = q.zones.Toggle(z)
	if q.running {
		q.Stop()
		q.sched.Defer(func() {
			q.Start()
		})
	}
	q.invalidate()
}

// SetZones replaces all zone toggles. It stops a running drill without
// restarting it.
func (q *Sequencer) SetZones(z Zones) {
	q.zones = z
	if q.running {
		q.Stop()
	}
	q.invalidate()
}

// SetSpeed sets the slider value (clamped to MinSpeed..MaxSpeed). A running
// timer is re-armed with the new interval.
func (q *Sequencer) SetSpeed(v int) {
	q.speed = min(max(v, MinSpeed), MaxSpeed)
	if q.running && q.mode != ModeManual {
		q.armTimer()
	}
	q.invalidate()
}

// Speed returns the slider value.
func (q *Sequencer) Speed() int { return q.speed }

// SpeedLabel formats the interval for display, e.g. "2.0s".
func (q *Sequencer) SpeedLabel() string {
	return fmt.Sprintf("%.1fs", float64(q.speed)*SpeedUnit.Seconds())
}

// SetRoundTarget sets the number of rounds after which training stops; 0 means
// unlimited.
func (q *Sequencer) SetRoundTarget(n int) {
	q.roundTarget = max(n, 0)
	q.invalidate()
}

// RoundTarget returns the round target.
func (q *Sequencer) RoundTarget() int { return q.roundTarget }

// SetOpponentHand sets the opponent's dominant hand used by tactic mode.
func (q *Sequencer) SetOpponentHand(h DominantHand) {
	q.oppHand = h
	q.invalidate()
}

// OpponentHand returns the opponent's dominant hand.
func (q *Sequencer) OpponentHand() DominantHand { return q.oppHand }

// ShowManualHint reports whether the "tap to advance" hint is visible.
func (q *Sequencer) ShowManualHint() bool {
	return q.running && q.mode == ModeManual
}

// ShowRoundCounter reports whether the round counter is visible.
func (q *Sequencer) ShowRoundCounter() bool {
	return q.mode != ModeManual && q.roundTarget > 0 && q.running
}

// ShowTacticHint reports whether the tactic hint is visible.
func (q *Sequencer) ShowTacticHint() bool {
	return q.mode == ModeTactic && q.running && q.tactic != nil
}

// Keys understood by Key.
const (
	KeyToggle = "Space"
	KeyLeft   = "Left"
	KeyRight  = "Right"
)

// Key applies a keyboard shortcut: Space toggles training, Left and Right pick
// the home side. It reports whether the key was handled.
func (q *Sequencer) Key(name string) bool {
	switch name {
	case KeyToggle:
		q.Toggle()
	case KeyLeft:
		q.SetHomeSide(court.SideLeft)
	case KeyRight:
		q.SetHomeSide(court.SideRight)
	default:
		return false
	}
	return true
}
