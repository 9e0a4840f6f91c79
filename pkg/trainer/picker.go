package trainer

// Rand is the randomness the pickers consume. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Mode selects how the next position is chosen.
type Mode int

const (
	ModeSequential Mode = iota
	ModeRandom
	ModeManual
	ModeTactic
)

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "seq"
	case ModeRandom:
		return "random"
	case ModeManual:
		return "manual"
	case ModeTactic:
		return "tactic"
	}
	return "unknown"
}

// ParseMode accepts the names produced by Mode.String, plus "sequential".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "seq", "sequential":
		return ModeSequential, true
	case "random":
		return ModeRandom, true
	case "manual":
		return ModeManual, true
	case "tactic":
		return ModeTactic, true
	}
	return ModeRandom, false
}

// Hand is the stroke direction shown for the active position.
type Hand int

const (
	Overhead Hand = iota
	Underhand
)

func (h Hand) String() string {
	if h == Underhand {
		return "underhand"
	}
	return "over-head"
}

// DominantHand is the opponent's playing hand.
type DominantHand int

const (
	RightHanded DominantHand = iota
	LeftHanded
)

func (h DominantHand) String() string {
	if h == LeftHanded {
		return "left"
	}
	return "right"
}

// ParseDominantHand accepts "right" or "left".
func ParseDominantHand(s string) (DominantHand, bool) {
	switch s {
	case "right":
		return RightHanded, true
	case "left":
		return LeftHanded, true
	}
	return RightHanded, false
}

// Backhand returns the opponent indices on the backhand side.
func (h DominantHand) Backhand() []int {
	if h == LeftHanded {
		return []int{FR, MR, BR}
	}
	return []int{FL, ML, BL}
}

// Shot is a stroke type used in hints.
type Shot int

const (
	ShotNone Shot = iota
	ShotLong
	ShotDrop
	ShotSmash
	ShotLift
	ShotBlock
	ShotDrive
)

func (s Shot) String() string {
	switch s {
	case ShotLong:
		return "long"
	case ShotDrop:
		return "drop"
	case ShotSmash:
		return "smash"
	case ShotLift:
		return "lift"
	case ShotBlock:
		return "block"
	case ShotDrive:
		return "drive"
	}
	return ""
}

// backShots are drawn uniformly for back-court picks.
var backShots = [...]Shot{ShotLong, ShotDrop, ShotSmash}

// hintShots are drawn for the tactic hint on front and mid picks.
var hintShots = [...]Shot{ShotLift, ShotBlock, ShotDrive, ShotSmash, ShotDrop}

// gravityTable maps each trained-side index to the (best, fallback) opponent
// targets that pull the opponent farthest from their base.
var gravityTable = [NumPositions][2]int{
	{BR, BL}, // FL
	{BL, BR}, // FR
	{BR, FR}, // ML
	{BL, FL}, // MR
	{FR, FL}, // BL
	{FL, FR}, // BR
}

// GravityTargets returns the (best, fallback) opponent indices for a trained
// position.
func GravityTargets(i int) (best, fallback int) {
	t := gravityTable[i]
	return t[0], t[1]
}

// ShotTarget returns the opponent area a shot lands in: drop to the front,
// smash to the mid court, long to the back.
func ShotTarget(s Shot, rnd Rand) int {
	pair := [2]int{BL, BR}
	switch s {
	case ShotDrop:
		pair = [2]int{FL, FR}
	case ShotSmash:
		pair = [2]int{ML, MR}
	}
	if rnd.Float64() < 0.5 {
		return pair[0]
	}
	return pair[1]
}

// ShotForTarget is the inverse of ShotTarget.
func ShotForTarget(opp int) Shot {
	switch {
	case opp <= FR:
		return ShotDrop
	case opp <= MR:
		return ShotSmash
	}
	return ShotLong
}

// pickHand decides the stroke direction: a coin flip for front and mid
// positions, always over-head at the back.
func pickHand(i int, rnd Rand) Hand {
	if IsBack(i) {
		return Overhead
	}
	if rnd.Float64() < 0.5 {
		return Overhead
	}
	return Underhand
}

// pickShotAndOpponent chooses the opponent target for a trained position. Back
// positions draw a shot that decides the target; other positions use the
// gravity table with an 80/20 split. The returned shot is ShotNone when no
// shot hint applies.
func pickShotAndOpponent(i int, rnd Rand) (Shot, int) {
	if IsBack(i) {
		shot := backShots[rnd.IntN(len(backShots))]
		return shot, ShotTarget(shot, rnd)
	}
	best, fallback := GravityTargets(i)
	if rnd.Float64() < 0.8 {
		return ShotNone, best
	}
	return ShotNone, fallback
}

// pickSequential walks the pool cyclically. The cursor is taken modulo the
// current pool size so it stays valid when zones change between picks.
func pickSequential(pool []int, cursor *int) int {
	idx := *cursor % len(pool)
	*cursor = idx + 1
	return pool[idx]
}

// pickRandom picks uniformly among pool entries other than current, falling
// back to the whole pool when that leaves nothing.
func pickRandom(pool []int, current int, rnd Rand) int {
	filtered := make([]int, 0, len(pool))
	for _, i := range pool {
		if i != current {
			filtered = append(filtered, i)
		}
	}
	if len(filtered) == 0 {
		filtered = pool
	}
	return filtered[rnd.IntN(len(filtered))]
}

func filterPool(pool []int, keep ...int) []int {
	var out []int
	for _, i := range pool {
		for _, k := range keep {
			if i == k {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// pickTacticPosition chooses the trained position in tactic mode: a 30% chance
// of a mid-court transition, otherwise alternating between front and back.
// nextBack holds the alternation state and is flipped on every alternation.
func pickTacticPosition(pool []int, nextBack *bool, rnd Rand) int {
	if rnd.Float64() < 0.3 {
		if mid := filterPool(pool, ML, MR); len(mid) > 0 {
			return mid[rnd.IntN(len(mid))]
		}
	}

	back := *nextBack
	*nextBack = !*nextBack

	var target []int
	if back {
		target = filterPool(pool, BL, BR)
	} else {
		target = filterPool(pool, FL, FR)
	}
	if len(target) > 0 {
		return target[rnd.IntN(len(target))]
	}
	return pool[rnd.IntN(len(pool))]
}

// farthestOpponent picks the opponent position maximizing distance from the
// opponent's current position, weighting backhand-side targets by 1.2. With
// no current position it picks a random backhand-side index.
func farthestOpponent(opponents []OppPosition, current int, hand DominantHand, rnd Rand) int {
	backhand := hand.Backhand()
	if current < 0 || current >= len(opponents) {
		return backhand[rnd.IntN(len(backhand))]
	}

	from := opponents[current].Point()
	best, bestScore := 0, -1.0
	for i, o := range opponents {
		score := from.Dist(o.Point())
		if containsInt(backhand, i) {
			score *= 1.2
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
