package trainer

import "github.com/OpenTraceLab/CourtCoach/pkg/court"

// Zone is a third of a player's own court half.
type Zone int

const (
	ZoneFront Zone = iota
	ZoneMid
	ZoneBack
)

func (z Zone) String() string {
	switch z {
	case ZoneFront:
		return "front"
	case ZoneMid:
		return "mid"
	case ZoneBack:
		return "back"
	}
	return "unknown"
}

// ParseZone accepts "front", "mid" or "back".
func ParseZone(s string) (Zone, bool) {
	switch s {
	case "front":
		return ZoneFront, true
	case "mid":
		return ZoneMid, true
	case "back":
		return ZoneBack, true
	}
	return ZoneFront, false
}

// Zones toggles which zones are eligible for selection.
type Zones struct {
	Front bool
	Mid   bool
	Back  bool
}

// AllZones has every zone enabled.
var AllZones = Zones{Front: true, Mid: true, Back: true}

// Enabled reports whether z is switched on.
func (z Zones) Enabled(zone Zone) bool {
	switch zone {
	case ZoneFront:
		return z.Front
	case ZoneMid:
		return z.Mid
	case ZoneBack:
		return z.Back
	}
	return false
}

// Toggle returns a copy with zone flipped.
func (z Zones) Toggle(zone Zone) Zones {
	switch zone {
	case ZoneFront:
		z.Front = !z.Front
	case ZoneMid:
		z.Mid = !z.Mid
	case ZoneBack:
		z.Back = !z.Back
	}
	return z
}

// None reports whether every zone is off.
func (z Zones) None() bool {
	return !z.Front && !z.Mid && !z.Back
}

// TrainPosition is one of the six standing points on the trained side.
type TrainPosition struct {
	ID    string
	X, Y  float64 // meters
	Zone  Zone
	Label string
}

// OppPosition is one of the six opponent standing points.
type OppPosition struct {
	ID    string
	X, Y  float64 // meters
	Label string
}

// Point returns the position in court meters.
func (p TrainPosition) Point() court.Point {
	return court.Pt(p.X, p.Y)
}

// Point returns the position in court meters.
func (p OppPosition) Point() court.Point {
	return court.Pt(p.X, p.Y)
}

// Position indices, shared by both sides: front-left, front-right, mid-left,
// mid-right, back-left, back-right.
const (
	FL = iota
	FR
	ML
	MR
	BL
	BR

	NumPositions
)

// IsBack reports whether index i is a back-court position.
func IsBack(i int) bool {
	return i == BL || i == BR
}

// depthColumns returns the front, mid and back X coordinates for a half.
func depthColumns(left bool) (front, mid, back float64) {
	if left {
		front = court.NetX - court.ShortServiceLine
		mid = (court.LongServiceLine + front) / 2
		back = court.LongServiceLine
		return
	}
	front = court.NetX + court.ShortServiceLine
	mid = (court.Width - court.LongServiceLine + front) / 2
	back = court.Width - court.LongServiceLine
	return
}

var positionLabels = [NumPositions]string{
	"Front left", "Front right", "Mid left", "Mid right", "Back left", "Back right",
}

var opponentLabels = [NumPositions]string{
	"Opp. front left", "Opp. front right", "Opp. mid left",
	"Opp. mid right", "Opp. back left", "Opp. back right",
}

// BuildPositions returns the six trained-side positions for the given home side.
func BuildPositions(side court.HomeSide) []TrainPosition {
	f, m, b := depthColumns(side == court.SideLeft)
	top := court.SideMargin
	bot := court.Height - court.SideMargin

	return []TrainPosition{
		{ID: "FL", X: f, Y: top, Zone: ZoneFront, Label: positionLabels[FL]},
		{ID: "FR", X: f, Y: bot, Zone: ZoneFront, Label: positionLabels[FR]},
		{ID: "ML", X: m, Y: top, Zone: ZoneMid, Label: positionLabels[ML]},
		{ID: "MR", X: m, Y: bot, Zone: ZoneMid, Label: positionLabels[MR]},
		{ID: "BL", X: b, Y: top, Zone: ZoneBack, Label: positionLabels[BL]},
		{ID: "BR", X: b, Y: bot, Zone: ZoneBack, Label: positionLabels[BR]},
	}
}

// BuildOpponents returns the six opponent positions: the same layout mirrored
// onto the other half of the court.
func BuildOpponents(side court.HomeSide) []OppPosition {
	f, m, b := depthColumns(side != court.SideLeft)
	top := court.SideMargin
	bot := court.Height - court.SideMargin

	return []OppPosition{
		{ID: "OFL", X: f, Y: top, Label: opponentLabels[FL]},
		{ID: "OFR", X: f, Y: bot, Label: opponentLabels[FR]},
		{ID: "OML", X: m, Y: top, Label: opponentLabels[ML]},
		{ID: "OMR", X: m, Y: bot, Label: opponentLabels[MR]},
		{ID: "OBL", X: b, Y: top, Label: opponentLabels[BL]},
		{ID: "OBR", X: b, Y: bot, Label: opponentLabels[BR]},
	}
}

// ActivePool returns the indices of positions whose zone is enabled, in index
// order.
func ActivePool(positions []TrainPosition, zones Zones) []int {
	pool := make([]int, 0, len(positions))
	for i, p := range positions {
		if zones.Enabled(p.Zone) {
			pool = append(pool, i)
		}
	}
	return pool
}
