package drill

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

func TestParseScript(t *testing.T) {
	input := `
	# warm-up
	side right; zones front back
	mode tactic; speed 12
	rounds 2; hand left; seed 7
	picks 40
	`

	d, err := Parse(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if d.Options.Side != court.SideRight {
		t.Errorf("Expected side right, got %v", d.Options.Side)
	}
	if d.Options.Zones != (trainer.Zones{Front: true, Back: true}) {
		t.Errorf("Unexpected zones %+v", d.Options.Zones)
	}
	if d.Options.Mode != trainer.ModeTactic {
		t.Errorf("Expected tactic mode, got %v", d.Options.Mode)
	}
	if d.Options.Speed != 12 {
		t.Errorf("Expected speed 12, got %d", d.Options.Speed)
	}
	if d.Options.RoundTarget != 2 {
		t.Errorf("Expected 2 rounds, got %d", d.Options.RoundTarget)
	}
	if d.Options.OppHand != trainer.LeftHanded {
		t.Errorf("Expected left-handed opponent, got %v", d.Options.OppHand)
	}
	if d.Seed != 7 || d.Picks != 40 {
		t.Errorf("Expected seed 7 and 40 picks, got %d and %d", d.Seed, d.Picks)
	}
}

func TestParseEmptyScriptUsesDefaults(t *testing.T) {
	d, err := Parse("")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if d.Options.Mode != trainer.ModeSequential {
		t.Errorf("Expected sequential default, got %v", d.Options.Mode)
	}
	if d.Options.Zones != trainer.AllZones {
		t.Errorf("Expected all zones, got %+v", d.Options.Zones)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown mode", "mode sideways", `unknown mode "sideways"`},
		{"unknown zone", "zones front deep", `unknown zone "deep"`},
		{"speed range", "speed 40", "out of range"},
		{"bad hand", "hand both", `unknown hand "both"`},
		{"syntax", "speed fast", "parse error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunSequentialRound(t *testing.T) {
	d, err := Parse("mode seq; rounds 1")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	var out bytes.Buffer
	res, err := Run(d, &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(res.Picks) != trainer.NumPositions {
		t.Fatalf("Expected %d picks, got %d", trainer.NumPositions, len(res.Picks))
	}
	if res.RoundsDone != 1 {
		t.Errorf("Expected 1 round, got %d", res.RoundsDone)
	}
	labels := []string{"Front left", "Front right", "Mid left", "Mid right", "Back left", "Back right"}
	for i, p := range res.Picks {
		if p.Position != labels[i] {
			t.Errorf("Pick %d: expected %q, got %q", i+1, labels[i], p.Position)
		}
		if p.Round != 1 {
			t.Errorf("Pick %d: expected round 1, got %d", i+1, p.Round)
		}
	}
	if got := res.Picks[5].Elapsed; got != 10*time.Second {
		t.Errorf("Expected last pick at 10s, got %v", got)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != trainer.NumPositions {
		t.Fatalf("Expected %d output lines, got %d:\n%s", trainer.NumPositions, len(lines), out.String())
	}
	if !strings.Contains(lines[0], "Front left") {
		t.Errorf("Unexpected first line %q", lines[0])
	}
}

func TestRunPickLimit(t *testing.T) {
	d, err := Parse("mode random; picks 5")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	var out bytes.Buffer
	res, err := Run(d, &out, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Picks) != 5 {
		t.Errorf("Expected 5 picks, got %d", len(res.Picks))
	}
}

func TestRunManualMode(t *testing.T) {
	d, err := Parse("mode manual; zones back; rounds 2")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	res, err := Run(d, &bytes.Buffer{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Picks) != 4 {
		t.Errorf("Expected 4 picks, got %d", len(res.Picks))
	}
	if res.Elapsed != 0 {
		t.Errorf("Manual run should not advance the clock, got %v", res.Elapsed)
	}
}

func TestRunTacticBackShots(t *testing.T) {
	d, err := Parse("mode tactic; picks 200; seed 3")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	res, err := Run(d, &bytes.Buffer{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, p := range res.Picks {
		if p.Tactic == nil {
			t.Fatalf("Pick %d has no tactic hint", p.N)
		}
		if !strings.HasPrefix(p.Position, "Back") {
			continue
		}
		var want string
		switch p.Shot {
		case trainer.ShotDrop:
			want = "Opp. front"
		case trainer.ShotSmash:
			want = "Opp. mid"
		case trainer.ShotLong:
			want = "Opp. back"
		default:
			t.Fatalf("Pick %d: back position without shot", p.N)
		}
		if !strings.HasPrefix(p.Opponent, want) {
			t.Errorf("Pick %d: %s should land in %q, got %q", p.N, p.Shot, want, p.Opponent)
		}
	}
}

func TestRunSameSeedSameOutput(t *testing.T) {
	d, err := Parse("mode random; picks 30; seed 42")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	var a, b bytes.Buffer
	if _, err := Run(d, &a, zerolog.Nop()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := Run(d, &b, zerolog.Nop()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if a.String() != b.String() {
		t.Error("Expected identical output for identical seeds")
	}
}

func TestRunNoZones(t *testing.T) {
	d := DefaultDrill()
	d.Options.Zones = trainer.Zones{}
	if _, err := Run(d, &bytes.Buffer{}, zerolog.Nop()); err == nil {
		t.Fatal("Expected error for empty zone selection")
	}
}
