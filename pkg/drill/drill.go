// Package drill parses drill scripts and runs the footwork sequencer headless,
// printing each pick. A script is a list of settings:
//
//	side left; zones front back
//	mode tactic; speed 12; rounds 2
//	hand left; seed 7
package drill

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/rs/zerolog"

	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/sched"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

// Pick limits for a run.
const (
	DefaultPicks = 12
	MaxPicks     = 10000
)

// Parser parses drill scripts.
type Parser struct {
	parser *participle.Parser[Script]
}

// NewParser creates a new drill script parser
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Script](
		participle.Lexer(DrillLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// ParseString parses a script from a string
func (p *Parser) ParseString(input string) (*Script, error) {
	script, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return script, nil
}

// ParseFile parses a script from a file path
func (p *Parser) ParseFile(filename string) (*Script, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	script, err := p.parser.Parse(filename, file)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return script, nil
}

// Drill is a compiled script: sequencer options plus run limits.
type Drill struct {
	Options trainer.Options
	Seed    uint64
	Picks   int // 0 means DefaultPicks when no round target is set
}

// DefaultDrill returns the settings used for anything a script leaves out.
func DefaultDrill() Drill {
	opts := trainer.DefaultOptions()
	opts.Mode = trainer.ModeSequential
	return Drill{Options: opts, Seed: 1}
}

// Compile applies the script's statements on top of base.
func Compile(s *Script, base Drill) (Drill, error) {
	d := base
	for _, st := range s.Statements {
		if err := d.apply(st); err != nil {
			return Drill{}, fmt.Errorf("%s: %w", st.Pos, err)
		}
	}
	return d, nil
}

func (d *Drill) apply(st *Statement) error {
	switch {
	case st.Side != nil:
		side, ok := court.ParseHomeSide(strings.ToLower(*st.Side))
		if !ok {
			return fmt.Errorf("unknown side %q", *st.Side)
		}
		d.Options.Side = side
	case st.Zones != nil:
		var z trainer.Zones
		for _, name := range st.Zones {
			if strings.EqualFold(name, "all") {
				z = trainer.AllZones
				continue
			}
			zone, ok := trainer.ParseZone(strings.ToLower(name))
			if !ok {
				return fmt.Errorf("unknown zone %q", name)
			}
			if !z.Enabled(zone) {
				z = z.Toggle(zone)
			}
		}
		d.Options.Zones = z
	case st.Mode != nil:
		mode, ok := trainer.ParseMode(strings.ToLower(*st.Mode))
		if !ok {
			return fmt.Errorf("unknown mode %q", *st.Mode)
		}
		d.Options.Mode = mode
	case st.Speed != nil:
		if *st.Speed < trainer.MinSpeed || *st.Speed > trainer.MaxSpeed {
			return fmt.Errorf("speed %d out of range %d-%d", *st.Speed, trainer.MinSpeed, trainer.MaxSpeed)
		}
		d.Options.Speed = *st.Speed
	case st.Rounds != nil:
		d.Options.RoundTarget = *st.Rounds
	case st.Hand != nil:
		hand, ok := trainer.ParseDominantHand(strings.ToLower(*st.Hand))
		if !ok {
			return fmt.Errorf("unknown hand %q", *st.Hand)
		}
		d.Options.OppHand = hand
	case st.Seed != nil:
		d.Seed = *st.Seed
	case st.Picks != nil:
		if *st.Picks > MaxPicks {
			return fmt.Errorf("picks %d exceeds %d", *st.Picks, MaxPicks)
		}
		d.Picks = *st.Picks
	}
	return nil
}

// Parse parses and compiles a script against DefaultDrill.
func Parse(src string) (Drill, error) {
	p, err := NewParser()
	if err != nil {
		return Drill{}, err
	}
	s, err := p.ParseString(src)
	if err != nil {
		return Drill{}, err
	}
	return Compile(s, DefaultDrill())
}

// Pick is one line of a run.
type Pick struct {
	N        int
	Elapsed  time.Duration
	Round    int
	Position string
	Opponent string
	Hand     trainer.Hand
	Shot     trainer.Shot
	Tactic   *trainer.TacticHint
}

func (p Pick) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d %7s  round %-2d %-11s %-9s -> %s", p.N, p.Elapsed, p.Round, p.Position, p.Hand, p.Opponent)
	if p.Shot != trainer.ShotNone {
		fmt.Fprintf(&b, " (%s)", p.Shot)
	}
	if p.Tactic != nil {
		fmt.Fprintf(&b, "  [%s]", p.Tactic)
	}
	return b.String()
}

// Result summarizes a run.
type Result struct {
	Picks      []Pick
	RoundsDone int
	Elapsed    time.Duration
}

// limit returns how many picks the run may take.
func (d Drill) limit() int {
	switch {
	case d.Picks > 0:
		return d.Picks
	case d.Options.RoundTarget > 0:
		return MaxPicks
	}
	return DefaultPicks
}

// Run drives a sequencer on a manual clock until it stops by itself or the
// pick limit is reached, writing one line per pick to w.
func Run(d Drill, w io.Writer, log zerolog.Logger) (Result, error) {
	start := time.Unix(0, 0)
	clock := sched.NewManual(start)

	opts := d.Options
	opts.Rand = rand.New(rand.NewPCG(d.Seed, d.Seed^0x5bd1e995))
	opts.Logger = log
	seq := trainer.New(clock, opts)

	var res Result
	var werr error
	limit := d.limit()
	seq.SetPickCallback(func(s trainer.Snapshot) {
		if len(res.Picks) >= limit {
			return
		}
		p := Pick{
			N:        len(res.Picks) + 1,
			Elapsed:  clock.Now().Sub(start),
			Round:    s.RoundsDone + 1,
			Position: s.Positions[s.Current].Label,
			Opponent: s.Opponents[s.Opponent].Label,
			Hand:     s.Hand,
			Shot:     s.Shot,
			Tactic:   s.Tactic,
		}
		if s.RoundCount == 0 {
			p.Round = s.RoundsDone
		}
		res.Picks = append(res.Picks, p)
		if werr == nil {
			_, werr = fmt.Fprintln(w, p)
		}
	})

	if !seq.Start() {
		return res, fmt.Errorf("no active zones")
	}
	for seq.Running() && len(res.Picks) < limit {
		if seq.Mode() == trainer.ModeManual {
			seq.Tap()
			clock.Flush()
			continue
		}
		clock.Advance(seq.Interval())
	}
	seq.Stop()

	res.RoundsDone = seq.RoundsDone()
	res.Elapsed = clock.Now().Sub(start)
	log.Debug().Int("picks", len(res.Picks)).Int("rounds", res.RoundsDone).Dur("elapsed", res.Elapsed).Msg("drill finished")
	if werr != nil {
		return res, fmt.Errorf("write pick: %w", werr)
	}
	return res, nil
}
