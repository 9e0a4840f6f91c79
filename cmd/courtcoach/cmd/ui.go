package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/CourtCoach/internal/config"
	"github.com/OpenTraceLab/CourtCoach/internal/ui"
	"github.com/OpenTraceLab/CourtCoach/pkg/board"
	"github.com/OpenTraceLab/CourtCoach/pkg/court"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

var (
	trainerMode  string
	trainerSide  string
	trainerSpeed int

	boardCourt string
	boardDash  string
)

var trainerCmd = &cobra.Command{
	Use:   "trainer",
	Short: "Open the footwork trainer",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := windowOptions(ui.ViewTrainer)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("mode") {
			mode, ok := trainer.ParseMode(strings.ToLower(trainerMode))
			if !ok {
				return fmt.Errorf("unknown mode %q", trainerMode)
			}
			opts.Trainer.Mode = mode
		}
		if cmd.Flags().Changed("side") {
			side, ok := court.ParseHomeSide(strings.ToLower(trainerSide))
			if !ok {
				return fmt.Errorf("unknown side %q", trainerSide)
			}
			opts.Trainer.Side = side
		}
		if cmd.Flags().Changed("speed") {
			opts.Trainer.Speed = min(max(trainerSpeed, trainer.MinSpeed), trainer.MaxSpeed)
		}
		log.Info().Str("mode", opts.Trainer.Mode.String()).Str("side", opts.Trainer.Side.String()).Msg("starting trainer")
		return ui.Run(opts)
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the tactics board",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := windowOptions(ui.ViewBoard)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("court") {
			ct, ok := court.ParseCourtType(strings.ToLower(boardCourt))
			if !ok {
				return fmt.Errorf("unknown court type %q", boardCourt)
			}
			opts.Board.CourtType = ct
		}
		if cmd.Flags().Changed("dash") {
			d, ok := board.ParseDash(strings.ToLower(boardDash))
			if !ok {
				return fmt.Errorf("unknown line style %q", boardDash)
			}
			opts.Board.Dash = d
		}
		log.Info().Str("court", opts.Board.CourtType.String()).Msg("starting board")
		return ui.Run(opts)
	},
}

// windowOptions builds UI options from the loaded config.
func windowOptions(view ui.View) (ui.Options, error) {
	opts := ui.DefaultOptions()
	opts.View = view
	opts.LogLevel = config.GetString("logLevel")
	opts.Verbose = verbose
	opts.LogOut = os.Stderr
	if w := config.GetInt("window.width"); w > 0 {
		opts.Width = w
	}
	if h := config.GetInt("window.height"); h > 0 {
		opts.Height = h
	}

	var err error
	if opts.Trainer, err = config.Trainer(); err != nil {
		return opts, err
	}
	if opts.Board, err = config.Board(); err != nil {
		return opts, err
	}
	return opts, nil
}

func init() {
	trainerCmd.Flags().StringVar(&trainerMode, "mode", "random", "pick mode: seq, random, manual or tactic")
	trainerCmd.Flags().StringVar(&trainerSide, "side", "left", "trained half: left or right")
	trainerCmd.Flags().IntVar(&trainerSpeed, "speed", trainer.DefaultSpeed, fmt.Sprintf("interval slider value (%d-%d, x200ms)", trainer.MinSpeed, trainer.MaxSpeed))

	boardCmd.Flags().StringVar(&boardCourt, "court", "doubles", "court type: doubles or singles")
	boardCmd.Flags().StringVar(&boardDash, "dash", "solid", "initial line style: solid or dashed")

	rootCmd.AddCommand(trainerCmd)
	rootCmd.AddCommand(boardCmd)
}
