package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/CourtCoach/internal/config"
	"github.com/OpenTraceLab/CourtCoach/internal/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	log = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "courtcoach",
	Short: "Badminton footwork trainer and tactics board",
	Long: `CourtCoach is a coaching canvas toolkit for badminton:
  - a footwork trainer that lights standing positions on a perspective court
  - a tactics board for placing players and the shuttle and sketching patterns
  - headless drill scripts for checking a footwork sequence without a window

Examples:
  courtcoach trainer --mode tactic --side right      # Footwork trainer
  courtcoach board --court singles                   # Tactics board
  courtcoach drill --script "mode seq; rounds 2"     # Print a drill run`,
	Version:       "0.9.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		log = logging.New(os.Stderr, config.GetString("logLevel"), verbose)
		if used := config.Used(); used != "" {
			log.Debug().Str("file", used).Msg("config loaded")
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./courtcoach.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
