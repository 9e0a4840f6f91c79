package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/CourtCoach/pkg/drill"
	"github.com/OpenTraceLab/CourtCoach/pkg/trainer"
)

var (
	drillScript string
	drillSeed   uint64
)

var drillCmd = &cobra.Command{
	Use:   "drill [script-file]",
	Short: "Run a footwork drill without a window and print each pick",
	Long: `Run a drill script on a simulated clock and print every position the
trainer lights. The script comes from a file argument or --script; with
neither, the default sequential drill runs.

Script statements:
  side left|right        zones front mid back|all
  mode seq|random|manual|tactic
  speed 5-30             rounds N
  hand right|left        seed N        picks N`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := drill.NewParser()
		if err != nil {
			return fmt.Errorf("failed to build parser: %w", err)
		}

		var script *drill.Script
		switch {
		case len(args) == 1:
			script, err = p.ParseFile(args[0])
		default:
			script, err = p.ParseString(drillScript)
		}
		if err != nil {
			return err
		}

		d, err := drill.Compile(script, drill.DefaultDrill())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			d.Seed = drillSeed
		}

		fmt.Fprintf(os.Stdout, "Drill: mode %s, side %s, interval %s\n", d.Options.Mode, d.Options.Side, time.Duration(d.Options.Speed)*trainer.SpeedUnit)
		res, err := drill.Run(d, os.Stdout, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Picks: %d  Rounds: %d  Elapsed: %s\n", len(res.Picks), res.RoundsDone, res.Elapsed)
		return nil
	},
}

func init() {
	drillCmd.Flags().StringVar(&drillScript, "script", "", "inline drill script")
	drillCmd.Flags().Uint64Var(&drillSeed, "seed", 1, "random seed, overrides the script")
	rootCmd.AddCommand(drillCmd)
}
