package cmd

import (
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/cli"

	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps [n]",
	Short: "Show or set today's step count",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSteps,
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, args []string) error {
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if len(args) == 1 {
		if err := tr.SetSteps(cmd.Context(), args[0]); err != nil {
			return err
		}
	}

	g := tr.Goals()
	fmt.Printf("  %s on %s: +%s\n", cli.FormatSteps(tr.Steps()), tr.Today(), cli.FormatKcal(float64(g.StepCalories)))
	if _, ok := tr.Profile(); ok {
		fmt.Printf("  Goal is now %s\n", cli.FormatKcal(float64(g.Calories)))
	}
	return nil
}
