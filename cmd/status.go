package cmd

import (
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/tracker"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's goal, intake, steps and latest weight",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if _, ok := tr.Profile(); !ok {
		fmt.Println()
		fmt.Println("  No profile yet.")
		fmt.Println()
		fmt.Println("  Your daily goal is your BMR minus 500 kcal, plus what your steps burn.")
		fmt.Println("  Enter sex, age, height and weight to get started:")
		fmt.Println("    fivehundred setup    (form)")
		fmt.Println("    fivehundred tui      (dashboard)")
		fmt.Println()
		return nil
	}

	printSummary(tr.Summary())
	printLedger(tr.Food())
	return nil
}

func printSummary(s model.DaySummary) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("THE 500 PLAN  " + s.Date))
	fmt.Println()

	g := s.Goals
	fmt.Printf("  Goal       %s  (BMR %s - 500 + %s from steps)\n",
		cli.FormatKcal(float64(g.Calories)),
		formatNumber(int64(g.BMR)),
		formatNumber(int64(g.StepCalories)),
	)
	fmt.Printf("  Calories   %s\n", cli.RenderGoalBar(s.Totals.Calories, g.Calories, "kcal", 30, cli.ColorBlue))
	fmt.Printf("             %s\n", cli.Muted(cli.FormatRemaining(s.Totals.Calories, g.Calories, "kcal")))
	fmt.Printf("  Protein    %s\n", cli.RenderGoalBar(s.Totals.Protein, g.Protein, "g", 30, cli.ColorGreen))
	fmt.Printf("             %s\n", cli.Muted(cli.FormatRemaining(s.Totals.Protein, g.Protein, "g")))
	fmt.Printf("  Steps      %s\n", cli.FormatSteps(s.Steps))
	if s.LastWeight != nil {
		fmt.Printf("  Weight     %s  %s\n", cli.FormatWeight(s.LastWeight.Weight), cli.Muted(s.LastWeight.Date))
	}
	fmt.Println()
}

func printLedger(entries []model.FoodEntry) {
	if len(entries) == 0 {
		fmt.Println("  Nothing logged today. Add food with `fivehundred food search <query>`.")
		fmt.Println()
		return
	}

	var total model.Totals
	rows := make([][]string, 0, len(entries)+1)
	for i, e := range entries {
		total.Calories += e.Calories
		total.Protein += e.Protein
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s", i+1, e.Name),
			cli.FormatKcal(e.Calories),
			cli.FormatGrams(e.Protein),
		})
	}
	bold := lipgloss.NewStyle().Bold(true)
	rows = append(rows, []string{
		bold.Render("Total"),
		bold.Render(cli.FormatKcal(total.Calories)),
		bold.Render(cli.FormatGrams(total.Protein)),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Today",
		Headers: []string{"Food", "Calories", "Protein"},
		Rows:    rows,
	}))
}

// parseIndex converts a 1-based index from the command line.
func parseIndex(s string) (int, error) {
	n, err := tracker.ParseSteps(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("index %q: %w", s, tracker.ErrIndexOutOfRange)
	}
	return n - 1, nil
}
