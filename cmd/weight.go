package cmd

import (
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagWeightDate string

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log and review body weight",
	RunE:  runWeightList,
}

var weightAddCmd = &cobra.Command{
	Use:   "add <lbs>",
	Short: "Record a weight for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeightAdd,
}

var weightEditCmd = &cobra.Command{
	Use:   "edit <n> <lbs>",
	Short: "Change entry n of the weight history",
	Args:  cobra.ExactArgs(2),
	RunE:  runWeightEdit,
}

var weightRmCmd = &cobra.Command{
	Use:     "rm <n>",
	Aliases: []string{"delete"},
	Short:   "Delete entry n of the weight history",
	Args:    cobra.ExactArgs(1),
	RunE:    runWeightRm,
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the weight history",
	RunE:  runWeightList,
}

var weightChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the weight history as a sparkline",
	RunE:  runWeightChart,
}

func init() {
	weightEditCmd.Flags().StringVar(&flagWeightDate, "on", "", "Move the entry to this date (YYYY-MM-DD)")

	weightCmd.AddCommand(weightAddCmd, weightEditCmd, weightRmCmd, weightListCmd, weightChartCmd)
	rootCmd.AddCommand(weightCmd)
}

func runWeightAdd(cmd *cobra.Command, args []string) error {
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	prev := tr.Weights()
	s, err := tr.AddWeight(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("  Recorded %s on %s", cli.FormatWeight(s.Weight), s.Date)
	if len(prev) > 0 {
		fmt.Printf("  (%s)", cli.FormatDelta(s.Weight, prev[len(prev)-1].Weight))
	}
	fmt.Println()
	return nil
}

func runWeightEdit(cmd *cobra.Command, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	s, err := tr.EditWeight(cmd.Context(), i, flagWeightDate, args[1])
	if err != nil {
		return fmt.Errorf("entry %d: %w", i+1, err)
	}
	fmt.Printf("  Updated %d. %s  %s\n", i+1, s.Date, cli.FormatWeight(s.Weight))
	return nil
}

func runWeightRm(cmd *cobra.Command, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	s, err := tr.DeleteWeight(cmd.Context(), i)
	if err != nil {
		return fmt.Errorf("entry %d: %w", i+1, err)
	}
	fmt.Printf("  Deleted %s  %s\n", s.Date, cli.FormatWeight(s.Weight))
	return nil
}

func runWeightList(cmd *cobra.Command, _ []string) error {
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	samples := tr.Weights()
	if len(samples) == 0 {
		fmt.Println("\n  No weights recorded. Add one with `fivehundred weight add <lbs>`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(samples))
	for i, s := range samples {
		delta := ""
		if i > 0 {
			delta = cli.FormatDelta(s.Weight, samples[i-1].Weight)
		}
		rows = append(rows, []string{fmt.Sprintf("%d. %s", i+1, s.Date), cli.FormatWeight(s.Weight), delta})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Weight",
		Headers: []string{"Date", "Weight", "Change"},
		Rows:    rows,
	}))
	trend := pipeline.Trend(samples)
	printTrend(trend.Change, trend.PerWeek)
	return nil
}

func runWeightChart(cmd *cobra.Command, _ []string) error {
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	labels, values := tr.WeightSeries()
	if len(values) == 0 {
		fmt.Println("\n  No weights recorded.")
		fmt.Println()
		return nil
	}
	trend := pipeline.Trend(tr.Weights())

	fmt.Println()
	fmt.Printf("  %s  %s\n", cli.Header("Weight"), cli.Muted(labels[0]+" to "+labels[len(labels)-1]))
	fmt.Printf("  %s\n", cli.RenderSparkline(values))
	fmt.Printf("  %s  min %s  max %s\n",
		cli.FormatWeight(trend.Last.Weight),
		cli.FormatWeight(trend.Min),
		cli.FormatWeight(trend.Max),
	)
	printTrend(trend.Change, trend.PerWeek)
	return nil
}

func printTrend(change, perWeek float64) {
	fmt.Printf("  Change %s", cli.FormatDelta(change, 0))
	if perWeek != 0 {
		fmt.Printf(", %s per week", cli.FormatDelta(perWeek, 0))
	}
	fmt.Println()
	fmt.Println()
}
