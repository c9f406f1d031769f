package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagDailyDays int

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily intake against goals",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().IntVarP(&flagDailyDays, "days", "n", 0, "Days to show (default history_days from config)")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	tr, st, err := loadTracker(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	n := flagDailyDays
	if n <= 0 {
		n = cfg.General.HistoryDays
	}
	if n <= 0 {
		n = 14
	}
	until, err := time.ParseInLocation("2006-01-02", tr.Today(), time.Local)
	if err != nil {
		return err
	}
	since := until.AddDate(0, 0, -(n - 1))

	result, err := pipeline.LoadDays(ctx, st, since, until, log, func(current, total int) {
		if current == total {
			progress("\r  Loaded %d days    \n", total)
		}
	})
	if err != nil {
		return err
	}
	if result.CorruptDays > 0 {
		progress("  Skipped %d malformed food logs\n", result.CorruptDays)
	}

	p, _ := tr.Profile()
	days := pipeline.AggregateDays(result.Days, result.Weights, p, since, until)
	stats := pipeline.Aggregate(days)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY  Last %dd", n)))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, dailyRow(d))
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Eaten", "Goal", "Protein", "Steps", ""},
		Rows:    rows,
	}))

	if stats.LoggedDays == 0 {
		fmt.Println("  Nothing logged in this period.")
		fmt.Println()
		return nil
	}
	fmt.Printf("  Logged %d of %d days, %d within goal (%s), protein hit on %d\n",
		stats.LoggedDays, stats.Days, stats.DaysWithinGoal,
		cli.FormatPercent(float64(stats.DaysWithinGoal)/float64(stats.LoggedDays)),
		stats.ProteinHitDays)
	fmt.Printf("  Average %s, %s protein, %s\n",
		cli.FormatKcal(stats.AvgCalories),
		cli.FormatGrams(stats.AvgProtein),
		cli.FormatSteps(int(stats.AvgSteps)),
	)
	if stats.EstimatedDeficit > 0 {
		fmt.Printf("  Estimated deficit %s (about %s)\n",
			cli.FormatKcal(stats.EstimatedDeficit), cli.FormatWeight(stats.EstimatedLbs))
	}
	fmt.Println()
	return nil
}

func dailyRow(d model.DailyStats) []string {
	if !d.Logged {
		return []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.Muted("-"),
			cli.FormatNumber(int64(d.CalorieGoal)),
			cli.Muted("-"),
			cli.FormatNumber(int64(d.Steps)),
			"",
		}
	}
	mark := ""
	if d.WithinGoal() {
		mark = "✓"
	}
	if d.ProteinHit() {
		mark += "P"
	}
	return []string{
		d.Date.Format("2006-01-02"),
		cli.FormatDayOfWeek(int(d.Date.Weekday())),
		cli.FormatNumber(int64(d.Calories + 0.5)),
		cli.FormatNumber(int64(d.CalorieGoal)),
		cli.FormatGrams(d.Protein),
		cli.FormatNumber(int64(d.Steps)),
		mark,
	}
}
