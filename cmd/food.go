package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/catalog"
	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"github.com/theirongolddev/fivehundred/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	flagFoodPick int
	flagFoodName string
	flagFoodCal  string
	flagFoodProt string
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search the catalog and manage today's food log",
	RunE:  runFoodList,
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search preset and measured foods",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFoodSearch,
}

var foodAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Add one portion of a preset food",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFoodAdd,
}

var foodMeasureCmd = &cobra.Command{
	Use:   "measure <food> <amount> [unit]",
	Short: "Add a measured food by count, grams or volume",
	Long: "Add a measured food. The amount is a count for per-unit foods, grams for\n" +
		"per-100g foods, and a volume for per-cup foods (unit: " + unitList() + ").",
	Args: cobra.RangeArgs(2, 3),
	RunE: runFoodMeasure,
}

var foodCustomCmd = &cobra.Command{
	Use:   "custom <name> <calories> [protein]",
	Short: "Add a food by hand",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runFoodCustom,
}

var foodEditCmd = &cobra.Command{
	Use:   "edit <n>",
	Short: "Edit entry n of today's log",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoodEdit,
}

var foodRmCmd = &cobra.Command{
	Use:     "rm <n>",
	Aliases: []string{"remove"},
	Short:   "Remove entry n from today's log",
	Args:    cobra.ExactArgs(1),
	RunE:    runFoodRm,
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's food log",
	RunE:  runFoodList,
}

func init() {
	foodAddCmd.Flags().IntVar(&flagFoodPick, "pick", 0, "Choose result n when the query matches several presets")
	foodEditCmd.Flags().StringVar(&flagFoodName, "name", "", "New name")
	foodEditCmd.Flags().StringVar(&flagFoodCal, "cal", "", "New calories")
	foodEditCmd.Flags().StringVar(&flagFoodProt, "prot", "", "New protein grams")

	foodCmd.AddCommand(foodSearchCmd, foodAddCmd, foodMeasureCmd, foodCustomCmd, foodEditCmd, foodRmCmd, foodListCmd)
	rootCmd.AddCommand(foodCmd)
}

func runFoodSearch(_ *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	presets := cat.Search(query)
	measured := cat.SearchMeasured(query)
	if len(presets) == 0 && len(measured) == 0 {
		fmt.Printf("\n  No foods match %q.\n\n", query)
		return nil
	}

	fmt.Println()
	if len(presets) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Presets",
			Headers: []string{"Food", "Calories", "Protein"},
			Rows:    itemRows(presets, true),
		}))
		fmt.Println("  Add with `fivehundred food add <query> [--pick n]`.")
		fmt.Println()
	}
	if len(measured) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Measured",
			Headers: []string{"Food", "Per", "Calories", "Protein"},
			Rows:    measuredRows(measured),
		}))
		fmt.Println("  Add with `fivehundred food measure <food> <amount> [unit]`.")
		fmt.Println()
	}
	return nil
}

func runFoodAdd(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	item, err := pickPreset(cat, query, flagFoodPick)
	if err != nil {
		return err
	}

	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	e, err := tr.AddPreset(cmd.Context(), item)
	if err != nil {
		return err
	}
	printAdded(tr, e)
	return nil
}

// pickPreset resolves a query to one preset: an exact name wins, then a
// single search hit, then the pick-th hit.
func pickPreset(cat *catalog.Catalog, query string, pick int) (catalog.Item, error) {
	if it, ok := cat.Lookup(query); ok && it.Basis() == nutrition.PerUnit {
		return it, nil
	}
	hits := cat.Search(query)
	switch {
	case len(hits) == 0:
		return catalog.Item{}, fmt.Errorf("%w: no preset matches %q", tracker.ErrNoSelection, query)
	case pick > 0 && pick <= len(hits):
		return hits[pick-1], nil
	case pick != 0:
		return catalog.Item{}, fmt.Errorf("--pick %d: %w (%d results)", pick, tracker.ErrIndexOutOfRange, len(hits))
	case len(hits) == 1:
		return hits[0], nil
	}

	fmt.Printf("\n  %d presets match %q:\n", len(hits), query)
	for i, it := range hits {
		fmt.Printf("    %2d. %s\n", i+1, it)
	}
	fmt.Println()
	return catalog.Item{}, fmt.Errorf("%w: choose one with --pick n", tracker.ErrNoSelection)
}

// pickMeasured resolves a query against measured foods first: an exact
// name, then a single search hit. A preset is used only when no measured
// food matches.
func pickMeasured(cat *catalog.Catalog, query string) (catalog.Item, error) {
	q := strings.TrimSpace(query)
	for _, it := range cat.Measured() {
		if strings.EqualFold(it.Name, q) {
			return it, nil
		}
	}
	hits := cat.SearchMeasured(q)
	switch {
	case len(hits) == 1:
		return hits[0], nil
	case len(hits) > 1:
		return catalog.Item{}, fmt.Errorf("%w: %d measured foods match %q", tracker.ErrNoSelection, len(hits), q)
	}
	if it, ok := cat.Lookup(q); ok {
		return it, nil
	}
	return catalog.Item{}, fmt.Errorf("%w: no measured food matches %q", tracker.ErrNoSelection, q)
}

func runFoodMeasure(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	item, err := pickMeasured(cat, args[0])
	if err != nil {
		return err
	}

	amount, err := tracker.ParseNumber(args[1])
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	var unit nutrition.Unit
	if item.Basis() == nutrition.PerCup {
		raw := string(nutrition.Cup)
		if len(args) == 3 {
			raw = args[2]
		}
		if unit, err = nutrition.ParseUnit(raw); err != nil {
			return err
		}
	}

	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	e, err := tr.AddFood(cmd.Context(), item, nutrition.MeasureFor(item.Basis(), amount, unit))
	if err != nil {
		return err
	}
	printAdded(tr, e)
	return nil
}

func runFoodCustom(cmd *cobra.Command, args []string) error {
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	prot := ""
	if len(args) == 3 {
		prot = args[2]
	}
	e, err := tr.AddCustom(cmd.Context(), args[0], args[1], prot)
	if err != nil {
		return err
	}
	printAdded(tr, e)
	return nil
}

func runFoodEdit(cmd *cobra.Command, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	entries := tr.Food()
	if i >= len(entries) {
		return fmt.Errorf("entry %d: %w", i+1, tracker.ErrIndexOutOfRange)
	}
	cur := entries[i]
	name, cal, prot := cur.Name, trimFloat(cur.Calories), trimFloat(cur.Protein)
	if cmd.Flags().Changed("name") {
		name = flagFoodName
	}
	if cmd.Flags().Changed("cal") {
		cal = flagFoodCal
	}
	if cmd.Flags().Changed("prot") {
		prot = flagFoodProt
	}

	e, err := tr.EditFood(cmd.Context(), i, name, cal, prot)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated %d. %s  %s / %s\n", i+1, e.Name, cli.FormatKcal(e.Calories), cli.FormatGrams(e.Protein))
	printTotals(tr)
	return nil
}

func runFoodRm(cmd *cobra.Command, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	e, err := tr.RemoveFood(cmd.Context(), i)
	if err != nil {
		return fmt.Errorf("entry %d: %w", i+1, err)
	}
	fmt.Printf("  Removed %s\n", e.Name)
	printTotals(tr)
	return nil
}

func runFoodList(cmd *cobra.Command, _ []string) error {
	tr, st, err := loadTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	fmt.Println()
	printLedger(tr.Food())
	printTotals(tr)
	return nil
}

func printAdded(tr *tracker.Tracker, e model.FoodEntry) {
	fmt.Printf("  Added %s  %s / %s\n", e.Name, cli.FormatKcal(e.Calories), cli.FormatGrams(e.Protein))
	printTotals(tr)
}

func printTotals(tr *tracker.Tracker) {
	s := tr.Summary()
	if !s.Onboarded {
		fmt.Printf("  Today: %s, %s (run `fivehundred setup` for goals)\n",
			cli.FormatKcal(s.Totals.Calories), cli.FormatGrams(s.Totals.Protein))
		return
	}
	fmt.Printf("  Today: %s, %s\n",
		cli.FormatRemaining(s.Totals.Calories, s.Goals.Calories, "kcal"),
		cli.FormatRemaining(s.Totals.Protein, s.Goals.Protein, "g protein"),
	)
}

func itemRows(items []catalog.Item, numbered bool) [][]string {
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		name := it.Name
		if numbered {
			name = fmt.Sprintf("%d. %s", i+1, it.Name)
		}
		rows = append(rows, []string{name, cli.FormatKcal(it.Calories), cli.FormatGrams(it.Protein)})
	}
	return rows
}

func measuredRows(items []catalog.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			it.Name,
			it.Basis().String(),
			cli.FormatKcal(it.Calories),
			cli.FormatGrams(it.Protein),
		})
	}
	return rows
}

func unitList() string {
	units := nutrition.Units()
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
