package cmd

import (
	"fmt"
	"sort"

	"github.com/theirongolddev/fivehundred/internal/source"
	"github.com/theirongolddev/fivehundred/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagImportDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file-or-dir>",
	Short: "Import a localStorage export from the browser app",
	Long: "Import a JSON object of localStorage keys (profile, foodLog-*, steps-*, weightLog).\n" +
		"A directory imports every .json file in path order; later files win.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Parse and report without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	files, err := source.ScanPath(args[0])
	if err != nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}
	if len(files) == 0 {
		fmt.Printf("  No .json files in %s\n", args[0])
		return nil
	}

	results := make([]source.ParseResult, 0, len(files))
	var foodDays, stepDays, weights, parseErrs int
	hasProfile := false
	skipped := map[string]struct{}{}
	for i, f := range files {
		progress("\r  Parsing [%d/%d]", i+1, len(files))
		r := source.ParseFile(f)
		if r.Err != nil {
			log.Warn("import file failed", zap.String("path", f.Path), zap.Error(r.Err))
			progress("\n  Skipping %s: %v\n", f.Path, r.Err)
			continue
		}
		foodDays += r.FoodDays
		stepDays += r.StepDays
		weights += r.Weights
		parseErrs += r.ParseErrors
		hasProfile = hasProfile || r.HasProfile
		for _, k := range r.Skipped {
			skipped[k] = struct{}{}
		}
		results = append(results, r)
	}
	progress("\n")

	entries := source.Merge(results)
	fmt.Printf("  %d food days, %d step days, %d weights from %d file(s)\n",
		foodDays, stepDays, weights, len(results))
	if hasProfile {
		fmt.Println("  Profile included")
	}
	if parseErrs > 0 {
		fmt.Printf("  Dropped %d malformed values\n", parseErrs)
	}
	if len(skipped) > 0 {
		keys := make([]string, 0, len(skipped))
		for k := range skipped {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Printf("  Ignored %d unknown keys\n", len(keys))
		log.Debug("unknown import keys", zap.Strings("keys", keys))
	}

	if flagImportDryRun {
		fmt.Printf("  Dry run: %d keys not written\n", len(entries))
		return nil
	}

	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := store.SetAll(ctx, st, entries); err != nil {
		return fmt.Errorf("writing import: %w", err)
	}
	log.Info("import complete", zap.Int("keys", len(entries)), zap.Int("files", len(results)))
	fmt.Printf("  Wrote %d keys\n", len(entries))
	return nil
}
