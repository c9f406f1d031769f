package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/config"
	"github.com/theirongolddev/fivehundred/internal/tui"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Enter your profile and pick a theme",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	tr, st, err := loadTracker(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// Prefill from the saved profile, or from whatever an earlier
	// incomplete run left behind.
	vals := tui.NewOnboardingValues(tr.ReopenOnboarding())

	fileCfg, err := config.Load()
	if err != nil {
		return err
	}
	themeName := theme.ByName(cfg.Appearance.Theme).Name
	names := theme.Names()
	themeOpts := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	fmt.Println()
	fmt.Println("  Welcome to fivehundred!")
	fmt.Println()

	if err := tui.NewOnboardingForm(vals).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("profile form: %w", err)
	}

	themeForm := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Color theme").
			Options(themeOpts...).
			Value(&themeName),
	)).WithTheme(huh.ThemeCharm())
	if err := themeForm.RunWithContext(ctx); err != nil && !errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("theme form: %w", err)
	}

	p, err := tr.CompleteOnboarding(ctx, vals.Draft())
	if err != nil {
		return err
	}

	fileCfg.Appearance.Theme = themeName
	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	g := tr.Goals()
	fmt.Println()
	fmt.Printf("  Profile: %s, %d years, %s in, %s\n",
		p.Sex, p.Age, trimFloat(p.HeightInches), cli.FormatWeight(p.WeightLbs))
	fmt.Printf("  BMR %s, daily goal %s, protein %s\n",
		formatNumber(int64(g.BMR)),
		cli.FormatKcal(float64(g.Calories)),
		cli.FormatGrams(float64(g.Protein)),
	)
	fmt.Printf("  Theme saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `fivehundred setup` anytime to change it.")
	fmt.Println()
	return nil
}
