package cmd

import (
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/tui"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	app := tui.NewApp(tui.Options{
		Store:   st,
		Catalog: cat,
		Config:  cfg,
		Logger:  log,
		Date:    flagDate,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
