package cmd

import (
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/cli"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every preset and measured food",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(_ *cobra.Command, _ []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	presets, measured := cat.Presets(), cat.Measured()

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Presets (%d)", len(presets)),
		Headers: []string{"Food", "Calories", "Protein"},
		Rows:    itemRows(presets, false),
	}))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Measured (%d)", len(measured)),
		Headers: []string{"Food", "Per", "Calories", "Protein"},
		Rows:    measuredRows(measured),
	}))
	if cfg.Catalog.File != "" {
		fmt.Printf("  Includes foods from %s\n", cfg.Catalog.File)
	}
	fmt.Println()
	return nil
}
