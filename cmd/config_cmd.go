package cmd

import (
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded (environment and flags applied)")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", cfg.DataDir())
	fmt.Printf("    Storage:        %s\n", cfg.General.Storage)
	switch cfg.General.Storage {
	case "", "sqlite":
		fmt.Printf("    Database:       %s\n", cfg.DBPath())
	case "postgres":
		if cfg.General.PostgresDSN != "" {
			fmt.Printf("    Postgres DSN:   %s\n", maskDSN(cfg.General.PostgresDSN))
		} else {
			fmt.Println("    Postgres DSN:   not configured")
		}
	}
	fmt.Printf("    History days:   %d\n", cfg.General.HistoryDays)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval:      %ds\n", cfg.Daemon.IntervalSec)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Backup]")
	if cfg.Backup.Bucket != "" {
		fmt.Printf("    Bucket:   s3://%s/%s\n", cfg.Backup.Bucket, cfg.Backup.Prefix)
		fmt.Printf("    Region:   %s\n", cfg.Backup.Region)
		if cfg.Backup.Endpoint != "" {
			fmt.Printf("    Endpoint: %s\n", cfg.Backup.Endpoint)
		}
	} else {
		fmt.Println("    Bucket: not configured")
	}
	fmt.Println()

	fmt.Println("  [Catalog]")
	if cfg.Catalog.File != "" {
		fmt.Printf("    File: %s\n", cfg.Catalog.File)
	} else {
		fmt.Println("    File: built-in foods only")
	}
	fmt.Println()

	fmt.Println("  Run `fivehundred setup` to reconfigure.")
	return nil
}

// maskDSN keeps only the start of a DSN so credentials are not printed.
func maskDSN(dsn string) string {
	if len(dsn) > 16 {
		return dsn[:12] + "..."
	}
	return "****"
}
