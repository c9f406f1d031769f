// Package cmd implements the fivehundred CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/fivehundred/internal/catalog"
	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/config"
	"github.com/theirongolddev/fivehundred/internal/logging"
	"github.com/theirongolddev/fivehundred/internal/store"
	"github.com/theirongolddev/fivehundred/internal/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagDataDir string
	flagStorage string
	flagDate    string
	flagQuiet   bool
	flagVerbose bool
	flagLogFile string
)

// Populated by PersistentPreRunE for every command.
var (
	cfg config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:               "fivehundred",
	Short:             "The 500 Plan calorie tracker",
	Long:              "Track calories, protein, steps and weight against a BMR minus 500 kcal goal.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { _ = log.Sync() },
	RunE:              runStatus,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Storage driver: sqlite, postgres or memory")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Operate on another day (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

// prepare resolves configuration and the logger before any command runs.
func prepare(cmd *cobra.Command, _ []string) error {
	c, err := config.LoadEffective()
	if err != nil {
		return err
	}
	if flagDataDir != "" {
		c.General.DataDir = flagDataDir
	}
	if flagStorage != "" {
		c.General.Storage = flagStorage
	}
	if flagDate != "" {
		d, err := tracker.ParseDate(flagDate)
		if err != nil {
			return fmt.Errorf("--date: %w", err)
		}
		flagDate = d
	}
	cfg = c

	// The TUI owns the terminal, so it only logs when asked to.
	if cmd.Name() == "tui" && flagLogFile == "" {
		log = zap.NewNop()
		return nil
	}
	l, err := logging.New(logging.Options{Verbose: flagVerbose, Level: logLevel(cmd), File: flagLogFile})
	if err != nil {
		return err
	}
	log = l
	return nil
}

// logLevel keeps interactive commands quiet on stderr. Long-running and
// bulk commands report at Info.
func logLevel(cmd *cobra.Command) zapcore.Level {
	top := cmd
	for top.HasParent() && top.Parent() != cmd.Root() {
		top = top.Parent()
	}
	switch top.Name() {
	case "daemon", "import", "backup":
		return zapcore.InfoLevel
	}
	return zapcore.WarnLevel
}

// openStore opens the configured storage backend, creating the data
// directory for SQLite.
func openStore(ctx context.Context) (store.Store, error) {
	opts := store.Options{
		Driver: store.Driver(cfg.General.Storage),
		Path:   cfg.DBPath(),
		DSN:    cfg.General.PostgresDSN,
	}
	if opts.Driver == "" || opts.Driver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o750); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
	}
	st, err := store.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.General.Storage, err)
	}
	log.Debug("store opened",
		zap.String("driver", cfg.General.Storage),
		zap.String("path", opts.Path),
	)
	return st, nil
}

// loadTracker opens the store and loads the tracked day. The caller closes
// the returned store.
func loadTracker(ctx context.Context) (*tracker.Tracker, store.Store, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	tr, err := tracker.Load(ctx, st, tracker.WithLogger(log), tracker.WithDate(flagDate))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return tr, st, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(cfg.Catalog.File)
}

// progress prints to stderr unless --quiet.
func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}
