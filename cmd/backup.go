package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/theirongolddev/fivehundred/internal/backup"
	"github.com/theirongolddev/fivehundred/internal/cli"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagBackupReplace bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export, restore and sync snapshots of all tracker data",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write every stored key to a JSON archive",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupExport,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Load a JSON archive into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload an archive to the configured S3 bucket",
	RunE:  runBackupPush,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archives in the configured S3 bucket",
	RunE:  runBackupList,
}

var backupPullCmd = &cobra.Command{
	Use:   "pull [key]",
	Short: "Restore an archive from S3 (newest when no key is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupPull,
}

func init() {
	backupCmd.PersistentFlags().BoolVar(&flagBackupReplace, "replace", false, "Remove keys that are not in the archive")

	backupCmd.AddCommand(backupExportCmd, backupRestoreCmd, backupPushCmd, backupListCmd, backupPullCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	a, err := backup.Export(ctx, st, time.Now())
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.DataDir(), "backups", backup.FileName(a.ExportedAt))
	if len(args) == 1 {
		path = args[0]
	}
	if err := backup.WriteFile(path, a); err != nil {
		return err
	}
	log.Info("backup exported", zap.String("path", path), zap.Int("keys", len(a.Entries)))
	fmt.Printf("  Exported %d keys to %s\n", len(a.Entries), path)
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	a, err := backup.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	return restoreArchive(cmd, a, args[0])
}

func runBackupPush(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client, err := newS3(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	a, err := backup.Export(ctx, st, time.Now())
	if err != nil {
		return err
	}
	progress("  Uploading %d keys...\n", len(a.Entries))
	key, err := client.Push(ctx, a)
	if err != nil {
		return err
	}
	log.Info("backup pushed", zap.String("bucket", cfg.Backup.Bucket), zap.String("key", key))
	fmt.Printf("  Pushed s3://%s/%s\n", cfg.Backup.Bucket, key)
	return nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	client, err := newS3(cmd)
	if err != nil {
		return err
	}
	objs, err := client.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(objs) == 0 {
		fmt.Printf("  No backups in s3://%s/%s\n", cfg.Backup.Bucket, cfg.Backup.Prefix)
		return nil
	}

	rows := make([][]string, 0, len(objs))
	for _, o := range objs {
		rows = append(rows, []string{o.Key, humanize.Bytes(uint64(o.Size)), humanize.Time(o.LastModified)})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "s3://" + cfg.Backup.Bucket,
		Headers: []string{"Key", "Size", "Age"},
		Rows:    rows,
	}))
	return nil
}

func runBackupPull(cmd *cobra.Command, args []string) error {
	client, err := newS3(cmd)
	if err != nil {
		return err
	}
	key := ""
	if len(args) == 1 {
		key = args[0]
	}
	progress("  Downloading...\n")
	a, err := client.Pull(cmd.Context(), key)
	if err != nil {
		return err
	}
	if key == "" {
		key = "newest backup"
	}
	return restoreArchive(cmd, a, key)
}

func restoreArchive(cmd *cobra.Command, a backup.Archive, from string) error {
	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	n, err := backup.Restore(ctx, st, a, backup.RestoreOptions{Replace: flagBackupReplace})
	if err != nil {
		if errors.Is(err, backup.ErrUnsupportedVersion) {
			return fmt.Errorf("%s: %w (upgrade fivehundred)", from, err)
		}
		return err
	}
	log.Info("backup restored", zap.String("from", from), zap.Int("keys", n), zap.Bool("replace", flagBackupReplace))
	fmt.Printf("  Restored %d keys from %s (exported %s)\n", n, from, humanize.Time(a.ExportedAt))
	return nil
}

// newS3 builds the client from the [backup] config.
func newS3(cmd *cobra.Command) (*backup.S3, error) {
	if cfg.Backup.Bucket == "" {
		return nil, errors.New("no backup bucket configured: set [backup] bucket or FIVEHUNDRED_BACKUP_BUCKET")
	}
	return backup.NewS3(cmd.Context(), backup.S3Config{
		Bucket:          cfg.Backup.Bucket,
		Region:          cfg.Backup.Region,
		Endpoint:        cfg.Backup.Endpoint,
		Prefix:          cfg.Backup.Prefix,
		PathStyle:       cfg.Backup.PathStyle,
		AccessKeyID:     cfg.Backup.AccessKeyID,
		SecretAccessKey: cfg.Backup.SecretAccessKey,
	})
}
