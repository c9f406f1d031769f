package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type envOverrides struct {
	DataDir        string `env:"FIVEHUNDRED_DATA_DIR"`
	Storage        string `env:"FIVEHUNDRED_STORAGE"`
	PostgresDSN    string `env:"FIVEHUNDRED_POSTGRES_DSN"`
	HistoryDays    int    `env:"FIVEHUNDRED_HISTORY_DAYS"`
	Theme          string `env:"FIVEHUNDRED_THEME"`
	DaemonAddr     string `env:"FIVEHUNDRED_DAEMON_ADDR"`
	BackupBucket   string `env:"FIVEHUNDRED_BACKUP_BUCKET"`
	BackupRegion   string `env:"FIVEHUNDRED_BACKUP_REGION"`
	BackupEndpoint string `env:"FIVEHUNDRED_BACKUP_ENDPOINT"`
	BackupPrefix   string `env:"FIVEHUNDRED_BACKUP_PREFIX"`
	BackupKeyID    string `env:"FIVEHUNDRED_BACKUP_ACCESS_KEY_ID"`
	BackupSecret   string `env:"FIVEHUNDRED_BACKUP_SECRET_ACCESS_KEY"`
	CatalogFile    string `env:"FIVEHUNDRED_CATALOG"`
}

// ApplyEnv overlays FIVEHUNDRED_* environment variables onto cfg. Unset
// variables leave the file value in place.
func ApplyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	setString(&cfg.General.DataDir, o.DataDir)
	setString(&cfg.General.Storage, o.Storage)
	setString(&cfg.General.PostgresDSN, o.PostgresDSN)
	if o.HistoryDays > 0 {
		cfg.General.HistoryDays = o.HistoryDays
	}
	setString(&cfg.Appearance.Theme, o.Theme)
	setString(&cfg.Daemon.Addr, o.DaemonAddr)
	setString(&cfg.Backup.Bucket, o.BackupBucket)
	setString(&cfg.Backup.Region, o.BackupRegion)
	setString(&cfg.Backup.Endpoint, o.BackupEndpoint)
	setString(&cfg.Backup.Prefix, o.BackupPrefix)
	setString(&cfg.Backup.AccessKeyID, o.BackupKeyID)
	setString(&cfg.Backup.SecretAccessKey, o.BackupSecret)
	setString(&cfg.Catalog.File, o.CatalogFile)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
