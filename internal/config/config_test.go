package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Storage != "sqlite" || cfg.General.HistoryDays != 14 {
		t.Errorf("defaults = %+v", cfg.General)
	}
	if Exists() {
		t.Error("Exists() = true with no file")
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "catppuccin-mocha"
	cfg.Backup.Bucket = "my-backups"
	cfg.Catalog.File = "/tmp/foods.yaml"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config perm = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\nstorage = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted malformed TOML")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := DefaultConfig()
	cfg.General.Storage = "sqlite"
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FIVEHUNDRED_STORAGE", "postgres")
	t.Setenv("FIVEHUNDRED_POSTGRES_DSN", "postgres://localhost/fh")
	t.Setenv("FIVEHUNDRED_HISTORY_DAYS", "30")

	got, err := LoadEffective()
	if err != nil {
		t.Fatalf("LoadEffective: %v", err)
	}
	if got.General.Storage != "postgres" || got.General.PostgresDSN != "postgres://localhost/fh" || got.General.HistoryDays != 30 {
		t.Errorf("effective general = %+v", got.General)
	}
	if got.Appearance.Theme != "flexoki-dark" {
		t.Errorf("unset override changed theme to %q", got.Appearance.Theme)
	}

	t.Setenv("FIVEHUNDRED_HISTORY_DAYS", "many")
	if _, err := LoadEffective(); err == nil {
		t.Error("LoadEffective accepted a non-numeric FIVEHUNDRED_HISTORY_DAYS")
	}
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	cfg := DefaultConfig()
	if got := cfg.DBPath(); got != "/xdg/data/fivehundred/fivehundred.db" {
		t.Errorf("DBPath() = %q", got)
	}
	cfg.General.DataDir = "/srv/fh"
	if got := cfg.DataDir(); got != "/srv/fh" {
		t.Errorf("DataDir() = %q", got)
	}
}
