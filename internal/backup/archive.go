// Package backup exports the whole store to a versioned JSON archive and
// restores it, to a local file or an S3-compatible bucket.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/fivehundred/internal/store"
)

// ArchiveVersion is written into every archive and checked on restore.
const ArchiveVersion = 1

// ErrUnsupportedVersion is returned when restoring an archive from a newer format.
var ErrUnsupportedVersion = errors.New("unsupported archive version")

// Archive is a point-in-time copy of every stored key.
type Archive struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Entries    map[string]string `json:"entries"`
}

// Export reads every key from st.
func Export(ctx context.Context, st store.Store, now time.Time) (Archive, error) {
	keys, err := st.Keys(ctx, "")
	if err != nil {
		return Archive{}, fmt.Errorf("listing keys: %w", err)
	}
	a := Archive{Version: ArchiveVersion, ExportedAt: now.UTC(), Entries: make(map[string]string, len(keys))}
	for _, k := range keys {
		v, ok, err := st.Get(ctx, k)
		if err != nil {
			return Archive{}, err
		}
		if ok {
			a.Entries[k] = v
		}
	}
	return a, nil
}

// RestoreOptions controls Restore.
type RestoreOptions struct {
	// Replace removes keys not present in the archive.
	Replace bool
}

// Restore writes the archive into st and returns how many keys were written.
func Restore(ctx context.Context, st store.Store, a Archive, opts RestoreOptions) (int, error) {
	if a.Version < 1 || a.Version > ArchiveVersion {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, a.Version)
	}
	if opts.Replace {
		existing, err := st.Keys(ctx, "")
		if err != nil {
			return 0, fmt.Errorf("listing keys: %w", err)
		}
		for _, k := range existing {
			if _, keep := a.Entries[k]; keep {
				continue
			}
			if err := st.Remove(ctx, k); err != nil {
				return 0, err
			}
		}
	}
	if err := store.SetAll(ctx, st, a.Entries); err != nil {
		return 0, err
	}
	return len(a.Entries), nil
}

// Encode writes a as indented JSON.
func Encode(w io.Writer, a Archive) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// Decode reads an archive.
func Decode(r io.Reader) (Archive, error) {
	var a Archive
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return Archive{}, fmt.Errorf("decoding archive: %w", err)
	}
	if a.Entries == nil {
		a.Entries = map[string]string{}
	}
	return a, nil
}

// WriteFile saves a to path, creating parent directories.
func WriteFile(path string, a Archive) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating backup dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating backup file: %w", err)
	}
	if err := Encode(f, a); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile loads an archive from path.
func ReadFile(path string) (Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return Archive{}, err
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// FileName is the default name for an archive exported at t.
func FileName(t time.Time) string {
	return "fivehundred-" + t.UTC().Format("20060102T150405Z") + ".json"
}
