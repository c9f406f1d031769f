// Package store provides the string key/value storage the tracker
// persists through, with SQLite, PostgreSQL and in-memory drivers.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Store is a string key/value store. Get reports a missing key with
// ok=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Keys returns every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Persisted keys.
const (
	KeySex                = "sex"
	KeyAge                = "age"
	KeyHeight             = "height"
	KeyWeight             = "weight"
	KeyOnboardingComplete = "onboardingComplete"
	KeyWeightLog          = "weightLog"

	FoodLogPrefix = "foodLog-"
	StepsPrefix   = "steps-"
)

// FoodLogKey is the key of the food ledger for date (YYYY-MM-DD).
func FoodLogKey(date string) string { return FoodLogPrefix + date }

// StepsKey is the key of the step count for date (YYYY-MM-DD).
func StepsKey(date string) string { return StepsPrefix + date }

// DateOf extracts the date from a per-day key.
func DateOf(key string) (string, bool) {
	for _, p := range []string{FoodLogPrefix, StepsPrefix} {
		if strings.HasPrefix(key, p) {
			return key[len(p):], true
		}
	}
	return "", false
}

// Driver names a storage backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Driver Driver
	// Path is the SQLite database file.
	Path string
	// DSN is the PostgreSQL connection string.
	DSN string
}

// Open returns the backend named by opts.Driver. An empty driver means SQLite.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		if opts.Path == "" {
			return nil, errors.New("sqlite store needs a path")
		}
		return OpenSQLite(opts.Path)
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, errors.New("postgres store needs a DSN")
		}
		return OpenPostgres(ctx, opts.DSN)
	case DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
}

type batchSetter interface {
	setAll(ctx context.Context, entries map[string]string) error
}

// SetAll writes every entry, atomically when the backend supports it.
func SetAll(ctx context.Context, s Store, entries map[string]string) error {
	if b, ok := s.(batchSetter); ok {
		return b.setAll(ctx, entries)
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(ctx, k, entries[k]); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	return nil
}
