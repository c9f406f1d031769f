package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	out := map[string]Store{"memory": NewMemory()}

	sq, err := Open(ctx, Options{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "nested", "fivehundred.db")})
	require.NoError(t, err)
	out["sqlite"] = sq

	if dsn := os.Getenv("FIVEHUNDRED_TEST_POSTGRES_DSN"); dsn != "" {
		pg, err := Open(ctx, Options{Driver: DriverPostgres, DSN: dsn})
		require.NoError(t, err)
		keys, err := pg.Keys(ctx, "")
		require.NoError(t, err)
		for _, k := range keys {
			require.NoError(t, pg.Remove(ctx, k))
		}
		out["postgres"] = pg
	}

	t.Cleanup(func() {
		for _, s := range out {
			_ = s.Close()
		}
	})
	return out
}

func TestStoreConformance(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, KeySex)
			require.NoError(t, err)
			require.False(t, ok, "missing key reported present")

			require.NoError(t, s.Set(ctx, KeySex, "male"))
			require.NoError(t, s.Set(ctx, KeySex, "female"))
			v, ok, err := s.Get(ctx, KeySex)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "female", v)

			require.NoError(t, s.Set(ctx, FoodLogKey("2026-10-02"), "[]"))
			require.NoError(t, s.Set(ctx, FoodLogKey("2026-10-01"), `[{"name":"Apple","cal":95,"prot":1}]`))
			require.NoError(t, s.Set(ctx, StepsKey("2026-10-01"), "4200"))

			keys, err := s.Keys(ctx, FoodLogPrefix)
			require.NoError(t, err)
			require.Equal(t, []string{"foodLog-2026-10-01", "foodLog-2026-10-02"}, keys)

			all, err := s.Keys(ctx, "")
			require.NoError(t, err)
			require.Len(t, all, 4)

			require.NoError(t, s.Remove(ctx, FoodLogKey("2026-10-02")))
			require.NoError(t, s.Remove(ctx, "never-set"))
			keys, err = s.Keys(ctx, FoodLogPrefix)
			require.NoError(t, err)
			require.Equal(t, []string{"foodLog-2026-10-01"}, keys)
		})
	}
}

func TestKeysEscapesLikeWildcards(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "a_b", "1"))
			require.NoError(t, s.Set(ctx, "axb", "2"))
			require.NoError(t, s.Set(ctx, "100%", "3"))
			require.NoError(t, s.Set(ctx, "1000", "4"))

			keys, err := s.Keys(ctx, "a_")
			require.NoError(t, err)
			require.Equal(t, []string{"a_b"}, keys)

			keys, err = s.Keys(ctx, "100%")
			require.NoError(t, err)
			require.Equal(t, []string{"100%"}, keys)
		})
	}
}

func TestSetAll(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, SetAll(ctx, s, map[string]string{
				KeyAge:    "30",
				KeyHeight: "70",
				KeyWeight: "180",
			}))
			v, ok, err := s.Get(ctx, KeyHeight)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "70", v)
		})
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fivehundred.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyWeightLog, `[{"date":"2026-10-01","weight":185}]`))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	v, ok, err := s.Get(ctx, KeyWeightLog)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, v, "185")
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "redis"})
	require.Error(t, err)
	_, err = Open(context.Background(), Options{Driver: DriverSQLite})
	require.Error(t, err)
}

func TestDateOf(t *testing.T) {
	d, ok := DateOf("foodLog-2026-10-01")
	require.True(t, ok)
	require.Equal(t, "2026-10-01", d)
	d, ok = DateOf(StepsKey("2026-09-30"))
	require.True(t, ok)
	require.Equal(t, "2026-09-30", d)
	_, ok = DateOf(KeyWeightLog)
	require.False(t, ok)
}
