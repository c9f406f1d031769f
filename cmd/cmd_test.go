package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/fivehundred/internal/catalog"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"github.com/theirongolddev/fivehundred/internal/store"
	"github.com/theirongolddev/fivehundred/internal/tracker"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"3", 2, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"two", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseIndex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPickPreset(t *testing.T) {
	cat := catalog.Default()

	it, err := pickPreset(cat, "apple", 0)
	if err != nil || it.Name != "Apple" {
		t.Fatalf("exact name = %v, %v; want Apple", it.Name, err)
	}

	if _, err := pickPreset(cat, "banana", 0); !errors.Is(err, tracker.ErrNoSelection) {
		t.Fatalf("ambiguous query error = %v, want ErrNoSelection", err)
	}

	it, err = pickPreset(cat, "banana", 2)
	if err != nil || it.Name != "Banana (whole)" {
		t.Fatalf("pick 2 = %v, %v; want Banana (whole)", it.Name, err)
	}

	if _, err := pickPreset(cat, "banana", 9); !errors.Is(err, tracker.ErrIndexOutOfRange) {
		t.Fatalf("pick out of range error = %v", err)
	}

	if _, err := pickPreset(cat, "zzz", 0); !errors.Is(err, tracker.ErrNoSelection) {
		t.Fatalf("no match error = %v", err)
	}
}

func TestPickMeasuredPrefersMeasuredFoods(t *testing.T) {
	cat := catalog.Default()

	it, err := pickMeasured(cat, "apple")
	require.NoError(t, err)
	require.Equal(t, nutrition.PerUnit, it.Basis())
	require.Equal(t, 0.5, it.Protein)

	it, err = pickMeasured(cat, "blueb")
	require.NoError(t, err)
	require.Equal(t, "Blueberries", it.Name)

	it, err = pickMeasured(cat, "Eggs (2) + butter")
	require.NoError(t, err, "falls back to an exact preset name")
	require.Equal(t, 175.0, it.Calories)

	_, err = pickMeasured(cat, "zzz")
	require.ErrorIs(t, err, tracker.ErrNoSelection)
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", "x", "--detach=true"})
	if diff := cmp.Diff([]string{"daemon", "--addr", "x"}, got); diff != "" {
		t.Errorf("filterDetachArg mismatch (-want +got):\n%s", diff)
	}
}

func TestMaskDSN(t *testing.T) {
	if got := maskDSN("postgres://me:secret@db/fivehundred"); got != "postgres://m..." {
		t.Errorf("maskDSN = %q", got)
	}
	if got := maskDSN("short"); got != "****" {
		t.Errorf("maskDSN(short) = %q", got)
	}
}

func TestLogLevelByCommand(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		want zapcore.Level
	}{
		{setupCmd, zapcore.WarnLevel},
		{foodAddCmd, zapcore.WarnLevel},
		{rootCmd, zapcore.WarnLevel},
		{importCmd, zapcore.InfoLevel},
		{backupPushCmd, zapcore.InfoLevel},
		{daemonCmd, zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := logLevel(tt.cmd); got != tt.want {
			t.Errorf("logLevel(%s) = %v, want %v", tt.cmd.CommandPath(), got, tt.want)
		}
	}
}

func execute(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("fivehundred %v: %v", args, err)
	}
}

func TestCommandsPersistToSQLite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	const day = "2024-03-01"
	global := []string{"--data-dir", dataDir, "--date", day, "--quiet"}
	run := func(args ...string) { execute(t, append(args, global...)...) }

	run("food", "custom", "Toast", "120", "4")
	run("food", "add", "apple")
	run("food", "measure", "Blueberries", "0.5")
	run("steps", "10000")
	run("weight", "add", "180")
	run("daily", "-n", "3")
	run("food", "rm", "2")
	run("food", "edit", "1", "--cal", "150")

	ctx := context.Background()
	st, err := store.OpenSQLite(filepath.Join(dataDir, "fivehundred.db"))
	require.NoError(t, err)
	defer st.Close()

	tr, err := tracker.Load(ctx, st, tracker.WithDate(day))
	require.NoError(t, err)

	want := []model.FoodEntry{
		{Name: "Toast", Calories: 150, Protein: 4},
		{Name: "Blueberries (0.5 cup)", Calories: 42, Protein: 0.55},
	}
	if diff := cmp.Diff(want, tr.Food()); diff != "" {
		t.Errorf("food log mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 10000, tr.Steps())
	require.Equal(t, []model.WeightSample{{Date: day, Weight: 180}}, tr.Weights())
}

func TestMeasureUsesMeasuredApple(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	const day = "2024-03-02"
	execute(t, "food", "measure", "Apple", "2", "--data-dir", dataDir, "--date", day, "--quiet")

	st, err := store.OpenSQLite(filepath.Join(dataDir, "fivehundred.db"))
	require.NoError(t, err)
	defer st.Close()
	tr, err := tracker.Load(context.Background(), st, tracker.WithDate(day))
	require.NoError(t, err)

	want := []model.FoodEntry{{Name: "Apple (2x)", Calories: 190, Protein: 1}}
	if diff := cmp.Diff(want, tr.Food()); diff != "" {
		t.Errorf("food log mismatch (-want +got):\n%s", diff)
	}
}

func TestImportBrowserExportCompletesOnboarding(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	export := filepath.Join(t.TempDir(), "localStorage.json")
	require.NoError(t, os.WriteFile(export, []byte(`{
  "sex": "male", "age": "30", "height": "70", "weight": "180",
  "steps-2024-03-03": "10000"
}`), 0o600))

	execute(t, "import", export, "--data-dir", dataDir, "--quiet")

	st, err := store.OpenSQLite(filepath.Join(dataDir, "fivehundred.db"))
	require.NoError(t, err)
	defer st.Close()
	tr, err := tracker.Load(context.Background(), st, tracker.WithDate("2024-03-03"))
	require.NoError(t, err)

	p, ok := tr.Onboarding().(model.Profile)
	require.True(t, ok, "onboarding = %T, want model.Profile", tr.Onboarding())
	require.Equal(t, 180.0, p.WeightLbs)
	require.Equal(t, 1683, tr.Goals().Calories)
}
