package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
)

func TestDefaultParsesEveryPreset(t *testing.T) {
	c := Default()
	if got := len(c.Presets()); got != len(presetLines) {
		t.Fatalf("len(Presets()) = %d, want %d", got, len(presetLines))
	}
	for _, it := range c.Presets() {
		if it.Basis() != nutrition.PerUnit {
			t.Errorf("%s: basis = %v, want per unit", it.Name, it.Basis())
		}
	}
}

func TestParsePreset(t *testing.T) {
	it, err := ParsePreset("Apple - 95 kcal / 1g protein")
	if err != nil {
		t.Fatalf("ParsePreset: %v", err)
	}
	if it.Name != "Apple" || it.Calories != 95 || it.Protein != 1 {
		t.Errorf("ParsePreset = %+v", it)
	}

	it, err = ParsePreset("Eggs (2), Egg white (1) + butter - 190 kcal / 15g protein")
	if err != nil {
		t.Fatalf("ParsePreset: %v", err)
	}
	if it.Name != "Eggs (2), Egg white (1) + butter" || it.Calories != 190 || it.Protein != 15 {
		t.Errorf("ParsePreset = %+v", it)
	}

	for _, bad := range []string{"Apple", "Apple - lots", "Apple - x kcal / 1g protein", " - 5 kcal / 1g protein"} {
		if _, err := ParsePreset(bad); !errors.Is(err, ErrMalformedPreset) {
			t.Errorf("ParsePreset(%q) error = %v, want ErrMalformedPreset", bad, err)
		}
	}
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestSearch(t *testing.T) {
	c := Default()

	if got := c.Search(""); len(got) != 0 {
		t.Errorf("Search(\"\") returned %d items, want 0", len(got))
	}

	got := names(c.Search("egg"))
	want := []string{"Egg", "Egg white", "Eggs (2) + butter", "Eggs (2), Egg white (1) + butter"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search(egg) mismatch (-want +got):\n%s", diff)
	}

	// Word-boundary match, case-insensitive.
	got = names(c.Search("Milk"))
	if len(got) != 5 {
		t.Errorf("Search(Milk) = %v, want four almond milk portions and chia pudding", got)
	}

	// Mid-word fragments do not match.
	if got := c.Search("pple"); len(got) != 0 {
		t.Errorf("Search(pple) = %v, want none", names(got))
	}
}

func TestSearchMeasured(t *testing.T) {
	got := Default().SearchMeasured("chick")
	if len(got) != 1 || got[0].Name != "Chicken breast" || got[0].Basis() != nutrition.Per100g {
		t.Fatalf("SearchMeasured(chick) = %+v", got)
	}
}

func TestLookup(t *testing.T) {
	c := Default()
	it, ok := c.Lookup("  apple ")
	if !ok || it.Calories != 95 {
		t.Fatalf("Lookup(apple) = %+v, %v", it, ok)
	}
	it, ok = c.Lookup("oats")
	if !ok || it.Basis() != nutrition.PerCup {
		t.Fatalf("Lookup(oats) = %+v, %v, want measured per-cup item", it, ok)
	}
	if _, ok := c.Lookup("durian"); ok {
		t.Error("Lookup(durian) found an item")
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `presets:
  - "Skyr (170g) - 100 kcal / 17g protein"
  - "Apple - 80 kcal / 0.4g protein"
measured:
  - name: Tofu (firm)
    basis: per_100g
    calories: 144
    protein: 17.3
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(c.Presets()); got != len(presetLines)+1 {
		t.Errorf("len(Presets()) = %d, want %d", got, len(presetLines)+1)
	}
	apple, _ := c.Lookup("Apple")
	if apple.Calories != 80 {
		t.Errorf("Apple calories = %v, want override 80", apple.Calories)
	}
	tofu := c.SearchMeasured("tofu")
	if len(tofu) != 1 || tofu[0].Protein != 17.3 {
		t.Errorf("SearchMeasured(tofu) = %+v", tofu)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("measured:\n  - name: Lard\n    basis: per_bucket\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted an unknown basis")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}
