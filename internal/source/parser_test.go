package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/theirongolddev/fivehundred/internal/store"
)

const export = `{
  "sex": "male",
  "age": "30",
  "height": "70",
  "weight": "180",
  "onboardingComplete": "true",
  "foodLog-2026-10-17": "[{\"name\":\"Apple\",\"cal\":95,\"prot\":1}]",
  "steps-2026-10-17": "8450",
  "weightLog": "[{\"date\":\"2026-10-17\",\"weight\":180},{\"date\":\"bad\",\"weight\":1}]",
  "foodLog-2026-10-18": [{"name":"Egg","cal":70,"prot":6}],
  "steps-2026-10-18": "NaN",
  "foodLog-notadate": "[]",
  "theme": "dark"
}`

func TestParse(t *testing.T) {
	r := Parse([]byte(export))
	if r.Err != nil {
		t.Fatalf("Parse: %v", r.Err)
	}
	want := map[string]string{
		store.KeySex:                "male",
		store.KeyAge:                "30",
		store.KeyHeight:             "70",
		store.KeyWeight:             "180",
		store.KeyOnboardingComplete: "true",
		"foodLog-2026-10-17":        `[{"name":"Apple","cal":95,"prot":1}]`,
		"foodLog-2026-10-18":        `[{"name":"Egg","cal":70,"prot":6}]`,
		"steps-2026-10-17":          "8450",
		store.KeyWeightLog:          `[{"date":"2026-10-17","weight":180}]`,
	}
	if diff := cmp.Diff(want, r.Entries); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
	if r.ParseErrors != 2 {
		t.Errorf("ParseErrors = %d, want 2", r.ParseErrors)
	}
	if diff := cmp.Diff([]string{"theme"}, r.Skipped); diff != "" {
		t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
	}
	if !r.HasProfile || r.FoodDays != 2 || r.StepDays != 1 || r.Weights != 1 {
		t.Errorf("counts = %+v", r)
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	if r := Parse([]byte(`["not", "an", "object"]`)); r.Err == nil {
		t.Fatal("Parse accepted a JSON array")
	}
}

func TestScanPathAndMerge(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write("a.json", `{"steps-2026-10-01": "100"}`)
	write("nested/b.json", `{"steps-2026-10-01": "200", "steps-2026-10-02": "300"}`)
	write("notes.txt", `ignored`)

	files, err := ScanPath(dir)
	if err != nil {
		t.Fatalf("ScanPath: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2", len(files))
	}

	var results []ParseResult
	for _, f := range files {
		results = append(results, ParseFile(f))
	}
	merged := Merge(results)
	if merged["steps-2026-10-01"] != "200" || merged["steps-2026-10-02"] != "300" {
		t.Errorf("Merge = %v", merged)
	}

	single, err := ScanPath(filepath.Join(dir, "a.json"))
	if err != nil || len(single) != 1 {
		t.Fatalf("ScanPath(file) = %v, %v", single, err)
	}
	if _, err := ScanPath(filepath.Join(dir, "missing")); err == nil {
		t.Error("ScanPath accepted a missing path")
	}
}

func TestParseFileMissing(t *testing.T) {
	r := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "gone.json")})
	if r.Err == nil {
		t.Fatal("ParseFile on a missing file returned no error")
	}
	keys := Merge([]ParseResult{r})
	if len(keys) != 0 {
		t.Errorf("Merge included a failed file: %v", keys)
	}
}

func TestParseMarksFullProfileOnboarded(t *testing.T) {
	r := Parse([]byte(`{"sex":"female","age":"41","height":"64","weight":"150","steps-2026-10-17":"3000"}`))
	if r.Err != nil {
		t.Fatalf("Parse: %v", r.Err)
	}
	if !r.HasProfile {
		t.Fatal("HasProfile = false for a full profile")
	}
	if got := r.Entries[store.KeyOnboardingComplete]; got != "true" {
		t.Errorf("onboardingComplete = %q, want true", got)
	}

	r = Parse([]byte(`{"sex":"female","age":"41","height":"64"}`))
	if _, ok := r.Entries[store.KeyOnboardingComplete]; ok || r.HasProfile {
		t.Errorf("partial profile marked onboarded: %+v", r.Entries)
	}
}
