package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/theirongolddev/fivehundred/internal/catalog"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"github.com/theirongolddev/fivehundred/internal/store"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)

func newTracker(t *testing.T, st store.Store) *Tracker {
	t.Helper()
	tr, err := Load(context.Background(), st, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tr
}

func onboarded(t *testing.T) (*Tracker, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	tr := newTracker(t, st)
	_, err := tr.CompleteOnboarding(context.Background(), model.ProfileDraft{
		Sex: "male", Age: "30", Height: "70", Weight: "180",
	})
	if err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	return tr, st
}

func get(t *testing.T, st store.Store, key string) string {
	t.Helper()
	v, _, err := st.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%s): %v", key, err)
	}
	return v
}

func TestFreshTrackerIsIncomplete(t *testing.T) {
	tr := newTracker(t, store.NewMemory())
	if _, ok := tr.Onboarding().(model.Incomplete); !ok {
		t.Fatalf("Onboarding() = %T, want Incomplete", tr.Onboarding())
	}
	g := tr.Goals()
	if g.BMR != nutrition.FallbackBMR || g.Calories != 1100 {
		t.Errorf("Goals() = %+v, want fallback", g)
	}
	if tr.Today() != "2026-10-18" {
		t.Errorf("Today() = %q", tr.Today())
	}
}

func TestCompleteOnboardingPersists(t *testing.T) {
	tr, st := onboarded(t)

	p, ok := tr.Profile()
	if !ok || p.Age != 30 || p.Sex != model.SexMale {
		t.Fatalf("Profile() = %+v, %v", p, ok)
	}
	for key, want := range map[string]string{
		store.KeySex:                "male",
		store.KeyAge:                "30",
		store.KeyHeight:             "70",
		store.KeyWeight:             "180",
		store.KeyOnboardingComplete: "true",
	} {
		if got := get(t, st, key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}

	again := newTracker(t, st)
	if _, ok := again.Profile(); !ok {
		t.Error("reloaded tracker lost the profile")
	}
	if got := again.Goals(); got.BMR != 1783 || got.Protein != 144 {
		t.Errorf("Goals() after reload = %+v", got)
	}
}

func TestCompleteOnboardingRejectsBadInput(t *testing.T) {
	st := store.NewMemory()
	tr := newTracker(t, st)
	_, err := tr.CompleteOnboarding(context.Background(), model.ProfileDraft{Sex: "male", Age: "thirty", Height: "70"})
	if !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("error = %v, want ErrProfileIncomplete", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "age" {
		t.Errorf("first field error = %v, want age", fe)
	}
	if _, ok := tr.Onboarding().(model.Incomplete); !ok {
		t.Error("state changed after rejected onboarding")
	}
	if get(t, st, store.KeyOnboardingComplete) != "" {
		t.Error("onboardingComplete written for rejected input")
	}
}

func TestIncompleteDraftStillDrivesGoals(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	_ = st.Set(ctx, store.KeySex, "male")
	_ = st.Set(ctx, store.KeyAge, "30")
	_ = st.Set(ctx, store.KeyHeight, "70")
	_ = st.Set(ctx, store.KeyWeight, "180")

	tr := newTracker(t, st)
	if _, ok := tr.Onboarding().(model.Incomplete); !ok {
		t.Fatal("profile without onboardingComplete should stay Incomplete")
	}
	if got := tr.Goals().BMR; got != 1783 {
		t.Errorf("BMR from draft = %d, want 1783", got)
	}
}

func TestReopenOnboardingPrefills(t *testing.T) {
	tr, st := onboarded(t)
	d := tr.ReopenOnboarding()
	if d.Age != "30" || d.Weight != "180" {
		t.Errorf("draft = %+v", d)
	}
	if _, ok := tr.Onboarding().(model.Incomplete); !ok {
		t.Error("ReopenOnboarding did not switch to Incomplete")
	}
	if get(t, st, store.KeyOnboardingComplete) != "true" {
		t.Error("reopen should not touch storage")
	}
}

func TestAddPresetAndRemoveRoundTrip(t *testing.T) {
	tr, st := onboarded(t)
	ctx := context.Background()
	apple, ok := catalog.Default().Lookup("Apple")
	if !ok {
		t.Fatal("Apple missing from catalog")
	}

	before := tr.Totals()
	e, err := tr.AddPreset(ctx, apple)
	if err != nil {
		t.Fatalf("AddPreset: %v", err)
	}
	if e.Name != "Apple" || e.Calories != 95 {
		t.Errorf("entry = %+v", e)
	}
	if got := tr.Totals().Calories - before.Calories; got != 95 {
		t.Errorf("calorie delta = %v, want 95", got)
	}
	if got := get(t, st, store.FoodLogKey("2026-10-18")); got != `[{"name":"Apple","cal":95,"prot":1}]` {
		t.Errorf("stored log = %s", got)
	}

	if _, err := tr.RemoveFood(ctx, 0); err != nil {
		t.Fatalf("RemoveFood: %v", err)
	}
	if tr.Totals() != before {
		t.Errorf("Totals() = %+v after remove, want %+v", tr.Totals(), before)
	}
	if got := get(t, st, store.FoodLogKey("2026-10-18")); got != "[]" {
		t.Errorf("stored log after remove = %s", got)
	}
}

func TestAddMeasuredFood(t *testing.T) {
	tr, _ := onboarded(t)
	ctx := context.Background()
	chicken, _ := catalog.Default().Lookup("Chicken breast")

	e, err := tr.AddFood(ctx, chicken, nutrition.Grams{G: 150})
	if err != nil {
		t.Fatalf("AddFood: %v", err)
	}
	if e.Name != "Chicken breast (150g)" || e.Calories != 247.5 || e.Protein != 46.5 {
		t.Errorf("entry = %+v", e)
	}

	if _, err := tr.AddFood(ctx, chicken, nutrition.Grams{G: 0}); !errors.Is(err, nutrition.ErrInvalidAmount) {
		t.Errorf("zero grams error = %v", err)
	}
	if _, err := tr.AddFood(ctx, nil, nutrition.Grams{G: 100}); !errors.Is(err, ErrNoSelection) {
		t.Errorf("nil food error = %v", err)
	}
	if len(tr.Food()) != 1 {
		t.Errorf("rejected adds changed the ledger: %d entries", len(tr.Food()))
	}
}

func TestAddCustom(t *testing.T) {
	tr, _ := onboarded(t)
	ctx := context.Background()

	e, err := tr.AddCustom(ctx, " Leftover pizza ", "285", "abc")
	if err != nil {
		t.Fatalf("AddCustom: %v", err)
	}
	if diff := cmp.Diff(model.FoodEntry{Name: "Leftover pizza", Calories: 285}, e); diff != "" {
		t.Errorf("entry (-want +got):\n%s", diff)
	}

	tests := []struct {
		name, cal string
		want      error
	}{
		{"", "100", ErrEmptyName},
		{"   ", "100", ErrEmptyName},
		{"Soup", "lots", ErrInvalidNumber},
		{"Soup", "", ErrInvalidNumber},
		{"Soup", "-20", ErrOutOfRange},
	}
	for _, tt := range tests {
		if _, err := tr.AddCustom(ctx, tt.name, tt.cal, "5"); !errors.Is(err, tt.want) {
			t.Errorf("AddCustom(%q, %q) error = %v, want %v", tt.name, tt.cal, err, tt.want)
		}
	}
	if len(tr.Food()) != 1 {
		t.Errorf("rejected adds changed the ledger: %d entries", len(tr.Food()))
	}
}

func TestEditFoodChangesOnlyThatEntry(t *testing.T) {
	tr, _ := onboarded(t)
	ctx := context.Background()
	_, _ = tr.AddCustom(ctx, "Apple", "95", "1")
	_, _ = tr.AddCustom(ctx, "Egg", "70", "6")

	if _, err := tr.EditFood(ctx, 1, "Egg (large)", "80", "seven"); err != nil {
		t.Fatalf("EditFood: %v", err)
	}
	want := []model.FoodEntry{
		{Name: "Apple", Calories: 95, Protein: 1},
		{Name: "Egg (large)", Calories: 80, Protein: 0},
	}
	if diff := cmp.Diff(want, tr.Food()); diff != "" {
		t.Errorf("ledger (-want +got):\n%s", diff)
	}
	if got := tr.Totals(); got != (model.Totals{Calories: 175, Protein: 1}) {
		t.Errorf("Totals() = %+v", got)
	}
	if _, err := tr.EditFood(ctx, 2, "x", "1", "1"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("EditFood(2) error = %v", err)
	}
}

func TestEditFoodKeepsNameAsGiven(t *testing.T) {
	tr, _ := onboarded(t)
	ctx := context.Background()
	_, _ = tr.AddCustom(ctx, "Apple", "95", "1")

	e, err := tr.EditFood(ctx, 0, "", "", "2")
	if err != nil {
		t.Fatalf("EditFood with empty name: %v", err)
	}
	if diff := cmp.Diff(model.FoodEntry{Protein: 2}, e); diff != "" {
		t.Errorf("entry (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.FoodEntry{{Protein: 2}}, tr.Food()); diff != "" {
		t.Errorf("ledger (-want +got):\n%s", diff)
	}
}

func TestStepsAdjustGoal(t *testing.T) {
	tr, st := onboarded(t)
	ctx := context.Background()
	if err := tr.SetSteps(ctx, "10000"); err != nil {
		t.Fatalf("SetSteps: %v", err)
	}
	g := tr.Goals()
	if g.StepCalories != 400 || g.Calories != 1783-500+400 {
		t.Errorf("Goals() = %+v", g)
	}
	if got := get(t, st, store.StepsKey("2026-10-18")); got != "10000" {
		t.Errorf("stored steps = %q", got)
	}
	for _, bad := range []string{"many", "-1"} {
		if err := tr.SetSteps(ctx, bad); err == nil {
			t.Errorf("SetSteps(%q) accepted", bad)
		}
	}
	if tr.Steps() != 10000 {
		t.Errorf("Steps() = %d after rejected input", tr.Steps())
	}
}

func TestAddWeight(t *testing.T) {
	tr, st := onboarded(t)
	ctx := context.Background()

	s, err := tr.AddWeight(ctx, "185")
	if err != nil {
		t.Fatalf("AddWeight: %v", err)
	}
	if s != (model.WeightSample{Date: "2026-10-18", Weight: 185}) {
		t.Errorf("sample = %+v", s)
	}
	for _, bad := range []string{"heavy", "", "0", "-3", "NaN"} {
		if _, err := tr.AddWeight(ctx, bad); err == nil {
			t.Errorf("AddWeight(%q) accepted", bad)
		}
	}
	if n := len(tr.Weights()); n != 1 {
		t.Fatalf("len(Weights()) = %d, want 1", n)
	}
	if got := get(t, st, store.KeyWeightLog); got != `[{"date":"2026-10-18","weight":185}]` {
		t.Errorf("stored weightLog = %s", got)
	}

	if _, err := tr.EditWeight(ctx, 0, "2026-10-17", "184.5"); err != nil {
		t.Fatalf("EditWeight: %v", err)
	}
	if _, err := tr.EditWeight(ctx, 0, "yesterday", "184.5"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("EditWeight bad date error = %v", err)
	}
	labels, values := tr.WeightSeries()
	if labels[0] != "2026-10-17" || values[0] != 184.5 {
		t.Errorf("series = %v %v", labels, values)
	}
	if _, err := tr.DeleteWeight(ctx, 0); err != nil {
		t.Fatalf("DeleteWeight: %v", err)
	}
	if _, err := tr.DeleteWeight(ctx, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DeleteWeight on empty history error = %v", err)
	}
}

func TestMalformedStorageUsesDefaults(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	_ = st.Set(ctx, store.FoodLogKey("2026-10-18"), "{not json")
	_ = st.Set(ctx, store.StepsKey("2026-10-18"), "lots")
	_ = st.Set(ctx, store.KeyWeightLog, "42")

	tr := newTracker(t, st)
	if len(tr.Food()) != 0 || tr.Steps() != 0 || len(tr.Weights()) != 0 {
		t.Errorf("malformed data leaked: food=%v steps=%d weights=%v", tr.Food(), tr.Steps(), tr.Weights())
	}
}

func TestDayRollover(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	now := fixedNow
	tr, err := Load(ctx, st, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatal(err)
	}
	_, _ = tr.AddCustom(ctx, "Apple", "95", "1")
	_ = tr.SetStepCount(ctx, 5000)
	_, _ = tr.AddWeight(ctx, "185")

	if rolled, _ := tr.Rollover(ctx); rolled {
		t.Fatal("Rollover() reported a change on the same day")
	}

	now = now.Add(24 * time.Hour)
	rolled, err := tr.Rollover(ctx)
	if err != nil || !rolled {
		t.Fatalf("Rollover() = %v, %v", rolled, err)
	}
	if len(tr.Food()) != 0 || tr.Steps() != 0 {
		t.Errorf("new day not empty: food=%v steps=%d", tr.Food(), tr.Steps())
	}
	if len(tr.Weights()) != 1 {
		t.Error("weight history should survive the rollover")
	}
	_, _ = tr.AddCustom(ctx, "Egg", "70", "6")
	if get(t, st, store.FoodLogKey("2026-10-19")) == "" {
		t.Error("new day's log not written under the new key")
	}
	if got := get(t, st, store.FoodLogKey("2026-10-18")); got != `[{"name":"Apple","cal":95,"prot":1}]` {
		t.Errorf("previous day's log changed: %s", got)
	}
}

func TestPinnedDate(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	tr, err := Load(ctx, st, WithDate("2026-01-02"))
	if err != nil {
		t.Fatal(err)
	}
	_ = tr.SetStepCount(ctx, 1234)
	if got := get(t, st, store.StepsKey("2026-01-02")); got != "1234" {
		t.Errorf("pinned steps = %q", got)
	}
	if _, err := Load(ctx, st, WithDate("Jan 2")); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Load with bad date error = %v", err)
	}
}

type failingStore struct{ *store.Memory }

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	tr := newTracker(t, failingStore{store.NewMemory()})
	ctx := context.Background()
	if _, err := tr.AddCustom(ctx, "Apple", "95", "1"); err == nil {
		t.Fatal("AddCustom succeeded with a failing store")
	}
	if len(tr.Food()) != 0 {
		t.Error("ledger changed although the write failed")
	}
	if err := tr.SetStepCount(ctx, 100); err == nil || tr.Steps() != 0 {
		t.Errorf("SetStepCount err=%v steps=%d", err, tr.Steps())
	}
}

func TestSummary(t *testing.T) {
	tr, _ := onboarded(t)
	ctx := context.Background()
	_, _ = tr.AddCustom(ctx, "Apple", "95", "1")
	_ = tr.SetStepCount(ctx, 10000)
	_, _ = tr.AddWeight(ctx, "181")

	s := tr.Summary()
	if !s.Onboarded || s.Entries != 1 || s.Goals.Calories != 1683 || s.Totals.Calories != 95 {
		t.Errorf("Summary() = %+v", s)
	}
	if s.LastWeight == nil || s.LastWeight.Weight != 181 {
		t.Errorf("LastWeight = %v", s.LastWeight)
	}
}
