package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/fivehundred/internal/catalog"
	"github.com/theirongolddev/fivehundred/internal/config"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"github.com/theirongolddev/fivehundred/internal/store"
	"github.com/theirongolddev/fivehundred/internal/tracker"
	"github.com/theirongolddev/fivehundred/internal/tui/components"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestApp(t *testing.T, onboard bool) (App, *clock) {
	t.Helper()
	theme.SetActive("flexoki-dark")
	clk := &clock{now: time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)}
	st := store.NewMemory()
	tr, err := tracker.Load(context.Background(), st, tracker.WithClock(clk.Now))
	if err != nil {
		t.Fatalf("tracker.Load: %v", err)
	}
	if onboard {
		if _, err := tr.CompleteOnboarding(context.Background(), model.ProfileDraft{
			Sex: "male", Age: "30", Height: "70", Weight: "180",
		}); err != nil {
			t.Fatalf("CompleteOnboarding: %v", err)
		}
	}

	a := NewApp(Options{Store: st, Catalog: catalog.Default(), Config: config.DefaultConfig(), Now: clk.Now})
	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a = update(t, a, LoadedMsg{Tracker: tr})
	return a, clk
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return next
}

func typeKeys(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		a = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return a
}

func enter(t *testing.T, a App) App {
	t.Helper()
	return update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestTabKeysSwitchTabs(t *testing.T) {
	a, _ := newTestApp(t, true)

	for _, tc := range []struct {
		key  string
		want int
	}{
		{"f", tabFood},
		{"w", tabWeight},
		{"x", tabSettings},
		{"h", tabHome},
	} {
		a = typeKeys(t, a, tc.key)
		if a.activeTab != tc.want {
			t.Fatalf("after %q activeTab = %d, want %d", tc.key, a.activeTab, tc.want)
		}
	}

	a = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabFood {
		t.Fatalf("right arrow: activeTab = %d, want %d", a.activeTab, tabFood)
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	a = update(t, a, tea.KeyMsg{Type: tea.KeyLeft})
	if a.activeTab != tabSettings {
		t.Fatalf("left arrow wrap: activeTab = %d, want %d", a.activeTab, tabSettings)
	}
}

func TestClickTabBarSwitchesTab(t *testing.T) {
	a, _ := newTestApp(t, true)

	x := 0
	for i := 0; i < tabWeight; i++ {
		x += components.TabVisualWidth(components.Tabs[i], i == a.activeTab) + 1
	}
	click := tea.MouseMsg{X: x + 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	a = update(t, a, click)
	if a.activeTab != tabWeight {
		t.Fatalf("click on Weight: activeTab = %d, want %d", a.activeTab, tabWeight)
	}

	click.Y = 3
	click.X = 0
	a = update(t, a, click)
	if a.activeTab != tabWeight {
		t.Errorf("click below the bar changed tab to %d", a.activeTab)
	}
}

func TestIncompleteProfileStartsOnboarding(t *testing.T) {
	a, _ := newTestApp(t, false)
	if a.onboardForm == nil {
		t.Fatal("onboarding form should be shown for an incomplete profile")
	}
	if a.reopened {
		t.Error("first-run onboarding should not be cancellable")
	}
	// Keys go to the form, not tab navigation.
	a = typeKeys(t, a, "w")
	if a.activeTab != tabHome {
		t.Errorf("activeTab = %d while onboarding, want home", a.activeTab)
	}
}

func TestReopenedOnboardingCancels(t *testing.T) {
	a, _ := newTestApp(t, true)
	a = typeKeys(t, a, "x")
	a = typeKeys(t, a, "j")
	a = enter(t, a)
	if a.onboardForm == nil || !a.reopened {
		t.Fatal("enter on Profile should open the prefilled form")
	}
	if got := a.onboardVals.Age; got != "30" {
		t.Errorf("prefilled age = %q, want 30", got)
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.onboardForm != nil {
		t.Fatal("esc should close a reopened form")
	}
	if _, ok := a.tr.Profile(); !ok {
		t.Error("cancelling must keep the saved profile")
	}
}

func TestFoodSearchAddsPreset(t *testing.T) {
	a, _ := newTestApp(t, true)
	a = typeKeys(t, a, "f/egg")
	if !a.food.searching {
		t.Fatal("search should be active after /")
	}
	if len(a.food.results) == 0 || a.food.results[0].measured {
		t.Fatalf("results = %+v, want presets first", a.food.results)
	}
	want := a.food.results[0].item

	a = enter(t, a)
	food := a.tr.Food()
	if len(food) != 1 {
		t.Fatalf("food entries = %d, want 1", len(food))
	}
	if food[0].Name != want.Name || food[0].Calories != want.Calories {
		t.Errorf("entry = %+v, want %s", food[0], want)
	}
	if a.flash.Error || !strings.HasPrefix(a.flash.Text, "Added ") {
		t.Errorf("flash = %+v", a.flash)
	}
}

func TestFoodSearchEmptyIsNoSelection(t *testing.T) {
	a, _ := newTestApp(t, true)
	a = typeKeys(t, a, "f/")
	a = enter(t, a)
	if len(a.tr.Food()) != 0 {
		t.Fatal("enter with no results must not add anything")
	}
	if !a.flash.Error {
		t.Error("expected an error flash")
	}
}

func TestSubmitCustomAndEdit(t *testing.T) {
	a, _ := newTestApp(t, true)
	a.activeTab = tabFood

	a.food.formKind = foodFormCustom
	a.food.vals = &foodFormValues{Name: "Toast", Calories: "120", Protein: "abc"}
	m, _ := a.submitFoodForm()
	a = m.(App)
	food := a.tr.Food()
	if len(food) != 1 || food[0].Calories != 120 || food[0].Protein != 0 {
		t.Fatalf("food = %+v, want Toast 120/0", food)
	}

	a.food.formKind = foodFormEdit
	a.food.vals = &foodFormValues{Name: "Toast x2", Calories: "240", Protein: "8", index: 0}
	m, _ = a.submitFoodForm()
	a = m.(App)
	if got := a.tr.Food()[0]; got.Name != "Toast x2" || got.Calories != 240 || got.Protein != 8 {
		t.Errorf("edited = %+v", got)
	}

	a.food.formKind = foodFormCustom
	a.food.vals = &foodFormValues{Name: "", Calories: "50"}
	m, _ = a.submitFoodForm()
	a = m.(App)
	if len(a.tr.Food()) != 1 || !a.flash.Error {
		t.Errorf("empty name should be rejected, food=%d flash=%+v", len(a.tr.Food()), a.flash)
	}
}

func TestDeleteFoodClampsCursor(t *testing.T) {
	a, _ := newTestApp(t, true)
	ctx := context.Background()
	for _, n := range []string{"A", "B"} {
		if _, err := a.tr.AddCustom(ctx, n, "100", "1"); err != nil {
			t.Fatal(err)
		}
	}
	a = typeKeys(t, a, "fjd")
	if got := len(a.tr.Food()); got != 1 {
		t.Fatalf("entries = %d, want 1", got)
	}
	if a.food.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.food.cursor)
	}
	if a.tr.Food()[0].Name != "A" {
		t.Errorf("remaining = %q, want A", a.tr.Food()[0].Name)
	}
}

func TestMeasureFrom(t *testing.T) {
	c := catalog.Default()
	chicken, ok := c.Lookup("Chicken breast")
	if !ok {
		t.Fatal("Chicken breast missing from catalog")
	}
	m, err := measureFrom(&foodFormValues{item: chicken, Amount: "200"})
	if err != nil {
		t.Fatalf("measureFrom: %v", err)
	}
	if g, ok := m.(nutrition.Grams); !ok || g.G != 200 {
		t.Errorf("measure = %#v, want Grams{200}", m)
	}

	oats, ok := c.Lookup("Oats")
	if !ok {
		t.Fatal("Oats missing from catalog")
	}
	m, err = measureFrom(&foodFormValues{item: oats, Amount: "2", Unit: "tbsp"})
	if err != nil {
		t.Fatalf("measureFrom: %v", err)
	}
	if v, ok := m.(nutrition.Volume); !ok || v.Unit != nutrition.Tbsp || v.Amount != 2 {
		t.Errorf("measure = %#v, want Volume{2 tbsp}", m)
	}

	if _, err := measureFrom(&foodFormValues{item: oats, Amount: "lots"}); err == nil {
		t.Error("non-numeric amount should fail")
	}
}

func TestStepsInput(t *testing.T) {
	a, _ := newTestApp(t, true)
	a = typeKeys(t, a, "s10000")
	a = enter(t, a)
	if a.home.editingSteps {
		t.Error("editing should end after a valid entry")
	}
	if got := a.tr.Steps(); got != 10000 {
		t.Fatalf("steps = %d, want 10000", got)
	}
	if got := a.tr.Goals().Calories; got != 1683 {
		t.Errorf("calorie goal = %d, want 1683", got)
	}
}

func TestWeightInputRejectsGarbage(t *testing.T) {
	a, _ := newTestApp(t, true)
	a = typeKeys(t, a, "waabc")
	a = enter(t, a)
	if len(a.tr.Weights()) != 0 {
		t.Fatal("non-numeric weight must not be stored")
	}
	if !a.flash.Error || !a.weight.adding {
		t.Errorf("expected error flash with input still open, flash=%+v adding=%v", a.flash, a.weight.adding)
	}

	a = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	a = typeKeys(t, a, "a185")
	a = enter(t, a)
	samples := a.tr.Weights()
	if len(samples) != 1 || samples[0].Weight != 185 || samples[0].Date != "2026-10-18" {
		t.Fatalf("samples = %+v, want [{2026-10-18 185}]", samples)
	}
}

func TestTickRollsOverDay(t *testing.T) {
	a, clk := newTestApp(t, true)
	if _, err := a.tr.AddCustom(context.Background(), "Apple", "95", "0"); err != nil {
		t.Fatal(err)
	}

	a = update(t, a, tickMsg(clk.now))
	if len(a.tr.Food()) != 1 {
		t.Fatal("same-day tick must not reset the ledger")
	}

	clk.now = clk.now.AddDate(0, 0, 1)
	a = update(t, a, tickMsg(clk.now))
	if len(a.tr.Food()) != 0 {
		t.Fatalf("ledger after rollover = %d entries, want 0", len(a.tr.Food()))
	}
	if !strings.Contains(a.flash.Text, "2026-10-19") {
		t.Errorf("flash = %q, want new day notice", a.flash.Text)
	}
}

func TestSettingsCycleTheme(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a, _ := newTestApp(t, true)
	a = typeKeys(t, a, "x")
	a = enter(t, a)
	defer theme.SetActive("flexoki-dark")

	if theme.Active.Name != "catppuccin-mocha" {
		t.Fatalf("theme = %q, want catppuccin-mocha", theme.Active.Name)
	}
	if a.settings.saveErr != nil || !a.settings.saved {
		t.Fatalf("save: err=%v saved=%v", a.settings.saveErr, a.settings.saved)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if cfg.Appearance.Theme != "catppuccin-mocha" {
		t.Errorf("saved theme = %q", cfg.Appearance.Theme)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a, _ := newTestApp(t, true)
	if _, err := a.tr.AddCustom(context.Background(), "Greek yogurt", "100", "17"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.tr.AddWeight(context.Background(), "180"); err != nil {
		t.Fatal(err)
	}

	wants := map[int]string{
		tabHome:     "Remaining",
		tabFood:     "Greek yogurt",
		tabWeight:   "History",
		tabSettings: "Config file",
	}
	for tab, want := range wants {
		a.activeTab = tab
		view := a.View()
		if !strings.Contains(view, want) {
			t.Errorf("tab %d view missing %q", tab, want)
		}
		if got := lipgloss.Height(view); got != 40 {
			t.Errorf("tab %d view height = %d, want 40", tab, got)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a, _ := newTestApp(t, true)
	a = update(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("narrow terminal should show a warning")
	}
}

func TestListWindow(t *testing.T) {
	tests := []struct {
		n, cursor, size int
		start, end      int
	}{
		{3, 0, 5, 0, 3},
		{10, 0, 4, 0, 4},
		{10, 5, 4, 3, 7},
		{10, 9, 4, 6, 10},
	}
	for _, tt := range tests {
		s, e := listWindow(tt.n, tt.cursor, tt.size)
		if s != tt.start || e != tt.end {
			t.Errorf("listWindow(%d, %d, %d) = %d,%d want %d,%d", tt.n, tt.cursor, tt.size, s, e, tt.start, tt.end)
		}
	}
}
