// Package tracker owns the application state: onboarding, the day's food
// ledger and step count, and the weight history. Every mutation is written
// through to a store.Store before it becomes visible.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/fivehundred/internal/ledger"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"github.com/theirongolddev/fivehundred/internal/store"

	"go.uber.org/zap"
)

// Tracker is the single owner of mutable tracker state. It is not safe for
// concurrent use.
type Tracker struct {
	st   store.Store
	log  *zap.Logger
	now  func() time.Time
	date string // pinned day, empty for the local calendar day

	onboarding model.Onboarding
	day        string
	food       *ledger.Food
	steps      int
	weights    *ledger.Weights
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithDate pins the day-scoped state to date (YYYY-MM-DD) instead of today.
func WithDate(date string) Option {
	return func(t *Tracker) { t.date = date }
}

// Load reads all state from st. Malformed stored values are treated as
// absent; only storage failures are returned.
func Load(ctx context.Context, st store.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		st:  st,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	if t.date != "" {
		if _, err := ParseDate(t.date); err != nil {
			return nil, fmt.Errorf("date %q: %w", t.date, err)
		}
	}

	if err := t.loadProfile(ctx); err != nil {
		return nil, err
	}
	if err := t.loadDay(ctx, t.Today()); err != nil {
		return nil, err
	}
	var samples []model.WeightSample
	if err := t.loadJSON(ctx, store.KeyWeightLog, &samples); err != nil {
		return nil, err
	}
	t.weights = ledger.NewWeights(samples)
	return t, nil
}

// Today is the date the food ledger and steps are scoped to.
func (t *Tracker) Today() string {
	if t.date != "" {
		return t.date
	}
	return DateString(t.now())
}

// Rollover reloads the day-scoped state when the calendar day has changed
// since it was loaded. It reports whether a reload happened.
func (t *Tracker) Rollover(ctx context.Context) (bool, error) {
	today := t.Today()
	if today == t.day {
		return false, nil
	}
	if err := t.loadDay(ctx, today); err != nil {
		return false, err
	}
	t.log.Info("day rollover", zap.String("date", today))
	return true, nil
}

func (t *Tracker) loadProfile(ctx context.Context) error {
	var d model.ProfileDraft
	for key, dst := range map[string]*string{
		store.KeySex:    &d.Sex,
		store.KeyAge:    &d.Age,
		store.KeyHeight: &d.Height,
		store.KeyWeight: &d.Weight,
	} {
		v, _, err := t.st.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}
		*dst = v
	}
	done, _, err := t.st.Get(ctx, store.KeyOnboardingComplete)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}
	if p, err := ParseProfile(d); err == nil && done == "true" {
		t.onboarding = p
	} else {
		t.onboarding = model.Incomplete{Draft: d}
	}
	return nil
}

func (t *Tracker) loadDay(ctx context.Context, date string) error {
	var entries []model.FoodEntry
	if err := t.loadJSON(ctx, store.FoodLogKey(date), &entries); err != nil {
		return err
	}
	raw, _, err := t.st.Get(ctx, store.StepsKey(date))
	if err != nil {
		return fmt.Errorf("loading steps: %w", err)
	}
	steps := 0
	if raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
			steps = n
		} else {
			t.log.Debug("ignoring malformed steps", zap.String("date", date), zap.String("value", raw))
		}
	}
	t.day = date
	t.food = ledger.NewFood(entries)
	t.steps = steps
	return nil
}

// loadJSON decodes key into dst. Missing or malformed values leave dst
// untouched.
func (t *Tracker) loadJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := t.st.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		t.log.Debug("ignoring malformed value", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (t *Tracker) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := t.st.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Onboarding returns either the completed Profile or the Incomplete draft.
func (t *Tracker) Onboarding() model.Onboarding { return t.onboarding }

// Profile returns the completed profile.
func (t *Tracker) Profile() (model.Profile, bool) {
	p, ok := t.onboarding.(model.Profile)
	return p, ok
}

// currentProfile returns the best available metrics for goal computation:
// the completed profile, or whatever parses from the draft.
func (t *Tracker) currentProfile() model.Profile {
	switch o := t.onboarding.(type) {
	case model.Profile:
		return o
	case model.Incomplete:
		return LenientProfile(o.Draft)
	}
	return model.Profile{}
}

// CompleteOnboarding validates d, persists it and switches to the Profile
// state. On error the state is unchanged.
func (t *Tracker) CompleteOnboarding(ctx context.Context, d model.ProfileDraft) (model.Profile, error) {
	p, err := ParseProfile(d)
	if err != nil {
		return model.Profile{}, err
	}
	clean := p.Draft()
	if err := store.SetAll(ctx, t.st, map[string]string{
		store.KeySex:                clean.Sex,
		store.KeyAge:                clean.Age,
		store.KeyHeight:             clean.Height,
		store.KeyWeight:             clean.Weight,
		store.KeyOnboardingComplete: "true",
	}); err != nil {
		return model.Profile{}, fmt.Errorf("saving profile: %w", err)
	}
	t.onboarding = p
	t.log.Info("profile saved", zap.String("sex", clean.Sex), zap.Int("age", p.Age))
	return p, nil
}

// ReopenOnboarding returns to the Incomplete state prefilled with the
// current profile. Nothing is written until the draft is completed again.
func (t *Tracker) ReopenOnboarding() model.ProfileDraft {
	if p, ok := t.onboarding.(model.Profile); ok {
		t.onboarding = model.Incomplete{Draft: p.Draft()}
	}
	return t.onboarding.(model.Incomplete).Draft
}

// Goals computes today's targets.
func (t *Tracker) Goals() model.Goals {
	return nutrition.ComputeGoals(t.currentProfile(), t.steps)
}

// Summary is the home screen view of today.
func (t *Tracker) Summary() model.DaySummary {
	_, onboarded := t.Profile()
	s := model.DaySummary{
		Date:      t.day,
		Onboarded: onboarded,
		Goals:     t.Goals(),
		Totals:    t.food.Totals(),
		Steps:     t.steps,
		Entries:   t.food.Len(),
	}
	if w, ok := t.weights.Latest(); ok {
		s.LastWeight = &w
	}
	return s
}
