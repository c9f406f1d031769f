package tracker

import (
	"context"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/ledger"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"github.com/theirongolddev/fivehundred/internal/store"

	"go.uber.org/zap"
)

// Food returns today's entries in insertion order.
func (t *Tracker) Food() []model.FoodEntry { return t.food.Entries() }

// Totals sums today's entries.
func (t *Tracker) Totals() model.Totals { return t.food.Totals() }

// commitFood persists next as today's ledger and adopts it on success.
func (t *Tracker) commitFood(ctx context.Context, next *ledger.Food) error {
	if err := t.saveJSON(ctx, store.FoodLogKey(t.day), next.Entries()); err != nil {
		return err
	}
	t.food = next
	return nil
}

// AddFood scales f by m and appends the result. A nil food is
// ErrNoSelection; a bad amount leaves the ledger unchanged.
func (t *Tracker) AddFood(ctx context.Context, f nutrition.Food, m nutrition.Measure) (model.FoodEntry, error) {
	if f == nil {
		return model.FoodEntry{}, ErrNoSelection
	}
	n, err := nutrition.Scale(f, m)
	if err != nil {
		return model.FoodEntry{}, fieldErr("amount", err)
	}
	e := model.FoodEntry{Name: nutrition.Describe(f, m), Calories: n.Calories, Protein: n.Protein}
	next := t.food.Clone()
	next.Append(e)
	if err := t.commitFood(ctx, next); err != nil {
		return model.FoodEntry{}, err
	}
	t.log.Debug("food added", zap.String("name", e.Name), zap.Float64("cal", e.Calories))
	return e, nil
}

// AddPreset appends one portion of a preset.
func (t *Tracker) AddPreset(ctx context.Context, f nutrition.Food) (model.FoodEntry, error) {
	return t.AddFood(ctx, f, nutrition.Count{N: 1})
}

// AddCustom appends a manually entered food. The name must be non-empty
// and the calories a number; unparseable protein counts as 0.
func (t *Tracker) AddCustom(ctx context.Context, name, calories, protein string) (model.FoodEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.FoodEntry{}, fieldErr("name", ErrEmptyName)
	}
	cal, err := ParseNumber(calories)
	if err != nil {
		return model.FoodEntry{}, fieldErr("calories", err)
	}
	if cal < 0 {
		return model.FoodEntry{}, fieldErr("calories", ErrOutOfRange)
	}
	prot := coerceNumber(protein)
	if prot < 0 {
		prot = 0
	}
	e := model.FoodEntry{Name: name, Calories: cal, Protein: prot}
	next := t.food.Clone()
	next.Append(e)
	if err := t.commitFood(ctx, next); err != nil {
		return model.FoodEntry{}, err
	}
	t.log.Debug("custom food added", zap.String("name", name), zap.Float64("cal", cal))
	return e, nil
}

// EditFood replaces entry i. The name is kept as given and numbers that do
// not parse become 0.
func (t *Tracker) EditFood(ctx context.Context, i int, name, calories, protein string) (model.FoodEntry, error) {
	e := model.FoodEntry{Name: name, Calories: coerceNumber(calories), Protein: coerceNumber(protein)}
	next := t.food.Clone()
	if err := next.Edit(i, e); err != nil {
		return model.FoodEntry{}, err
	}
	if err := t.commitFood(ctx, next); err != nil {
		return model.FoodEntry{}, err
	}
	return e, nil
}

// RemoveFood deletes entry i.
func (t *Tracker) RemoveFood(ctx context.Context, i int) (model.FoodEntry, error) {
	removed, err := t.food.At(i)
	if err != nil {
		return model.FoodEntry{}, err
	}
	next := t.food.Clone()
	_ = next.Remove(i)
	if err := t.commitFood(ctx, next); err != nil {
		return model.FoodEntry{}, err
	}
	return removed, nil
}
