package tracker

import (
	"context"

	"github.com/theirongolddev/fivehundred/internal/ledger"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/store"

	"go.uber.org/zap"
)

// Weights returns the weight history in insertion order.
func (t *Tracker) Weights() []model.WeightSample { return t.weights.Samples() }

// WeightSeries returns chart labels and values in insertion order.
func (t *Tracker) WeightSeries() ([]string, []float64) { return t.weights.Series() }

func (t *Tracker) commitWeights(ctx context.Context, next *ledger.Weights) error {
	if err := t.saveJSON(ctx, store.KeyWeightLog, next.Samples()); err != nil {
		return err
	}
	t.weights = next
	return nil
}

func parseWeight(input string) (float64, error) {
	w, err := ParseNumber(input)
	if err != nil {
		return 0, fieldErr("weight", err)
	}
	if w <= 0 {
		return 0, fieldErr("weight", ErrOutOfRange)
	}
	return w, nil
}

// AddWeight appends a sample dated today. Input that is not a positive
// number leaves the history unchanged.
func (t *Tracker) AddWeight(ctx context.Context, input string) (model.WeightSample, error) {
	w, err := parseWeight(input)
	if err != nil {
		return model.WeightSample{}, err
	}
	s := model.WeightSample{Date: t.day, Weight: w}
	next := t.weights.Clone()
	next.Append(s)
	if err := t.commitWeights(ctx, next); err != nil {
		return model.WeightSample{}, err
	}
	t.log.Debug("weight added", zap.String("date", s.Date), zap.Float64("weight", w))
	return s, nil
}

// EditWeight replaces sample i. An empty date keeps the existing one.
func (t *Tracker) EditWeight(ctx context.Context, i int, date, weight string) (model.WeightSample, error) {
	old, err := t.weightAt(i)
	if err != nil {
		return model.WeightSample{}, err
	}
	w, err := parseWeight(weight)
	if err != nil {
		return model.WeightSample{}, err
	}
	s := model.WeightSample{Date: old.Date, Weight: w}
	if date != "" {
		d, err := ParseDate(date)
		if err != nil {
			return model.WeightSample{}, fieldErr("date", err)
		}
		s.Date = d
	}
	next := t.weights.Clone()
	_ = next.Edit(i, s)
	if err := t.commitWeights(ctx, next); err != nil {
		return model.WeightSample{}, err
	}
	return s, nil
}

// DeleteWeight removes sample i.
func (t *Tracker) DeleteWeight(ctx context.Context, i int) (model.WeightSample, error) {
	old, err := t.weightAt(i)
	if err != nil {
		return model.WeightSample{}, err
	}
	next := t.weights.Clone()
	_ = next.Remove(i)
	if err := t.commitWeights(ctx, next); err != nil {
		return model.WeightSample{}, err
	}
	return old, nil
}

func (t *Tracker) weightAt(i int) (model.WeightSample, error) {
	samples := t.weights.Samples()
	if i < 0 || i >= len(samples) {
		return model.WeightSample{}, ErrIndexOutOfRange
	}
	return samples[i], nil
}
