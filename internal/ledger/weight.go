package ledger

import "github.com/theirongolddev/fivehundred/internal/model"

// Weights is the weight history in insertion order. Dates may repeat and
// are not sorted.
type Weights struct {
	samples []model.WeightSample
}

// NewWeights copies samples into a new history.
func NewWeights(samples []model.WeightSample) *Weights {
	return &Weights{samples: append([]model.WeightSample(nil), samples...)}
}

func (w *Weights) Len() int { return len(w.samples) }

// Samples returns a copy of the history.
func (w *Weights) Samples() []model.WeightSample {
	return append([]model.WeightSample{}, w.samples...)
}

func (w *Weights) Append(s model.WeightSample) {
	w.samples = append(w.samples, s)
}

func (w *Weights) Edit(i int, s model.WeightSample) error {
	if i < 0 || i >= len(w.samples) {
		return ErrIndexOutOfRange
	}
	w.samples[i] = s
	return nil
}

func (w *Weights) Remove(i int) error {
	if i < 0 || i >= len(w.samples) {
		return ErrIndexOutOfRange
	}
	w.samples = append(w.samples[:i:i], w.samples[i+1:]...)
	return nil
}

// Latest returns the most recently appended sample.
func (w *Weights) Latest() (model.WeightSample, bool) {
	if len(w.samples) == 0 {
		return model.WeightSample{}, false
	}
	return w.samples[len(w.samples)-1], true
}

// Series splits the history into chart labels and values.
func (w *Weights) Series() (labels []string, values []float64) {
	labels = make([]string, len(w.samples))
	values = make([]float64, len(w.samples))
	for i, s := range w.samples {
		labels[i] = s.Date
		values[i] = s.Weight
	}
	return labels, values
}

func (w *Weights) Clone() *Weights {
	return NewWeights(w.samples)
}
