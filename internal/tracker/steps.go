package tracker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/fivehundred/internal/store"
)

// Steps returns today's step count.
func (t *Tracker) Steps() int { return t.steps }

// SetSteps parses and stores today's step count.
func (t *Tracker) SetSteps(ctx context.Context, input string) error {
	n, err := ParseSteps(input)
	if err != nil {
		return fieldErr("steps", err)
	}
	return t.SetStepCount(ctx, n)
}

// SetStepCount stores today's step count.
func (t *Tracker) SetStepCount(ctx context.Context, n int) error {
	if n < 0 {
		return fieldErr("steps", ErrOutOfRange)
	}
	if err := t.st.Set(ctx, store.StepsKey(t.day), strconv.Itoa(n)); err != nil {
		return fmt.Errorf("saving steps: %w", err)
	}
	t.steps = n
	return nil
}
