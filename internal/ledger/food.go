// Package ledger holds the day's food entries and the weight history as
// ordered, index-addressed lists.
package ledger

import (
	"errors"

	"github.com/theirongolddev/fivehundred/internal/model"
)

// ErrIndexOutOfRange is returned by Edit and Remove for a bad index.
var ErrIndexOutOfRange = errors.New("index out of range")

// Food is one day's ordered list of consumed entries.
type Food struct {
	entries []model.FoodEntry
}

// NewFood copies entries into a new ledger.
func NewFood(entries []model.FoodEntry) *Food {
	return &Food{entries: append([]model.FoodEntry(nil), entries...)}
}

// Len is the number of entries.
func (l *Food) Len() int { return len(l.entries) }

// Entries returns a copy of the entries in insertion order.
func (l *Food) Entries() []model.FoodEntry {
	return append([]model.FoodEntry{}, l.entries...)
}

// At returns the entry at i.
func (l *Food) At(i int) (model.FoodEntry, error) {
	if i < 0 || i >= len(l.entries) {
		return model.FoodEntry{}, ErrIndexOutOfRange
	}
	return l.entries[i], nil
}

// Append adds e at the end.
func (l *Food) Append(e model.FoodEntry) {
	l.entries = append(l.entries, e)
}

// Edit replaces the entry at i.
func (l *Food) Edit(i int, e model.FoodEntry) error {
	if i < 0 || i >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	l.entries[i] = e
	return nil
}

// Remove deletes the entry at i, preserving the order of the rest.
func (l *Food) Remove(i int) error {
	if i < 0 || i >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
	return nil
}

// Totals sums calories and protein over every entry.
func (l *Food) Totals() model.Totals {
	var t model.Totals
	for _, e := range l.entries {
		t = t.Add(e)
	}
	return t
}

// Clone returns an independent copy.
func (l *Food) Clone() *Food {
	return NewFood(l.entries)
}
