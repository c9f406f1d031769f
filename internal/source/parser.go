// Package source reads tracker data exported from the browser app's
// localStorage (a JSON object of key to string value) and normalizes it
// into store entries.
package source

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/store"
)

// ParseFile reads one export file.
func ParseFile(df DiscoveredFile) ParseResult {
	data, err := os.ReadFile(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	r := Parse(data)
	r.File = df
	return r
}

// Parse normalizes an export. Values may be JSON strings (as localStorage
// holds them) or inline JSON. Unknown keys are skipped; malformed values
// of known keys are counted and dropped. A complete profile without an
// onboardingComplete key is marked onboarded.
func Parse(data []byte) ParseResult {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ParseResult{Err: err}
	}

	r := ParseResult{Entries: make(map[string]string)}
	profileKeys := 0
	for key, rv := range raw {
		val := unwrap(rv)
		switch {
		case key == store.KeySex:
			if _, ok := model.ParseSex(val); !ok {
				r.ParseErrors++
				continue
			}
			r.Entries[key] = strings.ToLower(strings.TrimSpace(val))
			profileKeys++
		case key == store.KeyAge || key == store.KeyHeight || key == store.KeyWeight:
			if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err != nil || f <= 0 {
				r.ParseErrors++
				continue
			}
			r.Entries[key] = strings.TrimSpace(val)
			profileKeys++
		case key == store.KeyOnboardingComplete:
			if val == "true" {
				r.Entries[key] = val
			}
		case key == store.KeyWeightLog:
			var samples []model.WeightSample
			if err := json.Unmarshal([]byte(val), &samples); err != nil {
				r.ParseErrors++
				continue
			}
			kept := samples[:0]
			for _, s := range samples {
				if validDate(s.Date) && s.Weight > 0 {
					kept = append(kept, s)
				}
			}
			r.Entries[key] = mustJSON(kept)
			r.Weights = len(kept)
		case strings.HasPrefix(key, store.FoodLogPrefix):
			date, _ := store.DateOf(key)
			var entries []model.FoodEntry
			if !validDate(date) || json.Unmarshal([]byte(val), &entries) != nil {
				r.ParseErrors++
				continue
			}
			r.Entries[key] = mustJSON(entries)
			r.FoodDays++
		case strings.HasPrefix(key, store.StepsPrefix):
			date, _ := store.DateOf(key)
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if !validDate(date) || err != nil || n < 0 {
				r.ParseErrors++
				continue
			}
			r.Entries[key] = strconv.Itoa(n)
			r.StepDays++
		default:
			r.Skipped = append(r.Skipped, key)
		}
	}
	r.HasProfile = profileKeys == 4
	// The browser app treats a full profile as onboarded and never writes
	// the flag itself.
	if _, ok := raw[store.KeyOnboardingComplete]; r.HasProfile && !ok {
		r.Entries[store.KeyOnboardingComplete] = "true"
	}
	return r
}

// Merge folds results in order; later entries overwrite earlier ones.
func Merge(results []ParseResult) map[string]string {
	out := make(map[string]string)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for k, v := range r.Entries {
			out[k] = v
		}
	}
	return out
}

func unwrap(rv json.RawMessage) string {
	var s string
	if err := json.Unmarshal(rv, &s); err == nil {
		return s
	}
	return string(rv)
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
