package tracker

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseNumber reads a finite decimal number, ignoring surrounding space.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidNumber
	}
	return f, nil
}

// coerceNumber reads s as a number, treating anything unparseable as 0.
func coerceNumber(s string) float64 {
	f, err := ParseNumber(s)
	if err != nil {
		return 0
	}
	return f
}

// ParseSteps reads a non-negative whole step count. Fractions are truncated.
func ParseSteps(s string) (int, error) {
	f, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > math.MaxInt32 {
		return 0, ErrOutOfRange
	}
	return int(f), nil
}

// ParseDate validates a YYYY-MM-DD date.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

// DateString formats t as a local calendar date.
func DateString(t time.Time) string {
	return t.Format(dateLayout)
}
