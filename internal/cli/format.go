// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatKcal rounds calories to a whole number with separators.
func FormatKcal(cal float64) string {
	return FormatNumber(int64(math.Round(cal))) + " kcal"
}

// FormatGrams formats protein with at most one decimal.
// e.g., 46 -> "46g", 4.75 -> "4.8g"
func FormatGrams(g float64) string {
	return trimDecimal(g, 1) + "g"
}

// FormatWeight formats a body weight in pounds.
func FormatWeight(lbs float64) string {
	return trimDecimal(lbs, 1) + " lbs"
}

// FormatSteps formats a step count.
func FormatSteps(n int) string {
	return FormatNumber(int64(n)) + " steps"
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatDelta formats a weight change with its sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatWeight(delta)
	}
	return "-" + FormatWeight(-delta)
}

// FormatRemaining describes how far intake is from a goal.
// e.g., (1200, 1683, "kcal") -> "483 kcal left", (1800, 1683, "kcal") -> "117 kcal over"
func FormatRemaining(consumed float64, goal int, unit string) string {
	diff := float64(goal) - consumed
	if diff >= 0 {
		return fmt.Sprintf("%s %s left", FormatNumber(int64(math.Round(diff))), unit)
	}
	return fmt.Sprintf("%s %s over", FormatNumber(int64(math.Round(-diff))), unit)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

func trimDecimal(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
