package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1683, "-1,683"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatKcal(1682.6), "1,683 kcal"},
		{FormatGrams(46), "46g"},
		{FormatGrams(4.75), "4.8g"},
		{FormatGrams(0.04), "0g"},
		{FormatWeight(184.5), "184.5 lbs"},
		{FormatWeight(180), "180 lbs"},
		{FormatSteps(10000), "10,000 steps"},
		{FormatDelta(184, 186), "-2 lbs"},
		{FormatDelta(186.4, 186), "+0.4 lbs"},
		{FormatRemaining(1200, 1683, "kcal"), "483 kcal left"},
		{FormatRemaining(1800, 1683, "kcal"), "117 kcal over"},
		{FormatPercent(0.5), "50%"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Food", "kcal"},
		Rows: [][]string{
			{"Oats (½ cup)", "146"},
			{"Apple", "95"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("table has %d lines, want 6:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Errorf("line %d width = %d, want %d: %q", i, lipgloss.Width(l), w, l)
		}
	}
}

func TestRenderGoalBar(t *testing.T) {
	out := RenderGoalBar(500, 1000, "kcal", 10, ColorBlue)
	if !strings.Contains(out, "█████░░░░░") {
		t.Errorf("half bar = %q", out)
	}
	if !strings.Contains(out, "500 / 1,000 kcal") {
		t.Errorf("figures missing: %q", out)
	}

	over := RenderGoalBar(1500, 1000, "kcal", 10, ColorBlue)
	if !strings.Contains(over, strings.Repeat("█", 10)) {
		t.Errorf("overshoot bar not full: %q", over)
	}

	if out := RenderGoalBar(30, 0, "g", 10, ColorGreen); !strings.Contains(out, "no goal") {
		t.Errorf("zero goal = %q", out)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q", got)
	}
	if got := RenderSparkline([]float64{184, 186, 185}); got != "▁█▄" {
		t.Errorf("RenderSparkline = %q, want ▁█▄", got)
	}
	if got := RenderSparkline([]float64{5, 5}); got != "██" {
		t.Errorf("flat series = %q", got)
	}
}
