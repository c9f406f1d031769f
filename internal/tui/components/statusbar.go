package components

import (
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Flash is a transient message shown in the status bar.
type Flash struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the flash message in the middle when set, and the tracked date on the right.
func RenderStatusBar(width int, date string, flash Flash) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	left := hintStyle.Render(" [?]help  [q]uit")
	right := dateStyle.Render(date + " ")

	mid := ""
	if flash.Text != "" {
		color := t.GreenBright
		if flash.Error {
			color = t.Red
		}
		mid = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render("  " + flash.Text)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gap < 0 {
		mid = ""
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}

	return barStyle.Width(width).Render(left + mid + barStyle.Render(spaces(gap)) + right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
