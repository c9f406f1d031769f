package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/pipeline"
	"github.com/theirongolddev/fivehundred/internal/tui/components"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const weightListRows = 6

type weightFormValues struct {
	Date   string
	Weight string
	index  int
}

type weightState struct {
	cursor int
	adding bool
	input  textinput.Model
	form   *huh.Form
	vals   *weightFormValues
}

func newWeightState() weightState {
	return weightState{input: newNumberInput("180.5")}
}

func (a App) weightKey(key string) (tea.Model, tea.Cmd, bool) {
	samples := a.tr.Weights()
	switch key {
	case "a":
		a.weight.adding = true
		a.weight.input = newNumberInput("180.5")
		a.weight.input.Focus()
		return a, a.weight.input.Cursor.BlinkCmd(), true
	case "j", "down":
		if a.weight.cursor < len(samples)-1 {
			a.weight.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.weight.cursor > 0 {
			a.weight.cursor--
		}
		return a, nil, true
	case "e", "enter":
		if len(samples) == 0 {
			return a, nil, true
		}
		s := samples[a.weight.cursor]
		return a, a.startWeightForm(&weightFormValues{
			Date:   s.Date,
			Weight: trimNum(s.Weight),
			index:  a.weight.cursor,
		}), true
	case "d":
		if len(samples) == 0 {
			return a, nil, true
		}
		ctx, cancel := a.ctx()
		removed, err := a.tr.DeleteWeight(ctx, a.weight.cursor)
		cancel()
		if err != nil {
			a.flash = components.Flash{Text: firstLine(err), Error: true}
			return a, nil, true
		}
		a.weight.cursor = max(min(a.weight.cursor, len(samples)-2), 0)
		a.flash = components.Flash{Text: fmt.Sprintf("Deleted %s from %s", cli.FormatWeight(removed.Weight), removed.Date)}
		return a, a.historyCmd(), true
	}
	return a, nil, false
}

func (a App) updateWeightInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		ctx, cancel := a.ctx()
		s, err := a.tr.AddWeight(ctx, a.weight.input.Value())
		cancel()
		if err != nil {
			a.flash = components.Flash{Text: firstLine(err), Error: true}
			return a, nil
		}
		a.weight.adding = false
		a.weight.cursor = len(a.tr.Weights()) - 1
		a.flash = components.Flash{Text: fmt.Sprintf("Logged %s", cli.FormatWeight(s.Weight))}
		return a, a.historyCmd()
	case "esc":
		a.weight.adding = false
		return a, nil
	}

	var cmd tea.Cmd
	a.weight.input, cmd = a.weight.input.Update(msg)
	return a, cmd
}

func (a *App) startWeightForm(vals *weightFormValues) tea.Cmd {
	a.weight.vals = vals
	a.weight.form = huh.NewForm(huh.NewGroup(
		huh.NewNote().Title("Edit weight"),
		huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&vals.Date),
		huh.NewInput().Title("Weight (lbs)").Value(&vals.Weight),
	)).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
	if a.width > 0 {
		a.weight.form = a.weight.form.WithWidth(min(a.contentWidth(), 60))
	}
	return a.weight.form.Init()
}

func (a App) updateWeightForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.weight.form = nil
		return a, nil
	}

	form, cmd := a.weight.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.weight.form = f
	}

	switch a.weight.form.State {
	case huh.StateCompleted:
		a.weight.form = nil
		v := a.weight.vals
		ctx, cancel := a.ctx()
		s, err := a.tr.EditWeight(ctx, v.index, v.Date, v.Weight)
		cancel()
		if err != nil {
			a.flash = components.Flash{Text: firstLine(err), Error: true}
			return a, nil
		}
		a.flash = components.Flash{Text: fmt.Sprintf("Updated %s: %s", s.Date, cli.FormatWeight(s.Weight))}
		return a, a.historyCmd()
	case huh.StateAborted:
		a.weight.form = nil
		return a, nil
	}
	return a, cmd
}

func (a App) renderWeightTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	samples := a.tr.Weights()
	trend := pipeline.Trend(samples)
	var b strings.Builder

	// Row 1: trend metrics
	if trend.Samples > 0 {
		perWeek := "n/a"
		if trend.PerWeek != 0 {
			perWeek = fmt.Sprintf("%+.1f lbs", trend.PerWeek)
		}
		changeColor := t.GreenBright
		if trend.Change > 0 {
			changeColor = t.Orange
		}
		b.WriteString(components.MetricCardRow([]components.Metric{
			{Label: "Latest", Value: cli.FormatWeight(trend.Last.Weight), Note: trend.Last.Date, Color: t.Weight()},
			{Label: "Change", Value: cli.FormatDelta(trend.Last.Weight, trend.First.Weight), Note: "since " + trend.First.Date, Color: changeColor},
			{Label: "Per week", Value: perWeek},
			{Label: "Range", Value: fmt.Sprintf("%s–%s", trimNum(trend.Min), trimNum(trend.Max)), Note: fmt.Sprintf("%d samples", trend.Samples)},
		}, cw))
		b.WriteString("\n")
	}

	// Row 2: chart
	if len(samples) > 0 {
		labels, values := a.tr.WeightSeries()
		short := make([]string, len(labels))
		for i, l := range labels {
			short[i] = shortDate(l)
		}
		chart := components.BarChartWith(values, short, t.Weight(), components.CardInnerWidth(cw), 8,
			components.ChartOptions{Floor: components.NiceFloor(trend.Min-1, 5)})
		b.WriteString(components.ContentCard("Weight", chart, cw))
		b.WriteString("\n")
	}

	// Row 3: input + list
	var list strings.Builder
	if a.weight.form != nil {
		list.WriteString(a.weight.form.View())
		list.WriteString("\n")
		list.WriteString(dimStyle.Render("[Esc] cancel"))
	} else {
		if a.weight.adding {
			list.WriteString(accentStyle.Render("Weight (lbs): "))
			list.WriteString(a.weight.input.View())
			list.WriteString("\n")
		}
		if len(samples) == 0 {
			list.WriteString(labelStyle.Render("No weight logged yet."))
			list.WriteString("\n")
		}
		start, end := listWindow(len(samples), a.weight.cursor, weightListRows)
		for i := start; i < end; i++ {
			s := samples[i]
			line := fmt.Sprintf("%-12s %10s", s.Date, cli.FormatWeight(s.Weight))
			if i == a.weight.cursor && !a.weight.adding {
				list.WriteString(markerStyle.Render("▸ ") + selStyle.Render(line))
			} else {
				list.WriteString(valueStyle.Render("  " + line))
			}
			list.WriteString("\n")
		}
		if a.weight.adding {
			list.WriteString(dimStyle.Render("[Enter] save  [Esc] cancel"))
		} else {
			list.WriteString(dimStyle.Render("[a] log weight  [j/k] move  [e] edit  [d] delete"))
		}
	}
	b.WriteString(components.ContentCard("History", list.String(), cw))

	return b.String()
}

// shortDate turns "2026-10-18" into "10-18" for chart labels.
func shortDate(d string) string {
	if len(d) == len("2006-01-02") {
		return d[5:]
	}
	return d
}
