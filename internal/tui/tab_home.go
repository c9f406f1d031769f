package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/tui/components"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type homeState struct {
	editingSteps bool
	input        textinput.Model
}

func newHomeState() homeState {
	return homeState{input: newNumberInput("10000")}
}

func newNumberInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 12
	ti.Width = 14
	return ti
}

func (a App) homeKey(key string) (tea.Model, tea.Cmd, bool) {
	if key != "s" {
		return a, nil, false
	}
	a.home.editingSteps = true
	a.home.input = newNumberInput("10000")
	if steps := a.tr.Steps(); steps > 0 {
		a.home.input.SetValue(strconv.Itoa(steps))
	}
	a.home.input.Focus()
	return a, a.home.input.Cursor.BlinkCmd(), true
}

func (a App) updateStepsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		ctx, cancel := a.ctx()
		err := a.tr.SetSteps(ctx, a.home.input.Value())
		cancel()
		if err != nil {
			a.flash = components.Flash{Text: firstLine(err), Error: true}
			return a, nil
		}
		a.home.editingSteps = false
		a.flash = components.Flash{Text: fmt.Sprintf("Steps set: +%d kcal", a.tr.Goals().StepCalories)}
		return a, a.historyCmd()
	case "esc":
		a.home.editingSteps = false
		return a, nil
	}

	var cmd tea.Cmd
	a.home.input, cmd = a.home.input.Update(msg)
	return a, cmd
}

func (a App) renderHomeTab(cw int) string {
	t := theme.Active
	sum := a.tr.Summary()
	g := sum.Goals

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	var b strings.Builder

	// Row 1: metric cards
	remainingColor := t.GreenBright
	if sum.Totals.Calories > float64(g.Calories) {
		remainingColor = t.Over()
	}
	goalNote := fmt.Sprintf("BMR %s − 500", cli.FormatNumber(int64(g.BMR)))
	if g.StepCalories > 0 {
		goalNote += fmt.Sprintf(" + %d", g.StepCalories)
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Goal", Value: cli.FormatKcal(float64(g.Calories)), Note: goalNote},
		{Label: "Eaten", Value: cli.FormatKcal(sum.Totals.Calories), Note: fmt.Sprintf("%d entries", sum.Entries), Color: t.Calories()},
		{Label: "Remaining", Value: cli.FormatRemaining(sum.Totals.Calories, g.Calories, "kcal"), Color: remainingColor},
		{Label: "Protein", Value: cli.FormatGrams(sum.Totals.Protein), Note: fmt.Sprintf("goal %dg", g.Protein), Color: t.Protein()},
	}, cw))
	b.WriteString("\n")

	// Row 2: goal bars
	barW := max(components.CardInnerWidth(cw)-9-1-24, 10)
	var bars strings.Builder
	bars.WriteString(components.GoalBar("Calories", sum.Totals.Calories, g.Calories, "kcal", t.Calories(), t.Over(), 9, barW))
	bars.WriteString("\n")
	bars.WriteString(components.GoalBar("Protein", sum.Totals.Protein, g.Protein, "g", t.Protein(), "", 9, barW))
	b.WriteString(components.ContentCard("Today", bars.String(), cw))
	b.WriteString("\n")

	// Row 3: steps + week side by side
	halves := components.LayoutRow(cw, 2)

	var steps strings.Builder
	if a.home.editingSteps {
		steps.WriteString(accentStyle.Render("Steps: "))
		steps.WriteString(a.home.input.View())
		steps.WriteString("\n")
		steps.WriteString(dimStyle.Render("[Enter] save  [Esc] cancel"))
	} else {
		steps.WriteString(valueStyle.Render(cli.FormatSteps(sum.Steps)))
		steps.WriteString(labelStyle.Render(fmt.Sprintf("  +%d kcal", g.StepCalories)))
		steps.WriteString("\n")
		if sum.LastWeight != nil {
			steps.WriteString(labelStyle.Render("Last weight: "))
			steps.WriteString(valueStyle.Render(cli.FormatWeight(sum.LastWeight.Weight)))
			steps.WriteString(dimStyle.Render(" on " + sum.LastWeight.Date))
			steps.WriteString("\n")
		}
		steps.WriteString(dimStyle.Render("[s] set steps"))
	}
	stepsCard := components.ContentCard("Steps", steps.String(), halves[0])

	weekCard := components.ContentCard(fmt.Sprintf("Last %d Days", historyDays), a.renderWeekBody(), halves[1])
	b.WriteString(components.CardRow([]string{stepsCard, weekCard}))

	return b.String()
}

func (a App) renderWeekBody() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(a.history) == 0 {
		return labelStyle.Render("No history yet")
	}

	// history is newest first; the sparkline reads left to right.
	vals := make([]float64, len(a.history))
	for i, d := range a.history {
		vals[len(a.history)-1-i] = d.Calories
	}
	w := a.week

	var b strings.Builder
	b.WriteString(components.Sparkline(vals, t.Calories()))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Within goal: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d/%d logged days", w.DaysWithinGoal, w.LoggedDays)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Avg intake:  "))
	b.WriteString(valueStyle.Render(cli.FormatKcal(w.AvgCalories)))
	if w.EstimatedLbs != 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Est. change: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%+.1f lbs", -w.EstimatedLbs)))
	}
	return b.String()
}
