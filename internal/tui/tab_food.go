package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/catalog"
	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"github.com/theirongolddev/fivehundred/internal/tracker"
	"github.com/theirongolddev/fivehundred/internal/tui/components"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const maxSearchResults = 8

type foodFormKind int

const (
	foodFormMeasure foodFormKind = iota
	foodFormCustom
	foodFormEdit
)

// foodResult is one search hit. Measured foods need an amount before
// they can be logged; presets are one portion.
type foodResult struct {
	item     catalog.Item
	measured bool
}

type foodFormValues struct {
	Name     string
	Calories string
	Protein  string
	Amount   string
	Unit     string

	item  catalog.Item
	index int
}

type foodState struct {
	cursor int // ledger row

	searching    bool
	input        textinput.Model
	results      []foodResult
	resultCursor int

	form     *huh.Form
	formKind foodFormKind
	vals     *foodFormValues
}

func newFoodState() foodState {
	return foodState{input: newSearchInput()}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "chicken, egg, milk..."
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) foodKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.tr.Food())
	switch key {
	case "/":
		a.food.searching = true
		a.food.input.Focus()
		return a, a.food.input.Cursor.BlinkCmd(), true
	case "c":
		return a, a.startFoodForm(foodFormCustom, &foodFormValues{}), true
	case "j", "down":
		if a.food.cursor < n-1 {
			a.food.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.food.cursor > 0 {
			a.food.cursor--
		}
		return a, nil, true
	case "e", "enter":
		if n == 0 {
			return a, nil, true
		}
		e := a.tr.Food()[a.food.cursor]
		return a, a.startFoodForm(foodFormEdit, &foodFormValues{
			Name:     e.Name,
			Calories: trimNum(e.Calories),
			Protein:  trimNum(e.Protein),
			index:    a.food.cursor,
		}), true
	case "d":
		if n == 0 {
			return a, nil, true
		}
		ctx, cancel := a.ctx()
		removed, err := a.tr.RemoveFood(ctx, a.food.cursor)
		cancel()
		if err != nil {
			a.flash = components.Flash{Text: firstLine(err), Error: true}
			return a, nil, true
		}
		a.food.cursor = max(min(a.food.cursor, n-2), 0)
		a.flash = components.Flash{Text: "Removed " + removed.Name}
		return a, a.historyCmd(), true
	}
	return a, nil, false
}

func (a App) updateFoodSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.food.searching = false
		a.food.input.Blur()
		return a, nil
	case "down", "ctrl+n":
		if a.food.resultCursor < len(a.food.results)-1 {
			a.food.resultCursor++
		}
		return a, nil
	case "up", "ctrl+p":
		if a.food.resultCursor > 0 {
			a.food.resultCursor--
		}
		return a, nil
	case "enter":
		if len(a.food.results) == 0 {
			a.flash = components.Flash{Text: tracker.ErrNoSelection.Error(), Error: true}
			return a, nil
		}
		r := a.food.results[a.food.resultCursor]
		if r.measured {
			vals := &foodFormValues{item: r.item, Amount: "1", Unit: string(nutrition.Cup)}
			if r.item.Basis() == nutrition.Per100g {
				vals.Amount = "100"
			}
			return a, a.startFoodForm(foodFormMeasure, vals)
		}
		ctx, cancel := a.ctx()
		e, err := a.tr.AddPreset(ctx, r.item)
		cancel()
		if err != nil {
			a.flash = components.Flash{Text: firstLine(err), Error: true}
			return a, nil
		}
		a.food.cursor = len(a.tr.Food()) - 1
		a.flash = components.Flash{Text: fmt.Sprintf("Added %s (%s)", e.Name, cli.FormatKcal(e.Calories))}
		return a, a.historyCmd()
	}

	var cmd tea.Cmd
	a.food.input, cmd = a.food.input.Update(msg)
	a.food.results = searchCatalog(a.opts.Catalog, a.food.input.Value())
	a.food.resultCursor = min(a.food.resultCursor, max(len(a.food.results)-1, 0))
	return a, cmd
}

// searchCatalog lists matching presets followed by matching measured foods.
func searchCatalog(c *catalog.Catalog, query string) []foodResult {
	var out []foodResult
	for _, it := range c.Search(query) {
		out = append(out, foodResult{item: it})
	}
	for _, it := range c.SearchMeasured(query) {
		out = append(out, foodResult{item: it, measured: true})
	}
	return out
}

func (a *App) startFoodForm(kind foodFormKind, vals *foodFormValues) tea.Cmd {
	a.food.formKind = kind
	a.food.vals = vals
	a.food.searching = false
	a.food.input.Blur()

	var fields []huh.Field
	switch kind {
	case foodFormMeasure:
		it := vals.item
		fields = append(fields, huh.NewNote().Title(it.Name).Description(it.String()))
		switch it.Basis() {
		case nutrition.Per100g:
			fields = append(fields, huh.NewInput().Title("Grams").Value(&vals.Amount))
		case nutrition.PerCup:
			opts := make([]huh.Option[string], 0, len(nutrition.Units()))
			for _, u := range nutrition.Units() {
				opts = append(opts, huh.NewOption(string(u), string(u)))
			}
			fields = append(fields,
				huh.NewInput().Title("Amount").Value(&vals.Amount),
				huh.NewSelect[string]().Title("Unit").Options(opts...).Value(&vals.Unit),
			)
		default:
			fields = append(fields, huh.NewInput().Title("Count").Value(&vals.Amount))
		}
	case foodFormCustom, foodFormEdit:
		title := "Custom food"
		if kind == foodFormEdit {
			title = "Edit entry"
		}
		fields = append(fields,
			huh.NewNote().Title(title),
			huh.NewInput().Title("Name").Value(&vals.Name),
			huh.NewInput().Title("Calories").Value(&vals.Calories),
			huh.NewInput().Title("Protein (g)").Value(&vals.Protein),
		)
	}

	a.food.form = huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCharm()).WithShowHelp(false)
	if a.width > 0 {
		a.food.form = a.food.form.WithWidth(min(a.contentWidth(), 60))
	}
	return a.food.form.Init()
}

func (a App) updateFoodForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.food.form = nil
		return a, nil
	}

	form, cmd := a.food.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.food.form = f
	}

	switch a.food.form.State {
	case huh.StateCompleted:
		a.food.form = nil
		return a.submitFoodForm()
	case huh.StateAborted:
		a.food.form = nil
		return a, nil
	}
	return a, cmd
}

func (a App) submitFoodForm() (tea.Model, tea.Cmd) {
	v := a.food.vals
	ctx, cancel := a.ctx()
	defer cancel()

	var (
		verb string
		name string
		cal  float64
		err  error
	)
	switch a.food.formKind {
	case foodFormMeasure:
		verb = "Added"
		var m nutrition.Measure
		m, err = measureFrom(v)
		if err == nil {
			e, addErr := a.tr.AddFood(ctx, v.item, m)
			name, cal, err = e.Name, e.Calories, addErr
		}
	case foodFormCustom:
		verb = "Added"
		e, addErr := a.tr.AddCustom(ctx, v.Name, v.Calories, v.Protein)
		name, cal, err = e.Name, e.Calories, addErr
	case foodFormEdit:
		verb = "Updated"
		e, editErr := a.tr.EditFood(ctx, v.index, v.Name, v.Calories, v.Protein)
		name, cal, err = e.Name, e.Calories, editErr
	}
	if err != nil {
		a.flash = components.Flash{Text: firstLine(err), Error: true}
		return a, nil
	}
	if a.food.formKind != foodFormEdit {
		a.food.cursor = len(a.tr.Food()) - 1
	}
	a.flash = components.Flash{Text: fmt.Sprintf("%s %s (%s)", verb, name, cli.FormatKcal(cal))}
	return a, a.historyCmd()
}

func measureFrom(v *foodFormValues) (nutrition.Measure, error) {
	amount, err := tracker.ParseNumber(v.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	var unit nutrition.Unit
	if v.item.Basis() == nutrition.PerCup {
		if unit, err = nutrition.ParseUnit(v.Unit); err != nil {
			return nil, err
		}
	}
	return nutrition.MeasureFor(v.item.Basis(), amount, unit), nil
}

func (a App) renderFoodTab(cw, h int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	var b strings.Builder

	// Search / form card
	var top strings.Builder
	switch {
	case a.food.form != nil:
		top.WriteString(a.food.form.View())
		top.WriteString("\n")
		top.WriteString(dimStyle.Render("[Esc] cancel"))
	case a.food.searching || a.food.input.Value() != "":
		top.WriteString(accentStyle.Render("Search: "))
		top.WriteString(a.food.input.View())
		top.WriteString("\n")
		if len(a.food.results) == 0 && a.food.input.Value() != "" {
			top.WriteString(dimStyle.Render("No matches. [c] adds a custom food."))
		}
		start, end := listWindow(len(a.food.results), a.food.resultCursor, maxSearchResults)
		for i := start; i < end; i++ {
			r := a.food.results[i]
			line := truncStr(r.item.String(), innerW-2)
			if r.measured {
				line = truncStr(r.item.String()+" ›", innerW-2)
			}
			if i == a.food.resultCursor && a.food.searching {
				top.WriteString(markerStyle.Render("▸ ") + selStyle.Render(line))
			} else {
				top.WriteString(labelStyle.Render("  " + line))
			}
			top.WriteString("\n")
		}
		top.WriteString(dimStyle.Render("[↑↓] choose  [Enter] add  [Esc] close"))
	default:
		top.WriteString(dimStyle.Render("[/] search foods  [c] custom food"))
	}
	b.WriteString(components.ContentCard("Add Food", top.String(), cw))
	b.WriteString("\n")

	// Ledger card
	entries := a.tr.Food()
	totals := a.tr.Totals()
	var list strings.Builder
	if len(entries) == 0 {
		list.WriteString(labelStyle.Render("Nothing logged yet today."))
	}
	rows := max(h-lipgloss.Height(b.String())-5, 3)
	start, end := listWindow(len(entries), a.food.cursor, rows)
	nameW := max(innerW-24, 10)
	for i := start; i < end; i++ {
		e := entries[i]
		line := fmt.Sprintf("%-*s %9s %7s",
			nameW, truncStr(e.Name, nameW), cli.FormatKcal(e.Calories), cli.FormatGrams(e.Protein))
		if i == a.food.cursor && !a.food.searching && a.food.form == nil {
			list.WriteString(markerStyle.Render("▸ ") + selStyle.Render(line))
		} else {
			list.WriteString(valueStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}
	if len(entries) > 0 {
		list.WriteString(accentStyle.Render(fmt.Sprintf("  %-*s %9s %7s",
			nameW, "Total", cli.FormatKcal(totals.Calories), cli.FormatGrams(totals.Protein))))
		list.WriteString("\n")
		list.WriteString(dimStyle.Render("[j/k] move  [e] edit  [d] delete"))
	}
	b.WriteString(components.ContentCard(fmt.Sprintf("Today's Food (%d)", len(entries)), list.String(), cw))

	return b.String()
}

func trimNum(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
