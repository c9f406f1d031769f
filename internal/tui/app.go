// Package tui provides the interactive Bubble Tea interface for fivehundred.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/fivehundred/internal/catalog"
	"github.com/theirongolddev/fivehundred/internal/config"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/pipeline"
	"github.com/theirongolddev/fivehundred/internal/store"
	"github.com/theirongolddev/fivehundred/internal/tracker"
	"github.com/theirongolddev/fivehundred/internal/tui/components"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// LoadedMsg is sent when the tracker has been read from the store.
type LoadedMsg struct {
	Tracker  *tracker.Tracker
	History  []model.DailyStats
	Week     model.SummaryStats
	LoadTime time.Duration
	Err      error
}

// ProgressMsg reports history loading progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// HistoryMsg carries a refreshed history window.
type HistoryMsg struct {
	History []model.DailyStats
	Week    model.SummaryStats
	Err     error
}

type tickMsg time.Time

// Options configures NewApp.
type Options struct {
	Store   store.Store
	Catalog *catalog.Catalog
	Config  config.Config
	Logger  *zap.Logger
	// Date pins the tracked day (YYYY-MM-DD); empty follows the clock.
	Date string
	Now  func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	tr       *tracker.Tracker
	history  []model.DailyStats
	week     model.SummaryStats
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     components.Flash

	// Onboarding (huh form); values live behind a pointer so App copies share them
	onboardForm *huh.Form
	onboardVals *OnboardingValues
	reopened    bool

	// Per-tab state
	home     homeState
	food     foodState
	weight   weightState
	settings settingsState

	// Loading
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	minContentHeight = 5

	historyDays  = 7
	tickInterval = 30 * time.Second
	opTimeout    = 10 * time.Second
)

const (
	tabHome = iota
	tabFood
	tabWeight
	tabSettings
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		opts:    opts,
		spinner: sp,
		loadSub: make(chan tea.Msg, 1),
		home:    newHomeState(),
		food:    newFoodState(),
		weight:  newWeightState(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(a.opts, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
		tea.EnableMouseCellMotion,
	)
}

func (a App) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.onboardForm != nil {
			a.onboardForm = a.onboardForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case LoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.tr = msg.Tracker
		a.history = msg.History
		a.week = msg.Week

		if inc, ok := a.tr.Onboarding().(model.Incomplete); ok {
			return a, a.startOnboarding(inc.Draft, false)
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case HistoryMsg:
		if msg.Err != nil {
			a.opts.Logger.Warn("refreshing history", zap.Error(msg.Err))
			return a, nil
		}
		a.history = msg.History
		a.week = msg.Week
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.tr != nil {
			ctx, cancel := a.ctx()
			rolled, err := a.tr.Rollover(ctx)
			cancel()
			switch {
			case err != nil:
				a.flash = components.Flash{Text: "Reload failed: " + err.Error(), Error: true}
			case rolled:
				a.flash = components.Flash{Text: "New day: " + a.tr.Today()}
				a.food.cursor, a.food.results = 0, nil
				cmds = append(cmds, a.historyCmd())
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages (cursor blinks, etc.) to whichever form is live.
	switch {
	case a.onboardForm != nil:
		return a.updateOnboardForm(msg)
	case a.food.form != nil:
		return a.updateFoodForm(msg)
	case a.weight.form != nil:
		return a.updateWeightForm(msg)
	}
	return a, nil
}

// updateMouse switches tabs on a click in the tab bar and scrolls the food
// search results with the wheel. Modal forms ignore the mouse.
func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.loadErr != nil || a.showHelp ||
		a.onboardForm != nil || a.food.form != nil || a.weight.form != nil {
		return a, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabFood && a.food.cursor > 0 {
			a.food.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabFood && a.food.cursor < len(a.food.results)-1 {
			a.food.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if idx := components.TabIdxAt(msg.X, a.activeTab); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}
	if a.loadErr != nil {
		if key == "q" || key == "esc" {
			return a, tea.Quit
		}
		return a, nil
	}

	// Modal inputs intercept all keys.
	switch {
	case a.onboardForm != nil:
		return a.updateOnboardForm(msg)
	case a.food.form != nil:
		return a.updateFoodForm(msg)
	case a.weight.form != nil:
		return a.updateWeightForm(msg)
	case a.activeTab == tabFood && a.food.searching:
		return a.updateFoodSearch(msg)
	case a.activeTab == tabWeight && a.weight.adding:
		return a.updateWeightInput(msg)
	case a.activeTab == tabHome && a.home.editingSteps:
		return a.updateStepsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var (
		handled bool
		next    tea.Model
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case tabHome:
		next, cmd, handled = a.homeKey(key)
	case tabFood:
		next, cmd, handled = a.foodKey(key)
	case tabWeight:
		next, cmd, handled = a.weightKey(key)
	case tabSettings:
		next, cmd, handled = a.settingsKey(key)
	}
	if handled {
		return next, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

// startOnboarding shows the profile form prefilled with d. reopened marks
// an edit of an existing profile, which can be cancelled.
func (a *App) startOnboarding(d model.ProfileDraft, reopened bool) tea.Cmd {
	a.onboardVals = NewOnboardingValues(d)
	a.onboardForm = NewOnboardingForm(a.onboardVals)
	a.reopened = reopened
	if a.width > 0 {
		a.onboardForm = a.onboardForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a.onboardForm.Init()
}

func (a App) updateOnboardForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" && a.reopened {
		a.onboardForm = nil
		a.flash = components.Flash{Text: "Profile unchanged"}
		return a, nil
	}

	form, cmd := a.onboardForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.onboardForm = f
	}

	switch a.onboardForm.State {
	case huh.StateCompleted:
		ctx, cancel := a.ctx()
		p, err := a.tr.CompleteOnboarding(ctx, a.onboardVals.Draft())
		cancel()
		if err != nil {
			a.flash = components.Flash{Text: firstLine(err), Error: true}
			return a, a.startOnboarding(a.onboardVals.Draft(), a.reopened)
		}
		a.onboardForm = nil
		a.flash = components.Flash{Text: fmt.Sprintf("Profile saved: %d kcal/day goal", a.tr.Goals().Calories)}
		a.opts.Logger.Info("profile saved from tui", zap.Int("age", p.Age))
		a.activeTab = tabHome
		return a, a.historyCmd()
	case huh.StateAborted:
		a.onboardForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.onboardForm != nil {
		return a.viewOnboarding()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fivehundred needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) centeredCard(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ fivehundred"))
	b.WriteString(subtitleStyle.Render(" · The 500 Plan"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	if a.progressMax > 0 {
		b.WriteString(subtitleStyle.Render(" Reading history\n\n"))
		b.WriteString(components.ProgressBar(float64(a.progress)/float64(a.progressMax), 30))
	} else {
		b.WriteString(subtitleStyle.Render(" Opening store..."))
	}
	return a.centeredCard(b.String())
}

func (a App) viewError() string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return a.centeredCard(
		errStyle.Render("Could not load data") + "\n\n" +
			dimStyle.Render(firstLine(a.loadErr)) + "\n\n" +
			dimStyle.Render("Press q to quit"),
	)
}

func (a App) viewOnboarding() string {
	t := theme.Active
	view := a.onboardForm.View()
	if a.flash.Error && a.flash.Text != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(t.Red).Render("  "+a.flash.Text)
	}
	if a.reopened {
		view += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render("  esc to cancel")
	}
	return view
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"h f w x", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move in lists"},
		}},
		{"Home", [][2]string{{"s", "Set today's steps"}}},
		{"Food", [][2]string{
			{"/", "Search foods"},
			{"c", "Custom food"},
			{"e Enter", "Edit entry"},
			{"d", "Delete entry"},
		}},
		{"Weight", [][2]string{
			{"a", "Log weight"},
			{"e", "Edit sample"},
			{"d", "Delete sample"},
		}},
		{"General", [][2]string{
			{"Esc", "Cancel input"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return a.centeredCard(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.tr.Today(), a.flash)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabHome:
		content = a.renderHomeTab(cw)
	case tabFood:
		content = a.renderFoodTab(cw, contentH)
	case tabWeight:
		content = a.renderWeightTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd opens the tracker and reads the history window in a background
// goroutine, streaming ProgressMsg updates and a final LoadedMsg through sub.
func loadCmd(opts Options, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trOpts := []tracker.Option{tracker.WithClock(opts.Now), tracker.WithLogger(opts.Logger)}
			if opts.Date != "" {
				trOpts = append(trOpts, tracker.WithDate(opts.Date))
			}
			tr, err := tracker.Load(ctx, opts.Store, trOpts...)
			if err != nil {
				sub <- LoadedMsg{Err: err, LoadTime: time.Since(start)}
				return
			}

			// Non-blocking so workers aren't stalled; the next update catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}
			hist := loadHistory(ctx, opts, tr, progressFn)
			if hist.Err != nil {
				opts.Logger.Warn("loading history", zap.Error(hist.Err))
			}
			sub <- LoadedMsg{
				Tracker:  tr,
				History:  hist.History,
				Week:     hist.Week,
				LoadTime: time.Since(start),
			}
		}()

		// Block until the first message (either ProgressMsg or LoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// historyCmd re-reads the history window ending on the tracked day.
func (a App) historyCmd() tea.Cmd {
	opts, tr := a.opts, a.tr
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return loadHistory(ctx, opts, tr, nil)
	}
}

func loadHistory(ctx context.Context, opts Options, tr *tracker.Tracker, progressFn pipeline.ProgressFunc) HistoryMsg {
	until, err := time.ParseInLocation("2006-01-02", tr.Today(), time.Local)
	if err != nil {
		return HistoryMsg{Err: err}
	}
	since := until.AddDate(0, 0, -(historyDays - 1))
	res, err := pipeline.LoadDays(ctx, opts.Store, since, until, opts.Logger, progressFn)
	if err != nil {
		return HistoryMsg{Err: err}
	}
	profile, _ := tr.Profile()
	days := pipeline.AggregateDays(res.Days, res.Weights, profile, since, until)
	return HistoryMsg{History: days, Week: pipeline.Aggregate(days)}
}

// ─── Helpers ────────────────────────────────────────────────────

func firstLine(err error) string {
	s := err.Error()
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// listWindow returns the [start, end) slice of n rows that keeps cursor
// visible in at most size rows.
func listWindow(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := cursor - size/2
	start = max(min(start, n-size), 0)
	return start, start + size
}
