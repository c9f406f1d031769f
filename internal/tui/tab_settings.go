package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/cli"
	"github.com/theirongolddev/fivehundred/internal/config"
	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/tui/components"
	"github.com/theirongolddev/fivehundred/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	settingsFieldTheme = iota
	settingsFieldProfile
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func (a App) settingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter":
		switch a.settings.cursor {
		case settingsFieldTheme:
			a.cycleTheme()
			return a, nil, true
		case settingsFieldProfile:
			var d model.ProfileDraft
			switch o := a.tr.Onboarding().(type) {
			case model.Profile:
				d = o.Draft()
			case model.Incomplete:
				d = o.Draft
			}
			return a, a.startOnboarding(d, true), true
		}
	}
	return a, nil, false
}

// cycleTheme switches to the next theme and persists it. Only the theme is
// written: the file is reloaded so environment overrides are not saved.
func (a *App) cycleTheme() {
	next := theme.Next(theme.Active.Name)
	theme.SetActive(next.Name)
	a.opts.Config.Appearance.Theme = next.Name

	cfg, err := config.Load()
	if err == nil {
		cfg.Appearance.Theme = next.Name
		err = config.Save(cfg)
	}
	a.settings.saveErr = err
	a.settings.saved = err == nil
	if err != nil {
		a.opts.Logger.Warn("saving theme", zap.Error(err))
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	profile := "(not set)"
	if p, ok := a.tr.Profile(); ok {
		profile = fmt.Sprintf("%s, %d y, %s in, %s", p.Sex, p.Age, trimNum(p.HeightInches), cli.FormatWeight(p.WeightLbs))
	}

	fields := []struct{ label, value string }{
		{"Theme", t.Name},
		{"Profile", profile},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-10s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker+label+value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-10s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] change"))

	cfg := a.opts.Config
	storage := cfg.General.Storage
	location := cfg.DBPath()
	if storage == "postgres" {
		location = "(postgres DSN)"
	} else if storage == "memory" {
		location = "(in memory, not saved)"
	}

	var info strings.Builder
	rows := [][2]string{
		{"Storage:", storage},
		{"Database:", location},
		{"Config file:", config.ConfigPath()},
		{"Catalog:", fmt.Sprintf("%d presets, %d measured", len(a.opts.Catalog.Presets()), len(a.opts.Catalog.Measured()))},
		{"Load time:", fmt.Sprintf("%.2fs", a.loadTime.Seconds())},
	}
	for i, r := range rows {
		info.WriteString(labelStyle.Render(fmt.Sprintf("%-13s", r[0])))
		info.WriteString(valueStyle.Render(truncStr(r[1], innerW-13)))
		if i < len(rows)-1 {
			info.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}
