package tui

import (
	"fmt"
	"strings"

	"github.com/rewardscope/rewardscope/internal/config"
	"github.com/rewardscope/rewardscope/internal/tui/components"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldDataPath
	settingsFieldCache
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message until the next action
	saveErr error // non-nil if last save failed
}

func newSettingsState() settingsState {
	return settingsState{input: newSettingsInput()}
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 60
	return ti
}

func (a App) updateSettingsKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter", " ":
		return a.settingsActivate()
	}
	return a, nil
}

// settingsActivate cycles toggles in place and opens the text input for the data path.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.saved = false

	switch a.settings.cursor {
	case settingsFieldTheme:
		cfg.Appearance.Theme = theme.Next(theme.Active.Name)
		theme.SetActive(cfg.Appearance.Theme)
		a.spinner.Style = a.spinner.Style.Foreground(theme.Active.Accent).Background(theme.Active.Surface)
	case settingsFieldCache:
		cfg.Data.Cache = !a.useCache
		a.useCache = cfg.Data.Cache
	case settingsFieldDataPath:
		a.settings.editing = true
		a.settings.input = newSettingsInput()
		a.settings.input.Placeholder = config.DefaultDataPath
		a.settings.input.SetValue(a.dataPath)
		a.settings.input.Focus()
		return a, textinput.Blink
	}

	a.settings.saveErr = config.Save(cfg)
	a.settings.saved = a.settings.saveErr == nil
	return a, nil
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		path := strings.TrimSpace(a.settings.input.Value())
		if path == "" || path == a.dataPath {
			return a, nil
		}
		cfg := loadConfigOrDefault()
		cfg.Data.Path = path
		a.settings.saveErr = config.Save(cfg)
		a.settings.saved = a.settings.saveErr == nil
		a.dataPath = path
		return a.reload()
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	cacheVal := "mati"
	if a.useCache {
		cacheVal = "aktif"
	}

	fields := []struct{ label, value string }{
		{"Tema", theme.Active.Name},
		{"File data", a.dataPath},
		{"Cache", cacheVal},
	}

	inner := components.CardInnerWidth(cw)
	var b strings.Builder
	for i, f := range fields {
		label := fmt.Sprintf("%-14s", f.label)
		value := f.value
		if i == settingsFieldDataPath && a.settings.editing {
			value = a.settings.input.View()
		} else {
			value = truncStr(value, inner-16)
		}

		if i == a.settings.cursor {
			b.WriteString(cursorStyle.Render("▸ " + label + value))
		} else {
			b.WriteString(labelStyle.Render("  "+label) + valueStyle.Render(value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Config: " + truncStr(config.Path(), inner-8)))
	b.WriteString("\n")
	switch {
	case a.settings.saveErr != nil:
		b.WriteString(errStyle.Render("Gagal menyimpan: " + a.settings.saveErr.Error()))
	case a.settings.saved:
		b.WriteString(okStyle.Render("Tersimpan"))
	default:
		b.WriteString(dimStyle.Render("Enter untuk mengubah · Esc untuk batal"))
	}

	return components.ContentCard("Pengaturan", b.String(), cw)
}
