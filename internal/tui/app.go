// Package tui provides the interactive Bubble Tea dashboard for rewardscope.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/config"
	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/pipeline"
	"github.com/rewardscope/rewardscope/internal/tui/components"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// DataLoadedMsg is sent when the survey file has been loaded (or failed to load).
type DataLoadedMsg struct {
	Result   *pipeline.CachedLoadResult
	Err      error
	LoadTime time.Duration
}

const (
	tabDashboard = iota
	tabRespondents
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	dataset  model.Dataset
	loaded   bool
	loadErr  error
	loadTime time.Duration
	cacheHit bool

	// Pre-computed for the current selection
	report model.Report
	rows   []model.Respondent

	// Filter state. selection is nil until the dataset is loaded; a nil
	// initial selection means every faculty.
	selection  []string
	filterForm *huh.Form
	filterVals *[]string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	scroll    int

	// Per-tab state
	respState respondentsState
	settings  settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model

	dataPath string
	useCache bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	chromeHeight      = 3 // tab bar + filter pill + status bar
	scrollOverhead    = 6 // approximate chrome plus margins for half-page calc
	minHalfPageScroll = 1
	minContentHeight  = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model. A nil selection selects every faculty once
// the dataset is loaded.
func NewApp(dataPath string, useCache bool, selection []string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		dataPath:  dataPath,
		useCache:  useCache,
		selection: selection,
		needSetup: !config.Exists(),
		spinner:   sp,
		settings:  newSettingsState(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dataPath, a.useCache),
		a.spinner.Tick,
	)
}

// recompute rebuilds the report and row list for the current selection.
func (a *App) recompute() {
	a.report = pipeline.BuildReport(a.dataset, a.selection)
	a.rows = pipeline.FilteredRows(a.dataset, a.selection)

	if a.respState.cursor >= len(a.rows) {
		a.respState.cursor = len(a.rows) - 1
	}
	if a.respState.cursor < 0 {
		a.respState.cursor = 0
	}
	a.respState.offset = 0
	a.scroll = 0
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.filterForm != nil {
			a.filterForm = a.filterForm.WithWidth(min(msg.Width, 60)).WithHeight(msg.Height - 4)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.loadErr != nil || a.showHelp || a.setupForm != nil || a.filterForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.filterForm != nil {
			if key == "esc" {
				a.filterForm = nil
				return a, nil
			}
			return a.updateFilterForm(msg)
		}

		if a.loadErr != nil {
			switch key {
			case "q":
				return a, tea.Quit
			case "R":
				return a.reload()
			}
			return a, nil
		}

		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "f":
			return a.openFilter()
		case "a":
			a.selection = a.report.Faculties
			a.recompute()
			return a, nil
		case "R":
			return a.reload()
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabDashboard:
			return a.updateDashboardKeys(key)
		case tabRespondents:
			return a.updateRespondentsKeys(key)
		case tabSettings:
			return a.updateSettingsKeys(key)
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err != nil {
			return a, nil
		}
		a.dataset = msg.Result.Dataset
		a.cacheHit = msg.Result.CacheHit
		if a.selection == nil {
			a.selection = msg.Result.Faculties
		}
		a.recompute()

		if a.needSetup {
			a.setupVals = NewSetupValues(loadConfigOrDefault())
			a.setupForm = newSetupForm(len(a.dataset.Respondents), a.dataset.Path, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to an open form.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.filterForm != nil {
		return a.updateFilterForm(msg)
	}

	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabDashboard:
			a.scroll = max(a.scroll-3, 0)
		case tabRespondents:
			a.respState.moveCursor(-1, len(a.rows))
		}
		return a, nil

	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabDashboard:
			a.scroll = min(a.scroll+3, a.dashboardMaxScroll())
		case tabRespondents:
			a.respState.moveCursor(1, len(a.rows))
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil
	}
	return a, nil
}

func (a App) updateDashboardKeys(key string) (tea.Model, tea.Cmd) {
	halfPage := max((a.height-scrollOverhead)/2, minHalfPageScroll)
	switch key {
	case "j", "down":
		a.scroll++
	case "k", "up":
		a.scroll = max(a.scroll-1, 0)
	case "ctrl+d":
		a.scroll += halfPage
	case "ctrl+u":
		a.scroll = max(a.scroll-halfPage, 0)
	case "g":
		a.scroll = 0
	case "G":
		a.scroll = a.dashboardMaxScroll()
	}
	a.scroll = min(a.scroll, a.dashboardMaxScroll())
	return a, nil
}

// reload re-reads the survey file, keeping the current selection.
func (a App) reload() (tea.Model, tea.Cmd) {
	a.loaded = false
	a.loadErr = nil
	return a, tea.Batch(loadDataCmd(a.dataPath, a.useCache), a.spinner.Tick)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		pathChanged := a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		if pathChanged {
			return a.reload()
		}
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
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
		return a.viewLoadError()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.filterForm != nil {
		return a.viewFilter()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal terlalu sempit (%d kolom)\n\n  rewardscope butuh minimal %d kolom.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ rewardscope"))
	b.WriteString(subtitleStyle.Render(" · " + cli.DashboardTitle))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Memuat " + truncStr(a.dataPath, 50)))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// viewLoadError is the blocking screen shown when the survey file cannot be read.
func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3).
		Width(min(a.width-4, 90))

	titleStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	title := "Data tidak tersedia"
	if !errors.Is(a.loadErr, model.ErrDataUnavailable) {
		title = "Gagal memuat data"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("✗ " + title))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(a.loadErr.Error()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("File: " + a.dataPath))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[R] coba lagi  [q] keluar"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Pintasan Keyboard"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigasi", []struct{ key, desc string }{
			{"d r p", "Pindah tab"},
			{"← →", "Tab sebelumnya / berikutnya"},
			{"j k", "Gulir / gerakkan kursor"},
			{"^d ^u", "Gulir setengah halaman"},
			{"g G", "Awal / akhir"},
		}},
		{"Aksi", []struct{ key, desc string }{
			{"f", "Filter fakultas"},
			{"a", "Pilih semua fakultas"},
			{"R", "Muat ulang file survei"},
			{"Enter", "Ubah pengaturan"},
			{"?", "Tampilkan / tutup bantuan"},
			{"q", "Keluar"},
		}},
	}
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Tekan tombol apa saja untuk menutup"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + filter pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	filterStr := pillStyle.Render(" "+cli.FilterPrompt+": ") +
		accentStyle.Render(truncStr(cli.SelectionLabel(a.report), w-30)) +
		pillStyle.Render(" │ ") +
		accentStyle.Render(cli.FormatPeople(len(a.rows)))

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(filterStr)

	// 2. Status bar
	info := fmt.Sprintf("%s · %.2fs", truncStr(a.dataset.Path, 40), a.loadTime.Seconds())
	if a.cacheHit {
		info += " · cache"
	}
	statusBar := components.RenderStatusBar(w, "[f] filter  [?] bantuan  [q] keluar", info)

	// 3. Content zone
	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabDashboard:
		lines := strings.Split(a.renderDashboardTab(cw), "\n")
		offset := min(a.scroll, max(len(lines)-contentH, 0))
		content = strings.Join(lines[offset:], "\n")
	case tabRespondents:
		content = a.renderRespondentsTab(cw, contentH)
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

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd loads the survey file in the background. The TUI owns the
// terminal, so the pipeline gets a no-op logger.
func loadDataCmd(path string, useCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		res, err := pipeline.LoadAuto(path, useCache, zerolog.Nop())
		return DataLoadedMsg{Result: res, Err: err, LoadTime: time.Since(start)}
	}
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

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
