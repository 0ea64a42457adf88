package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// respondentsState tracks the respondents list cursor and viewport.
type respondentsState struct {
	cursor int
	offset int
}

// moveCursor moves the cursor by delta, clamped to [0, n).
func (s *respondentsState) moveCursor(delta, n int) {
	s.cursor = max(min(s.cursor+delta, n-1), 0)
}

// visible adjusts offset so the cursor is inside a window of h rows.
func (s *respondentsState) visible(h int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+h {
		s.offset = s.cursor - h + 1
	}
	s.offset = max(s.offset, 0)
}

type respColumn struct {
	title string
	width int
	right bool
	value func(i int, r model.Respondent) string
}

func respondentColumns(textW int) []respColumn {
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []respColumn{
		{"No", 5, true, func(i int, _ model.Respondent) string { return strconv.Itoa(i + 1) }},
		{"Fakultas", textW, false, func(_ int, r model.Respondent) string { return r.Faculty }},
		{"Jenis", textW, false, func(_ int, r model.Respondent) string { return r.RewardType }},
		{"Preferensi", 12, false, func(_ int, r model.Respondent) string { return r.Preference }},
		{"Freq", 5, true, func(_ int, r model.Respondent) string { return strconv.Itoa(r.Frequency) }},
		{"Keinginan", 9, true, func(_ int, r model.Respondent) string { return num(r.Desire) }},
		{"Budget", 13, true, func(_ int, r model.Respondent) string { return cli.FormatRupiah(r.Budget) }},
		{"Durasi", 7, true, func(_ int, r model.Respondent) string { return num(r.Duration) }},
		{"Penting", 7, true, func(_ int, r model.Respondent) string { return num(r.Importance) }},
	}
}

func (a App) renderRespondentsTab(cw, h int) string {
	t := theme.Active

	if len(a.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Background).
			Padding(1, 2).
			Render(cli.NoData)
	}

	// Two text columns share what the fixed columns leave over.
	fixed := 5 + 12 + 5 + 9 + 13 + 7 + 7 + 9 // widths + one gap per column
	textW := max(min((cw-fixed-4)/2, 28), 10)
	cols := respondentColumns(textW)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)

	line := func(cells []string) string {
		parts := make([]string, len(cols))
		for i, c := range cols {
			text := runewidth.Truncate(cells[i], c.width, "…")
			if c.right {
				parts[i] = runewidth.FillLeft(text, c.width)
			} else {
				parts[i] = runewidth.FillRight(text, c.width)
			}
		}
		return " " + strings.Join(parts, " ")
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}

	var b strings.Builder
	b.WriteString(headerStyle.Width(cw).Render(line(titles)))

	listH := max(h-2, 1)
	st := a.respState
	st.visible(listH)
	end := min(st.offset+listH, len(a.rows))

	for i := st.offset; i < end; i++ {
		r := a.rows[i]
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = c.value(i, r)
		}
		b.WriteString("\n")
		if i == st.cursor {
			b.WriteString(selStyle.Width(cw).Render(line(cells)))
		} else {
			b.WriteString(rowStyle.Render(line(cells)))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %d-%d / %s", st.offset+1, end, cli.FormatPeople(len(a.rows)))))
	return b.String()
}

func (a App) updateRespondentsKeys(key string) (tea.Model, tea.Cmd) {
	n := len(a.rows)
	halfPage := max((a.height-scrollOverhead)/2, minHalfPageScroll)
	switch key {
	case "j", "down":
		a.respState.moveCursor(1, n)
	case "k", "up":
		a.respState.moveCursor(-1, n)
	case "ctrl+d", "pgdown":
		a.respState.moveCursor(halfPage, n)
	case "ctrl+u", "pgup":
		a.respState.moveCursor(-halfPage, n)
	case "g", "home":
		a.respState.cursor = 0
	case "G", "end":
		a.respState.cursor = max(n-1, 0)
	}
	a.respState.visible(max(a.height-chromeHeight-2, 1))
	return a, nil
}
