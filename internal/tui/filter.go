package tui

import (
	"slices"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/pipeline"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// newFilterForm builds the faculty multi-select. Options are listed in
// first-appearance order with the current selection pre-checked.
func newFilterForm(faculties, selected []string, counts map[string]int, out *[]string) *huh.Form {
	opts := make([]huh.Option[string], len(faculties))
	for i, f := range faculties {
		opts[i] = huh.NewOption(f+"  ("+cli.FormatPeople(counts[f])+")", f).
			Selected(slices.Contains(selected, f))
	}
	*out = slices.Clone(selected)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(cli.FilterPrompt).
				Description("space: pilih · enter: terapkan · esc: batal").
				Options(opts...).
				Height(min(len(faculties)+2, 16)).
				Value(out),
		),
	).WithShowHelp(false).WithTheme(huh.ThemeCharm())
}

func (a App) openFilter() (tea.Model, tea.Cmd) {
	counts := make(map[string]int)
	for _, c := range pipeline.CountFaculties(a.dataset.Respondents) {
		counts[c.Label] = c.Count
	}

	a.filterVals = new([]string)
	a.filterForm = newFilterForm(a.report.Faculties, a.report.Selection, counts, a.filterVals)
	if a.width > 0 {
		a.filterForm = a.filterForm.WithWidth(min(a.width, 60)).WithHeight(a.height - 4)
	}
	return a, a.filterForm.Init()
}

func (a App) updateFilterForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.filterForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.filterForm = f
	}

	switch a.filterForm.State {
	case huh.StateCompleted:
		// An empty result is a valid, empty selection.
		a.selection = slices.Clone(*a.filterVals)
		if a.selection == nil {
			a.selection = []string{}
		}
		a.filterForm = nil
		a.recompute()
		return a, nil
	case huh.StateAborted:
		a.filterForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) viewFilter() string {
	t := theme.Active

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render(cli.FilterTitle) +
			"\n\n" + a.filterForm.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
