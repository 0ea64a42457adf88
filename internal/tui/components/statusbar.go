package components

import (
	"strings"

	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// dataset info on the right.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " " + hints
	right := ""
	if info != "" {
		right = info + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return style.Render(left + strings.Repeat(" ", padding) + right)
}
