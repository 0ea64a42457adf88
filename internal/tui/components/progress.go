package components

import (
	"fmt"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForShare returns a color that warms as the share (0..1) grows.
func ColorForShare(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.75:
		return string(t.Orange)
	case pct >= 0.5:
		return string(t.Yellow)
	case pct >= 0.25:
		return string(t.Accent)
	default:
		return string(t.Blue)
	}
}

// ShareBar renders a labelled progress bar for a percentage on the 0-100 scale.
// An undefined share draws an empty bar and N/A.
func ShareBar(label string, share model.Stat, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if share.Defined {
		pct = max(min(share.Value/100, 1), 0)
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForShare(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForShare(pct))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(cli.FormatStat(share, cli.FormatPercent))
}
