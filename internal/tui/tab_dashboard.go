package tui

import (
	"fmt"
	"strings"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/tui/components"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// histogramHeight is the number of rows of the frequency column chart.
const histogramHeight = 8

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	r := a.report

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Background).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center)
	sectionStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Background).
		Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(cli.DashboardTitle))
	b.WriteString("\n")

	// Summary metrics
	b.WriteString(sectionStyle.Render(" " + cli.SummaryTitle))
	b.WriteString("\n")
	b.WriteString(components.MetricCardRow(summaryMetrics(r.Summary), cw))
	b.WriteString("\n")

	shareW := components.CardInnerWidth(cw)
	labelW := lipgloss.Width(cli.LabelHighImport)
	share := components.ShareBar(cli.LabelHighImport, r.Summary.HighImportancePct, labelW, max(shareW-labelW-10, 10))
	b.WriteString(components.ContentCard("", share, cw))
	b.WriteString("\n")

	// Categorical
	b.WriteString(sectionStyle.Render(" " + cli.CategoricalTitle))
	b.WriteString("\n")
	b.WriteString(a.pairRow(cw,
		func(w int) string {
			return components.ContentCard(cli.RewardTypeTitle,
				components.HBarChart(countBars(r.RewardTypes), t.Blue, components.CardInnerWidth(w)), w)
		},
		func(w int) string {
			return components.ContentCard(cli.PreferenceTitle,
				components.ShareChart(r.Preferences, components.CardInnerWidth(w)), w)
		},
	))
	b.WriteString("\n")

	// Numerical
	b.WriteString(sectionStyle.Render(" " + cli.NumericalTitle))
	b.WriteString("\n")
	b.WriteString(a.pairRow(cw,
		func(w int) string {
			return components.ContentCard(cli.BudgetBoxTitle,
				components.BoxPlotLine(r.Budget, components.CardInnerWidth(w)), w)
		},
		func(w int) string {
			labels := make([]string, len(r.Frequency.Bins))
			values := make([]float64, len(r.Frequency.Bins))
			for i, bin := range r.Frequency.Bins {
				labels[i] = fmt.Sprintf("%d", bin.Lo)
				values[i] = float64(bin.Count)
			}
			return components.ContentCard(cli.FrequencyTitle,
				components.ColumnChart(values, labels, t.Blue, components.CardInnerWidth(w), histogramHeight), w)
		},
	))
	b.WriteString("\n")

	// Grouped means
	b.WriteString(components.ContentCard(cli.GroupMeanTitle,
		components.HBarChart(meanBars(r.BudgetByType), t.Green, components.CardInnerWidth(cw)), cw))
	b.WriteString("\n")

	// Correlation
	b.WriteString(sectionStyle.Render(" " + cli.CorrelationTitle))
	b.WriteString("\n")
	b.WriteString(components.ContentCard(cli.HeatmapTitle,
		components.Heatmap(r.Correlation, components.CardInnerWidth(cw)), cw))

	return b.String()
}

// pairRow lays two cards side by side, or stacks them on narrow terminals.
func (a App) pairRow(cw int, left, right func(w int) string) string {
	if a.isCompactLayout() {
		return left(cw) + "\n" + right(cw)
	}
	widths := components.LayoutRow(cw, 2)
	return components.CardRow([]string{left(widths[0]), right(widths[1])})
}

// dashboardMaxScroll is the largest useful scroll offset for the current size.
func (a App) dashboardMaxScroll() int {
	if !a.loaded || a.width == 0 {
		return 0
	}
	lines := strings.Count(a.renderDashboardTab(a.contentWidth()), "\n") + 1
	return max(lines-max(a.height-chromeHeight, minContentHeight), 0)
}

func summaryMetrics(m model.SummaryMetrics) []components.Metric {
	return []components.Metric{
		{Label: cli.LabelTotal, Value: cli.FormatPeople(m.TotalRespondents)},
		{Label: cli.LabelMedian, Value: cli.FormatStat(m.MedianBudget, cli.FormatRupiah)},
		{Label: cli.LabelMeanFreq, Value: cli.FormatStat(m.MeanFrequency, cli.FormatTimes)},
		{Label: cli.LabelHighImport, Value: cli.FormatStat(m.HighImportancePct, cli.FormatPercent)},
	}
}

func countBars(counts []model.CategoryCount) []components.Bar {
	bars := make([]components.Bar, len(counts))
	for i, c := range counts {
		bars[i] = components.Bar{Label: c.Label, Value: float64(c.Count), Annotation: cli.FormatNumber(int64(c.Count))}
	}
	return bars
}

func meanBars(means []model.GroupMean) []components.Bar {
	bars := make([]components.Bar, len(means))
	for i, g := range means {
		bars[i] = components.Bar{Label: g.Label, Value: g.Mean, Annotation: cli.FormatRupiah(g.Mean)}
	}
	return bars
}
