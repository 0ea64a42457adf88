package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rewardscope/rewardscope/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Blues is a nine-step sequential blue palette, light to dark.
var Blues = []string{
	"#F7FBFF", "#DEEBF7", "#C6DBEF", "#9ECAE1", "#6BAED6",
	"#4292C6", "#2171B5", "#08519C", "#08306B",
}

// SliceColors cycles through pie slices.
var SliceColors = []lipgloss.Color{ColorBlue, ColorOrange, ColorGreen, ColorPurple, ColorYellow, ColorAccent}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	barStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderSection renders an accented section heading.
func RenderSection(title string) string {
	return "  " + headerStyle.Render(title) + "\n"
}

// rule draws one horizontal table border.
func rule(left, mid, right string, widths []int) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}

// RenderTable renders a bordered table with headers and rows.
// The first column is left-aligned and the rest are right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], runewidth.StringWidth(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], runewidth.StringWidth(cell))
				}
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(RenderSection(t.Title))
	}

	b.WriteString(rule("╭", "┬", "╮", widths))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + PadRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤", widths))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤", widths))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			w := widths[i]
			cell := ""
			if i < len(row) {
				cell = Truncate(row[i], w)
			}

			var padded string
			if i == 0 {
				padded = " " + runewidth.FillRight(cell, w) + " "
			} else {
				padded = " " + runewidth.FillLeft(cell, w) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯", widths))
	return b.String()
}

// SummaryRows returns the four headline metrics as label/value pairs in display order.
func SummaryRows(m model.SummaryMetrics) [][]string {
	return [][]string{
		{LabelTotal, FormatPeople(m.TotalRespondents)},
		{LabelMedian, FormatStat(m.MedianBudget, FormatRupiah)},
		{LabelMeanFreq, FormatStat(m.MeanFrequency, FormatTimes)},
		{LabelHighImport, FormatStat(m.HighImportancePct, FormatPercent)},
	}
}

// RenderSummary renders the headline metrics as a two-column table.
func RenderSummary(m model.SummaryMetrics) string {
	return RenderTable(Table{
		Title:   SummaryTitle,
		Headers: []string{"Metrik", "Nilai"},
		Rows:    SummaryRows(m),
	})
}

// RenderHorizontalBar renders one labelled bar scaled against maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, labelWidth, barWidth int, annotation string) string {
	barLen := 0
	if maxValue > 0 && value > 0 {
		barLen = int(math.Round(value / maxValue * float64(barWidth)))
	}
	barLen = min(max(barLen, 0), barWidth)
	if value > 0 && barLen == 0 {
		barLen = 1
	}

	return fmt.Sprintf("  %s %s%s %s",
		valueStyle.Render(PadRight(label, labelWidth)),
		barStyle.Render(strings.Repeat("█", barLen)),
		strings.Repeat(" ", barWidth-barLen),
		mutedStyle.Render(annotation),
	)
}

func labelWidth(labels []string, limit int) int {
	w := 0
	for _, l := range labels {
		w = max(w, runewidth.StringWidth(l))
	}
	return min(w, limit)
}

// RenderCategoryBars renders value counts as a horizontal bar chart.
func RenderCategoryBars(title string, counts []model.CategoryCount, barWidth int) string {
	var b strings.Builder
	b.WriteString(RenderSection(title))
	if len(counts) == 0 {
		b.WriteString("  " + dimStyle.Render(NoData) + "\n")
		return b.String()
	}

	labels := make([]string, len(counts))
	peak := 0
	for i, c := range counts {
		labels[i] = c.Label
		peak = max(peak, c.Count)
	}
	lw := labelWidth(labels, 24)

	for _, c := range counts {
		b.WriteString(RenderHorizontalBar(c.Label, float64(c.Count), float64(peak), lw, barWidth, FormatNumber(int64(c.Count))))
		b.WriteString("\n")
	}
	b.WriteString("  " + dimStyle.Render(strings.Repeat(" ", lw+1)+"→ "+AxisRespondents) + "\n")
	return b.String()
}

// RenderPie renders a share bar and a legend with one-decimal percentages.
func RenderPie(title string, counts []model.CategoryCount, width int) string {
	var b strings.Builder
	b.WriteString(RenderSection(title))
	if len(counts) == 0 {
		b.WriteString("  " + dimStyle.Render(NoData) + "\n")
		return b.String()
	}

	var bar strings.Builder
	used := 0
	for i, c := range counts {
		n := int(math.Round(c.Percent / 100 * float64(width)))
		if i == len(counts)-1 {
			n = width - used
		}
		n = max(min(n, width-used), 0)
		used += n
		style := lipgloss.NewStyle().Foreground(SliceColors[i%len(SliceColors)])
		bar.WriteString(style.Render(strings.Repeat("█", n)))
	}
	b.WriteString("  " + bar.String() + "\n")

	labels := make([]string, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
	}
	lw := labelWidth(labels, 24)
	for i, c := range counts {
		swatch := lipgloss.NewStyle().Foreground(SliceColors[i%len(SliceColors)]).Render("●")
		fmt.Fprintf(&b, "  %s %s %s\n", swatch, valueStyle.Render(PadRight(c.Label, lw)),
			mutedStyle.Render(FormatPercent(c.Percent)))
	}
	return b.String()
}

// RenderBox renders box-plot statistics and a one-line box glyph.
func RenderBox(title string, box model.BoxStats, width int) string {
	var b strings.Builder
	b.WriteString(RenderSection(title))
	if !box.Defined() {
		b.WriteString("  " + dimStyle.Render(NoData) + "\n")
		return b.String()
	}

	b.WriteString("  " + BoxGlyph(box, width) + "\n")

	rows := [][]string{
		{"Min", FormatStat(box.Min, FormatRupiah)},
		{"Whisker bawah", FormatStat(box.LowerWhisker, FormatRupiah)},
		{"Q1", FormatStat(box.Q1, FormatRupiah)},
		{"Median", FormatStat(box.Median, FormatRupiah)},
		{"Q3", FormatStat(box.Q3, FormatRupiah)},
		{"Whisker atas", FormatStat(box.UpperWhisker, FormatRupiah)},
		{"Max", FormatStat(box.Max, FormatRupiah)},
		{"Outlier", FormatNumber(int64(len(box.Outliers)))},
	}
	b.WriteString(RenderTable(Table{Headers: []string{AxisBudget, ""}, Rows: rows}))
	return b.String()
}

// BoxGlyph draws whiskers, box and median on a single line scaled between Min and Max.
func BoxGlyph(box model.BoxStats, width int) string {
	if !box.Defined() || width < 5 {
		return ""
	}
	lo, hi := box.Min.Value, box.Max.Value
	pos := func(v float64) int {
		if hi == lo {
			return width / 2
		}
		return int(math.Round((v - lo) / (hi - lo) * float64(width-1)))
	}

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}
	lw, q1, med, q3, uw := pos(box.LowerWhisker.Value), pos(box.Q1.Value), pos(box.Median.Value), pos(box.Q3.Value), pos(box.UpperWhisker.Value)
	for i := lw; i <= uw; i++ {
		line[i] = '─'
	}
	for i := q1; i <= q3; i++ {
		line[i] = '█'
	}
	line[lw] = '├'
	line[uw] = '┤'
	line[med] = '┃'
	for _, o := range box.Outliers {
		line[pos(o)] = '○'
	}
	return barStyle.Render(string(line))
}

// RenderHistogram renders a frequency histogram as horizontal bars, one per bin.
func RenderHistogram(title string, h model.Histogram, barWidth int) string {
	var b strings.Builder
	b.WriteString(RenderSection(title))
	if len(h.Bins) == 0 {
		b.WriteString("  " + dimStyle.Render(NoData) + "\n")
		return b.String()
	}

	peak := float64(h.MaxCount())
	lw := runewidth.StringWidth(fmt.Sprintf("%d", h.Bins[len(h.Bins)-1].Lo)) + 1
	for _, bin := range h.Bins {
		b.WriteString(RenderHorizontalBar(fmt.Sprintf("%dx", bin.Lo), float64(bin.Count), peak, lw, barWidth, FormatNumber(int64(bin.Count))))
		b.WriteString("\n")
	}
	b.WriteString("  " + dimStyle.Render(AxisFrequency+" ↓  "+AxisRespondents+" →") + "\n")
	return b.String()
}

// RenderGroupMeans renders mean budget per reward type, smallest first.
func RenderGroupMeans(title string, means []model.GroupMean, barWidth int) string {
	var b strings.Builder
	b.WriteString(RenderSection(title))
	if len(means) == 0 {
		b.WriteString("  " + dimStyle.Render(NoData) + "\n")
		return b.String()
	}

	labels := make([]string, len(means))
	peak := 0.0
	for i, g := range means {
		labels[i] = g.Label
		peak = math.Max(peak, g.Mean)
	}
	lw := labelWidth(labels, 24)
	for _, g := range means {
		b.WriteString(RenderHorizontalBar(g.Label, g.Mean, peak, lw, barWidth, FormatRupiah(g.Mean)))
		b.WriteString("\n")
	}
	b.WriteString("  " + dimStyle.Render(strings.Repeat(" ", lw+1)+"→ "+AxisMeanBudget) + "\n")
	return b.String()
}

// BlueFor maps a correlation in [-1, 1] onto the Blues palette.
func BlueFor(v float64) string {
	t := (math.Max(-1, math.Min(1, v)) + 1) / 2
	idx := int(math.Round(t * float64(len(Blues)-1)))
	return Blues[idx]
}

// RenderHeatmap renders the correlation matrix as a grid of colored cells.
func RenderHeatmap(title string, m model.CorrelationMatrix) string {
	var b strings.Builder
	b.WriteString(RenderSection(title))

	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = ShortColumn(c)
	}
	lw := labelWidth(names, 14)
	cellW := 7
	for _, n := range names {
		cellW = max(cellW, runewidth.StringWidth(n)+1)
	}

	b.WriteString("  " + strings.Repeat(" ", lw+1))
	for _, n := range names {
		b.WriteString(mutedStyle.Render(runewidth.FillLeft(n, cellW)))
	}
	b.WriteString("\n")

	for i, row := range m.Values {
		b.WriteString("  " + valueStyle.Render(PadRight(names[i], lw)) + " ")
		for _, c := range row {
			text := runewidth.FillLeft(FormatCorrelation(c), cellW)
			if !c.Defined {
				b.WriteString(dimStyle.Render(text))
				continue
			}
			bg := BlueFor(c.Value)
			fg := lipgloss.Color("#08306B")
			if c.Value > 0.2 {
				fg = lipgloss.Color("#F7FBFF")
			}
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(fg).Render(text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReport renders every chart of the report as terminal text, in dashboard order.
func RenderReport(r model.Report, barWidth int) string {
	var b strings.Builder
	b.WriteString(RenderTitle(DashboardTitle))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n\n", mutedStyle.Render(FilterPrompt+":"), valueStyle.Render(SelectionLabel(r)))

	b.WriteString(RenderSummary(r.Summary))
	b.WriteString("\n")
	b.WriteString(RenderCategoryBars(RewardTypeTitle, r.RewardTypes, barWidth))
	b.WriteString("\n")
	b.WriteString(RenderPie(PreferenceTitle, r.Preferences, barWidth))
	b.WriteString("\n")
	b.WriteString(RenderBox(BudgetBoxTitle, r.Budget, barWidth))
	b.WriteString("\n")
	b.WriteString(RenderHistogram(FrequencyTitle, r.Frequency, barWidth))
	b.WriteString("\n")
	b.WriteString(RenderGroupMeans(GroupMeanTitle, r.BudgetByType, barWidth))
	b.WriteString("\n")
	b.WriteString(RenderHeatmap(HeatmapTitle, r.Correlation))
	return b.String()
}

// SelectionLabel describes the active faculty filter.
func SelectionLabel(r model.Report) string {
	switch {
	case len(r.Selection) == 0:
		return "(tidak ada)"
	case len(r.Selection) == len(r.Faculties):
		return fmt.Sprintf("Semua (%d)", len(r.Faculties))
	default:
		return strings.Join(r.Selection, ", ")
	}
}
