package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label      string
	Value      float64
	Annotation string
}

var partialBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// HBarChart renders labelled horizontal bars scaled to the largest value.
// width is the usable inner width; labels take at most a third of it.
func HBarChart(bars []Bar, color lipgloss.Color, width int) string {
	t := theme.Active
	if len(bars) == 0 {
		return emptyChart()
	}

	lw, aw := 0, 0
	peak := 0.0
	for _, b := range bars {
		lw = max(lw, runewidth.StringWidth(b.Label))
		aw = max(aw, runewidth.StringWidth(b.Annotation))
		peak = math.Max(peak, b.Value)
	}
	lw = min(lw, width/3)
	barW := max(width-lw-aw-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(bars))
	for i, b := range bars {
		fill := scaledBar(b.Value, peak, barW)
		lines[i] = labelStyle.Render(runewidth.FillRight(truncate(b.Label, lw), lw)) +
			space.Render(" ") +
			barStyle.Render(fill) +
			space.Render(strings.Repeat(" ", barW-runewidth.StringWidth(fill)+1)) +
			noteStyle.Render(b.Annotation)
	}
	return strings.Join(lines, "\n")
}

// scaledBar returns a bar of eighth-block resolution for value/peak of width cells.
// Any positive value gets at least a sliver.
func scaledBar(value, peak float64, width int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	eighths := int(math.Round(value / peak * float64(width*8)))
	eighths = max(min(eighths, width*8), 1)
	full, rem := eighths/8, eighths%8
	s := strings.Repeat("█", full)
	if rem > 0 {
		s += string(partialBlocks[rem])
	}
	return s
}

// ColumnChart renders a vertical bar chart with a y-axis, one column per value.
// When the values do not fit the width, neighbouring columns are summed.
func ColumnChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	t := theme.Active
	if len(values) == 0 {
		return emptyChart()
	}
	height = max(height, 3)

	// Merge neighbouring columns until every column gets a cell and a gap.
	origValues, origLabels := values, labels
	target := len(values)
	for {
		yLabelW := max(len(formatChartLabel(columnCeiling(values)))+1, 4)
		if len(values) <= 1 || 2*len(values)-1 <= width-yLabelW-1 {
			break
		}
		target = max(min(target-1, (width-yLabelW)/2), 1)
		values, labels = groupColumns(origValues, origLabels, target)
	}

	ceiling := columnCeiling(values)
	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	n := len(values)
	colW := max(min((width-yLabelW-1-(n-1))/n, 6), 1)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = formatChartLabel(ceiling)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(space.Render(" "))
			}
			switch {
			case v >= top:
				b.WriteString(barStyle.Render(strings.Repeat("█", colW)))
			case v > bottom:
				idx := max(min(int((v-bottom)/(top-bottom)*8), 8), 1)
				b.WriteString(barStyle.Render(strings.Repeat(string(verticalBlocks[idx]), colW)))
			default:
				b.WriteString(space.Render(strings.Repeat(" ", colW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*colW + (n - 1)
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		var xl strings.Builder
		for i, l := range labels {
			if i > 0 {
				xl.WriteString(" ")
			}
			xl.WriteString(runewidth.FillRight(truncate(l, colW), colW))
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + xl.String()))
	}
	return b.String()
}

// columnCeiling rounds the tallest value up to the next tick.
func columnCeiling(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	step := chartTickStep(peak)
	return math.Max(math.Ceil(peak/step)*step, step)
}

// groupColumns sums runs of adjacent values into at most maxCols columns. Each merged
// column keeps the label of its first member.
func groupColumns(values []float64, labels []string, maxCols int) ([]float64, []string) {
	size := (len(values) + maxCols - 1) / maxCols
	var outV []float64
	var outL []string
	for i := 0; i < len(values); i += size {
		end := min(i+size, len(values))
		sum := 0.0
		for _, v := range values[i:end] {
			sum += v
		}
		outV = append(outV, sum)
		if len(labels) == len(values) {
			outL = append(outL, labels[i])
		}
	}
	return outV, outL
}

var verticalBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', -1, 64) + "jt"
	case v >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', -1, 64) + "rb"
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// ShareChart renders a 100% stacked bar with a color legend, the terminal
// stand-in for a pie chart.
func ShareChart(counts []model.CategoryCount, width int) string {
	t := theme.Active
	if len(counts) == 0 {
		return emptyChart()
	}
	colors := t.Series()

	var bar strings.Builder
	used := 0
	for i, c := range counts {
		n := int(math.Round(c.Percent / 100 * float64(width)))
		if i == len(counts)-1 {
			n = width - used
		}
		n = max(min(n, width-used), 0)
		used += n
		bar.WriteString(lipgloss.NewStyle().
			Foreground(colors[i%len(colors)]).
			Background(t.Surface).
			Render(strings.Repeat("█", n)))
	}

	lw := 0
	for _, c := range counts {
		lw = max(lw, runewidth.StringWidth(c.Label))
	}
	lw = min(lw, width/2)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	lines := []string{bar.String(), ""}
	for i, c := range counts {
		swatch := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Background(t.Surface).Render("●")
		lines = append(lines, swatch+space.Render(" ")+
			labelStyle.Render(runewidth.FillRight(truncate(c.Label, lw), lw))+space.Render("  ")+
			pctStyle.Render(cli.FormatPercent(c.Percent)+"  "+cli.FormatPeople(c.Count)))
	}
	return strings.Join(lines, "\n")
}

// BoxPlotLine renders a horizontal box-and-whisker glyph scaled to the data range,
// followed by the five-number summary.
func BoxPlotLine(box model.BoxStats, width int) string {
	t := theme.Active
	if !box.Defined() {
		return emptyChart()
	}
	width = max(width, 10)

	lo, hi := box.Min.Value, box.Max.Value
	pos := func(v float64) int {
		if hi == lo {
			return width / 2
		}
		return int(math.Round((v - lo) / (hi - lo) * float64(width-1)))
	}

	line := []rune(strings.Repeat(" ", width))
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

	glyph := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Render(string(line))
	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	minLabel, maxLabel := cli.FormatRupiah(lo), cli.FormatRupiah(hi)
	gap := max(width-runewidth.StringWidth(minLabel)-runewidth.StringWidth(maxLabel), 1)
	scale := axis.Render(minLabel + strings.Repeat(" ", gap) + maxLabel)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	stat := func(label string, s model.Stat) string {
		return labelStyle.Render(fmt.Sprintf("%-8s", label)) + valueStyle.Render(cli.FormatStat(s, cli.FormatRupiah))
	}

	lines := []string{
		glyph,
		scale,
		"",
		stat("Q1", box.Q1),
		stat("Median", box.Median),
		stat("Q3", box.Q3),
		stat("IQR", box.IQR),
		labelStyle.Render(fmt.Sprintf("%-8s", "Outlier")) + valueStyle.Render(cli.FormatNumber(int64(len(box.Outliers)))),
	}
	return strings.Join(lines, "\n")
}

// Heatmap renders a correlation matrix as colored cells on the Blues palette.
func Heatmap(m model.CorrelationMatrix, width int) string {
	t := theme.Active
	if len(m.Columns) == 0 {
		return emptyChart()
	}

	names := make([]string, len(m.Columns))
	lw := 0
	for i, c := range m.Columns {
		names[i] = cli.ShortColumn(c)
		lw = max(lw, runewidth.StringWidth(names[i]))
	}
	cellW := max(min((width-lw-1)/len(names), 12), 6)

	header := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	label := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	undefined := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(header.Render(strings.Repeat(" ", lw+1)))
	for _, n := range names {
		b.WriteString(header.Render(runewidth.FillLeft(truncate(n, cellW-1), cellW)))
	}

	for i, row := range m.Values {
		b.WriteString("\n")
		b.WriteString(label.Render(runewidth.FillRight(names[i], lw) + " "))
		for _, c := range row {
			text := runewidth.FillLeft(cli.FormatCorrelation(c)+" ", cellW)
			if !c.Defined {
				b.WriteString(undefined.Render(text))
				continue
			}
			fg := lipgloss.Color(cli.Blues[len(cli.Blues)-1])
			if c.Value > 0.2 {
				fg = lipgloss.Color(cli.Blues[0])
			}
			b.WriteString(lipgloss.NewStyle().
				Background(lipgloss.Color(cli.BlueFor(c.Value))).
				Foreground(fg).
				Render(text))
		}
	}
	return b.String()
}

func emptyChart() string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Italic(true).Render(cli.NoData)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
