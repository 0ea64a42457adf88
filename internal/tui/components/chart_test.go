package components

import (
	"strconv"
	"strings"
	"testing"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func TestScaledBar(t *testing.T) {
	if got := scaledBar(0, 10, 8); got != "" {
		t.Errorf("zero value bar = %q, want empty", got)
	}
	if got := scaledBar(10, 10, 8); got != strings.Repeat("█", 8) {
		t.Errorf("full bar = %q", got)
	}
	if got := scaledBar(0.001, 10, 8); got == "" {
		t.Error("tiny positive value should still draw a sliver")
	}
	if got := scaledBar(5, 0, 8); got != "" {
		t.Errorf("zero peak bar = %q, want empty", got)
	}
}

func TestHBarChartRows(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := HBarChart([]Bar{
		{Label: "Makanan", Value: 4, Annotation: "4"},
		{Label: "Liburan", Value: 2, Annotation: "2"},
	}, theme.Active.Blue, 50)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Makanan") || !strings.Contains(lines[1], "Liburan") {
		t.Errorf("bars out of order:\n%s", out)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w > 50 {
			t.Errorf("line %d width %d exceeds 50", i, w)
		}
	}
}

func TestChartsShowNoDataWhenEmpty(t *testing.T) {
	theme.SetActive("flexoki-dark")

	outputs := map[string]string{
		"hbar":    HBarChart(nil, theme.Active.Blue, 40),
		"columns": ColumnChart(nil, nil, theme.Active.Blue, 40, 6),
		"share":   ShareChart(nil, 40),
		"box":     BoxPlotLine(model.BoxStats{}, 40),
		"heatmap": Heatmap(model.CorrelationMatrix{}, 40),
	}
	for name, out := range outputs {
		if !strings.Contains(out, cli.NoData) {
			t.Errorf("%s: empty chart = %q, want %q", name, out, cli.NoData)
		}
	}
}

func TestColumnChartHeight(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := ColumnChart([]float64{1, 3, 2}, []string{"0", "1", "2"}, theme.Active.Blue, 40, 6)
	lines := strings.Split(out, "\n")
	// rows + x-axis + labels
	if len(lines) != 8 {
		t.Errorf("lines = %d, want 8:\n%s", len(lines), out)
	}
}

func TestHeatmapUndefinedCells(t *testing.T) {
	theme.SetActive("flexoki-dark")

	m := model.CorrelationMatrix{
		Columns: []string{"freq_selfreward", "budget_selfreward"},
		Values: [][]model.Stat{
			{model.DefinedStat(1), model.Undefined},
			{model.Undefined, model.Undefined},
		},
	}
	out := Heatmap(m, 60)
	if !strings.Contains(out, "1.00") {
		t.Error("diagonal value missing")
	}
	if strings.Count(out, " - ") < 3 {
		t.Errorf("expected three undefined cells:\n%s", out)
	}
}

func TestShareBarUndefined(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := ShareBar("Kepentingan Tinggi (≥4)", model.Undefined, 24, 20)
	if !strings.Contains(out, cli.NotAvailable) {
		t.Errorf("undefined share should show %s: %q", cli.NotAvailable, out)
	}
	out = ShareBar("Kepentingan Tinggi (≥4)", model.DefinedStat(50), 24, 20)
	if !strings.Contains(out, "50.0%") {
		t.Errorf("share bar = %q, want 50.0%%", out)
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for active := range Tabs {
		total := 0
		for i, tab := range Tabs {
			total += TabVisualWidth(tab, i == active)
		}
		total += len(Tabs) - 1

		if got := lipgloss.Width(RenderTabBar(active, 0)); got != total {
			t.Errorf("active=%d rendered width %d, want %d", active, got, total)
		}
	}
}

func TestColumnChartMergesColumnsToFitWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	values := make([]float64, 200)
	labels := make([]string, 200)
	for i := range values {
		values[i] = float64(i % 7)
		labels[i] = strconv.Itoa(i)
	}

	const width = 40
	out := ColumnChart(values, labels, theme.Active.Blue, width, 6)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > width {
			t.Errorf("line %d width = %d, want <= %d", i, w, width)
		}
	}
}

func TestGroupColumnsKeepsTotals(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	labels := []string{"0", "1", "2", "3", "4", "5", "6"}

	got, gotLabels := groupColumns(values, labels, 3)
	want := []float64{6, 15, 7}
	if len(got) != len(want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("group %d = %v, want %v", i, got[i], want[i])
		}
	}
	if gotLabels[0] != "0" || gotLabels[1] != "3" || gotLabels[2] != "6" {
		t.Errorf("labels = %v", gotLabels)
	}
}
