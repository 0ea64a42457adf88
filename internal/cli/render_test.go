package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/source"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func sampleReport() model.Report {
	undefinedRow := []model.Stat{model.Undefined, model.Undefined, model.Undefined, model.Undefined, model.Undefined}
	return model.Report{
		Faculties: []string{"A", "B"},
		Selection: []string{"A"},
		Summary: model.SummaryMetrics{
			TotalRespondents:  2,
			MedianBudget:      model.DefinedStat(150000),
			MeanFrequency:     model.DefinedStat(1.5),
			HighImportancePct: model.DefinedStat(50),
		},
		RewardTypes: []model.CategoryCount{{Label: "Makanan", Count: 2, Percent: 100}},
		Preferences: []model.CategoryCount{
			{Label: "Materi", Count: 1, Percent: 50},
			{Label: "Non-Materi", Count: 1, Percent: 50},
		},
		Budget: boxOf(100000, 200000),
		Frequency: model.Histogram{Bins: []model.HistogramBin{
			{Lo: 0, Hi: 1}, {Lo: 1, Hi: 2, Count: 1}, {Lo: 2, Hi: 3, Count: 1},
		}},
		BudgetByType: []model.GroupMean{{Label: "Makanan", Mean: 150000, Count: 2}},
		Correlation: model.CorrelationMatrix{
			Columns: source.NumericColumns,
			Values:  [][]model.Stat{undefinedRow, undefinedRow, undefinedRow, undefinedRow, undefinedRow},
		},
	}
}

// boxOf builds a two-point box without outliers.
func boxOf(lo, hi float64) model.BoxStats {
	mid := (lo + hi) / 2
	return model.BoxStats{
		N:            2,
		Min:          model.DefinedStat(lo),
		Q1:           model.DefinedStat(lo + (hi-lo)/4),
		Median:       model.DefinedStat(mid),
		Q3:           model.DefinedStat(hi - (hi-lo)/4),
		Max:          model.DefinedStat(hi),
		IQR:          model.DefinedStat((hi - lo) / 2),
		LowerWhisker: model.DefinedStat(lo),
		UpperWhisker: model.DefinedStat(hi),
		Outliers:     []float64{},
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(sampleReport().Summary)
	for _, want := range []string{"2 orang", "Rp 150,000", "1.50 kali", "50.0%", LabelHighImport} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummary_Empty(t *testing.T) {
	out := RenderSummary(model.SummaryMetrics{})
	if strings.Count(out, NotAvailable) != 3 {
		t.Errorf("expected three N/A cells:\n%s", out)
	}
	if !strings.Contains(out, "0 orang") {
		t.Errorf("expected zero total:\n%s", out)
	}
}

func TestRenderReport_Order(t *testing.T) {
	out := RenderReport(sampleReport(), 20)

	order := []string{DashboardTitle, FilterPrompt, SummaryTitle, RewardTypeTitle, PreferenceTitle,
		BudgetBoxTitle, FrequencyTitle, GroupMeanTitle, HeatmapTitle}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		if i < 0 {
			t.Fatalf("report missing %q", s)
		}
		if i < last {
			t.Errorf("%q out of order", s)
		}
		last = i
	}
	if !strings.Contains(out, "50.0%") {
		t.Error("pie legend should show one-decimal percentages")
	}
}

func TestRenderCharts_EmptyView(t *testing.T) {
	charts := []string{
		RenderCategoryBars(RewardTypeTitle, nil, 20),
		RenderPie(PreferenceTitle, nil, 20),
		RenderBox(BudgetBoxTitle, model.BoxStats{}, 20),
		RenderHistogram(FrequencyTitle, model.Histogram{}, 20),
		RenderGroupMeans(GroupMeanTitle, nil, 20),
	}
	for _, c := range charts {
		if !strings.Contains(c, NoData) {
			t.Errorf("empty chart should say %q:\n%s", NoData, c)
		}
	}
}

func TestRenderHeatmap_UndefinedCells(t *testing.T) {
	out := RenderHeatmap(HeatmapTitle, sampleReport().Correlation)
	if !strings.Contains(out, "kepentingan") {
		t.Errorf("heatmap missing column heading:\n%s", out)
	}
	if strings.Count(out, "-") < 25 {
		t.Errorf("expected 25 undefined markers:\n%s", out)
	}
}

func TestBlueFor_Range(t *testing.T) {
	if BlueFor(-1) != Blues[0] || BlueFor(1) != Blues[len(Blues)-1] {
		t.Errorf("palette ends wrong: %s %s", BlueFor(-1), BlueFor(1))
	}
	if BlueFor(5) != Blues[len(Blues)-1] {
		t.Error("values above 1 should clamp")
	}
}

func TestBoxGlyph_Width(t *testing.T) {
	g := BoxGlyph(boxOf(0, 100), 21)
	if w := lipgloss.Width(g); w != 21 {
		t.Errorf("glyph width = %d, want 21", w)
	}
	if !strings.Contains(g, "┃") {
		t.Errorf("glyph missing median marker: %q", g)
	}
}

func TestSelectionLabel(t *testing.T) {
	r := sampleReport()
	if got := SelectionLabel(r); got != "A" {
		t.Errorf("SelectionLabel = %q", got)
	}
	r.Selection = []string{"A", "B"}
	if got := SelectionLabel(r); got != "Semua (2)" {
		t.Errorf("SelectionLabel all = %q", got)
	}
	r.Selection = nil
	if got := SelectionLabel(r); got != "(tidak ada)" {
		t.Errorf("SelectionLabel none = %q", got)
	}
}
