package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/rewardscope/rewardscope/internal/model"
)

// exampleDataset is the three-row dataset used throughout the dashboard docs.
func exampleDataset() model.Dataset {
	return model.Dataset{Respondents: []model.Respondent{
		{Faculty: "A", RewardType: "A", Preference: "Materi", Budget: 100000, Frequency: 2, Importance: 5, Desire: 4, Duration: 1},
		{Faculty: "A", RewardType: "A", Preference: "Non-Materi", Budget: 200000, Frequency: 1, Importance: 3, Desire: 2, Duration: 3},
		{Faculty: "B", RewardType: "B", Preference: "Materi", Budget: 300000, Frequency: 3, Importance: 4, Desire: 5, Duration: 2},
	}}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBuildReport_Example(t *testing.T) {
	r := BuildReport(exampleDataset(), []string{"A"})
	s := r.Summary

	if s.TotalRespondents != 2 {
		t.Errorf("TotalRespondents = %d, want 2", s.TotalRespondents)
	}
	if !s.MedianBudget.Defined || s.MedianBudget.Value != 150000 {
		t.Errorf("MedianBudget = %+v, want 150000", s.MedianBudget)
	}
	if !s.MeanFrequency.Defined || !approx(s.MeanFrequency.Value, 1.5) {
		t.Errorf("MeanFrequency = %+v, want 1.5", s.MeanFrequency)
	}
	if !s.HighImportancePct.Defined || !approx(s.HighImportancePct.Value, 50) {
		t.Errorf("HighImportancePct = %+v, want 50", s.HighImportancePct)
	}
	if !reflect.DeepEqual(r.Selection, []string{"A"}) {
		t.Errorf("Selection = %v, want [A]", r.Selection)
	}
}

func TestBuildReport_GroupedMeansAscending(t *testing.T) {
	ds := exampleDataset()
	r := BuildReport(ds, Faculties(ds.Respondents))

	want := []model.GroupMean{
		{Label: "A", Mean: 150000, Count: 2},
		{Label: "B", Mean: 300000, Count: 1},
	}
	if !reflect.DeepEqual(r.BudgetByType, want) {
		t.Errorf("BudgetByType = %+v, want %+v", r.BudgetByType, want)
	}
}

func TestBuildReport_EmptySelection(t *testing.T) {
	r := BuildReport(exampleDataset(), nil)
	s := r.Summary

	if s.TotalRespondents != 0 {
		t.Errorf("TotalRespondents = %d, want 0", s.TotalRespondents)
	}
	for name, st := range map[string]model.Stat{
		"median": s.MedianBudget,
		"mean":   s.MeanFrequency,
		"pct":    s.HighImportancePct,
	} {
		if st.Defined {
			t.Errorf("%s should be undefined, got %+v", name, st)
		}
	}
	if len(r.RewardTypes) != 0 || len(r.Preferences) != 0 || len(r.BudgetByType) != 0 {
		t.Errorf("expected empty categorical outputs, got %+v %+v %+v", r.RewardTypes, r.Preferences, r.BudgetByType)
	}
	if r.Budget.Defined() {
		t.Errorf("box plot should be undefined for an empty view")
	}
	if len(r.Frequency.Bins) != 0 {
		t.Errorf("histogram bins = %d, want 0", len(r.Frequency.Bins))
	}
	for i, row := range r.Correlation.Values {
		for j, c := range row {
			if c.Defined {
				t.Errorf("correlation[%d][%d] should be undefined", i, j)
			}
		}
	}
	if len(r.Faculties) != 2 {
		t.Errorf("faculty options should survive an empty selection, got %v", r.Faculties)
	}
}

func TestBuildReport_SelectAllMatchesUnfiltered(t *testing.T) {
	ds := syntheticDataset(200)
	all := BuildReport(ds, Faculties(ds.Respondents))

	budgets := make([]float64, len(ds.Respondents))
	freqs := make([]int, len(ds.Respondents))
	for i, r := range ds.Respondents {
		budgets[i] = r.Budget
		freqs[i] = r.Frequency
	}

	direct := model.Report{
		Summary:      Summarize(ds.Respondents),
		Budget:       BoxPlot(budgets),
		Frequency:    FrequencyHistogram(freqs),
		RewardTypes:  CountBy(ds.Respondents, rewardType),
		Preferences:  CountBy(ds.Respondents, preference),
		BudgetByType: MeanByGroup(ds.Respondents, rewardType, budget),
		Correlation:  Correlate(ds.Respondents),
	}
	if !reflect.DeepEqual(all.Summary, direct.Summary) {
		t.Errorf("summary differs: %+v vs %+v", all.Summary, direct.Summary)
	}
	if !reflect.DeepEqual(all.RewardTypes, direct.RewardTypes) {
		t.Errorf("reward types differ")
	}
	if !reflect.DeepEqual(all.Preferences, direct.Preferences) {
		t.Errorf("preferences differ")
	}
	if !reflect.DeepEqual(all.Budget, direct.Budget) {
		t.Errorf("budget box differs: %+v vs %+v", all.Budget, direct.Budget)
	}
	if !reflect.DeepEqual(all.Frequency, direct.Frequency) {
		t.Errorf("frequency histogram differs")
	}
	if !reflect.DeepEqual(all.BudgetByType, direct.BudgetByType) {
		t.Errorf("grouped means differ")
	}
	if !reflect.DeepEqual(all.Correlation, direct.Correlation) {
		t.Errorf("correlation differs")
	}
}

func TestBuildReport_TotalMatchesSelectionCount(t *testing.T) {
	ds := syntheticDataset(97)
	faculties := Faculties(ds.Respondents)

	for i := range faculties {
		sel := faculties[:i+1]
		want := 0
		in := make(map[string]bool)
		for _, f := range sel {
			in[f] = true
		}
		for _, r := range ds.Respondents {
			if in[r.Faculty] {
				want++
			}
		}

		s := BuildReport(ds, sel).Summary
		if s.TotalRespondents != want {
			t.Errorf("selection %v: total = %d, want %d", sel, s.TotalRespondents, want)
		}
		if s.HighImportancePct.Value < 0 || s.HighImportancePct.Value > 100 {
			t.Errorf("selection %v: high importance %.2f out of range", sel, s.HighImportancePct.Value)
		}
	}
}

func TestSummarize_MedianWithinBounds(t *testing.T) {
	ds := syntheticDataset(51)
	for _, f := range Faculties(ds.Respondents) {
		view := FilterByFaculty(ds.Respondents, []string{f})
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, r := range view {
			lo = math.Min(lo, r.Budget)
			hi = math.Max(hi, r.Budget)
		}
		med := Summarize(view).MedianBudget.Value
		if med < lo || med > hi {
			t.Errorf("%s: median %.0f outside [%.0f, %.0f]", f, med, lo, hi)
		}
	}
}

func TestFilterByFaculty_UnknownAndDuplicateValues(t *testing.T) {
	ds := exampleDataset()

	view := FilterByFaculty(ds.Respondents, []string{"B", "Z", "B"})
	if len(view) != 1 || view[0].Faculty != "B" {
		t.Errorf("view = %+v, want only the B row", view)
	}

	r := BuildReport(ds, []string{"Z", "A", "A"})
	if !reflect.DeepEqual(r.Selection, []string{"A"}) {
		t.Errorf("Selection = %v, want [A]", r.Selection)
	}
	if r.Summary.TotalRespondents != 2 {
		t.Errorf("TotalRespondents = %d, want 2", r.Summary.TotalRespondents)
	}
}

func TestFilterByFaculty_PreservesOrder(t *testing.T) {
	rows := []model.Respondent{
		{Faculty: "X", Budget: 1}, {Faculty: "Y", Budget: 2},
		{Faculty: "X", Budget: 3}, {Faculty: "Y", Budget: 4},
	}
	view := FilterByFaculty(rows, []string{"Y", "X"})
	for i, r := range view {
		if r.Budget != float64(i+1) {
			t.Fatalf("view[%d] = %+v, order not preserved", i, r)
		}
	}
}

func TestFaculties_FirstAppearance(t *testing.T) {
	rows := []model.Respondent{{Faculty: "C"}, {Faculty: "A"}, {Faculty: "C"}, {Faculty: "B"}}
	got := Faculties(rows)
	if !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Errorf("Faculties = %v", got)
	}
}

func TestCountFaculties(t *testing.T) {
	rows := []model.Respondent{{Faculty: "C"}, {Faculty: "A"}, {Faculty: "A"}}
	got := CountFaculties(rows)
	if len(got) != 2 || got[0].Label != "C" || got[0].Count != 1 || got[1].Count != 2 {
		t.Errorf("CountFaculties = %+v", got)
	}
}

func TestCountBy_OrderAndPercent(t *testing.T) {
	rows := []model.Respondent{
		{RewardType: "Makanan"}, {RewardType: "Liburan"}, {RewardType: "Gadget"},
		{RewardType: "Liburan"}, {RewardType: "Gadget"}, {RewardType: "Fashion"},
	}
	got := CountBy(rows, rewardType)

	labels := make([]string, len(got))
	for i, c := range got {
		labels[i] = c.Label
	}
	want := []string{"Liburan", "Gadget", "Makanan", "Fashion"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}

	total := 0.0
	for _, c := range got {
		total += c.Percent
	}
	if !approx(total, 100) {
		t.Errorf("percent sum = %f, want 100", total)
	}
	if !approx(got[0].Percent, 100.0/3) {
		t.Errorf("Liburan percent = %f", got[0].Percent)
	}
}

func TestMeanByGroup_TiesKeepLabelOrder(t *testing.T) {
	rows := []model.Respondent{
		{RewardType: "Zebra", Budget: 10},
		{RewardType: "Apel", Budget: 10},
		{RewardType: "Mangga", Budget: 5},
	}
	got := MeanByGroup(rows, rewardType, budget)
	want := []string{"Mangga", "Apel", "Zebra"}
	for i, g := range got {
		if g.Label != want[i] {
			t.Fatalf("order = %+v, want %v", got, want)
		}
	}
}

func TestFrequencyHistogram(t *testing.T) {
	h := FrequencyHistogram([]int{0, 2, 2, 5})
	if len(h.Bins) != 6 {
		t.Fatalf("bins = %d, want 6", len(h.Bins))
	}
	wantCounts := []int{1, 0, 2, 0, 0, 1}
	for k, b := range h.Bins {
		if b.Lo != k || b.Hi != k+1 {
			t.Errorf("bin %d edges = [%d, %d)", k, b.Lo, b.Hi)
		}
		if b.Count != wantCounts[k] {
			t.Errorf("bin %d count = %d, want %d", k, b.Count, wantCounts[k])
		}
	}
	if h.MaxCount() != 2 {
		t.Errorf("MaxCount = %d, want 2", h.MaxCount())
	}
}

func TestFrequencyHistogram_Empty(t *testing.T) {
	h := FrequencyHistogram(nil)
	if len(h.Bins) != 0 || h.MaxCount() != 0 {
		t.Errorf("expected no bins, got %+v", h)
	}
}

func TestFrequencyHistogram_AllZero(t *testing.T) {
	h := FrequencyHistogram([]int{0, 0, 0})
	if len(h.Bins) != 1 || h.Bins[0].Count != 3 {
		t.Errorf("bins = %+v, want one bin of 3", h.Bins)
	}
}

func TestFrequencyHistogram_OutOfRangeIgnored(t *testing.T) {
	h := FrequencyHistogram([]int{1, -3, model.MaxFrequency + 1, math.MaxInt64, 2})
	if len(h.Bins) != 3 {
		t.Fatalf("bins = %d, want 3", len(h.Bins))
	}
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	if total != 2 {
		t.Errorf("counted %d values, want 2", total)
	}
}

func TestFrequencyHistogram_AtBound(t *testing.T) {
	h := FrequencyHistogram([]int{model.MaxFrequency})
	if len(h.Bins) != model.MaxFrequency+1 || h.Bins[model.MaxFrequency].Count != 1 {
		t.Errorf("bins = %d, last count = %d", len(h.Bins), h.Bins[len(h.Bins)-1].Count)
	}
}
