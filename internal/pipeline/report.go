package pipeline

import "github.com/rewardscope/rewardscope/internal/model"

// BuildReport filters ds to selection and computes every dashboard aggregate in display
// order. It holds no state; each call recomputes from scratch.
func BuildReport(ds model.Dataset, selection []string) model.Report {
	faculties := Faculties(ds.Respondents)
	sel := NormalizeSelection(faculties, selection)
	view := FilterByFaculty(ds.Respondents, sel)

	budgets := make([]float64, len(view))
	freqs := make([]int, len(view))
	for i, r := range view {
		budgets[i] = r.Budget
		freqs[i] = r.Frequency
	}

	if faculties == nil {
		faculties = []string{}
	}

	return model.Report{
		Faculties:    faculties,
		Selection:    sel,
		Summary:      Summarize(view),
		RewardTypes:  CountBy(view, rewardType),
		Preferences:  CountBy(view, preference),
		Budget:       BoxPlot(budgets),
		Frequency:    FrequencyHistogram(freqs),
		BudgetByType: MeanByGroup(view, rewardType, budget),
		Correlation:  Correlate(view),
	}
}

// FilteredRows returns the rows of ds visible under selection, for row browsers.
func FilteredRows(ds model.Dataset, selection []string) []model.Respondent {
	return FilterByFaculty(ds.Respondents, NormalizeSelection(Faculties(ds.Respondents), selection))
}

func rewardType(r model.Respondent) string { return r.RewardType }

func preference(r model.Respondent) string { return r.Preference }

func budget(r model.Respondent) float64 { return r.Budget }
