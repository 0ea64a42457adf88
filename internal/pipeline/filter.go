package pipeline

import "github.com/rewardscope/rewardscope/internal/model"

// Faculties returns the distinct faculty values of rows in first-appearance order.
func Faculties(rows []model.Respondent) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		if _, ok := seen[r.Faculty]; ok {
			continue
		}
		seen[r.Faculty] = struct{}{}
		out = append(out, r.Faculty)
	}
	return out
}

// NormalizeSelection reduces selected to the values present in faculties, deduplicated
// and in option order. Unknown values are dropped silently.
func NormalizeSelection(faculties, selected []string) []string {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	out := make([]string, 0, len(selected))
	for _, f := range faculties {
		if _, ok := want[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// FilterByFaculty returns the rows whose faculty is in selected, in their original order.
// An empty selection yields an empty view.
func FilterByFaculty(rows []model.Respondent, selected []string) []model.Respondent {
	view := make([]model.Respondent, 0, len(rows))
	if len(selected) == 0 {
		return view
	}
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	for _, r := range rows {
		if _, ok := want[r.Faculty]; ok {
			view = append(view, r)
		}
	}
	return view
}

// CountFaculties returns per-faculty row counts over the whole dataset, in option order.
func CountFaculties(rows []model.Respondent) []model.CategoryCount {
	counts := CountBy(rows, func(r model.Respondent) string { return r.Faculty })
	order := Faculties(rows)
	byLabel := make(map[string]model.CategoryCount, len(counts))
	for _, c := range counts {
		byLabel[c.Label] = c
	}
	out := make([]model.CategoryCount, 0, len(order))
	for _, f := range order {
		out = append(out, byLabel[f])
	}
	return out
}
