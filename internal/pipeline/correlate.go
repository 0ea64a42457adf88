package pipeline

import (
	"math"

	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/source"

	"gonum.org/v1/gonum/stat"
)

// Correlate computes the pairwise Pearson correlation matrix of the numeric survey columns.
// With fewer than two rows every cell is undefined; a constant column leaves its whole row
// and column undefined.
func Correlate(view []model.Respondent) model.CorrelationMatrix {
	cols := source.NumericColumns
	m := model.CorrelationMatrix{
		Columns: append([]string(nil), cols...),
		Values:  make([][]model.Stat, len(cols)),
	}
	for i := range m.Values {
		m.Values[i] = make([]model.Stat, len(cols))
	}
	if len(view) < 2 {
		return m
	}

	data := make([][]float64, len(cols))
	varies := make([]bool, len(cols))
	for i, col := range cols {
		data[i] = numericColumn(view, col)
		varies[i] = !constant(data[i])
	}

	for i := range cols {
		if !varies[i] {
			continue
		}
		m.Values[i][i] = model.DefinedStat(1)
		for j := i + 1; j < len(cols); j++ {
			if !varies[j] {
				continue
			}
			r := stat.Correlation(data[i], data[j], nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				continue
			}
			r = math.Max(-1, math.Min(1, r))
			m.Values[i][j] = model.DefinedStat(r)
			m.Values[j][i] = model.DefinedStat(r)
		}
	}
	return m
}

// numericColumn extracts one numeric survey column from view.
func numericColumn(view []model.Respondent, col string) []float64 {
	out := make([]float64, len(view))
	for i, r := range view {
		switch col {
		case source.ColFrequency:
			out[i] = float64(r.Frequency)
		case source.ColDesire:
			out[i] = r.Desire
		case source.ColBudget:
			out[i] = r.Budget
		case source.ColDuration:
			out[i] = r.Duration
		case source.ColImportance:
			out[i] = r.Importance
		}
	}
	return out
}

func constant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
