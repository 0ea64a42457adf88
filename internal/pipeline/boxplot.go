package pipeline

import (
	"math"
	"sort"

	"github.com/rewardscope/rewardscope/internal/model"
)

// whiskerReach is the Tukey fence distance in multiples of the IQR.
const whiskerReach = 1.5

// BoxPlot computes box-and-whisker statistics for values. Whiskers extend to the most
// extreme values within 1.5 IQR of the quartiles; anything beyond is an outlier.
func BoxPlot(values []float64) model.BoxStats {
	b := model.BoxStats{N: len(values), Outliers: []float64{}}
	if len(values) == 0 {
		return b
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	med := quantile(sorted, 0.5)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lowFence := q1 - whiskerReach*iqr
	highFence := q3 + whiskerReach*iqr

	lower, upper := q1, q3
	lowerSet, upperSet := false, false
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers = append(b.Outliers, v)
			continue
		}
		if !lowerSet {
			lower, lowerSet = v, true
		}
		upper, upperSet = v, true
	}
	// Whiskers never fall inside the box.
	if !lowerSet || lower > q1 {
		lower = q1
	}
	if !upperSet || upper < q3 {
		upper = q3
	}

	b.Min = model.DefinedStat(sorted[0])
	b.Q1 = model.DefinedStat(q1)
	b.Median = model.DefinedStat(med)
	b.Q3 = model.DefinedStat(q3)
	b.Max = model.DefinedStat(sorted[len(sorted)-1])
	b.IQR = model.DefinedStat(iqr)
	b.LowerWhisker = model.DefinedStat(lower)
	b.UpperWhisker = model.DefinedStat(upper)
	return b
}

// quantile returns the p-quantile of sorted using linear interpolation between the
// closest ranks: h = (n-1)p, result = x[floor h] + (h - floor h)(x[ceil h] - x[floor h]).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
