// Package pipeline orchestrates survey loading, caching, filtering and report aggregation.
package pipeline

import (
	"sort"

	"github.com/rewardscope/rewardscope/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Summarize computes the four headline metrics over a filtered view.
// Median, mean and percentage are undefined for an empty view.
func Summarize(view []model.Respondent) model.SummaryMetrics {
	m := model.SummaryMetrics{
		TotalRespondents:  len(view),
		MedianBudget:      model.Undefined,
		MeanFrequency:     model.Undefined,
		HighImportancePct: model.Undefined,
	}
	if len(view) == 0 {
		return m
	}

	budgets := make([]float64, len(view))
	freqs := make([]float64, len(view))
	high := 0
	for i, r := range view {
		budgets[i] = r.Budget
		freqs[i] = float64(r.Frequency)
		if r.IsHighImportance() {
			high++
		}
	}
	sort.Float64s(budgets)

	m.MedianBudget = model.DefinedStat(quantile(budgets, 0.5))
	m.MeanFrequency = model.DefinedStat(stat.Mean(freqs, nil))
	m.HighImportancePct = model.DefinedStat(float64(high) / float64(len(view)) * 100)
	return m
}

// CountBy counts rows per key. Results are ordered by count descending; equal counts keep
// the order in which their key first appeared.
func CountBy(view []model.Respondent, key func(model.Respondent) string) []model.CategoryCount {
	idx := make(map[string]int)
	counts := make([]model.CategoryCount, 0)
	for _, r := range view {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(counts)
			idx[k] = i
			counts = append(counts, model.CategoryCount{Label: k})
		}
		counts[i].Count++
	}

	for i := range counts {
		counts[i].Percent = float64(counts[i].Count) / float64(len(view)) * 100
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// MeanByGroup averages value per key and sorts the groups ascending by mean.
// Groups with equal means stay in label order.
func MeanByGroup(view []model.Respondent, key func(model.Respondent) string, value func(model.Respondent) float64) []model.GroupMean {
	groups := make(map[string][]float64)
	for _, r := range view {
		k := key(r)
		groups[k] = append(groups[k], value(r))
	}

	labels := make([]string, 0, len(groups))
	for k := range groups {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	means := make([]model.GroupMean, 0, len(labels))
	for _, k := range labels {
		vals := groups[k]
		means = append(means, model.GroupMean{
			Label: k,
			Mean:  stat.Mean(vals, nil),
			Count: len(vals),
		})
	}
	sort.SliceStable(means, func(i, j int) bool {
		return means[i].Mean < means[j].Mean
	})
	return means
}

// FrequencyHistogram bins integer values into unit-width bins [k, k+1) for k = 0..max,
// so every value from zero to the maximum has its own bar. No values means no bins.
// Values outside [0, model.MaxFrequency] are not counted.
func FrequencyHistogram(values []int) model.Histogram {
	h := model.Histogram{Bins: []model.HistogramBin{}}
	if len(values) == 0 {
		return h
	}

	peak := 0
	for _, v := range values {
		if v > peak && v <= model.MaxFrequency {
			peak = v
		}
	}

	h.Bins = make([]model.HistogramBin, peak+1)
	for k := range h.Bins {
		h.Bins[k] = model.HistogramBin{Lo: k, Hi: k + 1}
	}
	for _, v := range values {
		if v < 0 || v > peak {
			continue
		}
		h.Bins[v].Count++
	}
	return h
}
