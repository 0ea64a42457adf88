package model

import "encoding/json"

// Stat is a statistic that may have no mathematical value for the current view
// (mean of zero rows, correlation of a constant column). Undefined stats are never NaN.
type Stat struct {
	Value   float64
	Defined bool
}

// DefinedStat returns a defined Stat holding v.
func DefinedStat(v float64) Stat {
	return Stat{Value: v, Defined: true}
}

// Undefined is the sentinel for a statistic with no value.
var Undefined = Stat{}

// MarshalJSON encodes undefined stats as null.
func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// MarshalYAML encodes undefined stats as null.
func (s Stat) MarshalYAML() (interface{}, error) {
	if !s.Defined {
		return nil, nil
	}
	return s.Value, nil
}

// SummaryMetrics holds the four headline numbers of the dashboard.
type SummaryMetrics struct {
	TotalRespondents  int  `json:"total_respondents" yaml:"total_respondents"`
	MedianBudget      Stat `json:"median_budget" yaml:"median_budget"`
	MeanFrequency     Stat `json:"mean_frequency" yaml:"mean_frequency"`
	HighImportancePct Stat `json:"high_importance_pct" yaml:"high_importance_pct"`
}

// CategoryCount is one bar or slice of a categorical distribution.
type CategoryCount struct {
	Label   string  `json:"label" yaml:"label"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// BoxStats summarizes a numeric column with Tukey box-and-whisker statistics.
type BoxStats struct {
	N            int       `json:"n" yaml:"n"`
	Min          Stat      `json:"min" yaml:"min"`
	Q1           Stat      `json:"q1" yaml:"q1"`
	Median       Stat      `json:"median" yaml:"median"`
	Q3           Stat      `json:"q3" yaml:"q3"`
	Max          Stat      `json:"max" yaml:"max"`
	IQR          Stat      `json:"iqr" yaml:"iqr"`
	LowerWhisker Stat      `json:"lower_whisker" yaml:"lower_whisker"`
	UpperWhisker Stat      `json:"upper_whisker" yaml:"upper_whisker"`
	Outliers     []float64 `json:"outliers" yaml:"outliers"`
}

// Defined reports whether the box has any data behind it.
func (b BoxStats) Defined() bool {
	return b.N > 0
}

// HistogramBin counts values v with Lo <= v < Hi (the last bin also includes Hi).
type HistogramBin struct {
	Lo    int `json:"lo" yaml:"lo"`
	Hi    int `json:"hi" yaml:"hi"`
	Count int `json:"count" yaml:"count"`
}

// Histogram is an integer-width frequency histogram.
type Histogram struct {
	Bins []HistogramBin `json:"bins" yaml:"bins"`
}

// MaxCount returns the tallest bin height.
func (h Histogram) MaxCount() int {
	peak := 0
	for _, b := range h.Bins {
		if b.Count > peak {
			peak = b.Count
		}
	}
	return peak
}

// GroupMean is the average budget of one reward type.
type GroupMean struct {
	Label string  `json:"label" yaml:"label"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Count int     `json:"count" yaml:"count"`
}

// CorrelationMatrix is a square Pearson correlation matrix over named columns.
// Values[i][j] is the correlation between Columns[i] and Columns[j].
type CorrelationMatrix struct {
	Columns []string `json:"columns" yaml:"columns"`
	Values  [][]Stat `json:"values" yaml:"values"`
}

// Report is everything the dashboard renders for one filter selection.
type Report struct {
	Faculties    []string          `json:"faculties" yaml:"faculties"`
	Selection    []string          `json:"selection" yaml:"selection"`
	Summary      SummaryMetrics    `json:"summary" yaml:"summary"`
	RewardTypes  []CategoryCount   `json:"reward_types" yaml:"reward_types"`
	Preferences  []CategoryCount   `json:"preferences" yaml:"preferences"`
	Budget       BoxStats          `json:"budget" yaml:"budget"`
	Frequency    Histogram         `json:"frequency" yaml:"frequency"`
	BudgetByType []GroupMean       `json:"budget_by_type" yaml:"budget_by_type"`
	Correlation  CorrelationMatrix `json:"correlation" yaml:"correlation"`
}
