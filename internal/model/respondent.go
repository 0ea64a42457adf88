// Package model defines domain types for rewardscope survey data and reports.
package model

import "errors"

// ErrDataUnavailable is returned when the survey file is missing, unreadable or malformed.
// There is no fallback dataset; callers treat it as fatal for the session.
var ErrDataUnavailable = errors.New("data unavailable")

// HighImportanceThreshold is the importance score at or above which a respondent
// counts toward the high-importance share.
const HighImportanceThreshold = 4.0

// MaxFrequency is the largest self-reward frequency accepted from the survey file.
const MaxFrequency = 10000

// Respondent is one row of the cleaned self-reward survey.
type Respondent struct {
	Faculty    string  `json:"fakultas" yaml:"fakultas"`
	RewardType string  `json:"jenis_selfreward" yaml:"jenis_selfreward"`
	Preference string  `json:"preferensi_selfreward" yaml:"preferensi_selfreward"`
	Frequency  int     `json:"freq_selfreward" yaml:"freq_selfreward"`
	Desire     float64 `json:"keinginan_selfreward" yaml:"keinginan_selfreward"`
	Budget     float64 `json:"budget_selfreward" yaml:"budget_selfreward"`
	Duration   float64 `json:"durasi_selfreward" yaml:"durasi_selfreward"`
	Importance float64 `json:"kepentingan_selfreward" yaml:"kepentingan_selfreward"`
}

// IsHighImportance reports whether the respondent rated self-reward as highly important.
func (r Respondent) IsHighImportance() bool {
	return r.Importance >= HighImportanceThreshold
}

// Dataset is the immutable, ordered collection of respondents loaded for a session.
type Dataset struct {
	Path        string
	Respondents []Respondent
}

// Len returns the number of rows in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Respondents)
}
