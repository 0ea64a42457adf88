// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/rewardscope/rewardscope/internal/model"
)

// NotAvailable is shown in place of an undefined statistic.
const NotAvailable = "N/A"

// NoData labels an empty chart.
const NoData = "Tidak ada data"

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatRupiah formats a budget as whole rupiah with thousands separators.
// e.g., 150000 -> "Rp 150,000"
func FormatRupiah(v float64) string {
	return "Rp " + humanize.Comma(int64(math.Round(v)))
}

// FormatPeople formats a respondent count, e.g. "12 orang".
func FormatPeople(n int) string {
	return FormatNumber(int64(n)) + " orang"
}

// FormatTimes formats a mean frequency, e.g. "1.50 kali".
func FormatTimes(v float64) string {
	return fmt.Sprintf("%.2f kali", v)
}

// FormatPercent formats a 0-100 percentage with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatStat applies format to a defined stat and returns N/A otherwise.
func FormatStat(s model.Stat, format func(float64) string) string {
	if !s.Defined {
		return NotAvailable
	}
	return format(s.Value)
}

// FormatCorrelation formats a heatmap cell with two decimals, or "-" when undefined.
func FormatCorrelation(s model.Stat) string {
	if !s.Defined {
		return "-"
	}
	return fmt.Sprintf("%.2f", s.Value)
}

// Truncate shortens s to at most width terminal cells, adding an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width terminal cells, truncating if needed.
func PadRight(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}
