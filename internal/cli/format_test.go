package cli

import (
	"testing"

	"github.com/rewardscope/rewardscope/internal/model"
)

func TestFormatters(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"number", FormatNumber(1234567), "1,234,567"},
		{"rupiah", FormatRupiah(150000), "Rp 150,000"},
		{"rupiah rounds", FormatRupiah(99999.6), "Rp 100,000"},
		{"people", FormatPeople(2), "2 orang"},
		{"times", FormatTimes(1.5), "1.50 kali"},
		{"percent", FormatPercent(50), "50.0%"},
		{"percent third", FormatPercent(100.0 / 3), "33.3%"},
		{"stat defined", FormatStat(model.DefinedStat(150000), FormatRupiah), "Rp 150,000"},
		{"stat undefined", FormatStat(model.Undefined, FormatRupiah), "N/A"},
		{"corr", FormatCorrelation(model.DefinedStat(-0.456)), "-0.46"},
		{"corr undefined", FormatCorrelation(model.Undefined), "-"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := Truncate("Kedokteran Gigi", 8); got != "Kedokte…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("Hukum", 10); got != "Hukum" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := PadRight("FISIP", 8); got != "FISIP   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := Truncate("x", 0); got != "" {
		t.Errorf("Truncate zero width = %q", got)
	}
}
