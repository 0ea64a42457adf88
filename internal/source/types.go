package source

// Column names of the cleaned survey CSV.
const (
	ColFaculty    = "Fakultas"
	ColRewardType = "jenis_selfreward"
	ColPreference = "preferensi_selfreward"
	ColFrequency  = "freq_selfreward"
	ColDesire     = "keinginan_selfreward"
	ColBudget     = "budget_selfreward"
	ColDuration   = "durasi_selfreward"
	ColImportance = "kepentingan_selfreward"
)

// DefaultPath is where the dashboard expects the cleaned survey file.
const DefaultPath = "data_self_reward_cleaned.csv"

// RequiredColumns lists every column the loader needs, in schema order.
var RequiredColumns = []string{
	ColFaculty,
	ColRewardType,
	ColPreference,
	ColFrequency,
	ColDesire,
	ColBudget,
	ColDuration,
	ColImportance,
}

// NumericColumns is the fixed column set of the correlation heatmap, in display order.
var NumericColumns = []string{
	ColFrequency,
	ColDesire,
	ColBudget,
	ColDuration,
	ColImportance,
}

// FileInfo identifies one version of a source file on disk.
type FileInfo struct {
	Path      string
	MtimeNs   int64
	SizeBytes int64
}
