package cli

import "github.com/rewardscope/rewardscope/internal/source"

// Display labels shared by every viewer surface.
const (
	DashboardTitle = "Dashboard Analisis Self-Reward Mahasiswa Gen Z"
	FilterTitle    = "Filter Data"
	FilterPrompt   = "Pilih Fakultas"

	SummaryTitle     = "Ringkasan Data Responden"
	LabelTotal       = "Total Responden"
	LabelMedian      = "Median Budget"
	LabelMeanFreq    = "Rata-rata Frekuensi"
	LabelHighImport  = "Kepentingan Tinggi (≥4)"
	CategoricalTitle = "Distribusi Kategorikal"
	RewardTypeTitle  = "Distribusi Jenis Self-Reward"
	PreferenceTitle  = "Preferensi Self-Reward (Materi vs Non-Materi)"
	NumericalTitle   = "Distribusi Numerikal"
	BudgetBoxTitle   = "Distribusi Budget Self-Reward"
	FrequencyTitle   = "Histogram Frekuensi Self-Reward"
	GroupMeanTitle   = "Rata-rata Budget per Jenis Self-Reward"
	CorrelationTitle = "Korelasi Variabel Numerikal"
	HeatmapTitle     = "Heatmap Korelasi"

	AxisRespondents = "Jumlah Responden"
	AxisRewardType  = "Jenis Self-Reward"
	AxisBudget      = "Budget (Rp)"
	AxisFrequency   = "Frekuensi"
	AxisMeanBudget  = "Rata-rata Budget (Rp)"
)

// ShortColumn returns a compact heading for a numeric survey column.
func ShortColumn(col string) string {
	switch col {
	case source.ColFrequency:
		return "freq"
	case source.ColDesire:
		return "keinginan"
	case source.ColBudget:
		return "budget"
	case source.ColDuration:
		return "durasi"
	case source.ColImportance:
		return "kepentingan"
	default:
		return col
	}
}
