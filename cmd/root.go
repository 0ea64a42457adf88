// Package cmd implements the rewardscope CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/rewardscope/rewardscope/internal/config"
	"github.com/rewardscope/rewardscope/internal/logging"
	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/pipeline"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagData      string
	flagFaculties []string
	flagNoCache   bool
	flagQuiet     bool
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "rewardscope",
	Short: "Self-reward survey dashboard",
	Long: "Explore the Gen Z student self-reward survey: summary metrics, distributions,\n" +
		"grouped budgets and correlations, filtered by faculty.",
	SilenceUsage: true,
	RunE:         runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "Survey CSV file (default from config)")
	rootCmd.PersistentFlags().StringArrayVarP(&flagFaculties, "faculty", "f", nil, "Faculty to include (repeatable, default all)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the CSV")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
}

// settings resolves the effective configuration: config file values overridden by flags.
type settings struct {
	cfg      config.Config
	dataPath string
	useCache bool
}

func loadSettings() settings {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
	}

	s := settings{
		cfg:      cfg,
		dataPath: cfg.Data.Path,
		useCache: cfg.Data.Cache && !flagNoCache,
	}
	if flagData != "" {
		s.dataPath = flagData
	}
	if s.dataPath == "" {
		s.dataPath = config.DefaultDataPath
	}
	return s
}

// newLogger builds the stderr logger for CLI commands.
func newLogger(cfg config.Config) (zerolog.Logger, error) {
	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagQuiet {
		level = "warn"
	}
	return logging.New(level, os.Stderr)
}

// loadData is the shared data loading path used by all commands.
// Uses the SQLite cache when enabled for fast subsequent runs.
func loadData() (*pipeline.CachedLoadResult, zerolog.Logger, error) {
	s := loadSettings()
	log, err := newLogger(s.cfg)
	if err != nil {
		return nil, log, err
	}

	result, err := pipeline.LoadAuto(s.dataPath, s.useCache, log)
	if err != nil {
		return nil, log, err
	}
	return result, log, nil
}

// selection returns the faculty filter from --faculty, or nil (all faculties) when absent.
func selection() []string {
	if len(flagFaculties) == 0 {
		return nil
	}
	return flagFaculties
}

// buildReport applies the --faculty selection to the loaded dataset.
func buildReport(result *pipeline.CachedLoadResult) model.Report {
	sel := selection()
	if sel == nil {
		sel = result.Faculties
	}
	return pipeline.BuildReport(result.Dataset, sel)
}
