package cmd

import (
	"fmt"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/pipeline"
	"github.com/rewardscope/rewardscope/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show what the SQLite cache holds for the survey file",
	RunE:  runCacheStatus,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the survey file from the cache so the next run reparses it",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStatus(_ *cobra.Command, _ []string) error {
	s := loadSettings()
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	st, err := pipeline.InspectCache(s.dataPath, cache)
	if err != nil {
		return err
	}

	fmt.Printf("  Cache file: %s\n", pipeline.CachePath())
	fmt.Printf("  Enabled:    %v\n", s.useCache)
	fmt.Printf("  Rows held:  %s\n", cli.FormatNumber(int64(st.TotalRows)))
	fmt.Println()
	if !st.Tracked {
		fmt.Printf("  %s is not cached\n", s.dataPath)
		return nil
	}
	fmt.Printf("  %s\n", st.File.Path)
	fmt.Printf("    Rows:   %s\n", cli.FormatPeople(st.File.RowCount))
	fmt.Printf("    Size:   %s\n", humanize.Bytes(uint64(max(st.File.SizeBytes, 0))))
	fmt.Printf("    Parsed: %s\n", humanize.Time(st.File.ParsedAt))
	return nil
}

func runCacheClear(_ *cobra.Command, _ []string) error {
	s := loadSettings()
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		return err
	}
	defer func() { _ = cache.Close() }()

	if err := pipeline.ClearCache(s.dataPath, cache); err != nil {
		return err
	}
	fmt.Printf("  Cleared cache for %s\n", s.dataPath)
	return nil
}
