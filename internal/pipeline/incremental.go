package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rewardscope/rewardscope/internal/source"
	"github.com/rewardscope/rewardscope/internal/store"

	"github.com/rs/zerolog"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHit bool
}

// LoadWithCache returns the dataset from the cache when the file's mtime and size match
// what was tracked, and otherwise parses the CSV and refreshes the cache. Cache failures
// are logged and never fail the load; only source errors do.
func LoadWithCache(path string, cache *store.Cache, log zerolog.Logger) (*CachedLoadResult, error) {
	fi, err := source.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	ds, err := cache.Lookup(fi)
	switch {
	case err == nil:
		result := &CachedLoadResult{
			LoadResult: LoadResult{Dataset: ds, Info: fi, Faculties: Faculties(ds.Respondents)},
			CacheHit:   true,
		}
		logLoad(log, &result.LoadResult, true)
		return result, nil
	case errors.Is(err, store.ErrNotCached):
		log.Debug().Str("path", fi.Path).Msg("cache miss, parsing")
	default:
		log.Warn().Err(err).Str("path", fi.Path).Msg("cache read failed, parsing")
	}

	loaded, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cache.Save(loaded.Info, loaded.Dataset); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}

	logLoad(log, loaded, false)
	return &CachedLoadResult{LoadResult: *loaded}, nil
}

// LoadAuto loads path through the cache at CachePath, falling back to an uncached parse
// when the cache is disabled or cannot be opened.
func LoadAuto(path string, useCache bool, log zerolog.Logger) (*CachedLoadResult, error) {
	if useCache {
		cache, err := store.Open(CachePath())
		if err == nil {
			defer func() { _ = cache.Close() }()
			return LoadWithCache(path, cache, log)
		}
		log.Warn().Err(err).Msg("cache unavailable, loading uncached")
	}

	loaded, err := Load(path)
	if err != nil {
		return nil, err
	}
	logLoad(log, loaded, false)
	return &CachedLoadResult{LoadResult: *loaded}, nil
}

// CacheStatus describes what the cache holds for one survey file.
type CacheStatus struct {
	File      store.TrackedFile
	Tracked   bool
	TotalRows int
}

// InspectCache reports the tracking entry for path and the number of rows cached overall.
func InspectCache(path string, cache *store.Cache) (CacheStatus, error) {
	var st CacheStatus
	tf, ok, err := cache.Tracked(absPath(path))
	if err != nil {
		return st, fmt.Errorf("reading cache entry: %w", err)
	}
	st.File, st.Tracked = tf, ok

	if st.TotalRows, err = cache.RowCount(); err != nil {
		return st, fmt.Errorf("counting cached rows: %w", err)
	}
	return st, nil
}

// ClearCache drops path from the cache so the next load reparses the CSV.
func ClearCache(path string, cache *store.Cache) error {
	if err := cache.Forget(absPath(path)); err != nil {
		return fmt.Errorf("clearing cache for %s: %w", path, err)
	}
	return nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "rewardscope")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "rewardscope")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "survey.db")
}
