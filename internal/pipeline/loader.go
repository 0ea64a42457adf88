package pipeline

import (
	"fmt"

	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/source"

	"github.com/rs/zerolog"
)

// LoadResult holds the output of the data loading pipeline.
type LoadResult struct {
	Dataset   model.Dataset
	Info      source.FileInfo
	Faculties []string
}

// Load parses the survey file at path without touching the cache.
// Errors wrap model.ErrDataUnavailable.
func Load(path string) (*LoadResult, error) {
	pr, err := source.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return &LoadResult{
		Dataset:   pr.Dataset,
		Info:      pr.Info,
		Faculties: Faculties(pr.Dataset.Respondents),
	}, nil
}

// logLoad writes a one-line summary of a finished load.
func logLoad(log zerolog.Logger, r *LoadResult, cached bool) {
	log.Info().
		Str("path", r.Info.Path).
		Int("rows", r.Dataset.Len()).
		Int("faculties", len(r.Faculties)).
		Bool("cache_hit", cached).
		Msg("dataset loaded")
}
