// Package source reads the cleaned self-reward survey CSV.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rewardscope/rewardscope/internal/model"
)

const utf8BOM = "\ufeff"

// ParseResult holds the output of parsing a survey file.
type ParseResult struct {
	Dataset model.Dataset
	Info    FileInfo
}

// Stat resolves path and returns its tracked identity (absolute path, mtime, size).
func Stat(path string) (FileInfo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info, err := os.Stat(abs)
	if err != nil {
		return FileInfo{}, unavailable(fmt.Errorf("stat %s: %w", path, err))
	}
	if info.IsDir() {
		return FileInfo{}, unavailable(fmt.Errorf("%s is a directory", path))
	}
	return FileInfo{
		Path:      abs,
		MtimeNs:   info.ModTime().UnixNano(),
		SizeBytes: info.Size(),
	}, nil
}

// ParseFile reads the survey CSV at path into a Dataset.
// All failures wrap model.ErrDataUnavailable.
func ParseFile(path string) (ParseResult, error) {
	fi, err := Stat(path)
	if err != nil {
		return ParseResult{}, err
	}

	f, err := os.Open(fi.Path)
	if err != nil {
		return ParseResult{}, unavailable(fmt.Errorf("opening %s: %w", path, err))
	}
	defer func() { _ = f.Close() }()

	rows, err := ParseCSV(f)
	if err != nil {
		return ParseResult{}, fmt.Errorf("%s: %w", path, err)
	}

	return ParseResult{
		Dataset: model.Dataset{Path: fi.Path, Respondents: rows},
		Info:    fi,
	}, nil
}

// ParseCSV decodes survey rows from r. The first record is the header; columns are
// matched by name and extra columns are ignored.
func ParseCSV(r io.Reader) ([]model.Respondent, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, unavailable(errors.New("empty file, no header row"))
		}
		return nil, unavailable(fmt.Errorf("reading header: %w", err))
	}

	idx, err := columnIndex(headers)
	if err != nil {
		return nil, err
	}

	rows := make([]model.Respondent, 0, 64)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, unavailable(err)
		}
		if isBlank(rec) {
			continue
		}
		line, _ := reader.FieldPos(0)

		resp, err := decodeRow(rec, idx)
		if err != nil {
			return nil, unavailable(fmt.Errorf("row %d: %w", line, err))
		}
		rows = append(rows, resp)
	}

	return rows, nil
}

// columnIndex maps each required column to its position in the header.
func columnIndex(headers []string) (map[string]int, error) {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, unavailable(fmt.Errorf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	return idx, nil
}

func decodeRow(rec []string, idx map[string]int) (model.Respondent, error) {
	field := func(col string) string {
		return strings.TrimSpace(rec[idx[col]])
	}

	var r model.Respondent
	var err error

	r.Faculty = field(ColFaculty)
	r.RewardType = field(ColRewardType)
	r.Preference = field(ColPreference)

	freq, err := parseNumber(ColFrequency, field(ColFrequency), true)
	if err != nil {
		return r, err
	}
	if freq != math.Trunc(freq) {
		return r, fmt.Errorf("%s: %q is not a whole number", ColFrequency, field(ColFrequency))
	}
	if freq > model.MaxFrequency {
		return r, fmt.Errorf("%s: %q exceeds %d", ColFrequency, field(ColFrequency), model.MaxFrequency)
	}
	r.Frequency = int(freq)

	if r.Desire, err = parseNumber(ColDesire, field(ColDesire), false); err != nil {
		return r, err
	}
	if r.Budget, err = parseNumber(ColBudget, field(ColBudget), true); err != nil {
		return r, err
	}
	if r.Duration, err = parseNumber(ColDuration, field(ColDuration), false); err != nil {
		return r, err
	}
	if r.Importance, err = parseNumber(ColImportance, field(ColImportance), false); err != nil {
		return r, err
	}

	return r, nil
}

func parseNumber(col, raw string, nonNegative bool) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s: empty value", col)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", col, raw)
	}
	if nonNegative && v < 0 {
		return 0, fmt.Errorf("%s: %q is negative", col, raw)
	}
	return v, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", model.ErrDataUnavailable, err)
}
