// Package store provides a SQLite-backed cache for parsed survey files.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/source"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotCached is returned by Lookup when the file is untracked or has changed on disk.
var ErrNotCached = errors.New("file not cached")

// Cache provides SQLite-backed dataset caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// TrackedFile is the cached identity of a parsed file.
type TrackedFile struct {
	source.FileInfo
	RowCount int
	ParsedAt time.Time
}

// Tracked returns the tracking entry for path, if any.
func (c *Cache) Tracked(path string) (TrackedFile, bool, error) {
	var tf TrackedFile
	var parsedAt string
	err := c.db.QueryRow(
		"SELECT file_path, mtime_ns, size_bytes, row_count, parsed_at FROM file_tracker WHERE file_path = ?",
		path,
	).Scan(&tf.Path, &tf.MtimeNs, &tf.SizeBytes, &tf.RowCount, &parsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackedFile{}, false, nil
	}
	if err != nil {
		return TrackedFile{}, false, err
	}
	tf.ParsedAt, _ = time.Parse(time.RFC3339, parsedAt)
	return tf, true, nil
}

// Lookup returns the cached dataset for fi when the tracked mtime and size still match.
func (c *Cache) Lookup(fi source.FileInfo) (model.Dataset, error) {
	tf, ok, err := c.Tracked(fi.Path)
	if err != nil {
		return model.Dataset{}, err
	}
	if !ok || tf.MtimeNs != fi.MtimeNs || tf.SizeBytes != fi.SizeBytes {
		return model.Dataset{}, ErrNotCached
	}

	rows, err := c.db.Query(`SELECT
		fakultas, jenis_selfreward, preferensi_selfreward, freq_selfreward,
		keinginan_selfreward, budget_selfreward, durasi_selfreward, kepentingan_selfreward
		FROM respondents WHERE file_path = ? ORDER BY row_idx`, fi.Path)
	if err != nil {
		return model.Dataset{}, err
	}
	defer func() { _ = rows.Close() }()

	ds := model.Dataset{
		Path:        fi.Path,
		Respondents: make([]model.Respondent, 0, tf.RowCount),
	}
	for rows.Next() {
		var r model.Respondent
		if err := rows.Scan(
			&r.Faculty, &r.RewardType, &r.Preference, &r.Frequency,
			&r.Desire, &r.Budget, &r.Duration, &r.Importance,
		); err != nil {
			return model.Dataset{}, err
		}
		ds.Respondents = append(ds.Respondents, r)
	}
	if err := rows.Err(); err != nil {
		return model.Dataset{}, err
	}

	if len(ds.Respondents) != tf.RowCount {
		return model.Dataset{}, fmt.Errorf("cache holds %d rows for %s, tracker says %d",
			len(ds.Respondents), fi.Path, tf.RowCount)
	}
	return ds, nil
}

// Save replaces the cached rows for fi with ds.
func (c *Cache) Save(fi source.FileInfo, ds model.Dataset) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Delete old rows for this file
	if _, err := tx.Exec("DELETE FROM respondents WHERE file_path = ?", fi.Path); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, row_count, parsed_at)
		VALUES (?, ?, ?, ?, ?)`, fi.Path, fi.MtimeNs, fi.SizeBytes, len(ds.Respondents), now)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO respondents
		(file_path, row_idx, fakultas, jenis_selfreward, preferensi_selfreward, freq_selfreward,
		 keinginan_selfreward, budget_selfreward, durasi_selfreward, kepentingan_selfreward)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range ds.Respondents {
		if _, err := stmt.Exec(
			fi.Path, i, r.Faculty, r.RewardType, r.Preference, r.Frequency,
			r.Desire, r.Budget, r.Duration, r.Importance,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Forget removes a file and its rows from the cache.
func (c *Cache) Forget(path string) error {
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", path)
	return err
}

// RowCount returns the number of cached respondent rows across all files.
func (c *Cache) RowCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM respondents").Scan(&count)
	return count, err
}
