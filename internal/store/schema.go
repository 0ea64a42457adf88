package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    row_count            INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS respondents (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    row_idx              INTEGER NOT NULL,
    fakultas             TEXT NOT NULL,
    jenis_selfreward     TEXT NOT NULL,
    preferensi_selfreward TEXT NOT NULL,
    freq_selfreward      INTEGER NOT NULL,
    keinginan_selfreward REAL NOT NULL,
    budget_selfreward    REAL NOT NULL,
    durasi_selfreward    REAL NOT NULL,
    kepentingan_selfreward REAL NOT NULL,
    PRIMARY KEY (file_path, row_idx)
);

CREATE INDEX IF NOT EXISTS idx_respondents_fakultas ON respondents(file_path, fakultas);
`
