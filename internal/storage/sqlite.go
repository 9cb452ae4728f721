// Package storage caches fetched publication results for offline report runs.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oyvindaas/aarsrapport/internal/publication"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite snapshot cache.
type DB struct {
	db *sql.DB
}

// Snapshot is one cached fetch of a person's results.
type Snapshot struct {
	PersonID  string               `json:"person_id"`
	FetchedAt time.Time            `json:"fetched_at"`
	Results   []publication.Result `json:"results"`
}

// SnapshotInfo describes a cached snapshot without its payload.
type SnapshotInfo struct {
	PersonID    string    `json:"person_id"`
	FetchedAt   time.Time `json:"fetched_at"`
	ResultCount int       `json:"result_count"`
}

// OpenDB opens or creates the snapshot cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the cache schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			person_id TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			result_count INTEGER NOT NULL,
			results_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_person
			ON snapshots(person_id, fetched_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// SaveSnapshot stores a fetch of a person's results, stamped with the current
// time.
func (d *DB) SaveSnapshot(personID string, results []publication.Result) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	_, err = d.db.Exec(
		`INSERT INTO snapshots (person_id, fetched_at, result_count, results_json) VALUES (?, ?, ?, ?)`,
		personID, time.Now().UTC().Format(time.RFC3339Nano), len(results), string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot for a person, or nil when
// the cache has none.
func (d *DB) LatestSnapshot(personID string) (*Snapshot, error) {
	row := d.db.QueryRow(
		`SELECT fetched_at, results_json FROM snapshots
		 WHERE person_id = ? ORDER BY fetched_at DESC, id DESC LIMIT 1`,
		personID,
	)

	var fetchedAt, payload string
	if err := row.Scan(&fetchedAt, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	snap := &Snapshot{PersonID: personID}
	if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
		snap.FetchedAt = t
	}
	if err := json.Unmarshal([]byte(payload), &snap.Results); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns cache metadata for a person, newest first.
func (d *DB) ListSnapshots(personID string) ([]SnapshotInfo, error) {
	rows, err := d.db.Query(
		`SELECT fetched_at, result_count FROM snapshots
		 WHERE person_id = ? ORDER BY fetched_at DESC, id DESC`,
		personID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		info := SnapshotInfo{PersonID: personID}
		var fetchedAt string
		if err := rows.Scan(&fetchedAt, &info.ResultCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
			info.FetchedAt = t
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return infos, nil
}
