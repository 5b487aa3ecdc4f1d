package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/geotech-lab/scholarsync/internal/report"
)

// MemoryDB is the path of a private in-memory database.
const MemoryDB = ":memory:"

// DB wraps a SQLite database of snapshots.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: SQLite has a single writer, and an in-memory
	// database lives only as long as its connection.
	db.SetMaxOpenConns(1)

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

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			fetched_at TEXT NOT NULL,
			user_id TEXT NOT NULL,
			provider TEXT NOT NULL,
			citations INTEGER NOT NULL,
			h_index INTEGER NOT NULL,
			international INTEGER,
			korean INTEGER,
			conference INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_user ON snapshots(user_id, fetched_at);
	`
	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and reloads it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	snaps, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snapshots"); err != nil {
		return 0, fmt.Errorf("clearing snapshots table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO snapshots (
			id, fetched_at, user_id, provider, citations, h_index,
			international, korean, conference
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range snaps {
		var intl, korean, conf sql.NullInt64
		if s.Counts != nil {
			intl = sql.NullInt64{Int64: int64(s.Counts.International), Valid: true}
			korean = sql.NullInt64{Int64: int64(s.Counts.Korean), Valid: true}
			conf = sql.NullInt64{Int64: int64(s.Counts.Conference), Valid: true}
		}
		if _, err := stmt.Exec(s.ID, s.FetchedAt, s.UserID, s.Provider, s.Citations, s.HIndex, intl, korean, conf); err != nil {
			return 0, fmt.Errorf("inserting snapshot %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshots: %w", err)
	}
	return len(snaps), nil
}

// List returns snapshots newest first. An empty userID matches every user;
// limit <= 0 means no limit.
func (d *DB) List(userID string, limit int) ([]Snapshot, error) {
	query := `
		SELECT id, fetched_at, user_id, provider, citations, h_index,
			international, korean, conference
		FROM snapshots
		WHERE (? = '' OR user_id = ?)
		ORDER BY fetched_at DESC, id
	`
	args := []any{userID, userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		var intl, korean, conf sql.NullInt64
		if err := rows.Scan(&s.ID, &s.FetchedAt, &s.UserID, &s.Provider, &s.Citations, &s.HIndex, &intl, &korean, &conf); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if intl.Valid {
			s.Counts = &report.Counts{
				International: int(intl.Int64),
				Korean:        int(korean.Int64),
				Conference:    int(conf.Int64),
			}
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// Count returns the number of snapshots in the database.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}
	return n, nil
}
