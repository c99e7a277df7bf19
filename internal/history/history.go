// Package history stores analysis reports in SQLite, keyed by the checksum of the analyzed file.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/philipparndt/stlcheck/pkg/analysis"
)

// ErrNotFound is returned when no report exists for a checksum.
var ErrNotFound = errors.New("history: report not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS reports (
	checksum      TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	num_vertices  INTEGER NOT NULL DEFAULT 0,
	num_faces     INTEGER NOT NULL DEFAULT 0,
	is_watertight INTEGER NOT NULL DEFAULT 0,
	report        TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
`

// Entry is one stored report.
type Entry struct {
	Checksum    string           `json:"checksum"`
	Name        string           `json:"name"`
	NumVertices int              `json:"num_vertices"`
	NumFaces    int              `json:"num_faces"`
	Watertight  bool             `json:"is_watertight"`
	CreatedAt   time.Time        `json:"created_at"`
	Report      *analysis.Report `json:"report,omitempty"`
}

// Store wraps a sql.DB holding analysis reports.
type Store struct {
	conn *sql.DB
}

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Save inserts or replaces the report stored under checksum.
func (s *Store) Save(checksum, name string, report *analysis.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("history: encode report: %w", err)
	}
	_, err = s.conn.Exec(`
		INSERT INTO reports (checksum, name, num_vertices, num_faces, is_watertight, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(checksum) DO UPDATE SET
			name          = excluded.name,
			num_vertices  = excluded.num_vertices,
			num_faces     = excluded.num_faces,
			is_watertight = excluded.is_watertight,
			report        = excluded.report,
			created_at    = excluded.created_at
	`, checksum, name, report.Summary.NumVertices, report.Summary.NumFaces,
		report.Summary.IsWatertight, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("history: save report: %w", err)
	}
	return nil
}

// Get returns the entry stored under checksum, including the full report.
func (s *Store) Get(checksum string) (*Entry, error) {
	var (
		e    Entry
		data string
	)
	err := s.conn.QueryRow(`
		SELECT checksum, name, num_vertices, num_faces, is_watertight, created_at, report
		FROM reports WHERE checksum = ?
	`, checksum).Scan(&e.Checksum, &e.Name, &e.NumVertices, &e.NumFaces, &e.Watertight, &e.CreatedAt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: get report: %w", err)
	}

	var report analysis.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("history: decode report: %w", err)
	}
	e.Report = &report
	return &e, nil
}

// List returns the most recent entries without their reports, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.conn.Query(`
		SELECT checksum, name, num_vertices, num_faces, is_watertight, created_at
		FROM reports
		ORDER BY created_at DESC, checksum
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list reports: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Checksum, &e.Name, &e.NumVertices, &e.NumFaces, &e.Watertight, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
