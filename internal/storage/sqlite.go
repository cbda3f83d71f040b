// Package storage provides SQLite-based persistence for the DexOS page
// viewer history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrEmptyURL is returned when a visit without a URL is recorded.
var ErrEmptyURL = errors.New("storage: empty url")

// Store manages the SQLite database connection for history persistence.
type Store struct {
	db *sql.DB
}

// Visit is one page load in the viewer.
type Visit struct {
	ID        int64
	URL       string
	Title     string
	Status    int // HTTP status code, 0 if the request failed
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions share one store; a single connection serialises writers
	// and keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			status INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_visits_created ON visits(created_at DESC, id DESC);
		CREATE INDEX IF NOT EXISTS idx_visits_url ON visits(url);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordVisit stores a page load and returns the ID of the inserted record.
func (s *Store) RecordVisit(v Visit) (int64, error) {
	if v.URL == "" {
		return 0, ErrEmptyURL
	}

	result, err := s.db.Exec(
		"INSERT INTO visits (url, title, status) VALUES (?, ?, ?)",
		v.URL, v.Title, v.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record visit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentVisits retrieves the latest N visits, newest first.
func (s *Store) RecentVisits(limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, url, title, status, created_at
		 FROM visits
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var createdAt any
		if err := rows.Scan(&v.ID, &v.URL, &v.Title, &v.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		v.CreatedAt = parseTime(createdAt)
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return visits, nil
}

// VisitCount returns how many times the URL was loaded.
func (s *Store) VisitCount(url string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM visits WHERE url = ?", url).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count visits: %w", err)
	}
	return n, nil
}

// ClearHistory removes every recorded visit.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM visits"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
