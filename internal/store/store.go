// Package store persists completed sessions, answer history, bookmarks and
// the exam-start log in a local SQLite database.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the database handle and hands out repositories.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas and bootstraps the schema.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Sessions returns the session/answer repository.
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{db: s.db}
}

// Bookmarks returns the bookmark repository.
func (s *Store) Bookmarks() *BookmarkRepo {
	return &BookmarkRepo{db: s.db}
}

// ExamLog returns the exam-start log repository.
func (s *Store) ExamLog() *ExamLogRepo {
	return &ExamLogRepo{db: s.db}
}

// Reset deletes all persisted data.
func (s *Store) Reset() error {
	for _, table := range []string{"answers", "sessions", "bookmarks", "exam_starts"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sqlx.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	ended_at INTEGER NOT NULL,
	total_questions INTEGER NOT NULL,
	correct_answers INTEGER NOT NULL,
	accuracy INTEGER NOT NULL,
	duration_seconds INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS answers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	question_id TEXT NOT NULL,
	category TEXT NOT NULL,
	difficulty TEXT NOT NULL,
	selected_option TEXT NOT NULL,
	is_correct INTEGER NOT NULL,
	time_spent_seconds INTEGER NOT NULL,
	answered_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id);
CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id);

CREATE TABLE IF NOT EXISTS bookmarks (
	question_id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exam_starts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL
);`
	_, err := db.Exec(schema)
	return err
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MEDPREP_DB environment variable
// 2. $XDG_DATA_HOME/medprep/medprep.db
// 3. ~/.local/share/medprep/medprep.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MEDPREP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "medprep", "medprep.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
