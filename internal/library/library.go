// Package library persists the user's bookmarks and read history. Both
// survive restarts and both store the full article, so saved entries stay
// readable even after the live feed has moved on.
package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nowflowai/nowflow/internal/logging"
	"github.com/nowflowai/nowflow/internal/news"
)

// historyLimit caps the read history; the oldest entries fall off.
const historyLimit = 100

// Store handles bookmark and history persistence.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates a Store at the given database path, creating the schema if
// needed.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id       TEXT PRIMARY KEY,
		data     TEXT NOT NULL,
		added_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		id      TEXT PRIMARY KEY,
		data    TEXT NOT NULL,
		read_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_read ON history(read_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// ToggleBookmark adds the article if absent, removes it if present.
// Returns true when the article ended up bookmarked.
func (s *Store) ToggleBookmark(a news.Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM bookmarks WHERE id = ?", a.ID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}

	data, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("marshal article: %w", err)
	}
	_, err = s.db.Exec("INSERT INTO bookmarks (id, data, added_at) VALUES (?, ?, ?)",
		a.ID, string(data), time.Now().UTC())
	if err != nil {
		return false, err
	}
	return true, nil
}

// Bookmarks returns saved articles in the order they were added.
func (s *Store) Bookmarks() ([]news.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryArticles("SELECT data FROM bookmarks ORDER BY added_at ASC")
}

// IsBookmarked reports whether the article ID is saved.
func (s *Store) IsBookmarked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var one int
	err := s.db.QueryRow("SELECT 1 FROM bookmarks WHERE id = ?", id).Scan(&one)
	return err == nil
}

// ClearBookmarks removes every saved article.
func (s *Store) ClearBookmarks() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM bookmarks")
	return err
}

// MarkRead records the article at the top of the history, replacing any
// earlier entry for the same ID, and trims the history to its cap.
func (s *Store) MarkRead(a news.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO history (id, data, read_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, read_at = excluded.read_at
	`, a.ID, string(data), time.Now().UTC())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY read_at DESC LIMIT ?
		)
	`, historyLimit)
	return err
}

// History returns read articles, most recent first.
func (s *Store) History() ([]news.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryArticles("SELECT data FROM history ORDER BY read_at DESC")
}

// WasRead reports whether the article ID appears in the history.
func (s *Store) WasRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var one int
	err := s.db.QueryRow("SELECT 1 FROM history WHERE id = ?", id).Scan(&one)
	return err == nil
}

// ClearHistory removes the whole read history.
func (s *Store) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM history")
	return err
}

// queryArticles runs a single-column data query and unmarshals each row.
// Rows that fail to unmarshal are skipped, not fatal; a corrupt entry
// should not take the whole library down.
func (s *Store) queryArticles(query string) ([]news.Article, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []news.Article
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var a news.Article
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			logging.Warn("library entry unparseable, skipping", "err", err)
			continue
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
