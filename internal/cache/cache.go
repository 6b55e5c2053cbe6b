// Package cache provides the durable feed cache: a synchronous-read
// key-value store mapping a topic+filter cache key to the articles last
// seen for that combination. Entries survive restarts and are only
// replaced by fresh page-1 writes.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nowflowai/nowflow/internal/logging"
	"github.com/nowflowai/nowflow/internal/news"
)

// Store persists cache entries in SQLite. Concrete type, not an interface;
// the feed package defines the interface it consumes.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a Store at the given database path, creating the schema if
// needed. Uses WAL mode for file-based databases.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so the whole pool sees one database.
		connStr = "file::memory:?cache=shared"
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
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

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
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
	CREATE TABLE IF NOT EXISTS feed_cache (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
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

// Get returns the cached articles for key. Any failure along the read path,
// including an unparseable stored value, is reported as a miss rather than
// an error; a corrupt entry must never block the fetch path.
func (s *Store) Get(key string) ([]news.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM feed_cache WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		logging.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}

	var items []news.Article
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		logging.Warn("cache entry unparseable, treating as miss", "key", key, "err", err)
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// Set overwrites the entry at key. Callers pre-truncate to the cache bound;
// the store persists exactly what it is handed, insertion order preserved.
func (s *Store) Set(key string, items []news.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO feed_cache (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Delete removes the entry at key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM feed_cache WHERE key = ?", key)
	return err
}
