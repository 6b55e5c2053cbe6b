package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nowflowai/nowflow/internal/news"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRoundtrip(t *testing.T) {
	s := openTestStore(t)

	items := []news.Article{
		{ID: "live-1-1-0", Title: "First", Source: "Wire", Topic: news.TopicAI},
		{ID: "live-1-1-1", Title: "Second", Source: "Blog", Topic: news.TopicAI},
	}
	if err := s.Set("k1", items); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := s.Get("k1")
	if !ok {
		t.Fatal("Get reported a miss after Set")
	}
	if len(got) != 2 || got[0].Title != "First" || got[1].Title != "Second" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got[0].ID != "live-1-1-0" {
		t.Errorf("ID not preserved: %q", got[0].ID)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)
	if _, ok := s.Get("nope"); ok {
		t.Error("Get reported a hit for an absent key")
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k", []news.Article{{ID: "a", Title: "Old"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", []news.Article{{ID: "b", Title: "New"}}); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Get("k")
	if !ok || len(got) != 1 || got[0].Title != "New" {
		t.Errorf("overwrite failed: %+v", got)
	}
}

func TestCorruptEntryReadsAsMiss(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set("k", []news.Article{{ID: "a", Title: "Good"}}); err != nil {
		t.Fatal(err)
	}

	// Clobber the stored JSON directly.
	if _, err := s.db.Exec("UPDATE feed_cache SET value = ? WHERE key = ?", "{not json", "k"); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Get("k"); ok {
		t.Error("corrupt entry reported as a hit")
	}
}

func TestEmptyEntryReadsAsMiss(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set("k", []news.Article{}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("empty entry reported as a hit")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set("k", []news.Article{{ID: "a", Title: "X"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("entry survived Delete")
	}
	if err := s.Delete("absent"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestEntriesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", []news.Article{{ID: "a", Title: "Durable"}}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Give WAL a moment on slow filesystems.
	time.Sleep(10 * time.Millisecond)

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, ok := s2.Get("k")
	if !ok || len(got) != 1 || got[0].Title != "Durable" {
		t.Errorf("entry lost across reopen: %+v", got)
	}
}
