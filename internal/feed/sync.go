package feed

import (
	"context"
	"sync"

	"github.com/nowflowai/nowflow/internal/logging"
	"github.com/nowflowai/nowflow/internal/news"
	"github.com/nowflowai/nowflow/internal/source"
)

// CacheStore is the durable key-value store the synchronizer writes page
// results into. A corrupt or missing entry reads as a miss, never an error.
type CacheStore interface {
	Get(key string) ([]news.Article, bool)
	Set(key string, items []news.Article) error
}

// DefaultCacheLimit bounds how many articles a cache entry holds.
const DefaultCacheLimit = 50

// Synchronizer is the single authoritative coordinator of what content is
// loaded, what is cached, and what is in flight.
//
// Concurrency contract: LoadPage is re-entrant across different
// (topic, filters) pairs, but callers must serialize calls for the same
// pair. The pagination trigger and the pair-change commands guarantee that
// in practice. A superseded in-flight call for an abandoned pair has all
// of its events discarded by the key guard in reduce.
type Synchronizer struct {
	provider source.Provider
	cache    CacheStore
	limit    int

	mu     sync.Mutex
	state  State
	notify func(State)
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithCacheLimit overrides the per-entry cache bound.
func WithCacheLimit(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithNotify registers the state broadcast hook. The presentation layer
// receives a snapshot after every transition.
func WithNotify(fn func(State)) Option {
	return func(s *Synchronizer) { s.notify = fn }
}

// NewSynchronizer creates the engine for an initial topic and filter pair.
func NewSynchronizer(provider source.Provider, cache CacheStore, topic news.Topic, filters news.Filters, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		provider: provider,
		cache:    cache,
		limit:    DefaultCacheLimit,
		state: State{
			Topic:   topic,
			Filters: filters,
			Page:    1,
			HasMore: true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state. The Items slice is copied
// so callers can hold it across further transitions.
func (s *Synchronizer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Synchronizer) snapshotLocked() State {
	snap := s.state
	snap.Items = make([]news.Article, len(s.state.Items))
	copy(snap.Items, s.state.Items)
	return snap
}

// apply runs one transition and broadcasts the resulting snapshot.
func (s *Synchronizer) apply(ev Event) State {
	s.mu.Lock()
	s.state = reduce(s.state, ev)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if s.notify != nil {
		s.notify(snap)
	}
	return snap
}

// LoadPage runs one fetch-or-restore cycle for the given pair and page.
//
// For page 1 without forceRefresh, a cache hit is published synchronously
// before the fetch is issued; the background fetch then either replaces the
// painted list (page 1 success) or is discarded (failure, or the state
// moved to another pair). The provider call is the only blocking step, so
// callers run LoadPage off the UI's logical thread.
//
// Adapter failures never escape: state and cache stay untouched, the error
// is logged, and the loading flags clear on every exit path.
func (s *Synchronizer) LoadPage(ctx context.Context, topic news.Topic, filters news.Filters, page int, forceRefresh bool) {
	s.mu.Lock()
	searching := s.state.SearchQuery != ""
	s.mu.Unlock()
	// Search is a pure client-side filter over already-loaded items;
	// fetching while it is active would fight the filtered view.
	if searching {
		return
	}

	key := CacheKey(topic, filters)

	cacheHit := false
	if page == 1 && !forceRefresh {
		if items, ok := s.cache.Get(key); ok {
			cacheHit = true
			s.apply(InstantPaint{Key: key, Items: items})
		}
	}

	s.apply(LoadStarted{Key: key, Page: page, CacheHit: cacheHit})
	defer s.apply(LoadSettled{Key: key})

	items, err := s.provider.FetchContent(ctx, topic, page, filters)
	if err != nil {
		logging.Error("content fetch failed", "topic", topic, "page", page, "err", err)
		return
	}

	snap := s.apply(PageLoaded{Key: key, Page: page, Items: items})

	// Persist only when the result was actually applied to this pair.
	if len(items) > 0 && snap.Key() == key {
		entry := snap.Items
		if len(entry) > s.limit {
			entry = entry[:s.limit]
		}
		if err := s.cache.Set(key, entry); err != nil {
			logging.Warn("cache write failed", "key", key, "err", err)
		}
	}
}

// SetTopic switches the active topic, resets pagination, and loads page 1.
func (s *Synchronizer) SetTopic(ctx context.Context, topic news.Topic) {
	s.mu.Lock()
	filters := s.state.Filters
	s.mu.Unlock()

	s.apply(PairChanged{Topic: topic, Filters: filters})
	s.LoadPage(ctx, topic, filters, 1, false)
}

// SetFilters switches the active filter signature, resets pagination, and
// loads page 1.
func (s *Synchronizer) SetFilters(ctx context.Context, filters news.Filters) {
	s.mu.Lock()
	topic := s.state.Topic
	s.mu.Unlock()

	s.apply(PairChanged{Topic: topic, Filters: filters})
	s.LoadPage(ctx, topic, filters, 1, false)
}

// Refresh refetches page 1 for the active pair, bypassing the cache read.
// The cache is still overwritten on success.
func (s *Synchronizer) Refresh(ctx context.Context) {
	s.mu.Lock()
	topic, filters := s.state.Topic, s.state.Filters
	s.mu.Unlock()

	s.apply(PairChanged{Topic: topic, Filters: filters})
	s.LoadPage(ctx, topic, filters, 1, true)
}

// NextPage loads the page after the highest applied one. Only the
// pagination trigger calls this; manual refresh and pair changes always
// reset to page 1.
func (s *Synchronizer) NextPage(ctx context.Context) {
	s.mu.Lock()
	topic, filters, page := s.state.Topic, s.state.Filters, s.state.Page
	s.mu.Unlock()

	s.LoadPage(ctx, topic, filters, page+1, false)
}

// SetSearch sets the client-side search query. While non-empty, LoadPage
// and the pagination trigger are inert.
func (s *Synchronizer) SetSearch(query string) {
	s.apply(SearchChanged{Query: query})
}
