// Package feed implements the news feed synchronization engine: the
// stale-while-revalidate cache flow, paginated append with cross-page
// dedup, and the trigger that advances pages.
//
// The engine is split the way it is tested: a pure reduce function owns
// every state transition, and the Synchronizer is the thin task layer that
// issues the single I/O call per transition and feeds the result back in
// as an event.
package feed

import (
	"strings"

	"github.com/nowflowai/nowflow/internal/news"
)

// cacheNamespace prefixes every cache key. The schema version token is part
// of the namespace: when the stored article shape changes, bumping the
// version orphans old entries instead of producing read-parse failures.
const cacheNamespace = "nowflow_news_v2"

// CacheKey scopes a cache entry to one topic+filter combination.
// Format: nowflow_news_v2_<topic>_<dateRange>-<sortBy>-<source>.
func CacheKey(topic news.Topic, filters news.Filters) string {
	return cacheNamespace + "_" + string(topic) + "_" + filters.Signature()
}

// State is the complete in-memory feed state for the active session.
type State struct {
	Topic   news.Topic
	Filters news.Filters

	// Items is the ordered loaded list for the active (topic, filters)
	// pair. No two entries share a case-insensitive-equal title.
	Items []news.Article

	// Page is the highest page successfully applied. Resets to 1 when the
	// pair changes.
	Page int

	// HasMore turns false exactly when a page beyond the first returns
	// zero items. It resets to true on pair change and refresh.
	HasMore bool

	// IsInitialLoading covers page 1 of a pair with no cache hit.
	// IsPaginating covers pages beyond the first. Never both at once.
	IsInitialLoading bool
	IsPaginating     bool

	// SearchQuery is the client-side text filter. While non-empty, no
	// fetching happens at all.
	SearchQuery string
}

// Key returns the cache key of the active pair.
func (s State) Key() string { return CacheKey(s.Topic, s.Filters) }

// Loading reports whether any load is in flight.
func (s State) Loading() bool { return s.IsInitialLoading || s.IsPaginating }

// Event is a feed state transition input. Every event carrying fetch
// results is tagged with the cache key it was issued for; reduce discards
// it when the state has moved to a different pair in the meantime.
type Event interface{ isEvent() }

// PairChanged switches the active (topic, filters) pair and resets
// pagination. The loaded list is kept until fresh content replaces it, so
// the previous feed stays painted during the switch.
type PairChanged struct {
	Topic   news.Topic
	Filters news.Filters
}

// SearchChanged sets the client-side search query.
type SearchChanged struct{ Query string }

// InstantPaint publishes a cache hit as the current list before any I/O.
type InstantPaint struct {
	Key   string
	Items []news.Article
}

// LoadStarted raises the loading flag appropriate for the page. A page-1
// load that already painted from cache shows no loading state at all.
type LoadStarted struct {
	Key      string
	Page     int
	CacheHit bool
}

// PageLoaded applies a successful fetch: wholesale replace for page 1,
// dedup-append for later pages, end-of-feed for an empty later page.
type PageLoaded struct {
	Key   string
	Page  int
	Items []news.Article
}

// LoadSettled clears the loading flags once a load finishes, successfully
// or not.
type LoadSettled struct{ Key string }

func (PairChanged) isEvent()   {}
func (SearchChanged) isEvent() {}
func (InstantPaint) isEvent()  {}
func (LoadStarted) isEvent()   {}
func (PageLoaded) isEvent()    {}
func (LoadSettled) isEvent()   {}

// reduce is the pure state-transition function. It never performs I/O.
func reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case PairChanged:
		s.Topic = ev.Topic
		s.Filters = ev.Filters
		s.Page = 1
		s.HasMore = true
		s.IsInitialLoading = false
		s.IsPaginating = false
		return s

	case SearchChanged:
		s.SearchQuery = ev.Query
		return s

	case InstantPaint:
		if ev.Key != s.Key() {
			return s
		}
		s.Items = ev.Items
		s.HasMore = true
		s.IsInitialLoading = false
		return s

	case LoadStarted:
		if ev.Key != s.Key() {
			return s
		}
		if ev.Page == 1 {
			if !ev.CacheHit {
				s.IsInitialLoading = true
			}
		} else {
			s.IsPaginating = true
		}
		return s

	case PageLoaded:
		if ev.Key != s.Key() {
			return s
		}
		if len(ev.Items) == 0 {
			// A first page with nothing found is an empty feed, not the
			// end of one.
			if ev.Page > 1 {
				s.HasMore = false
			}
			return s
		}
		if ev.Page == 1 {
			s.Items = dedupByTitle(nil, ev.Items)
			s.Page = 1
			return s
		}
		s.Items = dedupByTitle(s.Items, ev.Items)
		s.Page = ev.Page
		return s

	case LoadSettled:
		if ev.Key != s.Key() {
			return s
		}
		s.IsInitialLoading = false
		s.IsPaginating = false
		return s
	}
	return s
}

// dedupByTitle appends incoming to existing, dropping any entry whose
// title already appears (case-insensitive exact match). Order preserved.
func dedupByTitle(existing, incoming []news.Article) []news.Article {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	out := make([]news.Article, 0, len(existing)+len(incoming))
	for _, a := range existing {
		seen[strings.ToLower(a.Title)] = struct{}{}
		out = append(out, a)
	}
	for _, a := range incoming {
		key := strings.ToLower(a.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
