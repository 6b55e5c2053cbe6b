// Package coord provides background cache prewarming for NowFlow.
package coord

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nowflowai/nowflow/internal/feed"
	"github.com/nowflowai/nowflow/internal/logging"
	"github.com/nowflowai/nowflow/internal/news"
	"github.com/nowflowai/nowflow/internal/source"
)

// fetchTimeout is the timeout for each individual topic fetch.
const fetchTimeout = 60 * time.Second

// maxConcurrentFetches limits parallel prewarm fetches.
const maxConcurrentFetches = 3

// Prewarmer fills the feed cache with page 1 of every topic so switching
// topics instant-paints instead of spinning. It only ever writes cache
// entries; the live FeedState is untouched.
// Uses context cancellation as the ONLY stop mechanism.
type Prewarmer struct {
	provider source.Provider
	cache    feed.CacheStore
	filters  news.Filters
	limit    int
	wg       sync.WaitGroup
}

// NewPrewarmer creates a Prewarmer that warms entries under the given
// filter signature. limit is the per-entry cache bound.
func NewPrewarmer(provider source.Provider, cache feed.CacheStore, filters news.Filters, limit int) *Prewarmer {
	if limit <= 0 {
		limit = feed.DefaultCacheLimit
	}
	return &Prewarmer{
		provider: provider,
		cache:    cache,
		filters:  filters,
		limit:    limit,
	}
}

// Start warms every topic in the background. Call with a cancellable
// context; topics already cached are skipped.
func (p *Prewarmer) Start(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.warmAll(ctx)
	}()
}

// Wait blocks until the background work exits.
// Call after canceling the context passed to Start.
func (p *Prewarmer) Wait() {
	p.wg.Wait()
}

// warmAll fetches all topics in parallel with a concurrency cap. Errors
// are reported per-topic and never fail the group.
func (p *Prewarmer) warmAll(ctx context.Context) {
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for _, topic := range news.Topics() {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			p.warmTopic(ctx, topic)
			return nil
		})
	}

	_ = g.Wait()
}

// warmTopic fetches page 1 for one topic and caches it. A topic that
// already has a cache entry is left alone; its instant paint is covered.
func (p *Prewarmer) warmTopic(ctx context.Context, topic news.Topic) {
	key := feed.CacheKey(topic, p.filters)
	if _, ok := p.cache.Get(key); ok {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	items, err := p.provider.FetchContent(fetchCtx, topic, 1, p.filters)
	if err != nil {
		logging.Warn("prewarm fetch failed", "topic", topic, "err", err)
		return
	}
	if len(items) == 0 {
		return
	}
	if len(items) > p.limit {
		items = items[:p.limit]
	}
	if err := p.cache.Set(key, items); err != nil {
		logging.Warn("prewarm cache write failed", "topic", topic, "err", err)
		return
	}
	logging.Debug("prewarmed topic", "topic", topic, "items", len(items))
}
