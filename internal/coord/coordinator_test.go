package coord

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nowflowai/nowflow/internal/feed"
	"github.com/nowflowai/nowflow/internal/news"
)

type stubProvider struct {
	mu    sync.Mutex
	calls map[news.Topic]int
	fetch func(topic news.Topic) ([]news.Article, error)
}

func (p *stubProvider) Name() string    { return "stub" }
func (p *stubProvider) Available() bool { return true }

func (p *stubProvider) FetchContent(_ context.Context, topic news.Topic, _ int, _ news.Filters) ([]news.Article, error) {
	p.mu.Lock()
	if p.calls == nil {
		p.calls = make(map[news.Topic]int)
	}
	p.calls[topic]++
	p.mu.Unlock()
	return p.fetch(topic)
}

type stubCache struct {
	mu      sync.Mutex
	entries map[string][]news.Article
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]news.Article)}
}

func (c *stubCache) Get(key string) ([]news.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := c.entries[key]
	return items, ok
}

func (c *stubCache) Set(key string, items []news.Article) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = items
	return nil
}

func TestPrewarmerWarmsEveryTopic(t *testing.T) {
	provider := &stubProvider{fetch: func(topic news.Topic) ([]news.Article, error) {
		return []news.Article{{ID: "x", Title: "story for " + string(topic)}}, nil
	}}
	cache := newStubCache()
	filters := news.DefaultFilters()

	p := NewPrewarmer(provider, cache, filters, 50)
	p.Start(context.Background())
	p.Wait()

	for _, topic := range news.Topics() {
		if _, ok := cache.Get(feed.CacheKey(topic, filters)); !ok {
			t.Errorf("topic %q not warmed", topic)
		}
	}
}

func TestPrewarmerSkipsCachedTopics(t *testing.T) {
	provider := &stubProvider{fetch: func(topic news.Topic) ([]news.Article, error) {
		return []news.Article{{ID: "x", Title: "fresh"}}, nil
	}}
	cache := newStubCache()
	filters := news.DefaultFilters()
	warmKey := feed.CacheKey(news.TopicAI, filters)
	cache.entries[warmKey] = []news.Article{{ID: "old", Title: "already here"}}

	p := NewPrewarmer(provider, cache, filters, 50)
	p.Start(context.Background())
	p.Wait()

	if provider.calls[news.TopicAI] != 0 {
		t.Error("fetched a topic that was already cached")
	}
	if got := cache.entries[warmKey]; len(got) != 1 || got[0].ID != "old" {
		t.Errorf("cached entry replaced: %+v", got)
	}
}

func TestPrewarmerTruncatesToLimit(t *testing.T) {
	big := make([]news.Article, 20)
	for i := range big {
		big[i] = news.Article{ID: "x", Title: "t"}
	}
	provider := &stubProvider{fetch: func(news.Topic) ([]news.Article, error) {
		return big, nil
	}}
	cache := newStubCache()
	filters := news.DefaultFilters()

	p := NewPrewarmer(provider, cache, filters, 5)
	p.Start(context.Background())
	p.Wait()

	for key, items := range cache.entries {
		if len(items) != 5 {
			t.Errorf("entry %q holds %d items, want 5", key, len(items))
		}
	}
}

func TestPrewarmerToleratesFailures(t *testing.T) {
	provider := &stubProvider{fetch: func(topic news.Topic) ([]news.Article, error) {
		if topic == news.TopicAI {
			return nil, errors.New("boom")
		}
		return []news.Article{{ID: "x", Title: "ok"}}, nil
	}}
	cache := newStubCache()
	filters := news.DefaultFilters()

	p := NewPrewarmer(provider, cache, filters, 50)
	p.Start(context.Background())
	p.Wait()

	if _, ok := cache.Get(feed.CacheKey(news.TopicAI, filters)); ok {
		t.Error("failed topic was cached")
	}
	if _, ok := cache.Get(feed.CacheKey(news.TopicSpace, filters)); !ok {
		t.Error("healthy topic not warmed despite a sibling failure")
	}
}
