package source

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nowflowai/nowflow/internal/logging"
	"github.com/nowflowai/nowflow/internal/news"
)

// Feed is a single RSS source for the fallback provider.
type Feed struct {
	Name string
	URL  string
}

// RSSProvider serves real headlines from configured feeds when no API key
// is available. Pagination is offset slicing into the merged, sorted list;
// a page past the end returns empty, which ends the feed naturally.
type RSSProvider struct {
	feeds    []Feed
	pageSize int
	client   *http.Client
}

// NewRSSProvider creates the fallback provider.
func NewRSSProvider(feeds []Feed, pageSize int) *RSSProvider {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &RSSProvider{
		feeds:    feeds,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *RSSProvider) Name() string { return "rss" }

func (r *RSSProvider) Available() bool { return len(r.feeds) > 0 }

// FetchContent merges every configured feed, applies the filters, and
// slices out the requested page.
func (r *RSSProvider) FetchContent(ctx context.Context, topic news.Topic, page int, filters news.Filters) ([]news.Article, error) {
	if !r.Available() {
		return nil, adapterErr(r.Name(), fmt.Errorf("no feeds configured"))
	}

	type dated struct {
		article   news.Article
		published time.Time
	}

	var merged []dated
	var lastErr error
	fetched := 0
	for _, feed := range r.feeds {
		if filters.Source != "" && filters.Source != news.SourceAll && !strings.EqualFold(feed.Name, filters.Source) {
			continue
		}

		parsed, err := r.fetchFeed(ctx, feed)
		if err != nil {
			logging.Warn("rss feed fetch failed", "feed", feed.Name, "err", err)
			lastErr = err
			continue
		}
		fetched++

		for _, item := range parsed.Items {
			published := time.Now()
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			} else if item.UpdatedParsed != nil {
				published = *item.UpdatedParsed
			}
			if !withinRange(published, filters.DateRange) {
				continue
			}
			merged = append(merged, dated{
				article: news.Article{
					Title:       item.Title,
					Source:      feed.Name,
					URL:         item.Link,
					PublishedAt: published.Format(time.RFC3339),
					Topic:       topic,
					Summary:     truncate(stripHTML(item.Description), 300),
					Content:     truncate(stripHTML(firstNonEmpty(item.Content, item.Description)), 1200),
				},
				published: published,
			})
		}
	}

	// All feeds down is an adapter failure; a partial outage is not.
	if fetched == 0 && lastErr != nil {
		return nil, adapterErr(r.Name(), lastErr)
	}

	if filters.SortBy == news.SortNewest {
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].published.After(merged[j].published)
		})
	}

	offset := (page - 1) * r.pageSize
	if offset >= len(merged) {
		return []news.Article{}, nil
	}
	end := offset + r.pageSize
	if end > len(merged) {
		end = len(merged)
	}

	pageItems := make([]news.Article, 0, end-offset)
	primaries := news.TopicImages(topic, end-offset)
	for i, d := range merged[offset:end] {
		a := d.article
		a.ImageURL = primaries[i]
		a.Images = []string{primaries[i]}
		pageItems = append(pageItems, a)
	}
	AssignIDs(pageItems, page)
	return pageItems, nil
}

func (r *RSSProvider) fetchFeed(ctx context.Context, feed Feed) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "NowFlow/1.0 (+https://github.com/nowflowai/nowflow)")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return parsed, nil
}

func withinRange(published time.Time, dateRange string) bool {
	switch dateRange {
	case news.DateToday:
		return time.Since(published) <= 24*time.Hour
	case news.DateWeek:
		return time.Since(published) <= 7*24*time.Hour
	case news.DateMonth:
		return time.Since(published) <= 30*24*time.Hour
	default:
		return true
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// stripHTML drops tags and collapses whitespace.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
