// Package source wraps the generative content providers that produce feed
// articles. The feed engine consumes only the Provider interface; concrete
// implementations cover the Gemini API and an RSS fallback.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/nowflowai/nowflow/internal/news"
)

// Provider produces normalized articles for a topic/page/filter combination.
// An empty result means "nothing found" and is not an error. Calling twice
// for the same page may return a materially similar but not identical set;
// the feed engine only relies on title-based dedup across pages.
type Provider interface {
	// Name identifies the provider (e.g. "gemini", "rss").
	Name() string

	// Available reports whether the provider is configured and usable.
	Available() bool

	// FetchContent returns the articles for one page. page starts at 1.
	FetchContent(ctx context.Context, topic news.Topic, page int, filters news.Filters) ([]news.Article, error)
}

// AdapterError marks any content source failure: transport errors, non-200
// responses, and unrecoverable payloads. The feed engine treats all of them
// the same way, so one type carries them all.
type AdapterError struct {
	Provider string
	Err      error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s adapter: %v", e.Provider, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// adapterErr wraps err for provider name.
func adapterErr(provider string, err error) error {
	return &AdapterError{Provider: provider, Err: err}
}

// AssignIDs stamps each article with an ingestion-time ID combining the
// current time, the page number, and the in-page index. This guarantees
// uniqueness even across concurrent fetches for different pairs.
func AssignIDs(items []news.Article, page int) {
	now := time.Now().UnixMilli()
	for i := range items {
		items[i].ID = fmt.Sprintf("live-%d-%d-%d", now, page, i)
	}
}
