// Package ui provides the Bubble Tea TUI for NowFlow.
package ui

import (
	"github.com/nowflowai/nowflow/internal/feed"
	"github.com/nowflowai/nowflow/internal/news"
)

// StateUpdated carries a feed state snapshot. The synchronizer's notify
// hook sends one after every transition.
type StateUpdated struct {
	State feed.State
}

// LibraryLoaded is sent when bookmarks and history are read from disk.
type LibraryLoaded struct {
	Bookmarks []news.Article
	History   []news.Article
	Err       error
}

// BookmarkToggled is sent after a bookmark toggle persists.
type BookmarkToggled struct {
	Article news.Article
	Saved   bool
	Err     error
}

// MarkedRead is sent after an article lands in the read history.
type MarkedRead struct {
	Article news.Article
	Err     error
}

// RecommendationsLoaded is sent when the recommendation call finishes.
type RecommendationsLoaded struct {
	IDs []string
	Err error
}

// LoadDispatched is sent by command wrappers that only kick off background
// work; the results arrive later as StateUpdated messages.
type LoadDispatched struct{}
