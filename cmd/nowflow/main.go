package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/nowflowai/nowflow/internal/cache"
	"github.com/nowflowai/nowflow/internal/config"
	"github.com/nowflowai/nowflow/internal/coord"
	"github.com/nowflowai/nowflow/internal/feed"
	"github.com/nowflowai/nowflow/internal/library"
	"github.com/nowflowai/nowflow/internal/logging"
	"github.com/nowflowai/nowflow/internal/news"
	"github.com/nowflowai/nowflow/internal/source"
	"github.com/nowflowai/nowflow/internal/ui"
)

func main() {
	// Optional .env for GEMINI_API_KEY during development.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := logging.Init(dataDir); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	cacheStore, err := cache.Open(filepath.Join(dataDir, "cache.db"))
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer cacheStore.Close()

	lib, err := library.Open(filepath.Join(dataDir, "library.db"))
	if err != nil {
		log.Fatalf("Failed to open library: %v", err)
	}
	defer lib.Close()

	// Gemini generates the feed when a key is configured; otherwise fall
	// back to plain RSS so the app still works offline-keyless.
	var provider source.Provider
	var gemini *source.GeminiProvider
	if cfg.Provider.APIKey != "" {
		gemini = source.NewGeminiProvider(
			cfg.Provider.APIKey,
			cfg.Provider.Model,
			cfg.Feed.PageSize,
			source.WithRequestsPerMinute(cfg.Provider.RequestsPerMinute),
		)
		provider = gemini
	} else {
		feeds := make([]source.Feed, len(cfg.Provider.FallbackFeeds))
		for i, f := range cfg.Provider.FallbackFeeds {
			feeds[i] = source.Feed{Name: f.Name, URL: f.URL}
		}
		provider = source.NewRSSProvider(feeds, cfg.Feed.PageSize)
		logging.Info("no API key configured, using RSS fallback", "feeds", len(feeds))
	}

	// The program pointer exists before the synchronizer broadcasts, so the
	// notify hook checks it; Bubble Tea queues Sends issued before Run.
	var program *tea.Program

	sync := feed.NewSynchronizer(provider, cacheStore, news.TopicAll, cfg.Filters,
		feed.WithCacheLimit(cfg.Feed.CacheLimit),
		feed.WithNotify(func(st feed.State) {
			if program != nil {
				program.Send(ui.StateUpdated{State: st})
			}
		}),
	)
	trigger := feed.NewTrigger(sync, cfg.UI.ScrollThreshold)

	cmds := ui.Commands{
		SetTopic: func(t news.Topic) tea.Cmd {
			return func() tea.Msg {
				sync.SetTopic(ctx, t)
				return ui.LoadDispatched{}
			}
		},
		SetFilters: func(f news.Filters) tea.Cmd {
			return func() tea.Msg {
				sync.SetFilters(ctx, f)
				return ui.LoadDispatched{}
			}
		},
		Refresh: func() tea.Cmd {
			return func() tea.Msg {
				sync.Refresh(ctx)
				return ui.LoadDispatched{}
			}
		},
		Paginate: func(position int) tea.Cmd {
			return func() tea.Msg {
				trigger.Notify(ctx, position)
				return ui.LoadDispatched{}
			}
		},
		SetSearch: func(query string) tea.Cmd {
			return func() tea.Msg {
				sync.SetSearch(query)
				return ui.LoadDispatched{}
			}
		},
		ToggleBookmark: func(a news.Article) tea.Cmd {
			return func() tea.Msg {
				saved, err := lib.ToggleBookmark(a)
				return ui.BookmarkToggled{Article: a, Saved: saved, Err: err}
			}
		},
		MarkRead: func(a news.Article) tea.Cmd {
			return func() tea.Msg {
				err := lib.MarkRead(a)
				return ui.MarkedRead{Article: a, Err: err}
			}
		},
		LoadLibrary: func() tea.Cmd {
			return func() tea.Msg {
				bookmarks, err := lib.Bookmarks()
				if err != nil {
					return ui.LibraryLoaded{Err: err}
				}
				history, err := lib.History()
				return ui.LibraryLoaded{Bookmarks: bookmarks, History: history, Err: err}
			}
		},
	}
	if gemini != nil {
		cmds.Recommend = func(history, candidates []news.Article) tea.Cmd {
			return func() tea.Msg {
				ids, err := gemini.Recommend(ctx, history, candidates)
				return ui.RecommendationsLoaded{IDs: ids, Err: err}
			}
		}
	}

	var prewarmer *coord.Prewarmer
	if cfg.Feed.PrewarmTopics {
		prewarmer = coord.NewPrewarmer(provider, cacheStore, cfg.Filters, cfg.Feed.CacheLimit)
		prewarmer.Start(ctx)
	}

	app := ui.NewApp(cmds, sync.Snapshot())
	program = tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		log.Fatalf("UI error: %v", err)
	}

	cancel()
	if prewarmer != nil {
		prewarmer.Wait()
	}

	if err := cfg.Save(); err != nil {
		logging.Warn("config save failed", "err", err)
	}
}
