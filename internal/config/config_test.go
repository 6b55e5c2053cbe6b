package config

import (
	"testing"

	"github.com/nowflowai/nowflow/internal/news"
)

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	// An older config file may be missing newer fields entirely.
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Provider.Model == "" {
		t.Error("Model not defaulted")
	}
	if cfg.Feed.CacheLimit != 50 {
		t.Errorf("CacheLimit = %d", cfg.Feed.CacheLimit)
	}
	if cfg.Feed.PageSize != 6 {
		t.Errorf("PageSize = %d", cfg.Feed.PageSize)
	}
	if cfg.UI.ScrollThreshold != 3 {
		t.Errorf("ScrollThreshold = %d", cfg.UI.ScrollThreshold)
	}
	if cfg.Filters != news.DefaultFilters() {
		t.Errorf("Filters = %+v", cfg.Filters)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Feed.CacheLimit = 20
	cfg.Filters = news.Filters{DateRange: news.DateWeek, SortBy: news.SortNewest, Source: news.SourceAll}
	cfg.applyDefaults()

	if cfg.Feed.CacheLimit != 20 {
		t.Errorf("CacheLimit overwritten: %d", cfg.Feed.CacheLimit)
	}
	if cfg.Filters.DateRange != news.DateWeek {
		t.Errorf("Filters overwritten: %+v", cfg.Filters)
	}
}

func TestAutoPopulateFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-gemini")
	t.Setenv("GOOGLE_API_KEY", "from-google")

	cfg := DefaultConfig()
	cfg.AutoPopulateFromEnv()
	if cfg.Provider.APIKey != "from-gemini" {
		t.Errorf("APIKey = %q, want GEMINI_API_KEY to win", cfg.Provider.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "")
	cfg = DefaultConfig()
	cfg.AutoPopulateFromEnv()
	if cfg.Provider.APIKey != "from-google" {
		t.Errorf("APIKey = %q, want GOOGLE_API_KEY fallback", cfg.Provider.APIKey)
	}

	// An explicit key is never replaced.
	cfg.Provider.APIKey = "explicit"
	cfg.AutoPopulateFromEnv()
	if cfg.Provider.APIKey != "explicit" {
		t.Errorf("APIKey = %q", cfg.Provider.APIKey)
	}
}
