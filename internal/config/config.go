// Package config handles the persistent application configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nowflowai/nowflow/internal/news"
)

// Config is the persistent application configuration
type Config struct {
	// Generative news provider
	Provider ProviderConfig `json:"provider"`

	// Default search filters applied on startup
	Filters news.Filters `json:"filters"`

	// Feed behavior
	Feed FeedConfig `json:"feed"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// ProviderConfig holds the content source settings.
type ProviderConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model,omitempty"`
	// RequestsPerMinute caps outbound generation calls. Zero disables the cap.
	RequestsPerMinute int `json:"requests_per_minute"`
	// FallbackFeeds are RSS URLs used when no API key is configured.
	FallbackFeeds []FeedSource `json:"fallback_feeds,omitempty"`
}

// FeedSource is a single RSS fallback source.
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FeedConfig tunes the synchronization engine.
type FeedConfig struct {
	// CacheLimit bounds how many articles a cache entry holds.
	CacheLimit int `json:"cache_limit"`
	// PageSize is the number of stories requested per page.
	PageSize int `json:"page_size"`
	// PrewarmTopics fetches page 1 for every topic in the background on start.
	PrewarmTopics bool `json:"prewarm_topics"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme string `json:"theme"`
	// ScrollThreshold is how many rows from the end of the loaded list the
	// cursor may be before the next page is requested.
	ScrollThreshold int `json:"scroll_threshold"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Model:             "gemini-2.5-flash",
			RequestsPerMinute: 10,
			FallbackFeeds: []FeedSource{
				{Name: "Hacker News", URL: "https://news.ycombinator.com/rss"},
				{Name: "Lobsters", URL: "https://lobste.rs/rss"},
			},
		},
		Filters: news.DefaultFilters(),
		Feed: FeedConfig{
			CacheLimit:    50,
			PageSize:      6,
			PrewarmTopics: false,
		},
		UI: UIConfig{
			Theme:           "dark",
			ScrollThreshold: 3,
		},
	}
}

// DataDir returns the application data directory (~/.nowflow).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nowflow")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// A corrupt config is not fatal; fall back to defaults.
		cfg2 := DefaultConfig()
		cfg2.AutoPopulateFromEnv()
		return cfg2, nil
	}

	cfg.applyDefaults()
	cfg.AutoPopulateFromEnv()
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in the API key from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if c.Provider.APIKey != "" {
		return
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Provider.APIKey = key
		return
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
}

// applyDefaults fills zero values left by older config files.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Provider.Model == "" {
		c.Provider.Model = d.Provider.Model
	}
	if c.Feed.CacheLimit <= 0 {
		c.Feed.CacheLimit = d.Feed.CacheLimit
	}
	if c.Feed.PageSize <= 0 {
		c.Feed.PageSize = d.Feed.PageSize
	}
	if c.UI.ScrollThreshold <= 0 {
		c.UI.ScrollThreshold = d.UI.ScrollThreshold
	}
	if c.Filters.DateRange == "" {
		c.Filters = news.DefaultFilters()
	}
}
