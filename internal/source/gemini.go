package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nowflowai/nowflow/internal/logging"
	"github.com/nowflowai/nowflow/internal/news"
)

const defaultGeminiBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider synthesizes live news via the Gemini API with the Google
// Search tool. The model returns free-text JSON; everything here is about
// coaxing and then recovering a structured article list out of it.
type GeminiProvider struct {
	apiKey   string
	model    string
	baseURL  string
	pageSize int
	client   *http.Client
	limiter  *rate.Limiter
}

// GeminiOption configures a GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithBaseURL overrides the API endpoint (tests point this at httptest).
func WithBaseURL(u string) GeminiOption {
	return func(g *GeminiProvider) { g.baseURL = u }
}

// WithRequestsPerMinute caps outbound generation calls.
func WithRequestsPerMinute(n int) GeminiOption {
	return func(g *GeminiProvider) {
		if n > 0 {
			g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
		}
	}
}

// NewGeminiProvider creates the generative provider. pageSize is the number
// of stories requested per page.
func NewGeminiProvider(apiKey, model string, pageSize int, opts ...GeminiOption) *GeminiProvider {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if pageSize <= 0 {
		pageSize = 6
	}
	g := &GeminiProvider{
		apiKey:   apiKey,
		model:    model,
		baseURL:  defaultGeminiBase,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) Available() bool { return g.apiKey != "" }

// rawArticle is the shape the model is asked to emit per story.
type rawArticle struct {
	Title        string   `json:"title"`
	Source       string   `json:"source"`
	PublishedAt  string   `json:"publishedAt"`
	Summary      string   `json:"summary"`
	KeyTakeaways []string `json:"keyTakeaways"`
	WhyItMatters string   `json:"whyItMatters"`
	Content      string   `json:"content"`
}

// FetchContent asks the model for one page of stories and normalizes the
// result. Returns an empty slice (not an error) when the model finds nothing.
func (g *GeminiProvider) FetchContent(ctx context.Context, topic news.Topic, page int, filters news.Filters) ([]news.Article, error) {
	if !g.Available() {
		return nil, adapterErr(g.Name(), fmt.Errorf("not configured"))
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, adapterErr(g.Name(), err)
		}
	}

	prompt := buildNewsPrompt(topic, page, filters, g.pageSize)

	body := map[string]any{
		"contents": []map[string]any{
			{
				"role":  "user",
				"parts": []map[string]string{{"text": prompt}},
			},
		},
		"generationConfig": map[string]any{
			"temperature":      0.3,
			"responseMimeType": "application/json",
		},
		"tools": []map[string]any{{"googleSearch": map[string]any{}}},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("marshal request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logging.Debug("gemini fetch starting", "topic", topic, "page", page, "filters", filters.Signature())

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		logging.Error("gemini API error", "status", resp.StatusCode, "body", string(respBody))
		return nil, adapterErr(g.Name(), fmt.Errorf("API error (status %d)", resp.StatusCode))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("parse response envelope: %w", err))
	}

	text := ""
	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		text = result.Candidates[0].Content.Parts[0].Text
	}

	raws, err := decodeArticleJSON(text)
	if err != nil {
		return nil, adapterErr(g.Name(), err)
	}

	return normalizeArticles(raws, topic, page), nil
}

// decodeArticleJSON parses the model's free-text payload into raw articles.
// Markdown fences are stripped first; if the payload still fails to parse,
// the outermost bracket pair is sliced out and retried before giving up.
func decodeArticleJSON(text string) ([]rawArticle, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = "[]"
	}

	var raws []rawArticle
	if err := json.Unmarshal([]byte(cleaned), &raws); err == nil {
		return raws, nil
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("unparseable article payload")
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raws); err != nil {
		return nil, fmt.Errorf("unparseable article payload: %w", err)
	}
	return raws, nil
}

// normalizeArticles hydrates model output into immutable articles: defaults
// for missing fields, ingestion-time IDs, and images drawn from the topic
// pool (the generator never picks images).
func normalizeArticles(raws []rawArticle, topic news.Topic, page int) []news.Article {
	if len(raws) == 0 {
		return []news.Article{}
	}

	primaries := news.TopicImages(topic, len(raws))
	items := make([]news.Article, 0, len(raws))
	for i, raw := range raws {
		title := raw.Title
		if title == "" {
			title = "Untitled News"
		}
		src := raw.Source
		if src == "" {
			src = "Unknown Source"
		}
		publishedAt := raw.PublishedAt
		if publishedAt == "" {
			publishedAt = time.Now().Format(time.RFC3339)
		}
		summary := raw.Summary
		if summary == "" {
			summary = "No summary available."
		}
		whyItMatters := raw.WhyItMatters
		if whyItMatters == "" {
			whyItMatters = "Impact analysis unavailable."
		}
		content := raw.Content
		if content == "" {
			content = summary
		}

		main := primaries[i]
		extra := news.TopicImages(topic, 2)
		items = append(items, news.Article{
			Title:        title,
			Source:       src,
			URL:          "https://google.com/search?q=" + url.QueryEscape(title),
			PublishedAt:  publishedAt,
			Topic:        topic,
			Summary:      summary,
			Content:      content,
			KeyTakeaways: raw.KeyTakeaways,
			WhyItMatters: whyItMatters,
			ImageURL:     main,
			Images:       append([]string{main}, extra...),
		})
	}
	AssignIDs(items, page)
	return items
}
