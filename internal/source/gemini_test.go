package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/nowflowai/nowflow/internal/news"
)

func TestDecodeArticleJSON(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{
			name: "plain array",
			text: `[{"title":"A"},{"title":"B"}]`,
			want: 2,
		},
		{
			name: "markdown fenced",
			text: "```json\n[{\"title\":\"A\"}]\n```",
			want: 1,
		},
		{
			name: "chatty preamble around array",
			text: `Here are the stories you asked for: [{"title":"A"}] Hope that helps!`,
			want: 1,
		},
		{
			name: "empty text means no stories",
			text: "",
			want: 0,
		},
		{
			name:    "no array at all",
			text:    "I could not find any news today.",
			wantErr: true,
		},
		{
			name:    "broken json inside brackets",
			text:    `[{"title": }]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeArticleJSON(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeArticleJSON: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d articles, want %d", len(got), tt.want)
			}
		})
	}
}

func TestNormalizeArticlesDefaults(t *testing.T) {
	raws := []rawArticle{{}} // everything missing
	items := normalizeArticles(raws, news.TopicQuantum, 1)
	if len(items) != 1 {
		t.Fatalf("items = %d", len(items))
	}

	a := items[0]
	if a.Title != "Untitled News" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Source != "Unknown Source" {
		t.Errorf("Source = %q", a.Source)
	}
	if a.Summary != "No summary available." {
		t.Errorf("Summary = %q", a.Summary)
	}
	if a.WhyItMatters != "Impact analysis unavailable." {
		t.Errorf("WhyItMatters = %q", a.WhyItMatters)
	}
	if a.Content != a.Summary {
		t.Errorf("Content = %q, want summary fallback", a.Content)
	}
	if a.PublishedAt == "" {
		t.Error("PublishedAt empty")
	}
	if !strings.HasPrefix(a.URL, "https://google.com/search?q=") {
		t.Errorf("URL = %q", a.URL)
	}
	if a.Topic != news.TopicQuantum {
		t.Errorf("Topic = %v", a.Topic)
	}
	if a.ImageURL == "" || len(a.Images) == 0 || a.Images[0] != a.ImageURL {
		t.Errorf("image hydration wrong: %q %v", a.ImageURL, a.Images)
	}
	if a.ID == "" {
		t.Error("ID not assigned")
	}
}

func TestAssignIDsFormat(t *testing.T) {
	items := []news.Article{{Title: "a"}, {Title: "b"}}
	AssignIDs(items, 3)

	pattern := regexp.MustCompile(`^live-\d+-3-\d+$`)
	for i, a := range items {
		if !pattern.MatchString(a.ID) {
			t.Errorf("ID[%d] = %q", i, a.ID)
		}
	}
	if items[0].ID == items[1].ID {
		t.Error("IDs within one batch collide")
	}
}

func geminiEnvelope(text string) string {
	env := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	b, _ := json.Marshal(env)
	return string(b)
}

func TestGeminiFetchContent(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(geminiEnvelope(`[{"title":"Quantum Leap","source":"Lab Blog","summary":"s"}]`)))
	}))
	defer srv.Close()

	g := NewGeminiProvider("test-key", "gemini-2.5-flash", 6, WithBaseURL(srv.URL))
	items, err := g.FetchContent(context.Background(), news.TopicQuantum, 1, news.DefaultFilters())
	if err != nil {
		t.Fatalf("FetchContent: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Quantum Leap" {
		t.Fatalf("items = %+v", items)
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if _, ok := gotBody["tools"]; !ok {
		t.Error("request missing search tool")
	}
}

func TestGeminiFetchContentEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiEnvelope("[]")))
	}))
	defer srv.Close()

	g := NewGeminiProvider("test-key", "", 6, WithBaseURL(srv.URL))
	items, err := g.FetchContent(context.Background(), news.TopicAll, 2, news.DefaultFilters())
	if err != nil {
		t.Fatalf("FetchContent: %v", err)
	}
	// Empty is "nothing found", not an error.
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty slice", items)
	}
}

func TestGeminiFetchContentAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGeminiProvider("test-key", "", 6, WithBaseURL(srv.URL))
	_, err := g.FetchContent(context.Background(), news.TopicAI, 1, news.DefaultFilters())
	if err == nil {
		t.Fatal("expected error")
	}
	var aerr *AdapterError
	if !errors.As(err, &aerr) {
		t.Fatalf("error type = %T", err)
	}
	if aerr.Provider != "gemini" {
		t.Errorf("provider = %q", aerr.Provider)
	}
}

func TestGeminiNotConfigured(t *testing.T) {
	g := NewGeminiProvider("", "", 6)
	if g.Available() {
		t.Error("Available with no key")
	}
	if _, err := g.FetchContent(context.Background(), news.TopicAI, 1, news.DefaultFilters()); err == nil {
		t.Error("expected error without key")
	}
}

func TestRecommend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiEnvelope(`{"recommendedIds":["c2","c3"]}`)))
	}))
	defer srv.Close()

	g := NewGeminiProvider("test-key", "", 6, WithBaseURL(srv.URL))
	history := []news.Article{{ID: "h1", Title: "Read one", Topic: news.TopicAI}}
	candidates := []news.Article{
		{ID: "h1", Title: "Read one"},
		{ID: "c2", Title: "Fresh"},
		{ID: "c3", Title: "Fresher"},
	}
	ids, err := g.Recommend(context.Background(), history, candidates)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(ids) != 2 || ids[0] != "c2" {
		t.Errorf("ids = %v", ids)
	}
}

func TestRecommendWithNoHistory(t *testing.T) {
	g := NewGeminiProvider("test-key", "", 6)
	ids, err := g.Recommend(context.Background(), nil, []news.Article{{ID: "c"}})
	if err != nil || ids != nil {
		t.Errorf("no-history recommend = %v, %v", ids, err)
	}
}

func TestBuildNewsPrompt(t *testing.T) {
	filters := news.Filters{DateRange: news.DateToday, SortBy: news.SortNewest, Source: "TechCrunch"}
	prompt := buildNewsPrompt(news.TopicRobotics, 1, filters, 6)

	for _, want := range []string{
		`"Robotics"`,
		"last 24 hours",
		"TechCrunch",
		"most recent events",
		"googleSearch",
		"keyTakeaways",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("page-1 prompt missing %q", want)
		}
	}

	later := buildNewsPrompt(news.TopicAll, 3, news.DefaultFilters(), 6)
	if !strings.Contains(later, "page 3 of an infinite feed") {
		t.Error("later-page prompt missing pagination block")
	}
	if !strings.Contains(later, "*distinct*") {
		t.Error("later-page prompt does not ask for distinct stories")
	}
	if strings.Contains(later, "last 24 hours") {
		t.Error("default filters leaked a date restriction")
	}
}
