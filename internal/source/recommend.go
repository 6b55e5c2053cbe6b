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

	"github.com/nowflowai/nowflow/internal/news"
)

// Recommend asks the model to pick up to three articles from candidates
// that best match the reading history. Returns article IDs. Candidates
// already present in history are excluded before the call.
func (g *GeminiProvider) Recommend(ctx context.Context, history, candidates []news.Article) ([]string, error) {
	if !g.Available() {
		return nil, adapterErr(g.Name(), fmt.Errorf("not configured"))
	}
	if len(history) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(history))
	for _, a := range history {
		seen[a.ID] = struct{}{}
	}
	var pool []news.Article
	for _, a := range candidates {
		if _, ok := seen[a.ID]; !ok {
			pool = append(pool, a)
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	var historyText strings.Builder
	limit := len(history)
	if limit > 10 {
		limit = 10
	}
	for _, a := range history[:limit] {
		fmt.Fprintf(&historyText, "- %s (%s)\n", a.Title, a.Topic)
	}
	var candidateText strings.Builder
	for _, a := range pool {
		fmt.Fprintf(&candidateText, "ID: %s | Title: %s | Category: %s | Summary: %s\n", a.ID, a.Title, a.Topic, a.Summary)
	}

	prompt := fmt.Sprintf(`You are an intelligent news recommendation engine.

USER HISTORY (Articles read or saved):
%s
AVAILABLE ARTICLES (Candidates):
%s
TASK:
Analyze the user's history to understand their interests.
Select the top 3 articles from the 'AVAILABLE ARTICLES' list that are most relevant to this user.

RETURN:
A JSON object with a property "recommendedIds" containing an array of strings.`, historyText.String(), candidateText.String())

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, adapterErr(g.Name(), err)
		}
	}

	body := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("marshal request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, adapterErr(g.Name(), fmt.Errorf("API error (status %d)", resp.StatusCode))
	}

	var envelope struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("parse response envelope: %w", err))
	}
	text := ""
	if len(envelope.Candidates) > 0 && len(envelope.Candidates[0].Content.Parts) > 0 {
		text = envelope.Candidates[0].Content.Parts[0].Text
	}

	var out struct {
		RecommendedIDs []string `json:"recommendedIds"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &out); err != nil {
		return nil, adapterErr(g.Name(), fmt.Errorf("unparseable recommendation payload: %w", err))
	}
	return out.RecommendedIDs, nil
}
