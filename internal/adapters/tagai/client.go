// Package tagai calls an external text model (Gemini) to suggest tags for
// an event. The call is best effort: callers degrade to no suggestions on
// any failure.
package tagai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"invitepage/internal/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiSuggester struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGeminiSuggester returns a TagSuggester backed by the Gemini
// generateContent endpoint. baseURL may be empty to use the public API.
func NewGeminiSuggester(client *http.Client, baseURL, apiKey, model string) domain.TagSuggester {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &geminiSuggester{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *geminiSuggester) Suggest(ctx context.Context, in domain.TagSuggestionInput) ([]string, error) {
	prompt := fmt.Sprintf(`Suggest short tags to categorize this event. Reply with one comma-separated line of at least 5 tags and nothing else.

Event Name: %s
Event Description: %s
Event Date: %s
Event Location: %s`, in.Name, in.Description, in.Date, in.Location)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status: %d", resp.StatusCode)
	}

	var data generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return []string{}, nil
	}
	return parseTags(data.Candidates[0].Content.Parts[0].Text), nil
}

// parseTags splits a model reply into clean tag strings. Models are chatty:
// tolerate newlines, list bullets, and stray whitespace.
func parseTags(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	tags := make([]string, 0, len(fields))
	seen := make(map[string]struct{})
	for _, f := range fields {
		tag := strings.Trim(strings.TrimSpace(f), "-*# ")
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
