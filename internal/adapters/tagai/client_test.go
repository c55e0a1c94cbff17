package tagai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitepage/internal/domain"
)

func TestGeminiSuggester_Suggest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Garden Party")

		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{
			{Content: content{Parts: []part{{Text: "garden, party, summer,  Outdoor \n- brunch"}}}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	s := NewGeminiSuggester(srv.Client(), srv.URL, "test-key", "gemini-2.0-flash")
	tags, err := s.Suggest(context.Background(), domain.TagSuggestionInput{
		Name:        "Garden Party",
		Description: "An afternoon in the garden",
		Date:        "2026-06-01",
		Location:    "Lisbon",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"garden", "party", "summer", "Outdoor", "brunch"}, tags)
}

func TestGeminiSuggester_SuggestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewGeminiSuggester(srv.Client(), srv.URL, "test-key", "gemini-2.0-flash")
	_, err := s.Suggest(context.Background(), domain.TagSuggestionInput{Name: "x"})
	require.Error(t, err)
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma separated", "a, b, c", []string{"a", "b", "c"}},
		{"bulleted lines", "- rock\n- jazz\n- blues", []string{"rock", "jazz", "blues"}},
		{"dedupes case-insensitively", "Music, music, MUSIC, live", []string{"Music", "live"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTags(tt.in))
		})
	}
}
