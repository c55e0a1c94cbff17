package domain

import "context"

// TagSuggestionInput carries the event details the suggestion model sees.
type TagSuggestionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// TagSuggester asks an external text model for tags describing an event.
// Best effort: callers treat any failure as "no suggestions" and must never
// block event creation on it.
type TagSuggester interface {
	Suggest(ctx context.Context, in TagSuggestionInput) ([]string, error)
}
