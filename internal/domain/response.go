package domain

import (
	"fmt"
	"time"
)

// Category is a guest's attendance answer. Exactly one per response.
type Category string

// Response categories. The wire names match what clients submit.
const (
	CategoryGoing    Category = "going"
	CategoryMaybe    Category = "maybe"
	CategoryNotGoing Category = "not_going"
)

// Categories lists all valid categories in display order.
var Categories = []Category{CategoryGoing, CategoryMaybe, CategoryNotGoing}

// ParseCategory validates a submitted category string. Unknown values are
// rejected with ErrInvalidInput before any store call is attempted.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryGoing, CategoryMaybe, CategoryNotGoing:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: unknown response category %q", ErrInvalidInput, s)
}

// ResponseDetails carries the optional contact fields a guest supplied.
// Which of them are stored depends on the event's CollectFields.
type ResponseDetails struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Filter returns a copy with every field the event did not ask for blanked
// out, so unrequested contact details are never stored.
func (d ResponseDetails) Filter(c CollectFields) ResponseDetails {
	out := ResponseDetails{}
	if c.Name {
		out.Name = d.Name
	}
	if c.Email {
		out.Email = d.Email
	}
	if c.Phone {
		out.Phone = d.Phone
	}
	return out
}

// Response is one guest's reply to an event. Responses are append-only:
// they are never mutated or removed while the event exists, and they are
// deleted only together with the event.
// swagger:model Response
type Response struct {
	ID          string          `json:"id"`
	EventID     string          `json:"event_id"`
	Category    Category        `json:"category"`
	Details     ResponseDetails `json:"details"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// NewResponse builds a response with a freshly minted id and submission
// timestamp, with details already filtered per collect.
func NewResponse(id, eventID string, category Category, details ResponseDetails, collect CollectFields, submittedAt time.Time) *Response {
	return &Response{
		ID:          id,
		EventID:     eventID,
		Category:    category,
		Details:     details.Filter(collect),
		SubmittedAt: submittedAt,
	}
}
