package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Event represents one invitation page: profile fields the owner edits,
// response configuration, and the engagement aggregate (view counter plus
// per-category tally) that the repository keeps consistent with the
// append-only response collection.
// swagger:model Event
type Event struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	Name        string   `json:"name"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Time        string   `json:"time"` // HH:mm
	Location    string   `json:"location"`
	Description string   `json:"description"`
	MapLink     string   `json:"map_link,omitempty"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`

	// Styles is an opaque style bag chosen by the owner. It is stored and
	// returned verbatim; the server never interprets it.
	Styles json.RawMessage `json:"styles,omitempty"`

	Collect        CollectFields `json:"collect_fields"`
	SharingEnabled bool          `json:"sharing_enabled"`
	Premium        bool          `json:"premium"`

	Views int64 `json:"views"`
	Tally Tally `json:"tally"`

	CreatedAt time.Time `json:"created_at"`
}

// CollectFields configures which contact fields a responder is asked for.
// swagger:model CollectFields
type CollectFields struct {
	Name  bool `json:"name"`
	Email bool `json:"email"`
	Phone bool `json:"phone"`
}

// Tally holds one counter per response category. It is derived from the
// response collection but stored alongside it; both are written in a single
// atomic store operation so they cannot drift.
// swagger:model Tally
type Tally struct {
	Going    int64 `json:"going"`
	Maybe    int64 `json:"maybe"`
	NotGoing int64 `json:"not_going"`
}

// Total returns the sum of all category counters.
func (t Tally) Total() int64 {
	return t.Going + t.Maybe + t.NotGoing
}

// Count returns the counter for the given category.
func (t Tally) Count(c Category) int64 {
	switch c {
	case CategoryGoing:
		return t.Going
	case CategoryMaybe:
		return t.Maybe
	case CategoryNotGoing:
		return t.NotGoing
	}
	return 0
}

// NewEvent returns an Event with the given owner and an empty aggregate.
// ID and CreatedAt are set by the repository on create.
func NewEvent(ownerID string) *Event {
	return &Event{
		OwnerID: ownerID,
		Images:  []string{},
		Tags:    []string{},
	}
}

// EventUpdate is a field-level patch for an event's profile and
// configuration. Nil fields are left untouched. Repository-managed fields
// (id, owner, creation timestamp, views, tally, responses) have no
// counterpart here, so they cannot be set through an update.
type EventUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Time        *string          `json:"time,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Description *string          `json:"description,omitempty"`
	MapLink     *string          `json:"map_link,omitempty"`
	Images      *[]string        `json:"images,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
	Styles      *json.RawMessage `json:"styles,omitempty"`

	CollectName    *bool `json:"collect_name,omitempty"`
	CollectEmail   *bool `json:"collect_email,omitempty"`
	CollectPhone   *bool `json:"collect_phone,omitempty"`
	SharingEnabled *bool `json:"sharing_enabled,omitempty"`
	Premium        *bool `json:"premium,omitempty"`
}

// Empty reports whether the patch sets no fields at all.
func (u EventUpdate) Empty() bool {
	return u.Name == nil && u.Date == nil && u.Time == nil && u.Location == nil &&
		u.Description == nil && u.MapLink == nil && u.Images == nil && u.Tags == nil &&
		u.Styles == nil && u.CollectName == nil && u.CollectEmail == nil &&
		u.CollectPhone == nil && u.SharingEnabled == nil && u.Premium == nil
}

// EventRepository is the sole mediator between the application and durable
// event storage. RecordView and AppendResponse must be implemented with
// store-native atomic operations (numeric add, collection append); they never
// read current state first, so concurrent submitters cannot lose writes.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, id string, patch EventUpdate) (*Event, error)
	// Delete removes the event and its whole response collection as one
	// unit. Deleting an id that does not exist is not an error.
	Delete(ctx context.Context, id string) error

	// RecordView atomically increments the view counter by exactly one.
	RecordView(ctx context.Context, id string) error
	// AppendResponse appends resp to the event's response collection and
	// increments the tally counter for resp.Category, as a single atomic
	// write.
	AppendResponse(ctx context.Context, eventID string, resp *Response) error

	ListResponses(ctx context.Context, eventID string, p PaginationParams) ([]*Response, int, error)

	// SetPremium marks the event premium. Idempotent: marking an
	// already-premium event succeeds without effect.
	SetPremium(ctx context.Context, id string) error
}

// EventStats bundles the aggregate an owner sees on the stats page.
type EventStats struct {
	Views     int64       `json:"views"`
	Tally     Tally       `json:"tally"`
	Responses []*Response `json:"responses"`
	Total     int         `json:"total_responses"`
}

// EventService defines application-level event operations, including the
// ownership checks performed above the repository.
type EventService interface {
	Create(ctx context.Context, ownerID string, event *Event) (*Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	ListOwned(ctx context.Context, ownerID string) ([]*Event, error)
	Update(ctx context.Context, id, actorID string, patch EventUpdate) (*Event, error)
	Delete(ctx context.Context, id, actorID string) error

	RecordView(ctx context.Context, id string) error
	RecordResponse(ctx context.Context, id string, category Category, details ResponseDetails) error

	Stats(ctx context.Context, id, actorID string, p PaginationParams) (*EventStats, error)
	MarkPremium(ctx context.Context, id string) error

	// SuggestTags asks the external model for tags. Best effort: any
	// failure degrades to an empty list and is never surfaced.
	SuggestTags(ctx context.Context, in TagSuggestionInput) []string
}
