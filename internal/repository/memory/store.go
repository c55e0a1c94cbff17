// Package memory holds an in-memory EventRepository with the same atomicity
// contract as the Postgres implementation: view and tally increments happen
// under the store lock together with the collection append, never as a
// read-modify-write visible to other callers.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"invitepage/internal/domain"
)

type eventRecord struct {
	event     domain.Event
	responses []domain.Response
}

// EventStore is a mutex-protected EventRepository used by tests and local
// development without a database.
type EventStore struct {
	mu     sync.Mutex
	events map[string]*eventRecord
}

// NewEventStore returns an empty store.
func NewEventStore() *EventStore {
	return &EventStore{
		events: map[string]*eventRecord{},
	}
}

var _ domain.EventRepository = (*EventStore)(nil)

func cloneEvent(e domain.Event) *domain.Event {
	out := e
	out.Images = append([]string{}, e.Images...)
	out.Tags = append([]string{}, e.Tags...)
	if e.Styles != nil {
		out.Styles = append(json.RawMessage{}, e.Styles...)
	}
	return &out
}

func (s *EventStore) Create(ctx context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	s.events[e.ID] = &eventRecord{event: *cloneEvent(*e)}
	return nil
}

func (s *EventStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(rec.event), nil
}

func (s *EventStore) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Event, 0)
	for _, rec := range s.events {
		if rec.event.OwnerID == ownerID {
			out = append(out, cloneEvent(rec.event))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *EventStore) Update(ctx context.Context, id string, patch domain.EventUpdate) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e := &rec.event
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Time != nil {
		e.Time = *patch.Time
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.MapLink != nil {
		e.MapLink = *patch.MapLink
	}
	if patch.Images != nil {
		e.Images = append([]string{}, (*patch.Images)...)
	}
	if patch.Tags != nil {
		e.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.Styles != nil {
		e.Styles = append(json.RawMessage{}, (*patch.Styles)...)
	}
	if patch.CollectName != nil {
		e.Collect.Name = *patch.CollectName
	}
	if patch.CollectEmail != nil {
		e.Collect.Email = *patch.CollectEmail
	}
	if patch.CollectPhone != nil {
		e.Collect.Phone = *patch.CollectPhone
	}
	if patch.SharingEnabled != nil {
		e.SharingEnabled = *patch.SharingEnabled
	}
	if patch.Premium != nil {
		e.Premium = *patch.Premium
	}
	return cloneEvent(*e), nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// The responses slice lives inside the record, so event and collection
	// go away together. Missing ids are fine: delete is idempotent.
	delete(s.events, id)
	return nil
}

func (s *EventStore) RecordView(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.event.Views++
	return nil
}

func (s *EventStore) AppendResponse(ctx context.Context, eventID string, resp *domain.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	// Append and increment under the same lock acquisition: one atomic
	// write, the collection and the tally cannot drift.
	rec.responses = append(rec.responses, *resp)
	switch resp.Category {
	case domain.CategoryGoing:
		rec.event.Tally.Going++
	case domain.CategoryMaybe:
		rec.event.Tally.Maybe++
	case domain.CategoryNotGoing:
		rec.event.Tally.NotGoing++
	}
	return nil
}

func (s *EventStore) ListResponses(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Response, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[eventID]
	if !ok {
		return nil, 0, domain.ErrNotFound
	}
	total := len(rec.responses)
	sorted := make([]domain.Response, total)
	copy(sorted, rec.responses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.After(sorted[j].SubmittedAt)
	})
	start := p.Offset()
	if start > total {
		start = total
	}
	end := total
	if start+p.Limit() < total {
		end = start + p.Limit()
	}
	out := make([]*domain.Response, 0, end-start)
	for i := start; i < end; i++ {
		resp := sorted[i]
		out = append(out, &resp)
	}
	return out, total, nil
}

func (s *EventStore) SetPremium(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.event.Premium = true
	return nil
}
