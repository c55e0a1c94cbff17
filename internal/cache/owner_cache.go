// Package cache holds the local view cache: an in-memory reflection of the
// events owned by an actor, kept consistent with the repository by explicit
// refresh after owner writes. It is a display convenience, never a source of
// truth; view and response submissions bypass it entirely, and tally values
// shown on an invitation page are always re-fetched by id instead.
package cache

import (
	"context"
	"sync"

	"invitepage/internal/domain"
)

// OwnerCache caches per-owner event lists between refreshes. Staleness
// between refreshes is expected and acceptable.
type OwnerCache struct {
	repo domain.EventRepository

	mu     sync.RWMutex
	owners map[string][]*domain.Event
}

// NewOwnerCache returns an empty cache over the given repository.
func NewOwnerCache(repo domain.EventRepository) *OwnerCache {
	return &OwnerCache{
		repo:   repo,
		owners: map[string][]*domain.Event{},
	}
}

// Refresh re-queries the repository and replaces the cached list for the
// owner. The repository already orders by creation timestamp descending.
func (c *OwnerCache) Refresh(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	events, err := c.repo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.owners[ownerID] = events
	c.mu.Unlock()
	return events, nil
}

// Events returns the cached list for the owner and whether one exists.
// Callers that miss should Refresh.
func (c *OwnerCache) Events(ownerID string) ([]*domain.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	events, ok := c.owners[ownerID]
	if !ok {
		return nil, false
	}
	out := make([]*domain.Event, len(events))
	copy(out, events)
	return out, true
}

// Upsert patches one event into the owner's cached list without a full
// refresh, keeping the most-recent-first order for new entries.
func (c *OwnerCache) Upsert(event *domain.Event) {
	if event == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	events, ok := c.owners[event.OwnerID]
	if !ok {
		return
	}
	for i, e := range events {
		if e.ID == event.ID {
			events[i] = event
			return
		}
	}
	c.owners[event.OwnerID] = append([]*domain.Event{event}, events...)
}

// Remove drops one event from the owner's cached list after a delete.
func (c *OwnerCache) Remove(ownerID, eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	events, ok := c.owners[ownerID]
	if !ok {
		return
	}
	out := events[:0]
	for _, e := range events {
		if e.ID != eventID {
			out = append(out, e)
		}
	}
	c.owners[ownerID] = out
}

// Invalidate forgets the owner's cached list entirely.
func (c *OwnerCache) Invalidate(ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.owners, ownerID)
}
