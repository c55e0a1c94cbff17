package domain

import (
	"context"
	"time"
)

// EventShare records one guest email address the owner sent the public
// invite link to.
// swagger:model EventShare
type EventShare struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	Email   string    `json:"email"`
	SentAt  time.Time `json:"sent_at"`
}

// EventShareRepository defines storage operations for the share log.
type EventShareRepository interface {
	Create(ctx context.Context, share *EventShare) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventShare, error)
}

// ShareService sends the public invite link for an event to guest emails.
// Sharing is owner-only and gated on the event being premium with sharing
// enabled.
type ShareService interface {
	Share(ctx context.Context, eventID, actorID string, emails []string) ([]*EventShare, error)
	ListShares(ctx context.Context, eventID, actorID string) ([]*EventShare, error)
}
