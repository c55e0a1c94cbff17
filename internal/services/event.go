package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"invitepage/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	suggester      domain.TagSuggester
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService wires the event repository and the best-effort tag
// suggestion collaborator. suggester may be nil; SuggestTags then always
// returns no suggestions.
func NewEventService(eventRepo domain.EventRepository,
	suggester domain.TagSuggester,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		suggester:      suggester,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, ownerID string, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	event.OwnerID = ownerID
	// The aggregate always starts empty; whatever the caller put there is
	// discarded. These fields are repository-managed from here on.
	event.Views = 0
	event.Tally = domain.Tally{}
	event.Premium = false
	if event.Images == nil {
		event.Images = []string{}
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListOwned(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, id, actorID string, patch domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}
	updated, err := s.eventRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// RecordView goes straight to the repository's atomic increment. Guests have
// no cached view; nothing is read first.
func (s *eventService) RecordView(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.RecordView(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// RecordResponse validates the category before any store call, filters the
// supplied details down to what the event's configuration asks for, and
// hands the repository one atomic append+increment. A transient store fault
// is retried once: for a guest, a lost response is a worse outcome than an
// accidental duplicate.
func (s *eventService) RecordResponse(ctx context.Context, id string, category domain.Category, details domain.ResponseDetails) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := domain.ParseCategory(string(category)); err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	resp := domain.NewResponse(uuid.NewString(), id, category, details, event.Collect, time.Now())
	err = s.eventRepo.AppendResponse(ctx, id, resp)
	if err != nil && errors.Is(err, domain.ErrUnavailable) {
		s.logger.WarnContext(ctx, "response append failed, retrying once", "event_id", id, "err", err)
		err = s.eventRepo.AppendResponse(ctx, id, resp)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("append response: %w", err)
	}
	return nil
}

func (s *eventService) Stats(ctx context.Context, id, actorID string, p domain.PaginationParams) (*domain.EventStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}
	responses, total, err := s.eventRepo.ListResponses(ctx, id, p)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return &domain.EventStats{
		Views:     event.Views,
		Tally:     event.Tally,
		Responses: responses,
		Total:     total,
	}, nil
}

// SuggestTags is fire-and-forget from the caller's point of view: a slow or
// failing model degrades to no suggestions and never blocks event creation.
func (s *eventService) SuggestTags(ctx context.Context, in domain.TagSuggestionInput) []string {
	if s.suggester == nil {
		return []string{}
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tags, err := s.suggester.Suggest(ctx, in)
	if err != nil {
		s.logger.WarnContext(ctx, "tag suggestion failed", "err", err)
		return []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// MarkPremium is idempotent: marking an already-premium event is a no-op
// success, so the payment collaborator may safely deliver its webhook twice.
func (s *eventService) MarkPremium(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.SetPremium(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set premium: %w", err)
	}
	return nil
}
