package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"invitepage/internal/domain"
)

type upgradeService struct {
	eventService   domain.EventService
	eventRepo      domain.EventRepository
	provider       domain.CheckoutProvider
	publicBaseURL  string
	contextTimeout time.Duration
}

// NewUpgradeService drives the premium upgrade checkout redirect. The only
// call back into the core is the idempotent mark-premium on a completed
// purchase.
func NewUpgradeService(eventService domain.EventService,
	eventRepo domain.EventRepository,
	provider domain.CheckoutProvider,
	publicBaseURL string,
	timeout time.Duration,
) domain.UpgradeService {
	return &upgradeService{
		eventService:   eventService,
		eventRepo:      eventRepo,
		provider:       provider,
		publicBaseURL:  strings.TrimSuffix(publicBaseURL, "/"),
		contextTimeout: timeout,
	}
}

func (s *upgradeService) StartUpgrade(ctx context.Context, eventID, actorID string) (*domain.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}
	if event.Premium {
		return nil, fmt.Errorf("%w: event is already premium", domain.ErrInvalidInput)
	}

	successURL := fmt.Sprintf("%s/e/%s?upgraded=1", s.publicBaseURL, eventID)
	cancelURL := fmt.Sprintf("%s/e/%s", s.publicBaseURL, eventID)
	session, err := s.provider.CreateSession(ctx, eventID, successURL, cancelURL)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return session, nil
}

func (s *upgradeService) CompletePurchase(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// MarkPremium is idempotent, so webhook redelivery is harmless.
	return s.eventService.MarkPremium(ctx, eventID)
}
