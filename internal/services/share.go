package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"invitepage/internal/domain"
)

// shareEmailRegex matches a simple email format (local@domain with at least one dot in domain).
var shareEmailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type shareService struct {
	eventRepo      domain.EventRepository
	shareRepo      domain.EventShareRepository
	mailer         domain.Mailer
	publicBaseURL  string
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewShareService sends the public invite link to guest addresses. Sharing
// is owner-only and requires the event to be premium with sharing enabled.
func NewShareService(eventRepo domain.EventRepository,
	shareRepo domain.EventShareRepository,
	mailer domain.Mailer,
	publicBaseURL string,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ShareService {
	return &shareService{
		eventRepo:      eventRepo,
		shareRepo:      shareRepo,
		mailer:         mailer,
		publicBaseURL:  strings.TrimSuffix(publicBaseURL, "/"),
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *shareService) Share(ctx context.Context, eventID, actorID string, emails []string) ([]*domain.EventShare, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(emails) == 0 {
		return nil, fmt.Errorf("%w: at least one email is required", domain.ErrInvalidInput)
	}
	for _, email := range emails {
		if !shareEmailRegex.MatchString(strings.TrimSpace(email)) {
			return nil, fmt.Errorf("%w: invalid email %q", domain.ErrInvalidInput, email)
		}
	}

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
	if !event.Premium || !event.SharingEnabled {
		return nil, fmt.Errorf("%w: sharing requires a premium event with sharing enabled", domain.ErrForbidden)
	}

	inviteURL := fmt.Sprintf("%s/e/%s", s.publicBaseURL, event.ID)
	subject := fmt.Sprintf("You're invited: %s", event.Name)
	htmlBody := fmt.Sprintf(
		"<p>You have been invited to <strong>%s</strong> on %s.</p><p><a href=%q>View the invitation and respond</a></p>",
		html.EscapeString(event.Name), html.EscapeString(event.Date), inviteURL,
	)
	textBody := fmt.Sprintf("You have been invited to %s on %s. View the invitation and respond: %s",
		event.Name, event.Date, inviteURL)

	shares := make([]*domain.EventShare, 0, len(emails))
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if err := s.mailer.Send(email, subject, htmlBody, textBody); err != nil {
			// Partial sends are fine; report what went out.
			s.logger.WarnContext(ctx, "share email failed", "event_id", eventID, "to", email, "err", err)
			continue
		}
		share := &domain.EventShare{EventID: eventID, Email: email}
		if err := s.shareRepo.Create(ctx, share); err != nil {
			return nil, fmt.Errorf("record share: %w", err)
		}
		shares = append(shares, share)
	}
	return shares, nil
}

func (s *shareService) ListShares(ctx context.Context, eventID, actorID string) ([]*domain.EventShare, error) {
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
	shares, err := s.shareRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	return shares, nil
}
