// Package payment implements the premium upgrade checkout collaborator on
// Stripe Checkout. The webhook hands back only the event id of a completed
// purchase; everything else about the payment stays outside the core.
package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"invitepage/internal/domain"
)

type stripeProvider struct {
	priceID       string
	webhookSecret string
}

// NewStripeProvider configures the global Stripe client key and returns a
// CheckoutProvider selling the given price.
func NewStripeProvider(secretKey, webhookSecret, priceID string) domain.CheckoutProvider {
	stripe.Key = secretKey
	return &stripeProvider{
		priceID:       priceID,
		webhookSecret: webhookSecret,
	}
}

func (p *stripeProvider) CreateSession(ctx context.Context, eventID, successURL, cancelURL string) (*domain.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx
	// The event id rides in the session metadata so the webhook can find
	// its way back to the event being upgraded.
	params.AddMetadata("event_id", eventID)

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (p *stripeProvider) VerifyWebhook(payload []byte, signature string) (string, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return "", fmt.Errorf("failed to verify webhook signature: %w", err)
	}
	if event.Type != "checkout.session.completed" {
		return "", nil
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return "", fmt.Errorf("failed to decode checkout session: %w", err)
	}
	eventID := cs.Metadata["event_id"]
	if eventID == "" {
		return "", fmt.Errorf("checkout session %s has no event_id metadata", cs.ID)
	}
	return eventID, nil
}
