package domain

import "context"

// CheckoutSession is the redirect target for a premium upgrade purchase.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutProvider is the external payment collaborator. The only contract
// back into the core is the idempotent MarkPremium call made when a webhook
// for a completed purchase arrives.
type CheckoutProvider interface {
	// CreateSession starts a checkout for upgrading the given event and
	// returns the URL to redirect the owner to.
	CreateSession(ctx context.Context, eventID, successURL, cancelURL string) (*CheckoutSession, error)
	// VerifyWebhook checks the payload signature and, for a completed
	// purchase, returns the event id carried in the session metadata.
	// Events of other types return an empty id and no error.
	VerifyWebhook(payload []byte, signature string) (eventID string, err error)
}

// UpgradeService wires the checkout redirect flow to the core.
type UpgradeService interface {
	StartUpgrade(ctx context.Context, eventID, actorID string) (*CheckoutSession, error)
	// CompletePurchase marks the event premium. Calling it twice for the
	// same event is a no-op, not an error.
	CompletePurchase(ctx context.Context, eventID string) error
}
