package controllers

import (
	"io"
	"log/slog"
	"net/http"

	"invitepage/internal/delivery/http/helpers"
	"invitepage/internal/delivery/http/middleware"
	"invitepage/internal/domain"
)

// webhookBodyLimit caps how much of a webhook payload is read.
const webhookBodyLimit = 1 << 20

type BillingController struct {
	Logger   *slog.Logger
	Service  domain.UpgradeService
	Provider domain.CheckoutProvider
}

func NewBillingController(logger *slog.Logger, svc domain.UpgradeService, provider domain.CheckoutProvider) *BillingController {
	return &BillingController{
		Logger:   logger,
		Service:  svc,
		Provider: provider,
	}
}

// StartUpgrade godoc
// @Summary Start a premium upgrade checkout
// @Description Returns the checkout URL to redirect the owner to. The purchase completes via webhook.
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the checkout session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (already premium)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events/{eventID}/upgrade [post]
func (c *BillingController) StartUpgrade(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	session, err := c.Service.StartUpgrade(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// Webhook godoc
// @Summary Payment provider webhook
// @Description Signature-verified. A completed purchase marks the event premium; redelivery is a no-op.
// @Tags billing
// @Accept json
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (bad signature)"
// @Router /webhooks/stripe [post]
func (c *BillingController) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read payload")
		return
	}
	eventID, err := c.Provider.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		c.Logger.WarnContext(r.Context(), "webhook rejected", "err", err)
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid webhook")
		return
	}
	if eventID == "" {
		// Not a completed purchase; acknowledged but not processed.
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}
	if err := c.Service.CompletePurchase(r.Context(), eventID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "upgraded"})
}
