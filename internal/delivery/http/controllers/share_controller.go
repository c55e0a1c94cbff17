package controllers

import (
	"log/slog"
	"net/http"

	"invitepage/internal/delivery/http/helpers"
	"invitepage/internal/delivery/http/middleware"
	"invitepage/internal/domain"
)

// ShareRequest is the request body for POST /events/{eventID}/share.
type ShareRequest struct {
	Emails []string `json:"emails"`
}

// Validate implements Validator.
func (s ShareRequest) Validate() []string {
	var errs []string
	if len(s.Emails) == 0 {
		errs = append(errs, "at least one email is required")
	}
	for _, email := range s.Emails {
		if !emailRegex.MatchString(email) {
			errs = append(errs, "invalid email: "+email)
		}
	}
	return errs
}

type ShareController struct {
	Logger  *slog.Logger
	Service domain.ShareService
}

func NewShareController(logger *slog.Logger, svc domain.ShareService) *ShareController {
	return &ShareController{
		Logger:  logger,
		Service: svc,
	}
}

// Share godoc
// @Summary Email the public invite link to guests
// @Description Owner-only; requires a premium event with sharing enabled.
// @Tags sharing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param request body ShareRequest true "Guest email addresses"
// @Success 200 {object} helpers.APIResponse "data contains the recorded shares"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/share [post]
func (c *ShareController) Share(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req ShareRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	shares, err := c.Service.Share(r.Context(), eventID, userID, req.Emails)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, shares)
}

// ListShares godoc
// @Summary List where the invite link was sent
// @Tags sharing
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the share log"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /events/{eventID}/shares [get]
func (c *ShareController) ListShares(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	shares, err := c.Service.ListShares(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, shares)
}
