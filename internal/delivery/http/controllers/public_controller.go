package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"invitepage/internal/delivery/http/helpers"
	"invitepage/internal/domain"
)

// PublicEvent is the guest-facing projection of an event: profile fields and
// counts, without the owner id or the response collection.
// swagger:model PublicEvent
type PublicEvent struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	MapLink     string          `json:"map_link,omitempty"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags"`
	Styles      json.RawMessage `json:"styles,omitempty"`

	Collect domain.CollectFields `json:"collect_fields"`
	// ShareVisible is the public sharing affordance: only premium events
	// with sharing enabled expose the share link to non-owners.
	ShareVisible bool `json:"share_visible"`

	Views int64        `json:"views"`
	Tally domain.Tally `json:"tally"`
}

func toPublicEvent(e *domain.Event) PublicEvent {
	return PublicEvent{
		ID:           e.ID,
		Name:         e.Name,
		Date:         e.Date,
		Time:         e.Time,
		Location:     e.Location,
		Description:  e.Description,
		MapLink:      e.MapLink,
		Images:       e.Images,
		Tags:         e.Tags,
		Styles:       e.Styles,
		Collect:      e.Collect,
		ShareVisible: e.Premium && e.SharingEnabled,
		Views:        e.Views,
		Tally:        e.Tally,
	}
}

// SubmitResponseRequest is the request body for a guest's attendance reply.
type SubmitResponseRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Validate implements Validator. The category is checked against the fixed
// enumeration here, before anything reaches the store.
func (s SubmitResponseRequest) Validate() []string {
	var errs []string
	if s.Category == "" {
		errs = append(errs, "category is required")
	} else if _, err := domain.ParseCategory(s.Category); err != nil {
		errs = append(errs, "category must be one of: going, maybe, not_going")
	}
	return errs
}

type PublicController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewPublicController(logger *slog.Logger, svc domain.EventService) *PublicController {
	return &PublicController{
		Logger:  logger,
		Service: svc,
	}
}

// GetEvent godoc
// @Summary Public invitation page data
// @Description Anyone with the link may read the public profile. Counts are always fetched fresh by id.
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the public event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/events/{eventID} [get]
func (c *PublicController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Get(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toPublicEvent(event))
}

// RecordView godoc
// @Summary Count one view of the invitation page
// @Description Atomic increment; N concurrent calls always land as +N.
// @Tags public
// @Param eventID path string true "Event ID"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/events/{eventID}/view [post]
func (c *PublicController) RecordView(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	if err := c.Service.RecordView(r.Context(), eventID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitResponse godoc
// @Summary Submit an attendance response
// @Description Appends the response and bumps the matching tally in one atomic write. Contact fields the event did not ask for are dropped.
// @Tags public
// @Accept json
// @Param eventID path string true "Event ID"
// @Param response body SubmitResponseRequest true "Category and optional contact details"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /public/events/{eventID}/responses [post]
func (c *PublicController) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	var req SubmitResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	details := domain.ResponseDetails{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := c.Service.RecordResponse(r.Context(), eventID, domain.Category(req.Category), details); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
