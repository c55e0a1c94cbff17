package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"invitepage/internal/cache"
	"invitepage/internal/delivery/http/helpers"
	"invitepage/internal/delivery/http/middleware"
	"invitepage/internal/domain"
)

// CreateEventRequest is the request body for POST /events. The engagement
// aggregate (views, tally) and the premium flag are repository-managed and
// not accepted here.
type CreateEventRequest struct {
	Name        string          `json:"name"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	MapLink     string          `json:"map_link"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags"`
	Styles      json.RawMessage `json:"styles"`

	CollectName    bool `json:"collect_name"`
	CollectEmail   bool `json:"collect_email"`
	CollectPhone   bool `json:"collect_phone"`
	SharingEnabled bool `json:"sharing_enabled"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// SuggestTagsRequest is the request body for POST /events/suggest-tags.
type SuggestTagsRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// Validate implements Validator.
func (s SuggestTagsRequest) Validate() []string {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// SuggestTagsResponse is the success payload for POST /events/suggest-tags.
type SuggestTagsResponse struct {
	Tags []string `json:"tags"`
}

// StatsResponse is the success payload for GET /events/{eventID}/stats.
type StatsResponse struct {
	Views      int64                  `json:"views"`
	Tally      domain.Tally           `json:"tally"`
	Responses  []*domain.Response     `json:"responses"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Cache   *cache.OwnerCache
}

func NewEventController(logger *slog.Logger, svc domain.EventService, ownerCache *cache.OwnerCache) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Cache:   ownerCache,
	}
}

// ListMyEvents godoc
// @Summary List the authenticated organizer's events
// @Description Serves from the local view cache when warm; otherwise re-queries and fills it. Most recent first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Router /events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if events, hit := c.Cache.Events(userID); hit {
		helpers.WriteJSONSuccess(w, http.StatusOK, events)
		return
	}
	events, err := c.Cache.Refresh(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create a new event
// @Description The authenticated user becomes the owner. Views, tallies and the response collection start empty; premium starts false.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event profile and response configuration"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event := domain.NewEvent(userID)
	event.Name = req.Name
	event.Date = req.Date
	event.Time = req.Time
	event.Location = req.Location
	event.Description = req.Description
	event.MapLink = req.MapLink
	if req.Images != nil {
		event.Images = req.Images
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
	event.Styles = req.Styles
	event.Collect = domain.CollectFields{Name: req.CollectName, Email: req.CollectEmail, Phone: req.CollectPhone}
	event.SharingEnabled = req.SharingEnabled

	created, err := c.Service.Create(r.Context(), userID, event)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	c.Cache.Upsert(created)
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// UpdateEvent godoc
// @Summary Patch an event's profile or configuration
// @Description Field-level merge. Repository-managed fields (id, owner, views, tallies, responses, created_at) are ignored if supplied.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param patch body domain.EventUpdate true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	// Lenient decode: stray repository-managed keys (owner_id, views, ...)
	// are dropped while the allow-listed fields still apply.
	var patch domain.EventUpdate
	if !helpers.DecodeLenient(w, r, &patch) {
		return
	}
	updated, err := c.Service.Update(r.Context(), eventID, userID, patch)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	c.Cache.Upsert(updated)
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event and its responses
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "no content"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID, userID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	c.Cache.Remove(userID, eventID)
	w.WriteHeader(http.StatusNoContent)
}

// Stats godoc
// @Summary Owner statistics for an event
// @Description Views, per-category tallies, and the paginated response collection with contact details. Always fetched fresh, never from the cache.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains stats"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/stats [get]
func (c *EventController) Stats(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	p := helpers.ParsePagination(r)
	stats, err := c.Service.Stats(r.Context(), eventID, userID, p)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatsResponse{
		Views:      stats.Views,
		Tally:      stats.Tally,
		Responses:  stats.Responses,
		Pagination: helpers.NewPaginationMeta(p, stats.Total),
	})
}

// SuggestTags godoc
// @Summary Suggest tags for an event draft
// @Description Best effort: model failures return an empty list, never an error.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draft body SuggestTagsRequest true "Event draft details"
// @Success 200 {object} helpers.APIResponse "data contains suggested tags"
// @Router /events/suggest-tags [post]
func (c *EventController) SuggestTags(w http.ResponseWriter, r *http.Request) {
	var req SuggestTagsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	tags := c.Service.SuggestTags(r.Context(), domain.TagSuggestionInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, SuggestTagsResponse{Tags: tags})
}
