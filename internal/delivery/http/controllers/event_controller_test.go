package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitepage/internal/cache"
	"invitepage/internal/delivery/http/helpers"
	"invitepage/internal/delivery/http/middleware"
	"invitepage/internal/domain"
	"invitepage/internal/repository/memory"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testEventID = "11111111-1111-1111-1111-111111111111"

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr         error
	getResult         *domain.Event
	getErr            error
	updateResult      *domain.Event
	updateErr         error
	deleteErr         error
	recordViewErr     error
	recordResponseErr error
	statsResult       *domain.EventStats
	statsErr          error
	suggestResult     []string

	lastCreateOwnerID      string
	lastCreateEvent        *domain.Event
	lastUpdatePatch        domain.EventUpdate
	lastDeleteEventID      string
	lastDeleteActorID      string
	lastViewEventID        string
	lastResponseEventID    string
	lastResponseCategory   domain.Category
	lastResponseDetails    domain.ResponseDetails
	lastStatsActorID       string
	lastSuggestInput       domain.TagSuggestionInput
	lastMarkPremiumEventID string
}

func (f *fakeEventService) Create(ctx context.Context, ownerID string, event *domain.Event) (*domain.Event, error) {
	f.lastCreateOwnerID = ownerID
	f.lastCreateEvent = event
	if f.createErr != nil {
		return nil, f.createErr
	}
	event.ID = testEventID
	event.OwnerID = ownerID
	return event, nil
}

func (f *fakeEventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeEventService) ListOwned(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	return nil, nil
}

func (f *fakeEventService) Update(ctx context.Context, id, actorID string, patch domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdatePatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeEventService) Delete(ctx context.Context, id, actorID string) error {
	f.lastDeleteEventID = id
	f.lastDeleteActorID = actorID
	return f.deleteErr
}

func (f *fakeEventService) RecordView(ctx context.Context, id string) error {
	f.lastViewEventID = id
	return f.recordViewErr
}

func (f *fakeEventService) RecordResponse(ctx context.Context, id string, category domain.Category, details domain.ResponseDetails) error {
	f.lastResponseEventID = id
	f.lastResponseCategory = category
	f.lastResponseDetails = details
	return f.recordResponseErr
}

func (f *fakeEventService) Stats(ctx context.Context, id, actorID string, p domain.PaginationParams) (*domain.EventStats, error) {
	f.lastStatsActorID = actorID
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.statsResult, nil
}

func (f *fakeEventService) MarkPremium(ctx context.Context, id string) error {
	f.lastMarkPremiumEventID = id
	return nil
}

func (f *fakeEventService) SuggestTags(ctx context.Context, in domain.TagSuggestionInput) []string {
	f.lastSuggestInput = in
	if f.suggestResult == nil {
		return []string{}
	}
	return f.suggestResult
}

func newEventControllerForTest(svc domain.EventService) *EventController {
	return NewEventController(testLogger, svc, cache.NewOwnerCache(memory.NewEventStore()))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var env helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		withUser   bool
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"Garden Party","date":"2026-06-01","collect_name":true}`,
			withUser:   true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       `{"date":"2026-06-01"}`,
			withUser:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			withUser:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no user in context",
			body:       `{"name":"Garden Party"}`,
			withUser:   false,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{}
			ctrl := newEventControllerForTest(svc)

			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			if tt.withUser {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rec := httptest.NewRecorder()
			ctrl.CreateEvent(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "user-123", svc.lastCreateOwnerID)
				assert.Equal(t, "Garden Party", svc.lastCreateEvent.Name)
				assert.True(t, svc.lastCreateEvent.Collect.Name)
			}
		})
	}
}

func TestEventController_ListMyEvents(t *testing.T) {
	store := memory.NewEventStore()
	event := domain.NewEvent("user-123")
	event.Name = "Garden Party"
	require.NoError(t, store.Create(context.Background(), event))

	ctrl := NewEventController(testLogger, &fakeEventService{}, cache.NewOwnerCache(store))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
	rec := httptest.NewRecorder()
	ctrl.ListMyEvents(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Nil(t, env.Error)
	list, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		body       string
		updateErr  error
		wantStatus int
	}{
		{
			name:       "success",
			eventID:    testEventID,
			body:       `{"name":"Renamed"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:    "unknown json keys are dropped, known ones applied",
			eventID: testEventID,
			// owner_id and views are not patchable and must be ignored
			body:       `{"name":"Renamed","owner_id":"attacker","views":9999}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed event id",
			eventID:    "not-a-uuid",
			body:       `{"name":"Renamed"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "not owner",
			eventID:    testEventID,
			body:       `{"name":"Renamed"}`,
			updateErr:  domain.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{
				updateResult: &domain.Event{ID: testEventID, OwnerID: "user-123", Name: "Renamed"},
				updateErr:    tt.updateErr,
			}
			ctrl := newEventControllerForTest(svc)

			req := httptest.NewRequest(http.MethodPatch, "/events/"+tt.eventID, bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", tt.eventID)
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			rec := httptest.NewRecorder()
			ctrl.UpdateEvent(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, svc.lastUpdatePatch.Name)
				assert.Equal(t, "Renamed", *svc.lastUpdatePatch.Name)
			}
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	svc := &fakeEventService{}
	ctrl := newEventControllerForTest(svc)

	req := httptest.NewRequest(http.MethodDelete, "/events/"+testEventID, nil)
	req.SetPathValue("eventID", testEventID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
	rec := httptest.NewRecorder()
	ctrl.DeleteEvent(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testEventID, svc.lastDeleteEventID)
	assert.Equal(t, "user-123", svc.lastDeleteActorID)
}

func TestEventController_Stats(t *testing.T) {
	svc := &fakeEventService{
		statsResult: &domain.EventStats{
			Views: 42,
			Tally: domain.Tally{Going: 3, Maybe: 1},
			Responses: []*domain.Response{
				{ID: "r1", EventID: testEventID, Category: domain.CategoryGoing, Details: domain.ResponseDetails{Name: "Ada"}},
			},
			Total: 4,
		},
	}
	ctrl := newEventControllerForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/stats?page=1&page_size=20", nil)
	req.SetPathValue("eventID", testEventID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
	rec := httptest.NewRecorder()
	ctrl.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", svc.lastStatsActorID)
	env := decodeEnvelope(t, rec)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["views"])
}

func TestEventController_Stats_NotOwner(t *testing.T) {
	svc := &fakeEventService{statsErr: domain.ErrForbidden}
	ctrl := newEventControllerForTest(svc)

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/stats", nil)
	req.SetPathValue("eventID", testEventID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-999"))
	rec := httptest.NewRecorder()
	ctrl.Stats(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, helpers.ErrCodeForbidden, env.Error.Code)
}

func TestEventController_SuggestTags(t *testing.T) {
	svc := &fakeEventService{suggestResult: []string{"garden", "party"}}
	ctrl := newEventControllerForTest(svc)

	body := `{"name":"Garden Party","description":"Flowers and tea"}`
	req := httptest.NewRequest(http.MethodPost, "/events/suggest-tags", bytes.NewBufferString(body))
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
	rec := httptest.NewRecorder()
	ctrl.SuggestTags(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Garden Party", svc.lastSuggestInput.Name)
	env := decodeEnvelope(t, rec)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["tags"], 2)
}
