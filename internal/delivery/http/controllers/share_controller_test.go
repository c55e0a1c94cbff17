package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitepage/internal/delivery/http/middleware"
	"invitepage/internal/domain"
)

type fakeShareService struct {
	shareResult []*domain.EventShare
	shareErr    error
	listResult  []*domain.EventShare
	listErr     error

	lastShareEventID string
	lastShareActorID string
	lastShareEmails  []string
}

func (f *fakeShareService) Share(ctx context.Context, eventID, actorID string, emails []string) ([]*domain.EventShare, error) {
	f.lastShareEventID = eventID
	f.lastShareActorID = actorID
	f.lastShareEmails = emails
	if f.shareErr != nil {
		return nil, f.shareErr
	}
	return f.shareResult, nil
}

func (f *fakeShareService) ListShares(ctx context.Context, eventID, actorID string) ([]*domain.EventShare, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func TestShareController_Share(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		shareErr   error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"emails":["a@example.com","b@example.com"]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no recipients",
			body:       `{"emails":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid address",
			body:       `{"emails":["nope"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "free event cannot share",
			body:       `{"emails":["a@example.com"]}`,
			shareErr:   domain.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeShareService{
				shareResult: []*domain.EventShare{{ID: "s1", EventID: testEventID, Email: "a@example.com"}},
				shareErr:    tt.shareErr,
			}
			ctrl := NewShareController(testLogger, svc)

			req := httptest.NewRequest(http.MethodPost, "/events/"+testEventID+"/share", bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", testEventID)
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			rec := httptest.NewRecorder()
			ctrl.Share(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, testEventID, svc.lastShareEventID)
				assert.Equal(t, "user-123", svc.lastShareActorID)
				assert.Len(t, svc.lastShareEmails, 2)
			}
		})
	}
}

func TestShareController_ListShares(t *testing.T) {
	svc := &fakeShareService{listResult: []*domain.EventShare{
		{ID: "s1", EventID: testEventID, Email: "a@example.com"},
	}}
	ctrl := NewShareController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/shares", nil)
	req.SetPathValue("eventID", testEventID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
	rec := httptest.NewRecorder()
	ctrl.ListShares(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	list, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}
