package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitepage/internal/delivery/http/helpers"
	"invitepage/internal/domain"
)

type fakeAuthService struct {
	signUpResult *domain.User
	signUpErr    error
	loginToken   string
	loginUser    *domain.User
	loginErr     error

	lastSignUpEmail string
	lastLoginEmail  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastSignUpEmail = email
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpResult, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastLoginEmail = email
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		signUpErr  error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"email":"ada@example.com","password":"secret123","name":"Ada"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","password":"secret123"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"ada@example.com","password":"short"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"ada@example.com","password":"secret123"}`,
			signUpErr:  domain.ErrDuplicateEmail,
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{
				signUpResult: &domain.User{ID: "user-1", Email: "ada@example.com", Name: "Ada"},
				signUpErr:    tt.signUpErr,
			}
			ctrl := NewAuthController(testLogger, svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			ctrl.SignUp(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				env := decodeEnvelope(t, rec)
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loginErr   error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"email":"ada@example.com","password":"secret123"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad credentials",
			body:       `{"email":"ada@example.com","password":"wrong"}`,
			loginErr:   domain.ErrBadCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{
				loginToken: "token-1",
				loginUser:  &domain.User{ID: "user-1", Email: "ada@example.com"},
				loginErr:   tt.loginErr,
			}
			ctrl := NewAuthController(testLogger, svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			ctrl.Login(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				env := decodeEnvelope(t, rec)
				data, ok := env.Data.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "token-1", data["token"])
			}
		})
	}
}
