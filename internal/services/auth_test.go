package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invitepage/internal/domain"
)

type storedUser struct {
	user *domain.User
	hash string
	salt string
}

type mockUserRepository struct {
	byEmail map[string]storedUser
	err     error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User, passwordHash, salt string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	user.ID = "generated-id"
	m.byEmail[user.Email] = storedUser{user: user, hash: passwordHash, salt: salt}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, su := range m.byEmail {
		if su.user.ID == id {
			return su.user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, string, string, error) {
	if m.err != nil {
		return nil, "", "", m.err
	}
	su, ok := m.byEmail[email]
	if !ok {
		return nil, "", "", domain.ErrUserNotFound
	}
	return su.user, su.hash, su.salt, nil
}

// mockHasher marks hashes as salt+":"+password so tests can check what was
// stored without real bcrypt cost.
type mockHasher struct {
	saltErr error
}

func (m *mockHasher) GenerateSalt() (string, error) {
	if m.saltErr != nil {
		return "", m.saltErr
	}
	return "salt", nil
}

func (m *mockHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (m *mockHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-for-" + userID, nil
}

func newTestAuthService(repo domain.UserRepository) domain.AuthService {
	return NewAuthService(repo, &mockHasher{}, &mockTokenIssuer{}, time.Hour, 2*time.Second)
}

func TestAuthService_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "ada@example.com", password: "secret123"},
		{name: "email is normalized", email: "  Ada@Example.COM ", password: "secret123"},
		{name: "missing email", email: "", password: "secret123", wantErr: domain.ErrInvalidInput},
		{name: "missing password", email: "ada@example.com", password: "", wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{byEmail: map[string]storedUser{}}
			svc := newTestAuthService(repo)

			user, err := svc.SignUp(context.Background(), tt.email, tt.password, "Ada")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", user.Email)
			assert.NotEmpty(t, user.ID)
			su, ok := repo.byEmail["ada@example.com"]
			require.True(t, ok)
			assert.Equal(t, "salt:"+tt.password, su.hash)
		})
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{byEmail: map[string]storedUser{}}
	svc := newTestAuthService(repo)

	_, err := svc.SignUp(context.Background(), "ada@example.com", "secret123", "Ada")
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), "ADA@example.com", "othersecret", "Ada Again")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	repo := &mockUserRepository{byEmail: map[string]storedUser{}}
	svc := newTestAuthService(repo)
	_, err := svc.SignUp(context.Background(), "ada@example.com", "secret123", "Ada")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "success", email: "ada@example.com", password: "secret123"},
		{name: "mixed-case email", email: "Ada@Example.com", password: "secret123"},
		{name: "wrong password", email: "ada@example.com", password: "nope", wantErr: domain.ErrBadCredentials},
		// unknown account gets the same answer as a bad password
		{name: "unknown email", email: "ghost@example.com", password: "secret123", wantErr: domain.ErrBadCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "token-for-generated-id", token)
			assert.Equal(t, "ada@example.com", user.Email)
		})
	}
}
