package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrBadCredentials = errors.New("invalid email or password")
)

// User represents a registered organizer.
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, name string, createdAt time.Time) *User {
	return &User{
		Email:     email,
		Name:      name,
		CreatedAt: createdAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the user id it was
// issued for.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines storage operations for organizer accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User, passwordHash, salt string) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail also returns the stored hash and salt for verification.
	GetByEmail(ctx context.Context, email string) (*User, string, string, error)
}

// AuthService handles organizer signup and login.
type AuthService interface {
	SignUp(ctx context.Context, email, password, name string) (*User, error)
	// Login returns a signed bearer token on success.
	Login(ctx context.Context, email, password string) (string, *User, error)
}
