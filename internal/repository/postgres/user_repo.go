package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"invitepage/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User, passwordHash, salt string) error {
	query := `
		INSERT INTO users (email, name, password_hash, password_salt)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	email := strings.ToLower(strings.TrimSpace(u.Email))
	err := r.DB.QueryRowContext(ctx, query, email, u.Name, passwordHash, salt).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrDuplicateEmail
		}
		return storeErr("create user", err)
	}
	u.Email = email
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, name, created_at FROM users WHERE id = $1`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, string, string, error) {
	query := `SELECT id, email, name, created_at, password_hash, password_salt FROM users WHERE email = $1`
	u := &domain.User{}
	var hash, salt string
	err := r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &hash, &salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", "", domain.ErrUserNotFound
		}
		return nil, "", "", storeErr("get user by email", err)
	}
	return u, hash, salt, nil
}
