package postgres

import (
	"context"
	"database/sql"

	"invitepage/internal/domain"
)

type eventShareRepository struct {
	DB *sql.DB
}

func NewEventShareRepository(db *sql.DB) domain.EventShareRepository {
	return &eventShareRepository{
		DB: db,
	}
}

func (r *eventShareRepository) Create(ctx context.Context, share *domain.EventShare) error {
	query := `
		INSERT INTO event_shares (event_id, email)
		VALUES ($1, $2)
		RETURNING id, sent_at
	`
	if err := r.DB.QueryRowContext(ctx, query, share.EventID, share.Email).Scan(&share.ID, &share.SentAt); err != nil {
		return storeErr("create share", err)
	}
	return nil
}

func (r *eventShareRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventShare, error) {
	query := `
		SELECT id, event_id, email, sent_at
		FROM event_shares
		WHERE event_id = $1
		ORDER BY sent_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, storeErr("list shares", err)
	}
	defer rows.Close()
	shares := make([]*domain.EventShare, 0)
	for rows.Next() {
		s := &domain.EventShare{}
		if err := rows.Scan(&s.ID, &s.EventID, &s.Email, &s.SentAt); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, rows.Err()
}
