package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"invitepage/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns the Postgres-backed EventRepository. The view
// counter and tally columns are only ever written through SQL-native
// increments, never through read-modify-write, so concurrent guests cannot
// lose updates.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, owner_id, name, date, time, location, description, map_link,
		images, tags, styles, collect_name, collect_email, collect_phone,
		sharing_enabled, premium, views, tally_going, tally_maybe, tally_not_going, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var styles []byte
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Name, &e.Date, &e.Time, &e.Location, &e.Description, &e.MapLink,
		pq.Array(&e.Images), pq.Array(&e.Tags), &styles,
		&e.Collect.Name, &e.Collect.Email, &e.Collect.Phone,
		&e.SharingEnabled, &e.Premium,
		&e.Views, &e.Tally.Going, &e.Tally.Maybe, &e.Tally.NotGoing, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(styles) > 0 {
		e.Styles = styles
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e, nil
}

// storeErr maps connection-level failures onto domain.ErrUnavailable so
// callers can tell transient store faults from everything else.
func storeErr(op string, err error) error {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (owner_id, name, date, time, location, description, map_link,
			images, tags, styles, collect_name, collect_email, collect_phone, sharing_enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`
	var styles any
	if len(e.Styles) > 0 {
		styles = []byte(e.Styles)
	}
	err := r.DB.QueryRowContext(ctx, query,
		e.OwnerID, e.Name, e.Date, e.Time, e.Location, e.Description, e.MapLink,
		pq.Array(e.Images), pq.Array(e.Tags), styles,
		e.Collect.Name, e.Collect.Email, e.Collect.Phone, e.SharingEnabled,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return storeErr("create event", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("get event", err)
	}
	return e, nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list events", err)
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	add := func(col string, v any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, v)
		n++
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Time != nil {
		add("time", *patch.Time)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.MapLink != nil {
		add("map_link", *patch.MapLink)
	}
	if patch.Images != nil {
		add("images", pq.Array(*patch.Images))
	}
	if patch.Tags != nil {
		add("tags", pq.Array(*patch.Tags))
	}
	if patch.Styles != nil {
		add("styles", []byte(*patch.Styles))
	}
	if patch.CollectName != nil {
		add("collect_name", *patch.CollectName)
	}
	if patch.CollectEmail != nil {
		add("collect_email", *patch.CollectEmail)
	}
	if patch.CollectPhone != nil {
		add("collect_phone", *patch.CollectPhone)
	}
	if patch.SharingEnabled != nil {
		add("sharing_enabled", *patch.SharingEnabled)
	}
	if patch.Premium != nil {
		add("premium", *patch.Premium)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("update event", err)
	}
	return e, nil
}

// Delete removes the event row; the responses and share rows go with it via
// ON DELETE CASCADE, so the event and its collection disappear as one unit.
// Deleting an id that does not exist is not an error.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return storeErr("delete event", err)
	}
	return nil
}

func (r *eventRepository) RecordView(ctx context.Context, id string) error {
	// Atomic add; the current value is never read first, so N concurrent
	// calls always land as +N.
	query := `UPDATE events SET views = views + 1 WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return storeErr("record view", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func tallyColumn(c domain.Category) (string, error) {
	switch c {
	case domain.CategoryGoing:
		return "tally_going", nil
	case domain.CategoryMaybe:
		return "tally_maybe", nil
	case domain.CategoryNotGoing:
		return "tally_not_going", nil
	}
	return "", fmt.Errorf("%w: unknown response category %q", domain.ErrInvalidInput, c)
}

// AppendResponse inserts the response row and bumps the matching tally
// counter in one statement. The insert selects the event row by id, so a
// missing event means no insert, no increment, and zero rows affected. One
// statement means one atomic store write: there is no window where the
// collection and the tally disagree, and no read-modify-write for
// concurrent guests to race on.
func (r *eventRepository) AppendResponse(ctx context.Context, eventID string, resp *domain.Response) error {
	col, err := tallyColumn(resp.Category)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		WITH ins AS (
			INSERT INTO responses (id, event_id, category, name, email, phone, submitted_at)
			SELECT $1, id, $3, $4, $5, $6, $7 FROM events WHERE id = $2
			RETURNING event_id
		)
		UPDATE events SET %s = %s + 1 WHERE id IN (SELECT event_id FROM ins)
	`, col, col)
	result, err := r.DB.ExecContext(ctx, query,
		resp.ID, eventID, string(resp.Category),
		resp.Details.Name, resp.Details.Email, resp.Details.Phone, resp.SubmittedAt,
	)
	if err != nil {
		return storeErr("append response", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ListResponses(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Response, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return nil, 0, storeErr("count responses", err)
	}
	query := `
		SELECT id, event_id, category, name, email, phone, submitted_at
		FROM responses
		WHERE event_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, storeErr("list responses", err)
	}
	defer rows.Close()
	responses := make([]*domain.Response, 0)
	for rows.Next() {
		resp := &domain.Response{}
		var category string
		if err := rows.Scan(&resp.ID, &resp.EventID, &category,
			&resp.Details.Name, &resp.Details.Email, &resp.Details.Phone, &resp.SubmittedAt); err != nil {
			return nil, 0, err
		}
		resp.Category = domain.Category(category)
		responses = append(responses, resp)
	}
	return responses, total, rows.Err()
}

// SetPremium is an unconditional flag write, naturally idempotent: marking
// an already-premium event succeeds without effect.
func (r *eventRepository) SetPremium(ctx context.Context, id string) error {
	query := `UPDATE events SET premium = TRUE WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return storeErr("set premium", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
