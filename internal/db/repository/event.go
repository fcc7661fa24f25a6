package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"church-platform/internal/domain"
)

const eventColumns = `id, title, description, type, category, starts_at,
	ends_at, location, capacity, created_by, created_at, updated_at`

// EventRepo implements domain.EventRepository over SQLite.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo creates an EventRepo on the given pool.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

var _ domain.EventRepository = (*EventRepo)(nil)

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	cp := *e
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (id, title, description, type, category, starts_at,
			ends_at, location, capacity, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.Title, cp.Description, cp.Type, cp.Category,
		cp.StartsAt.UTC(), cp.EndsAt.UTC(), cp.Location, cp.Capacity,
		cp.CreatedBy, cp.CreatedAt, cp.UpdatedAt)
	if err != nil {
		return nil, conflictOr(err, "event conflicts with an existing one")
	}
	return &cp, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err != nil {
		return nil, notFoundOr(err, "event %s not found", id)
	}
	return e, nil
}

// List returns events in chronological order, optionally bounded to the
// [from, to] window.
func (r *EventRepo) List(ctx context.Context, from, to *time.Time, page domain.PageRequest) ([]domain.Event, int64, error) {
	where := ""
	args := []any{}
	switch {
	case from != nil && to != nil:
		where = ` WHERE starts_at >= ? AND starts_at <= ?`
		args = append(args, from.UTC(), to.UTC())
	case from != nil:
		where = ` WHERE starts_at >= ?`
		args = append(args, from.UTC())
	case to != nil:
		where = ` WHERE starts_at <= ?`
		args = append(args, to.UTC())
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events`+where+`
		ORDER BY starts_at LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, *e)
	}
	return events, total, rows.Err()
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	cp := *e
	cp.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET title = ?, description = ?, type = ?, category = ?,
			starts_at = ?, ends_at = ?, location = ?, capacity = ?, updated_at = ?
		WHERE id = ?`,
		cp.Title, cp.Description, cp.Type, cp.Category,
		cp.StartsAt.UTC(), cp.EndsAt.UTC(), cp.Location, cp.Capacity,
		cp.UpdatedAt, cp.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("event %s not found", cp.ID)
	}
	return &cp, nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("event %s not found", id)
	}
	return nil
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Type, &e.Category,
		&e.StartsAt, &e.EndsAt, &e.Location, &e.Capacity, &e.CreatedBy,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
