package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"church-platform/internal/domain"
)

const auditColumns = `id, kind, action, description, actor_id, ip_address,
	user_agent, resource_type, resource_id, created_at`

// AuditRepo implements domain.AuditRepository over SQLite.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo creates an AuditRepo on the given pool.
func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

var _ domain.AuditRepository = (*AuditRepo)(nil)

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, kind, action, description, actor_id,
			ip_address, user_agent, resource_type, resource_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Action, e.Description, e.ActorID,
		e.IPAddress, e.UserAgent, e.ResourceType, e.ResourceID,
		e.CreatedAt.UTC())
	return err
}

// List returns entries matching the filter, newest first.
func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if filter.Kind != nil {
		where += ` AND kind = ?`
		args = append(args, *filter.Kind)
	}
	if filter.ActorID != nil {
		where += ` AND actor_id = ?`
		args = append(args, *filter.ActorID)
	}
	if filter.Since != nil {
		where += ` AND created_at >= ?`
		args = append(args, filter.Since.UTC())
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit log: %w", err)
	}

	args = append(args, filter.Page.Limit(), filter.Page.Offset())
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+auditColumns+` FROM audit_log`+where+`
		ORDER BY created_at DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit log: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Action, &e.Description,
			&e.ActorID, &e.IPAddress, &e.UserAgent, &e.ResourceType,
			&e.ResourceID, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// DeleteOlderThan removes entries created before the cutoff and reports how
// many were deleted. Backs the retention sweep.
func (r *AuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM audit_log WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
