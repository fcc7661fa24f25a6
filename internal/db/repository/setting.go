package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"church-platform/internal/domain"
)

// SettingRepo implements domain.SettingRepository over SQLite.
type SettingRepo struct {
	db *sql.DB
}

// NewSettingRepo creates a SettingRepo on the given pool.
func NewSettingRepo(db *sql.DB) *SettingRepo {
	return &SettingRepo{db: db}
}

var _ domain.SettingRepository = (*SettingRepo)(nil)

func (r *SettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var s domain.Setting
	err := r.db.QueryRowContext(ctx, `
		SELECT key, value, updated_by, updated_at FROM settings WHERE key = ?`,
		key).Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "setting %q not found", key)
	}
	return &s, nil
}

func (r *SettingRepo) List(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value, updated_by, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Put creates or replaces the value for a key.
func (r *SettingRepo) Put(ctx context.Context, s *domain.Setting) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_by, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_by = excluded.updated_by,
			updated_at = excluded.updated_at`,
		s.Key, s.Value, s.UpdatedBy, s.UpdatedAt)
	return err
}
