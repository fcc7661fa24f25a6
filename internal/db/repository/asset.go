package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"church-platform/internal/domain"
)

const assetColumns = `id, name, category, acquired_at, value_cents, condition,
	location, notes, created_by, created_at, updated_at`

// AssetRepo implements domain.AssetRepository over SQLite.
type AssetRepo struct {
	db *sql.DB
}

// NewAssetRepo creates an AssetRepo on the given pool.
func NewAssetRepo(db *sql.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

var _ domain.AssetRepository = (*AssetRepo)(nil)

func (r *AssetRepo) Create(ctx context.Context, a *domain.Asset) (*domain.Asset, error) {
	cp := *a
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (id, name, category, acquired_at, value_cents,
			condition, location, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.Name, cp.Category, nullTime(cp.AcquiredAt), cp.ValueCents,
		cp.Condition, cp.Location, cp.Notes, cp.CreatedBy,
		cp.CreatedAt, cp.UpdatedAt)
	if err != nil {
		return nil, conflictOr(err, "asset conflicts with an existing one")
	}
	return &cp, nil
}

func (r *AssetRepo) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	a, err := scanAsset(row)
	if err != nil {
		return nil, notFoundOr(err, "asset %s not found", id)
	}
	return a, nil
}

func (r *AssetRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Asset, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+assetColumns+` FROM assets
		ORDER BY name LIMIT ? OFFSET ?`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, *a)
	}
	return assets, total, rows.Err()
}

func (r *AssetRepo) Update(ctx context.Context, a *domain.Asset) (*domain.Asset, error) {
	cp := *a
	cp.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE assets SET name = ?, category = ?, acquired_at = ?,
			value_cents = ?, condition = ?, location = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		cp.Name, cp.Category, nullTime(cp.AcquiredAt), cp.ValueCents,
		cp.Condition, cp.Location, cp.Notes, cp.UpdatedAt, cp.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("asset %s not found", cp.ID)
	}
	return &cp, nil
}

func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("asset %s not found", id)
	}
	return nil
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var a domain.Asset
	var acquiredAt sql.NullTime
	err := row.Scan(&a.ID, &a.Name, &a.Category, &acquiredAt, &a.ValueCents,
		&a.Condition, &a.Location, &a.Notes, &a.CreatedBy,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.AcquiredAt = timePtr(acquiredAt)
	return &a, nil
}
