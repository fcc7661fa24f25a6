package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"church-platform/internal/domain"
)

const memberColumns = `id, first_name, last_name, email, phone, mobile,
	birth_date, gender, marital_status, street, number, district, city, state,
	zip_code, occupation, status, created_by, created_at, updated_at`

// MemberRepo implements domain.MemberRepository over SQLite.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo creates a MemberRepo on the given pool.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

var _ domain.MemberRepository = (*MemberRepo)(nil)

func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	cp := *m
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (id, first_name, last_name, email, phone, mobile,
			birth_date, gender, marital_status, street, number, district, city,
			state, zip_code, occupation, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.FirstName, cp.LastName, cp.Email, cp.Phone, cp.Mobile,
		cp.BirthDate.UTC(), cp.Gender, cp.MaritalStatus,
		cp.Address.Street, cp.Address.Number, cp.Address.District,
		cp.Address.City, cp.Address.State, cp.Address.ZipCode,
		cp.Occupation, cp.Status, cp.CreatedBy, cp.CreatedAt, cp.UpdatedAt)
	if err != nil {
		return nil, conflictOr(err, "member record conflicts with an existing one")
	}
	return &cp, nil
}

func (r *MemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err != nil {
		return nil, notFoundOr(err, "member %s not found", id)
	}
	return m, nil
}

// List returns members sorted by name. A non-empty search matches first name,
// last name, or email, case-insensitively.
func (r *MemberRepo) List(ctx context.Context, search string, page domain.PageRequest) ([]domain.Member, int64, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE first_name LIKE ? OR last_name LIKE ? OR email LIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	args = append(args, page.Limit(), page.Offset())
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members`+where+`
		ORDER BY last_name, first_name LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, *m)
	}
	return members, total, rows.Err()
}

func (r *MemberRepo) Update(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	cp := *m
	cp.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE members SET first_name = ?, last_name = ?, email = ?, phone = ?,
			mobile = ?, birth_date = ?, gender = ?, marital_status = ?,
			street = ?, number = ?, district = ?, city = ?, state = ?,
			zip_code = ?, occupation = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		cp.FirstName, cp.LastName, cp.Email, cp.Phone, cp.Mobile,
		cp.BirthDate.UTC(), cp.Gender, cp.MaritalStatus,
		cp.Address.Street, cp.Address.Number, cp.Address.District,
		cp.Address.City, cp.Address.State, cp.Address.ZipCode,
		cp.Occupation, cp.Status, cp.UpdatedAt, cp.ID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("member %s not found", cp.ID)
	}
	return &cp, nil
}

func (r *MemberRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("member %s not found", id)
	}
	return nil
}

func scanMember(row rowScanner) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
		&m.Mobile, &m.BirthDate, &m.Gender, &m.MaritalStatus,
		&m.Address.Street, &m.Address.Number, &m.Address.District,
		&m.Address.City, &m.Address.State, &m.Address.ZipCode,
		&m.Occupation, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
