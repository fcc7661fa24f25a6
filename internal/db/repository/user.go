package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"church-platform/internal/domain"
)

const userColumns = `id, name, email, password_hash, role, status, phone, avatar,
	last_login, login_attempts, lock_until, created_at, updated_at`

// UserRepo implements domain.UserRepository over SQLite.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a UserRepo on the given pool.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	cp := *u
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, status, phone,
			avatar, last_login, login_attempts, lock_until, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.Name, cp.Email, cp.PasswordHash, cp.Role, cp.Status, cp.Phone,
		nullString(cp.Avatar), nullTime(cp.LastLogin), cp.LoginAttempts,
		nullTime(cp.LockUntil), cp.CreatedAt, cp.UpdatedAt)
	if err != nil {
		return nil, conflictOr(err, "an account with this email already exists")
	}
	return &cp, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr(err, "user %s not found", id)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr(err, "no user with email %s", email)
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		ORDER BY name LIMIT ? OFFSET ?`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	cp := *u
	cp.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, role = ?, status = ?, phone = ?,
			avatar = ?, updated_at = ?
		WHERE id = ?`,
		cp.Name, cp.Email, cp.Role, cp.Status, cp.Phone,
		nullString(cp.Avatar), cp.UpdatedAt, cp.ID)
	if err != nil {
		return nil, conflictOr(err, "an account with this email already exists")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound("user %s not found", cp.ID)
	}
	return &cp, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

func (r *UserRepo) SetAttempts(ctx context.Context, id string, attempts int, lockUntil *time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET login_attempts = ?, lock_until = ? WHERE id = ?`,
		attempts, nullTime(lockUntil), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

func (r *UserRepo) RecordLogin(ctx context.Context, id string, attempts int, lastLogin time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET login_attempts = ?, lock_until = NULL, last_login = ?
		WHERE id = ?`,
		attempts, lastLogin.UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("user %s not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var avatar sql.NullString
	var lastLogin, lockUntil sql.NullTime

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Status, &u.Phone, &avatar, &lastLogin, &u.LoginAttempts,
		&lockUntil, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Avatar = stringPtr(avatar)
	u.LastLogin = timePtr(lastLogin)
	u.LockUntil = timePtr(lockUntil)
	return &u, nil
}
