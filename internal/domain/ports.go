package domain

import (
	"context"
	"time"
)

// UserRepository is the credential store port.
type UserRepository interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page PageRequest) ([]User, int64, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id string) error

	// Lockout bookkeeping. These touch only the attempt counter, the lock
	// timestamp, and last_login; they are best-effort from the caller's
	// point of view.
	SetAttempts(ctx context.Context, id string, attempts int, lockUntil *time.Time) error
	// RecordLogin clears the lock, sets the counter to attempts (0 for a
	// normal success, 1 when the success follows an expired lock), and
	// stamps last_login.
	RecordLogin(ctx context.Context, id string, attempts int, lastLogin time.Time) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}

// AuditRepository is the audit sink and listing port.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MemberRepository is the member registry port.
type MemberRepository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, search string, page PageRequest) ([]Member, int64, error)
	Update(ctx context.Context, m *Member) (*Member, error)
	Delete(ctx context.Context, id string) error
}

// EventRepository is the event schedule port.
type EventRepository interface {
	Create(ctx context.Context, e *Event) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, from, to *time.Time, page PageRequest) ([]Event, int64, error)
	Update(ctx context.Context, e *Event) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// AssetRepository is the property registry port.
type AssetRepository interface {
	Create(ctx context.Context, a *Asset) (*Asset, error)
	GetByID(ctx context.Context, id string) (*Asset, error)
	List(ctx context.Context, page PageRequest) ([]Asset, int64, error)
	Update(ctx context.Context, a *Asset) (*Asset, error)
	Delete(ctx context.Context, id string) error
}

// SettingRepository is the key/value configuration port.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	List(ctx context.Context) ([]Setting, error)
	Put(ctx context.Context, s *Setting) error
}
