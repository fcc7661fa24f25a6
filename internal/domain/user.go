package domain

import (
	"strings"
	"time"
)

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RolePastor Role = "pastor"
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RolePastor, RoleLeader, RoleMember:
		return true
	}
	return false
}

// LeadershipRoles are the roles allowed to manage registry data.
func LeadershipRoles() []Role {
	return []Role{RoleAdmin, RolePastor, RoleLeader}
}

// UserStatus is the lifecycle state of a user account.
type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusInactive  UserStatus = "inactive"
	StatusSuspended UserStatus = "suspended"
)

// ValidUserStatus reports whether s is one of the known statuses.
func ValidUserStatus(s UserStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// User is an identity record: credentials, role, status, and the
// login-attempt counters the lockout policy operates on.
//
// PasswordHash always holds a bcrypt digest, never plaintext; hashing is an
// explicit step in the write path (see service.AuthService), not a save hook.
type User struct {
	ID            string
	Name          string
	Email         string // stored lowercased; unique
	PasswordHash  string
	Role          Role
	Status        UserStatus
	Phone         string
	Avatar        *string
	LastLogin     *time.Time
	LoginAttempts int
	LockUntil     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLocked reports whether the account is under an active login lock.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

// RegisterRequest holds parameters for creating a new user account.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     Role // defaults to member
}

// Validate checks that the request is well-formed and normalises the email.
func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	if len(r.Name) < 2 || len(r.Name) > 100 {
		return ErrValidation("name must be between 2 and 100 characters")
	}
	if !validEmail(r.Email) {
		return ErrValidation("invalid email address")
	}
	if len(r.Password) < 6 {
		return ErrValidation("password must be at least 6 characters")
	}
	if r.Role == "" {
		r.Role = RoleMember
	}
	if !ValidRole(r.Role) {
		return ErrValidation("invalid role %q", r.Role)
	}
	return nil
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string
	Password string
}

// Validate checks that the request is well-formed and normalises the email.
func (r *LoginRequest) Validate() error {
	r.Email = NormalizeEmail(r.Email)
	if !validEmail(r.Email) {
		return ErrValidation("invalid email address")
	}
	if r.Password == "" {
		return ErrValidation("password is required")
	}
	return nil
}

// ChangePasswordRequest holds parameters for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string
	NewPassword     string
}

// Validate checks that the request is well-formed.
func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return ErrValidation("current password is required")
	}
	if len(r.NewPassword) < 6 {
		return ErrValidation("new password must be at least 6 characters")
	}
	return nil
}

// UpdateProfileRequest holds the fields a user may change on their own account.
type UpdateProfileRequest struct {
	Name  *string
	Phone *string
}

// Validate checks that the request is well-formed.
func (r *UpdateProfileRequest) Validate() error {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if len(n) < 2 || len(n) > 100 {
			return ErrValidation("name must be between 2 and 100 characters")
		}
		*r.Name = n
	}
	if r.Phone != nil && len(*r.Phone) > 20 {
		return ErrValidation("phone must be at most 20 characters")
	}
	return nil
}

// UpdateUserRequest holds the fields an administrator may change on any account.
type UpdateUserRequest struct {
	Name   *string
	Email  *string
	Role   *Role
	Status *UserStatus
}

// Validate checks that the request is well-formed and normalises the email.
func (r *UpdateUserRequest) Validate() error {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if len(n) < 2 || len(n) > 100 {
			return ErrValidation("name must be between 2 and 100 characters")
		}
		*r.Name = n
	}
	if r.Email != nil {
		e := NormalizeEmail(*r.Email)
		if !validEmail(e) {
			return ErrValidation("invalid email address")
		}
		*r.Email = e
	}
	if r.Role != nil && !ValidRole(*r.Role) {
		return ErrValidation("invalid role %q", *r.Role)
	}
	if r.Status != nil && !ValidUserStatus(*r.Status) {
		return ErrValidation("invalid status %q", *r.Status)
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address. Uniqueness is
// case-insensitive, so every write path must pass through here.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	dot := strings.LastIndex(email[at:], ".")
	return dot > 1 && at+dot < len(email)-1
}
