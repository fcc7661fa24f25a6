package domain

import "context"

type userKey struct{}

// ContextUser carries the authenticated identity through request context.
// It never includes the password hash.
type ContextUser struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Status UserStatus
}

// WithUser stores a ContextUser in the context.
func WithUser(ctx context.Context, u ContextUser) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext extracts the ContextUser from the context.
func UserFromContext(ctx context.Context) (ContextUser, bool) {
	u, ok := ctx.Value(userKey{}).(ContextUser)
	return u, ok
}

// ContextUserFrom builds a ContextUser from a full user record.
func ContextUserFrom(u *User) ContextUser {
	return ContextUser{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	}
}
