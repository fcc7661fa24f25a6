package domain

import "context"

type clientMetaKey struct{}

// ClientMeta carries request client details for audit records.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// WithClientMeta stores client details in the context.
func WithClientMeta(ctx context.Context, m ClientMeta) context.Context {
	return context.WithValue(ctx, clientMetaKey{}, m)
}

// ClientMetaFromContext extracts client details from the context.
// Returns the zero value when none are present.
func ClientMetaFromContext(ctx context.Context) ClientMeta {
	m, _ := ctx.Value(clientMetaKey{}).(ClientMeta)
	return m
}
