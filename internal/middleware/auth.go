// Package middleware provides the HTTP authentication, authorization, and
// request-hygiene layers.
package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"church-platform/internal/auth"
	"church-platform/internal/domain"
)

// Stable messages for authentication gate failures. Expired tokens get a
// distinct message so clients can prompt for re-login instead of treating the
// session as broken.
const (
	MsgNoToken      = "no token provided"
	MsgTokenExpired = "token expired, please log in again"
	MsgTokenInvalid = "invalid token"
	MsgUserGone     = "user no longer exists"
	MsgUserInactive = "account is not active, contact an administrator"
)

// msgServerError is the generic envelope for store failures; details stay in
// the server log.
const msgServerError = "internal server error"

// Authenticator verifies bearer tokens and attaches the identity to the
// request context.
type Authenticator struct {
	tokens *auth.TokenIssuer
	users  domain.UserRepository
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens *auth.TokenIssuer, users domain.UserRepository, logger *slog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// Middleware rejects requests without a valid token for an existing, active
// account. The checks run in a fixed order: token presence, signature and
// expiry, user lookup, account status. On success the ContextUser (never the
// password hash) is attached to the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, MsgNoToken)
			return
		}

		userID, err := a.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				writeAuthError(w, http.StatusUnauthorized, MsgTokenExpired)
			default:
				writeAuthError(w, http.StatusUnauthorized, MsgTokenInvalid)
			}
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			// A well-formed token for a deleted account is still a 401, not
			// a 404: the resource here is the session, not the user row. A
			// store failure is neither; that surfaces as a 500.
			var notFound *domain.NotFoundError
			if errors.As(err, &notFound) {
				writeAuthError(w, http.StatusUnauthorized, MsgUserGone)
				return
			}
			a.logger.Error("user lookup failed", "user", userID, "error", err)
			writeAuthError(w, http.StatusInternalServerError, msgServerError)
			return
		}

		if user.Status != domain.StatusActive {
			writeAuthError(w, http.StatusUnauthorized, MsgUserInactive)
			return
		}

		ctx := domain.WithUser(r.Context(), domain.ContextUserFrom(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    status,
		"message": message,
	})
}
