package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"church-platform/internal/domain"
)

// RequireRoles allows only authenticated users whose role is in the allow
// list. Must run after the Authenticator.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := domain.UserFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			if !allowed[user.Role] {
				writeAuthError(w, http.StatusForbidden,
					"access denied: insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows only administrators.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// RequireLeadership allows administrators, pastors, and leaders.
func RequireLeadership() func(http.Handler) http.Handler {
	return RequireRoles(domain.LeadershipRoles()...)
}

// RequireOwnerOrAdmin allows administrators unconditionally, and otherwise
// only the user who owns the resource named by the {id} URL parameter. The
// resolver for each resource kind is registered at wiring time; a kind with
// no resolver is a server error, not a silent pass.
func RequireOwnerOrAdmin(kind domain.ResourceKind, resolvers domain.OwnerResolvers) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := domain.UserFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}
			if user.Role == domain.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			resolve, ok := resolvers[kind]
			if !ok {
				writeAuthError(w, http.StatusInternalServerError,
					"ownership check is not configured for this resource")
				return
			}

			owner, err := resolve(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				var notFound *domain.NotFoundError
				if errors.As(err, &notFound) {
					writeAuthError(w, http.StatusNotFound, notFound.Message)
					return
				}
				writeAuthError(w, http.StatusInternalServerError,
					"ownership check failed")
				return
			}
			if owner != user.ID {
				writeAuthError(w, http.StatusForbidden,
					"access denied: you do not own this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
