package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"church-platform/internal/domain"
)

func requestAs(role domain.Role, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := domain.WithUser(req.Context(), domain.ContextUser{
		ID: userID, Role: role, Status: domain.StatusActive,
	})
	return req.WithContext(ctx)
}

func pass() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name string
		gate func(http.Handler) http.Handler
		role domain.Role
		want int
	}{
		{"admin passes admin gate", RequireAdmin(), domain.RoleAdmin, http.StatusOK},
		{"pastor fails admin gate", RequireAdmin(), domain.RolePastor, http.StatusForbidden},
		{"member fails admin gate", RequireAdmin(), domain.RoleMember, http.StatusForbidden},
		{"admin passes leadership gate", RequireLeadership(), domain.RoleAdmin, http.StatusOK},
		{"pastor passes leadership gate", RequireLeadership(), domain.RolePastor, http.StatusOK},
		{"leader passes leadership gate", RequireLeadership(), domain.RoleLeader, http.StatusOK},
		{"member fails leadership gate", RequireLeadership(), domain.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.gate(pass()).ServeHTTP(rec, requestAs(tt.role, "u1"))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRoles_UnauthenticatedIs401(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAdmin()(pass()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ownerRequest routes through chi so the {id} URL parameter resolves.
func ownerRequest(t *testing.T, gate func(http.Handler) http.Handler, role domain.Role, userID, resourceID string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.With(gate).Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/things/"+resourceID, nil)
	ctx := domain.WithUser(req.Context(), domain.ContextUser{
		ID: userID, Role: role, Status: domain.StatusActive,
	})
	r.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	resolvers := domain.OwnerResolvers{
		domain.ResourceMember: func(_ context.Context, id string) (string, error) {
			if id == "m1" {
				return "owner-id", nil
			}
			return "", domain.ErrNotFound("member %s not found", id)
		},
	}
	gate := RequireOwnerOrAdmin(domain.ResourceMember, resolvers)

	t.Run("owner passes", func(t *testing.T) {
		rec := ownerRequest(t, gate, domain.RoleMember, "owner-id", "m1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		rec := ownerRequest(t, gate, domain.RoleMember, "someone-else", "m1")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes without ownership", func(t *testing.T) {
		rec := ownerRequest(t, gate, domain.RoleAdmin, "any-admin", "m1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing resource is 404 for non-admin", func(t *testing.T) {
		rec := ownerRequest(t, gate, domain.RoleMember, "owner-id", "ghost")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unmapped kind is a server error", func(t *testing.T) {
		badGate := RequireOwnerOrAdmin(domain.ResourceEvent, resolvers)
		rec := ownerRequest(t, badGate, domain.RoleMember, "owner-id", "m1")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestOwnerResolversValidate(t *testing.T) {
	resolvers := domain.OwnerResolvers{
		domain.ResourceMember: func(context.Context, string) (string, error) { return "", nil },
	}
	assert.NoError(t, resolvers.Validate(domain.ResourceMember))
	assert.Error(t, resolvers.Validate(domain.ResourceMember, domain.ResourceEvent))
}
