// Package api provides the HTTP handlers for the church platform REST API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"church-platform/internal/domain"
	"church-platform/internal/middleware"
	"church-platform/internal/service"
)

// Handler holds the services behind the REST API.
type Handler struct {
	auth     *service.AuthService
	users    *service.UserService
	members  *service.MemberService
	events   *service.EventService
	assets   *service.AssetService
	audit    *service.AuditService
	settings *service.SettingService
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(
	auth *service.AuthService,
	users *service.UserService,
	members *service.MemberService,
	events *service.EventService,
	assets *service.AssetService,
	audit *service.AuditService,
	settings *service.SettingService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:     auth,
		users:    users,
		members:  members,
		events:   events,
		assets:   assets,
		audit:    audit,
		settings: settings,
		logger:   logger,
	}
}

// Routes mounts all API routes. authn guards every route except register,
// login, and verify-token; the role and ownership gates sit per route group.
func (h *Handler) Routes(r chi.Router, authn *middleware.Authenticator, resolvers domain.OwnerResolvers) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.handleRegister)
			r.Post("/login", h.handleLogin)
			r.Post("/verify-token", h.handleVerifyToken)

			r.Group(func(r chi.Router) {
				r.Use(authn.Middleware)
				r.Get("/me", h.handleMe)
				r.Put("/me", h.handleUpdateProfile)
				r.Post("/logout", h.handleLogout)
				r.Post("/change-password", h.handleChangePassword)

				r.With(middleware.RequireLeadership()).Get("/users", h.handleListUsers)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin())
					r.Get("/users/{id}", h.handleGetUser)
					r.Put("/users/{id}", h.handleUpdateUser)
					r.Delete("/users/{id}", h.handleDeleteUser)
				})
			})
		})

		r.Route("/members", func(r chi.Router) {
			r.Use(authn.Middleware)
			r.With(middleware.RequireLeadership()).Post("/", h.handleCreateMember)
			r.Get("/", h.handleListMembers)
			r.Get("/{id}", h.handleGetMember)
			ownerGate := middleware.RequireOwnerOrAdmin(domain.ResourceMember, resolvers)
			r.With(ownerGate).Put("/{id}", h.handleUpdateMember)
			r.With(ownerGate).Delete("/{id}", h.handleDeleteMember)
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(authn.Middleware)
			r.With(middleware.RequireLeadership()).Post("/", h.handleCreateEvent)
			r.Get("/", h.handleListEvents)
			r.Get("/{id}", h.handleGetEvent)
			ownerGate := middleware.RequireOwnerOrAdmin(domain.ResourceEvent, resolvers)
			r.With(ownerGate).Put("/{id}", h.handleUpdateEvent)
			r.With(ownerGate).Delete("/{id}", h.handleDeleteEvent)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Use(authn.Middleware)
			r.Use(middleware.RequireLeadership())
			r.Post("/", h.handleCreateAsset)
			r.Get("/", h.handleListAssets)
			r.Get("/{id}", h.handleGetAsset)
			r.Put("/{id}", h.handleUpdateAsset)
			r.Delete("/{id}", h.handleDeleteAsset)
		})

		r.Route("/audit", func(r chi.Router) {
			r.Use(authn.Middleware)
			r.Use(middleware.RequireAdmin())
			r.Get("/", h.handleListAudit)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(authn.Middleware)
			r.Get("/", h.handleListSettings)
			r.Get("/{key}", h.handleGetSetting)
			r.With(middleware.RequireAdmin()).Put("/{key}", h.handlePutSetting)
		})
	})
}

// pageFromQuery extracts a PageRequest from max_results/page query params.
func pageFromQuery(r *http.Request) domain.PageRequest {
	p := domain.PageRequest{}
	if v, err := strconv.Atoi(r.URL.Query().Get("max_results")); err == nil {
		p.MaxResults = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		p.Page = v
	}
	return p
}

// timeFromQuery parses an optional RFC 3339 query parameter.
func timeFromQuery(r *http.Request, name string) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

// mustUser returns the authenticated identity. Routes behind the
// authenticator always have one; the fallback guards against wiring mistakes.
func (h *Handler) mustUser(w http.ResponseWriter, r *http.Request) (domain.ContextUser, bool) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, middleware.MsgNoToken)
	}
	return user, ok
}
