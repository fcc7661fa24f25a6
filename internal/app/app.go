// Package app wires repositories, services, middleware, and routes into a
// runnable application.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/robfig/cron/v3"

	"church-platform/internal/api"
	"church-platform/internal/auth"
	"church-platform/internal/config"
	"church-platform/internal/db/repository"
	"church-platform/internal/domain"
	"church-platform/internal/middleware"
	"church-platform/internal/service"
)

// Deps holds the externally constructed dependencies.
type Deps struct {
	Cfg     *config.Config
	WriteDB *sql.DB
	ReadDB  *sql.DB
	Logger  *slog.Logger
}

// App is the wired application.
type App struct {
	Handler       *api.Handler
	Authenticator *middleware.Authenticator
	Resolvers     domain.OwnerResolvers

	cfg    *config.Config
	logger *slog.Logger
	cron   *cron.Cron
	audit  *service.AuditService
}

// New builds the application graph. It fails fast on configuration problems,
// including an ownership-gate kind with no registered resolver.
func New(deps Deps) (*App, error) {
	logger := deps.Logger

	// Repositories. Mutating repos ride the single-connection write pool;
	// read-mostly listing could use the read pool, but every repo here also
	// writes, so they all take the write pool. The read pool serves the
	// authentication gate's per-request user lookups.
	userRepo := repository.NewUserRepo(deps.WriteDB)
	userReadRepo := repository.NewUserRepo(deps.ReadDB)
	memberRepo := repository.NewMemberRepo(deps.WriteDB)
	eventRepo := repository.NewEventRepo(deps.WriteDB)
	assetRepo := repository.NewAssetRepo(deps.WriteDB)
	auditRepo := repository.NewAuditRepo(deps.WriteDB)
	settingRepo := repository.NewSettingRepo(deps.WriteDB)

	hasher := auth.NewPasswordHasher(deps.Cfg.BcryptCost)
	tokens, err := auth.NewTokenIssuer(deps.Cfg.JWTSecret, deps.Cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	auditSvc := service.NewAuditService(auditRepo, logger.With("component", "audit"))
	authSvc := service.NewAuthService(userRepo, auditSvc, hasher, tokens,
		logger.With("component", "auth"))
	userSvc := service.NewUserService(userRepo, auditSvc)
	memberSvc := service.NewMemberService(memberRepo, auditSvc)
	eventSvc := service.NewEventService(eventRepo, auditSvc)
	assetSvc := service.NewAssetService(assetRepo, auditSvc)
	settingSvc := service.NewSettingService(settingRepo, auditSvc)

	resolvers := domain.OwnerResolvers{
		domain.ResourceMember: memberSvc.OwnerOf,
		domain.ResourceEvent:  eventSvc.OwnerOf,
		domain.ResourceAsset:  assetSvc.OwnerOf,
	}
	if err := resolvers.Validate(
		domain.ResourceMember, domain.ResourceEvent, domain.ResourceAsset,
	); err != nil {
		return nil, fmt.Errorf("ownership resolvers: %w", err)
	}

	handler := api.NewHandler(authSvc, userSvc, memberSvc, eventSvc, assetSvc,
		auditSvc, settingSvc, logger.With("component", "api"))

	return &App{
		Handler:       handler,
		Authenticator: middleware.NewAuthenticator(tokens, userReadRepo,
			logger.With("component", "authn")),
		Resolvers:     resolvers,
		cfg:           deps.Cfg,
		logger:        logger,
		audit:         auditSvc,
	}, nil
}

// Router assembles the full middleware chain and API routes.
func (a *App) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMeta)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: a.cfg.RateLimitRPS,
		Burst:             a.cfg.RateLimitBurst,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	a.Handler.Routes(r, a.Authenticator, a.Resolvers)
	return r
}

// StartJobs launches the background schedule: a nightly audit retention sweep.
func (a *App) StartJobs() error {
	c := cron.New()
	retention := a.cfg.AuditRetention
	_, err := c.AddFunc("0 3 * * *", func() {
		removed, err := a.audit.Sweep(context.Background(), retention)
		if err != nil {
			a.logger.Error("audit retention sweep failed", "error", err)
			return
		}
		a.logger.Info("audit retention sweep", "removed", removed)
	})
	if err != nil {
		return fmt.Errorf("schedule audit sweep: %w", err)
	}
	c.Start()
	a.cron = c
	return nil
}

// StopJobs stops the background schedule and waits for running jobs.
func (a *App) StopJobs() {
	if a.cron != nil {
		<-a.cron.Stop().Done()
	}
}
