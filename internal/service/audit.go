// Package service implements the application services between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"church-platform/internal/domain"
)

// AuditService records and lists audit log entries.
//
// Record is fire-and-forget: a failed write is logged and swallowed so that
// audit problems never change the outcome of the operation being audited.
type AuditService struct {
	repo   domain.AuditRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewAuditService creates an AuditService.
func NewAuditService(repo domain.AuditRepository, logger *slog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger, now: time.Now}
}

// Record writes an audit entry, filling in ID, timestamp, and client details
// from the request context. Never returns an error.
func (s *AuditService) Record(ctx context.Context, e domain.AuditEntry) {
	meta := domain.ClientMetaFromContext(ctx)
	e.ID = uuid.NewString()
	e.IPAddress = meta.IPAddress
	e.UserAgent = meta.UserAgent
	e.CreatedAt = s.now()

	if err := s.repo.Insert(ctx, &e); err != nil {
		s.logger.Warn("audit record failed",
			"kind", e.Kind, "action", e.Action, "actor", e.ActorID, "error", err)
	}
}

// List returns audit entries matching the filter, newest first.
func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	return s.repo.List(ctx, filter)
}

// Sweep deletes entries older than the retention window. Used by the
// scheduled retention job.
func (s *AuditService) Sweep(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.now().Add(-retention))
}
