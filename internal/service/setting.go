package service

import (
	"context"
	"fmt"

	"church-platform/internal/domain"
)

// SettingService manages church-wide key/value configuration.
type SettingService struct {
	settings domain.SettingRepository
	audit    *AuditService
}

// NewSettingService creates a SettingService.
func NewSettingService(settings domain.SettingRepository, audit *AuditService) *SettingService {
	return &SettingService{settings: settings, audit: audit}
}

// Get returns one setting by key.
func (s *SettingService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settings.Get(ctx, key)
}

// List returns all settings.
func (s *SettingService) List(ctx context.Context) ([]domain.Setting, error) {
	return s.settings.List(ctx)
}

// Put creates or replaces a setting.
func (s *SettingService) Put(ctx context.Context, actor domain.ContextUser, setting *domain.Setting) error {
	if err := setting.Validate(); err != nil {
		return err
	}
	setting.UpdatedBy = actor.ID
	if err := s.settings.Put(ctx, setting); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditUpdate,
		Action:       "setting updated",
		Description:  fmt.Sprintf("setting %q updated", setting.Key),
		ActorID:      actor.ID,
		ResourceType: "setting",
		ResourceID:   setting.Key,
	})
	return nil
}
