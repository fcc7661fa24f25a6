package service

import (
	"context"
	"fmt"

	"church-platform/internal/domain"
)

// AssetService manages the property registry.
type AssetService struct {
	assets domain.AssetRepository
	audit  *AuditService
}

// NewAssetService creates an AssetService.
func NewAssetService(assets domain.AssetRepository, audit *AuditService) *AssetService {
	return &AssetService{assets: assets, audit: audit}
}

// Create registers a property item.
func (s *AssetService) Create(ctx context.Context, actor domain.ContextUser, a *domain.Asset) (*domain.Asset, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.CreatedBy = actor.ID
	created, err := s.assets.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditCreate,
		Action:       "asset created",
		Description:  fmt.Sprintf("asset %q registered", created.Name),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceAsset),
		ResourceID:   created.ID,
	})
	return created, nil
}

// Get returns one asset.
func (s *AssetService) Get(ctx context.Context, id string) (*domain.Asset, error) {
	return s.assets.GetByID(ctx, id)
}

// List returns all assets, paginated.
func (s *AssetService) List(ctx context.Context, page domain.PageRequest) ([]domain.Asset, int64, error) {
	return s.assets.List(ctx, page)
}

// Update replaces an asset record.
func (s *AssetService) Update(ctx context.Context, actor domain.ContextUser, id string, a *domain.Asset) (*domain.Asset, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	current, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.ID = current.ID
	a.CreatedBy = current.CreatedBy
	a.CreatedAt = current.CreatedAt

	updated, err := s.assets.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditUpdate,
		Action:       "asset updated",
		Description:  fmt.Sprintf("asset %q updated", updated.Name),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceAsset),
		ResourceID:   updated.ID,
	})
	return updated, nil
}

// Delete removes an asset record.
func (s *AssetService) Delete(ctx context.Context, actor domain.ContextUser, id string) error {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditDelete,
		Action:       "asset deleted",
		Description:  fmt.Sprintf("asset %q removed", a.Name),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceAsset),
		ResourceID:   a.ID,
	})
	return nil
}

// OwnerOf resolves the registering user of an asset, for the ownership gate.
func (s *AssetService) OwnerOf(ctx context.Context, id string) (string, error) {
	a, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return a.CreatedBy, nil
}
