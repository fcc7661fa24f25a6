package service

import (
	"context"
	"fmt"

	"church-platform/internal/domain"
)

// MemberService manages the member registry.
type MemberService struct {
	members domain.MemberRepository
	audit   *AuditService
}

// NewMemberService creates a MemberService.
func NewMemberService(members domain.MemberRepository, audit *AuditService) *MemberService {
	return &MemberService{members: members, audit: audit}
}

// Create adds a registry record owned by the acting user.
func (s *MemberService) Create(ctx context.Context, actor domain.ContextUser, m *domain.Member) (*domain.Member, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.CreatedBy = actor.ID
	created, err := s.members.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditCreate,
		Action:       "member created",
		Description:  fmt.Sprintf("member %s %s added to registry", created.FirstName, created.LastName),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceMember),
		ResourceID:   created.ID,
	})
	return created, nil
}

// Get returns one member record.
func (s *MemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	return s.members.GetByID(ctx, id)
}

// List returns member records, optionally filtered by a name/email search.
func (s *MemberService) List(ctx context.Context, search string, page domain.PageRequest) ([]domain.Member, int64, error) {
	return s.members.List(ctx, search, page)
}

// Update replaces a member record. Ownership is enforced by the middleware
// chain; the service assumes the caller is allowed.
func (s *MemberService) Update(ctx context.Context, actor domain.ContextUser, id string, m *domain.Member) (*domain.Member, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	current, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.ID = current.ID
	m.CreatedBy = current.CreatedBy
	m.CreatedAt = current.CreatedAt

	updated, err := s.members.Update(ctx, m)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditUpdate,
		Action:       "member updated",
		Description:  fmt.Sprintf("member %s %s updated", updated.FirstName, updated.LastName),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceMember),
		ResourceID:   updated.ID,
	})
	return updated, nil
}

// Delete removes a member record.
func (s *MemberService) Delete(ctx context.Context, actor domain.ContextUser, id string) error {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditDelete,
		Action:       "member deleted",
		Description:  fmt.Sprintf("member %s %s removed from registry", m.FirstName, m.LastName),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceMember),
		ResourceID:   m.ID,
	})
	return nil
}

// OwnerOf resolves the owning user of a member record, for the ownership gate.
func (s *MemberService) OwnerOf(ctx context.Context, id string) (string, error) {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return m.CreatedBy, nil
}
