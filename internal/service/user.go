package service

import (
	"context"
	"errors"
	"fmt"

	"church-platform/internal/domain"
)

// UserService implements administrator-level account management.
type UserService struct {
	users domain.UserRepository
	audit *AuditService
}

// NewUserService creates a UserService.
func NewUserService(users domain.UserRepository, audit *AuditService) *UserService {
	return &UserService{users: users, audit: audit}
}

// List returns all accounts, paginated, sorted by name.
func (s *UserService) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	return s.users.List(ctx, page)
}

// Get returns a single account by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies an administrator edit to any account.
func (s *UserService) Update(ctx context.Context, actor domain.ContextUser, id string, req domain.UpdateUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, err := s.users.GetByEmail(ctx, *req.Email); err == nil && existing != nil {
			return nil, domain.ErrConflict("an account with this email already exists")
		} else if err != nil {
			var notFound *domain.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("lookup email: %w", err)
			}
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditUpdate,
		Action:       "user updated",
		Description:  fmt.Sprintf("user %s was updated", updated.Name),
		ActorID:      actor.ID,
		ResourceType: "user",
		ResourceID:   updated.ID,
	})
	return updated, nil
}

// Delete removes an account. An identity may not delete itself.
func (s *UserService) Delete(ctx context.Context, actor domain.ContextUser, id string) error {
	if id == actor.ID {
		return domain.ErrValidation("you cannot delete your own account")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditDelete,
		Action:       "user deleted",
		Description:  fmt.Sprintf("user %s was removed", user.Name),
		ActorID:      actor.ID,
		ResourceType: "user",
		ResourceID:   user.ID,
	})
	return nil
}
