package service

import (
	"context"
	"fmt"
	"time"

	"church-platform/internal/domain"
)

// EventService manages the event schedule.
type EventService struct {
	events domain.EventRepository
	audit  *AuditService
}

// NewEventService creates an EventService.
func NewEventService(events domain.EventRepository, audit *AuditService) *EventService {
	return &EventService{events: events, audit: audit}
}

// Create schedules an event organised by the acting user.
func (s *EventService) Create(ctx context.Context, actor domain.ContextUser, e *domain.Event) (*domain.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.CreatedBy = actor.ID
	created, err := s.events.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditCreate,
		Action:       "event created",
		Description:  fmt.Sprintf("event %q scheduled", created.Title),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceEvent),
		ResourceID:   created.ID,
	})
	return created, nil
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// List returns events, optionally restricted to a start window.
func (s *EventService) List(ctx context.Context, from, to *time.Time, page domain.PageRequest) ([]domain.Event, int64, error) {
	return s.events.List(ctx, from, to, page)
}

// Update replaces an event, preserving its organiser.
func (s *EventService) Update(ctx context.Context, actor domain.ContextUser, id string, e *domain.Event) (*domain.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	current, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.ID = current.ID
	e.CreatedBy = current.CreatedBy
	e.CreatedAt = current.CreatedAt

	updated, err := s.events.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditUpdate,
		Action:       "event updated",
		Description:  fmt.Sprintf("event %q updated", updated.Title),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceEvent),
		ResourceID:   updated.ID,
	})
	return updated, nil
}

// Delete cancels an event.
func (s *EventService) Delete(ctx context.Context, actor domain.ContextUser, id string) error {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, domain.AuditEntry{
		Kind:         domain.AuditDelete,
		Action:       "event deleted",
		Description:  fmt.Sprintf("event %q removed", e.Title),
		ActorID:      actor.ID,
		ResourceType: string(domain.ResourceEvent),
		ResourceID:   e.ID,
	})
	return nil
}

// OwnerOf resolves the organiser of an event, for the ownership gate.
func (s *EventService) OwnerOf(ctx context.Context, id string) (string, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return e.CreatedBy, nil
}
