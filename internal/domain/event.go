package domain

import (
	"strings"
	"time"
)

// Event is a scheduled church event.
type Event struct {
	ID          string
	Title       string
	Description string
	Type        string // "service", "meeting", "conference", "retreat", "wedding", "baptism", "celebration", "other"
	Category    string // "spiritual", "social", "educational", "outreach", "administrative"
	StartsAt    time.Time
	EndsAt      time.Time
	Location    string
	Capacity    int
	CreatedBy   string // owning user id, drives the ownership gate
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var eventTypes = map[string]bool{
	"service": true, "meeting": true, "conference": true, "retreat": true,
	"wedding": true, "baptism": true, "celebration": true, "other": true,
}

var eventCategories = map[string]bool{
	"spiritual": true, "social": true, "educational": true,
	"outreach": true, "administrative": true,
}

// Validate checks that the event is well-formed.
func (e *Event) Validate() error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" || len(e.Title) > 200 {
		return ErrValidation("title is required (max 200 characters)")
	}
	if len(e.Description) > 2000 {
		return ErrValidation("description must be at most 2000 characters")
	}
	if !eventTypes[e.Type] {
		return ErrValidation("invalid event type %q", e.Type)
	}
	if !eventCategories[e.Category] {
		return ErrValidation("invalid event category %q", e.Category)
	}
	if e.StartsAt.IsZero() || e.EndsAt.IsZero() {
		return ErrValidation("start and end times are required")
	}
	if e.EndsAt.Before(e.StartsAt) {
		return ErrValidation("event cannot end before it starts")
	}
	if strings.TrimSpace(e.Location) == "" {
		return ErrValidation("location is required")
	}
	if e.Capacity < 0 {
		return ErrValidation("capacity cannot be negative")
	}
	return nil
}
