package domain

import "time"

// AuditKind classifies an audit log record.
type AuditKind string

const (
	AuditLogin  AuditKind = "login"
	AuditLogout AuditKind = "logout"
	AuditCreate AuditKind = "create"
	AuditUpdate AuditKind = "update"
	AuditDelete AuditKind = "delete"
	AuditView   AuditKind = "view"
)

// AuditEntry represents a single audit log record.
type AuditEntry struct {
	ID           string
	Kind         AuditKind
	Action       string
	Description  string
	ActorID      string
	IPAddress    string
	UserAgent    string
	ResourceType string
	ResourceID   string
	CreatedAt    time.Time
}

// AuditFilter narrows an audit log listing. Nil fields match everything.
type AuditFilter struct {
	Kind    *AuditKind
	ActorID *string
	Since   *time.Time
	Page    PageRequest
}
