package domain

import (
	"strings"
	"time"
)

// Member is a church member registry record. Distinct from User: members do
// not log in, they are the people the congregation tracks.
type Member struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Mobile        string
	BirthDate     time.Time
	Gender        string // "M", "F", "other"
	MaritalStatus string // "single", "married", "divorced", "widowed", "partner"
	Address       Address
	Occupation    string
	Status        string // "active", "inactive", "visitor", "transferred"
	CreatedBy     string // owning user id, drives the ownership gate
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Address is a postal address embedded in registry records.
type Address struct {
	Street   string
	Number   string
	District string
	City     string
	State    string
	ZipCode  string
}

var memberStatuses = map[string]bool{
	"active": true, "inactive": true, "visitor": true, "transferred": true,
}

var genders = map[string]bool{"M": true, "F": true, "other": true}

var maritalStatuses = map[string]bool{
	"single": true, "married": true, "divorced": true, "widowed": true, "partner": true,
}

// Validate checks that the member record is well-formed and applies defaults.
func (m *Member) Validate() error {
	m.FirstName = strings.TrimSpace(m.FirstName)
	m.LastName = strings.TrimSpace(m.LastName)
	if m.FirstName == "" || len(m.FirstName) > 100 {
		return ErrValidation("first name is required (max 100 characters)")
	}
	if m.LastName == "" || len(m.LastName) > 100 {
		return ErrValidation("last name is required (max 100 characters)")
	}
	if m.Email != "" {
		m.Email = NormalizeEmail(m.Email)
		if !validEmail(m.Email) {
			return ErrValidation("invalid email address")
		}
	}
	if m.BirthDate.IsZero() {
		return ErrValidation("birth date is required")
	}
	if !genders[m.Gender] {
		return ErrValidation("gender must be one of M, F, other")
	}
	if !maritalStatuses[m.MaritalStatus] {
		return ErrValidation("invalid marital status %q", m.MaritalStatus)
	}
	if m.Status == "" {
		m.Status = "active"
	}
	if !memberStatuses[m.Status] {
		return ErrValidation("invalid member status %q", m.Status)
	}
	return nil
}
