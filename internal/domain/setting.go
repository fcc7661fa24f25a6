package domain

import (
	"strings"
	"time"
)

// Setting is a single church-wide configuration value.
type Setting struct {
	Key       string
	Value     string
	UpdatedBy string
	UpdatedAt time.Time
}

// Validate checks that the setting is well-formed.
func (s *Setting) Validate() error {
	s.Key = strings.TrimSpace(s.Key)
	if s.Key == "" || len(s.Key) > 100 {
		return ErrValidation("setting key is required (max 100 characters)")
	}
	if len(s.Value) > 4000 {
		return ErrValidation("setting value must be at most 4000 characters")
	}
	return nil
}
