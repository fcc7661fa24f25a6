package domain

import (
	"strings"
	"time"
)

// Asset is an item of church property (patrimony registry).
type Asset struct {
	ID         string
	Name       string
	Category   string // "furniture", "equipment", "vehicle", "instrument", "property", "other"
	AcquiredAt *time.Time
	ValueCents int64
	Condition  string // "new", "good", "fair", "poor"
	Location   string
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var assetCategories = map[string]bool{
	"furniture": true, "equipment": true, "vehicle": true,
	"instrument": true, "property": true, "other": true,
}

var assetConditions = map[string]bool{
	"new": true, "good": true, "fair": true, "poor": true,
}

// Validate checks that the asset is well-formed and applies defaults.
func (a *Asset) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" || len(a.Name) > 200 {
		return ErrValidation("asset name is required (max 200 characters)")
	}
	if a.Category == "" {
		a.Category = "other"
	}
	if !assetCategories[a.Category] {
		return ErrValidation("invalid asset category %q", a.Category)
	}
	if a.Condition == "" {
		a.Condition = "good"
	}
	if !assetConditions[a.Condition] {
		return ErrValidation("invalid asset condition %q", a.Condition)
	}
	if a.ValueCents < 0 {
		return ErrValidation("asset value cannot be negative")
	}
	return nil
}
