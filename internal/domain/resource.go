package domain

import "context"

// ResourceKind names a category of owned resources for the ownership gate.
// The mapping from kind to owner lookup is registered explicitly at wiring
// time and validated at startup. Resolution never falls back to inspecting
// request paths.
type ResourceKind string

const (
	ResourceMember ResourceKind = "member"
	ResourceEvent  ResourceKind = "event"
	ResourceAsset  ResourceKind = "asset"
)

// OwnerResolver returns the owning user id for a resource, or a
// NotFoundError when the resource does not exist.
type OwnerResolver func(ctx context.Context, id string) (string, error)

// OwnerResolvers maps each resource kind to its owner lookup.
type OwnerResolvers map[ResourceKind]OwnerResolver

// Validate checks that every kind in kinds has a registered resolver.
// An unmapped kind is a configuration error, caught at startup.
func (m OwnerResolvers) Validate(kinds ...ResourceKind) error {
	for _, k := range kinds {
		if _, ok := m[k]; !ok {
			return ErrValidation("no owner resolver registered for resource kind %q", k)
		}
	}
	return nil
}
