// internal/catalog/resolve.go
package catalog

import (
	"context"
	stderrors "errors"

	"pawmatch-workers/internal/common/errors"
	"pawmatch-workers/pkg/matching"
)

// Lookup is the read side the matching workers need. *Store implements it.
type Lookup interface {
	Profile(ctx context.Context, userID string) (*matching.UserProfile, error)
	Animal(ctx context.Context, id string) (*matching.Animal, error)
}

var (
	errNoProfile = stderrors.New("either userProfile or userId is required")
	errNoAnimal  = stderrors.New("either animal or animalId is required")
)

// ResolveProfile prefers the inline profile and falls back to loading userID.
// With strict set the profile must pass Validate.
func ResolveProfile(ctx context.Context, l Lookup, inline *matching.UserProfile, userID string, strict bool) (*matching.UserProfile, error) {
	p := inline
	if p == nil {
		if userID == "" || l == nil {
			return nil, errors.NewProfileInvalidError(errNoProfile)
		}
		var err error
		if p, err = l.Profile(ctx, userID); err != nil {
			return nil, err
		}
	}
	if strict {
		if err := p.Validate(); err != nil {
			return nil, errors.NewProfileInvalidError(err)
		}
	}
	return p, nil
}

// ResolveAnimal prefers the inline animal and falls back to loading id.
func ResolveAnimal(ctx context.Context, l Lookup, inline *matching.Animal, id string, strict bool) (*matching.Animal, error) {
	a := inline
	if a == nil {
		if id == "" || l == nil {
			return nil, errors.NewAnimalInvalidError(id, errNoAnimal)
		}
		var err error
		if a, err = l.Animal(ctx, id); err != nil {
			return nil, err
		}
	}
	if strict {
		if err := a.Validate(); err != nil {
			return nil, errors.NewAnimalInvalidError(a.ID, err)
		}
	}
	return a, nil
}
