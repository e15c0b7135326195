// internal/catalog/store.go
package catalog

import (
	"context"

	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/pkg/matching"
)

// Store reads through the Redis cache to Postgres. Cache failures are logged
// and never fail a lookup. A nil cache disables caching.
type Store struct {
	repo   *Repository
	cache  *Cache
	logger logger.Logger
}

func NewStore(repo *Repository, cache *Cache, log logger.Logger) *Store {
	return &Store{repo: repo, cache: cache, logger: log}
}

func (s *Store) Repository() *Repository { return s.repo }

// Profile returns the stored profile for userID, or PROFILE_NOT_FOUND.
func (s *Store) Profile(ctx context.Context, userID string) (*matching.UserProfile, error) {
	if s.cache != nil {
		p, err := s.cache.GetProfile(ctx, userID)
		if err != nil {
			s.logger.Warn("profile cache read failed", map[string]interface{}{"userId": userID, "error": err})
		} else if p != nil {
			return p, nil
		}
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheProfile(ctx, userID, *p)
	return p, nil
}

// SaveProfile writes p to Postgres, then refreshes the cache.
func (s *Store) SaveProfile(ctx context.Context, userID string, p matching.UserProfile) error {
	if err := s.repo.SaveProfile(ctx, userID, p); err != nil {
		return err
	}
	s.cacheProfile(ctx, userID, p)
	return nil
}

// Animal returns the catalog entry for id, or ANIMAL_NOT_FOUND.
func (s *Store) Animal(ctx context.Context, id string) (*matching.Animal, error) {
	if s.cache != nil {
		a, err := s.cache.GetAnimal(ctx, id)
		if err != nil {
			s.logger.Warn("animal cache read failed", map[string]interface{}{"animalId": id, "error": err})
		} else if a != nil {
			return a, nil
		}
	}

	a, err := s.repo.GetAnimal(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAnimal(ctx, *a); err != nil {
			s.logger.Warn("animal cache write failed", map[string]interface{}{"animalId": id, "error": err})
		}
	}
	return a, nil
}

func (s *Store) cacheProfile(ctx context.Context, userID string, p matching.UserProfile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetProfile(ctx, userID, p); err != nil {
		s.logger.Warn("profile cache write failed", map[string]interface{}{"userId": userID, "error": err})
	}
}

// The remaining reads and writes go straight to Postgres.
func (s *Store) ListAvailable(ctx context.Context, hdbOnly bool, limit int) ([]matching.Animal, error) {
	return s.repo.ListAvailable(ctx, hdbOnly, limit)
}

func (s *Store) SwipedIDs(ctx context.Context, userID string) ([]string, error) {
	return s.repo.SwipedIDs(ctx, userID)
}

func (s *Store) RecordSwipe(ctx context.Context, sw Swipe) error {
	return s.repo.RecordSwipe(ctx, sw)
}

func (s *Store) Shelter(ctx context.Context, id string) (*Shelter, error) {
	return s.repo.GetShelter(ctx, id)
}
