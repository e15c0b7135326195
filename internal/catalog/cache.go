// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"pawmatch-workers/internal/common/metrics"
	"pawmatch-workers/pkg/matching"

	"github.com/redis/go-redis/v9"
)

const (
	profileKeyPrefix = "pawmatch:profile:"
	animalKeyPrefix  = "pawmatch:animal:"

	profileCacheName = "profile"
	animalCacheName  = "animal"
)

func ProfileKey(userID string) string { return profileKeyPrefix + userID }
func AnimalKey(id string) string      { return animalKeyPrefix + id }

// Cache keeps profiles and animals as JSON in Redis. A miss returns
// (nil, nil).
type Cache struct {
	client     *redis.Client
	profileTTL time.Duration
	animalTTL  time.Duration
}

func NewCache(client *redis.Client, profileTTL, animalTTL time.Duration) *Cache {
	return &Cache{client: client, profileTTL: profileTTL, animalTTL: animalTTL}
}

func (c *Cache) GetProfile(ctx context.Context, userID string) (*matching.UserProfile, error) {
	var p matching.UserProfile
	ok, err := c.get(ctx, profileCacheName, ProfileKey(userID), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (c *Cache) SetProfile(ctx context.Context, userID string, p matching.UserProfile) error {
	return c.set(ctx, ProfileKey(userID), p, c.profileTTL)
}

func (c *Cache) GetAnimal(ctx context.Context, id string) (*matching.Animal, error) {
	var a matching.Animal
	ok, err := c.get(ctx, animalCacheName, AnimalKey(id), &a)
	if err != nil || !ok {
		return nil, err
	}
	return &a, nil
}

func (c *Cache) SetAnimal(ctx context.Context, a matching.Animal) error {
	return c.set(ctx, AnimalKey(a.ID), a, c.animalTTL)
}

func (c *Cache) get(ctx context.Context, cache, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if stderrors.Is(err, redis.Nil) {
		metrics.CacheMiss(cache)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		// a corrupt entry behaves like a miss and gets overwritten
		metrics.CacheMiss(cache)
		return false, nil
	}
	metrics.CacheHit(cache)
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
