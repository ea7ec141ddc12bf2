package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vasanta-estates/listings-api/internal/models"
)

// keyPrefix versions the cache namespace; bump it when the cached
// representation changes shape.
const keyPrefix = "listings:v1:"

// ListingCache is a cache-aside layer over listing search results. The
// key is derived from the criteria snapshot itself, so an entry can only
// ever be served back to an identical filter selection; stale criteria
// can never shadow results for newer ones.
//
// A nil *ListingCache is valid and behaves as a cache that always misses,
// which is how the service runs when Redis is not configured.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a ListingCache with the given TTL.
func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

// Key derives the deterministic cache key for a criteria snapshot.
func Key(criteria models.FilterCriteria) string {
	// FilterCriteria has a fixed field order, so its JSON encoding is
	// canonical and equal snapshots always hash identically.
	raw, _ := json.Marshal(criteria)
	sum := sha256.Sum256(raw)
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached result set for the criteria, or ok=false on a
// miss. Decode failures count as misses so a corrupt entry just falls
// through to the store.
func (c *ListingCache) Get(ctx context.Context, criteria models.FilterCriteria) ([]models.Property, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, Key(criteria)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var properties []models.Property
	if err := json.Unmarshal(raw, &properties); err != nil {
		return nil, false, nil
	}
	return properties, true, nil
}

// Set stores a result set under the criteria's key with the cache TTL.
func (c *ListingCache) Set(ctx context.Context, criteria models.FilterCriteria, properties []models.Property) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(criteria), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
