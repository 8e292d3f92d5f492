// Package rediscache provides the Redis-backed cache for resolved
// guideline profiles.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"guidesync/internal/domain/models"
	"guidesync/internal/domain/repositories"
)

// GuidelineCache caches resolver results keyed by normalized journal URL.
// A miss is (nil, nil); the resolver stays the source of truth.
type GuidelineCache struct {
	client *redis.Client
	prefix string
}

// NewGuidelineCache creates a cache from a Redis URL and verifies the
// connection.
func NewGuidelineCache(redisURL string) (*GuidelineCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &GuidelineCache{
		client: client,
		prefix: "guideline:",
	}, nil
}

// NewGuidelineCacheWithClient creates a cache from an existing Redis client
func NewGuidelineCacheWithClient(client *redis.Client) *GuidelineCache {
	return &GuidelineCache{
		client: client,
		prefix: "guideline:",
	}
}

var _ repositories.GuidelineCache = (*GuidelineCache)(nil)

// key generates the Redis key for a journal URL
func (c *GuidelineCache) key(journalURL string) string {
	return c.prefix + journalURL
}

// Get returns the cached profile, or (nil, nil) on a miss.
func (c *GuidelineCache) Get(ctx context.Context, journalURL string) (*models.GuidelineProfile, error) {
	data, err := c.client.Get(ctx, c.key(journalURL)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached profile: %w", err)
	}

	var profile models.GuidelineProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		// A corrupt entry behaves like a miss; the resolver will refill it.
		return nil, nil
	}

	return &profile, nil
}

// Set stores a resolved profile with the given TTL.
func (c *GuidelineCache) Set(ctx context.Context, journalURL string, profile *models.GuidelineProfile, ttl time.Duration) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := c.client.Set(ctx, c.key(journalURL), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache profile: %w", err)
	}

	return nil
}

// Ping verifies the connection is alive
func (c *GuidelineCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client
func (c *GuidelineCache) Close() error {
	return c.client.Close()
}
