package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"nbadfs/ingestion/internal/metrics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache is a Redis-backed lookup cache for resolved entity IDs. The
// resolver consults it before hitting the database; a nil *Cache is
// valid and disables caching, so the worker degrades gracefully when
// Redis is unavailable.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Config holds Redis configuration
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisCache connects to Redis and returns a Cache
func NewRedisCache(cfg Config) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", client.Options().Addr).Msg("Connected to Redis")

	return &Cache{
		client: client,
		ttl:    24 * time.Hour,
	}, nil
}

// GetID returns a cached entity ID for a lookup key. Cache errors are
// treated as misses; the caller falls through to the database.
func (c *Cache) GetID(ctx context.Context, key string) (int, bool) {
	if c == nil {
		return 0, false
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMissesTotal.Inc()
		return 0, false
	}

	id, err := strconv.Atoi(val)
	if err != nil {
		metrics.CacheMissesTotal.Inc()
		return 0, false
	}

	metrics.CacheHitsTotal.Inc()
	return id, true
}

// SetID caches an entity ID under a lookup key. Failures are logged and
// ignored; the cache is advisory.
func (c *Cache) SetID(ctx context.Context, key string, id int) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key, strconv.Itoa(id), c.ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to cache lookup")
	}
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
