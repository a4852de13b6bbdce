package cache

import (
	"context"
	"errors"
	"time"

	"github.com/lyricverse-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is a TTL cache at the data-access boundary. Lookups that miss
// or fail return ok=false so callers always fall through to the store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, keys ...string)
	Close() error
}

// redisCache is the concrete redis-backed implementation
type redisCache struct {
	db  *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// Open connects to redis and verifies the connection with a ping.
// When no address is configured it returns a no-op cache, so callers
// never need to branch on whether caching is enabled.
func Open(ctx context.Context, cfg *config.CacheConfig, log zerolog.Logger) (Cache, error) {
	if cfg.Addr == "" {
		log.Info().Msg("Listing cache disabled (no REDIS_ADDR)")
		return NopCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("Listing cache connected")

	return &redisCache{
		db:  client,
		ttl: cfg.TTL,
		log: log.With().Str("component", "cache").Logger(),
	}, nil
}

// Get looks up a key, treating any redis failure as a miss
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.db.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return nil, false
	}
	return value, true
}

// Set stores a value under the configured TTL
func (c *redisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.db.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Delete drops keys, used for invalidation after mutating writes
func (c *redisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.db.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("Cache invalidation failed")
	}
}

// Close closes the redis client
func (c *redisCache) Close() error {
	return c.db.Close()
}

// NopCache is used when caching is disabled; every lookup misses
type NopCache struct{}

func (NopCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (NopCache) Set(ctx context.Context, key string, value []byte)  {}
func (NopCache) Delete(ctx context.Context, keys ...string)         {}
func (NopCache) Close() error                                       { return nil }
