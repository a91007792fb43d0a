package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the caching interface. All cache operations go through here.
// Implementations must be safe for concurrent use.
type Cache interface {
	// SeenFingerprint reports whether a fingerprint was recorded by an
	// earlier run. Used as an optional cross-run duplicate filter on top
	// of the in-run deduplicator.
	SeenFingerprint(ctx context.Context, fingerprint string) (bool, error)
	// MarkFingerprints records fingerprints after a successful load.
	MarkFingerprints(ctx context.Context, fingerprints []string) error
	IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// RedisCache implements the Cache interface using go-redis/v9.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new RedisCache from a Redis URL. ttl bounds how
// long marked fingerprints survive across runs.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) SeenFingerprint(ctx context.Context, fingerprint string) (bool, error) {
	return c.client.SIsMember(ctx, FingerprintSetKey(), fingerprint).Result()
}

func (c *RedisCache) MarkFingerprints(ctx context.Context, fingerprints []string) error {
	if len(fingerprints) == 0 {
		return nil
	}
	members := make([]any, len(fingerprints))
	for i, fp := range fingerprints {
		members[i] = fp
	}
	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, FingerprintSetKey(), members...)
	pipe.Expire(ctx, FingerprintSetKey(), c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, expiry)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
