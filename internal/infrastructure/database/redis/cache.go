package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/annotext/annotext/internal/infrastructure/monitoring/logging"
	apperrors "github.com/annotext/annotext/pkg/errors"
)

const (
	renderKeyPrefix  = "render:"
	defaultRenderTTL = 24 * time.Hour
)

// ErrKeyMissing is the byte-store miss sentinel.
var ErrKeyMissing = apperrors.New(apperrors.ErrCodeCacheError, "key missing")

// ByteStore is the narrow key-value surface the render cache needs.  The
// production implementation wraps the Redis client; tests use a map.
type ByteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// redisByteStore adapts a Redis client to ByteStore.
type redisByteStore struct {
	rdb redis.Cmdable
}

// NewByteStore wraps a Redis client.
func NewByteStore(rdb redis.Cmdable) ByteStore {
	return &redisByteStore{rdb: rdb}
}

func (s *redisByteStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyMissing
	}
	return raw, err
}

func (s *redisByteStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *redisByteStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// RenderCache caches serialized render results keyed by document
// fingerprint.  Concurrent requests for the same fingerprint are collapsed
// with singleflight so a popular article is rendered once, not per caller.
type RenderCache struct {
	store  ByteStore
	ttl    time.Duration
	logger logging.Logger
	group  singleflight.Group
}

// NewRenderCache builds a render cache with the given TTL; zero uses the
// default of 24 hours.
func NewRenderCache(store ByteStore, ttl time.Duration, logger logging.Logger) *RenderCache {
	if ttl <= 0 {
		ttl = defaultRenderTTL
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RenderCache{store: store, ttl: ttl, logger: logger.Named("render_cache")}
}

// Get returns the cached payload for a fingerprint, reporting a miss
// distinctly from an error.
func (c *RenderCache) Get(ctx context.Context, fingerprint string) ([]byte, bool, error) {
	raw, err := c.store.Get(ctx, renderKeyPrefix+fingerprint)
	if err == ErrKeyMissing {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.New(apperrors.ErrCodeRenderCacheError, "render cache read failed").WithCause(err)
	}
	return raw, true, nil
}

// Set stores a payload under a fingerprint.
func (c *RenderCache) Set(ctx context.Context, fingerprint string, payload []byte) error {
	if err := c.store.Set(ctx, renderKeyPrefix+fingerprint, payload, c.ttl); err != nil {
		return apperrors.New(apperrors.ErrCodeRenderCacheError, "render cache write failed").WithCause(err)
	}
	return nil
}

// GetOrCompute returns the cached payload or computes, stores and returns
// it.  hit reports whether the value came from cache.  Cache failures are
// logged and degrade to computing directly; a broken cache must not break
// rendering.
func (c *RenderCache) GetOrCompute(ctx context.Context, fingerprint string, compute func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	if raw, hit, err := c.Get(ctx, fingerprint); err != nil {
		c.logger.Warn("render cache read failed, computing directly", logging.Err(err))
	} else if hit {
		return raw, true, nil
	}

	v, err, _ := c.group.Do(fingerprint, func() (interface{}, error) {
		// Another flight may have populated the cache while this one
		// queued behind it.
		if raw, hit, err := c.Get(ctx, fingerprint); err == nil && hit {
			return raw, nil
		}
		raw, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, fingerprint, raw); err != nil {
			c.logger.Warn("render cache write failed", logging.Err(err))
		}
		return raw, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

// Invalidate removes a fingerprint's cached payload.
func (c *RenderCache) Invalidate(ctx context.Context, fingerprint string) error {
	if err := c.store.Del(ctx, renderKeyPrefix+fingerprint); err != nil {
		return apperrors.New(apperrors.ErrCodeRenderCacheError, "render cache invalidation failed").WithCause(err)
	}
	return nil
}
