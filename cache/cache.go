// Package cache marks rendered page data stale after mutations. Invalidation
// is advisory: failures are logged and never fail the mutation.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Pages caches response payloads keyed by route path.
type Pages interface {
	Get(ctx context.Context, path string) ([]byte, bool)
	Set(ctx context.Context, path string, payload []byte, ttl time.Duration)
	Invalidate(ctx context.Context, paths ...string)
}

type redisPages struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) Pages {
	return &redisPages{rdb: rdb}
}

func pageKey(path string) string {
	return "page:" + path
}

func (p *redisPages) Get(ctx context.Context, path string) ([]byte, bool) {
	payload, err := p.rdb.Get(ctx, pageKey(path)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (p *redisPages) Set(ctx context.Context, path string, payload []byte, ttl time.Duration) {
	if err := p.rdb.Set(ctx, pageKey(path), payload, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("page cache set failed")
	}
}

func (p *redisPages) Invalidate(ctx context.Context, paths ...string) {
	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = pageKey(path)
	}
	if err := p.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("paths", paths).Msg("page cache invalidation failed")
	}
}

// Nop satisfies Pages without a Redis connection (tests, local runs).
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
func (Nop) Invalidate(context.Context, ...string)              {}
