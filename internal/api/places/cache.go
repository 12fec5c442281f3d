package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Cache stores lookup results keyed by city, category and size.
type Cache interface {
	Get(ctx context.Context, key string) ([]types.Place, bool)
	Set(ctx context.Context, key string, places []types.Place)
}

var (
	_ Cache  = (*MemoryCache)(nil)
	_ Cache  = (*RedisCache)(nil)
	_ Lookup = (*CachedLookup)(nil)
)

type MemoryCache struct {
	c *cache.Cache
}

func NewMemoryCache(ttl, cleanup time.Duration) *MemoryCache {
	return &MemoryCache{c: cache.New(ttl, cleanup)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]types.Place, bool) {
	v, found := m.c.Get(key)
	if !found {
		return nil, false
	}
	places, ok := v.([]types.Place)
	return clonePlaces(places), ok
}

func (m *MemoryCache) Set(_ context.Context, key string, places []types.Place) {
	m.c.Set(key, clonePlaces(places), cache.DefaultExpiration)
}

// RedisCache shares lookup results between instances.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

func NewRedisCache(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "trip", logger: logger}
}

func (r *RedisCache) key(parts ...string) string {
	return r.prefix + ":" + strings.Join(parts, ":")
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]types.Place, bool) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "Redis cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	var places []types.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		r.logger.WarnContext(ctx, "Discarding corrupt cache entry", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return places, true
}

func (r *RedisCache) Set(ctx context.Context, key string, places []types.Place) {
	raw, err := json.Marshal(places)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to encode cache entry", slog.String("key", key), slog.Any("error", err))
		return
	}
	if err := r.client.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "Redis cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

// CachedLookup serves repeated lookups from a Cache. Failures and empty
// results are not cached so the next request tries the provider again.
type CachedLookup struct {
	next    Lookup
	cache   Cache
	metrics *metrics.AppMetrics
}

func NewCachedLookup(next Lookup, c Cache, m *metrics.AppMetrics) *CachedLookup {
	return &CachedLookup{next: next, cache: c, metrics: m}
}

func (c *CachedLookup) Lookup(ctx context.Context, city, category string, maxResults int) ([]types.Place, error) {
	key := CacheKey(city, category, maxResults)
	if places, ok := c.cache.Get(ctx, key); ok {
		c.metrics.RecordCacheHit(ctx, category)
		return places, nil
	}
	places, err := c.next.Lookup(ctx, city, category, maxResults)
	if err != nil {
		return nil, err
	}
	if len(places) > 0 {
		c.cache.Set(ctx, key, places)
	}
	return places, nil
}

func CacheKey(city, category string, maxResults int) string {
	city = strings.Join(strings.Fields(strings.ToLower(city)), "_")
	return fmt.Sprintf("places:%s:%s:%d", city, category, maxResults)
}

func clonePlaces(in []types.Place) []types.Place {
	if in == nil {
		return nil
	}
	out := make([]types.Place, len(in))
	for i, p := range in {
		p.Categories = append([]string(nil), p.Categories...)
		out[i] = p
	}
	return out
}
