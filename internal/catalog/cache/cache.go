package cache

import (
	"context"
	"errors"
	"log/slog"

	"servicecatalog/internal/catalog/metrics"
	"servicecatalog/internal/catalog/schema"
	"servicecatalog/pkg/platform/circuit"
	"servicecatalog/pkg/platform/sentinel"
	"servicecatalog/pkg/requestcontext"
)

const (
	tierLocal = "local"
	tierRedis = "redis"
)

// Loader produces the value for a missing key. found=false results are not
// cached.
type Loader func(ctx context.Context) (svc *schema.Service, found bool, err error)

// Cache is a read-through cache over a local tier and an optional Redis tier.
// Redis failures are never returned to callers; after repeated failures the
// breaker opens and lookups go straight to the loader until it recovers.
// A nil *Cache calls the loader every time.
type Cache struct {
	local   *LocalTier
	remote  *RedisTier
	breaker *circuit.Breaker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Cache)

// WithRemote adds the shared tier.
func WithRemote(r *RedisTier) Option {
	return func(c *Cache) { c.remote = r }
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Cache) { c.breaker = b }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func New(local *LocalTier, opts ...Option) *Cache {
	c := &Cache{local: local}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.breaker == nil {
		c.breaker = circuit.New(tierRedis)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// GetOrLoad returns the cached value for key, or calls load and stores a
// found result in every tier.
func (c *Cache) GetOrLoad(ctx context.Context, key Key, load Loader) (*schema.Service, bool, error) {
	if c == nil {
		return load(ctx)
	}
	k := key.String()
	if svc, ok := c.get(ctx, k); ok {
		return svc, true, nil
	}
	svc, found, err := load(ctx)
	if err != nil || !found {
		return svc, found, err
	}
	c.set(ctx, k, svc)
	return svc, true, nil
}

func (c *Cache) get(ctx context.Context, key string) (*schema.Service, bool) {
	if svc, ok := c.local.Get(key); ok {
		c.metrics.IncrementCacheHit(tierLocal)
		return svc, true
	}
	c.metrics.IncrementCacheMiss(tierLocal)

	if c.remote == nil || !c.breaker.Allow() {
		return nil, false
	}
	svc, err := c.remote.Get(ctx, key)
	switch {
	case err == nil:
		c.recordSuccess(ctx)
		c.metrics.IncrementCacheHit(tierRedis)
		c.local.Set(key, svc)
		return svc, true
	case errors.Is(err, sentinel.ErrCacheMiss):
		c.recordSuccess(ctx)
		c.metrics.IncrementCacheMiss(tierRedis)
	default:
		c.recordFailure(ctx, err)
		c.metrics.IncrementCacheError(tierRedis)
	}
	return nil, false
}

func (c *Cache) set(ctx context.Context, key string, svc *schema.Service) {
	c.local.Set(key, svc)
	if c.remote == nil || !c.breaker.Allow() {
		return
	}
	if err := c.remote.Set(ctx, key, svc); err != nil {
		c.recordFailure(ctx, err)
		c.metrics.IncrementCacheError(tierRedis)
		return
	}
	c.recordSuccess(ctx)
}

func (c *Cache) recordFailure(ctx context.Context, err error) {
	_, change := c.breaker.RecordFailure()
	if change.Opened {
		c.logger.WarnContext(ctx, "redis cache tier disabled after repeated failures",
			"request_id", requestcontext.RequestID(ctx),
			"breaker", c.breaker.Name(),
			"error", err,
		)
		return
	}
	c.logger.DebugContext(ctx, "redis cache tier error", "error", err)
}

func (c *Cache) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "redis cache tier restored",
			"request_id", requestcontext.RequestID(ctx),
			"breaker", c.breaker.Name(),
		)
	}
}
