// Package catalog assembles the service catalog engine from configuration:
// schema adapter, template merger, metrics, the two cache tiers and the
// lookup service over a store.
package catalog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"servicecatalog/internal/catalog/cache"
	"servicecatalog/internal/catalog/metrics"
	"servicecatalog/internal/catalog/models"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/internal/catalog/schema"
	"servicecatalog/internal/catalog/service"
	"servicecatalog/internal/catalog/template"
	"servicecatalog/internal/platform/config"
	"servicecatalog/pkg/domain"
	"servicecatalog/pkg/platform/circuit"
)

// redisCooldown is how long an open breaker keeps lookups off Redis.
const redisCooldown = 30 * time.Second

type (
	Service     = service.Service
	GetOptions  = service.GetOptions
	ListOptions = service.ListOptions
)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	redis      *redis.Client
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer registers the engine metrics on reg instead of the default
// registerer.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithRedis enables the shared cache tier.
func WithRedis(c *redis.Client) Option {
	return func(o *options) { o.redis = c }
}

// New builds the lookup service over store.
func New(cfg config.CatalogConfig, store ports.Store, opts ...Option) (*Service, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	adapter, err := schema.NewAdapter(domain.SchemaVersion(cfg.MinSchemaVersion))
	if err != nil {
		return nil, err
	}
	kinds, err := ParseTemplateKinds(cfg.InheritableTemplateKinds)
	if err != nil {
		return nil, err
	}
	lang := domain.LanguageFinnish
	if cfg.DefaultLanguage != "" {
		if lang, err = domain.ParseLanguage(cfg.DefaultLanguage); err != nil {
			return nil, fmt.Errorf("catalog.default_language: %w", err)
		}
	}

	m := metrics.New(o.registerer)
	svcOpts := []service.Option{
		service.WithLogger(o.logger),
		service.WithMetrics(m),
		service.WithMerger(template.NewMerger(kinds...)),
		service.WithDefaultLanguage(lang),
		service.WithPaging(cfg.DefaultPageSize, cfg.MaxPageSize),
		service.WithMaxBatch(cfg.MaxBatchSize),
	}
	if cfg.LocalCacheSize > 0 {
		cacheOpts := []cache.Option{cache.WithMetrics(m), cache.WithLogger(o.logger)}
		if o.redis != nil {
			cacheOpts = append(cacheOpts,
				cache.WithRemote(cache.NewRedisTier(o.redis, cfg.CacheTTL)),
				cache.WithBreaker(circuit.New("catalog-redis", circuit.WithCooldown(redisCooldown))),
			)
		}
		local := cache.NewLocalTier(cfg.LocalCacheSize, cfg.CacheTTL)
		svcOpts = append(svcOpts, service.WithCache(cache.New(local, cacheOpts...)))
	}
	return service.New(store, adapter, svcOpts...), nil
}

// ParseTemplateKinds validates the configured inheritable kinds. An empty
// list yields nil, which the merger reads as its default allow-list.
func ParseTemplateKinds(raw []string) ([]models.TemplateKind, error) {
	var kinds []models.TemplateKind
	for _, r := range raw {
		k := models.TemplateKind(r)
		switch k {
		case models.TemplateMunicipality, models.TemplateBusinessSubregion, models.TemplateChurch,
			models.TemplatePrescribedByLegislation, models.TemplateOther:
			kinds = append(kinds, k)
		default:
			return nil, fmt.Errorf("unknown template kind %q", r)
		}
	}
	return kinds, nil
}
