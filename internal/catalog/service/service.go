// Package service answers single, id-list and filtered service lookups over
// a store snapshot: resolve, merge the general description, project related
// entities and adapt to the requested schema version.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"servicecatalog/internal/catalog/cache"
	"servicecatalog/internal/catalog/filter"
	"servicecatalog/internal/catalog/metrics"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/internal/catalog/resolver"
	"servicecatalog/internal/catalog/schema"
	"servicecatalog/internal/catalog/template"
	"servicecatalog/pkg/domain"
	dErrors "servicecatalog/pkg/domain-errors"
	"servicecatalog/pkg/requestcontext"
)

const tracerName = "servicecatalog/internal/catalog/service"

// Operation names used for metrics and spans.
const (
	opGetByID     = "get_by_id"
	opGetByIDList = "get_by_id_list"
	opGetByFilter = "get_by_filter"
)

// Service orchestrates catalog lookups.
type Service struct {
	store   ports.Store
	adapter *schema.Adapter
	merger  *template.Merger
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer

	defaultLanguage domain.Language
	defaultPageSize int
	maxPageSize     int
	maxBatch        int
	fanOut          int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCache serves default-flag Published single lookups through c.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithMerger sets the template merger and with it the inheritable kinds.
func WithMerger(m *template.Merger) Option {
	return func(s *Service) {
		s.merger = m
	}
}

// WithDefaultLanguage sets the language used when a request names none.
func WithDefaultLanguage(lang domain.Language) Option {
	return func(s *Service) {
		s.defaultLanguage = lang
	}
}

// WithPaging sets the default and maximum collection page sizes.
func WithPaging(defaultSize, maxSize int) Option {
	return func(s *Service) {
		s.defaultPageSize = defaultSize
		s.maxPageSize = maxSize
	}
}

// WithMaxBatch sets the id-list cap.
func WithMaxBatch(n int) Option {
	return func(s *Service) {
		s.maxBatch = n
	}
}

// WithFanOut bounds the concurrent root assemblies of one id-list request.
func WithFanOut(n int) Option {
	return func(s *Service) {
		s.fanOut = n
	}
}

// New constructs a Service reading from store and rendering with adapter.
func New(store ports.Store, adapter *schema.Adapter, opts ...Option) *Service {
	s := &Service{
		store:           store,
		adapter:         adapter,
		defaultLanguage: domain.LanguageFinnish,
		defaultPageSize: 1000,
		maxPageSize:     1000,
		maxBatch:        filter.DefaultMaxBatch,
		fanOut:          8,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.merger == nil {
		s.merger = template.NewMerger()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// CheckSchemaVersion fails with CodeUnsupportedVersion when v is not served.
func (s *Service) CheckSchemaVersion(v domain.SchemaVersion) error {
	if err := s.adapter.Check(v); err != nil {
		s.metrics.IncrementUnsupportedSchema()
		return err
	}
	return nil
}

func (s *Service) language(lang domain.Language) domain.Language {
	if lang == "" {
		return s.defaultLanguage
	}
	return lang
}

// start opens a span and returns a func that records the outcome.
func (s *Service) start(ctx context.Context, op string) (context.Context, func(err *error)) {
	ctx, span := s.tracer.Start(ctx, "catalog."+op)
	began := time.Now()
	return ctx, func(errp *error) {
		s.metrics.ObserveOperation(op, time.Since(began))
		if err := *errp; err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
			s.logFailure(ctx, op, err)
		}
		span.End()
	}
}

// logFailure logs server-side failures. Caller errors are not logged.
func (s *Service) logFailure(ctx context.Context, op string, err error) {
	if dErrors.IsCallerError(err) {
		return
	}
	var inconsistent *resolver.InconsistentError
	if errors.As(err, &inconsistent) {
		s.metrics.IncrementInconsistentData()
		ids := make([]string, len(inconsistent.VersionIDs))
		for i, id := range inconsistent.VersionIDs {
			ids[i] = id.String()
		}
		s.logger.ErrorContext(ctx, "multiple published versions for root",
			"request_id", requestcontext.RequestID(ctx),
			"operation", op,
			"root_id", inconsistent.RootID.String(),
			"version_ids", ids,
		)
		return
	}
	s.logger.ErrorContext(ctx, "catalog operation failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"error", err,
	)
}

// storeError classifies a store failure. Domain errors pass through.
func storeError(err error, msg string) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
