package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the catalog engine.
type Metrics struct {
	// Operation latency by engine operation
	OperationLatency *prometheus.HistogramVec

	// Single lookups by resolution mode and outcome
	ResolutionOutcome *prometheus.CounterVec

	// Cache lookups by tier and result
	CacheLookups *prometheus.CounterVec

	UnsupportedSchema prometheus.Counter
	InconsistentData  prometheus.Counter
}

// Resolution outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// New registers the catalog metrics on reg, or on the default registerer
// when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "servicecatalog_operation_duration_seconds",
			Help:    "Duration of catalog engine operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}), // operation: "get_by_id", "get_by_id_list", "get_by_filter"

		ResolutionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "servicecatalog_resolutions_total",
			Help: "Single service lookups by resolution mode and outcome",
		}, []string{"mode", "outcome"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "servicecatalog_cache_lookups_total",
			Help: "Cache lookups by tier and result",
		}, []string{"tier", "result"}), // tier: "local", "redis"; result: "hit", "miss", "error"

		UnsupportedSchema: factory.NewCounter(prometheus.CounterOpts{
			Name: "servicecatalog_unsupported_schema_requests_total",
			Help: "Requests rejected for an unsupported schema version",
		}),

		InconsistentData: factory.NewCounter(prometheus.CounterOpts{
			Name: "servicecatalog_inconsistent_data_total",
			Help: "Roots found with more than one published version",
		}),
	}
}

// ObserveOperation records the duration of an engine operation.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementResolution records the outcome of a single lookup.
func (m *Metrics) IncrementResolution(mode, outcome string) {
	if m != nil {
		m.ResolutionOutcome.WithLabelValues(mode, outcome).Inc()
	}
}

func (m *Metrics) IncrementCacheHit(tier string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(tier, "hit").Inc()
	}
}

func (m *Metrics) IncrementCacheMiss(tier string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(tier, "miss").Inc()
	}
}

func (m *Metrics) IncrementCacheError(tier string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(tier, "error").Inc()
	}
}

func (m *Metrics) IncrementUnsupportedSchema() {
	if m != nil {
		m.UnsupportedSchema.Inc()
	}
}

func (m *Metrics) IncrementInconsistentData() {
	if m != nil {
		m.InconsistentData.Inc()
	}
}
