package telemetry

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/weft/pkg/fiber"
	"github.com/vango-dev/weft/pkg/vdom"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "weft").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for commit and cycle durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "weft",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a fiber.Observer that records render cycles as Prometheus
// metrics. One Metrics may observe any number of roots.
//
// Metrics collected:
//   - weft_cycles_total: Counter of started cycles
//   - weft_units_total: Counter of work units by node kind
//   - weft_yields_total: Counter of yields to the scheduler
//   - weft_discards_total: Counter of uncommitted cycles thrown away
//   - weft_commits_total: Counter of commits
//   - weft_host_mutations_total: Counter of host inserts, updates and deletions
//   - weft_effects_total: Counter of effect bodies and cleanups run
//   - weft_commit_duration_seconds: Histogram of time spent committing
//   - weft_cycle_duration_seconds: Histogram of first unit to end of commit
//   - weft_cycle_slices: Histogram of idle periods used per committed cycle
type Metrics struct {
	cycles         prometheus.Counter
	units          *prometheus.CounterVec
	yields         prometheus.Counter
	discards       prometheus.Counter
	commits        prometheus.Counter
	mutations      *prometheus.CounterVec
	effects        *prometheus.CounterVec
	commitDuration prometheus.Histogram
	cycleDuration  prometheus.Histogram
	slices         prometheus.Histogram
}

var _ fiber.Observer = (*Metrics)(nil)

// NewMetrics registers the metrics and returns the observer. Registering
// twice on the same registry panics, so give each Metrics its own registry
// or share one Metrics across roots.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     buckets,
		})
	}

	return &Metrics{
		cycles:         counter("cycles_total", "Total number of render cycles started"),
		units:          counterVec("units_total", "Total number of work units processed", "kind"),
		yields:         counter("yields_total", "Total number of times the work loop yielded with work remaining"),
		discards:       counter("discards_total", "Total number of uncommitted cycles discarded by a newer update"),
		commits:        counter("commits_total", "Total number of commits"),
		mutations:      counterVec("host_mutations_total", "Total number of host tree mutations by operation", "op"),
		effects:        counterVec("effects_total", "Total number of effect callbacks run by phase", "phase"),
		commitDuration: histogram("commit_duration_seconds", "Time spent applying a commit in seconds", config.Buckets),
		cycleDuration:  histogram("cycle_duration_seconds", "Time from a cycle's first unit to the end of its commit in seconds", config.Buckets),
		slices:         histogram("cycle_slices", "Idle periods used per committed cycle", []float64{1, 2, 4, 8, 16, 32, 64}),
	}
}

// OnCycleStart implements fiber.Observer.
func (m *Metrics) OnCycleStart(fiber.CycleInfo) {
	m.cycles.Inc()
}

// OnUnit implements fiber.Observer.
func (m *Metrics) OnUnit(_ fiber.CycleInfo, kind vdom.Kind) {
	m.units.WithLabelValues(strings.ToLower(kind.String())).Inc()
}

// OnYield implements fiber.Observer.
func (m *Metrics) OnYield(fiber.CycleInfo, int) {
	m.yields.Inc()
}

// OnDiscard implements fiber.Observer.
func (m *Metrics) OnDiscard(fiber.CycleInfo) {
	m.discards.Inc()
}

// OnCommit implements fiber.Observer.
func (m *Metrics) OnCommit(s fiber.CommitStats) {
	m.commits.Inc()
	m.mutations.WithLabelValues("insert").Add(float64(s.Inserts))
	m.mutations.WithLabelValues("update").Add(float64(s.Updates))
	m.mutations.WithLabelValues("delete").Add(float64(s.Deletions))
	m.effects.WithLabelValues("run").Add(float64(s.Effects))
	m.effects.WithLabelValues("cleanup").Add(float64(s.Cleanups))
	m.commitDuration.Observe(s.Duration.Seconds())
	m.cycleDuration.Observe(s.Elapsed.Seconds())
	m.slices.Observe(float64(s.Slices))
}
