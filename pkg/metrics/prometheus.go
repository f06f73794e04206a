// Package metrics provides Prometheus metrics for the slotcap scoring runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Run lifecycle
	runsStarted   prometheus.Counter
	runsCompleted prometheus.Counter
	runsFailed    prometheus.Counter
	runDuration   prometheus.Histogram

	// Aggregation
	baselineJobs    prometheus.Gauge
	statsStreamed   prometheus.Counter
	agentsScored    prometheus.Counter
	agentsSkipped   prometheus.Counter
	scoreHistogram  prometheus.Histogram
	netPointsErrors prometheus.Counter

	// Budget writes
	budgetWrites *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "slotcap",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_started_total",
		Help:      "Total number of scoring runs started",
	})

	m.runsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_completed_total",
		Help:      "Total number of scoring runs that completed with a summary",
	})

	m.runsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_failed_total",
		Help:      "Total number of scoring runs aborted by a fatal error",
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Histogram of end-to-end run duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.baselineJobs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "baseline_jobs",
		Help:      "Number of jobs with a defined approval baseline in the last run",
	})

	m.statsStreamed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "agent_job_stats_total",
		Help:      "Total number of per-agent-per-job stat records consumed from the stream",
	})

	m.agentsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "agents_scored_total",
		Help:      "Total number of agents flushed through the score transform",
	})

	m.agentsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "agents_skipped_total",
		Help:      "Total number of agents skipped (missing budget or failed write)",
	})

	m.scoreHistogram = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "slot_delta",
		Help:      "Histogram of computed slot deltas",
		Buckets:   []float64{-50, -20, -10, -5, -2, 0, 2, 5, 10, 20, 50},
	})

	m.netPointsErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transform_errors_total",
		Help:      "Total number of score transform contract violations",
	})

	m.budgetWrites = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "budget_writes_total",
		Help:      "Total number of budget write outcomes by kind",
	}, []string{"outcome"})
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordRunStarted increments the started-runs counter.
func RecordRunStarted() { globalManager.runsStarted.Inc() }

// RecordRunCompleted increments the completed-runs counter.
func RecordRunCompleted() { globalManager.runsCompleted.Inc() }

// RecordRunFailed increments the failed-runs counter.
func RecordRunFailed() { globalManager.runsFailed.Inc() }

// RecordRunDuration observes the end-to-end run duration.
func RecordRunDuration(seconds float64) { globalManager.runDuration.Observe(seconds) }

// UpdateBaselineJobs sets the number of jobs in the last materialized baseline.
func UpdateBaselineJobs(n int) { globalManager.baselineJobs.Set(float64(n)) }

// RecordStatStreamed counts one consumed agent/job stat record.
func RecordStatStreamed() { globalManager.statsStreamed.Inc() }

// RecordAgentScored counts one agent flushed through the transform.
func RecordAgentScored() { globalManager.agentsScored.Inc() }

// RecordAgentSkipped counts one agent skipped during budget update.
func RecordAgentSkipped() { globalManager.agentsSkipped.Inc() }

// RecordSlotDelta observes a computed slot delta.
func RecordSlotDelta(delta int) { globalManager.scoreHistogram.Observe(float64(delta)) }

// RecordTransformError counts a score transform contract violation.
func RecordTransformError() { globalManager.netPointsErrors.Inc() }

// RecordBudgetWrite counts a budget write outcome ("modified", "matched", "failed").
func RecordBudgetWrite(outcome string) { globalManager.budgetWrites.WithLabelValues(outcome).Inc() }
