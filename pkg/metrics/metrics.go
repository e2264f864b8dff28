// Package metrics records Prometheus metrics for distribution and ranking runs.
//
// The CLI runs as a batch job, so metrics are written to a text file for the
// node exporter textfile collector instead of being served over HTTP.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jakechorley/festival-jury/pkg/core/allocator"
)

// Run modes
const (
	ModePreview = "preview"
	ModeCommit  = "commit"
)

// Run outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeInvalid        = "invalid_parameter"
	OutcomeInfeasible     = "infeasible_capacity"
	OutcomeNoEligibleJury = "no_eligible_jury"
	OutcomeError          = "error"
)

// Manager owns a registry and the metrics registered on it
type Manager struct {
	namespace string
	registry  *prometheus.Registry
	now       func() time.Time

	runs             *prometheus.CounterVec
	assignments      prometheus.Gauge
	totalNeeded      prometheus.Gauge
	maxCapacity      prometheus.Gauge
	juryLoadMin      prometheus.Gauge
	juryLoadMax      prometheus.Gauge
	juryLoadAvg      prometheus.Gauge
	filmsRanked      prometheus.Gauge
	lastRunTimestamp *prometheus.GaugeVec
}

// Option applies a configuration option to the Manager
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithClock overrides the time source used for run timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager backed by a fresh registry
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "festival_jury",
		registry:  prometheus.NewRegistry(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "distribution",
		Name:      "runs_total",
		Help:      "Distribution runs by mode and outcome",
	}, []string{"mode", "outcome"})

	m.assignments = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "distribution",
		Name:      "assignments",
		Help:      "Assignments created by the last successful run",
	})

	m.totalNeeded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "distribution",
		Name:      "ratings_needed",
		Help:      "Ratings still needed across all films at the last run",
	})

	m.maxCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "distribution",
		Name:      "capacity",
		Help:      "Jury count times the per-jury limit at the last run",
	})

	m.juryLoadMin = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "distribution",
		Name:      "jury_load_min",
		Help:      "Smallest per-jury load in the last successful run",
	})

	m.juryLoadMax = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "distribution",
		Name:      "jury_load_max",
		Help:      "Largest per-jury load in the last successful run",
	})

	m.juryLoadAvg = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "distribution",
		Name:      "jury_load_avg",
		Help:      "Average per-jury load in the last successful run",
	})

	m.filmsRanked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "films",
		Help:      "Films in the last computed ranking",
	})

	m.lastRunTimestamp = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last run per job",
	}, []string{"job"})
}

// ObserveDistribution records a successful distribution run
func (m *Manager) ObserveDistribution(mode string, result *allocator.Result) {
	m.runs.WithLabelValues(mode, OutcomeSuccess).Inc()
	m.assignments.Set(float64(len(result.Assignments)))
	m.observeFeasibility(result.Feasibility)
	m.juryLoadMin.Set(float64(result.Stats.Min))
	m.juryLoadMax.Set(float64(result.Stats.Max))
	m.juryLoadAvg.Set(result.Stats.Avg)
	m.lastRunTimestamp.WithLabelValues("distribution").Set(float64(m.now().Unix()))
}

// ObserveDistributionFailure records a failed distribution run, classified by error kind
func (m *Manager) ObserveDistributionFailure(mode string, feasibility allocator.Feasibility, err error) {
	m.runs.WithLabelValues(mode, Outcome(err)).Inc()
	if errors.Is(err, allocator.ErrInfeasibleCapacity) {
		m.observeFeasibility(feasibility)
	}
	m.lastRunTimestamp.WithLabelValues("distribution").Set(float64(m.now().Unix()))
}

// ObserveRanking records a computed ranking
func (m *Manager) ObserveRanking(films int) {
	m.filmsRanked.Set(float64(films))
	m.lastRunTimestamp.WithLabelValues("ranking").Set(float64(m.now().Unix()))
}

// WriteTextfile writes every metric in Prometheus text format to path
func (m *Manager) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Manager) observeFeasibility(f allocator.Feasibility) {
	m.totalNeeded.Set(float64(f.TotalNeeded))
	m.maxCapacity.Set(float64(f.MaxCapacity))
}

// Outcome maps a distribution error onto an outcome label
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, allocator.ErrInvalidParameter):
		return OutcomeInvalid
	case errors.Is(err, allocator.ErrInfeasibleCapacity):
		return OutcomeInfeasible
	case errors.Is(err, allocator.ErrNoEligibleJury):
		return OutcomeNoEligibleJury
	default:
		return OutcomeError
	}
}
