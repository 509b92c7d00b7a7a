package build

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the build instrumentation. A nil *Metrics records nothing.
type Metrics struct {
	PhaseCallsTotal  *prometheus.CounterVec
	PhaseErrorsTotal *prometheus.CounterVec
	BuildsTotal      *prometheus.CounterVec
	BuildDuration    prometheus.Histogram
	ModulesRealized  prometheus.Gauge
}

// NewMetrics registers the build metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PhaseCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbarch_phase_calls_total",
				Help: "Element phase invocations by phase and element kind",
			},
			[]string{"phase", "kind"},
		),
		PhaseErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbarch_phase_errors_total",
				Help: "Element phase failures by phase and element kind",
			},
			[]string{"phase", "kind"},
		),
		BuildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turbarch_builds_total",
				Help: "Architecture builds by outcome",
			},
			[]string{"status"},
		),
		BuildDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "turbarch_build_duration_seconds",
				Help:    "Duration of a full architecture build",
				Buckets: prometheus.DefBuckets,
			},
		),
		ModulesRealized: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "turbarch_modules_realized",
				Help: "Element modules realized by the last build, across all points",
			},
		),
	}
}

// RecordPhase counts one phase invocation on an element.
func (m *Metrics) RecordPhase(phase, kind string, err error) {
	if m == nil {
		return
	}
	m.PhaseCallsTotal.WithLabelValues(phase, kind).Inc()
	if err != nil {
		m.PhaseErrorsTotal.WithLabelValues(phase, kind).Inc()
	}
}

// RecordBuild records the outcome of a build.
func (m *Metrics) RecordBuild(status string, duration time.Duration, modules int) {
	if m == nil {
		return
	}
	m.BuildsTotal.WithLabelValues(status).Inc()
	m.BuildDuration.Observe(duration.Seconds())
	if status == statusSuccess {
		m.ModulesRealized.Set(float64(modules))
	}
}

const (
	statusSuccess = "success"
	statusFailure = "failure"
)
