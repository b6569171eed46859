package mcp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds per-tool invocation metrics.
type Metrics struct {
	invocations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates and registers tool metrics on the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use their own
// registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alignd_tool_invocations_total",
			Help: "Total number of command tool invocations.",
		}, []string{"tool"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alignd_tool_errors_total",
			Help: "Total number of command tool errors.",
		}, []string{"tool"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alignd_tool_duration_seconds",
			Help:    "Duration of command tool invocations.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"tool"}),
	}
}

// Record counts one invocation with its outcome and duration.
func (m *Metrics) Record(tool string, start time.Time, err error) {
	m.invocations.WithLabelValues(tool).Inc()
	m.duration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
	if err != nil {
		m.errors.WithLabelValues(tool).Inc()
	}
}
