package automaton

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusStatsSink records Value() call durations into a
// prometheus.Histogram, letting a WorkStealingExecutor's per-job
// timing be scraped alongside the rest of a node's metrics.
type PrometheusStatsSink struct {
	histogram prometheus.Histogram
}

// NewPrometheusStatsSink registers a histogram named
// "amrcore_automaton_value_seconds" with reg and returns a sink
// backed by it.
func NewPrometheusStatsSink(reg prometheus.Registerer) (*PrometheusStatsSink, error) {
	histogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "amrcore_automaton_value_seconds",
		Help:    "Wall-clock duration of Automaton.Value() calls executed by a work-stealing executor.",
		Buckets: prometheus.DefBuckets,
	})
	if err := reg.Register(histogram); err != nil {
		return nil, err
	}
	return &PrometheusStatsSink{histogram: histogram}, nil
}

// Observe records d against the histogram.
func (s *PrometheusStatsSink) Observe(d time.Duration) {
	s.histogram.Observe(d.Seconds())
}
