package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	valigo "github.com/reoring/valigo"
)

// Collector holds the Prometheus metrics for validation outcomes.
type Collector struct {
	ValidationsTotal *prometheus.CounterVec
	IssuesTotal      *prometheus.CounterVec
	Duration         prometheus.Histogram
}

// NewCollector registers the validation metrics against reg. Pass
// prometheus.DefaultRegisterer for the global registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "valigo",
				Name:      "validations_total",
				Help:      "Total number of validations by outcome",
			},
			[]string{"outcome"},
		),
		IssuesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "valigo",
				Name:      "issues_total",
				Help:      "Total number of issues by code",
			},
			[]string{"code"},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "valigo",
				Name:      "validation_duration_seconds",
				Help:      "Validation duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
	}
}

// Observe records one validation outcome and its duration.
func (c *Collector) Observe(ok bool, d time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	c.ValidationsTotal.WithLabelValues(outcome).Inc()
	c.Duration.Observe(d.Seconds())
}

// CountIssues increments the per-code issue counters.
func (c *Collector) CountIssues(iss valigo.Issues) {
	for _, it := range iss {
		c.IssuesTotal.WithLabelValues(it.Code).Inc()
	}
}
