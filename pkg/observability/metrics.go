package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/algebra/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "algebra"

// Metrics holds the collectors fed by Hooks.
type Metrics struct {
	RulesApplied *prometheus.CounterVec
	Reductions   *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RulesApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "rules_applied_total",
				Help:      "Total number of rule applications",
			},
			[]string{"tag", "rule"},
		),
		Reductions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "reductions_total",
				Help:      "Total number of top-level reductions",
			},
			[]string{"tag", "cache_hit"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "reduction_duration_seconds",
				Help:      "Duration of top-level reductions",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"tag"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.RulesApplied, m.Reductions, m.Duration)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRuleApplied: func(_ context.Context, e *domain.RuleEvent) {
			m.RulesApplied.WithLabelValues(e.Tag.Short(), e.Rule).Inc()
		},
		OnReduce: func(_ context.Context, e *domain.ReduceEvent) {
			tag := e.Tag.Short()
			m.Reductions.WithLabelValues(tag, strconv.FormatBool(e.CacheHit)).Inc()
			m.Duration.WithLabelValues(tag).Observe(e.Duration.Seconds())
		},
	}
}
