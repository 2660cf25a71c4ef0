package core

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics publishes mutation, violation, and operation counters to a
// Prometheus registry. Like the emitter it is a pure observer: recording is
// fire-and-forget and never fails a mutation.
type Metrics struct {
	mutations  *prometheus.CounterVec
	violations *prometheus.CounterVec
	operations *prometheus.HistogramVec
}

// NewMetrics registers the collectors with the supplied registerer. Passing
// prometheus.DefaultRegisterer wires them into the process default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospitalcore",
			Name:      "mutations_total",
			Help:      "Committed entity mutations by entity type and action.",
		}, []string{"entity", "action"}),
		violations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospitalcore",
			Name:      "rule_violations_total",
			Help:      "Rule violations reported on committed transactions.",
		}, []string{"rule", "severity"}),
		operations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hospitalcore",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency by operation and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
	}
}

// ObserveChanges counts committed changes.
func (m *Metrics) ObserveChanges(changes []Change) {
	if m == nil {
		return
	}
	for _, c := range changes {
		m.mutations.WithLabelValues(string(c.Entity), string(c.Action)).Inc()
	}
}

// ObserveViolations counts rule violations attached to a committed result.
func (m *Metrics) ObserveViolations(res Result) {
	if m == nil {
		return
	}
	for _, v := range res.Violations {
		m.violations.WithLabelValues(v.Rule, string(v.Severity)).Inc()
	}
}

// ObserveOperation records one service operation outcome.
func (m *Metrics) ObserveOperation(operation string, success bool, duration time.Duration) {
	if m == nil || operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	m.operations.WithLabelValues(operation, status).Observe(duration.Seconds())
}
