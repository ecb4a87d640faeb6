package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for organization join decisions.
type Metrics struct {
	// Decisions by resolving rule and outcome ("linked", "blocked", or the
	// error code for rejected requests)
	DecisionOutcome *prometheus.CounterVec

	// Full decision latency by operation: "join", "force_join"
	DecisionLatency *prometheus.HistogramVec

	// Directory lookups by directory ("municipal", "school") and status
	DirectoryLookups *prometheus.CounterVec

	// Audit events that could not be emitted
	AuditFailures prometheus.Counter
}

// New registers the metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DecisionOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moncomptepro_join_decisions_total",
			Help: "Organization join decisions by rule and outcome",
		}, []string{"rule", "outcome"}),

		DecisionLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moncomptepro_join_decision_duration_seconds",
			Help:    "Duration of organization join decisions including registry and directory calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),

		DirectoryLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moncomptepro_join_directory_lookups_total",
			Help: "Official contact directory lookups by directory and status",
		}, []string{"directory", "status"}),

		AuditFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "moncomptepro_join_audit_failures_total",
			Help: "Join audit events that failed to emit",
		}),
	}
}

func (m *Metrics) IncrementOutcome(rule, outcome string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(rule, outcome).Inc()
	}
}

func (m *Metrics) ObserveDecisionLatency(operation string, d time.Duration) {
	if m != nil {
		m.DecisionLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementDirectoryLookup(directory, status string) {
	if m != nil {
		m.DirectoryLookups.WithLabelValues(directory, status).Inc()
	}
}

func (m *Metrics) IncrementAuditFailure() {
	if m != nil {
		m.AuditFailures.Inc()
	}
}
