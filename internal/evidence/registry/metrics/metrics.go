package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registry lookups.
type Metrics struct {
	// Upstream call latency by result: "ok", or the error category
	LookupLatency *prometheus.HistogramVec

	// Cache results: "hit", "miss"
	CacheResults *prometheus.CounterVec

	CircuitOpen prometheus.Gauge
}

// New registers the metrics on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LookupLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "moncomptepro_registry_lookup_duration_seconds",
			Help:    "Duration of Sirene lookups by result",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"result"}),

		CacheResults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moncomptepro_registry_cache_total",
			Help: "Registry snapshot cache results",
		}, []string{"result"}),

		CircuitOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "moncomptepro_registry_circuit_open",
			Help: "1 while the registry circuit breaker is open",
		}),
	}
}

func (m *Metrics) ObserveLookup(result string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(result).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementCache(result string) {
	if m != nil {
		m.CacheResults.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) SetCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitOpen.Set(1)
	} else {
		m.CircuitOpen.Set(0)
	}
}
