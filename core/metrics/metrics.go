package metrics

import (
	"time"

	"bookmyconsultation/core/middleware/chain"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for the metrics endpoint.
type Config struct {
	// Enabled exposes /metrics when true.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Path is where the Prometheus handler is mounted.
	Path string `mapstructure:"path" default:"/metrics"`
}

// FilterMetrics records filter chain activity. It implements chain.Observer.
type FilterMetrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewFilterMetrics creates the collectors and registers them with reg.
func NewFilterMetrics(reg prometheus.Registerer) (*FilterMetrics, error) {
	m := &FilterMetrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookmyconsultation",
			Subsystem: "filter",
			Name:      "invocations_total",
			Help:      "Filter invocations by filter name and outcome (continue, respond, error).",
		}, []string{"filter", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bookmyconsultation",
			Subsystem: "filter",
			Name:      "duration_seconds",
			Help:      "Time spent inside each filter.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"filter"}),
	}

	for _, c := range []prometheus.Collector{m.invocations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveFilter implements chain.Observer.
func (m *FilterMetrics) ObserveFilter(name string, outcome chain.Outcome, err error, elapsed time.Duration) {
	label := outcome.String()
	if err != nil {
		label = "error"
	}
	m.invocations.WithLabelValues(name, label).Inc()
	m.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}
