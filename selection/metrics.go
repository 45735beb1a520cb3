package selection

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the prometheus metrics for selections. All methods are
// safe to call on a nil *Metrics.
type Metrics struct {
	Selections       *prometheus.CounterVec
	Errors           *prometheus.CounterVec
	SelectedFeatures *prometheus.GaugeVec
	TraceIterations  *prometheus.HistogramVec
}

// NewMetrics creates and registers all selection metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "featsel_selections_total",
				Help: "Total number of completed feature selections",
			},
			[]string{"policy", "direction", "reason"},
		),

		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "featsel_selection_errors_total",
				Help: "Total number of feature selections that failed",
			},
			[]string{"policy", "kind"},
		),

		SelectedFeatures: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "featsel_selected_features",
				Help: "Number of features chosen by the most recent selection",
			},
			[]string{"policy", "direction"},
		),

		TraceIterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "featsel_trace_iterations",
				Help:    "Number of iterations in the traces that were scanned",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"policy"},
		),
	}

	reg.MustRegister(
		m.Selections,
		m.Errors,
		m.SelectedFeatures,
		m.TraceIterations,
	)

	return m
}

// TrackDecision records a successful selection over a trace of the given length
func (m *Metrics) TrackDecision(d Decision, iterations int) {
	if m == nil {
		return
	}
	policy := d.Policy.String()
	direction := d.Direction.String()

	m.Selections.WithLabelValues(policy, direction, d.Reason.String()).Inc()
	m.SelectedFeatures.WithLabelValues(policy, direction).Set(float64(d.Features.Len()))
	m.TraceIterations.WithLabelValues(policy).Observe(float64(iterations))
}

// TrackError records a failed selection
func (m *Metrics) TrackError(p Policy, err error) {
	if m == nil || err == nil {
		return
	}
	m.Errors.WithLabelValues(p.String(), ErrorKind(err)).Inc()
}
