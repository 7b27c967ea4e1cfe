package dispatcher

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of a dispatched request, as they're labeled in metrics and logs.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeRedirect = "redirect"
	OutcomeError    = "error"
	OutcomePanic    = "panic"
	OutcomeLimited  = "limited"
)

// Metrics are the dispatcher's Prometheus collectors.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them, unless reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "waves",
				Name:      "requests_total",
				Help:      "Dispatched requests by resolved method and outcome.",
			},
			[]string{"method", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "waves",
				Name:      "request_duration_seconds",
				Help:      "Time spent dispatching a request, including the session write.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration)
	}

	return m
}

func (m *Metrics) observe(method, outcome string, seconds float64) {
	if m == nil {
		return
	}

	m.Requests.WithLabelValues(method, outcome).Inc()
	m.Duration.WithLabelValues(method).Observe(seconds)
}
