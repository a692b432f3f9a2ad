package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the ranking server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	rows     prometheus.Histogram
}

// NewMetrics creates and registers the server collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "topsis_rank_requests_total",
			Help: "Ranking requests by outcome (ok or error kind).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "topsis_rank_duration_seconds",
			Help:    "Time spent validating and ranking a table.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "topsis_rank_alternatives",
			Help:    "Number of alternatives per ranked table.",
			Buckets: prometheus.ExponentialBuckets(2, 4, 8),
		}),
	}
	m.registry.MustRegister(m.requests, m.duration, m.rows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(outcome string, seconds float64, rows int) {
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
	if outcome == "ok" {
		m.rows.Observe(float64(rows))
	}
}
