package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service counters. A fresh registry per instance keeps
// tests independent of global state.
type Metrics struct {
	registry *prometheus.Registry

	ScoreUpdates  prometheus.Counter
	ScoreFlushes  prometheus.Counter
	FlushFailures prometheus.Counter
	Archives      prometheus.Counter
	Restores      prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		ScoreUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "golftrip_score_updates_total",
			Help: "Score cell edits accepted.",
		}),
		ScoreFlushes: factory.NewCounter(prometheus.CounterOpts{
			Name: "golftrip_score_flushes_total",
			Help: "Debounced score batches written to the store.",
		}),
		FlushFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "golftrip_score_flush_failures_total",
			Help: "Debounced score batches that failed to persist and were retained for retry.",
		}),
		Archives: factory.NewCounter(prometheus.CounterOpts{
			Name: "golftrip_archives_total",
			Help: "Matches archived to history.",
		}),
		Restores: factory.NewCounter(prometheus.CounterOpts{
			Name: "golftrip_restores_total",
			Help: "Archives restored to live play.",
		}),
	}
}

// Handler serves the Prometheus exposition endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
