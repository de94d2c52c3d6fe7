// Package metrics exposes Prometheus metrics for conversation turns and
// backend calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// turnsTotal counts processed turns.
	// Labels: intent (general, compare_localities, ...), outcome (answered, failed)
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "estatechat",
		Subsystem: "conversation",
		Name:      "turns_total",
		Help:      "Total conversation turns by intent and outcome",
	}, []string{"intent", "outcome"})

	// turnLatencySeconds measures a whole turn including the backend query.
	turnLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "estatechat",
		Subsystem: "conversation",
		Name:      "turn_latency_seconds",
		Help:      "End-to-end turn latency",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"outcome"})

	// matchedLocalities observes how many localities each turn matched.
	matchedLocalities = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "estatechat",
		Subsystem: "conversation",
		Name:      "matched_localities",
		Help:      "Localities matched per turn",
		Buckets:   []float64{0, 1, 2, 3, 5, 8},
	})

	// activeSessions tracks live sessions.
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "estatechat",
		Subsystem: "session",
		Name:      "active",
		Help:      "Live conversation sessions",
	})
)

// Outcome labels
const (
	OutcomeAnswered = "answered"
	OutcomeFailed   = "failed"
)

// RecordTurn records one finished turn
func RecordTurn(intent string, failed bool, areas int, took time.Duration) {
	outcome := OutcomeAnswered
	if failed {
		outcome = OutcomeFailed
	}
	turnsTotal.WithLabelValues(intent, outcome).Inc()
	turnLatencySeconds.WithLabelValues(outcome).Observe(took.Seconds())
	matchedLocalities.Observe(float64(areas))
}

// SetActiveSessions sets the live session gauge
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
