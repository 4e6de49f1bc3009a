// Package metrics provides Prometheus instrumentation for the moderation
// relay. It exposes counters for message outcomes and failures, histograms
// for scoring latency and verdict scores, and a gauge of in-flight events.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MessagesTotal counts handled message events, labeled by outcome:
	// "skipped", "allow", "warn", "delete" or "failed".
	MessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderator_messages_total",
		Help: "Total number of message events handled, by outcome",
	}, []string{"outcome"})

	// ScoringErrorsTotal counts hard pipeline failures by kind.
	ScoringErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderator_scoring_errors_total",
		Help: "Scoring failures that left a message unmoderated, by kind",
	}, []string{"kind"}) // transport | http_status | deserialization | malformed_verdict | other

	// ScoreFallbacksTotal counts verdicts whose score text was not used as-is.
	ScoreFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderator_score_fallbacks_total",
		Help: "Verdicts whose score was substituted or clamped",
	}, []string{"kind"}) // parse_fallback | clamped

	// GatewayErrorsTotal counts failed side-effect requests to the gateway.
	GatewayErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderator_gateway_errors_total",
		Help: "Failed gateway action requests, by action",
	}, []string{"action"}) // delete | reply | post

	// ScoringLatency records the duration of the outbound scoring call.
	ScoringLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "moderator_scoring_latency_seconds",
		Help:    "Latency of the generateContent call in seconds",
		Buckets: []float64{.1, .25, .5, 1, 2, 4, 8, 15, 30},
	})

	// VerdictScore records the distribution of parsed scores.
	VerdictScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "moderator_verdict_score",
		Help:    "Parsed verdict scores",
		Buckets: []float64{0, 100, 200, 400, 600, 800, 850, 950, 1000, 2000},
	})

	// InFlight tracks message events currently being scored.
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "moderator_inflight_events",
		Help: "Message events currently in the moderation pipeline",
	})
)

func init() {
	prometheus.MustRegister(
		MessagesTotal,
		ScoringErrorsTotal,
		ScoreFallbacksTotal,
		GatewayErrorsTotal,
		ScoringLatency,
		VerdictScore,
		InFlight,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
