package dating

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ranking outcome labels
const (
	OutcomeOK             = "ok"
	OutcomeNoCredential   = "no_credential"
	OutcomeTransportError = "transport_error"
	OutcomeMalformed      = "malformed"
)

var (
	rankingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dating_ranking_requests_total",
			Help: "Total number of ranking calls by outcome",
		},
		[]string{"outcome"},
	)

	rankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dating_ranking_duration_seconds",
			Help:    "Latency of calls to the ranking endpoint",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	matchesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dating_matches_returned",
			Help:    "Number of match cards returned per fetch",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	wizardCompletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_wizard_completions_total",
			Help: "Total number of wizard runs merged into a profile",
		},
	)

	profileLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_profile_lookup_failures_total",
			Help: "Matched profiles that could not be resolved",
		},
	)
)
