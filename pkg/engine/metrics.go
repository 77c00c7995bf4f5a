package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's prometheus instrumentation, registered under
// the coopgame namespace, in the same promauto pattern the teacher uses
// for its per-agent gauges.
type Metrics struct {
	GamesProcessed prometheus.Counter
	GameErrors     *prometheus.CounterVec
	MCSamples      prometheus.Counter
	GameDuration   prometheus.Histogram
}

// NewMetrics registers the engine's counters/histogram against reg. Pass
// prometheus.DefaultRegisterer for the global registry, or a fresh
// *prometheus.Registry in tests to avoid duplicate-registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GamesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coopgame",
			Name:      "games_processed_total",
			Help:      "Number of games fully processed by the engine.",
		}),
		GameErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coopgame",
			Name:      "game_errors_total",
			Help:      "Number of per-game failures, by error category.",
		}, []string{"category"}),
		MCSamples: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coopgame",
			Name:      "mc_samples_total",
			Help:      "Total Monte-Carlo permutation samples drawn across all games.",
		}),
		GameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coopgame",
			Name:      "game_duration_seconds",
			Help:      "Wall-clock time to process one game end to end.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
