package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	translationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "translatord",
			Subsystem: "engine",
			Name:      "translations_total",
			Help:      "Translation requests by direction and outcome",
		},
		[]string{"direction", "status"},
	)

	translationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "translatord",
			Subsystem: "engine",
			Name:      "translation_duration_seconds",
			Help:      "End-to-end duration of successful translations",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	generatedTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "translatord",
			Subsystem: "engine",
			Name:      "generated_tokens_total",
			Help:      "Tokens generated across all requests",
		},
	)

	forwardPasses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "translatord",
			Subsystem: "engine",
			Name:      "forward_passes_total",
			Help:      "Forward passes submitted to the model backend",
		},
	)
)

func init() {
	prometheus.MustRegister(translationsTotal, translationDuration, generatedTokens, forwardPasses)
}
