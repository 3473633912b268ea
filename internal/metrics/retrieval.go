package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragtool",
			Name:      "retrieval_requests_total",
			Help:      "Total number of retrieval requests by outcome",
		},
		[]string{"outcome"}, // "matches" / "no_matches" / "service_error"
	)

	RetrievalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ragtool",
			Name:      "retrieval_duration_seconds",
			Help:      "End-to-end retrieval duration (embed + index query) in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
	)

	RetrievalMatchesReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ragtool",
			Name:      "retrieval_matches_returned",
			Help:      "Number of matches returned per retrieval",
			Buckets:   []float64{0, 1, 2, 3},
		},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers Prometheus retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalRequestsTotal)
	prometheus.MustRegister(RetrievalDuration)
	prometheus.MustRegister(RetrievalMatchesReturned)
	retrievalMetricsRegistered = true
}
