package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ranking Prometheus metrics.
var (
	RankingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marksearch",
			Name:      "ranking_requests_total",
			Help:      "Total number of ranking requests",
		},
		[]string{"source", "status"},
	)

	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marksearch",
			Name:      "ranking_duration_seconds",
			Help:      "Time spent vectorizing and ranking a corpus",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"source"},
	)

	RankingCorpusSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marksearch",
			Name:      "ranking_corpus_documents",
			Help:      "Number of documents ranked per request",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 9), // 1 .. 65536
		},
		[]string{"source"},
	)

	VocabCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marksearch",
			Name:      "vocabulary_cache_total",
			Help:      "Vocabulary cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	VocabCacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "marksearch",
			Name:      "vocabulary_cache_entries",
			Help:      "Corpora currently held in the vocabulary cache",
		},
	)
)

var rankingMetricsRegistered bool

// RegisterRankingMetrics registers Prometheus ranking metrics. Must be called once from main.
func RegisterRankingMetrics() {
	if rankingMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankingRequestsTotal)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(RankingCorpusSize)
	prometheus.MustRegister(VocabCacheTotal)
	prometheus.MustRegister(VocabCacheEntries)
	rankingMetricsRegistered = true
}
