package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterRankingMetrics_Idempotent(t *testing.T) {
	RegisterRankingMetrics()
	RegisterRankingMetrics() // must not panic on duplicate registration
}

func TestRankingMetrics_Observe(t *testing.T) {
	before := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues("file", "ok"))
	RankingRequestsTotal.WithLabelValues("file", "ok").Inc()
	RankingDuration.WithLabelValues("file").Observe(0.002)
	RankingCorpusSize.WithLabelValues("file").Observe(42)

	if got := testutil.ToFloat64(RankingRequestsTotal.WithLabelValues("file", "ok")); got != before+1 {
		t.Errorf("ranking_requests_total = %f, want %f", got, before+1)
	}
	if testutil.CollectAndCount(RankingDuration) == 0 {
		t.Error("expected ranking_duration_seconds observations")
	}
	if testutil.CollectAndCount(RankingCorpusSize) == 0 {
		t.Error("expected ranking_corpus_documents observations")
	}
}
