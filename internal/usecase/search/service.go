package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/marksearch/internal/domain/ranking"
	"github.com/kailas-cloud/marksearch/internal/domain/search/request"
	"github.com/kailas-cloud/marksearch/internal/domain/search/result"
	"github.com/kailas-cloud/marksearch/internal/logger"
	"github.com/kailas-cloud/marksearch/internal/metrics"
)

// Service ranks the bookmarks of one source against free-text queries.
type Service struct {
	source     Source
	sourceName string
	ranker     *ranking.Ranker
}

// New creates a search service. sourceName labels metrics ("file", "redis").
// ranker may be nil for sequential, uncached ranking.
func New(source Source, sourceName string, ranker *ranking.Ranker) *Service {
	return &Service{source: source, sourceName: sourceName, ranker: ranker}
}

// Search ranks every bookmark by similarity to the query, drops results under
// min_score and cuts to limit. Ties keep source order.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	bookmarks, err := s.source.List(ctx)
	if err != nil {
		metrics.RankingRequestsTotal.WithLabelValues(s.sourceName, "error").Inc()
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	start := time.Now()
	scored, err := ranking.RankScored(s.ranker, req.Query(), bookmarks)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RankingRequestsTotal.WithLabelValues(s.sourceName, "error").Inc()
		return nil, fmt.Errorf("rank bookmarks: %w", err)
	}

	metrics.RankingRequestsTotal.WithLabelValues(s.sourceName, "ok").Inc()
	metrics.RankingDuration.WithLabelValues(s.sourceName).Observe(elapsed.Seconds())
	metrics.RankingCorpusSize.WithLabelValues(s.sourceName).Observe(float64(len(bookmarks)))

	results := make([]result.Result, 0, min(len(scored), req.Limit()))
	for _, sc := range scored {
		if len(results) == req.Limit() {
			break
		}
		// Ranked descending, so everything after the first miss is below the threshold too.
		if sc.Score < req.MinScore() {
			break
		}
		results = append(results, result.New(sc.Doc, sc.Score))
	}

	logger.FromContext(ctx).Debug("bookmarks ranked",
		zap.String("source", s.sourceName),
		zap.Int("corpus", len(bookmarks)),
		zap.Int("returned", len(results)),
		zap.Duration("elapsed", elapsed),
	)

	return results, nil
}
