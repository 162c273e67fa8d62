package marksearch

import (
	"time"

	"github.com/kailas-cloud/marksearch/internal/domain/ranking"
	"github.com/kailas-cloud/marksearch/internal/repository/vocabcache"
)

// Document is anything that can be ranked. Only its searchable text is read.
type Document = ranking.Document

// Scored pairs a document with its cosine similarity to the query, in [0, 1].
type Scored[D Document] = ranking.Scored[D]

// Index is the vocabulary and document vectors of one corpus.
type Index = ranking.Index

// Cache memoizes corpus indexes by fingerprint. Implementations must be safe
// for concurrent use.
type Cache = ranking.Cache

// NewMemoryCache returns an in-process LRU cache holding up to maxEntries corpora.
func NewMemoryCache(maxEntries int) Cache {
	return vocabcache.New(maxEntries, nil, nil, nil)
}

// Ranker ranks documents with the configured workers, cache and observability.
// A nil *Ranker ranks sequentially without caching. Safe for concurrent use.
type Ranker struct {
	core *ranking.Ranker
	obs  *observer
}

// New creates a Ranker.
func New(opts ...Option) (*Ranker, error) {
	cfg := &rankerConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	rankOpts := []ranking.Option{ranking.WithWorkers(cfg.workers)}
	if cfg.cache != nil {
		rankOpts = append(rankOpts, ranking.WithCache(cfg.cache))
	}
	return &Ranker{core: ranking.New(rankOpts...), obs: obs}, nil
}

// Score returns the similarity of query to each text, in input order.
func (r *Ranker) Score(query string, texts []string) []float64 {
	start := time.Now()
	scores := r.coreRanker().Score(query, texts)
	r.observer().observe("score", start, len(texts), nil)
	return scores
}

// Rank returns docs reordered by descending similarity to query. Ties keep
// input order; docs is not modified. A nil slice or a nil element yields
// ErrInvalidInput. r may be nil.
func Rank[D Document](r *Ranker, query string, docs []D) ([]D, error) {
	start := time.Now()
	ranked, err := ranking.Rank(r.coreRanker(), query, docs)
	r.observer().observe("rank", start, len(docs), err)
	return ranked, err
}

// RankScored is Rank with each document's score attached.
func RankScored[D Document](r *Ranker, query string, docs []D) ([]Scored[D], error) {
	start := time.Now()
	scored, err := ranking.RankScored(r.coreRanker(), query, docs)
	r.observer().observe("rank_scored", start, len(docs), err)
	return scored, err
}

func (r *Ranker) coreRanker() *ranking.Ranker {
	if r == nil {
		return nil
	}
	return r.core
}

func (r *Ranker) observer() *observer {
	if r == nil {
		return nil
	}
	return r.obs
}
