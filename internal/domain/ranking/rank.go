package ranking

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"reflect"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/marksearch/internal/domain"
)

// Document is anything that can be ranked. The ranker reads nothing but its searchable text.
type Document interface {
	SearchableText() string
}

// Scored pairs a document with its similarity to the query.
type Scored[D Document] struct {
	Doc   D
	Score float64
}

// Index is the vocabulary of one corpus plus the vector of each of its documents.
// Read-only after construction.
type Index struct {
	Vocabulary Vocabulary
	Vectors    []Vector
}

// Cache memoizes corpus indexes by Fingerprint. Implementations must be safe for concurrent use.
type Cache interface {
	Get(fingerprint string) (*Index, bool)
	Put(fingerprint string, idx *Index)
}

// Ranker scores texts against a query. The zero value and a nil *Ranker both
// rank sequentially without caching.
type Ranker struct {
	workers int
	cache   Cache
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithWorkers vectorizes documents on up to n goroutines. n <= 1 keeps it sequential.
func WithWorkers(n int) Option {
	return func(r *Ranker) { r.workers = n }
}

// WithCache reuses vocabularies and document vectors for corpora seen before.
func WithCache(c Cache) Option {
	return func(r *Ranker) { r.cache = c }
}

// New creates a Ranker.
func New(opts ...Option) *Ranker {
	r := &Ranker{}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Score returns the cosine similarity of query to each text, in input order.
func (r *Ranker) Score(query string, texts []string) []float64 {
	if r == nil {
		r = &Ranker{}
	}
	idx := r.index(texts)
	q := idx.Vocabulary.Vectorize(query)

	scores := make([]float64, len(idx.Vectors))
	for i, d := range idx.Vectors {
		scores[i] = CosineSimilarity(q, d)
	}
	return scores
}

func (r *Ranker) index(texts []string) *Index {
	if r.cache == nil {
		return r.buildIndex(texts)
	}

	fp := Fingerprint(texts)
	if idx, ok := r.cache.Get(fp); ok {
		return idx
	}
	idx := r.buildIndex(texts)
	r.cache.Put(fp, idx)
	return idx
}

func (r *Ranker) buildIndex(texts []string) *Index {
	vocab := BuildVocabulary(texts)
	vectors := make([]Vector, len(texts))

	if r.workers <= 1 || len(texts) < r.workers {
		for i, t := range texts {
			vectors[i] = vocab.Vectorize(t)
		}
		return &Index{Vocabulary: vocab, Vectors: vectors}
	}

	// Each goroutine writes a disjoint slice range; Wait is the only sync point.
	var g errgroup.Group
	g.SetLimit(r.workers)
	chunk := (len(texts) + r.workers - 1) / r.workers
	for start := 0; start < len(texts); start += chunk {
		end := min(start+chunk, len(texts))
		g.Go(func() error {
			for i := start; i < end; i++ {
				vectors[i] = vocab.Vectorize(texts[i])
			}
			return nil
		})
	}
	_ = g.Wait()

	return &Index{Vocabulary: vocab, Vectors: vectors}
}

// Rank returns docs ordered by descending similarity to query.
// Ties keep their input order. r may be nil.
func Rank[D Document](r *Ranker, query string, docs []D) ([]D, error) {
	scored, err := RankScored(r, query, docs)
	if err != nil {
		return nil, err
	}

	out := make([]D, len(scored))
	for i, s := range scored {
		out[i] = s.Doc
	}
	return out, nil
}

// RankScored is Rank with the similarity of every document exposed.
// docs must be non-nil (an empty slice is valid) and contain no nil documents.
func RankScored[D Document](r *Ranker, query string, docs []D) ([]Scored[D], error) {
	if docs == nil {
		return nil, fmt.Errorf("%w: documents are required", domain.ErrInvalidInput)
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		if isNil(d) {
			return nil, domain.NewInvalidDocument(i)
		}
		texts[i] = d.SearchableText()
	}

	scores := r.Score(query, texts)

	out := make([]Scored[D], len(docs))
	for i, d := range docs {
		out[i] = Scored[D]{Doc: d, Score: scores[i]}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return out, nil
}

// isNil reports a nil interface or a typed nil pointer.
func isNil(d any) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Fingerprint identifies a corpus by the SHA-256 of its length-prefixed texts.
// Any change to the texts or their order changes the fingerprint.
func Fingerprint(texts []string) string {
	h := sha256.New()
	var n [8]byte
	for _, t := range texts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(t)))
		_, _ = h.Write(n[:])
		_, _ = io.WriteString(h, t)
	}
	return hex.EncodeToString(h.Sum(nil))
}
