package ranking

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/kailas-cloud/marksearch/internal/domain"
)

type doc struct {
	id   string
	text string
}

func (d doc) SearchableText() string { return d.text }

type ptrDoc struct{ text string }

func (d *ptrDoc) SearchableText() string { return d.text }

func ids(docs []doc) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.id
	}
	return out
}

func TestRank_ClearWinner(t *testing.T) {
	docs := []doc{
		{"doc1", "alpha project docs"},
		{"doc2", "beta notes"},
	}

	scored, err := RankScored(nil, "alpha", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Doc.id != "doc1" || scored[1].Doc.id != "doc2" {
		t.Fatalf("order = [%s %s], want [doc1 doc2]", scored[0].Doc.id, scored[1].Doc.id)
	}
	if scored[0].Score <= scored[1].Score {
		t.Errorf("doc1 score %f should be strictly above doc2 score %f", scored[0].Score, scored[1].Score)
	}
}

func TestRank_AllZeroKeepsInputOrder(t *testing.T) {
	docs := []doc{{"doc1", "x"}, {"doc2", "y"}}

	scored, err := RankScored(nil, "z", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range scored {
		if s.Score != 0 {
			t.Errorf("%s: score = %f, want 0", s.Doc.id, s.Score)
		}
	}
	got := []string{scored[0].Doc.id, scored[1].Doc.id}
	if !reflect.DeepEqual(got, []string{"doc1", "doc2"}) {
		t.Errorf("order = %v, want [doc1 doc2]", got)
	}
}

func TestRank_IdenticalVectorsTie(t *testing.T) {
	docs := []doc{{"doc1", "cat dog"}, {"doc2", "dog cat"}}

	scored, err := RankScored(nil, "cat dog", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].Doc.id != "doc1" || scored[1].Doc.id != "doc2" {
		t.Fatalf("order = [%s %s], want [doc1 doc2]", scored[0].Doc.id, scored[1].Doc.id)
	}
	if scored[0].Score != scored[1].Score {
		t.Errorf("scores differ: %f vs %f", scored[0].Score, scored[1].Score)
	}
	if math.Abs(scored[0].Score-1) > 1e-9 {
		t.Errorf("score = %f, want 1", scored[0].Score)
	}
}

func TestRank_EmptyCorpus(t *testing.T) {
	got, err := Rank(nil, "anything", []doc{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestRank_EmptyQueryKeepsInputOrder(t *testing.T) {
	docs := []doc{{"a", "zeta"}, {"b", "alpha"}, {"c", "alpha zeta"}}

	got, err := Rank(nil, "", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want input order", ids(got))
	}
}

func TestRank_NilDocumentsIsInvalidInput(t *testing.T) {
	_, err := Rank[doc](nil, "q", nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRank_NilDocumentElementIsInvalidInput(t *testing.T) {
	docs := []Document{doc{"a", "alpha"}, nil}

	_, err := Rank(nil, "alpha", docs)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var ide *domain.InvalidDocumentError
	if !errors.As(err, &ide) || ide.Index != 1 {
		t.Errorf("expected InvalidDocumentError at index 1, got %v", err)
	}
}

func TestRank_TypedNilPointerIsInvalidInput(t *testing.T) {
	docs := []*ptrDoc{{"alpha"}, {"beta"}, nil}

	_, err := Rank(nil, "alpha", docs)
	var ide *domain.InvalidDocumentError
	if !errors.As(err, &ide) || ide.Index != 2 {
		t.Fatalf("expected InvalidDocumentError at index 2, got %v", err)
	}
}

func TestRank_PointerDocuments(t *testing.T) {
	a, b := &ptrDoc{"red apple"}, &ptrDoc{"green pear"}

	got, err := Rank(nil, "pear", []*ptrDoc{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != b || got[1] != a {
		t.Error("expected pear first, same pointers returned")
	}
}

func TestRank_IsPermutation(t *testing.T) {
	docs := []doc{
		{"1", "go concurrency patterns"},
		{"2", "rust ownership"},
		{"3", "go generics"},
		{"4", "python typing"},
		{"5", "go go go"},
	}

	got, err := Rank(nil, "go generics", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(docs) {
		t.Fatalf("len = %d, want %d", len(got), len(docs))
	}
	seen := make(map[string]int)
	for _, d := range got {
		seen[d.id]++
	}
	for _, d := range docs {
		if seen[d.id] != 1 {
			t.Errorf("document %s appears %d times", d.id, seen[d.id])
		}
	}
	if got[0].id != "3" {
		t.Errorf("top = %s, want 3", got[0].id)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	docs := []doc{{"a", "beta"}, {"b", "alpha"}}
	before := append([]doc(nil), docs...)

	if _, err := Rank(nil, "alpha", docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(docs, before) {
		t.Errorf("input reordered: %v", ids(docs))
	}
}

func TestRank_Deterministic(t *testing.T) {
	docs := []doc{
		{"a", "news sports"}, {"b", "sports"}, {"c", "news"}, {"d", "weather"}, {"e", "sports news"},
	}

	first, err := Rank(nil, "sports news", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range 20 {
		got, _ := Rank(nil, "sports news", docs)
		if !reflect.DeepEqual(ids(got), ids(first)) {
			t.Fatalf("order changed: %v vs %v", ids(got), ids(first))
		}
	}
}

func TestRank_StableAmongEqualScores(t *testing.T) {
	docs := []doc{
		{"a", "alpha one"}, {"b", "unrelated"}, {"c", "alpha two"}, {"d", "nothing"}, {"e", "alpha six"},
	}

	got, err := Rank(nil, "alpha", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "c", "e", "b", "d"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestRank_SelfSimilarityIsMaximal(t *testing.T) {
	docs := []doc{
		{"a", "golang http server tutorial"},
		{"b", "HTTP Server, golang tutorial"},
		{"c", "golang tutorial"},
		{"d", "http"},
	}

	scored, err := RankScored(nil, "golang http server tutorial", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(scored[0].Score-1) > 1e-9 {
		t.Errorf("top score = %f, want 1", scored[0].Score)
	}
	for _, s := range scored[2:] {
		if s.Score >= scored[0].Score {
			t.Errorf("%s scored %f, not below exact match", s.Doc.id, s.Score)
		}
	}
}

func TestRank_ZeroVectorSafety(t *testing.T) {
	docs := []doc{{"a", ""}, {"b", "!!!"}, {"c", "alpha"}}

	scored, err := RankScored(nil, "alpha", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range scored {
		if math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
			t.Fatalf("%s: non-finite score %f", s.Doc.id, s.Score)
		}
	}
	if scored[0].Doc.id != "c" {
		t.Errorf("top = %s, want c", scored[0].Doc.id)
	}
}

func TestRank_WorkersMatchSequential(t *testing.T) {
	docs := make([]doc, 97)
	for i := range docs {
		docs[i] = doc{fmt.Sprint(i), fmt.Sprintf("item %d tag%d group%d", i, i%7, i%3)}
	}

	seq, err := RankScored(nil, "tag3 group1", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, workers := range []int{2, 4, 16, 200} {
		par, err := RankScored(New(WithWorkers(workers)), "tag3 group1", docs)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if !reflect.DeepEqual(par, seq) {
			t.Errorf("workers=%d: result differs from sequential", workers)
		}
	}
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]*Index
	gets    int
	hits    int
	puts    int
}

func (c *mapCache) Get(fp string) (*Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	idx, ok := c.entries[fp]
	if ok {
		c.hits++
	}
	return idx, ok
}

func (c *mapCache) Put(fp string, idx *Index) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[fp] = idx
}

func TestRank_CacheReusesIndexUntilCorpusChanges(t *testing.T) {
	cache := &mapCache{entries: make(map[string]*Index)}
	r := New(WithCache(cache))
	docs := []doc{{"a", "alpha"}, {"b", "beta"}}

	first, err := RankScored(r, "beta", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := RankScored(r, "beta", docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result differs from fresh result")
	}
	if cache.puts != 1 || cache.hits != 1 {
		t.Errorf("puts=%d hits=%d, want 1 and 1", cache.puts, cache.hits)
	}

	docs = append(docs, doc{"c", "beta gamma"})
	if _, err := RankScored(r, "beta", docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 2 {
		t.Errorf("corpus change should miss the cache, puts=%d", cache.puts)
	}
}

func TestFingerprint(t *testing.T) {
	base := Fingerprint([]string{"ab", "c"})

	if base != Fingerprint([]string{"ab", "c"}) {
		t.Error("fingerprint not deterministic")
	}
	if base == Fingerprint([]string{"a", "bc"}) {
		t.Error("length prefix should separate texts")
	}
	if base == Fingerprint([]string{"c", "ab"}) {
		t.Error("order should change fingerprint")
	}
	if len(base) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(base))
	}
}

func TestRanker_ConcurrentCalls(t *testing.T) {
	r := New(WithWorkers(4))
	docs := []doc{{"a", "alpha beta"}, {"b", "beta"}, {"c", "gamma"}}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := []string{"alpha", "beta", "gamma"}[i%3]
			if _, err := Rank(r, q, docs); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
}
