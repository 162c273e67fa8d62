package result

import "github.com/kailas-cloud/marksearch/internal/domain/bookmark"

// Result is a single ranked bookmark.
type Result struct {
	bookmark bookmark.Bookmark
	score    float64
}

// New creates a search result.
func New(b bookmark.Bookmark, score float64) Result {
	return Result{bookmark: b, score: score}
}

// Bookmark returns the matched bookmark.
func (r *Result) Bookmark() bookmark.Bookmark { return r.bookmark }

// ID returns the bookmark identifier.
func (r *Result) ID() string { return r.bookmark.ID() }

// Score returns the cosine similarity to the query, in [0, 1].
func (r *Result) Score() float64 { return r.score }
