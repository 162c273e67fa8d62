package request

import (
	"fmt"
	"math"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 1000
)

// Request is a validated search query.
type Request struct {
	query    string
	limit    int
	minScore float64
}

// New validates and normalizes search parameters.
// An empty query is allowed and ranks every bookmark at zero, preserving source order.
// Defaults: limit=20. Limit is clamped to MaxLimit.
func New(query string, limit int, minScore float64) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if math.IsNaN(minScore) || minScore < 0 || minScore > 1 {
		return Request{}, fmt.Errorf("min_score must be between 0 and 1")
	}

	return Request{query: query, limit: limit, minScore: minScore}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// MinScore returns the minimum similarity threshold.
func (r *Request) MinScore() float64 { return r.minScore }
