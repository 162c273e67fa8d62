package search

import (
	"context"

	dombm "github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

// Source lists the bookmarks a query is ranked against.
type Source interface {
	List(ctx context.Context) ([]dombm.Bookmark, error)
}
