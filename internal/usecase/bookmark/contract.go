package bookmark

import (
	"context"

	dombm "github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

// Repository defines the storage contract for bookmarks.
// Read-only sources return domain.ErrReadOnlySource from Save and Delete.
type Repository interface {
	Save(ctx context.Context, b dombm.Bookmark) (created bool, err error)
	Get(ctx context.Context, id string) (dombm.Bookmark, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]dombm.Bookmark, error)
}
