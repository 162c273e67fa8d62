package bookmark

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/marksearch/internal/domain"
	dombm "github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

// Service handles bookmark CRUD over the configured source.
type Service struct {
	repo  Repository
	newID func() string
}

// New creates a bookmark service.
func New(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// Create stores a bookmark under a freshly generated ID.
func (s *Service) Create(ctx context.Context, title, rawURL string, folder []string) (dombm.Bookmark, error) {
	b, _, err := s.Save(ctx, s.newID(), title, rawURL, folder)
	return b, err
}

// Save validates and upserts a bookmark. Returns true if it was created.
func (s *Service) Save(
	ctx context.Context, id, title, rawURL string, folder []string,
) (dombm.Bookmark, bool, error) {
	b, err := dombm.New(id, title, rawURL, folder)
	if err != nil {
		return dombm.Bookmark{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	created, err := s.repo.Save(ctx, b)
	if err != nil {
		return dombm.Bookmark{}, false, fmt.Errorf("save bookmark: %w", err)
	}
	return b, created, nil
}

// Get returns a bookmark by ID.
func (s *Service) Get(ctx context.Context, id string) (dombm.Bookmark, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return dombm.Bookmark{}, fmt.Errorf("get bookmark: %w", err)
	}
	return b, nil
}

// Delete removes a bookmark.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// List returns every bookmark in source order.
func (s *Service) List(ctx context.Context) ([]dombm.Bookmark, error) {
	bookmarks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}
