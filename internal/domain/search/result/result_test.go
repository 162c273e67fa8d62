package result

import (
	"testing"

	"github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

func TestNew(t *testing.T) {
	b := bookmark.Reconstruct("bm-1", "Go", "https://go.dev", []string{"Dev"})

	r := New(b, 0.75)

	if r.ID() != "bm-1" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Score() != 0.75 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.Bookmark().URL() != "https://go.dev" {
		t.Errorf("Bookmark().URL() = %q", r.Bookmark().URL())
	}
}
