package bookmark

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/marksearch/internal/domain"
	dombm "github.com/kailas-cloud/marksearch/internal/domain/bookmark"
)

// store is the consumer interface for bookmarks (ISP).
type store interface {
	Ping(ctx context.Context) error
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// Repo stores bookmarks as Redis/Valkey hashes.
// Key layout: {prefix}bookmark:{id} and the insertion counter {prefix}bookmark_seq.
type Repo struct {
	store  store
	prefix string
}

// New creates a bookmark repository. An empty prefix falls back to domain.DefaultKeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// Save creates or updates a bookmark. Returns true if created.
// A new bookmark takes the next insertion sequence; updates keep theirs.
func (r *Repo) Save(ctx context.Context, b dombm.Bookmark) (bool, error) {
	key := r.key(b.ID())

	fields, err := bookmarkToHash(b)
	if err != nil {
		return false, err
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		seq, err := r.store.Incr(ctx, r.seqKey())
		if err != nil {
			return false, fmt.Errorf("next seq: %w", err)
		}
		fields[fieldSeq] = strconv.FormatInt(seq, 10)
	}

	if err := r.store.HSet(ctx, key, fields); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}
	return !exists, nil
}

// Get returns a bookmark by ID.
func (r *Repo) Get(ctx context.Context, id string) (dombm.Bookmark, error) {
	key := r.key(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return dombm.Bookmark{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return dombm.Bookmark{}, domain.ErrBookmarkNotFound
	}

	b, _, err := bookmarkFromHash(id, m)
	if err != nil {
		return dombm.Bookmark{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

// Delete removes a bookmark.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrBookmarkNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// List returns every bookmark in insertion order.
func (r *Repo) List(ctx context.Context) ([]dombm.Bookmark, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan bookmarks: %w", err)
	}
	if len(keys) == 0 {
		return []dombm.Bookmark{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi bookmarks: %w", err)
	}

	type row struct {
		b   dombm.Bookmark
		seq int64
	}
	rows := make([]row, 0, len(results))
	for i, m := range results {
		// Deleted between SCAN and HGETALL.
		if len(m) == 0 {
			continue
		}
		b, seq, err := bookmarkFromHash(r.idFromKey(keys[i]), m)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", keys[i], err)
		}
		rows = append(rows, row{b: b, seq: seq})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].seq != rows[j].seq {
			return rows[i].seq < rows[j].seq
		}
		return rows[i].b.ID() < rows[j].b.ID()
	})

	out := make([]dombm.Bookmark, len(rows))
	for i, rw := range rows {
		out[i] = rw.b
	}
	return out, nil
}

// Ping checks the backing store.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "bookmark:" + id
}

func (r *Repo) seqKey() string {
	return r.prefix + "bookmark_seq"
}

func (r *Repo) idFromKey(key string) string {
	return strings.TrimPrefix(key, r.key(""))
}
