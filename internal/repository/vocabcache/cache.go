package vocabcache

import (
	"container/list"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/marksearch/internal/domain/ranking"
)

// DefaultMaxEntries bounds the cache when no size is configured.
const DefaultMaxEntries = 8

// Compile-time check: LRU implements ranking.Cache.
var _ ranking.Cache = (*LRU)(nil)

type entry struct {
	fingerprint string
	index       *ranking.Index
}

// LRU is a bounded in-memory cache of corpus indexes keyed by fingerprint.
type LRU struct {
	mu         sync.Mutex
	maxEntries int
	ll         *list.List
	items      map[string]*list.Element

	cacheTotal *prometheus.CounterVec
	entries    prometheus.Gauge
	logger     *zap.Logger
}

// New creates an LRU holding at most maxEntries corpora.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"); it and entries may be nil.
func New(maxEntries int, cacheTotal *prometheus.CounterVec, entries prometheus.Gauge, logger *zap.Logger) *LRU {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LRU{
		maxEntries: maxEntries,
		ll:         list.New(),
		items:      make(map[string]*list.Element),
		cacheTotal: cacheTotal,
		entries:    entries,
		logger:     logger,
	}
}

// Get returns the index for a corpus fingerprint and marks it recently used.
func (c *LRU) Get(fingerprint string) (*ranking.Index, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[fingerprint]
	if !ok {
		c.incCache("miss")
		return nil, false
	}
	c.ll.MoveToFront(el)
	c.incCache("hit")
	return el.Value.(*entry).index, true
}

// Put stores an index, evicting the least recently used corpus when full.
func (c *LRU) Put(fingerprint string, idx *ranking.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[fingerprint]; ok {
		el.Value.(*entry).index = idx
		c.ll.MoveToFront(el)
		return
	}

	c.items[fingerprint] = c.ll.PushFront(&entry{fingerprint: fingerprint, index: idx})
	for c.ll.Len() > c.maxEntries {
		oldest := c.ll.Back()
		e := oldest.Value.(*entry)
		c.ll.Remove(oldest)
		delete(c.items, e.fingerprint)
		c.logger.Debug("vocabulary cache eviction",
			zap.String("fingerprint", e.fingerprint),
			zap.Int("vocabulary_size", e.index.Vocabulary.Len()),
			zap.Int("documents", len(e.index.Vectors)),
		)
	}
	c.setEntries()
}

// Len returns the number of cached corpora.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Purge drops every entry.
func (c *LRU) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	clear(c.items)
	c.setEntries()
}

func (c *LRU) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *LRU) setEntries() {
	if c.entries != nil {
		c.entries.Set(float64(c.ll.Len()))
	}
}
