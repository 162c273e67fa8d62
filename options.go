package marksearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Ranker.
type Option interface {
	apply(*rankerConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*rankerConfig)

func (f optionFunc) apply(c *rankerConfig) { f(c) }

type rankerConfig struct {
	workers int
	cache   Cache

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithWorkers vectorizes documents on up to n goroutines.
// Default: 1 (sequential).
func WithWorkers(n int) Option {
	return optionFunc(func(c *rankerConfig) {
		c.workers = n
	})
}

// WithCache reuses the vocabulary and document vectors of corpora ranked before.
// Pass nil to disable (default).
func WithCache(cache Cache) Option {
	return optionFunc(func(c *rankerConfig) {
		c.cache = cache
	})
}

// WithLogger enables structured logging for ranking calls.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *rankerConfig) {
		c.logger = l
	})
}

// WithPrometheus registers ranking metrics (call counts, durations, corpus sizes)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *rankerConfig) {
		c.metricsReg = reg
	})
}
