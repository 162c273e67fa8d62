package marksearch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// libMetrics holds prometheus metrics registered for the library.
type libMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	corpusSize prometheus.Histogram
}

func newLibMetrics(reg prometheus.Registerer) (*libMetrics, error) {
	m := &libMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marksearch",
			Subsystem: "lib",
			Name:      "operations_total",
			Help:      "Total ranking calls by operation and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "marksearch",
			Subsystem: "lib",
			Name:      "operation_duration_seconds",
			Help:      "Ranking call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		corpusSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marksearch",
			Subsystem: "lib",
			Name:      "corpus_documents",
			Help:      "Number of documents per ranking call.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.corpusSize); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("marksearch: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("marksearch: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for ranking calls.
type observer struct {
	logger  *slog.Logger
	metrics *libMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	if logger == nil && reg == nil {
		return nil, nil
	}
	var m *libMetrics
	if reg != nil {
		var err error
		m, err = newLibMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, corpus int, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
		if err == nil {
			o.metrics.corpusSize.Observe(float64(corpus))
		}
	}

	if o.logger != nil {
		if err != nil {
			o.logger.Warn("ranking failed",
				"op", op,
				"documents", corpus,
				"duration", dur,
				"error", err,
			)
		} else {
			o.logger.Debug("ranking completed",
				"op", op,
				"documents", corpus,
				"duration", dur,
			)
		}
	}
}
