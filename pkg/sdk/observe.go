package metasearch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// batchStats summarizes one fan-out call for logging and metrics.
type batchStats struct {
	op      string // "search" or "images"
	items   int    // queries or keywords submitted
	failed  int    // items that did not succeed
	success bool   // aggregate success as reported to the caller
	failure string // aggregate or first per-item error text
}

type sdkMetrics struct {
	operations *prometheus.CounterVec
	items      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metasearch",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK batch calls by operation and aggregate status.",
		}, []string{"operation", "status"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metasearch",
			Subsystem: "sdk",
			Name:      "items_total",
			Help:      "Queries or keywords processed by the SDK, by outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "metasearch",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK batch call duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.items); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or swaps in the collector already registered
// under the same descriptor so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("metasearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("metasearch: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer logs and meters SDK calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(start time.Time, s batchStats) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if !s.success {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(s.op, status).Inc()
		o.metrics.items.WithLabelValues(s.op, "ok").Add(float64(s.items - s.failed))
		o.metrics.items.WithLabelValues(s.op, "error").Add(float64(s.failed))
		o.metrics.duration.WithLabelValues(s.op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", s.op, "items", s.items, "failed", s.failed, "duration", dur}
	switch {
	case !s.success:
		o.logger.Warn("batch failed", append(attrs, "error", s.failure)...)
	case s.failed > 0:
		o.logger.Info("batch partially failed", append(attrs, "error", s.failure)...)
	default:
		o.logger.Debug("batch completed", attrs...)
	}
}
