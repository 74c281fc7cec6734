// Package metrics counts what the scene pipeline did: which visual tier
// served each scene, how AI image requests ended and how many scenes were
// built or patched.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const namespace = "nva"

// Collector owns a private registry so several collectors can coexist in
// one process (tests, repeated CLI runs).
type Collector struct {
	registry *prometheus.Registry

	visualResolutions   *prometheus.CounterVec
	aiImageRequests     *prometheus.CounterVec
	scenesProcessed     *prometheus.CounterVec
	stockSearchDuration prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates and registers all pipeline metrics
func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		logger:   logger.With(zap.String("component", "metrics")),
	}

	c.visualResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visual_resolutions_total",
			Help:      "Visual assets resolved, by fallback tier",
		},
		[]string{"tier"},
	)
	c.aiImageRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_image_requests_total",
			Help:      "AI image generation requests, by outcome",
		},
		[]string{"outcome"},
	)
	c.scenesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenes_processed_total",
			Help:      "Scenes appended (batch) or patched (targeted)",
		},
		[]string{"mode"},
	)
	c.stockSearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stock_search_duration_seconds",
			Help:      "Stock media search round-trip time",
			Buckets:   prometheus.DefBuckets,
		},
	)

	c.registry.MustRegister(
		c.visualResolutions,
		c.aiImageRequests,
		c.scenesProcessed,
		c.stockSearchDuration,
	)
	return c
}

// Registry exposes the underlying registry for gathering
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordVisualResolution counts one resolution served by tier
func (c *Collector) RecordVisualResolution(tier string) {
	if c == nil {
		return
	}
	c.visualResolutions.WithLabelValues(tier).Inc()
}

// RecordAIImage counts one AI image request; outcome is "success" or "fallback"
func (c *Collector) RecordAIImage(outcome string) {
	if c == nil {
		return
	}
	c.aiImageRequests.WithLabelValues(outcome).Inc()
}

// RecordSceneProcessed counts one scene; mode is "batch" or "targeted"
func (c *Collector) RecordSceneProcessed(mode string) {
	if c == nil {
		return
	}
	c.scenesProcessed.WithLabelValues(mode).Inc()
}

// ObserveStockSearch records how long one search request took
func (c *Collector) ObserveStockSearch(d time.Duration) {
	if c == nil {
		return
	}
	c.stockSearchDuration.Observe(d.Seconds())
}

// WriteTextfile dumps the registry in the Prometheus text format
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		c.logger.Warn("failed to write metrics file", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}
