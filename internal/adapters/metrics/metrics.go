// Package metrics implements engine counters on Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.Metrics = (*Collector)(nil)

// Collector implements ports.Metrics on a private Prometheus registry. The
// engine is a library; exposing the registry over HTTP is the driver's call.
type Collector struct {
	registry *prometheus.Registry

	builds    *prometheus.CounterVec
	cacheHits prometheus.Counter
	duration  prometheus.Histogram
}

// New creates a Collector with its own registry.
func New() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mason",
			Name:      "unit_builds_total",
			Help:      "Finished unit builds by terminal status.",
		}, []string{"status"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "mason",
			Name:      "cache_hits_total",
			Help:      "Unit builds skipped because the fingerprint matched.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mason",
			Name:      "unit_build_duration_seconds",
			Help:      "Measured wall time of unit builds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}

// Registry returns the underlying registry for drivers that want to expose it.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveBuild records one finished unit build.
func (c *Collector) ObserveBuild(status string, d time.Duration) {
	c.builds.WithLabelValues(status).Inc()
	c.duration.Observe(d.Seconds())
}

// CacheHit records a fingerprint match that skipped a build.
func (c *Collector) CacheHit() {
	c.cacheHits.Inc()
}
