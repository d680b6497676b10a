package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes cache engine metrics through a private Prometheus
// registry. A nil Collector is valid and records nothing, so callers can
// instrument unconditionally.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	evictions     *prometheus.CounterVec
	entries       *prometheus.GaugeVec
	memoryBytes   *prometheus.GaugeVec
	accessLatency *prometheus.HistogramVec

	server *http.Server
}

// Config represents metrics configuration.
type Config struct {
	Enabled   bool   `yaml:"enabled"`
	Port      int    `yaml:"port"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
}

// NewCollector creates a new metrics collector.
func NewCollector(config *Config) (*Collector, error) {
	if config == nil {
		config = &Config{
			Enabled:   true,
			Port:      8080,
			Path:      "/metrics",
			Namespace: "stratacache",
		}
	}

	if !config.Enabled {
		return &Collector{config: config}, nil
	}

	registry := prometheus.NewRegistry()

	c := &Collector{
		config:   config,
		registry: registry,
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "hits_total",
			Help:      "Total number of cache hits",
		}, []string{"cache"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "misses_total",
			Help:      "Total number of cache misses",
		}, []string{"cache"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "evictions_total",
			Help:      "Total number of evicted entries by reason",
		}, []string{"cache", "reason"}),
		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "entries",
			Help:      "Current number of cached entries",
		}, []string{"cache"}),
		memoryBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "memory_bytes",
			Help:      "Approximate memory used by cached entries",
		}, []string{"cache"}),
		accessLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "access_latency_seconds",
			Help:      "Latency of cache lookups",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"cache"}),
	}

	for _, collector := range []prometheus.Collector{
		c.hits, c.misses, c.evictions, c.entries, c.memoryBytes, c.accessLatency,
	} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return c, nil
}

func (c *Collector) enabled() bool {
	return c != nil && c.config != nil && c.config.Enabled
}

// RecordHit records a cache hit and its lookup latency.
func (c *Collector) RecordHit(cache string, latency time.Duration) {
	if !c.enabled() {
		return
	}
	c.hits.WithLabelValues(cache).Inc()
	c.accessLatency.WithLabelValues(cache).Observe(latency.Seconds())
}

// RecordMiss records a cache miss and its lookup latency.
func (c *Collector) RecordMiss(cache string, latency time.Duration) {
	if !c.enabled() {
		return
	}
	c.misses.WithLabelValues(cache).Inc()
	c.accessLatency.WithLabelValues(cache).Observe(latency.Seconds())
}

// RecordEviction records an evicted entry with the eviction reason.
func (c *Collector) RecordEviction(cache, reason string) {
	if !c.enabled() {
		return
	}
	c.evictions.WithLabelValues(cache, reason).Inc()
}

// SetEntries updates the current entry count gauge.
func (c *Collector) SetEntries(cache string, count int) {
	if !c.enabled() {
		return
	}
	c.entries.WithLabelValues(cache).Set(float64(count))
}

// SetMemoryBytes updates the approximate memory usage gauge.
func (c *Collector) SetMemoryBytes(cache string, bytes int64) {
	if !c.enabled() {
		return
	}
	c.memoryBytes.WithLabelValues(cache).Set(float64(bytes))
}

// Handler returns an HTTP handler exposing the registry in Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	if !c.enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Start starts the metrics HTTP server. It returns immediately; the server
// runs until Stop or context cancellation.
func (c *Collector) Start(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(c.config.Path, c.Handler())

	c.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", c.config.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return
		}
	}()

	go func() {
		<-ctx.Done()
		_ = c.Stop()
	}()

	return nil
}

// Stop shuts down the metrics HTTP server.
func (c *Collector) Stop() error {
	if c == nil || c.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.server.Shutdown(ctx)
}
