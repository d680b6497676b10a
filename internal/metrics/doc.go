/*
Package metrics provides Prometheus-based instrumentation for the
StrataCache engine.

# Overview

A Collector owns a private Prometheus registry so multiple engines can
coexist in one process without metric name collisions. Every recording
method is safe on a nil or disabled Collector and records nothing, which
lets the cache core instrument unconditionally.

	collector, err := metrics.NewCollector(&metrics.Config{
		Enabled:   true,
		Port:      8080,
		Path:      "/metrics",
		Namespace: "stratacache",
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := collector.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer collector.Stop()

# Exported Metrics

Counters:
  - stratacache_hits_total{cache}: lookups served from the cache
  - stratacache_misses_total{cache}: lookups that found nothing
  - stratacache_evictions_total{cache,reason}: removals by reason
    (capacity, ttl)

Gauges:
  - stratacache_entries{cache}: current entry count
  - stratacache_memory_bytes{cache}: approximate resident bytes

Histograms:
  - stratacache_access_latency_seconds{cache}: lookup latency
    distribution

The cache label is the name given at cache construction, so the tiers of
a multi-level hierarchy (L1, L2, L3) report separately. Keys are never
used as label values; label cardinality stays bounded by the number of
caches.

# Serving

Handler returns a promhttp handler over the private registry for mounting
on an existing mux. Start runs a standalone HTTP server for deployments
that want a dedicated metrics port.
*/
package metrics
