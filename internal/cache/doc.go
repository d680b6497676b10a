/*
Package cache implements the adaptive, multi-strategy in-memory cache
engine at the heart of StrataCache.

# Architecture

A Core is a single bounded cache: a mutex-guarded entry store, a pluggable
eviction policy, hit/miss/latency statistics, lifecycle events, and a
background expiry sweep. Three cores compose into a MultiLevel hierarchy:

	┌─────────────────────────────────────────────┐
	│              Consumers                      │
	│   (equation / database / query caches)     │
	└─────────────────────────────────────────────┘
	                      │
	┌─────────────────────────────────────────────┐
	│           MultiLevel Cache                  │
	│   L1 (small, fast)  ← promote on hit        │
	│   L2 (medium)       ← promote on hit        │
	│   L3 (large)                                │
	└─────────────────────────────────────────────┘

Reads probe L1 first and promote one tier per hit; writes go only to the
tier the caller names.

# Eviction

Eviction strategy is pluggable through the policy package: lru, lfu, fifo,
ttl, random, or adaptive. The adaptive meta-policy re-evaluates the
strategy choice every hundred operations based on the access-count
distribution and recency of the entry set.

# Construction

Caches are built through a Factory, either from a named preset or an
explicit configuration:

	factory := cache.NewFactory()
	c, err := factory.Create("performance-optimized")
	if err != nil {
		log.Fatal(err)
	}
	defer c.Shutdown()

	_ = c.Set("reaction:H2+O2", result, 10*time.Minute)
	if r := c.Get("reaction:H2+O2"); r.Hit {
		use(r.Value)
	}

There is no shared global instance: callers own the caches they create and
pass them to whoever needs them.

# Concurrency

A single mutex per core serializes all mutating operations, including the
access-metadata updates performed on Get. The background sweep and the
adaptive policy's evaluation run on their own schedule and take the same
lock only briefly per batch. Shutdown is idempotent and safe to call
concurrently with in-flight operations.
*/
package cache
