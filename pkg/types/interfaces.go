package types

import (
	"time"
)

// Cache defines the uniform caching interface consumed by every client of
// the engine. All implementations are single-process and bounded-memory;
// values live for the lifetime of the owning cache only.
type Cache interface {
	// Get looks up a key. On a hit the active eviction policy's access
	// hook runs and the hit counter is incremented; on a miss the miss
	// counter is incremented.
	Get(key string) GetResult

	// Set stores a value. An optional per-entry TTL overrides the
	// configured default; a TTL of zero means the entry never expires by
	// time. Returns an error only after Shutdown.
	Set(key string, value interface{}, ttl ...time.Duration) error

	// Cleanup force-sweeps expired entries.
	Cleanup()

	// Clear removes every entry and resets the hit/miss counters.
	Clear()

	// Stats returns a point-in-time statistics snapshot.
	Stats() CacheStats

	// Metrics returns the current statistics plus window-over-window
	// trend information.
	Metrics() MetricsReport

	// AddEventListener registers a listener for the given event type.
	AddEventListener(eventType EventType, listener EventListener)

	// HealthCheck reports whether the cache is within its configured
	// thresholds. It does not mutate state.
	HealthCheck() HealthReport

	// Shutdown stops background activity and releases all entries. It is
	// idempotent and safe to call concurrently with in-flight operations.
	Shutdown()
}
