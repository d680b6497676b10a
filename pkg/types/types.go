package types

import (
	"time"
)

// CacheStats represents cache performance statistics. All fields are
// recomputed on demand from running counters; nothing persists across
// restarts.
type CacheStats struct {
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	Evictions   uint64  `json:"evictions"`
	Entries     int     `json:"entries"`
	Capacity    int     `json:"capacity"`
	MemoryUsage int64   `json:"memory_usage"`
	HitRate     float64 `json:"hit_rate"`
	Utilization float64 `json:"utilization"`

	// AverageAccessTime is the mean Get latency in microseconds.
	AverageAccessTime float64 `json:"average_access_time"`
}

// GetResult is the outcome of a single cache lookup.
type GetResult struct {
	Hit     bool          `json:"hit"`
	Value   interface{}   `json:"value,omitempty"`
	Latency time.Duration `json:"latency"`
}

// LevelResult is the outcome of a multi-level lookup. Level names the tier
// that served the hit, or "MISS" when no tier held the key.
type LevelResult struct {
	GetResult
	Level string `json:"level"`
}

// EventType identifies a cache lifecycle event.
type EventType string

const (
	EventEviction       EventType = "eviction"
	EventMemoryPressure EventType = "memory-pressure"
	EventStatsUpdate    EventType = "stats-update"
)

// CacheEvent is an ephemeral notification delivered to registered
// listeners. Events are fire-and-forget: never queued or replayed.
type CacheEvent struct {
	Type      EventType              `json:"type"`
	Key       string                 `json:"key,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventListener receives cache events.
type EventListener func(event CacheEvent)

// Trend is a qualitative direction for a metric between two observation
// windows.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDegrading Trend = "degrading"
)

// MetricsTrends summarizes the direction of the key cache metrics by
// comparing the last completed observation window against the prior one.
type MetricsTrends struct {
	HitRate Trend `json:"hit_rate"`
	Latency Trend `json:"latency"`
	Memory  Trend `json:"memory"`
}

// MetricsReport combines a current statistics snapshot with trend
// information.
type MetricsReport struct {
	Current CacheStats    `json:"current"`
	Trends  MetricsTrends `json:"trends"`
}

// HealthReport describes whether a cache is operating within its
// configured thresholds.
type HealthReport struct {
	OK      bool              `json:"ok"`
	Status  string            `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// MultiLevelStats aggregates statistics across cache tiers with a
// per-tier breakdown.
type MultiLevelStats struct {
	Total  CacheStats            `json:"total"`
	Levels map[string]CacheStats `json:"levels"`
}
