package cache

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/stratacache/stratacache/internal/config"
	"github.com/stratacache/stratacache/internal/metrics"
	"github.com/stratacache/stratacache/internal/policy"
	"github.com/stratacache/stratacache/pkg/errors"
	"github.com/stratacache/stratacache/pkg/types"
)

const (
	// trendWindowOps is the number of lookups per trend observation window.
	trendWindowOps = 100

	// healthMinOps is the traffic floor below which the hit rate is not
	// judged by the health check.
	healthMinOps = 100

	// entryOverhead approximates the per-entry bookkeeping bytes beyond
	// the key and value payload.
	entryOverhead = 112
)

// Core is a single bounded-memory cache with a pluggable eviction policy,
// TTL expiry, statistics, lifecycle events, and a background expiry sweep.
// A single mutex serializes all mutating operations, including the access
// metadata updates performed on Get.
type Core struct {
	mu        sync.Mutex
	cfg       *config.AdvancedCacheConfig
	pol       policy.Policy
	name      string
	logger    *slog.Logger
	collector *metrics.Collector

	entries     map[string]*policy.Entry
	insertions  uint64
	memoryUsage int64

	hits      uint64
	misses    uint64
	evictions uint64

	totalAccessTime time.Duration
	accessOps       uint64

	listeners map[types.EventType][]types.EventListener

	window      windowCounters
	lastWindow  *windowSnapshot
	priorWindow *windowSnapshot

	pressured bool

	stopCh       chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	closed       bool
}

// windowCounters accumulates lookup statistics for the current trend
// observation window.
type windowCounters struct {
	ops     uint64
	hits    uint64
	latency time.Duration
}

// windowSnapshot is a completed observation window.
type windowSnapshot struct {
	hitRate    float64
	avgLatency float64 // microseconds
	memory     int64
}

// Option configures a Core at construction.
type Option func(*Core)

// WithName sets the cache name used in logs and metric labels.
func WithName(name string) Option {
	return func(c *Core) { c.name = name }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Core) { c.logger = logger }
}

// WithCollector sets the metrics collector. A nil collector is valid and
// records nothing.
func WithCollector(collector *metrics.Collector) Option {
	return func(c *Core) { c.collector = collector }
}

// New creates a cache core with the given configuration and eviction
// policy. The configuration is validated and a broken cache is never
// constructed.
func New(cfg *config.AdvancedCacheConfig, pol policy.Policy, opts ...Option) (*Core, error) {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pol == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidConfig, "eviction policy is required").
			WithComponent("cache-core")
	}

	c := &Core{
		cfg:       cfg,
		pol:       pol,
		name:      "cache",
		entries:   make(map[string]*policy.Entry),
		listeners: make(map[types.EventType][]types.EventListener),
		stopCh:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default().With("component", "cache-core", "cache", c.name)
	}

	if cfg.CleanupInterval > 0 {
		c.wg.Add(1)
		go c.sweepLoop(cfg.CleanupInterval)
	}

	c.logger.Debug("cache created",
		"max_size", cfg.MaxSize,
		"strategy", pol.Name(),
		"default_ttl", cfg.DefaultTTL,
		"cleanup_interval", cfg.CleanupInterval)

	return c, nil
}

// Get looks up a key. Expired entries count as misses and are removed on
// the spot. On a hit the active policy's access hook updates the entry's
// recency and frequency metadata.
func (c *Core) Get(key string) types.GetResult {
	start := time.Now()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return types.GetResult{Latency: time.Since(start)}
	}

	var events []types.CacheEvent

	entry, ok := c.entries[key]
	if ok && entry.Expired(time.Now()) {
		c.removeLocked(key)
		c.evictions++
		c.collector.RecordEviction(c.name, "ttl")
		events = append(events, newEvent(types.EventEviction, key, map[string]interface{}{"reason": "ttl"}))
		ok = false
	}

	var value interface{}
	if ok {
		c.pol.OnAccess(entry)
		c.hits++
		value = entry.Value
	} else {
		c.misses++
	}

	c.recordOperationLocked()

	latency := time.Since(start)
	c.totalAccessTime += latency
	c.accessOps++

	c.window.ops++
	c.window.latency += latency
	if ok {
		c.window.hits++
	}
	c.rollWindowLocked()

	if ok {
		c.collector.RecordHit(c.name, latency)
	} else {
		c.collector.RecordMiss(c.name, latency)
	}
	c.updateGaugesLocked()
	c.mu.Unlock()

	c.dispatch(events)
	return types.GetResult{Hit: ok, Value: value, Latency: latency}
}

// Set stores a value. Replacing an existing key resets its access
// metadata but keeps its insertion order, so FIFO retains true first-in
// semantics across overwrites. Inserting a new key at capacity first
// evicts candidates chosen by the active policy.
func (c *Core) Set(key string, value interface{}, ttl ...time.Duration) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errors.NewError(errors.ErrCodeCacheShutDown, "cache has been shut down").
			WithComponent("cache-core").
			WithOperation("set")
	}

	effTTL := c.cfg.DefaultTTL
	if len(ttl) > 0 {
		effTTL = ttl[0]
	}

	now := time.Now()
	var events []types.CacheEvent

	if entry, ok := c.entries[key]; ok {
		c.memoryUsage -= entrySize(entry)
		entry.Value = value
		entry.TTL = effTTL
		if effTTL > 0 {
			entry.ExpiresAt = now.Add(effTTL)
		} else {
			entry.ExpiresAt = time.Time{}
		}
		c.pol.OnInsert(entry)
		c.memoryUsage += entrySize(entry)
	} else {
		if len(c.entries) >= c.cfg.MaxSize {
			need := len(c.entries) - c.cfg.MaxSize + 1
			for _, victim := range c.pol.SelectEvictionCandidates(c.entries, need) {
				if _, exists := c.entries[victim]; !exists {
					continue
				}
				c.removeLocked(victim)
				c.evictions++
				c.collector.RecordEviction(c.name, "capacity")
				events = append(events, newEvent(types.EventEviction, victim, map[string]interface{}{"reason": "capacity"}))
			}
		}

		c.insertions++
		entry := &policy.Entry{
			Key:            key,
			Value:          value,
			InsertionOrder: c.insertions,
			TTL:            effTTL,
		}
		if effTTL > 0 {
			entry.ExpiresAt = now.Add(effTTL)
		}
		c.pol.OnInsert(entry)
		c.entries[key] = entry
		c.memoryUsage += entrySize(entry)
	}

	if len(c.entries) > c.cfg.MaxSize {
		panic(errors.Newf(errors.ErrCodeCapacityExceeded,
			"cache %q holds %d entries, max %d", c.name, len(c.entries), c.cfg.MaxSize))
	}

	if ev := c.checkMemoryPressureLocked(); ev != nil {
		events = append(events, *ev)
	}

	c.recordOperationLocked()
	c.updateGaugesLocked()
	c.mu.Unlock()

	c.dispatch(events)
	return nil
}

// Cleanup force-sweeps all expired entries, emitting one eviction event
// per removed key.
func (c *Core) Cleanup() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	now := time.Now()
	var events []types.CacheEvent
	for key, entry := range c.entries {
		if entry.Expired(now) {
			c.removeLocked(key)
			c.evictions++
			c.collector.RecordEviction(c.name, "ttl")
			events = append(events, newEvent(types.EventEviction, key, map[string]interface{}{"reason": "ttl"}))
		}
	}
	c.updateGaugesLocked()
	c.mu.Unlock()

	c.dispatch(events)
}

// Clear removes all entries and resets the hit/miss counters.
func (c *Core) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.entries = make(map[string]*policy.Entry)
	c.memoryUsage = 0
	c.resetCountersLocked()
	c.updateGaugesLocked()
}

// ClearCategory removes all entries whose key starts with the given
// category prefix and resets the hit/miss counters.
func (c *Core) ClearCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	for key := range c.entries {
		if strings.HasPrefix(key, category) {
			c.removeLocked(key)
		}
	}
	c.resetCountersLocked()
	c.updateGaugesLocked()
}

// Stats returns a point-in-time statistics snapshot.
func (c *Core) Stats() types.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

// Metrics returns current statistics plus qualitative trends computed by
// comparing the last completed observation window against the prior one.
func (c *Core) Metrics() types.MetricsReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	report := types.MetricsReport{
		Current: c.statsLocked(),
		Trends: types.MetricsTrends{
			HitRate: types.TrendStable,
			Latency: types.TrendStable,
			Memory:  types.TrendStable,
		},
	}

	if c.lastWindow != nil && c.priorWindow != nil {
		last, prior := c.lastWindow, c.priorWindow
		report.Trends.HitRate = trendOf(last.hitRate, prior.hitRate, 1.0, true)
		report.Trends.Latency = trendOf(last.avgLatency, prior.avgLatency, relEpsilon(prior.avgLatency), false)
		report.Trends.Memory = trendOf(float64(last.memory), float64(prior.memory), relEpsilon(float64(prior.memory)), false)
	}

	return report
}

// AddEventListener registers a listener for the given event type.
func (c *Core) AddEventListener(eventType types.EventType, listener types.EventListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners[eventType] = append(c.listeners[eventType], listener)
}

// HealthCheck reports whether utilization and hit rate are within the
// configured thresholds. It never mutates state.
func (c *Core) HealthCheck() types.HealthReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return types.HealthReport{
			OK:      false,
			Status:  "shut down",
			Details: map[string]string{"shut_down": "true"},
		}
	}

	stats := c.statsLocked()
	details := map[string]string{
		"entries":      fmt.Sprintf("%d", stats.Entries),
		"utilization":  fmt.Sprintf("%.3f", stats.Utilization),
		"hit_rate":     fmt.Sprintf("%.2f", stats.HitRate),
		"memory_usage": fmt.Sprintf("%d", stats.MemoryUsage),
	}

	ok := true
	status := "healthy"

	if c.cfg.MemoryPressureThreshold > 0 && stats.Utilization >= c.cfg.MemoryPressureThreshold {
		ok = false
		status = "memory pressure"
	}

	total := c.hits + c.misses
	if ok && total >= healthMinOps && stats.HitRate < c.cfg.MinHealthyHitRate {
		ok = false
		status = "low hit rate"
	}

	return types.HealthReport{OK: ok, Status: status, Details: details}
}

// CurrentStrategy returns the identifier of the active eviction strategy.
// For the adaptive policy this is the currently selected concrete
// strategy.
func (c *Core) CurrentStrategy() string {
	if a, ok := c.pol.(*policy.Adaptive); ok {
		return a.CurrentStrategy()
	}
	return c.pol.Name()
}

// Shutdown stops the background sweep and releases all entries. It is
// idempotent and safe to call concurrently with in-flight operations,
// which either complete or observe the shut-down state.
func (c *Core) Shutdown() {
	c.shutdownOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.entries = make(map[string]*policy.Entry)
		c.memoryUsage = 0
		c.updateGaugesLocked()
		c.mu.Unlock()

		close(c.stopCh)
		c.wg.Wait()
		c.logger.Debug("cache shut down")
	})
}

// Internal helpers. All *Locked methods require c.mu held.

func (c *Core) statsLocked() types.CacheStats {
	stats := types.CacheStats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Entries:     len(c.entries),
		Capacity:    c.cfg.MaxSize,
		MemoryUsage: c.memoryUsage,
	}

	total := c.hits + c.misses
	if total > 0 {
		stats.HitRate = float64(c.hits) / float64(total) * 100
	}
	if c.cfg.MaxSize > 0 {
		stats.Utilization = float64(len(c.entries)) / float64(c.cfg.MaxSize)
	}
	if c.accessOps > 0 {
		stats.AverageAccessTime = float64(c.totalAccessTime.Nanoseconds()) / float64(c.accessOps) / 1e3
	}

	return stats
}

func (c *Core) removeLocked(key string) {
	entry, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	c.memoryUsage -= entrySize(entry)
}

func (c *Core) resetCountersLocked() {
	c.hits = 0
	c.misses = 0
	c.totalAccessTime = 0
	c.accessOps = 0
	c.window = windowCounters{}
	c.lastWindow = nil
	c.priorWindow = nil
	c.pressured = false
}

func (c *Core) recordOperationLocked() {
	if rec, ok := c.pol.(policy.OperationRecorder); ok {
		rec.RecordOperation(c.entries)
	}
}

func (c *Core) rollWindowLocked() {
	if c.window.ops < trendWindowOps {
		return
	}

	snap := &windowSnapshot{
		hitRate:    float64(c.window.hits) / float64(c.window.ops) * 100,
		avgLatency: float64(c.window.latency.Nanoseconds()) / float64(c.window.ops) / 1e3,
		memory:     c.memoryUsage,
	}
	c.priorWindow = c.lastWindow
	c.lastWindow = snap
	c.window = windowCounters{}
}

func (c *Core) checkMemoryPressureLocked() *types.CacheEvent {
	threshold := c.cfg.MemoryPressureThreshold
	if threshold <= 0 {
		return nil
	}

	utilization := float64(len(c.entries)) / float64(c.cfg.MaxSize)
	if utilization < threshold {
		c.pressured = false
		return nil
	}

	// Edge-triggered: one event per crossing, re-armed when utilization
	// falls back below the threshold.
	if c.pressured {
		return nil
	}
	c.pressured = true

	c.logger.Warn("memory pressure",
		"utilization", utilization,
		"threshold", threshold,
		"memory_usage", c.memoryUsage)

	ev := newEvent(types.EventMemoryPressure, "", map[string]interface{}{
		"utilization":  utilization,
		"threshold":    threshold,
		"memory_usage": c.memoryUsage,
	})
	return &ev
}

func (c *Core) updateGaugesLocked() {
	c.collector.SetEntries(c.name, len(c.entries))
	c.collector.SetMemoryBytes(c.name, c.memoryUsage)
}

func (c *Core) sweepLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Cleanup()

			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return
			}
			stats := c.statsLocked()
			c.mu.Unlock()

			c.dispatch([]types.CacheEvent{
				newEvent(types.EventStatsUpdate, "", map[string]interface{}{"stats": stats}),
			})
		case <-c.stopCh:
			return
		}
	}
}

// dispatch delivers events to registered listeners outside the entry
// store lock. Events are fire-and-forget.
func (c *Core) dispatch(events []types.CacheEvent) {
	if len(events) == 0 {
		return
	}

	c.mu.Lock()
	byType := make(map[types.EventType][]types.EventListener, len(c.listeners))
	for _, ev := range events {
		if _, done := byType[ev.Type]; done {
			continue
		}
		byType[ev.Type] = append([]types.EventListener(nil), c.listeners[ev.Type]...)
	}
	c.mu.Unlock()

	for _, ev := range events {
		for _, listener := range byType[ev.Type] {
			listener(ev)
		}
	}
}

func newEvent(eventType types.EventType, key string, metadata map[string]interface{}) types.CacheEvent {
	return types.CacheEvent{
		Type:      eventType,
		Key:       key,
		Metadata:  metadata,
		Timestamp: time.Now(),
	}
}

func trendOf(current, prior, epsilon float64, higherIsBetter bool) types.Trend {
	delta := current - prior
	if math.Abs(delta) <= epsilon {
		return types.TrendStable
	}
	if (delta > 0) == higherIsBetter {
		return types.TrendImproving
	}
	return types.TrendDegrading
}

// relEpsilon treats changes under 10% of the prior value as noise.
func relEpsilon(prior float64) float64 {
	return math.Abs(prior) * 0.1
}

func entrySize(entry *policy.Entry) int64 {
	return entryOverhead + int64(len(entry.Key)) + valueSize(entry.Value)
}

// valueSize approximates the payload size of a stored value. Opaque types
// get a flat estimate.
func valueSize(value interface{}) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return int64(len(v))
	case []byte:
		return int64(len(v))
	case bool:
		return 1
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return 8
	default:
		return 64
	}
}
