package cache

import (
	"log/slog"
	"time"

	"github.com/stratacache/stratacache/internal/config"
	"github.com/stratacache/stratacache/internal/metrics"
	"github.com/stratacache/stratacache/internal/policy"
	"github.com/stratacache/stratacache/pkg/errors"
	"github.com/stratacache/stratacache/pkg/types"
)

// Level names for the three cache tiers.
const (
	LevelL1 = "L1"
	LevelL2 = "L2"
	LevelL3 = "L3"

	// LevelMiss marks a lookup that missed every tier.
	LevelMiss = "MISS"
)

// MultiLevel composes three independent cache cores into an L1/L2/L3
// hierarchy with promote-on-hit semantics. Writes go to the tier the
// caller names; reads promote one tier at a time.
type MultiLevel struct {
	levels []cacheLevel
	logger *slog.Logger
}

// cacheLevel pairs a tier name with its core.
type cacheLevel struct {
	name string
	core *Core
}

// NewMultiLevel creates a three-tier cache from per-tier configurations.
func NewMultiLevel(cfg *config.MultiLevelConfig, registry *policy.Registry, collector *metrics.Collector) (*MultiLevel, error) {
	if cfg == nil {
		cfg = config.NewDefaultMultiLevel()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = policy.NewRegistry()
	}

	m := &MultiLevel{
		logger: slog.Default().With("component", "multilevel-cache"),
	}

	tiers := []struct {
		name string
		cfg  *config.AdvancedCacheConfig
	}{
		{LevelL1, cfg.L1},
		{LevelL2, cfg.L2},
		{LevelL3, cfg.L3},
	}

	for _, tier := range tiers {
		pol, err := policyFor(tier.cfg, registry)
		if err != nil {
			m.Shutdown()
			return nil, err
		}

		core, err := New(tier.cfg, pol,
			WithName(tier.name),
			WithCollector(collector),
			WithLogger(m.logger.With("level", tier.name)))
		if err != nil {
			m.Shutdown()
			return nil, err
		}

		m.levels = append(m.levels, cacheLevel{name: tier.name, core: core})
	}

	return m, nil
}

// Get probes L1, then L2, then L3. A hit below L1 promotes the value one
// tier up (write-through copy-up); the engine never promotes more than one
// tier per read.
func (m *MultiLevel) Get(key string) types.LevelResult {
	for i, level := range m.levels {
		result := level.core.Get(key)
		if !result.Hit {
			continue
		}

		if i > 0 {
			if err := m.levels[i-1].core.Set(key, result.Value); err != nil {
				m.logger.Debug("promotion skipped", "key", key, "to", m.levels[i-1].name, "error", err)
			}
		}

		return types.LevelResult{GetResult: result, Level: level.name}
	}

	return types.LevelResult{Level: LevelMiss}
}

// Set writes to the named tier only. Callers decide initial placement;
// the engine only moves values on read hits.
func (m *MultiLevel) Set(key string, value interface{}, level string, ttl ...time.Duration) error {
	for _, l := range m.levels {
		if l.name == level {
			return l.core.Set(key, value, ttl...)
		}
	}
	return errors.Newf(errors.ErrCodeLevelNotFound, "cache level %q not found", level).
		WithComponent("multilevel-cache").
		WithOperation("set")
}

// Level returns the core for the named tier, for per-tier inspection.
func (m *MultiLevel) Level(level string) (*Core, error) {
	for _, l := range m.levels {
		if l.name == level {
			return l.core, nil
		}
	}
	return nil, errors.Newf(errors.ErrCodeLevelNotFound, "cache level %q not found", level).
		WithComponent("multilevel-cache")
}

// AggregatedStats sums hits, misses, evictions, sizes, and memory across
// all tiers and includes the per-tier breakdown.
func (m *MultiLevel) AggregatedStats() types.MultiLevelStats {
	agg := types.MultiLevelStats{
		Levels: make(map[string]types.CacheStats, len(m.levels)),
	}

	for _, level := range m.levels {
		stats := level.core.Stats()
		agg.Levels[level.name] = stats

		agg.Total.Hits += stats.Hits
		agg.Total.Misses += stats.Misses
		agg.Total.Evictions += stats.Evictions
		agg.Total.Entries += stats.Entries
		agg.Total.Capacity += stats.Capacity
		agg.Total.MemoryUsage += stats.MemoryUsage
	}

	total := agg.Total.Hits + agg.Total.Misses
	if total > 0 {
		agg.Total.HitRate = float64(agg.Total.Hits) / float64(total) * 100
	}
	if agg.Total.Capacity > 0 {
		agg.Total.Utilization = float64(agg.Total.Entries) / float64(agg.Total.Capacity)
	}

	return agg
}

// Cleanup sweeps expired entries in every tier.
func (m *MultiLevel) Cleanup() {
	for _, level := range m.levels {
		level.core.Cleanup()
	}
}

// Clear empties every tier.
func (m *MultiLevel) Clear() {
	for _, level := range m.levels {
		level.core.Clear()
	}
}

// HealthCheck aggregates the tier health reports; the hierarchy is
// healthy only when every tier is.
func (m *MultiLevel) HealthCheck() types.HealthReport {
	report := types.HealthReport{
		OK:      true,
		Status:  "healthy",
		Details: make(map[string]string, len(m.levels)),
	}

	for _, level := range m.levels {
		tier := level.core.HealthCheck()
		report.Details[level.name] = tier.Status
		if !tier.OK {
			report.OK = false
			report.Status = "degraded"
		}
	}

	return report
}

// Shutdown stops every tier. Idempotent.
func (m *MultiLevel) Shutdown() {
	for _, level := range m.levels {
		level.core.Shutdown()
	}
}
