package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/stratacache/stratacache/pkg/errors"
)

// AdvancedCacheConfig represents the configuration for a single cache
// core. It is immutable after construction: the engine never mutates it
// and callers must not either.
type AdvancedCacheConfig struct {
	// MaxSize is the maximum number of entries the cache may hold.
	MaxSize int `yaml:"max_size"`

	// DefaultTTL is applied to entries stored without an explicit TTL.
	// Zero means entries never expire by time.
	DefaultTTL time.Duration `yaml:"default_ttl"`

	// EvictionStrategy selects the eviction policy: lru, lfu, fifo, ttl,
	// random, or adaptive.
	EvictionStrategy string `yaml:"eviction_strategy"`

	// EnableMetrics turns on Prometheus instrumentation.
	EnableMetrics bool `yaml:"enable_metrics"`

	// CleanupInterval is the period of the background expiry sweep.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// MemoryPressureThreshold is the utilization fraction (0..1] above
	// which a memory-pressure event is emitted.
	MemoryPressureThreshold float64 `yaml:"memory_pressure_threshold"`

	// MinHealthyHitRate is the hit-rate percentage below which the
	// health check reports degraded. Only applied once the cache has
	// seen traffic.
	MinHealthyHitRate float64 `yaml:"min_healthy_hit_rate"`
}

// MultiLevelConfig configures the three tiers of a multi-level cache.
type MultiLevelConfig struct {
	L1 *AdvancedCacheConfig `yaml:"l1"`
	L2 *AdvancedCacheConfig `yaml:"l2"`
	L3 *AdvancedCacheConfig `yaml:"l3"`
}

// NewDefault returns a cache configuration with sensible defaults.
func NewDefault() *AdvancedCacheConfig {
	return &AdvancedCacheConfig{
		MaxSize:                 1000,
		DefaultTTL:              5 * time.Minute,
		EvictionStrategy:        "lru",
		EnableMetrics:           false,
		CleanupInterval:         time.Minute,
		MemoryPressureThreshold: 0.9,
		MinHealthyHitRate:       10.0,
	}
}

// NewDefaultMultiLevel returns a three-tier configuration with a small
// fast L1, a medium L2, and a large L3.
func NewDefaultMultiLevel() *MultiLevelConfig {
	l1 := NewDefault()
	l1.MaxSize = 100
	l1.DefaultTTL = time.Minute

	l2 := NewDefault()
	l2.MaxSize = 1000
	l2.DefaultTTL = 5 * time.Minute

	l3 := NewDefault()
	l3.MaxSize = 10000
	l3.DefaultTTL = 30 * time.Minute

	return &MultiLevelConfig{L1: l1, L2: l2, L3: l3}
}

// LoadFromFile loads configuration from a YAML file.
func (c *AdvancedCacheConfig) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.NewError(errors.ErrCodeConfigLoad, "failed to read config file").WithCause(err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.NewError(errors.ErrCodeConfigLoad, "failed to parse config file").WithCause(err)
	}

	return nil
}

// LoadFromEnv overrides configuration from STRATACACHE_* environment
// variables.
func (c *AdvancedCacheConfig) LoadFromEnv() error {
	if val := os.Getenv("STRATACACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			c.MaxSize = size
		}
	}
	if val := os.Getenv("STRATACACHE_DEFAULT_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			c.DefaultTTL = duration
		}
	}
	if val := os.Getenv("STRATACACHE_EVICTION_STRATEGY"); val != "" {
		c.EvictionStrategy = val
	}
	if val := os.Getenv("STRATACACHE_ENABLE_METRICS"); val != "" {
		c.EnableMetrics = strings.ToLower(val) == "true"
	}
	if val := os.Getenv("STRATACACHE_CLEANUP_INTERVAL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			c.CleanupInterval = duration
		}
	}

	return nil
}

// SaveToFile saves the configuration to a YAML file.
func (c *AdvancedCacheConfig) SaveToFile(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.NewError(errors.ErrCodeConfigLoad, "failed to marshal config").WithCause(err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return errors.NewError(errors.ErrCodeConfigLoad, "failed to write config file").WithCause(err)
	}

	return nil
}

// Validate validates the configuration. Strategy names are validated
// against the policy registry at construction time, not here.
func (c *AdvancedCacheConfig) Validate() error {
	if c.MaxSize <= 0 {
		return errors.Newf(errors.ErrCodeConfigValidation, "max_size must be greater than 0, got %d", c.MaxSize)
	}
	if c.DefaultTTL < 0 {
		return errors.Newf(errors.ErrCodeConfigValidation, "default_ttl must not be negative, got %v", c.DefaultTTL)
	}
	if c.EvictionStrategy == "" {
		return errors.NewError(errors.ErrCodeConfigValidation, "eviction_strategy must be set")
	}
	if c.CleanupInterval < 0 {
		return errors.Newf(errors.ErrCodeConfigValidation, "cleanup_interval must not be negative, got %v", c.CleanupInterval)
	}
	if c.MemoryPressureThreshold < 0 || c.MemoryPressureThreshold > 1 {
		return errors.Newf(errors.ErrCodeConfigValidation,
			"memory_pressure_threshold must be within [0, 1], got %v", c.MemoryPressureThreshold)
	}
	if c.MinHealthyHitRate < 0 || c.MinHealthyHitRate > 100 {
		return errors.Newf(errors.ErrCodeConfigValidation,
			"min_healthy_hit_rate must be within [0, 100], got %v", c.MinHealthyHitRate)
	}

	return nil
}

// Validate validates every tier configuration.
func (c *MultiLevelConfig) Validate() error {
	tiers := map[string]*AdvancedCacheConfig{"l1": c.L1, "l2": c.L2, "l3": c.L3}
	for name, cfg := range tiers {
		if cfg == nil {
			return errors.Newf(errors.ErrCodeConfigValidation, "%s configuration is missing", name)
		}
		if err := cfg.Validate(); err != nil {
			return errors.Newf(errors.ErrCodeConfigValidation, "%s: %v", name, err)
		}
	}
	return nil
}
