package cache

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/stratacache/stratacache/internal/config"
	"github.com/stratacache/stratacache/internal/metrics"
	"github.com/stratacache/stratacache/internal/policy"
	"github.com/stratacache/stratacache/pkg/errors"
	"github.com/stratacache/stratacache/pkg/types"
)

var _ types.Cache = (*Core)(nil)

// Factory constructs pre-configured cache cores. It owns the policy
// registry shared by every cache it creates; all built-in strategies are
// registered before any lookup can happen.
type Factory struct {
	registry  *policy.Registry
	collector *metrics.Collector
	logger    *slog.Logger
}

// presets maps preset names to configuration builders.
var presets = map[string]func() *config.AdvancedCacheConfig{
	"small": func() *config.AdvancedCacheConfig {
		cfg := config.NewDefault()
		cfg.MaxSize = 100
		cfg.DefaultTTL = time.Minute
		return cfg
	},
	"medium": func() *config.AdvancedCacheConfig {
		cfg := config.NewDefault()
		cfg.MaxSize = 1000
		cfg.DefaultTTL = 5 * time.Minute
		return cfg
	},
	"large": func() *config.AdvancedCacheConfig {
		cfg := config.NewDefault()
		cfg.MaxSize = 10000
		cfg.DefaultTTL = 30 * time.Minute
		return cfg
	},
	"memory-optimized": func() *config.AdvancedCacheConfig {
		cfg := config.NewDefault()
		cfg.MaxSize = 500
		cfg.DefaultTTL = time.Minute
		cfg.EvictionStrategy = policy.StrategyTTL
		cfg.CleanupInterval = 15 * time.Second
		cfg.MemoryPressureThreshold = 0.75
		return cfg
	},
	"performance-optimized": func() *config.AdvancedCacheConfig {
		cfg := config.NewDefault()
		cfg.MaxSize = 5000
		cfg.DefaultTTL = 15 * time.Minute
		cfg.EvictionStrategy = policy.StrategyAdaptive
		cfg.EnableMetrics = true
		return cfg
	},
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithFactoryCollector sets the metrics collector handed to every cache
// the factory creates.
func WithFactoryCollector(collector *metrics.Collector) FactoryOption {
	return func(f *Factory) { f.collector = collector }
}

// WithFactoryLogger sets the factory logger.
func WithFactoryLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}

// NewFactory creates a cache factory with a freshly populated policy
// registry.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: policy.NewRegistry(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default().With("component", "cache-factory")
	}
	return f
}

// Registry exposes the policy registry for custom strategy registration.
func (f *Factory) Registry() *policy.Registry {
	return f.registry
}

// Presets returns the sorted list of known preset names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create constructs a cache from a named preset.
func (f *Factory) Create(preset string, opts ...Option) (*Core, error) {
	build, ok := presets[preset]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownPreset,
			"unknown preset %q (available: %s)", preset, strings.Join(Presets(), ", ")).
			WithComponent("cache-factory")
	}
	return f.CreateFromConfig(build(), append([]Option{WithName(preset)}, opts...)...)
}

// CreateFromConfig constructs a cache from an explicit configuration.
// Unknown eviction strategies fail fast; a broken cache is never
// constructed.
func (f *Factory) CreateFromConfig(cfg *config.AdvancedCacheConfig, opts ...Option) (*Core, error) {
	if cfg == nil {
		cfg = config.NewDefault()
	}

	pol, err := policyFor(cfg, f.registry)
	if err != nil {
		return nil, err
	}

	if cfg.EnableMetrics {
		opts = append(opts, WithCollector(f.metricsCollector()))
	}

	return New(cfg, pol, opts...)
}

// CreateMultiLevel constructs a three-tier cache hierarchy.
func (f *Factory) CreateMultiLevel(cfg *config.MultiLevelConfig) (*MultiLevel, error) {
	return NewMultiLevel(cfg, f.registry, f.collector)
}

func (f *Factory) metricsCollector() *metrics.Collector {
	if f.collector != nil {
		return f.collector
	}
	collector, err := metrics.NewCollector(nil)
	if err != nil {
		f.logger.Warn("metrics collector unavailable", "error", err)
		return nil
	}
	f.collector = collector
	return collector
}

// policyFor resolves the configured eviction strategy. The adaptive
// meta-policy gets a fresh instance per cache because it carries state;
// the concrete built-ins are stateless and shared through the registry.
func policyFor(cfg *config.AdvancedCacheConfig, registry *policy.Registry) (policy.Policy, error) {
	if cfg.EvictionStrategy == policy.StrategyAdaptive {
		return policy.NewAdaptive(registry, policy.DefaultEvaluationWindow)
	}
	return registry.Get(cfg.EvictionStrategy)
}
