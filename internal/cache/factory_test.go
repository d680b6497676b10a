package cache

import (
	"errors"
	"testing"

	"github.com/stratacache/stratacache/internal/config"
	"github.com/stratacache/stratacache/internal/policy"
	cacheerrors "github.com/stratacache/stratacache/pkg/errors"
)

func TestFactoryPresets(t *testing.T) {
	wantCapacity := map[string]int{
		"small":                 100,
		"medium":                1000,
		"large":                 10000,
		"memory-optimized":      500,
		"performance-optimized": 5000,
	}

	f := NewFactory()
	for _, preset := range Presets() {
		preset := preset
		t.Run(preset, func(t *testing.T) {
			c, err := f.Create(preset)
			if err != nil {
				t.Fatalf("Create(%q) error = %v", preset, err)
			}
			defer c.Shutdown()

			if got := c.Stats().Capacity; got != wantCapacity[preset] {
				t.Errorf("capacity = %d, want %d", got, wantCapacity[preset])
			}

			if err := c.Set("probe", 1); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if res := c.Get("probe"); !res.Hit {
				t.Error("expected hit on freshly stored key")
			}
		})
	}

	if len(wantCapacity) != len(Presets()) {
		t.Errorf("preset count = %d, want %d", len(Presets()), len(wantCapacity))
	}
}

func TestFactoryUnknownPreset(t *testing.T) {
	f := NewFactory()
	_, err := f.Create("galactic")
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if !errors.Is(err, cacheerrors.NewError(cacheerrors.ErrCodeUnknownPreset, "")) {
		t.Errorf("error = %v, want UNKNOWN_PRESET code", err)
	}
}

func TestFactoryUnknownStrategy(t *testing.T) {
	f := NewFactory()
	cfg := config.NewDefault()
	cfg.EvictionStrategy = "clairvoyant"
	cfg.CleanupInterval = 0

	_, err := f.CreateFromConfig(cfg)
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if !errors.Is(err, cacheerrors.NewError(cacheerrors.ErrCodeUnknownStrategy, "")) {
		t.Errorf("error = %v, want UNKNOWN_STRATEGY code", err)
	}
}

func TestFactoryAdaptivePreset(t *testing.T) {
	f := NewFactory()
	c, err := f.Create("performance-optimized")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer c.Shutdown()

	// The adaptive policy starts on LRU until its first evaluation.
	if got := c.CurrentStrategy(); got != policy.StrategyLRU {
		t.Errorf("CurrentStrategy() = %q, want lru", got)
	}
}

func TestFactoryCustomStrategy(t *testing.T) {
	f := NewFactory()
	if err := f.Registry().Register(policy.NewFIFO()); err == nil {
		t.Fatal("re-registering a built-in should fail")
	}

	cfg := config.NewDefault()
	cfg.EvictionStrategy = policy.StrategyFIFO
	cfg.CleanupInterval = 0

	c, err := f.CreateFromConfig(cfg)
	if err != nil {
		t.Fatalf("CreateFromConfig() error = %v", err)
	}
	defer c.Shutdown()

	if got := c.CurrentStrategy(); got != policy.StrategyFIFO {
		t.Errorf("CurrentStrategy() = %q, want fifo", got)
	}
}

func TestFactoryCreateMultiLevel(t *testing.T) {
	f := NewFactory()
	m, err := f.CreateMultiLevel(testMultiLevelConfig())
	if err != nil {
		t.Fatalf("CreateMultiLevel() error = %v", err)
	}
	defer m.Shutdown()

	if err := m.Set("key", "value", LevelL1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if res := m.Get("key"); !res.Hit || res.Level != LevelL1 {
		t.Errorf("Get() = hit %v at %s, want hit at L1", res.Hit, res.Level)
	}
}
