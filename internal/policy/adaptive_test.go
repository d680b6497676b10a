package policy

import (
	"fmt"
	"testing"
	"time"
)

func newTestAdaptive(t *testing.T, window int) *Adaptive {
	t.Helper()
	a, err := NewAdaptive(NewRegistry(), window)
	if err != nil {
		t.Fatalf("NewAdaptive() error = %v", err)
	}
	return a
}

// drive feeds window operations so exactly one evaluation happens.
func drive(a *Adaptive, entries map[string]*Entry) {
	for i := 0; i < a.window; i++ {
		a.RecordOperation(entries)
	}
}

func TestAdaptiveDefaults(t *testing.T) {
	t.Parallel()

	a := newTestAdaptive(t, 0)
	if a.window != DefaultEvaluationWindow {
		t.Errorf("window = %d, want %d", a.window, DefaultEvaluationWindow)
	}
	if a.CurrentStrategy() != StrategyLRU {
		t.Errorf("initial strategy = %q, want lru", a.CurrentStrategy())
	}
	if a.Name() != StrategyAdaptive {
		t.Errorf("Name() = %q, want adaptive", a.Name())
	}
}

func TestAdaptiveConvergesToLFUOnSkew(t *testing.T) {
	t.Parallel()

	// Zipfian-like skew: a small hot subset dominates the access counts,
	// pushing the variance far above twice the mean.
	now := time.Now()
	entries := make(map[string]*Entry)
	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("hot-%d", i)
		entries[key] = makeEntry(key, uint64(i), now, 500)
	}
	for i := 0; i < 30; i++ {
		key := fmt.Sprintf("cold-%d", i)
		entries[key] = makeEntry(key, uint64(10+i), now.Add(-2*time.Hour), 1)
	}

	a := newTestAdaptive(t, 10)
	drive(a, entries)

	if got := a.CurrentStrategy(); got != StrategyLFU {
		t.Errorf("strategy = %q, want lfu", got)
	}
}

func TestAdaptiveConvergesToLRUOnRecentUniform(t *testing.T) {
	t.Parallel()

	// Uniform counts, everything touched within the hour: temporal
	// locality dominates.
	now := time.Now()
	entries := make(map[string]*Entry)
	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("key-%d", i)
		entries[key] = makeEntry(key, uint64(i), now.Add(-time.Minute), 5)
	}

	a := newTestAdaptive(t, 10)

	// Move off the initial strategy first so the switch is observable.
	skewed := map[string]*Entry{
		"hot":   makeEntry("hot", 1, now, 1000),
		"cold1": makeEntry("cold1", 2, now.Add(-2*time.Hour), 1),
		"cold2": makeEntry("cold2", 3, now.Add(-2*time.Hour), 1),
	}
	drive(a, skewed)
	if a.CurrentStrategy() != StrategyLFU {
		t.Fatalf("setup: strategy = %q, want lfu", a.CurrentStrategy())
	}

	drive(a, entries)
	if got := a.CurrentStrategy(); got != StrategyLRU {
		t.Errorf("strategy = %q, want lru", got)
	}
}

func TestAdaptiveConvergesToFIFOOnLowReuse(t *testing.T) {
	t.Parallel()

	// Every entry touched once, long ago: low reuse, no locality.
	now := time.Now()
	entries := make(map[string]*Entry)
	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("key-%d", i)
		entries[key] = makeEntry(key, uint64(i), now.Add(-3*time.Hour), 1)
	}

	a := newTestAdaptive(t, 10)
	drive(a, entries)

	if got := a.CurrentStrategy(); got != StrategyFIFO {
		t.Errorf("strategy = %q, want fifo", got)
	}
}

func TestAdaptiveConvergesToTTLOnMixedPattern(t *testing.T) {
	t.Parallel()

	// Moderate uniform reuse with stale access times: variance is zero,
	// the recent ratio is low, and mean access is above the reuse floor.
	now := time.Now()
	entries := make(map[string]*Entry)
	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("key-%d", i)
		entries[key] = makeEntry(key, uint64(i), now.Add(-3*time.Hour), 4)
	}

	a := newTestAdaptive(t, 10)
	drive(a, entries)

	if got := a.CurrentStrategy(); got != StrategyTTL {
		t.Errorf("strategy = %q, want ttl", got)
	}
}

func TestAdaptiveIgnoresEmptyEntrySet(t *testing.T) {
	t.Parallel()

	a := newTestAdaptive(t, 5)
	drive(a, map[string]*Entry{})

	if got := a.CurrentStrategy(); got != StrategyLRU {
		t.Errorf("strategy = %q, want lru unchanged on empty set", got)
	}
}

func TestAdaptiveEvaluatesOncePerWindow(t *testing.T) {
	t.Parallel()

	now := time.Now()
	skewed := map[string]*Entry{
		"hot":   makeEntry("hot", 1, now, 1000),
		"cold1": makeEntry("cold1", 2, now.Add(-2*time.Hour), 1),
		"cold2": makeEntry("cold2", 3, now.Add(-2*time.Hour), 1),
	}

	a := newTestAdaptive(t, 10)
	for i := 0; i < 9; i++ {
		a.RecordOperation(skewed)
	}
	if a.CurrentStrategy() != StrategyLRU {
		t.Fatal("strategy must not change before the window completes")
	}

	a.RecordOperation(skewed)
	if a.CurrentStrategy() != StrategyLFU {
		t.Error("strategy should switch when the window completes")
	}
}

func TestAdaptiveDelegatesToCurrentPolicy(t *testing.T) {
	t.Parallel()

	now := time.Now()
	entries := entrySet(
		makeEntry("old", 1, now.Add(-time.Hour), 5),
		makeEntry("new", 2, now, 5),
	)

	a := newTestAdaptive(t, 10)
	got := a.SelectEvictionCandidates(entries, 1)
	if len(got) != 1 || got[0] != "old" {
		t.Errorf("candidates = %v, want [old] under initial lru", got)
	}

	e := makeEntry("probe", 3, now.Add(-time.Hour), 1)
	a.OnAccess(e)
	if e.AccessCount != 2 {
		t.Errorf("OnAccess delegation: AccessCount = %d, want 2", e.AccessCount)
	}
	a.OnInsert(e)
	if e.AccessCount != 1 {
		t.Errorf("OnInsert delegation: AccessCount = %d, want 1", e.AccessCount)
	}
}
