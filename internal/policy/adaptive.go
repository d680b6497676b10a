package policy

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultEvaluationWindow is the number of cache operations between
// strategy re-evaluations.
const DefaultEvaluationWindow = 100

// recentAccessHorizon bounds what counts as a "recent" access when
// measuring temporal locality.
const recentAccessHorizon = time.Hour

// Adaptive is a meta-policy that wraps one concrete policy and
// periodically re-evaluates which strategy fits the observed access
// pattern. Switching never rewrites existing entry metadata; future
// accesses simply accumulate under the new policy's semantics.
type Adaptive struct {
	mu       sync.Mutex
	registry *Registry
	current  Policy
	window   int
	ops      int
	logger   *slog.Logger
}

// NewAdaptive creates an adaptive policy backed by the given registry,
// starting with LRU. A window of zero or less selects
// DefaultEvaluationWindow.
func NewAdaptive(registry *Registry, window int) (*Adaptive, error) {
	if window <= 0 {
		window = DefaultEvaluationWindow
	}

	current, err := registry.Get(StrategyLRU)
	if err != nil {
		return nil, err
	}

	return &Adaptive{
		registry: registry,
		current:  current,
		window:   window,
		logger:   slog.Default().With("component", "adaptive-policy"),
	}, nil
}

// Name returns the strategy identifier.
func (a *Adaptive) Name() string {
	return StrategyAdaptive
}

// CurrentStrategy returns the identifier of the currently active concrete
// strategy, for observability.
func (a *Adaptive) CurrentStrategy() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current.Name()
}

// SelectEvictionCandidates delegates to the active concrete policy.
func (a *Adaptive) SelectEvictionCandidates(entries map[string]*Entry, target int) []string {
	a.mu.Lock()
	current := a.current
	a.mu.Unlock()
	return current.SelectEvictionCandidates(entries, target)
}

// OnAccess delegates to the active concrete policy.
func (a *Adaptive) OnAccess(entry *Entry) {
	a.mu.Lock()
	current := a.current
	a.mu.Unlock()
	current.OnAccess(entry)
}

// OnInsert delegates to the active concrete policy.
func (a *Adaptive) OnInsert(entry *Entry) {
	a.mu.Lock()
	current := a.current
	a.mu.Unlock()
	current.OnInsert(entry)
}

// RecordOperation counts one cache operation and re-evaluates the optimal
// strategy once per evaluation window. The cache core calls this under its
// lock, so entries are a consistent snapshot.
func (a *Adaptive) RecordOperation(entries map[string]*Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ops++
	if a.ops < a.window {
		return
	}
	a.ops = 0
	a.evaluate(entries)
}

// evaluate applies the decision rule over the current entry set. Caller
// holds a.mu.
func (a *Adaptive) evaluate(entries map[string]*Entry) {
	n := len(entries)
	if n == 0 {
		return
	}

	var total uint64
	recent := 0
	cutoff := time.Now().Add(-recentAccessHorizon)
	for _, entry := range entries {
		total += entry.AccessCount
		if entry.LastAccessed.After(cutoff) {
			recent++
		}
	}

	mean := float64(total) / float64(n)
	var variance float64
	for _, entry := range entries {
		d := float64(entry.AccessCount) - mean
		variance += d * d
	}
	variance /= float64(n)

	recentRatio := float64(recent) / float64(n)

	var optimal string
	switch {
	case variance > 2*mean:
		// A few hot keys dominate.
		optimal = StrategyLFU
	case recentRatio > 0.8:
		// Temporal locality dominates.
		optimal = StrategyLRU
	case mean < 2:
		// Low overall reuse.
		optimal = StrategyFIFO
	default:
		optimal = StrategyTTL
	}

	if optimal == a.current.Name() {
		return
	}

	next, err := a.registry.Get(optimal)
	if err != nil {
		return
	}

	a.logger.Debug("switching eviction strategy",
		"from", a.current.Name(),
		"to", optimal,
		"mean_access", mean,
		"access_variance", variance,
		"recent_ratio", recentRatio)
	a.current = next
}
