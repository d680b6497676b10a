package policy

import (
	"math/rand"
	"sync"
	"time"
)

// Random evicts a uniform random subset of keys. It serves as a baseline
// and as a fallback under uniform load.
type Random struct {
	baseHooks

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a new random eviction policy.
func NewRandom() *Random {
	return &Random{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Name returns the strategy identifier.
func (p *Random) Name() string {
	return StrategyRandom
}

// SelectEvictionCandidates returns exactly min(target, len(entries))
// distinct keys via a partial Fisher-Yates shuffle. No ordering is
// guaranteed.
func (p *Random) SelectEvictionCandidates(entries map[string]*Entry, target int) []string {
	if target <= 0 || len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}

	n := clampTarget(target, len(keys))

	p.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + p.rng.Intn(len(keys)-i)
		keys[i], keys[j] = keys[j], keys[i]
	}
	p.mu.Unlock()

	return keys[:n]
}
