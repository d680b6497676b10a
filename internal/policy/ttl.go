package policy

import (
	"time"
)

// TTL evicts expired entries before anything else. Selection is two-phase:
// all expired entries are returned first (soonest-expired leading), and if
// more candidates are needed the remainder is filled with LRU ordering
// over the live set.
type TTL struct {
	baseHooks
}

// NewTTL creates a new TTL-first eviction policy.
func NewTTL() *TTL {
	return &TTL{}
}

// Name returns the strategy identifier.
func (p *TTL) Name() string {
	return StrategyTTL
}

// SelectEvictionCandidates returns up to target keys, expired entries
// first, then least recently used live entries.
func (p *TTL) SelectEvictionCandidates(entries map[string]*Entry, target int) []string {
	if target <= 0 || len(entries) == 0 {
		return nil
	}

	now := time.Now()
	expired := make(map[string]*Entry)
	live := make(map[string]*Entry)
	for key, entry := range entries {
		if entry.Expired(now) {
			expired[key] = entry
		} else {
			live[key] = entry
		}
	}

	candidates := sortedKeys(expired, func(a, b *Entry) bool {
		if a.ExpiresAt.Equal(b.ExpiresAt) {
			return a.InsertionOrder < b.InsertionOrder
		}
		return a.ExpiresAt.Before(b.ExpiresAt)
	})

	if len(candidates) >= target {
		return candidates[:target]
	}

	fill := sortedKeys(live, func(a, b *Entry) bool {
		if a.LastAccessed.Equal(b.LastAccessed) {
			return a.InsertionOrder < b.InsertionOrder
		}
		return a.LastAccessed.Before(b.LastAccessed)
	})

	remaining := target - len(candidates)
	candidates = append(candidates, fill[:clampTarget(remaining, len(fill))]...)
	return candidates
}
