package policy

import (
	"sort"
	"time"
)

// Strategy identifiers for the built-in eviction policies.
const (
	StrategyLRU      = "lru"
	StrategyLFU      = "lfu"
	StrategyFIFO     = "fifo"
	StrategyTTL      = "ttl"
	StrategyRandom   = "random"
	StrategyAdaptive = "adaptive"
)

// Entry is the unit of stored cache state. Entries are owned exclusively
// by the cache core that created them; policies only read them in
// SelectEvictionCandidates and mutate access metadata through the hooks.
type Entry struct {
	Key            string
	Value          interface{}
	InsertionOrder uint64
	LastAccessed   time.Time
	AccessCount    uint64

	// TTL of zero means the entry never expires by time; ExpiresAt is
	// only meaningful when TTL > 0.
	TTL       time.Duration
	ExpiresAt time.Time
}

// Expired reports whether the entry has passed its expiry time.
func (e *Entry) Expired(now time.Time) bool {
	return e.TTL > 0 && !now.Before(e.ExpiresAt)
}

// Policy is the pluggable eviction strategy contract. The distinguishing
// behavior lives entirely in SelectEvictionCandidates; the mutation hooks
// are shared bookkeeping.
//
// All methods are invoked under the owning cache's lock, so entries form a
// read-consistent snapshot for the duration of a call.
type Policy interface {
	// Name returns the strategy identifier.
	Name() string

	// SelectEvictionCandidates returns up to target keys to remove, most
	// evictable first. An empty entry set yields zero candidates.
	SelectEvictionCandidates(entries map[string]*Entry, target int) []string

	// OnAccess updates access metadata for a cache hit.
	OnAccess(entry *Entry)

	// OnInsert resets access metadata for a fresh or replaced entry.
	OnInsert(entry *Entry)
}

// OperationRecorder is implemented by policies that adapt to the observed
// access pattern. The cache core calls RecordOperation after every get and
// set, under its lock.
type OperationRecorder interface {
	RecordOperation(entries map[string]*Entry)
}

// baseHooks provides the access-metadata bookkeeping shared by every
// built-in policy.
type baseHooks struct{}

func (baseHooks) OnAccess(entry *Entry) {
	entry.LastAccessed = time.Now()
	entry.AccessCount++
}

func (baseHooks) OnInsert(entry *Entry) {
	entry.LastAccessed = time.Now()
	entry.AccessCount = 1
}

// sortedKeys returns every key ordered by the supplied comparison.
func sortedKeys(entries map[string]*Entry, less func(a, b *Entry) bool) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return less(entries[keys[i]], entries[keys[j]])
	})
	return keys
}

func clampTarget(target, available int) int {
	if target > available {
		return available
	}
	return target
}
