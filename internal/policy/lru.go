package policy

// LRU evicts the entries that were accessed least recently.
type LRU struct {
	baseHooks
}

// NewLRU creates a new LRU eviction policy.
func NewLRU() *LRU {
	return &LRU{}
}

// Name returns the strategy identifier.
func (p *LRU) Name() string {
	return StrategyLRU
}

// SelectEvictionCandidates returns up to target keys ordered oldest
// access first. Ties fall back to insertion order so the result is
// deterministic.
func (p *LRU) SelectEvictionCandidates(entries map[string]*Entry, target int) []string {
	if target <= 0 || len(entries) == 0 {
		return nil
	}

	keys := sortedKeys(entries, func(a, b *Entry) bool {
		if a.LastAccessed.Equal(b.LastAccessed) {
			return a.InsertionOrder < b.InsertionOrder
		}
		return a.LastAccessed.Before(b.LastAccessed)
	})

	return keys[:clampTarget(target, len(keys))]
}
