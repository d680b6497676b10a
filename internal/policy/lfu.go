package policy

// LFU evicts the entries with the lowest access count. Entries with equal
// counts are broken by recency: the less recently used one goes first.
type LFU struct {
	baseHooks
}

// NewLFU creates a new LFU eviction policy.
func NewLFU() *LFU {
	return &LFU{}
}

// Name returns the strategy identifier.
func (p *LFU) Name() string {
	return StrategyLFU
}

// SelectEvictionCandidates returns up to target keys ordered by ascending
// access count, ties broken by ascending last access time.
func (p *LFU) SelectEvictionCandidates(entries map[string]*Entry, target int) []string {
	if target <= 0 || len(entries) == 0 {
		return nil
	}

	keys := sortedKeys(entries, func(a, b *Entry) bool {
		if a.AccessCount != b.AccessCount {
			return a.AccessCount < b.AccessCount
		}
		if a.LastAccessed.Equal(b.LastAccessed) {
			return a.InsertionOrder < b.InsertionOrder
		}
		return a.LastAccessed.Before(b.LastAccessed)
	})

	return keys[:clampTarget(target, len(keys))]
}
