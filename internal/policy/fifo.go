package policy

// FIFO evicts entries in insertion order. Access never changes an entry's
// position, and re-inserting an existing key keeps its original order so
// "first in" semantics hold across overwrites.
type FIFO struct {
	baseHooks
}

// NewFIFO creates a new FIFO eviction policy.
func NewFIFO() *FIFO {
	return &FIFO{}
}

// Name returns the strategy identifier.
func (p *FIFO) Name() string {
	return StrategyFIFO
}

// SelectEvictionCandidates returns up to target keys ordered by ascending
// insertion order.
func (p *FIFO) SelectEvictionCandidates(entries map[string]*Entry, target int) []string {
	if target <= 0 || len(entries) == 0 {
		return nil
	}

	keys := sortedKeys(entries, func(a, b *Entry) bool {
		return a.InsertionOrder < b.InsertionOrder
	})

	return keys[:clampTarget(target, len(keys))]
}
