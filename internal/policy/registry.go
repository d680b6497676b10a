package policy

import (
	"sort"
	"strings"
	"sync"

	"github.com/stratacache/stratacache/pkg/errors"
)

// Registry maps strategy identifiers to policy instances. A registry is
// pre-populated with the five built-in policies and is read-mostly after
// construction: Register is expected only at startup, lookups dominate.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRegistry creates a registry with all built-in policies registered.
func NewRegistry() *Registry {
	r := &Registry{
		policies: make(map[string]Policy),
	}
	for _, p := range []Policy{NewLRU(), NewLFU(), NewFIFO(), NewTTL(), NewRandom()} {
		r.policies[p.Name()] = p
	}
	return r
}

// Get returns the policy registered under the given strategy identifier.
func (r *Registry) Get(strategy string) (Policy, error) {
	r.mu.RLock()
	p, ok := r.policies[strategy]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy,
			"unknown eviction strategy %q (available: %s)", strategy, strings.Join(r.Available(), ", ")).
			WithComponent("policy-registry")
	}
	return p, nil
}

// Register adds a custom policy. Registering over an existing identifier
// is rejected so built-ins cannot be silently replaced.
func (r *Registry) Register(p Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.policies[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyExists, "strategy %q already registered", name).
			WithComponent("policy-registry")
	}
	r.policies[name] = p
	return nil
}

// Available returns the sorted list of registered strategy identifiers.
func (r *Registry) Available() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
