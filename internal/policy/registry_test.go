package policy

import (
	"errors"
	"testing"

	cacheerrors "github.com/stratacache/stratacache/pkg/errors"
)

func TestNewRegistryBuiltins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	want := []string{StrategyFIFO, StrategyLFU, StrategyLRU, StrategyRandom, StrategyTTL}

	got := r.Available()
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, name := range want {
		p, err := r.Get(name)
		if err != nil {
			t.Errorf("Get(%q) error = %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, p.Name())
		}
	}
}

func TestRegistryUnknownStrategy(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.Get("clairvoyant")
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	if !errors.Is(err, cacheerrors.NewError(cacheerrors.ErrCodeUnknownStrategy, "")) {
		t.Errorf("error = %v, want UNKNOWN_STRATEGY code", err)
	}
}

// sampledPolicy is a custom strategy used to exercise runtime extension.
type sampledPolicy struct {
	baseHooks
}

func (sampledPolicy) Name() string { return "sampled" }

func (sampledPolicy) SelectEvictionCandidates(entries map[string]*Entry, target int) []string {
	keys := sortedKeys(entries, func(a, b *Entry) bool { return a.Key < b.Key })
	return keys[:clampTarget(target, len(keys))]
}

func TestRegistryRegisterCustom(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.Register(sampledPolicy{}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, err := r.Get("sampled")
	if err != nil {
		t.Fatalf("Get(sampled) error = %v", err)
	}
	if p.Name() != "sampled" {
		t.Errorf("Name() = %q, want sampled", p.Name())
	}

	if len(r.Available()) != 6 {
		t.Errorf("Available() has %d strategies, want 6", len(r.Available()))
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	err := r.Register(NewLRU())
	if err == nil {
		t.Fatal("expected error when re-registering a built-in")
	}
	if !errors.Is(err, cacheerrors.NewError(cacheerrors.ErrCodeStrategyExists, "")) {
		t.Errorf("error = %v, want STRATEGY_EXISTS code", err)
	}
}
