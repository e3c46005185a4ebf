// Package keybudget implements a passive observer over a codec's key
// counter: it watches a value supplied by the caller (Codec.NextKey) and
// raises an advisory once it crosses a configured ceiling. It never reads
// or mutates the tree directly, and it holds only its own lock — the
// caller snapshots the tree state under the codec's lock, releases that
// lock, and only then calls Observe, so the two locks are never nested
// (see the codec's concurrency design).
package keybudget

import "sync"

// DefaultCeiling is the key count past which Observe raises its advisory
// absent an explicit WithCeiling option. It is deliberately generous: a
// long-lived chat process assigning two keys per new word would need
// roughly half a million distinct words to reach it.
const DefaultCeiling = 1 << 20

// Option configures an Advisor at construction time.
type Option func(*Advisor)

// WithCeiling overrides DefaultCeiling.
func WithCeiling(ceiling int) Option {
	return func(a *Advisor) { a.ceiling = ceiling }
}

// Advisor watches a monotonically increasing key counter and reports
// exactly one advisory crossing the first time the counter reaches its
// ceiling, regardless of how many further observations follow. Safe for
// concurrent use.
type Advisor struct {
	mu      sync.Mutex
	ceiling int
	crossed bool
}

// NewAdvisor returns an Advisor configured with DefaultCeiling unless
// overridden by opts.
func NewAdvisor(opts ...Option) *Advisor {
	a := &Advisor{ceiling: DefaultCeiling}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Observe records the current key counter and reports whether this call
// is the first to see it at or past the ceiling. Subsequent calls with an
// equal or larger counter return false: the advisory fires once per
// Advisor lifetime, not once per observation.
func (a *Advisor) Observe(nextKey int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.crossed || nextKey < a.ceiling {
		return false
	}
	a.crossed = true
	return true
}

// Crossed reports whether the advisory has already fired.
func (a *Advisor) Crossed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.crossed
}
