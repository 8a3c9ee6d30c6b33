package eval

import "github.com/anathema-go/anathema/reactive"

// FutureRegistry tracks subscribers whose expression evaluation came up
// empty because a binding it depends on was not yet reachable — a
// for-loop element that doesn't exist yet, a component attribute the
// call site never supplied. Each runtime tick drains the set and asks
// the owning widget node to re-run the evaluation; if the binding has
// since become reachable it resolves this time, otherwise it is
// registered as a future again.
type FutureRegistry struct {
	pending map[reactive.Subscriber]struct{}
}

// NewFutureRegistry creates an empty FutureRegistry.
func NewFutureRegistry() *FutureRegistry {
	return &FutureRegistry{pending: map[reactive.Subscriber]struct{}{}}
}

// Register marks sub's evaluation as needing a retry.
func (f *FutureRegistry) Register(sub reactive.Subscriber) {
	f.pending[sub] = struct{}{}
}

// Len reports how many subscribers are awaiting a retry.
func (f *FutureRegistry) Len() int { return len(f.pending) }

// Drain returns every pending subscriber and clears the set.
func (f *FutureRegistry) Drain() []reactive.Subscriber {
	if len(f.pending) == 0 {
		return nil
	}
	out := make([]reactive.Subscriber, 0, len(f.pending))
	for sub := range f.pending {
		out = append(out, sub)
	}
	f.pending = map[reactive.Subscriber]struct{}{}
	return out
}
