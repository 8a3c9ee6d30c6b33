// Package state gives the rest of the runtime a single, polymorphic view
// over application data: maps, lists, primitives, and reflected structs
// all answer to the same State interface, so the template evaluator never
// needs to know which concrete shape backs a given path.
package state

import "github.com/anathema-go/anathema/reactive"

// Kind classifies what a State is, mirroring the variants a template
// expression can observe at runtime.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindInt
	KindFloat
	KindChar
	KindHex
	KindStr
	KindColor
	KindMap
	KindList
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindHex:
		return "hex"
	case KindStr:
		return "str"
	case KindColor:
		return "color"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// State is the interface every piece of reflectable application data
// implements: composites and lists expose their children by path or
// index, and every kind exposes best-effort scalar extraction for the
// template layer's comparison and formatting operators.
type State interface {
	Kind() Kind

	// Get resolves a named field of a map or composite. Any container
	// boundary crossed on the way registers sub against that container's
	// own structural changes (a key appearing or disappearing); the
	// value at the end of the path is handed back unsubscribed, as a
	// PendingValue the caller can choose to resolve.
	Get(path string, sub reactive.Subscriber) (PendingValue, bool)

	// Lookup resolves an index of a list. Out-of-range returns false; it
	// is the caller's responsibility to register a future against the
	// list if it wants to observe the index coming into range later.
	Lookup(index int, sub reactive.Subscriber) (PendingValue, bool)

	AsInt() (int64, bool)
	AsFloat() (float64, bool)
	AsBool() (bool, bool)
	AsString() (string, bool)
}

// base supplies default, always-failing implementations of every State
// method, so a concrete leaf type only has to override what applies to
// it.
type base struct{}

func (base) Get(string, reactive.Subscriber) (PendingValue, bool)   { return PendingValue{}, false }
func (base) Lookup(int, reactive.Subscriber) (PendingValue, bool)   { return PendingValue{}, false }
func (base) AsInt() (int64, bool)                                   { return 0, false }
func (base) AsFloat() (float64, bool)                               { return 0, false }
func (base) AsBool() (bool, bool)                                   { return false, false }
func (base) AsString() (string, bool)                               { return "", false }

// PendingValue is a handle to a value that has not yet had a subscriber
// registered against it. ToValue upgrades it, subscribing sub to the
// underlying reactive value and returning a State snapshot of the
// current value.
type PendingValue struct {
	resolve func(sub reactive.Subscriber) State
}

// ToValue resolves the pending value, registering sub against the
// backing reactive value. Calling ToValue on the zero PendingValue
// returns (nil, false).
func (p PendingValue) ToValue(sub reactive.Subscriber) (State, bool) {
	if p.resolve == nil {
		return nil, false
	}
	return p.resolve(sub), true
}

// IsZero reports whether p refers to nothing.
func (p PendingValue) IsZero() bool { return p.resolve == nil }

// NewPendingValue wraps resolve as a PendingValue, for callers outside
// this package that need to hand back an already-known State without a
// live container to delegate to (the template evaluator's literal list
// and map expressions, for instance).
func NewPendingValue(resolve func(sub reactive.Subscriber) State) PendingValue {
	return PendingValue{resolve: resolve}
}
