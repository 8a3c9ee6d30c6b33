package widget

import (
	"errors"

	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
)

// ErrViewNotFound is returned by ComponentRegistry.Take when name was
// never registered as a single-instance view.
var ErrViewNotFound = errors.New("widget: view not found")

// ErrViewConsumed is returned by ComponentRegistry.Take when name names a
// single-instance view whose one instance was already bound to an
// earlier Component blueprint.
var ErrViewConsumed = errors.New("widget: view already consumed")

// FactoryContext is what a widget factory receives to build its
// instance: the already-evaluated attributes of the node it is
// instantiating, plus any inline text value.
type FactoryContext struct {
	Attrs *Attributes
}

// Factory builds the concrete Widget behind one `ident` in template
// source (a "text", "border", "vstack", ...). A factory that cannot
// build from the given attributes returns a descriptive error; the tree
// then leaves that Element's Widget nil rather than aborting the whole
// build.
type Factory func(ctx FactoryContext) (Widget, error)

// Registry maps an ident to the Factory that builds it.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register binds ident to factory, overwriting any previous binding.
func (r *Registry) Register(ident string, factory Factory) {
	r.factories[ident] = factory
}

// Lookup returns the Factory bound to ident, if any.
func (r *Registry) Lookup(ident string) (Factory, bool) {
	f, ok := r.factories[ident]
	return f, ok
}

// ComponentFactory produces a component's initial, component-local
// state. A component name with no registered factory has no state to
// fall back on: Build reports it as a MissingComponentError.
type ComponentFactory func() state.State

// ComponentRegistry maps a component's `@name` to the factory that
// builds its initial state. A name may additionally be registered as a
// single-instance view via RegisterOnce: its one instance may be bound
// to exactly one Component blueprint, after which further binding
// attempts fail with ErrViewConsumed rather than silently handing out a
// second copy of state meant to be exclusive.
type ComponentRegistry struct {
	factories map[string]ComponentFactory
	once      map[string]ComponentFactory
	consumed  map[string]bool
}

// NewComponentRegistry creates an empty ComponentRegistry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: map[string]ComponentFactory{},
		once:      map[string]ComponentFactory{},
		consumed:  map[string]bool{},
	}
}

// Register binds name to factory. Any component blueprint naming name
// gets its own fresh state from factory.
func (r *ComponentRegistry) Register(name string, factory ComponentFactory) {
	r.factories[name] = factory
}

// RegisterOnce binds name to a single-instance view: the first
// Component blueprint to name it via Take gets factory's state; every
// subsequent one fails with ErrViewConsumed.
func (r *ComponentRegistry) RegisterOnce(name string, factory ComponentFactory) {
	r.once[name] = factory
}

// IsOnce reports whether name was registered via RegisterOnce, meaning
// buildComponent must go through Take rather than Build.
func (r *ComponentRegistry) IsOnce(name string) bool {
	_, ok := r.once[name]
	return ok
}

// Build returns the initial state for name. A name with no registered
// factory is a template authoring error, not a silent default — it
// returns template.MissingComponentError so the caller can log and skip
// the subtree rather than building a component against state.Unit{} the
// template never declared. Build never consults single-instance views —
// callers check IsOnce first and call Take for those.
func (r *ComponentRegistry) Build(name string) (state.State, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, &template.MissingComponentError{Name: name}
	}
	return f(), nil
}

// Take binds the single-instance view named name, returning its initial
// state exactly once. A second Take of the same name returns
// ErrViewConsumed; a name never registered via RegisterOnce returns
// ErrViewNotFound.
func (r *ComponentRegistry) Take(name string) (state.State, error) {
	f, ok := r.once[name]
	if !ok {
		return nil, ErrViewNotFound
	}
	if r.consumed[name] {
		return nil, ErrViewConsumed
	}
	r.consumed[name] = true
	return f(), nil
}
