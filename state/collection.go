package state

import "github.com/anathema-go/anathema/reactive"

// fieldBinding is how a composite or map exposes one of its children: a
// closure that, given a subscriber, yields the current State snapshot of
// that child. It is what backs PendingValue.resolve.
type fieldBinding func(sub reactive.Subscriber) State

// Map is a dynamic, string-keyed composite. Unlike Struct (the
// reflection-based adapter), a Map's key set can change at runtime —
// insertions and removals go through Bind/Delete, which both notify the
// map's structural subscribers through the same reactive store every
// other value change flows through.
type Map struct {
	base
	fields  map[string]fieldBinding
	version reactive.Value[int]
}

// NewMap creates an empty dynamic map backed by store. Structural
// changes (Bind of a new key, Delete) enqueue a Changed signal against
// the map's own version value, the same way any other reactive write
// does.
func NewMap(store *reactive.Store) *Map {
	return &Map{
		fields:  map[string]fieldBinding{},
		version: reactive.Insert(store, 0),
	}
}

func (*Map) Kind() Kind { return KindMap }

// Bind registers a field under name, backed by resolve.
func (m *Map) Bind(name string, resolve fieldBinding) {
	m.fields[name] = resolve
	m.bumpVersion()
}

// BindValue is a convenience over Bind for a value already held in the
// reactive store: resolving the field subscribes to that leaf value, in
// addition to the map version subscription Map.Get has already made.
func BindValue[T any](m *Map, name string, v reactive.Value[T], toState func(T) State) {
	m.Bind(name, func(sub reactive.Subscriber) State {
		return toState(v.ValueRef(sub))
	})
}

// Delete removes a field, notifying structural subscribers.
func (m *Map) Delete(name string) {
	if _, ok := m.fields[name]; !ok {
		return
	}
	delete(m.fields, name)
	m.bumpVersion()
}

func (m *Map) bumpVersion() {
	u := m.version.ToMut()
	u.Set(*u.Get() + 1)
	u.Drop()
}

// Get implements State: the map's own version value is subscribed to sub
// (so structural changes notify it), then the named field's binding (if
// any) is returned unresolved.
func (m *Map) Get(path string, sub reactive.Subscriber) (PendingValue, bool) {
	m.version.Subscribe(sub)
	resolve, ok := m.fields[path]
	if !ok {
		return PendingValue{}, false
	}
	return PendingValue{resolve: resolve}, true
}

// List is a dynamic, index-addressed composite.
type List struct {
	base
	items   []fieldBinding
	version reactive.Value[int]
}

// NewList creates an empty dynamic list backed by store.
func NewList(store *reactive.Store) *List {
	return &List{version: reactive.Insert(store, 0)}
}

func (*List) Kind() Kind { return KindList }

// Push appends a new element, signaling reactive.Push so a subscribed
// For widget materializes exactly one new Iteration rather than
// rebuilding its whole child list.
func (l *List) Push(resolve fieldBinding) {
	l.items = append(l.items, resolve)
	l.version.EmitListChange(reactive.Change{Kind: reactive.Push})
}

// InsertAt inserts resolve at index, shifting later elements up and
// signaling reactive.InsertIndex. Out-of-range clamps to an append.
func (l *List) InsertAt(index int, resolve fieldBinding) {
	if index < 0 || index > len(l.items) {
		index = len(l.items)
	}
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = resolve
	l.version.EmitListChange(reactive.Change{Kind: reactive.InsertIndex, Index: index})
}

// RemoveAt deletes the element at index, shifting later elements down
// and signaling reactive.RemoveIndex so a subscribed For widget detaches
// exactly the one Iteration at that index rather than rebuilding its
// whole child list. Out-of-range is a no-op.
func (l *List) RemoveAt(index int) {
	if index < 0 || index >= len(l.items) {
		return
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.version.EmitListChange(reactive.Change{Kind: reactive.RemoveIndex, Index: index})
}

// Len reports the number of elements.
func (l *List) Len() int { return len(l.items) }

// Lookup implements State: the list's own version value is subscribed to
// sub, then the element at index (if in range) is returned unresolved.
func (l *List) Lookup(index int, sub reactive.Subscriber) (PendingValue, bool) {
	l.version.Subscribe(sub)
	if index < 0 || index >= len(l.items) {
		return PendingValue{}, false
	}
	return PendingValue{resolve: l.items[index]}, true
}

// StaticList is a read-only view over a slice of already-evaluated
// State values, such as a `[1, 2, 3]` template list expression: every
// element is fixed at construction, so unlike List there is no version
// counter to subscribe to.
type StaticList struct {
	base
	Items []State
}

func (StaticList) Kind() Kind { return KindList }

func (l StaticList) Lookup(index int, sub reactive.Subscriber) (PendingValue, bool) {
	if index < 0 || index >= len(l.Items) {
		return PendingValue{}, false
	}
	item := l.Items[index]
	return PendingValue{resolve: func(reactive.Subscriber) State { return item }}, true
}

// StaticMap is a read-only view over a set of already-evaluated State
// values keyed by name, such as a `{a: 1, b: 2}` template map
// expression.
type StaticMap struct {
	base
	Fields map[string]State
}

func (StaticMap) Kind() Kind { return KindMap }

func (m StaticMap) Get(path string, sub reactive.Subscriber) (PendingValue, bool) {
	v, ok := m.Fields[path]
	if !ok {
		return PendingValue{}, false
	}
	return PendingValue{resolve: func(reactive.Subscriber) State { return v }}, true
}
