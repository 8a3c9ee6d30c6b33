package eval

import "github.com/anathema-go/anathema/state"

// StateTable is the component-state-slot registry a Scope's State
// entries address indirectly by id, rather than holding a direct
// reference — the same indirection the widget tree uses for WidgetId,
// so a state can be relocated or dropped without invalidating every
// scope frame that still names its old id.
type StateTable struct {
	states map[StateID]state.State
	next   StateID
}

// NewStateTable creates an empty StateTable.
func NewStateTable() *StateTable {
	return &StateTable{states: map[StateID]state.State{}}
}

// Insert allocates a new slot for s and returns its id.
func (t *StateTable) Insert(s state.State) StateID {
	t.next++
	t.states[t.next] = s
	return t.next
}

// Get resolves id to its State, if the slot is still live.
func (t *StateTable) Get(id StateID) (state.State, bool) {
	s, ok := t.states[id]
	return s, ok
}

// Remove drops a state slot, e.g. when its owning component is torn
// down.
func (t *StateTable) Remove(id StateID) {
	delete(t.states, id)
}

// AttributeTable maps a component widget's id to the State view over the
// attributes its call site supplied — what the `attributes` identifier
// resolves to inside that component's body.
type AttributeTable struct {
	attrs map[WidgetID]state.State
}

// NewAttributeTable creates an empty AttributeTable.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{attrs: map[WidgetID]state.State{}}
}

// Insert records the attribute view for a component widget id.
func (t *AttributeTable) Insert(id WidgetID, s state.State) {
	t.attrs[id] = s
}

// Get resolves a component widget id to its attribute view.
func (t *AttributeTable) Get(id WidgetID) (state.State, bool) {
	s, ok := t.attrs[id]
	return s, ok
}

// Remove drops the attribute view for a widget id that has been torn
// down.
func (t *AttributeTable) Remove(id WidgetID) {
	delete(t.attrs, id)
}
