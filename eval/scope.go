// Package eval resolves template expressions against the running scope
// chain: the stack of bindings a component, for-loop iteration, or
// control-flow branch pushes while the widget tree is built and updated.
package eval

import (
	"github.com/anathema-go/anathema/reactive"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
)

// Expression is the expression-tree type the scope chain and evaluator
// operate over; it is simply template.Expression, aliased here so the
// rest of this package reads without repeating the import qualifier.
type Expression = template.Expression

// StateID addresses one component's state slot in a StateTable.
type StateID int

// WidgetID addresses a node in the widget tree; the eval package only
// ever uses it as an opaque key into an AttributeTable, never dereferencing
// it itself, so the tree package is free to define its own richer
// identity later and hand this value through unchanged.
type WidgetID uint64

type entryKind int

const (
	entryEmpty entryKind = iota
	entryScope
	entryState
	entryComponentAttributes
	entryPending
	entryExpression
	entryExpressions
)

// entry is one stack slot. Scope has no sum-type equivalent in Go, so a
// single tagged struct plays the role of the original's Entry enum —
// the same shape reactive's subscribers type uses for its inline
// Empty|One|Arr|Heap variants.
type entry struct {
	kind          entryKind
	binding       string
	stateID       StateID
	widgetID      WidgetID
	pending       state.PendingValue
	expr          Expression
	exprs         []Expression
	prevScopeSize int
}

// Scope is a stack of bindings visible to expression evaluation, in
// insertion order. push/pop bracket one nested scope (a component body,
// a loop iteration, a branch body); clear wipes everything in one pass.
//
// A Scope is meant to be created once per runtime and reused across
// evaluations rather than rebuilt per node, matching the store's
// single-goroutine convention.
type Scope struct {
	storage          []entry
	currentScopeSize int
	storageIndex     int
}

// NewScope creates an empty Scope.
func NewScope() *Scope { return &Scope{} }

// Len reports how many live entries are currently on the stack.
func (s *Scope) Len() int { return s.storageIndex }

// Clear overwrites every live entry with the zero entry and resets the
// stack to empty, without shrinking the backing storage.
func (s *Scope) Clear() {
	for i := 0; i < s.storageIndex; i++ {
		s.storage[i] = entry{}
	}
	s.storageIndex = 0
	s.currentScopeSize = 0
}

func (s *Scope) insert(e entry) {
	if s.storageIndex == len(s.storage) {
		s.storage = append(s.storage, e)
	} else {
		s.storage[s.storageIndex] = e
	}
	s.currentScopeSize++
	s.storageIndex++
}

// Push opens a new nested scope: entries inserted after Push are torn
// down together by the matching Pop.
func (s *Scope) Push() {
	s.insert(entry{kind: entryScope, prevScopeSize: s.currentScopeSize})
	s.currentScopeSize = 0
}

// Pop tears down the most recently opened scope, restoring every entry
// slot it used to entryEmpty and rewinding the stack to just before its
// marker. Popping an empty stack is a no-op.
func (s *Scope) Pop() {
	if s.storageIndex == 0 {
		return
	}
	index := s.storageIndex - 1 - s.currentScopeSize
	marker := s.storage[index]
	if marker.kind != entryScope {
		panic("eval: scope pop without a matching marker")
	}
	for i := index; i < s.storageIndex; i++ {
		s.storage[i] = entry{}
	}
	s.storageIndex = index
	s.currentScopeSize = marker.prevScopeSize
}

// PushState scopes a component's state slot, making the `state`
// identifier resolve to it for the remainder of the current scope.
func (s *Scope) PushState(id StateID) {
	s.insert(entry{kind: entryState, stateID: id})
}

// PushComponentAttributes scopes a component's call-site attributes,
// making the `attributes` identifier resolve to it.
func (s *Scope) PushComponentAttributes(id WidgetID) {
	s.insert(entry{kind: entryComponentAttributes, widgetID: id})
}

// PushPending binds an identifier to a pending reactive value, e.g. the
// loop variable of a `for x in collection` at the element currently
// being iterated.
func (s *Scope) PushPending(binding string, p state.PendingValue) {
	s.insert(entry{kind: entryPending, binding: binding, pending: p})
}

// PushExpression binds an identifier to an unresolved expression, e.g. a
// `let` global or a component call-site attribute passed through by
// name.
func (s *Scope) PushExpression(binding string, expr Expression) {
	s.insert(entry{kind: entryExpression, binding: binding, expr: expr})
}

// PushExpressions binds an identifier to a list of expressions — the
// static element list of a `for` loop whose collection is itself a
// literal, so each iteration can be scoped to one element by index
// without re-evaluating the whole list.
func (s *Scope) PushExpressions(binding string, exprs []Expression) {
	s.insert(entry{kind: entryExpressions, binding: binding, exprs: exprs})
}

// State returns the id of the nearest scoped component state, walking
// outward from the innermost scope.
func (s *Scope) State() (StateID, bool) {
	for i := s.storageIndex - 1; i >= 0; i-- {
		if s.storage[i].kind == entryState {
			return s.storage[i].stateID, true
		}
	}
	return 0, false
}

// ComponentAttributes returns the id of the nearest scoped component's
// call-site attributes.
func (s *Scope) ComponentAttributes() (WidgetID, bool) {
	for i := s.storageIndex - 1; i >= 0; i-- {
		if s.storage[i].kind == entryComponentAttributes {
			return s.storage[i].widgetID, true
		}
	}
	return 0, false
}

type lookupKind int

const (
	lookupNone lookupKind = iota
	lookupPending
	lookupExpr
)

type lookupResult struct {
	kind    lookupKind
	pending state.PendingValue
	expr    Expression
}

// lookup reverse-scans for the nearest binding matching name, returning
// whichever of Pending/Expression was scoped for it. State and
// ComponentAttributes entries never match an arbitrary identifier — only
// the literal names "state" and "attributes" reach them, handled
// separately by the caller.
func (s *Scope) lookup(name string) lookupResult {
	for i := s.storageIndex - 1; i >= 0; i-- {
		e := s.storage[i]
		if e.binding != name {
			continue
		}
		switch e.kind {
		case entryPending:
			return lookupResult{kind: lookupPending, pending: e.pending}
		case entryExpression:
			return lookupResult{kind: lookupExpr, expr: e.expr}
		}
	}
	return lookupResult{}
}

// expressions returns the nearest Expressions entry bound to name — used
// when a for-loop needs to scope one specific element of a static
// collection by index, rather than resolving the whole thing.
func (s *Scope) expressions(name string) ([]Expression, bool) {
	for i := s.storageIndex - 1; i >= 0; i-- {
		e := s.storage[i]
		if e.kind == entryExpressions && e.binding == name {
			return e.exprs, true
		}
	}
	return nil, false
}

// ScopeIndexed binds name to element index of whatever collection is
// already scoped under that name — a Pending collection narrows to the
// state at that index, an Expressions list narrows to the expression at
// that index. This is how a for-loop iteration rebinds its loop variable
// to one element without re-walking the whole scope chain from scratch.
func (s *Scope) ScopeIndexed(name string, index int, sub reactive.Subscriber) {
	for i := s.storageIndex - 1; i >= 0; i-- {
		e := s.storage[i]
		if e.binding != name {
			continue
		}
		switch e.kind {
		case entryPending:
			collection, ok := e.pending.ToValue(sub)
			if !ok {
				return
			}
			elem, ok := collection.Lookup(index, sub)
			if !ok {
				return
			}
			s.insert(entry{kind: entryPending, binding: name, pending: elem})
			return
		case entryExpressions:
			if index < 0 || index >= len(e.exprs) {
				return
			}
			s.insert(entry{kind: entryExpression, binding: name, expr: e.exprs[index]})
			return
		}
	}
}
