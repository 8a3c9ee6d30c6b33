// Package reactive implements the owned/shared value store: the layer
// that holds application state behind generational keys, tracks which
// widget attributes read which values, and turns writes into a queue of
// signals for the runtime to fold into the next layout pass.
//
// A Store is not safe for concurrent use from multiple goroutines. The
// original design confines all reactive bookkeeping to a single thread;
// Go has no compiler-enforced thread-local storage, so the same
// discipline is carried here as a convention instead of a guarantee: a
// Store must be driven from one goroutine at a time (normally the
// runtime's tick loop), the same way a single widget tree belongs to one
// render loop.
package reactive

import "github.com/anathema-go/anathema/internal/arena"

// borrowState tracks, for a single owned slot, whether it is currently
// lent out and in what mode. Rust encodes this as compile-time borrow
// checking; here the same exclusivity rules are enforced at runtime and
// a violation panics rather than silently aliasing.
type borrowState int

const (
	borrowFree borrowState = iota
	borrowShared
	borrowUnique
)

type ownedSlot struct {
	box        any
	state      borrowState
	shareCount int
}

// Store owns every reactive value in an application: the slab of boxed
// values, the parallel slab of subscriber sets, and the queue of changes
// accumulated since the last drain.
type Store struct {
	owned   *arena.Slab[ownedSlot]
	subs    *arena.Slab[*subscribers]
	changes *changeQueue
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		owned:   arena.NewSlab[ownedSlot](),
		subs:    arena.NewSlab[*subscribers](),
		changes: newChangeQueue(),
	}
}

// BorrowError reports a borrow-discipline violation: a unique borrow
// requested while a shared borrow is outstanding, or vice versa.
type BorrowError struct {
	Key arena.Key
	Msg string
}

func (e *BorrowError) Error() string { return e.Msg }

func borrowPanic(key arena.Key, msg string) {
	panic(&BorrowError{Key: key, Msg: msg})
}

// Insert stores v and returns a Value handle referring to it.
func Insert[T any](s *Store, v T) Value[T] {
	box := new(T)
	*box = v
	key := s.owned.Insert(ownedSlot{box: box, state: borrowFree})
	subKey := s.subs.Insert(newSubscribers())
	if subKey != key {
		// The two slabs are expected to hand out identical key sequences
		// since every insert is paired; a mismatch means a bug in the
		// pairing discipline rather than a recoverable runtime state.
		panic("reactive: owned/subscriber slab desync")
	}
	return Value[T]{store: s, key: key}
}

// Value is a handle to a reactively-tracked T. It carries no data of its
// own; all state lives in the Store, addressed by key, so Value is cheap
// to copy and pass around scope chains.
type Value[T any] struct {
	store *Store
	key   arena.Key
}

// IsZero reports whether v is the zero Value, which refers to nothing.
func (v Value[T]) IsZero() bool { return v.store == nil }

func (v Value[T]) slot() *ownedSlot {
	return v.store.owned.GetPtr(v.key)
}

// Subscribe registers sub to be notified whenever v changes.
func (v Value[T]) Subscribe(sub Subscriber) {
	s := v.store.subs.GetPtr(v.key)
	if s == nil {
		return
	}
	(*s).insert(sub)
}

// Unsubscribe removes sub from v's subscriber set.
func (v Value[T]) Unsubscribe(sub Subscriber) {
	s := v.store.subs.GetPtr(v.key)
	if s == nil {
		return
	}
	(*s).remove(sub)
}

// ToMut takes a unique, mutable borrow of v. Panics if a shared or
// another unique borrow of v is already outstanding.
func (v Value[T]) ToMut() *Unique[T] {
	slot := v.slot()
	if slot == nil {
		borrowPanic(v.key, "reactive: to_mut on dropped value")
	}
	switch slot.state {
	case borrowShared:
		borrowPanic(v.key, "reactive: to_mut while a shared borrow is outstanding")
	case borrowUnique:
		borrowPanic(v.key, "reactive: to_mut while another unique borrow is outstanding")
	}
	slot.state = borrowUnique
	return &Unique[T]{value: v}
}

// ToRef takes a shared, read-only borrow of v. Panics if a unique borrow
// of v is already outstanding. Any number of shared borrows may coexist.
func (v Value[T]) ToRef() *Shared[T] {
	slot := v.slot()
	if slot == nil {
		borrowPanic(v.key, "reactive: to_ref on dropped value")
	}
	if slot.state == borrowUnique {
		borrowPanic(v.key, "reactive: to_ref while a unique borrow is outstanding")
	}
	slot.state = borrowShared
	slot.shareCount++
	return &Shared[T]{value: v}
}

// ValueRef returns the current value by copy and registers sub as a
// dependent, without taking a borrow. This is the common path used while
// evaluating expressions: a read that does not need exclusivity.
func (v Value[T]) ValueRef(sub Subscriber) T {
	v.Subscribe(sub)
	slot := v.slot()
	if slot == nil {
		var zero T
		return zero
	}
	return *(slot.box.(*T))
}

// ToPending detaches v into a PendingValue that can cross a future
// boundary (e.g. be captured by an async computation) without holding a
// live borrow against the store.
func (v Value[T]) ToPending() PendingValue[T] {
	return PendingValue[T]{value: v}
}

// Drop removes v from the store entirely, delivering a single Dropped
// signal to its subscribers and then discarding the subscriber set. Drop
// must be called explicitly — Go has no destructors, so a Value left
// unreachable without Drop simply leaks its slot until the store itself
// is discarded.
func (v Value[T]) Drop() {
	subsPtr := v.store.subs.GetPtr(v.key)
	if subsPtr != nil {
		snap := (*subsPtr).snapshot()
		v.store.changes.push(snap, Change{Kind: Dropped})
	}
	v.store.owned.TryRemove(v.key)
	v.store.subs.TryRemove(v.key)
}

// emitChanged enqueues a Changed signal for v's current subscriber
// snapshot. Called by Unique's mutable accessor.
func (v Value[T]) emitChanged() {
	subsPtr := v.store.subs.GetPtr(v.key)
	if subsPtr == nil {
		return
	}
	snap := (*subsPtr).snapshot()
	v.store.changes.push(snap, Change{Kind: Changed})
}

// EmitListChange enqueues an InsertIndex/RemoveIndex/Push signal against
// v's current subscribers, without touching v's boxed value. The state
// package's List uses this directly — a structural edit to a list is a
// different signal than overwriting the whole thing, and the widget
// tree's For generator needs the distinction to insert or remove exactly
// one Iteration subtree instead of re-evaluating the whole collection
// expression.
func (v Value[T]) EmitListChange(ch Change) {
	subsPtr := v.store.subs.GetPtr(v.key)
	if subsPtr == nil {
		return
	}
	snap := (*subsPtr).snapshot()
	v.store.changes.push(snap, ch)
}

// Unique is an exclusive, mutable borrow of a Value[T]. While a Unique is
// outstanding, no other borrow of the same value can be taken.
type Unique[T any] struct {
	value Value[T]
	freed bool
}

// Get returns a pointer into the boxed value for direct mutation, and
// immediately emits Changed — matching the original's rule that taking a
// mutable dereference is itself the signal, not whatever happens after
// it returns.
func (u *Unique[T]) Get() *T {
	slot := u.value.slot()
	if slot == nil {
		panic("reactive: get on dropped value")
	}
	u.value.emitChanged()
	return slot.box.(*T)
}

// Set overwrites the value and emits Changed.
func (u *Unique[T]) Set(v T) {
	*u.Get() = v
}

// Drop releases the unique borrow, making the value available again.
func (u *Unique[T]) Drop() {
	if u.freed {
		return
	}
	if slot := u.value.slot(); slot != nil {
		slot.state = borrowFree
	}
	u.freed = true
}

// Shared is a read-only borrow of a Value[T]. Any number of Shared
// borrows of the same value may coexist, but none may coexist with a
// Unique borrow.
type Shared[T any] struct {
	value Value[T]
	freed bool
}

// Get returns the current value by copy.
func (s *Shared[T]) Get() T {
	slot := s.value.slot()
	if slot == nil {
		var zero T
		return zero
	}
	return *(slot.box.(*T))
}

// Drop releases this shared borrow. Once every Shared borrow of a value
// has been dropped, the value returns to borrowFree.
func (s *Shared[T]) Drop() {
	if s.freed {
		return
	}
	if slot := s.value.slot(); slot != nil {
		slot.shareCount--
		if slot.shareCount <= 0 {
			slot.shareCount = 0
			slot.state = borrowFree
		}
	}
	s.freed = true
}

// PendingValue is a Value detached from any live borrow, suitable for
// capture across an expression-evaluation future boundary. ToValue reads
// the current value back, subscribing the caller, once the future completes.
type PendingValue[T any] struct {
	value Value[T]
}

// ToValue upgrades the pending handle to a live value by registering sub
// as a subscriber and returning the current value by copy — a detached
// value reference good for the rest of the current frame.
func (p PendingValue[T]) ToValue(sub Subscriber) T {
	return p.value.ValueRef(sub)
}

// Value returns the underlying Value handle without registering a
// subscription.
func (p PendingValue[T]) Value() Value[T] { return p.value }

// DrainChanges returns and clears every change accumulated since the
// last drain, each paired with the subscriber snapshot it must be
// delivered to.
func (s *Store) DrainChanges() []ChangeEntry {
	return s.changes.drain()
}

// PendingChanges reports how many change deliveries are queued, without
// draining them.
func (s *Store) PendingChanges() int {
	return s.changes.len()
}
