// Package arena provides the index-addressed container family the rest of
// Anathema is built on: slabs with generation-checked keys, a refcounted
// variant that reuses backing storage on drop, a small insertion-ordered
// map, an append-only segmented buffer, and a transactional tree.
//
// Every container in this package hands out small integer keys instead of
// pointers. A key stays valid for the lifetime of the value it names; once
// that value is removed the key's generation is stale and any later lookup
// with it returns false rather than resurrecting an unrelated value that
// happens to reuse the same slot.
package arena

// Key identifies a slot in a Slab. Index selects the slot; Generation
// disambiguates a slot that has been reused after a Remove. Comparing two
// Keys with == is always safe and is the only supported way to test
// identity.
type Key struct {
	Index      uint32
	Generation uint32
}

// Zero is the default, never-valid Key.
var Zero = Key{}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
	nextFree   int // -1 when this is the tail of the free list
}

// Slab is a generational free-list slab. Insert returns a Key; Remove
// invalidates it by bumping the slot's generation, so any Key captured
// before the remove will fail Get/GetMut rather than observe whatever
// value is later inserted into the reused slot.
type Slab[T any] struct {
	slots      []slot[T]
	freeHead   int // -1 when there is no free slot
	len        int
	checkedOut map[Key]checkoutMark
}

// NewSlab creates an empty slab.
func NewSlab[T any]() *Slab[T] {
	return &Slab[T]{freeHead: -1}
}

// Len reports the number of occupied slots.
func (s *Slab[T]) Len() int { return s.len }

// Insert stores value and returns the Key that addresses it.
func (s *Slab[T]) Insert(value T) Key {
	if s.freeHead == -1 {
		gen := uint32(1)
		s.slots = append(s.slots, slot[T]{value: value, generation: gen, occupied: true, nextFree: -1})
		s.len++
		return Key{Index: uint32(len(s.slots) - 1), Generation: gen}
	}

	idx := s.freeHead
	sl := &s.slots[idx]
	s.freeHead = sl.nextFree
	sl.value = value
	sl.occupied = true
	sl.nextFree = -1
	s.len++
	return Key{Index: uint32(idx), Generation: sl.generation}
}

func (s *Slab[T]) lookup(key Key) (*slot[T], bool) {
	idx := int(key.Index)
	if idx < 0 || idx >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[idx]
	if !sl.occupied || sl.generation != key.Generation {
		return nil, false
	}
	return sl, true
}

// Get returns the value at key, and whether key is still valid.
func (s *Slab[T]) Get(key Key) (T, bool) {
	sl, ok := s.lookup(key)
	if _, out := s.checkedOut[key]; out {
		ok = false
	}
	if !ok {
		var zero T
		return zero, false
	}
	return sl.value, true
}

// GetPtr returns a mutable pointer to the stored value, or nil if key is
// stale or out of range.
func (s *Slab[T]) GetPtr(key Key) *T {
	sl, ok := s.lookup(key)
	if _, out := s.checkedOut[key]; out {
		ok = false
	}
	if !ok {
		return nil
	}
	return &sl.value
}

// Remove takes the value out of the slab, bumping the slot's generation so
// the old key can never address a future occupant of the same index.
// Panics if key does not currently address an occupied slot.
func (s *Slab[T]) Remove(key Key) T {
	sl, ok := s.lookup(key)
	if !ok {
		panic("arena: remove of vacant or stale slot")
	}
	value := sl.value
	var zero T
	sl.value = zero
	sl.occupied = false
	sl.generation++
	sl.nextFree = s.freeHead
	s.freeHead = int(key.Index)
	s.len--
	return value
}

// TryRemove behaves like Remove but returns false instead of panicking when
// key no longer addresses a live value.
func (s *Slab[T]) TryRemove(key Key) (T, bool) {
	if _, ok := s.lookup(key); !ok {
		var zero T
		return zero, false
	}
	return s.Remove(key), true
}

// Contains reports whether key currently addresses a live value.
func (s *Slab[T]) Contains(key Key) bool {
	_, ok := s.lookup(key)
	return ok
}

// Each calls fn for every occupied slot in index order.
func (s *Slab[T]) Each(fn func(Key, *T)) {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.occupied {
			continue
		}
		fn(Key{Index: uint32(i), Generation: sl.generation}, &sl.value)
	}
}

// Ticket is a value temporarily checked out of a Slab via Checkout. It must
// be returned with Slab.Restore before the slab is used again at that key.
type Ticket[T any] struct {
	key   Key
	value T
}

type checkoutMark struct{}

// Checkout removes the value at key from normal access, leaving a
// tombstone that panics if Checkout is called again for the same key
// before Restore. The returned Ticket owns the value in the meantime.
func (s *Slab[T]) Checkout(key Key) Ticket[T] {
	sl, ok := s.lookup(key)
	if !ok {
		panic("arena: checkout of vacant or stale slot")
	}
	if s.checkedOut == nil {
		s.checkedOut = map[Key]checkoutMark{}
	}
	if _, out := s.checkedOut[key]; out {
		panic("arena: double checkout")
	}
	s.checkedOut[key] = checkoutMark{}
	value := sl.value
	var zero T
	sl.value = zero
	return Ticket[T]{key: key, value: value}
}

// Restore returns a value previously removed by Checkout to its slot.
func (s *Slab[T]) Restore(t Ticket[T]) {
	sl, ok := s.lookup(t.key)
	if !ok {
		panic("arena: restore to vacant or stale slot")
	}
	if s.checkedOut == nil {
		panic("arena: restore without checkout")
	}
	if _, out := s.checkedOut[t.key]; !out {
		panic("arena: restore without checkout")
	}
	delete(s.checkedOut, t.key)
	sl.value = t.value
}
