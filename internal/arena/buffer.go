package arena

// SliceIndex addresses one append-only segment of a Buffer.
type SliceIndex struct {
	start int
	end   int
}

// Len reports the number of elements in the slice this index addresses.
func (s SliceIndex) Len() int { return s.end - s.start }

// Buffer is an append-only store of T segmented by SliceIndex. It backs
// text layout's byte storage and the template pipeline's token storage:
// both want to grow a tail segment cheaply and hand out a stable index to
// read it back later.
type Buffer[T any] struct {
	data []T
}

// NewBuffer creates an empty Buffer.
func NewBuffer[T any]() *Buffer[T] {
	return &Buffer[T]{}
}

// Session is a mutator scoped to the tail of a Buffer. All writes through
// a Session append past the buffer's length at the time the Session was
// created; Truncate is only legal while the Session's segment is still the
// last one written.
type Session[T any] struct {
	buf   *Buffer[T]
	start int
}

// NewSession returns a mutator scoped to the buffer's current tail.
func (b *Buffer[T]) NewSession() *Session[T] {
	return &Session[T]{buf: b, start: len(b.data)}
}

// Push appends a value to the session's segment.
func (s *Session[T]) Push(v T) {
	s.buf.data = append(s.buf.data, v)
}

// Extend appends a slice of values to the session's segment.
func (s *Session[T]) Extend(vs []T) {
	s.buf.data = append(s.buf.data, vs...)
}

// Index returns a SliceIndex spanning everything written through this
// session so far.
func (s *Session[T]) Index() SliceIndex {
	return SliceIndex{start: s.start, end: len(s.buf.data)}
}

// Truncate drops n trailing elements from the buffer's tail. Panics if n
// exceeds the number of elements written since the session was created.
// It does not check whether another session has appended after this one;
// such later elements are counted and dropped first.
func (s *Session[T]) Truncate(n int) {
	if len(s.buf.data) < s.start {
		panic("arena: session truncate on invalid buffer state")
	}
	segLen := len(s.buf.data) - s.start
	if segLen < n {
		panic("arena: truncate beyond segment length")
	}
	s.buf.data = s.buf.data[:len(s.buf.data)-n]
}

// Pop removes and returns the last element written in this session. Panics
// if the session's segment is empty.
func (s *Session[T]) Pop() T {
	if len(s.buf.data) == s.start {
		panic("arena: pop from empty session segment")
	}
	last := s.buf.data[len(s.buf.data)-1]
	s.buf.data = s.buf.data[:len(s.buf.data)-1]
	return last
}

// Slice returns the elements addressed by idx.
func (b *Buffer[T]) Slice(idx SliceIndex) []T {
	if idx.start < 0 || idx.end > len(b.data) || idx.start > idx.end {
		return nil
	}
	return b.data[idx.start:idx.end]
}

// SliceMut returns a mutable view of the elements addressed by idx.
func (b *Buffer[T]) SliceMut(idx SliceIndex) []T {
	if idx.start < 0 || idx.end > len(b.data) || idx.start > idx.end {
		return nil
	}
	return b.data[idx.start:idx.end:idx.end]
}

// Len reports the number of elements currently stored; the buffer only
// shrinks through a session's Truncate or Pop at the tail.
func (b *Buffer[T]) Len() int { return len(b.data) }
