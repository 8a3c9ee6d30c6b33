package reactive

// Subscriber identifies a widget attribute that depends on a reactive
// value: the widget it belongs to, and which of that widget's attribute
// slots should be re-evaluated when the value changes.
type Subscriber struct {
	WidgetKey      uint64
	AttributeIndex uint32
}

// ChangeKind classifies a single reactive signal.
type ChangeKind int

const (
	// Changed means the value itself was overwritten in place.
	Changed ChangeKind = iota
	// Dropped means the owning Value was dropped; no further
	// notifications will follow for its subscribers.
	Dropped
	// InsertIndex means an element was inserted at the given index of a
	// list-shaped value.
	InsertIndex
	// RemoveIndex means an element was removed at the given index of a
	// list-shaped value.
	RemoveIndex
	// Push means an element was appended to a list-shaped value.
	Push
)

// Change pairs a ChangeKind with the index it applies to, for
// InsertIndex/RemoveIndex. Index is unused for Changed/Dropped/Push.
type Change struct {
	Kind  ChangeKind
	Index int
}

// subscribers is an inline Empty|One|Arr|Heap variant: most values have
// zero or one subscriber, so those cases avoid any allocation; only wide
// fan-out falls back to a slice.
type subscribers struct {
	empty bool
	one   Subscriber
	arr   [3]Subscriber
	arrN  int
	heap  []Subscriber
	state subState
}

type subState int

const (
	subEmpty subState = iota
	subOne
	subArr
	subHeap
)

func newSubscribers() *subscribers {
	return &subscribers{state: subEmpty}
}

// insert adds sub, deduplicating so a subscriber is never registered twice
// for the same value.
func (s *subscribers) insert(sub Subscriber) {
	switch s.state {
	case subEmpty:
		s.one = sub
		s.state = subOne
	case subOne:
		if s.one == sub {
			return
		}
		s.arr[0] = s.one
		s.arr[1] = sub
		s.arrN = 2
		s.state = subArr
	case subArr:
		for _, existing := range s.arr[:s.arrN] {
			if existing == sub {
				return
			}
		}
		if s.arrN == len(s.arr) {
			heap := make([]Subscriber, s.arrN, s.arrN+1)
			copy(heap, s.arr[:s.arrN])
			heap = append(heap, sub)
			s.heap = heap
			s.state = subHeap
			return
		}
		s.arr[s.arrN] = sub
		s.arrN++
	case subHeap:
		for _, existing := range s.heap {
			if existing == sub {
				return
			}
		}
		s.heap = append(s.heap, sub)
	}
}

// remove deletes sub by exact (key, index) equality; unsubscribe never
// matches partially.
func (s *subscribers) remove(sub Subscriber) {
	switch s.state {
	case subEmpty:
		return
	case subOne:
		if s.one == sub {
			s.state = subEmpty
		}
	case subArr:
		for i := 0; i < s.arrN; i++ {
			if s.arr[i] == sub {
				copy(s.arr[i:s.arrN-1], s.arr[i+1:s.arrN])
				s.arrN--
				if s.arrN == 0 {
					s.state = subEmpty
				}
				return
			}
		}
	case subHeap:
		for i, existing := range s.heap {
			if existing == sub {
				s.heap = append(s.heap[:i], s.heap[i+1:]...)
				break
			}
		}
		if len(s.heap) == 0 {
			s.state = subEmpty
		}
	}
}

// clear removes every subscriber without visiting them.
func (s *subscribers) clear() {
	s.state = subEmpty
	s.arrN = 0
	s.heap = nil
}

// isEmpty reports whether there are no subscribers.
func (s *subscribers) isEmpty() bool {
	return s.state == subEmpty
}

// snapshot returns a copy of the current subscribers as a plain slice,
// suitable for handing to the change queue (which must see the set as it
// was at enqueue time, not as it evolves afterwards).
func (s *subscribers) snapshot() []Subscriber {
	switch s.state {
	case subEmpty:
		return nil
	case subOne:
		return []Subscriber{s.one}
	case subArr:
		out := make([]Subscriber, s.arrN)
		copy(out, s.arr[:s.arrN])
		return out
	case subHeap:
		out := make([]Subscriber, len(s.heap))
		copy(out, s.heap)
		return out
	default:
		return nil
	}
}

// Len reports the number of registered subscribers. Exposed for tests.
func (s *subscribers) Len() int {
	switch s.state {
	case subEmpty:
		return 0
	case subOne:
		return 1
	case subArr:
		return s.arrN
	case subHeap:
		return len(s.heap)
	default:
		return 0
	}
}
