package arena

// SmallIndex addresses an entry inside a SmallMap.
type SmallIndex uint16

// SmallMap is an insertion-ordered map tuned for small N (expected at most
// a few dozen entries, e.g. a widget's attribute set). Lookup is linear;
// for the fan-outs Anathema actually sees this beats a hash map's constant
// overhead.
type SmallMap[K comparable, V any] struct {
	keys   []K
	values []V
}

// NewSmallMap creates an empty SmallMap.
func NewSmallMap[K comparable, V any]() *SmallMap[K, V] {
	return &SmallMap[K, V]{}
}

// Len reports the number of entries.
func (m *SmallMap[K, V]) Len() int { return len(m.keys) }

func (m *SmallMap[K, V]) indexOf(key K) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Insert adds or updates the entry for key, returning its SmallIndex.
func (m *SmallMap[K, V]) Insert(key K, value V) SmallIndex {
	if i := m.indexOf(key); i >= 0 {
		m.values[i] = value
		return SmallIndex(i)
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
	return SmallIndex(len(m.keys) - 1)
}

// Get looks up the value for key.
func (m *SmallMap[K, V]) Get(key K) (V, bool) {
	if i := m.indexOf(key); i >= 0 {
		return m.values[i], true
	}
	var zero V
	return zero, false
}

// At returns the key/value pair at a SmallIndex.
func (m *SmallMap[K, V]) At(idx SmallIndex) (K, V, bool) {
	i := int(idx)
	if i < 0 || i >= len(m.keys) {
		var zk K
		var zv V
		return zk, zv, false
	}
	return m.keys[i], m.values[i], true
}

// Remove deletes the entry for key, preserving insertion order of the
// remaining entries.
func (m *SmallMap[K, V]) Remove(key K) bool {
	i := m.indexOf(key)
	if i < 0 {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.values = append(m.values[:i], m.values[i+1:]...)
	return true
}

// Each calls fn for every entry in insertion order.
func (m *SmallMap[K, V]) Each(fn func(K, V)) {
	for i, k := range m.keys {
		fn(k, m.values[i])
	}
}
