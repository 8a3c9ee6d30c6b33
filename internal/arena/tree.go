package arena

// Tree is an arena of (path, value) pairs plus a layout of child index
// sequences. It underlies the widget tree: nodes are addressed by stable
// Key, children are an ordered list of Keys, and both insertion and
// removal go through explicit, abortable steps so a half-built subtree
// never becomes visible to the rest of the runtime.
type Tree[V any] struct {
	slab     *Slab[node[V]]
	removed  []Key
	rootKeys []Key
}

type node[V any] struct {
	value    V
	children []Key
	parent   Key
	hasRoot  bool
}

// NewTree creates an empty Tree.
func NewTree[V any]() *Tree[V] {
	return &Tree[V]{slab: NewSlab[node[V]]()}
}

// Transaction stages the insertion of one new node. Nothing is visible to
// the tree until Commit (or, for a child, CommitChild) is called; an
// abandoned Transaction that is never committed leaves the tree
// untouched.
type Transaction[V any] struct {
	tree  *Tree[V]
	value V
	set   bool
}

// Begin starts a Transaction carrying value.
func (t *Tree[V]) Begin(value V) *Transaction[V] {
	return &Transaction[V]{tree: t, value: value, set: true}
}

// Abort discards the transaction. Calling Commit/CommitChild after Abort
// panics.
func (tx *Transaction[V]) Abort() {
	tx.set = false
}

// Commit inserts the transaction's value as a new root node and returns
// its Key.
func (tx *Transaction[V]) Commit() Key {
	if !tx.set {
		panic("arena: commit of aborted transaction")
	}
	key := tx.tree.slab.Insert(node[V]{value: tx.value, hasRoot: false})
	tx.tree.rootKeys = append(tx.tree.rootKeys, key)
	tx.set = false
	return key
}

// CommitChild inserts the transaction's value as a child of parent and
// returns its Key. Fails (returns Zero, false) if parent no longer exists
// — e.g. it was concurrently removed — rather than silently attaching to
// nothing.
func (tx *Transaction[V]) CommitChild(parent Key) (Key, bool) {
	if !tx.set {
		panic("arena: commit of aborted transaction")
	}
	if !tx.tree.slab.Contains(parent) {
		return Key{}, false
	}
	key := tx.tree.slab.Insert(node[V]{value: tx.value, parent: parent, hasRoot: true})
	// Insert may grow the slab's backing slice, so the parent is looked
	// up only after it.
	parentNode := tx.tree.slab.GetPtr(parent)
	parentNode.children = append(parentNode.children, key)
	tx.set = false
	return key, true
}

// Get returns a pointer to the value stored at key, or nil.
func (t *Tree[V]) Get(key Key) *V {
	n := t.slab.GetPtr(key)
	if n == nil {
		return nil
	}
	return &n.value
}

// Children returns the ordered child keys of key.
func (t *Tree[V]) Children(key Key) []Key {
	n := t.slab.GetPtr(key)
	if n == nil {
		return nil
	}
	return n.children
}

// Parent returns the parent key of key and whether key has one.
func (t *Tree[V]) Parent(key Key) (Key, bool) {
	n := t.slab.GetPtr(key)
	if n == nil || !n.hasRoot {
		return Key{}, false
	}
	return n.parent, true
}

// Roots returns the keys of every node with no parent.
func (t *Tree[V]) Roots() []Key {
	return t.rootKeys
}

// Truncate drops all children of key beyond the first n, recursively
// marking every descendant of the dropped children for removal without
// disturbing the indices of any sibling that is kept.
func (t *Tree[V]) Truncate(key Key, n int) {
	parentNode := t.slab.GetPtr(key)
	if parentNode == nil || len(parentNode.children) <= n {
		return
	}
	dropped := parentNode.children[n:]
	parentNode.children = parentNode.children[:n:n]
	for _, child := range dropped {
		t.markRemoved(child)
	}
}

func (t *Tree[V]) markRemoved(key Key) {
	n := t.slab.GetPtr(key)
	if n == nil {
		return
	}
	for _, child := range n.children {
		t.markRemoved(child)
	}
	t.slab.Remove(key)
	t.removed = append(t.removed, key)
}

// Remove detaches key from its parent's child list (if any) and marks the
// whole subtree rooted at key for removal.
func (t *Tree[V]) Remove(key Key) {
	n := t.slab.GetPtr(key)
	if n == nil {
		return
	}
	if n.hasRoot {
		if parentNode := t.slab.GetPtr(n.parent); parentNode != nil {
			for i, c := range parentNode.children {
				if c == key {
					parentNode.children = append(parentNode.children[:i], parentNode.children[i+1:]...)
					break
				}
			}
		}
	} else {
		for i, r := range t.rootKeys {
			if r == key {
				t.rootKeys = append(t.rootKeys[:i], t.rootKeys[i+1:]...)
				break
			}
		}
	}
	t.markRemoved(key)
}

// DrainRemoved returns, and clears, the queue of keys removed since the
// last call. The runtime reads this to reclaim any per-widget side tables
// (attribute storage, paint caches) keyed by the same Key.
func (t *Tree[V]) DrainRemoved() []Key {
	out := t.removed
	t.removed = nil
	return out
}

// Len reports the number of live nodes.
func (t *Tree[V]) Len() int { return t.slab.Len() }
