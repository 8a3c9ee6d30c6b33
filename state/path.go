package state

import "github.com/anathema-go/anathema/reactive"

// Segment is one step of a dotted/indexed path: either a named key
// (`.field`) or a numeric index (`[n]`). Exactly one of Name/Index
// applies, selected by IsIndex.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// Key builds a named path segment.
func Key(name string) Segment { return Segment{Name: name} }

// Idx builds an index path segment.
func Idx(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Resolve walks path against root left-to-right, as described for
// composite expressions like `a.b[c].d`: each segment subscribes sub to
// whatever container it crosses, and the whole chain aborts — returning
// false — the moment any segment comes back empty, without undoing the
// subscriptions already registered along the way.
func Resolve(root State, path []Segment, sub reactive.Subscriber) (State, bool) {
	current := root
	for _, seg := range path {
		var pending PendingValue
		var ok bool
		if seg.IsIndex {
			pending, ok = current.Lookup(seg.Index, sub)
		} else {
			pending, ok = current.Get(seg.Name, sub)
		}
		if !ok {
			return nil, false
		}
		current, ok = pending.ToValue(sub)
		if !ok {
			return nil, false
		}
	}
	return current, true
}
