package layout

import (
	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/widget"
)

// Filter selects which Elements a LayoutForEach yields.
type Filter int

const (
	FilterFixed Filter = iota
	FilterFloating
	FilterAll
)

// LayoutForEach walks a widget.Tree and yields only the Element nodes
// that actually occupy layout space, flattening every generator
// (For/ControlFlow) and scope wrapper (ComponentNode/Slot) along the
// way. A For is stepped incrementally: each call asks the tree for one
// more Iteration than it has already materialized, so the tree only
// ever builds as many loop bodies as the walker actually visits.
type LayoutForEach struct {
	tree   *widget.Tree
	ctx    *eval.Context
	filter Filter
}

// NewLayoutForEach builds a walker over tree, evaluating generator
// expansion against ctx.
func NewLayoutForEach(tree *widget.Tree, ctx *eval.Context, filter Filter) *LayoutForEach {
	return &LayoutForEach{tree: tree, ctx: ctx, filter: filter}
}

// Each visits every Element reachable from parent's children, in
// layout order, stopping early if visit returns false.
func (f *LayoutForEach) Each(parent widget.ID, visit func(id widget.ID) bool) {
	f.each(f.tree.Children(parent), visit)
}

func (f *LayoutForEach) each(ids []widget.ID, visit func(id widget.ID) bool) bool {
	for _, id := range ids {
		if !f.visitOne(id, visit) {
			return false
		}
	}
	return true
}

func (f *LayoutForEach) visitOne(id widget.ID, visit func(id widget.ID) bool) bool {
	n := f.tree.Get(id)
	if n == nil {
		return true
	}

	switch k := n.Kind.(type) {
	case widget.Element:
		if f.matches(id, k) {
			return visit(id)
		}
		return true

	case widget.For:
		for i := 0; ; i++ {
			iterID, ok := f.tree.EnsureIteration(id, i, f.ctx)
			if !ok {
				break
			}
			if !f.each(f.tree.Children(iterID), visit) {
				return false
			}
		}
		return true

	case widget.ControlFlow:
		if k.Active < 0 {
			return true
		}
		return f.each(f.tree.Children(id), visit)

	case widget.ControlFlowContainer, widget.ComponentNode, widget.Slot:
		return f.each(f.tree.Children(id), visit)

	default:
		return f.each(f.tree.Children(id), visit)
	}
}

// matches applies the fixed/floating filter. An Element floats when its
// evaluated "position" attribute reads "floating"; everything else,
// including an Element with no registered Widget, is fixed.
func (f *LayoutForEach) matches(id widget.ID, el widget.Element) bool {
	if f.filter == FilterAll {
		return true
	}
	floating := false
	if attrs, ok := f.tree.Attributes().Get(id); ok {
		if v, ok := attrs.Get("position"); ok {
			if s, ok := v.AsString(); ok && s == "floating" {
				floating = true
			}
		}
	}
	if f.filter == FilterFloating {
		return floating
	}
	return !floating
}
