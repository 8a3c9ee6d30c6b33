package layout

import (
	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/widget"
)

// Pass drives the three tree walks a frame needs: layout (bottom-up
// sizing), position (top-down placement), and paint (top-down, clip
// narrowing as it descends).
type Pass struct {
	tree *widget.Tree
	ctx  *eval.Context
}

// NewPass builds a Pass over tree, evaluating any generator stepping
// (For/ControlFlow) it needs to do against ctx.
func NewPass(tree *widget.Tree, ctx *eval.Context) *Pass {
	return &Pass{tree: tree, ctx: ctx}
}

// Layout recursively sizes id's subtree against constraints and returns
// the size id settled on. Floating children are skipped: they don't
// contribute to their parent's size.
func (p *Pass) Layout(id widget.ID, constraints widget.Constraints) widget.Size {
	n := p.tree.Get(id)
	if n == nil {
		return widget.Size{}
	}
	el, ok := n.Kind.(widget.Element)
	if !ok {
		return widget.Size{}
	}

	var childNodes []*widget.Node
	each := NewLayoutForEach(p.tree, p.ctx, FilterFixed)
	each.Each(id, func(cid widget.ID) bool {
		childNodes = append(childNodes, p.tree.Get(cid))
		return true
	})

	layoutChild := func(child *widget.Node, c widget.Constraints) widget.Size {
		return p.Layout(child.ID, c)
	}

	var size widget.Size
	if el.Widget != nil {
		attrs, _ := p.tree.Attributes().Get(id)
		size = el.Widget.Layout(childNodes, widget.LayoutCtx{Constraints: constraints, Attrs: attrs, LayoutChild: layoutChild})
		size = constraints.Constrain(size)
	} else {
		// No factory registered for this element: still size every fixed
		// child against our own constraints so the subtree isn't silently
		// skipped.
		for _, child := range childNodes {
			layoutChild(child, constraints)
		}
	}
	el.Size = size
	n.Kind = el
	return size
}

// Position places id at pos, lets its Widget place its children (fixed
// and floating alike), and recurses using whatever position each child
// was assigned.
func (p *Pass) Position(id widget.ID, pos widget.Pos) {
	n := p.tree.Get(id)
	if n == nil {
		return
	}
	el, ok := n.Kind.(widget.Element)
	if !ok {
		return
	}
	el.Pos = pos
	n.Kind = el

	var ids []widget.ID
	var childNodes []*widget.Node
	each := NewLayoutForEach(p.tree, p.ctx, FilterAll)
	each.Each(id, func(cid widget.ID) bool {
		ids = append(ids, cid)
		childNodes = append(childNodes, p.tree.Get(cid))
		return true
	})

	if el.Widget != nil {
		el.Widget.Position(childNodes, widget.PositionCtx{Pos: pos, Size: el.Size})
	}

	for _, cid := range ids {
		cn := p.tree.Get(cid)
		var childPos widget.Pos
		if cel, ok := cn.Kind.(widget.Element); ok {
			childPos = cel.Pos
		}
		p.Position(cid, childPos)
	}
}

// Paint writes id and its subtree into ctx, narrowing the clip region to
// id's own bounds before descending.
func (p *Pass) Paint(id widget.ID, ctx widget.PaintCtx) {
	n := p.tree.Get(id)
	if n == nil {
		return
	}
	el, ok := n.Kind.(widget.Element)
	if !ok {
		return
	}

	region := widget.Region{
		From: el.Pos,
		To:   widget.Pos{X: el.Pos.X + el.Size.Width, Y: el.Pos.Y + el.Size.Height},
	}
	sub := ctx.Sub(region)

	var ids []widget.ID
	var childNodes []*widget.Node
	each := NewLayoutForEach(p.tree, p.ctx, FilterAll)
	each.Each(id, func(cid widget.ID) bool {
		ids = append(ids, cid)
		childNodes = append(childNodes, p.tree.Get(cid))
		return true
	})

	if el.Widget != nil {
		el.Widget.Paint(childNodes, sub)
	}
	for _, cid := range ids {
		p.Paint(cid, sub)
	}
}
