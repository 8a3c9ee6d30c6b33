package widgets

import "github.com/anathema-go/anathema/widget"

// VStack lays its children out top to bottom, each getting the stack's
// full width and whatever height remains after the children above it.
// Its own size is the widest child's width and the summed heights.
type VStack struct{ widget.WidgetBase }

func NewVStack() *VStack { return &VStack{} }

func (*VStack) Kind() string { return "vstack" }

func (*VStack) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	var size widget.Size
	remaining := ctx.Constraints.MaxHeight
	for _, c := range children {
		childConstraints := widget.Constraints{
			MinWidth:  ctx.Constraints.MinWidth,
			MaxWidth:  ctx.Constraints.MaxWidth,
			MaxHeight: remaining,
		}
		childSize := ctx.LayoutChild(c, childConstraints)
		if childSize.Width > size.Width {
			size.Width = childSize.Width
		}
		size.Height += childSize.Height
		if !widget.Unbounded(remaining) {
			remaining -= childSize.Height
			if remaining < 0 {
				remaining = 0
			}
		}
	}
	return size
}

func (*VStack) Position(children []*widget.Node, ctx widget.PositionCtx) {
	y := ctx.Pos.Y
	for _, c := range children {
		setChildPos(c, widget.Pos{X: ctx.Pos.X, Y: y})
		y += childSize(c).Height
	}
}

// HStack is VStack's horizontal twin: children run left to right, each
// getting the stack's full height and whatever width remains.
type HStack struct{ widget.WidgetBase }

func NewHStack() *HStack { return &HStack{} }

func (*HStack) Kind() string { return "hstack" }

func (*HStack) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	var size widget.Size
	remaining := ctx.Constraints.MaxWidth
	for _, c := range children {
		childConstraints := widget.Constraints{
			MinHeight: ctx.Constraints.MinHeight,
			MaxHeight: ctx.Constraints.MaxHeight,
			MaxWidth:  remaining,
		}
		childSize := ctx.LayoutChild(c, childConstraints)
		if childSize.Height > size.Height {
			size.Height = childSize.Height
		}
		size.Width += childSize.Width
		if !widget.Unbounded(remaining) {
			remaining -= childSize.Width
			if remaining < 0 {
				remaining = 0
			}
		}
	}
	return size
}

func (*HStack) Position(children []*widget.Node, ctx widget.PositionCtx) {
	x := ctx.Pos.X
	for _, c := range children {
		setChildPos(c, widget.Pos{X: x, Y: ctx.Pos.Y})
		x += childSize(c).Width
	}
}
