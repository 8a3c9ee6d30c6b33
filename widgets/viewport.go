package widgets

import "github.com/anathema-go/anathema/widget"

// Viewport is the runtime's root widget: it fills the whole backend
// surface and stretches its single child to match, so a template's top
// level content always occupies the full terminal rather than whatever
// size its own content would otherwise settle on.
type Viewport struct{ widget.WidgetBase }

func NewViewport() *Viewport { return &Viewport{} }

func (*Viewport) Kind() string { return "viewport" }

func (*Viewport) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	size := widget.Size{Width: ctx.Constraints.MaxWidth, Height: ctx.Constraints.MaxHeight}
	if widget.Unbounded(size.Width) {
		size.Width = 0
	}
	if widget.Unbounded(size.Height) {
		size.Height = 0
	}
	full := widget.Constraints{
		MinWidth: size.Width, MaxWidth: size.Width,
		MinHeight: size.Height, MaxHeight: size.Height,
	}
	for _, c := range children {
		ctx.LayoutChild(c, full)
	}
	return size
}

func (*Viewport) Position(children []*widget.Node, ctx widget.PositionCtx) {
	for _, c := range children {
		setChildPos(c, ctx.Pos)
	}
}
