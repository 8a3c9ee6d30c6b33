package widgets

import (
	"github.com/anathema-go/anathema/widget"
)

// borderGlyphs is one box-drawing rune set. Only a single style exists:
// Paint always draws with thinBorder and reads no style attribute.
type borderGlyphs struct {
	topLeft, topRight, bottomLeft, bottomRight rune
	horizontal, vertical                       rune
}

var thinBorder = borderGlyphs{
	topLeft: '┌', topRight: '┐', bottomLeft: '└', bottomRight: '┘',
	horizontal: '─', vertical: '│',
}

// Border draws a single-line box around its one inner child, which is
// laid out with its constraints shrunk by the 1-cell frame on every
// side.
type Border struct {
	widget.WidgetBase
	inner widget.Size
}

func NewBorder() *Border { return &Border{} }

func (*Border) Kind() string { return "border" }

func (b *Border) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	inner := shrinkConstraints(ctx.Constraints, 1, 1)
	var size widget.Size
	if len(children) > 0 {
		size = ctx.LayoutChild(children[0], inner)
	}
	b.inner = size
	total := widget.Size{Width: size.Width + 2, Height: size.Height + 2}
	return ctx.Constraints.Constrain(total)
}

func (b *Border) Position(children []*widget.Node, ctx widget.PositionCtx) {
	if len(children) == 0 {
		return
	}
	setChildPos(children[0], widget.Pos{X: ctx.Pos.X + 1, Y: ctx.Pos.Y + 1})
}

func (b *Border) Paint(children []*widget.Node, ctx widget.PaintCtx) {
	g := thinBorder
	from, to := ctx.Clip.From, ctx.Clip.To
	width, height := to.X-from.X, to.Y-from.Y
	if width <= 0 || height <= 0 {
		return
	}

	corner := func(pos widget.Pos, r rune) {
		if ctx.Clip.Contains(pos) {
			ctx.Renderer.DrawGlyph(r, pos)
		}
	}
	corner(widget.Pos{X: from.X, Y: from.Y}, g.topLeft)
	corner(widget.Pos{X: to.X - 1, Y: from.Y}, g.topRight)
	corner(widget.Pos{X: from.X, Y: to.Y - 1}, g.bottomLeft)
	corner(widget.Pos{X: to.X - 1, Y: to.Y - 1}, g.bottomRight)

	for x := from.X + 1; x < to.X-1; x++ {
		corner(widget.Pos{X: x, Y: from.Y}, g.horizontal)
		corner(widget.Pos{X: x, Y: to.Y - 1}, g.horizontal)
	}
	for y := from.Y + 1; y < to.Y-1; y++ {
		corner(widget.Pos{X: from.X, Y: y}, g.vertical)
		corner(widget.Pos{X: to.X - 1, Y: y}, g.vertical)
	}
}

// shrinkConstraints narrows a Constraints box by dx on each side
// horizontally and dy on each side vertically, never going negative.
func shrinkConstraints(c widget.Constraints, dx, dy int) widget.Constraints {
	shrink := func(v, by int) int {
		if widget.Unbounded(v) {
			return v
		}
		v -= by
		if v < 0 {
			v = 0
		}
		return v
	}
	return widget.Constraints{
		MinWidth:  shrink(c.MinWidth, 2*dx),
		MaxWidth:  shrink(c.MaxWidth, 2*dx),
		MinHeight: shrink(c.MinHeight, 2*dy),
		MaxHeight: shrink(c.MaxHeight, 2*dy),
	}
}
