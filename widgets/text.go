// Package widgets holds the concrete, factory-registered widget
// implementations: the things a template's `text`, `border`, `vstack`,
// `hstack`, and the runtime's own root `viewport` actually draw.
package widgets

import (
	"github.com/anathema-go/anathema/layout"
	"github.com/anathema-go/anathema/widget"
)

// Text lays out its inline text value as a word-wrapped paragraph. It
// caches the lines Layout computed (and the attributes it saw) for
// Paint to use, since only LayoutCtx carries a widget's own evaluated
// attributes — Position/Paint only see geometry.
type Text struct {
	widget.WidgetBase
	Wrap  layout.Wrap
	attrs *widget.Attributes
	lines []layout.Line
}

// NewText builds a Text widget wrapping under wrap.
func NewText(wrap layout.Wrap) *Text {
	return &Text{Wrap: wrap}
}

func (*Text) Kind() string { return "text" }

func (t *Text) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	t.attrs = ctx.Attrs
	value := textValue(ctx.Attrs)

	max := widget.Size{Width: ctx.Constraints.MaxWidth, Height: ctx.Constraints.MaxHeight}
	if widget.Unbounded(max.Width) {
		max.Width = runeLen(value)
	}
	if widget.Unbounded(max.Height) {
		max.Height = 1 << 20
	}

	s := layout.NewStrings(max, t.Wrap)
	s.AddStr(value)
	s.Finish()
	t.lines = s.Lines()
	return s.Size()
}

func (t *Text) Paint(children []*widget.Node, ctx widget.PaintCtx) {
	origin := ctx.Clip.From
	for y, line := range t.lines {
		cursor := layout.NewCursor(widget.Pos{X: origin.X, Y: origin.Y + y}, 0)
		layout.FlushStyle(ctx, cursor, t.attrs)
		for _, seg := range line.Segments {
			if seg.IsStyle {
				continue
			}
			for _, r := range seg.Text {
				layout.PlaceGlyph(ctx, nil, cursor, layout.SimpleGlyph(r))
			}
		}
	}
}

func textValue(attrs *widget.Attributes) string {
	if v, ok := attrs.Text(); ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return ""
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
