package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/anathema-go/anathema/widget"
)

// Scroll windows a single child taller than its own box, offsetting it
// by a `offset` attribute the template binds to reactive state (a
// component's OnEvent typically nudges that value on arrow/page-key
// presses). The windowing arithmetic — clamping the offset to
// [0, contentHeight-viewHeight], tracking AtTop/AtBottom — is delegated
// to bubbles' viewport.Model rather than reimplemented: Scroll feeds it
// a placeholder content of the right line count and reads back the
// clamped YOffset, the same wrap-and-delegate shape the rest of the
// ecosystem uses around viewport.Model.
type Scroll struct {
	widget.WidgetBase
	vp viewport.Model
}

// NewScroll builds a Scroll widget with no content yet; Layout sizes the
// underlying viewport.Model against whatever constraints it's handed.
func NewScroll() *Scroll {
	return &Scroll{vp: viewport.New(0, 0)}
}

func (*Scroll) Kind() string { return "scroll" }

func (s *Scroll) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	size := widget.Size{Width: ctx.Constraints.MaxWidth, Height: ctx.Constraints.MaxHeight}
	if widget.Unbounded(size.Width) {
		size.Width = 0
	}
	if widget.Unbounded(size.Height) {
		size.Height = 0
	}
	s.vp.Width = size.Width
	s.vp.Height = size.Height

	childConstraints := widget.Constraints{
		MinWidth: size.Width, MaxWidth: size.Width,
		MaxHeight: -1,
	}
	var contentHeight int
	for _, c := range children {
		childSize := ctx.LayoutChild(c, childConstraints)
		contentHeight = childSize.Height
	}
	if contentHeight > 0 {
		s.vp.SetContent(strings.Repeat("\n", contentHeight-1))
	} else {
		s.vp.SetContent("")
	}

	if want, ok := intAttr(ctx.Attrs, "offset"); ok {
		s.vp.SetYOffset(want)
	}

	return size
}

func (s *Scroll) Position(children []*widget.Node, ctx widget.PositionCtx) {
	for _, c := range children {
		setChildPos(c, widget.Pos{X: ctx.Pos.X, Y: ctx.Pos.Y - s.vp.YOffset})
	}
}

func intAttr(attrs *widget.Attributes, name string) (int, bool) {
	v, ok := attrs.Get(name)
	if !ok {
		return 0, false
	}
	n, ok := v.AsInt()
	return int(n), ok
}
