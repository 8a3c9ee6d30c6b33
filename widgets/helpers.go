package widgets

import "github.com/anathema-go/anathema/widget"

// setChildPos writes an absolute position into child's Element payload;
// a container's Position method uses this to place children it owns
// once it has decided where each of them goes.
func setChildPos(child *widget.Node, pos widget.Pos) {
	el, ok := child.Kind.(widget.Element)
	if !ok {
		return
	}
	el.Pos = pos
	child.Kind = el
}

// childSize reads back the size LayoutChild most recently settled a
// child on.
func childSize(child *widget.Node) widget.Size {
	if el, ok := child.Kind.(widget.Element); ok {
		return el.Size
	}
	return widget.Size{}
}
