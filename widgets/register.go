package widgets

import (
	"github.com/anathema-go/anathema/layout"
	"github.com/anathema-go/anathema/widget"
)

// Register binds every built-in ident ("text", "border", "vstack",
// "hstack", "viewport", "scroll") to its Factory on registry. Template
// authors get these for free; anathemarun and any embedding program
// call this once before building a tree.
func Register(registry *widget.Registry) {
	registry.Register("text", func(widget.FactoryContext) (widget.Widget, error) {
		return NewText(layout.WrapNormal), nil
	})
	registry.Register("border", func(widget.FactoryContext) (widget.Widget, error) {
		return NewBorder(), nil
	})
	registry.Register("vstack", func(widget.FactoryContext) (widget.Widget, error) {
		return NewVStack(), nil
	})
	registry.Register("hstack", func(widget.FactoryContext) (widget.Widget, error) {
		return NewHStack(), nil
	})
	registry.Register("viewport", func(widget.FactoryContext) (widget.Widget, error) {
		return NewViewport(), nil
	})
	registry.Register("scroll", func(widget.FactoryContext) (widget.Widget, error) {
		return NewScroll(), nil
	})
}
