package layout

import (
	"testing"

	"github.com/anathema-go/anathema/template"
	"github.com/anathema-go/anathema/widget"
)

// stackWidget lays its children out vertically, summing their heights
// and taking the widest child's width; position stacks them top to
// bottom at the parent's own X.
type stackWidget struct{ widget.WidgetBase }

func (stackWidget) Kind() string { return "stack" }

func (stackWidget) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	var size widget.Size
	for _, c := range children {
		childSize := ctx.LayoutChild(c, ctx.Constraints)
		if childSize.Width > size.Width {
			size.Width = childSize.Width
		}
		size.Height += childSize.Height
	}
	return size
}

func (stackWidget) Position(children []*widget.Node, ctx widget.PositionCtx) {
	y := ctx.Pos.Y
	for _, c := range children {
		el, ok := c.Kind.(widget.Element)
		if !ok {
			continue
		}
		el.Pos = widget.Pos{X: ctx.Pos.X, Y: y}
		c.Kind = el
		y += el.Size.Height
	}
}

type leafRecorder struct {
	widget.WidgetBase
	painted []widget.Pos
}

func (l *leafRecorder) Kind() string { return "leaf" }
func (l *leafRecorder) Layout(children []*widget.Node, ctx widget.LayoutCtx) widget.Size {
	return widget.Size{Width: 3, Height: 1}
}
func (l *leafRecorder) Paint(children []*widget.Node, ctx widget.PaintCtx) {
	l.painted = append(l.painted, ctx.Clip.From)
}

type fakeRenderer struct{}

func (fakeRenderer) DrawGlyph(rune, widget.Pos)           {}
func (fakeRenderer) SetStyle(*widget.Attributes, widget.Pos) {}

func TestPassLayoutSumsChildHeights(t *testing.T) {
	ctx := newLayoutTestContext()
	leaf1 := &leafRecorder{}
	leaf2 := &leafRecorder{}
	calls := 0
	registry := widget.NewRegistry()
	registry.Register("stack", func(widget.FactoryContext) (widget.Widget, error) { return stackWidget{}, nil })
	registry.Register("leaf", func(widget.FactoryContext) (widget.Widget, error) {
		calls++
		if calls == 1 {
			return leaf1, nil
		}
		return leaf2, nil
	})

	bp := template.Single{
		Ident: "stack",
		Children: []template.Blueprint{
			template.Single{Ident: "leaf"},
			template.Single{Ident: "leaf"},
		},
	}

	tree := widget.NewTree(registry, nil)
	roots := tree.Build([]template.Blueprint{bp}, ctx)

	pass := NewPass(tree, ctx)
	size := pass.Layout(roots[0], widget.Constraints{MaxWidth: 80, MaxHeight: 24})
	if want := (widget.Size{Width: 3, Height: 2}); size != want {
		t.Fatalf("got %+v, want %+v", size, want)
	}

	pass.Position(roots[0], widget.Pos{X: 0, Y: 0})
	children := tree.Children(roots[0])
	firstEl := tree.Get(children[0]).Kind.(widget.Element)
	secondEl := tree.Get(children[1]).Kind.(widget.Element)
	if firstEl.Pos.Y != 0 || secondEl.Pos.Y != 1 {
		t.Fatalf("expected stacked positions 0 then 1, got %d then %d", firstEl.Pos.Y, secondEl.Pos.Y)
	}

	renderer := fakeRenderer{}
	root := widget.Region{To: widget.Pos{X: 80, Y: 24}}
	pass.Paint(roots[0], widget.PaintCtx{Clip: root, Renderer: renderer})
	if len(leaf1.painted) != 1 || len(leaf2.painted) != 1 {
		t.Fatalf("expected each leaf to be painted exactly once, got %d and %d", len(leaf1.painted), len(leaf2.painted))
	}
	if leaf2.painted[0].Y != 1 {
		t.Fatalf("expected the second leaf's clip to start at its own Y, got %+v", leaf2.painted[0])
	}
}
