package widget

// Size is a widget's computed extent in cells.
type Size struct {
	Width, Height int
}

// Pos is a screen-relative cell position.
type Pos struct {
	X, Y int
}

// Constraints bound a widget's layout: Max may be unbounded (represented
// as a negative value, meaning "no limit") on either axis, matching a
// terminal's actual width being known but its scrollable height not.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Unbounded reports whether the given max is "no limit".
func Unbounded(max int) bool { return max < 0 }

// Constrain clamps want against the constraints, also enforcing the
// minimums.
func (c Constraints) Constrain(want Size) Size {
	w, h := want.Width, want.Height
	if w < c.MinWidth {
		w = c.MinWidth
	}
	if !Unbounded(c.MaxWidth) && w > c.MaxWidth {
		w = c.MaxWidth
	}
	if h < c.MinHeight {
		h = c.MinHeight
	}
	if !Unbounded(c.MaxHeight) && h > c.MaxHeight {
		h = c.MaxHeight
	}
	return Size{Width: w, Height: h}
}

// Region is a clip rectangle: cells at or beyond From are in bounds, up
// to (but excluding) To.
type Region struct {
	From, To Pos
}

// Intersect returns the overlap of two regions. An empty result (From.X
// >= To.X or From.Y >= To.Y) means nothing of r is visible inside other.
func (r Region) Intersect(other Region) Region {
	out := Region{
		From: Pos{X: max(r.From.X, other.From.X), Y: max(r.From.Y, other.From.Y)},
		To:   Pos{X: min(r.To.X, other.To.X), Y: min(r.To.Y, other.To.Y)},
	}
	if out.To.X < out.From.X {
		out.To.X = out.From.X
	}
	if out.To.Y < out.From.Y {
		out.To.Y = out.From.Y
	}
	return out
}

// Contains reports whether p falls within the region.
func (r Region) Contains(p Pos) bool {
	return p.X >= r.From.X && p.X < r.To.X && p.Y >= r.From.Y && p.Y < r.To.Y
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// LayoutCtx bundles what a widget needs to lay out its children: the
// constraints it was handed, the already-evaluated attributes of its own
// node, and LayoutChild, which a container calls once per child it wants
// sized — each call may hand that child different constraints than its
// own (a Border shrinking by its frame, a VStack allocating remaining
// height), which is why children arrive unsized and only LayoutChild
// actually lays one out.
type LayoutCtx struct {
	Constraints Constraints
	Attrs       *Attributes
	LayoutChild func(child *Node, c Constraints) Size
}

// PositionCtx carries the position a widget was assigned and the final
// size layout settled on, so it can place its children relative to
// itself.
type PositionCtx struct {
	Pos  Pos
	Size Size
}

// Renderer is the external sink every paint pass writes into — a
// terminal backend, in practice, but tests commonly substitute a glyph
// buffer.
type Renderer interface {
	DrawGlyph(r rune, pos Pos)
	SetStyle(attrs *Attributes, pos Pos)
}

// PaintCtx carries a clip region (the intersection of every ancestor's
// clip) and the renderer cells are written into.
type PaintCtx struct {
	Clip     Region
	Renderer Renderer
}

// Sub narrows ctx to a child region, intersecting clips the way every
// nested PaintCtx must.
func (ctx PaintCtx) Sub(region Region) PaintCtx {
	return PaintCtx{Clip: ctx.Clip.Intersect(region), Renderer: ctx.Renderer}
}

// Widget is the behavior an Element node's concrete instance supplies:
// how it sizes itself given its children and constraints, how it places
// already-sized children, and how it paints itself and them. Only Layout
// is required to do real work for most widgets — Position/Paint have
// no-op defaults a widget can embed via WidgetBase.
type Widget interface {
	Kind() string
	Layout(children []*Node, ctx LayoutCtx) Size
	Position(children []*Node, ctx PositionCtx)
	Paint(children []*Node, ctx PaintCtx)
}

// WidgetBase supplies empty Position/Paint bodies (they neither place
// nor paint children) so a leaf widget only needs to implement Layout
// and, if it draws anything itself, Paint.
type WidgetBase struct{}

func (WidgetBase) Position([]*Node, PositionCtx) {}
func (WidgetBase) Paint([]*Node, PaintCtx)        {}
