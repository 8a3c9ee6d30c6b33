package layout

import "github.com/anathema-go/anathema/widget"

// Cursor tracks where the next glyph lands inside a paint pass, wrapping
// to a new row once Width cells have been written on the current one.
type Cursor struct {
	Origin widget.Pos
	Width  int
	col    int
	row    int
}

func NewCursor(origin widget.Pos, width int) *Cursor {
	return &Cursor{Origin: origin, Width: width}
}

// Pos is the cell the next glyph will be placed at.
func (c *Cursor) Pos() widget.Pos {
	return widget.Pos{X: c.Origin.X + c.col, Y: c.Origin.Y + c.row}
}

func (c *Cursor) newline() {
	c.col = 0
	c.row++
}

func (c *Cursor) advance(width int) {
	c.col += width
}

// PlaceGlyph is the paint-pass primitive: it clips g against ctx's
// region, advances the cursor by g's display width, writes a
// continuation cell for double-width glyphs, and wraps the cursor at
// newline glyphs without drawing anything for them.
func PlaceGlyph(ctx widget.PaintCtx, gm *GlyphMap, c *Cursor, g Glyph) {
	if !g.IsIndex && g.Rune == '\n' {
		c.newline()
		return
	}

	width := g.Width(gm)
	if width <= 0 {
		return
	}

	pos := c.Pos()
	if c.Width > 0 && c.col+width > c.Width {
		c.newline()
		pos = c.Pos()
	}

	if ctx.Clip.Contains(pos) {
		if g.IsIndex {
			for i, r := range gm.Cluster(g.Cluster) {
				if i == 0 {
					ctx.Renderer.DrawGlyph(r, pos)
				}
			}
		} else {
			ctx.Renderer.DrawGlyph(g.Rune, pos)
		}
		if width > 1 {
			cont := widget.Pos{X: pos.X + 1, Y: pos.Y}
			if ctx.Clip.Contains(cont) {
				ctx.Renderer.DrawGlyph(0, cont)
			}
		}
	}

	c.advance(width)
}

// FlushStyle asks the renderer to apply attrs at the cursor's current
// position; styles are flushed before the glyphs they color.
func FlushStyle(ctx widget.PaintCtx, c *Cursor, attrs *widget.Attributes) {
	if ctx.Clip.Contains(c.Pos()) {
		ctx.Renderer.SetStyle(attrs, c.Pos())
	}
}
