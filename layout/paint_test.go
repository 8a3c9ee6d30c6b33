package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anathema-go/anathema/widget"
)

type recordingRenderer struct {
	glyphs []widget.Pos
	styled []widget.Pos
}

func (r *recordingRenderer) DrawGlyph(_ rune, pos widget.Pos) {
	r.glyphs = append(r.glyphs, pos)
}

func (r *recordingRenderer) SetStyle(_ *widget.Attributes, pos widget.Pos) {
	r.styled = append(r.styled, pos)
}

func TestPlaceGlyphOutsideClipWritesNothing(t *testing.T) {
	rnd := &recordingRenderer{}
	ctx := widget.PaintCtx{
		Clip:     widget.Region{From: widget.Pos{X: 1, Y: 1}, To: widget.Pos{X: 3, Y: 3}},
		Renderer: rnd,
	}
	gm := NewGlyphMap()
	c := NewCursor(widget.Pos{X: 15, Y: 15}, 0)

	PlaceGlyph(ctx, gm, c, Glyph{Rune: 'x'})

	assert.Empty(t, rnd.glyphs)
}

func TestPlaceGlyphInsideClipWritesAtCursorPosition(t *testing.T) {
	rnd := &recordingRenderer{}
	ctx := widget.PaintCtx{
		Clip:     widget.Region{From: widget.Pos{X: 1, Y: 1}, To: widget.Pos{X: 3, Y: 3}},
		Renderer: rnd,
	}
	gm := NewGlyphMap()
	c := NewCursor(widget.Pos{X: 1, Y: 1}, 0)

	PlaceGlyph(ctx, gm, c, Glyph{Rune: 'x'})

	assert.Equal(t, []widget.Pos{{X: 1, Y: 1}}, rnd.glyphs)
}

func TestPlaceGlyphDoubleWidthWritesContinuationCell(t *testing.T) {
	rnd := &recordingRenderer{}
	ctx := widget.PaintCtx{
		Clip:     widget.Region{From: widget.Pos{X: 0, Y: 0}, To: widget.Pos{X: 10, Y: 10}},
		Renderer: rnd,
	}
	gm := NewGlyphMap()
	c := NewCursor(widget.Pos{X: 0, Y: 0}, 0)

	PlaceGlyph(ctx, gm, c, Glyph{Rune: '中'})

	assert.Equal(t, []widget.Pos{{X: 0, Y: 0}, {X: 1, Y: 0}}, rnd.glyphs)
	assert.Equal(t, widget.Pos{X: 2, Y: 0}, c.Pos())
}

func TestPlaceGlyphNewlineWrapsCursorWithoutDrawing(t *testing.T) {
	rnd := &recordingRenderer{}
	ctx := widget.PaintCtx{
		Clip:     widget.Region{From: widget.Pos{X: 0, Y: 0}, To: widget.Pos{X: 10, Y: 10}},
		Renderer: rnd,
	}
	gm := NewGlyphMap()
	c := NewCursor(widget.Pos{X: 0, Y: 0}, 0)

	PlaceGlyph(ctx, gm, c, Glyph{Rune: '\n'})

	assert.Empty(t, rnd.glyphs)
	assert.Equal(t, widget.Pos{X: 0, Y: 1}, c.Pos())
}

func TestPlaceGlyphWrapsAtCursorWidth(t *testing.T) {
	rnd := &recordingRenderer{}
	ctx := widget.PaintCtx{
		Clip:     widget.Region{From: widget.Pos{X: 0, Y: 0}, To: widget.Pos{X: 10, Y: 10}},
		Renderer: rnd,
	}
	gm := NewGlyphMap()
	c := NewCursor(widget.Pos{X: 0, Y: 0}, 2)

	PlaceGlyph(ctx, gm, c, Glyph{Rune: 'a'})
	PlaceGlyph(ctx, gm, c, Glyph{Rune: 'b'})
	PlaceGlyph(ctx, gm, c, Glyph{Rune: 'c'})

	assert.Equal(t, []widget.Pos{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, rnd.glyphs)
}
