// Package layout walks a widget tree to size, position, and paint it.
package layout

import "github.com/mattn/go-runewidth"

// Glyph is either a single rune (the common case, stored inline) or an
// index into a GlyphMap cluster for multi-codepoint grapheme clusters
// (emoji with modifiers, combining marks) that don't fit in one rune.
type Glyph struct {
	Rune    rune
	Cluster int
	IsIndex bool
}

func SimpleGlyph(r rune) Glyph { return Glyph{Rune: r} }

// Width reports how many cells the glyph occupies, consulting gm for
// cluster glyphs.
func (g Glyph) Width(gm *GlyphMap) int {
	if g.IsIndex {
		return runewidth.StringWidth(gm.Cluster(g.Cluster))
	}
	return runewidth.RuneWidth(g.Rune)
}

// GlyphMap is an append-only store mapping multi-codepoint clusters to
// small integer indices, so a Glyph can reference one without owning a
// string itself.
type GlyphMap struct {
	clusters []string
	index    map[string]int
}

func NewGlyphMap() *GlyphMap {
	return &GlyphMap{index: map[string]int{}}
}

// Insert returns the Glyph for s: inline if it is a single rune, or an
// indexed cluster glyph otherwise (interning repeats).
func (gm *GlyphMap) Insert(s string) Glyph {
	runes := []rune(s)
	if len(runes) == 1 {
		return Glyph{Rune: runes[0]}
	}
	if idx, ok := gm.index[s]; ok {
		return Glyph{Cluster: idx, IsIndex: true}
	}
	idx := len(gm.clusters)
	gm.clusters = append(gm.clusters, s)
	gm.index[s] = idx
	return Glyph{Cluster: idx, IsIndex: true}
}

// Cluster returns the string a cluster glyph's index refers to.
func (gm *GlyphMap) Cluster(index int) string {
	if index < 0 || index >= len(gm.clusters) {
		return ""
	}
	return gm.clusters[index]
}
