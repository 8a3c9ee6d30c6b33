package layout

import (
	"strings"
	"unicode"

	"github.com/anathema-go/anathema/widget"
	"github.com/mattn/go-runewidth"
)

// Wrap selects how Strings breaks a line once it would overflow the
// available width.
type Wrap int

const (
	// WrapNormal breaks at the nearest preceding word boundary
	// (whitespace or hyphen), falling back to a mid-word split only
	// when a single word is wider than the whole line.
	WrapNormal Wrap = iota
	// WrapWordBreak breaks at any character, ignoring word boundaries.
	WrapWordBreak
)

func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-'
}

type entryKind int

const (
	entryStr entryKind = iota
	entryNewline
	entryLineWidth
	entrySetStyle
)

type entry struct {
	kind  entryKind
	text  string
	style int
	width int
}

type pendingWord struct {
	text  string
	width int
}

// Strings accumulates text via AddStr and lays it out under a word-wrap
// (or character-break) discipline, tracking the running width of the
// word not yet committed to a line the way a chomper tracks whether it
// is mid-word (Continuous) or sitting on a boundary (WordBoundary).
type Strings struct {
	wrap        Wrap
	max         widget.Size
	entries     []entry
	current     pendingWord
	usedWidth   int
	size        widget.Size
	lineWidthAt int
	done        bool
}

// NewStrings creates a Strings laid out against max, using wrap to
// decide where overlong lines break.
func NewStrings(max widget.Size, wrap Wrap) *Strings {
	s := &Strings{wrap: wrap, max: max, size: widget.Size{Height: 1}}
	s.entries = append(s.entries, entry{kind: entryLineWidth})
	s.lineWidthAt = 0
	return s
}

// SetStyle records a style change at the current position in the text
// stream; it is emitted as its own segment when Lines is read back.
func (s *Strings) SetStyle(valueID int) {
	s.entries = append(s.entries, entry{kind: entrySetStyle, style: valueID})
}

// AddStr feeds more text into the layout.
func (s *Strings) AddStr(str string) {
	if s.done {
		return
	}
	if s.wrap == WrapWordBreak {
		for _, r := range str {
			s.current.text += string(r)
			s.current.width += runewidth.RuneWidth(r)
			if s.processWord() {
				return
			}
		}
		return
	}

	start := 0
	runes := []rune(str)
	for i, r := range runes {
		if isWordBoundary(r) {
			word := string(runes[start : i+1])
			s.current.text += word
			s.current.width += runewidth.StringWidth(word)
			start = i + 1
			if s.processWord() {
				return
			}
		}
	}
	if start < len(runes) {
		tail := string(runes[start:])
		s.current.text += tail
		s.current.width += runewidth.StringWidth(tail)
	}
}

// Finish flushes whatever word is still pending.
func (s *Strings) Finish() {
	if s.done {
		return
	}
	s.processWord()
}

// processWord runs the word currently buffered through the four
// lettered cases: force a newline ahead of an overlong word (A), trim a
// boundary-triggering trailing whitespace rune (B), hard-split a word
// wider than the whole line (C), and reset line width after a newline
// (D). It returns true once the layout has filled its max height and
// further input should be dropped.
func (s *Strings) processWord() bool {
	if s.max.Width == 0 || s.max.Height == 0 {
		s.done = true
		return true
	}

	for {
		available := s.max.Width - s.usedWidth

		if s.current.width > available && s.usedWidth != 0 {
			if s.size.Height >= s.max.Height {
				s.done = true
				return true
			}
			s.newline()
			continue
		}

		if s.current.width > available {
			if r, size := lastRune(s.current.text); r != 0 && unicode.IsSpace(r) {
				w := runewidth.RuneWidth(r)
				if s.current.width-w <= available {
					s.current.text = s.current.text[:len(s.current.text)-size]
					s.current.width -= w
				}
			}
		}

		if s.current.width > s.max.Width && s.usedWidth == 0 {
			head, rest, headWidth := splitToWidth(s.current.text, s.max.Width)
			s.usedWidth += headWidth
			s.storeWord(head)
			s.current.text = rest
			s.current.width = runewidth.StringWidth(rest)
			continue
		}

		break
	}

	endsWithNewline := strings.HasSuffix(s.current.text, "\n")
	text := s.current.text
	if endsWithNewline {
		text = text[:len(text)-1]
	}
	if text != "" {
		s.usedWidth += runewidth.StringWidth(text)
		s.storeWord(text)
	}
	s.current = pendingWord{}

	s.updateLineWidth()
	if s.usedWidth > s.size.Width {
		s.size.Width = s.usedWidth
	}

	if endsWithNewline {
		s.newline()
	}
	return false
}

func (s *Strings) storeWord(text string) {
	s.entries = append(s.entries, entry{kind: entryStr, text: text})
}

func (s *Strings) newline() {
	s.updateLineWidth()
	s.entries = append(s.entries, entry{kind: entryNewline})
	s.entries = append(s.entries, entry{kind: entryLineWidth})
	s.lineWidthAt = len(s.entries) - 1
	if s.usedWidth > s.size.Width {
		s.size.Width = s.usedWidth
	}
	s.usedWidth = 0
	s.size.Height++
}

func (s *Strings) updateLineWidth() {
	s.entries[s.lineWidthAt].width = s.usedWidth
}

// Size returns the final computed extent; the zero value collapses to
// widget.Size{} when nothing was ever laid out.
func (s *Strings) Size() widget.Size {
	if s.size.Width == 0 {
		return widget.Size{}
	}
	return s.size
}

// Line is one row of laid-out text: its committed width and the
// style-change/substring segments that make it up, in order.
type Line struct {
	Width    int
	Segments []Segment
}

// Segment is either a style change or a run of text.
type Segment struct {
	IsStyle bool
	Style   int
	Text    string
}

// Lines reads back the laid-out text as rows of segments.
func (s *Strings) Lines() []Line {
	var lines []Line
	cur := Line{}
	for _, e := range s.entries {
		switch e.kind {
		case entryLineWidth:
			cur.Width = e.width
		case entryNewline:
			lines = append(lines, cur)
			cur = Line{}
		case entryStr:
			cur.Segments = append(cur.Segments, Segment{Text: e.text})
		case entrySetStyle:
			cur.Segments = append(cur.Segments, Segment{IsStyle: true, Style: e.style})
		}
	}
	lines = append(lines, cur)
	return lines
}

func lastRune(s string) (rune, int) {
	if s == "" {
		return 0, 0
	}
	r := []rune(s)
	last := r[len(r)-1]
	return last, len(string(last))
}

// splitToWidth takes as many leading runes of s as fit within max cells,
// returning the taken head, the untaken rest, and the head's width.
func splitToWidth(s string, max int) (head, rest string, width int) {
	used := 0
	idx := 0
	runes := []rune(s)
	for i, r := range runes {
		w := runewidth.RuneWidth(r)
		if used+w > max {
			break
		}
		used += w
		idx = i + 1
	}
	return string(runes[:idx]), string(runes[idx:]), used
}
