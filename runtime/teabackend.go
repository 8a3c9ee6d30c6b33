package runtime

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anathema-go/anathema/layout"
	"github.com/anathema-go/anathema/widget"
)

// cell is one terminal position's glyph plus the style last set for it.
type cell struct {
	glyph layout.Glyph
	style lipgloss.Style
	attrs *widget.Attributes
}

// TeaBackend is a Backend whose event source is a running bubbletea
// program: incoming tea.Msg values are translated to Event and buffered,
// and DrawGlyph/SetStyle/Render write into an in-memory cell grid that
// Render flattens into the string bubbletea's View displays.
type TeaBackend struct {
	width, height int
	cells         [][]cell
	events        chan Event
	frame         string
}

// NewTeaBackend creates a backend with the given initial size; bubbletea
// resizes it on the first tea.WindowSizeMsg.
func NewTeaBackend(width, height int) *TeaBackend {
	b := &TeaBackend{events: make(chan Event, 256)}
	b.resize(width, height)
	return b
}

func (b *TeaBackend) resize(width, height int) {
	b.width, b.height = width, height
	b.cells = make([][]cell, height)
	for y := range b.cells {
		b.cells[y] = make([]cell, width)
		for x := range b.cells[y] {
			b.cells[y][x] = cell{glyph: layout.SimpleGlyph(' ')}
		}
	}
}

func (b *TeaBackend) inBounds(pos widget.Pos) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < b.width && pos.Y < b.height
}

// DrawGlyph implements widget.Renderer.
func (b *TeaBackend) DrawGlyph(r rune, pos widget.Pos) {
	if !b.inBounds(pos) {
		return
	}
	if r == 0 {
		b.cells[pos.Y][pos.X].glyph = layout.Glyph{}
		return
	}
	b.cells[pos.Y][pos.X].glyph = layout.SimpleGlyph(r)
}

// SetStyle implements widget.Renderer by deriving a lipgloss.Style from
// attrs' conventional "fg"/"bg"/"bold" attribute names, if present.
func (b *TeaBackend) SetStyle(attrs *widget.Attributes, pos widget.Pos) {
	if !b.inBounds(pos) {
		return
	}
	b.cells[pos.Y][pos.X].style = styleFromAttributes(attrs)
	b.cells[pos.Y][pos.X].attrs = attrs
}

// SetAttributes implements Backend's per-cell attribute hook, mirroring
// SetStyle (the runtime calls whichever a widget's paint pass prefers).
func (b *TeaBackend) SetAttributes(attrs *widget.Attributes, pos widget.Pos) {
	b.SetStyle(attrs, pos)
}

func styleFromAttributes(attrs *widget.Attributes) lipgloss.Style {
	style := lipgloss.NewStyle()
	if attrs == nil {
		return style
	}
	if v, ok := attrs.Get("fg"); ok {
		if s, ok := v.AsString(); ok && s != "" {
			style = style.Foreground(lipgloss.Color(s))
		}
	}
	if v, ok := attrs.Get("bg"); ok {
		if s, ok := v.AsString(); ok && s != "" {
			style = style.Background(lipgloss.Color(s))
		}
	}
	if v, ok := attrs.Get("bold"); ok {
		if b, ok := v.AsBool(); ok && b {
			style = style.Bold(true)
		}
	}
	return style
}

// Size implements Backend.
func (b *TeaBackend) Size() widget.Size { return widget.Size{Width: b.width, Height: b.height} }

// Clear implements Backend by resetting every cell to a blank space.
func (b *TeaBackend) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = cell{glyph: layout.SimpleGlyph(' ')}
		}
	}
}

// Render implements Backend: it flattens the cell grid into the string
// the bubbletea model's View returns next.
func (b *TeaBackend) Render(gm *layout.GlyphMap) {
	var out strings.Builder
	for y, row := range b.cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		var line strings.Builder
		lastStyle := lipgloss.NewStyle()
		pendingText := strings.Builder{}
		flush := func() {
			if pendingText.Len() > 0 {
				line.WriteString(lastStyle.Render(pendingText.String()))
				pendingText.Reset()
			}
		}
		for _, c := range row {
			if c.style.String() != lastStyle.String() {
				flush()
				lastStyle = c.style
			}
			if c.glyph.IsIndex {
				pendingText.WriteString(gm.Cluster(c.glyph.Cluster))
			} else if c.glyph.Rune != 0 {
				pendingText.WriteRune(c.glyph.Rune)
			} else {
				pendingText.WriteByte(' ')
			}
		}
		flush()
		out.WriteString(line.String())
	}
	b.frame = out.String()
}

// NextEvent implements Backend by reading from the event channel
// bubbletea's Update populates, waiting at most timeout.
func (b *TeaBackend) NextEvent(timeout time.Duration) (Event, bool) {
	if timeout <= 0 {
		select {
		case ev := <-b.events:
			return ev, true
		default:
			return Event{}, false
		}
	}
	select {
	case ev := <-b.events:
		return ev, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

// teaModel bridges a bubbletea program to a Loop: every tickMsg runs one
// Loop.Tick, and every other message is translated to an Event and
// queued on the backend for that tick to pick up.
type teaModel struct {
	loop    *Loop
	backend *TeaBackend
}

type tickMsg time.Time

func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	d := time.Second / time.Duration(fps)
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *teaModel) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, tickCmd(m.loop.FPS))
}

func (m *teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.backend.resize(msg.Width, msg.Height)
		m.backend.events <- ResizeEv(widget.Size{Width: msg.Width, Height: msg.Height})
		return m, nil

	case tea.KeyMsg:
		m.backend.events <- KeyEv(convertKey(msg))
		return m, nil

	case tea.MouseMsg:
		m.backend.events <- MouseEv(convertMouse(msg))
		return m, nil

	case tickMsg:
		if !m.loop.Tick() {
			return m, tea.Quit
		}
		return m, tickCmd(m.loop.FPS)
	}
	return m, nil
}

func (m *teaModel) View() string {
	return m.backend.frame
}

func convertKey(msg tea.KeyMsg) KeyEvent {
	s := msg.String()
	runes := []rune(s)
	if len(runes) == 1 {
		return KeyEvent{Rune: runes[0]}
	}
	return KeyEvent{Name: s}
}

func convertMouse(msg tea.MouseMsg) MouseEvent {
	ev := MouseEvent{Pos: widget.Pos{X: msg.X, Y: msg.Y}, Button: int(msg.Button)}
	switch msg.Action {
	case tea.MouseActionRelease:
		ev.Action = MouseRelease
	case tea.MouseActionMotion:
		ev.Action = MouseMotion
	default:
		ev.Action = MousePress
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ev.Action = MouseWheelUp
	case tea.MouseButtonWheelDown:
		ev.Action = MouseWheelDown
	}
	return ev
}
