package runtime

import (
	"time"

	"github.com/anathema-go/anathema/layout"
	"github.com/anathema-go/anathema/widget"
)

// Backend is the external surface paint and input drive against: a real
// terminal in production, a recording fake in tests.
type Backend interface {
	widget.Renderer
	SetAttributes(attrs *widget.Attributes, pos widget.Pos)
	Size() widget.Size
	Clear()
	Render(gm *layout.GlyphMap)
	// NextEvent blocks for at most timeout waiting for the next input
	// event, returning ok=false on timeout (not an error: the loop simply
	// has no event to route this tick).
	NextEvent(timeout time.Duration) (Event, bool)
}
