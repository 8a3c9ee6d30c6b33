// Package runtime drives the tick loop: draining messages and input
// events, applying reactive changes, resolving futures, and cycling
// layout/position/paint against a Backend.
package runtime

import "github.com/anathema-go/anathema/widget"

// EventKind discriminates the Event sum type.
type EventKind int

const (
	EventNoop EventKind = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	EventBlur
	EventStop
)

// KeyEvent describes one keypress.
type KeyEvent struct {
	Rune rune
	Name string // e.g. "enter", "esc", "up" for non-printable keys
	Alt  bool
	Ctrl bool
}

// MouseAction is what a MouseEvent reports happened.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
	MouseWheelUp
	MouseWheelDown
)

// MouseEvent describes one mouse interaction at a cell position.
type MouseEvent struct {
	Pos    widget.Pos
	Action MouseAction
	Button int
}

// Event is the runtime's external input sum type: Key/Mouse/Resize carry
// payloads, Focus/Blur/Stop/Noop don't.
type Event struct {
	Kind   EventKind
	Key    KeyEvent
	Mouse  MouseEvent
	Resize widget.Size
}

func KeyEv(k KeyEvent) Event         { return Event{Kind: EventKey, Key: k} }
func MouseEv(m MouseEvent) Event     { return Event{Kind: EventMouse, Mouse: m} }
func ResizeEv(s widget.Size) Event   { return Event{Kind: EventResize, Resize: s} }
func FocusEv() Event                 { return Event{Kind: EventFocus} }
func BlurEv() Event                  { return Event{Kind: EventBlur} }
func StopEv() Event                  { return Event{Kind: EventStop} }
func NoopEv() Event                  { return Event{Kind: EventNoop} }
