package runtime

import (
	"time"

	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/layout"
	"github.com/anathema-go/anathema/reactive"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/widget"
)

// Loop is the single-threaded tick driver: every call to Tick drains
// messages, pulls one input event, applies queued reactive changes,
// resolves futures, and recomputes layout/position/paint, pacing itself
// to FPS.
type Loop struct {
	Tree         *widget.Tree
	Ctx          *eval.Context
	Store        *reactive.Store
	Backend      Backend
	GlyphMap     *layout.GlyphMap
	Messages     chan Message
	Components   []Registration
	Focused      int // index into Components, -1 if nothing is focused
	FPS          int

	lastFrame time.Time
}

// NewLoop wires a Loop ready to Tick. FPS defaults to 30 if <= 0.
func NewLoop(tree *widget.Tree, ctx *eval.Context, store *reactive.Store, backend Backend, fps int) *Loop {
	if fps <= 0 {
		fps = 30
	}
	return &Loop{
		Tree:     tree,
		Ctx:      ctx,
		Store:    store,
		Backend:  backend,
		GlyphMap: layout.NewGlyphMap(),
		Messages: make(chan Message, 64),
		Focused:  -1,
		FPS:      fps,
	}
}

// Register binds component to the widget id of the ComponentNode it
// implements, in call-site order (mouse events broadcast in this order).
func (l *Loop) Register(id widget.ID, component Component) {
	l.Components = append(l.Components, Registration{ID: id, Component: component})
}

func (l *Loop) frameDuration() time.Duration {
	return time.Second / time.Duration(l.FPS)
}

// Tick runs exactly one frame. It returns false once a Stop event has
// been processed, telling the caller to end the run loop.
func (l *Loop) Tick() bool {
	frame := l.frameDuration()
	start := time.Now()
	frameDeadline := start.Add(frame)
	messageDeadline := start.Add(frame / 2)

	// 1. Drain inbound messages for at most half the frame budget.
drainMessages:
	for time.Now().Before(messageDeadline) {
		select {
		case m := <-l.Messages:
			l.dispatchMessage(m)
		default:
			break drainMessages
		}
	}

	// 2. Pull one input event for whatever budget remains.
	if budget := time.Until(frameDeadline); budget > 0 {
		if ev, ok := l.Backend.NextEvent(budget); ok {
			if stop := l.routeEvent(ev); stop {
				return false
			}
		}
	}

	// 3. Apply changes queued by anything the above touched.
	if entries := l.Store.DrainChanges(); len(entries) > 0 {
		l.Tree.Apply(entries, l.Ctx)
	}

	// 4. Resolve futures: replay each as a Changed signal against the
	// one subscriber that asked for it.
	if pending := l.Ctx.Futures.Drain(); len(pending) > 0 {
		entries := make([]reactive.ChangeEntry, len(pending))
		for i, sub := range pending {
			entries[i] = reactive.ChangeEntry{Subs: []reactive.Subscriber{sub}, Change: reactive.Change{Kind: reactive.Changed}}
		}
		l.Tree.Apply(entries, l.Ctx)
	}

	// 5. Cycle: layout, position, paint.
	l.cycle()

	if elapsed := time.Since(start); elapsed < frame {
		time.Sleep(frame - elapsed)
	}
	l.lastFrame = start
	return true
}

func (l *Loop) cycle() {
	size := l.Backend.Size()
	constraints := widget.Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
	pass := layout.NewPass(l.Tree, l.Ctx)

	roots := l.Tree.Roots()
	for _, root := range roots {
		pass.Layout(root, constraints)
		pass.Position(root, widget.Pos{})
	}

	l.Backend.Clear()
	clip := widget.Region{To: widget.Pos{X: size.Width, Y: size.Height}}
	for _, root := range roots {
		pass.Paint(root, widget.PaintCtx{Clip: clip, Renderer: l.Backend})
	}
	l.Backend.Render(l.GlyphMap)
}

func (l *Loop) findRegistration(id widget.ID) (Registration, bool) {
	for _, r := range l.Components {
		if r.ID == id {
			return r, true
		}
	}
	return Registration{}, false
}

func (l *Loop) dispatchMessage(m Message) {
	reg, ok := l.findRegistration(m.Target)
	if !ok {
		return
	}
	st, ok := l.stateFor(reg.ID)
	if !ok {
		return
	}
	reg.Component.OnMessage(m.Payload, st, l.Ctx)
}

// stateFor resolves the component-local state bound to id's
// ComponentNode, if id names one that is still live.
func (l *Loop) stateFor(id widget.ID) (state.State, bool) {
	n := l.Tree.Get(id)
	if n == nil {
		return nil, false
	}
	comp, ok := n.Kind.(widget.ComponentNode)
	if !ok {
		return nil, false
	}
	return l.Ctx.States.Get(comp.StateID)
}

// routeEvent dispatches ev per spec: Key/Focus/Blur to the focused
// component, Mouse broadcast to every registered component in
// registration order, Resize folded straight into the next cycle's
// constraints via the backend's own reported size. It reports whether
// ev was Stop.
func (l *Loop) routeEvent(ev Event) bool {
	switch ev.Kind {
	case EventStop:
		return true

	case EventKey, EventFocus, EventBlur:
		if l.Focused < 0 || l.Focused >= len(l.Components) {
			return false
		}
		reg := l.Components[l.Focused]
		st, ok := l.stateFor(reg.ID)
		if !ok {
			return false
		}
		elements := Elements{Tree: l.Tree, Root: reg.ID}
		switch ev.Kind {
		case EventFocus:
			reg.Component.Focus(st, l.Ctx)
		case EventBlur:
			reg.Component.Blur(st, l.Ctx)
		default:
			reg.Component.OnEvent(ev, elements, st, l.Ctx)
		}

	case EventMouse:
		for _, reg := range l.Components {
			st, ok := l.stateFor(reg.ID)
			if !ok {
				continue
			}
			reg.Component.OnEvent(ev, Elements{Tree: l.Tree, Root: reg.ID}, st, l.Ctx)
		}

	case EventResize:
		// The next cycle reads Backend.Size() directly; nothing to do
		// here beyond letting the event fall through unrouted.
	}
	return false
}
