package runtime

import (
	"testing"
	"time"

	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/layout"
	"github.com/anathema-go/anathema/reactive"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
	"github.com/anathema-go/anathema/widget"
)

// fakeBackend is an in-memory Backend for tests: NextEvent drains a
// preloaded queue instead of blocking on real input.
type fakeBackend struct {
	size    widget.Size
	queue   []Event
	cleared int
	painted []rune
}

func (b *fakeBackend) DrawGlyph(r rune, pos widget.Pos) { b.painted = append(b.painted, r) }
func (b *fakeBackend) SetStyle(*widget.Attributes, widget.Pos) {}
func (b *fakeBackend) SetAttributes(*widget.Attributes, widget.Pos) {}
func (b *fakeBackend) Size() widget.Size { return b.size }
func (b *fakeBackend) Clear()            { b.cleared++; b.painted = nil }
func (b *fakeBackend) Render(*layout.GlyphMap) {}
func (b *fakeBackend) NextEvent(timeout time.Duration) (Event, bool) {
	if len(b.queue) == 0 {
		return Event{}, false
	}
	ev := b.queue[0]
	b.queue = b.queue[1:]
	return ev, true
}

func newLoopTestContext() *eval.Context {
	return &eval.Context{
		Scope:      eval.NewScope(),
		States:     eval.NewStateTable(),
		Attributes: eval.NewAttributeTable(),
		Globals:    map[string]template.Expression{},
		Futures:    eval.NewFutureRegistry(),
	}
}

type countingComponent struct {
	ComponentBase
	events   int
	messages int
}

func (c *countingComponent) OnEvent(ev Event, elements Elements, st state.State, ctx *eval.Context) {
	c.events++
}
func (c *countingComponent) OnMessage(payload interface{}, st state.State, ctx *eval.Context) {
	c.messages++
}

func TestLoopTickStopsOnStopEvent(t *testing.T) {
	ctx := newLoopTestContext()
	store := reactive.NewStore()
	tree := widget.NewTree(nil, nil)
	backend := &fakeBackend{size: widget.Size{Width: 10, Height: 5}, queue: []Event{StopEv()}}

	loop := NewLoop(tree, ctx, store, backend, 30)
	if loop.Tick() {
		t.Fatal("expected Tick to report the loop should stop")
	}
}

func TestLoopRoutesKeyEventsToFocusedComponent(t *testing.T) {
	ctx := newLoopTestContext()
	store := reactive.NewStore()
	backend := &fakeBackend{size: widget.Size{Width: 10, Height: 5}, queue: []Event{KeyEv(KeyEvent{Rune: 'a'})}}

	components := widget.NewComponentRegistry()
	components.Register("app", func() state.State { return state.Unit{} })
	tree := widget.NewTree(nil, components)
	roots := tree.Build([]template.Blueprint{template.Component{Name: "app"}}, ctx)

	loop := NewLoop(tree, ctx, store, backend, 30)
	comp := &countingComponent{}
	loop.Register(roots[0], comp)
	FocusComponent(loop, roots[0])

	if !loop.Tick() {
		t.Fatal("expected Tick to continue running")
	}
	if comp.events != 1 {
		t.Fatalf("expected the focused component to receive 1 event, got %d", comp.events)
	}
}

func TestLoopDispatchesQueuedMessages(t *testing.T) {
	ctx := newLoopTestContext()
	store := reactive.NewStore()
	components := widget.NewComponentRegistry()
	components.Register("app", func() state.State { return state.Unit{} })
	tree := widget.NewTree(nil, components)
	roots := tree.Build([]template.Blueprint{template.Component{Name: "app"}}, ctx)

	backend := &fakeBackend{size: widget.Size{Width: 10, Height: 5}}
	loop := NewLoop(tree, ctx, store, backend, 30)
	comp := &countingComponent{}
	loop.Register(roots[0], comp)
	loop.Messages <- Message{Target: roots[0], Payload: "hi"}

	if !loop.Tick() {
		t.Fatal("expected Tick to continue running")
	}
	if comp.messages != 1 {
		t.Fatalf("expected the message to be dispatched once, got %d", comp.messages)
	}
}

func TestLoopAppliesReactiveChangesBeforePainting(t *testing.T) {
	ctx := newLoopTestContext()
	store := reactive.NewStore()
	cardState := state.NewMap(store)
	label := reactive.Insert(store, "hello")
	state.BindValue(cardState, "label", label, func(s string) state.State { return state.Str{Value: s} })

	components := widget.NewComponentRegistry()
	components.Register("card", func() state.State { return cardState })
	tree := widget.NewTree(nil, components)
	bp := template.Component{
		Name: "card",
		Body: []template.Blueprint{
			template.Single{Ident: "text", Value: template.IndexExpr{Lhs: template.IdentExpr{Name: "state"}, Index: template.StrExpr{Value: "label"}}},
		},
	}
	roots := tree.Build([]template.Blueprint{bp}, ctx)
	textID := tree.Children(roots[0])[0]

	u := label.ToMut()
	u.Set("updated")
	u.Drop()

	backend := &fakeBackend{size: widget.Size{Width: 10, Height: 5}}
	loop := NewLoop(tree, ctx, store, backend, 30)
	if !loop.Tick() {
		t.Fatal("expected Tick to continue running")
	}

	attrs, _ := tree.Attributes().Get(textID)
	v, _ := attrs.Text()
	if s, _ := v.AsString(); s != "updated" {
		t.Fatalf("expected the reactive change to be applied before paint, got %#v", v)
	}
}
