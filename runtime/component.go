package runtime

import (
	"time"

	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/widget"
)

// Elements is the view a Component's hooks get onto their own widget
// subtree: enough to look up a child by id without handing over the
// whole tree.
type Elements struct {
	Tree *widget.Tree
	Root widget.ID
}

// Children returns the component root's direct widget children.
func (e Elements) Children() []widget.ID { return e.Tree.Children(e.Root) }

// Component is application code's hook set for one @name view, bound to
// a ComponentNode in the tree. A Component with nothing to say about a
// hook can embed ComponentBase and override only what it needs.
type Component interface {
	OnEvent(event Event, elements Elements, st state.State, ctx *eval.Context)
	OnMessage(payload interface{}, st state.State, ctx *eval.Context)
	Focus(st state.State, ctx *eval.Context)
	Blur(st state.State, ctx *eval.Context)
	Tick(st state.State, ctx *eval.Context, dt time.Duration)
}

// ComponentBase supplies no-op defaults for every hook.
type ComponentBase struct{}

func (ComponentBase) OnEvent(Event, Elements, state.State, *eval.Context)    {}
func (ComponentBase) OnMessage(interface{}, state.State, *eval.Context)     {}
func (ComponentBase) Focus(state.State, *eval.Context)                       {}
func (ComponentBase) Blur(state.State, *eval.Context)                        {}
func (ComponentBase) Tick(state.State, *eval.Context, time.Duration)         {}

// Registration binds a Component implementation to the ComponentNode
// widget id it was built for.
type Registration struct {
	ID        widget.ID
	Component Component
}
