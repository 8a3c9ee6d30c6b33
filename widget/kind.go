package widget

import (
	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
)

// Kind is the payload one tree Node carries — the Go encoding of the
// spec's WidgetKind sum type. A type switch over the concrete variants
// stands in for pattern matching.
type Kind interface{ isKind() }

// Element is a concrete widget instance: a container with size, pos, and
// a boxed widget object built by a Factory. Widget is nil when no
// factory was registered for Ident — the node still occupies a slot in
// the tree (so children still build and attributes still evaluate) but
// contributes nothing to layout/paint.
type Element struct {
	Ident  string
	Widget Widget
	Size   Size
	Pos    Pos
}

// For generates Iteration children on demand as the layout walker asks
// for more of them; Collection is the Data expression's evaluation,
// re-probed by index rather than materialized up front.
type For struct {
	Binding    string
	DataExpr   template.Expression
	Collection state.State
	Body       []template.Blueprint
	Iterations int
}

// Iteration scopes Binding (and the implicit `loop` index) for one
// element of an enclosing For.
type Iteration struct {
	Binding   string
	LoopIndex int
}

// ControlFlow picks at most one branch; Active is -1 when no branch's
// condition held.
type ControlFlow struct {
	Elses  []template.ElseBranch
	Active int
}

// ControlFlowContainer wraps the chosen branch's children.
type ControlFlowContainer struct {
	BranchID int
}

// ComponentNode is a scope boundary: it owns a state slot and the
// call-site attributes its body's `attributes` identifier resolves to.
type ComponentNode struct {
	Name           string
	StateID        eval.StateID
	Parent         ID
	HasParent      bool
	AssocFunctions []string
	Body           []template.Blueprint
}

// Slot inserts the host's call-site children at this position; during
// layout its generator uses the outer scope, not the component's.
type Slot struct {
	Body []template.Blueprint
}

func (Element) isKind()              {}
func (For) isKind()                  {}
func (Iteration) isKind()            {}
func (ControlFlow) isKind()          {}
func (ControlFlowContainer) isKind() {}
func (ComponentNode) isKind()        {}
func (Slot) isKind()                 {}

// Node is one entry in the tree: its stable ID, its kind-specific
// payload, and whatever scope contribution building its children
// requires re-pushing when the scope chain needs to be reconstructed
// (e.g. to re-evaluate an attribute after an ancestor's binding
// changed).
type Node struct {
	ID       ID
	Kind     Kind
	Dirty    bool
	pushScope func(ctx *eval.Context)
}
