package widget

import (
	"log/slog"

	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/internal/arena"
	"github.com/anathema-go/anathema/reactive"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
)

// Tree owns the arena of nodes built from a blueprint forest, the
// per-node attribute cache, and the registries construction consults to
// turn a `Single`'s ident or a `Component`'s name into live behavior.
type Tree struct {
	arena      *arena.Tree[Node]
	attrs      *AttributeStorage
	widgets    *Registry
	components *ComponentRegistry
}

// NewTree creates an empty Tree. Either registry may be nil, in which
// case Single nodes build with a nil Widget and every Component node is
// skipped as a missing component — useful in tests that only care about
// tree shape.
func NewTree(widgets *Registry, components *ComponentRegistry) *Tree {
	if widgets == nil {
		widgets = NewRegistry()
	}
	if components == nil {
		components = NewComponentRegistry()
	}
	return &Tree{
		arena:      arena.NewTree[Node](),
		attrs:      NewAttributeStorage(),
		widgets:    widgets,
		components: components,
	}
}

// Attributes returns the tree's attribute storage.
func (t *Tree) Attributes() *AttributeStorage { return t.attrs }

// Get returns the node at id, or nil if id is stale or unknown.
func (t *Tree) Get(id ID) *Node { return t.arena.Get(id) }

// Children returns the ordered child IDs of id.
func (t *Tree) Children(id ID) []ID { return t.arena.Children(id) }

// Roots returns the top-level node IDs.
func (t *Tree) Roots() []ID { return t.arena.Roots() }

// Build materializes a blueprint forest as the tree's roots, evaluating
// every attribute and scope contribution against ctx.
func (t *Tree) Build(bps []template.Blueprint, ctx *eval.Context) []ID {
	roots := make([]ID, 0, len(bps))
	for _, bp := range bps {
		roots = append(roots, t.buildOne(bp, ID{}, false, ctx))
	}
	return roots
}

func (t *Tree) buildChildren(bps []template.Blueprint, parent ID, ctx *eval.Context) {
	for _, bp := range bps {
		t.buildOne(bp, parent, true, ctx)
	}
}

// commit inserts a new node under parent, or as a root if !hasParent.
// Inserting into a path that no longer exists (parent removed by a
// concurrent change) is not a programming error: it logs and skips the
// subtree, returning the zero ID, which every caller treats as "nothing
// built here".
func (t *Tree) commit(parent ID, hasParent bool) ID {
	tx := t.arena.Begin(Node{})
	if !hasParent {
		return tx.Commit()
	}
	id, ok := tx.CommitChild(parent)
	if !ok {
		tx.Abort()
		slog.Warn("anathema: insert into removed subtree, skipping", "parent", parent)
		return ID{}
	}
	return id
}

func (t *Tree) buildOne(bp template.Blueprint, parent ID, hasParent bool, ctx *eval.Context) ID {
	switch v := bp.(type) {
	case template.Single:
		return t.buildSingle(v, parent, hasParent, ctx)
	case template.For:
		return t.buildFor(v, parent, hasParent, ctx)
	case template.ControlFlow:
		return t.buildControlFlow(v, parent, hasParent, ctx)
	case template.Component:
		return t.buildComponent(v, parent, hasParent, ctx)
	case template.Slot:
		return t.buildSlot(v, parent, hasParent, ctx)
	default:
		return ID{}
	}
}

func (t *Tree) buildSingle(bp template.Single, parent ID, hasParent bool, ctx *eval.Context) ID {
	id := t.commit(parent, hasParent)

	attrs := NewAttributes(id, bp.Attributes, bp.Value, ctx)
	t.attrs.insert(id, attrs)

	var w Widget
	if factory, ok := t.widgets.Lookup(bp.Ident); ok {
		w, _ = factory(FactoryContext{Attrs: attrs})
	}

	t.buildChildren(bp.Children, id, ctx)

	n := t.arena.Get(id)
	n.ID = id
	n.Kind = Element{Ident: bp.Ident, Widget: w}
	return id
}

func (t *Tree) buildFor(bp template.For, parent ID, hasParent bool, ctx *eval.Context) ID {
	id := t.commit(parent, hasParent)
	sub := subscriberFor(id, 0)
	collection := eval.Evaluate(bp.Data, ctx, sub)

	n := t.arena.Get(id)
	n.ID = id
	n.Kind = For{Binding: bp.Binding, DataExpr: bp.Data, Collection: collection, Body: bp.Body}
	return id
}

func (t *Tree) buildControlFlow(bp template.ControlFlow, parent ID, hasParent bool, ctx *eval.Context) ID {
	id := t.commit(parent, hasParent)

	active := -1
	for i, branch := range bp.Elses {
		if branch.Cond == nil {
			active = i
			break
		}
		v := eval.Evaluate(branch.Cond, ctx, subscriberFor(id, uint32(i)))
		if b, ok := v.AsBool(); ok && b {
			active = i
			break
		}
	}

	if active >= 0 {
		containerID := t.commit(id, true)
		t.buildChildren(bp.Elses[active].Body, containerID, ctx)
		cn := t.arena.Get(containerID)
		cn.ID = containerID
		cn.Kind = ControlFlowContainer{BranchID: active}
	}

	n := t.arena.Get(id)
	n.ID = id
	n.Kind = ControlFlow{Elses: bp.Elses, Active: active}
	return id
}

func (t *Tree) buildComponent(bp template.Component, parent ID, hasParent bool, ctx *eval.Context) ID {
	// A single-instance view's binding (or a missing-component lookup)
	// is checked before anything is committed to the arena: either
	// failure must skip the whole subtree, and a node left half-built
	// with a nil Kind would confuse every downstream type switch over
	// Kind.
	var initial state.State
	var err error
	if t.components.IsOnce(bp.Name) {
		initial, err = t.components.Take(bp.Name)
		if err != nil {
			slog.Warn("anathema: view binding failed, skipping component", "name", bp.Name, "err", err)
			return ID{}
		}
	} else {
		initial, err = t.components.Build(bp.Name)
		if err != nil {
			slog.Warn("anathema: missing component, skipping", "name", bp.Name, "err", err)
			return ID{}
		}
	}

	id := t.commit(parent, hasParent)

	// Call-site attributes are evaluated against the scope the component
	// was invoked from, before pushing its own state/attributes scope.
	callSiteAttrs := NewAttributes(id, bp.Attributes, nil, ctx)
	t.attrs.insert(id, callSiteAttrs)
	ctx.Attributes.Insert(widgetEvalID(id), callSiteAttrs.AsState())

	stateID := ctx.States.Insert(initial)

	wid := widgetEvalID(id)
	push := func(ctx *eval.Context) {
		ctx.Scope.PushState(stateID)
		ctx.Scope.PushComponentAttributes(wid)
	}

	ctx.Scope.Push()
	push(ctx)
	t.buildChildren(bp.Body, id, ctx)
	ctx.Scope.Pop()

	n := t.arena.Get(id)
	n.ID = id
	n.pushScope = push
	n.Kind = ComponentNode{
		Name:           bp.Name,
		StateID:        stateID,
		Parent:         parent,
		HasParent:      hasParent,
		AssocFunctions: bp.AssocFunctions,
		Body:           bp.Body,
	}
	return id
}

func (t *Tree) buildSlot(bp template.Slot, parent ID, hasParent bool, ctx *eval.Context) ID {
	id := t.commit(parent, hasParent)
	t.buildChildren(bp.Body, id, ctx)
	n := t.arena.Get(id)
	n.ID = id
	n.Kind = Slot{Body: bp.Body}
	return id
}

// EnsureIteration materializes the Iteration child at index of the For
// node forID if it does not exist yet, probing forID's collection one
// element past the last materialized iteration. It returns false (and
// registers a future) once the collection has no element at index.
func (t *Tree) EnsureIteration(forID ID, index int, ctx *eval.Context) (ID, bool) {
	n := t.arena.Get(forID)
	if n == nil {
		return ID{}, false
	}
	forKind, ok := n.Kind.(For)
	if !ok {
		return ID{}, false
	}

	if index < forKind.Iterations {
		children := t.arena.Children(forID)
		if index >= len(children) {
			return ID{}, false
		}
		return children[index], true
	}
	if index != forKind.Iterations {
		return ID{}, false
	}

	sub := subscriberFor(forID, 0)
	pending, ok := forKind.Collection.Lookup(index, sub)
	if !ok {
		ctx.Futures.Register(sub)
		return ID{}, false
	}
	elem, ok := pending.ToValue(sub)
	if !ok {
		ctx.Futures.Register(sub)
		return ID{}, false
	}

	binding := forKind.Binding
	loopIndex := index
	push := func(ctx *eval.Context) {
		ctx.Scope.PushPending(binding, state.NewPendingValue(func(reactive.Subscriber) state.State { return elem }))
		ctx.Scope.PushPending("loop", state.NewPendingValue(func(reactive.Subscriber) state.State {
			return state.StaticMap{Fields: map[string]state.State{"index": state.Int{Value: int64(loopIndex)}}}
		}))
	}

	iterID := t.commit(forID, true)
	ctx.Scope.Push()
	push(ctx)
	t.buildChildren(forKind.Body, iterID, ctx)
	ctx.Scope.Pop()

	in := t.arena.Get(iterID)
	in.ID = iterID
	in.pushScope = push
	in.Kind = Iteration{Binding: binding, LoopIndex: loopIndex}

	forKind.Iterations++
	// Re-fetch n: commit/buildChildren above may have grown the arena's
	// backing storage, invalidating the pointer obtained at the top of
	// this function.
	n = t.arena.Get(forID)
	n.Kind = forKind
	return iterID, true
}

// rebuildScope replays every scope contribution from the root down to
// (but not including) id's own, returning a restore func that pops them
// back off. This is how identifier resolution during an update re-gains
// the scope chain the node was originally built under, without keeping
// a live Scope snapshot per node.
func (t *Tree) rebuildScope(id ID, ctx *eval.Context) func() {
	var chain []ID
	for cur, ok := id, true; ok; cur, ok = t.arena.Parent(cur) {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	pushes := 0
	for _, ancestor := range chain {
		if ancestor == id {
			continue
		}
		an := t.arena.Get(ancestor)
		if an != nil && an.pushScope != nil {
			ctx.Scope.Push()
			an.pushScope(ctx)
			pushes++
		}
	}
	return func() {
		for i := 0; i < pushes; i++ {
			ctx.Scope.Pop()
		}
	}
}

// Apply folds a batch of drained reactive change entries into the tree:
// re-evaluating a changed attribute, growing or shrinking a For's
// materialized iterations, or detaching a dropped subtree.
func (t *Tree) Apply(entries []reactive.ChangeEntry, ctx *eval.Context) {
	for _, entry := range entries {
		for _, sub := range entry.Subs {
			t.applyOne(sub, entry.Change, ctx)
		}
	}
}

func (t *Tree) applyOne(sub reactive.Subscriber, ch reactive.Change, ctx *eval.Context) {
	id := idFromKey(sub.WidgetKey)
	n := t.arena.Get(id)
	if n == nil {
		return
	}

	switch ch.Kind {
	case reactive.Changed:
		restore := t.rebuildScope(id, ctx)
		if forKind, ok := n.Kind.(For); ok && sub.AttributeIndex == 0 {
			forKind.Collection = eval.Evaluate(forKind.DataExpr, ctx, sub)
			n.Kind = forKind
		}
		if attrs, ok := t.attrs.Get(id); ok {
			attrs.reevaluate(sub.AttributeIndex, ctx)
			if _, isComponent := n.Kind.(ComponentNode); isComponent {
				ctx.Attributes.Insert(widgetEvalID(id), attrs.AsState())
			}
		}
		restore()
		t.markDirty(id)

	case reactive.InsertIndex, reactive.RemoveIndex, reactive.Push:
		t.applyCollectionChange(id, ch)
		t.markDirty(id)

	case reactive.Dropped:
		t.arena.Remove(id)
		t.attrs.remove(id)
	}
}

func (t *Tree) applyCollectionChange(id ID, ch reactive.Change) {
	n := t.arena.Get(id)
	if n == nil {
		return
	}
	forKind, ok := n.Kind.(For)
	if !ok {
		return
	}
	children := t.arena.Children(id)

	switch ch.Kind {
	case reactive.RemoveIndex:
		if ch.Index < 0 || ch.Index >= len(children) {
			return
		}
		t.arena.Remove(children[ch.Index])
		if forKind.Iterations > 0 {
			forKind.Iterations--
		}
		t.renumberIterations(id)
	case reactive.InsertIndex:
		if ch.Index < forKind.Iterations {
			// Every iteration from the insertion point on now refers to
			// the wrong element. Truncating the arena's child list (not
			// just the logical count) drops those stale subtrees instead
			// of leaking them as unreachable children of id; EnsureIteration
			// rematerializes them, in the new order, on the next layout pass.
			t.arena.Truncate(id, ch.Index)
			forKind.Iterations = ch.Index
		}
	case reactive.Push:
		// Nothing to materialize yet; EnsureIteration picks the new
		// element up the next time layout asks for the next index.
	}
	n.Kind = forKind
}

func (t *Tree) renumberIterations(forID ID) {
	for i, childID := range t.arena.Children(forID) {
		cn := t.arena.Get(childID)
		if cn == nil {
			continue
		}
		if it, ok := cn.Kind.(Iteration); ok {
			it.LoopIndex = i
			cn.Kind = it
		}
	}
}

func (t *Tree) markDirty(id ID) {
	for cur, ok := id, true; ok; {
		n := t.arena.Get(cur)
		if n == nil {
			return
		}
		n.Dirty = true
		if _, isElement := n.Kind.(Element); isElement {
			return
		}
		cur, ok = t.arena.Parent(cur)
	}
}
