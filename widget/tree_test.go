package widget

import (
	"testing"

	"github.com/anathema-go/anathema/eval"
	"github.com/anathema-go/anathema/reactive"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
)

func newTestContext() *eval.Context {
	return &eval.Context{
		Scope:      eval.NewScope(),
		States:     eval.NewStateTable(),
		Attributes: eval.NewAttributeTable(),
		Globals:    map[string]template.Expression{},
		Futures:    eval.NewFutureRegistry(),
	}
}

func stateDotPath(name, field string) template.Expression {
	return template.IndexExpr{Lhs: template.IdentExpr{Name: name}, Index: template.StrExpr{Value: field}}
}

func TestBuildSingleEvaluatesAttributesAndText(t *testing.T) {
	ctx := newTestContext()
	ctx.Globals["greeting"] = template.StrExpr{Value: "hi"}

	bp := template.Single{
		Ident:      "text",
		Value:      template.IdentExpr{Name: "greeting"},
		Attributes: map[string]template.Expression{"bold": template.PrimitiveExpr{Value: template.Primitive{Kind: template.PrimBool, Bool: true}}},
	}

	tree := NewTree(nil, nil)
	roots := tree.Build([]template.Blueprint{bp}, ctx)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}

	n := tree.Get(roots[0])
	el, ok := n.Kind.(Element)
	if !ok || el.Ident != "text" {
		t.Fatalf("expected a text Element, got %#v", n.Kind)
	}

	attrs, ok := tree.Attributes().Get(roots[0])
	if !ok {
		t.Fatal("expected attributes to be recorded")
	}
	bold, ok := attrs.Get("bold")
	if !ok {
		t.Fatal("expected a bold attribute")
	}
	if b, _ := bold.AsBool(); !b {
		t.Fatalf("expected bold=true, got %#v", bold)
	}
	text, ok := attrs.Text()
	if !ok {
		t.Fatal("expected an inline text value")
	}
	if s, _ := text.AsString(); s != "hi" {
		t.Fatalf("expected text value hi, got %#v", text)
	}
}

func TestBuildControlFlowPicksFirstTrueBranch(t *testing.T) {
	ctx := newTestContext()

	bp := template.ControlFlow{Elses: []template.ElseBranch{
		{Cond: template.PrimitiveExpr{Value: template.Primitive{Kind: template.PrimBool, Bool: false}}, Body: []template.Blueprint{template.Single{Ident: "a"}}},
		{Cond: template.PrimitiveExpr{Value: template.Primitive{Kind: template.PrimBool, Bool: true}}, Body: []template.Blueprint{template.Single{Ident: "b"}}},
		{Body: []template.Blueprint{template.Single{Ident: "c"}}},
	}}

	tree := NewTree(nil, nil)
	roots := tree.Build([]template.Blueprint{bp}, ctx)
	n := tree.Get(roots[0])
	cf, ok := n.Kind.(ControlFlow)
	if !ok || cf.Active != 1 {
		t.Fatalf("expected branch 1 active, got %#v", n.Kind)
	}

	children := tree.Children(roots[0])
	if len(children) != 1 {
		t.Fatalf("expected exactly one container child, got %d", len(children))
	}
	container := tree.Get(children[0])
	containerKind, ok := container.Kind.(ControlFlowContainer)
	if !ok || containerKind.BranchID != 1 {
		t.Fatalf("expected container for branch 1, got %#v", container.Kind)
	}

	grandchildren := tree.Children(children[0])
	if len(grandchildren) != 1 {
		t.Fatalf("expected one widget inside the chosen branch, got %d", len(grandchildren))
	}
	leaf := tree.Get(grandchildren[0])
	if el, ok := leaf.Kind.(Element); !ok || el.Ident != "b" {
		t.Fatalf("expected branch b's body, got %#v", leaf.Kind)
	}
}

func TestEnsureIterationScopesLoopBindingPerElement(t *testing.T) {
	ctx := newTestContext()
	ctx.Globals["items"] = template.ListExpr{Items: []template.Expression{
		template.StrExpr{Value: "a"},
		template.StrExpr{Value: "b"},
	}}

	bp := template.For{
		Binding: "item",
		Data:    template.IdentExpr{Name: "items"},
		Body: []template.Blueprint{
			template.Single{Ident: "text", Value: template.IdentExpr{Name: "item"}},
		},
	}

	tree := NewTree(nil, nil)
	roots := tree.Build([]template.Blueprint{bp}, ctx)
	forID := roots[0]

	iter0, ok := tree.EnsureIteration(forID, 0, ctx)
	if !ok {
		t.Fatal("expected iteration 0 to materialize")
	}
	iter1, ok := tree.EnsureIteration(forID, 1, ctx)
	if !ok {
		t.Fatal("expected iteration 1 to materialize")
	}

	check := func(iterID ID, want string) {
		children := tree.Children(iterID)
		if len(children) != 1 {
			t.Fatalf("expected one text widget per iteration, got %d", len(children))
		}
		attrs, ok := tree.Attributes().Get(children[0])
		if !ok {
			t.Fatal("expected attributes for the iteration's text widget")
		}
		v, ok := attrs.Text()
		if !ok {
			t.Fatal("expected an inline text value")
		}
		if s, _ := v.AsString(); s != want {
			t.Fatalf("expected %q, got %#v", want, v)
		}
	}
	check(iter0, "a")
	check(iter1, "b")

	if _, ok := tree.EnsureIteration(forID, 2, ctx); ok {
		t.Fatal("expected no third iteration to exist")
	}
}

func TestBuildComponentScopesStateAndAttributes(t *testing.T) {
	ctx := newTestContext()
	store := reactive.NewStore()
	cardState := state.NewMap(store)
	label := reactive.Insert(store, "hello")
	state.BindValue(cardState, "label", label, func(s string) state.State { return state.Str{Value: s} })

	components := NewComponentRegistry()
	components.Register("card", func() state.State { return cardState })

	bp := template.Component{
		Name: "card",
		Attributes: map[string]template.Expression{
			"title": template.StrExpr{Value: "Card Title"},
		},
		Body: []template.Blueprint{
			template.Single{Ident: "text", Value: stateDotPath("state", "label")},
			template.Single{Ident: "heading", Value: stateDotPath("attributes", "title")},
		},
	}

	tree := NewTree(nil, components)
	roots := tree.Build([]template.Blueprint{bp}, ctx)
	compID := roots[0]

	comp, ok := tree.Get(compID).Kind.(ComponentNode)
	if !ok {
		t.Fatalf("expected a ComponentNode, got %#v", tree.Get(compID).Kind)
	}
	if _, ok := ctx.States.Get(comp.StateID); !ok {
		t.Fatal("expected the component's state to be registered")
	}

	children := tree.Children(compID)
	if len(children) != 2 {
		t.Fatalf("expected 2 body widgets, got %d", len(children))
	}

	textAttrs, _ := tree.Attributes().Get(children[0])
	v, _ := textAttrs.Text()
	if s, _ := v.AsString(); s != "hello" {
		t.Fatalf("expected state.label to resolve to hello, got %#v", v)
	}

	headingAttrs, _ := tree.Attributes().Get(children[1])
	hv, _ := headingAttrs.Text()
	if s, _ := hv.AsString(); s != "Card Title" {
		t.Fatalf("expected attributes.title to resolve to Card Title, got %#v", hv)
	}
}

func TestBuildComponentBindsSingleInstanceViewOnce(t *testing.T) {
	components := NewComponentRegistry()
	components.RegisterOnce("dashboard", func() state.State { return state.Str{Value: "only-one"} })

	bp := template.Component{Name: "dashboard"}

	tree := NewTree(nil, components)

	firstCtx := newTestContext()
	firstRoots := tree.Build([]template.Blueprint{bp}, firstCtx)
	if len(firstRoots) != 1 {
		t.Fatalf("expected the first bind to succeed with 1 root, got %d", len(firstRoots))
	}
	first, ok := tree.Get(firstRoots[0]).Kind.(ComponentNode)
	if !ok {
		t.Fatalf("expected a ComponentNode, got %#v", tree.Get(firstRoots[0]).Kind)
	}
	if _, ok := firstCtx.States.Get(first.StateID); !ok {
		t.Fatal("expected the view's state to be registered on first bind")
	}

	secondCtx := newTestContext()
	secondRoots := tree.Build([]template.Blueprint{bp}, secondCtx)
	if len(secondRoots) != 1 {
		t.Fatalf("expected 1 slot in the result, got %d", len(secondRoots))
	}
	if tree.Get(secondRoots[0]) != nil {
		t.Fatal("expected a consumed view's second bind to produce no node")
	}
}

func TestBuildComponentMissingComponentSkipsSubtree(t *testing.T) {
	components := NewComponentRegistry()

	bp := template.Component{Name: "missing"}
	tree := NewTree(nil, components)

	// "missing" was never registered at all (not even via RegisterOnce),
	// so Build returns MissingComponentError and the whole subtree is
	// skipped rather than built against a default state.Unit{}.
	roots := tree.Build([]template.Blueprint{bp}, newTestContext())
	if len(roots) != 1 {
		t.Fatalf("expected 1 slot in the result, got %d", len(roots))
	}
	if tree.Get(roots[0]) != nil {
		t.Fatal("expected a missing component to produce no node")
	}
}

func strBinding(s string) func(reactive.Subscriber) state.State {
	return func(reactive.Subscriber) state.State { return state.Str{Value: s} }
}

func buildListComponent(t *testing.T, list *state.List) (*Tree, *eval.Context, ID) {
	t.Helper()
	components := NewComponentRegistry()
	components.Register("rows", func() state.State { return list })

	bp := template.Component{
		Name: "rows",
		Body: []template.Blueprint{
			template.For{
				Binding: "item",
				Data:    template.IdentExpr{Name: "state"},
				Body: []template.Blueprint{
					template.Single{Ident: "text", Value: template.IdentExpr{Name: "item"}},
				},
			},
		},
	}

	tree := NewTree(nil, components)
	ctx := newTestContext()
	roots := tree.Build([]template.Blueprint{bp}, ctx)
	forID := tree.Children(roots[0])[0]
	return tree, ctx, forID
}

func iterationText(t *testing.T, tree *Tree, iterID ID) string {
	t.Helper()
	children := tree.Children(iterID)
	if len(children) != 1 {
		t.Fatalf("expected one text widget per iteration, got %d", len(children))
	}
	attrs, ok := tree.Attributes().Get(children[0])
	if !ok {
		t.Fatal("expected attributes for the iteration's text widget")
	}
	v, ok := attrs.Text()
	if !ok {
		t.Fatal("expected an inline text value")
	}
	s, _ := v.AsString()
	return s
}

func TestListPushMaterializesExactlyOneNewIteration(t *testing.T) {
	store := reactive.NewStore()
	list := state.NewList(store)
	list.Push(strBinding("a"))
	list.Push(strBinding("b"))

	tree, ctx, forID := buildListComponent(t, list)

	iter0, ok := tree.EnsureIteration(forID, 0, ctx)
	if !ok {
		t.Fatal("expected iteration 0 to materialize")
	}
	iter1, ok := tree.EnsureIteration(forID, 1, ctx)
	if !ok {
		t.Fatal("expected iteration 1 to materialize")
	}
	if _, ok := tree.EnsureIteration(forID, 2, ctx); ok {
		t.Fatal("expected no third iteration before the push")
	}

	list.Push(strBinding("c"))
	entries := store.DrainChanges()
	if len(entries) == 0 {
		t.Fatal("expected Push to enqueue a change")
	}
	tree.Apply(entries, ctx)

	forKind := tree.Get(forID).Kind.(For)
	if forKind.Iterations != 2 {
		t.Fatalf("expected Push to leave Iterations untouched until EnsureIteration probes it, got %d", forKind.Iterations)
	}

	iter2, ok := tree.EnsureIteration(forID, 2, ctx)
	if !ok {
		t.Fatal("expected iteration 2 to materialize after the push")
	}

	if got := iterationText(t, tree, iter0); got != "a" {
		t.Fatalf("expected iteration 0 to be untouched, got %q", got)
	}
	if got := iterationText(t, tree, iter1); got != "b" {
		t.Fatalf("expected iteration 1 to be untouched, got %q", got)
	}
	if got := iterationText(t, tree, iter2); got != "c" {
		t.Fatalf("expected iteration 2 to be the pushed element, got %q", got)
	}
}

func TestListRemoveAtDetachesExactlyOneIteration(t *testing.T) {
	store := reactive.NewStore()
	list := state.NewList(store)
	list.Push(strBinding("1"))
	list.Push(strBinding("2"))
	list.Push(strBinding("3"))

	tree, ctx, forID := buildListComponent(t, list)

	for i := 0; i < 3; i++ {
		if _, ok := tree.EnsureIteration(forID, i, ctx); !ok {
			t.Fatalf("expected iteration %d to materialize", i)
		}
	}

	list.RemoveAt(1)
	entries := store.DrainChanges()
	if len(entries) == 0 {
		t.Fatal("expected RemoveAt to enqueue a change")
	}
	tree.Apply(entries, ctx)

	forKind := tree.Get(forID).Kind.(For)
	if forKind.Iterations != 2 {
		t.Fatalf("expected Iterations to shrink to 2, got %d", forKind.Iterations)
	}
	children := tree.Children(forID)
	if len(children) != 2 {
		t.Fatalf("expected exactly 2 iterations left in the arena, got %d", len(children))
	}
	if got := iterationText(t, tree, children[0]); got != "1" {
		t.Fatalf("expected the first iteration to remain %q, got %q", "1", got)
	}
	if got := iterationText(t, tree, children[1]); got != "3" {
		t.Fatalf("expected the removed middle element to leave %q in its place, got %q", "3", got)
	}
}

func TestApplyChangedReevaluatesAffectedAttributeOnly(t *testing.T) {
	ctx := newTestContext()
	store := reactive.NewStore()
	cardState := state.NewMap(store)
	label := reactive.Insert(store, "hello")
	state.BindValue(cardState, "label", label, func(s string) state.State { return state.Str{Value: s} })

	components := NewComponentRegistry()
	components.Register("card", func() state.State { return cardState })

	bp := template.Component{
		Name: "card",
		Body: []template.Blueprint{
			template.Single{Ident: "text", Value: stateDotPath("state", "label")},
		},
	}

	tree := NewTree(nil, components)
	roots := tree.Build([]template.Blueprint{bp}, ctx)
	textID := tree.Children(roots[0])[0]

	u := label.ToMut()
	u.Set("updated")
	u.Drop()

	entries := store.DrainChanges()
	if len(entries) == 0 {
		t.Fatal("expected the write to enqueue a change")
	}
	tree.Apply(entries, ctx)

	attrs, _ := tree.Attributes().Get(textID)
	v, _ := attrs.Text()
	if s, _ := v.AsString(); s != "updated" {
		t.Fatalf("expected the text attribute to pick up the new value, got %#v", v)
	}

	n := tree.Get(textID)
	if !n.Dirty {
		t.Fatal("expected the changed widget to be marked dirty")
	}
}
