package template

import "testing"

func buildBlueprint(t *testing.T, src string) []Blueprint {
	t.Helper()
	stmts, _, err := ParseStatements(src)
	if err != nil {
		t.Fatalf("%q: parse error: %v", src, err)
	}
	insts := Compile(Optimize(stmts))
	bps, err := Materialize(insts)
	if err != nil {
		t.Fatalf("%q: materialize error: %v", src, err)
	}
	return bps
}

func TestBlueprintSingleWithAttributeAndChild(t *testing.T) {
	bps := buildBlueprint(t, "border color: red\n    text: \"hi\"\n")
	if len(bps) != 1 {
		t.Fatalf("expected one top-level blueprint, got %d", len(bps))
	}
	root, ok := bps[0].(Single)
	if !ok || root.Ident != "border" {
		t.Fatalf("expected Single(border), got %#v", bps[0])
	}
	if _, ok := root.Attributes["color"]; !ok {
		t.Fatalf("expected a color attribute, got %#v", root.Attributes)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(root.Children))
	}
	child, ok := root.Children[0].(Single)
	if !ok || child.Ident != "text" || child.Value == nil {
		t.Fatalf("expected Single(text) with a value, got %#v", root.Children[0])
	}
}

func TestBlueprintControlFlowGroupsIfElseChain(t *testing.T) {
	bps := buildBlueprint(t, "if a\n    text: \"a\"\nelse if b\n    text: \"b\"\nelse\n    text: \"c\"\n")
	if len(bps) != 1 {
		t.Fatalf("expected one control flow blueprint, got %d: %#v", len(bps), bps)
	}
	cf, ok := bps[0].(ControlFlow)
	if !ok {
		t.Fatalf("expected ControlFlow, got %#v", bps[0])
	}
	if len(cf.Elses) != 3 {
		t.Fatalf("expected 3 branches (if, else if, else), got %d", len(cf.Elses))
	}
	if cf.Elses[0].Cond == nil {
		t.Fatal("expected the if branch to carry a condition")
	}
	if cf.Elses[1].Cond == nil {
		t.Fatal("expected the else-if branch to carry a condition")
	}
	if cf.Elses[2].Cond != nil {
		t.Fatal("expected the trailing else branch to have no condition")
	}
}

func TestBlueprintForLoopBody(t *testing.T) {
	bps := buildBlueprint(t, "for item in items\n    text: item\n")
	forBp, ok := bps[0].(For)
	if !ok || forBp.Binding != "item" {
		t.Fatalf("expected For(item), got %#v", bps[0])
	}
	if len(forBp.Body) != 1 {
		t.Fatalf("expected one body node, got %d", len(forBp.Body))
	}
}

func TestBlueprintComponentAndSlot(t *testing.T) {
	bps := buildBlueprint(t, "@sidebar title: \"hi\"\n    $\n")
	comp, ok := bps[0].(Component)
	if !ok || comp.Name != "sidebar" {
		t.Fatalf("expected Component(sidebar), got %#v", bps[0])
	}
	if _, ok := comp.Attributes["title"]; !ok {
		t.Fatalf("expected a title attribute, got %#v", comp.Attributes)
	}
	if len(comp.Body) != 1 {
		t.Fatalf("expected one body entry (the slot), got %d", len(comp.Body))
	}
	if _, ok := comp.Body[0].(Slot); !ok {
		t.Fatalf("expected Slot, got %#v", comp.Body[0])
	}
}

func TestBlueprintEmptyControlFlowIsFullyElided(t *testing.T) {
	bps := buildBlueprint(t, "if a\nelse\n")
	if len(bps) != 0 {
		t.Fatalf("expected both empty branches to be dropped, got %#v", bps)
	}
}
