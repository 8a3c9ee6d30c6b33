package template

import "testing"

func optimizeSrc(t *testing.T, src string) []OptimizedExpr {
	t.Helper()
	stmts, _, err := ParseStatements(src)
	if err != nil {
		t.Fatalf("%q: unexpected parse error: %v", src, err)
	}
	return Optimize(stmts)
}

func TestOptimizerDropsEmptyIfLeavingPlainNode(t *testing.T) {
	// `if cond` with nothing indented under it has an empty body and is
	// dropped; the sibling node that follows survives untouched.
	exprs := optimizeSrc(t, "if cond\nx\n")
	if len(exprs) != 1 {
		t.Fatalf("expected exactly one optimized expr, got %d: %#v", len(exprs), exprs)
	}
	node, ok := exprs[0].(NodeOpt)
	if !ok || node.Ident != "x" {
		t.Fatalf("expected NodeOpt(x), got %#v", exprs[0])
	}
}

func TestOptimizerDropsEmptyElseKeepingNonEmptyIf(t *testing.T) {
	exprs := optimizeSrc(t, "if cond\n    a\nelse\n")
	if len(exprs) != 2 {
		t.Fatalf("expected If + its single child, got %d: %#v", len(exprs), exprs)
	}
	ifExpr, ok := exprs[0].(IfOpt)
	if !ok || ifExpr.Size != 1 {
		t.Fatalf("expected IfOpt with size 1, got %#v", exprs[0])
	}
	child, ok := exprs[1].(NodeOpt)
	if !ok || child.Ident != "a" {
		t.Fatalf("expected NodeOpt(a) as the if's body, got %#v", exprs[1])
	}
}

func TestOptimizerAggregatesNodeAttributesAndChildrenIntoScopeSize(t *testing.T) {
	exprs := optimizeSrc(t, "border color: red\n    text: \"hi\"\n")
	node, ok := exprs[0].(NodeOpt)
	if !ok || node.Ident != "border" {
		t.Fatalf("expected NodeOpt(border), got %#v", exprs[0])
	}
	// scope_size = 1 attribute + (1 child node + its own 1-entry body) = 3
	if node.ScopeSize != 3 {
		t.Fatalf("expected scope size 3, got %d (%#v)", node.ScopeSize, exprs)
	}
	if _, ok := exprs[1].(LoadAttributeOpt); !ok {
		t.Fatalf("expected LoadAttributeOpt next, got %#v", exprs[1])
	}
	inner, ok := exprs[2].(NodeOpt)
	if !ok || inner.Ident != "text" || inner.ScopeSize != 1 {
		t.Fatalf("expected NodeOpt(text, scopeSize 1), got %#v", exprs[2])
	}
	if _, ok := exprs[3].(LoadTextOpt); !ok {
		t.Fatalf("expected LoadTextOpt last, got %#v", exprs[3])
	}
}

func TestOptimizerDropsEmptyFor(t *testing.T) {
	exprs := optimizeSrc(t, "for x in items\ny\n")
	if len(exprs) != 1 {
		t.Fatalf("expected the for to be dropped, leaving one node, got %#v", exprs)
	}
	if _, ok := exprs[0].(NodeOpt); !ok {
		t.Fatalf("expected NodeOpt(y), got %#v", exprs[0])
	}
}

func TestOptimizerKeepsNonEmptyForWithSize(t *testing.T) {
	exprs := optimizeSrc(t, "for x in items\n    text: x\n")
	forExpr, ok := exprs[0].(ForOpt)
	if !ok || forExpr.Binding != "x" {
		t.Fatalf("expected ForOpt(x), got %#v", exprs[0])
	}
	if forExpr.Size != 2 {
		t.Fatalf("expected size 2 (text node + its value), got %d", forExpr.Size)
	}
}
