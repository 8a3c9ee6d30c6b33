package eval

import (
	"math"

	"github.com/anathema-go/anathema/reactive"
	"github.com/anathema-go/anathema/state"
	"github.com/anathema-go/anathema/template"
)

// Context bundles everything Evaluate needs besides the expression
// itself and the subscriber it is evaluating on behalf of: the live
// scope chain, the component state and attribute registries a Scope's
// State/ComponentAttributes entries address by id, and the template's
// top-level globals as a last-resort identifier lookup.
type Context struct {
	Scope      *Scope
	States     *StateTable
	Attributes *AttributeTable
	Globals    map[string]template.Expression
	Futures    *FutureRegistry
}

// Evaluate resolves expr against ctx, registering sub as a dependent of
// every reactive value read along the way. A lookup that cannot be
// satisfied right now (an unreachable binding, an out-of-range index, an
// attribute the call site never supplied) evaluates to state.Unit{} and
// registers sub in ctx.Futures so a later drain can retry it once the
// binding exists — Evaluate itself never returns an error for a missing
// value, only for nothing the grammar should ever produce.
func Evaluate(expr Expression, ctx *Context, sub reactive.Subscriber) state.State {
	switch e := expr.(type) {
	case template.PrimitiveExpr:
		return primitiveToState(e.Value)

	case template.StrExpr:
		return state.Str{Value: e.Value}

	case template.IdentExpr:
		return evalIdent(e.Name, ctx, sub)

	case template.IndexExpr:
		return evalIndex(e, ctx, sub)

	case template.NotExpr:
		v := Evaluate(e.Expr, ctx, sub)
		if b, ok := v.AsBool(); ok {
			return state.Bool{Value: !b}
		}
		return state.Unit{}

	case template.NegativeExpr:
		v := Evaluate(e.Expr, ctx, sub)
		switch v.Kind() {
		case state.KindInt:
			i, _ := v.AsInt()
			return state.Int{Value: -i}
		case state.KindFloat:
			f, _ := v.AsFloat()
			return state.Float{Value: -f}
		default:
			return state.Unit{}
		}

	case template.OpExpr:
		return evalOp(e, ctx, sub)

	case template.EqualityExpr:
		return evalEquality(e, ctx, sub)

	case template.EitherExpr:
		lhs := Evaluate(e.Lhs, ctx, sub)
		if lhs.Kind() == state.KindUnit {
			return Evaluate(e.Rhs, ctx, sub)
		}
		return lhs

	case template.ListExpr:
		items := make([]state.State, len(e.Items))
		for i, item := range e.Items {
			items[i] = Evaluate(item, ctx, sub)
		}
		return state.StaticList{Items: items}

	case template.MapExpr:
		fields := make(map[string]state.State, len(e.Entries))
		for k, v := range e.Entries {
			fields[k] = Evaluate(v, ctx, sub)
		}
		return state.StaticMap{Fields: fields}

	case template.CallExpr:
		// Function calls resolve against the component registry, which
		// this package has no visibility into; nothing reachable from
		// the scope chain is ever callable.
		return state.Unit{}

	default:
		return state.Unit{}
	}
}

func primitiveToState(p template.Primitive) state.State {
	switch p.Kind {
	case template.PrimInt:
		return state.Int{Value: p.Int}
	case template.PrimFloat:
		return state.Float{Value: p.Float}
	case template.PrimBool:
		return state.Bool{Value: p.Bool}
	case template.PrimHex:
		return state.Hex{Value: uint32(p.Hex[0])<<16 | uint32(p.Hex[1])<<8 | uint32(p.Hex[2])}
	default:
		return state.Unit{}
	}
}

// evalIdent resolves a bare identifier: the two reserved names first,
// then the scope chain, then the template's globals, and finally a
// registered future if nothing claims it.
func evalIdent(name string, ctx *Context, sub reactive.Subscriber) state.State {
	switch name {
	case "state":
		id, ok := ctx.Scope.State()
		if !ok {
			return state.Unit{}
		}
		s, ok := ctx.States.Get(id)
		if !ok {
			return state.Unit{}
		}
		return s
	case "attributes":
		id, ok := ctx.Scope.ComponentAttributes()
		if !ok {
			return state.Unit{}
		}
		s, ok := ctx.Attributes.Get(id)
		if !ok {
			return state.Unit{}
		}
		return s
	}

	switch res := ctx.Scope.lookup(name); res.kind {
	case lookupPending:
		s, ok := res.pending.ToValue(sub)
		if !ok {
			ctx.Futures.Register(sub)
			return state.Unit{}
		}
		return s
	case lookupExpr:
		return Evaluate(res.expr, ctx, sub)
	}

	if expr, ok := ctx.Globals[name]; ok {
		return Evaluate(expr, ctx, sub)
	}

	ctx.Futures.Register(sub)
	return state.Unit{}
}

// evalIndex resolves `lhs[index]`. A string-literal index looks up a
// composite field directly without evaluating it as an expression first
// (matching the grammar's dot-sugar desugaring, which already produced a
// StrExpr); any other index expression is evaluated and must come back
// as a number to index a list.
func evalIndex(e template.IndexExpr, ctx *Context, sub reactive.Subscriber) state.State {
	lhs := Evaluate(e.Lhs, ctx, sub)

	if key, ok := e.Index.(template.StrExpr); ok {
		pv, found := lhs.Get(key.Value, sub)
		return resolvePending(pv, found, ctx, sub)
	}

	idx := Evaluate(e.Index, ctx, sub)
	i, ok := idx.AsInt()
	if !ok {
		ctx.Futures.Register(sub)
		return state.Unit{}
	}
	pv, found := lhs.Lookup(int(i), sub)
	return resolvePending(pv, found, ctx, sub)
}

func resolvePending(pv state.PendingValue, found bool, ctx *Context, sub reactive.Subscriber) state.State {
	if !found {
		ctx.Futures.Register(sub)
		return state.Unit{}
	}
	s, ok := pv.ToValue(sub)
	if !ok {
		ctx.Futures.Register(sub)
		return state.Unit{}
	}
	return s
}

var isNumericKind = map[state.Kind]bool{
	state.KindInt:   true,
	state.KindFloat: true,
	state.KindChar:  true,
	state.KindHex:   true,
}

// evalOp evaluates an arithmetic Op expression: int-int stays int,
// anything involving a float (or a kind that can only surface as a
// float, such as a non-numeric coerced via AsFloat) promotes to float.
func evalOp(e template.OpExpr, ctx *Context, sub reactive.Subscriber) state.State {
	lhs := Evaluate(e.Lhs, ctx, sub)
	rhs := Evaluate(e.Rhs, ctx, sub)

	if lhs.Kind() == state.KindInt && rhs.Kind() == state.KindInt {
		l, _ := lhs.AsInt()
		r, _ := rhs.AsInt()
		return state.Int{Value: intOp(e.Op, l, r)}
	}

	lf, lok := lhs.AsFloat()
	rf, rok := rhs.AsFloat()
	if !lok || !rok {
		return state.Unit{}
	}
	return state.Float{Value: floatOp(e.Op, lf, rf)}
}

func intOp(op template.Op, l, r int64) int64 {
	switch op {
	case template.OpAdd:
		return l + r
	case template.OpSub:
		return l - r
	case template.OpMul:
		return l * r
	case template.OpDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case template.OpMod:
		if r == 0 {
			return 0
		}
		return l % r
	default:
		return 0
	}
}

func floatOp(op template.Op, l, r float64) float64 {
	switch op {
	case template.OpAdd:
		return l + r
	case template.OpSub:
		return l - r
	case template.OpMul:
		return l * r
	case template.OpDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case template.OpMod:
		if r == 0 {
			return 0
		}
		return math.Mod(l, r)
	default:
		return 0
	}
}

// evalEquality evaluates a comparison or logical operator. Comparisons
// require the two sides to be of compatible kinds (both numeric, or both
// string, or both bool for (in)equality); an incompatible pairing
// evaluates to Null rather than a spurious false, per the comparison
// rule in the scope chain's spec.
func evalEquality(e template.EqualityExpr, ctx *Context, sub reactive.Subscriber) state.State {
	lhs := Evaluate(e.Lhs, ctx, sub)
	rhs := Evaluate(e.Rhs, ctx, sub)

	switch e.Eq {
	case template.EqAnd, template.EqOr:
		lb, lok := lhs.AsBool()
		rb, rok := rhs.AsBool()
		if !lok || !rok {
			return state.Unit{}
		}
		if e.Eq == template.EqAnd {
			return state.Bool{Value: lb && rb}
		}
		return state.Bool{Value: lb || rb}
	}

	if isNumericKind[lhs.Kind()] && isNumericKind[rhs.Kind()] {
		lf, lok := lhs.AsFloat()
		if !lok {
			li, _ := lhs.AsInt()
			lf = float64(li)
		}
		rf, rok := rhs.AsFloat()
		if !rok {
			ri, _ := rhs.AsInt()
			rf = float64(ri)
		}
		return state.Bool{Value: compareOrdered(e.Eq, compareFloat(lf, rf))}
	}

	if lhs.Kind() == state.KindStr && rhs.Kind() == state.KindStr {
		ls, _ := lhs.AsString()
		rs, _ := rhs.AsString()
		if e.Eq != template.EqEq && e.Eq != template.EqNotEq {
			return state.Bool{Value: compareOrdered(e.Eq, compareString(ls, rs))}
		}
		eq := ls == rs
		if e.Eq == template.EqNotEq {
			eq = !eq
		}
		return state.Bool{Value: eq}
	}

	if lhs.Kind() == state.KindBool && rhs.Kind() == state.KindBool &&
		(e.Eq == template.EqEq || e.Eq == template.EqNotEq) {
		lb, _ := lhs.AsBool()
		rb, _ := rhs.AsBool()
		eq := lb == rb
		if e.Eq == template.EqNotEq {
			eq = !eq
		}
		return state.Bool{Value: eq}
	}

	return state.Unit{}
}

// ordering mirrors the three-way result of a comparison, used to collapse
// Gt/Gte/Lt/Lte/Eq/NotEq into one switch over the two already-evaluated
// operands.
type ordering int

const (
	orderLess ordering = iota - 1
	orderEqual
	orderGreater
)

func compareFloat(l, r float64) ordering {
	switch {
	case l < r:
		return orderLess
	case l > r:
		return orderGreater
	default:
		return orderEqual
	}
}

func compareString(l, r string) ordering {
	switch {
	case l < r:
		return orderLess
	case l > r:
		return orderGreater
	default:
		return orderEqual
	}
}

func compareOrdered(eq template.Equality, o ordering) bool {
	switch eq {
	case template.EqEq:
		return o == orderEqual
	case template.EqNotEq:
		return o != orderEqual
	case template.EqGt:
		return o == orderGreater
	case template.EqGte:
		return o == orderGreater || o == orderEqual
	case template.EqLt:
		return o == orderLess
	case template.EqLte:
		return o == orderLess || o == orderEqual
	default:
		return false
	}
}
