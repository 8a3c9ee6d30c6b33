package template

// Instruction is the linear form the widget evaluator walks: identical
// in shape to OptimizedExpr, but named separately because it is the
// pipeline's committed output artifact rather than an intermediate. A
// caller skipping a branch advances the instruction pointer by the
// carried Size/ScopeSize field rather than re-scanning for a matching
// end marker — there isn't one any more.
type Instruction interface {
	isInstruction()
}

type NodeInst struct {
	Ident     string
	ScopeSize int
}

type ViewInst struct {
	Ident     string
	ScopeSize int
}

type SlotInst struct{ ScopeSize int }

type LoadTextInst struct{ Expr Expression }

type LoadAttributeInst struct {
	Key   string
	Value Expression
}

type IfInst struct {
	Cond Expression
	Size int
}

type ElseInst struct {
	Cond Expression
	Size int
}

type ForInst struct {
	Data    Expression
	Binding string
	Size    int
}

func (NodeInst) isInstruction()          {}
func (ViewInst) isInstruction()          {}
func (SlotInst) isInstruction()          {}
func (LoadTextInst) isInstruction()      {}
func (LoadAttributeInst) isInstruction() {}
func (IfInst) isInstruction()            {}
func (ElseInst) isInstruction()          {}
func (ForInst) isInstruction()           {}

// Compile linearizes an already-optimized expression stream into the
// Instruction vector consumed by the blueprint materializer. Every size
// field was already computed while optimizing, so this is a direct,
// order-preserving type conversion.
func Compile(exprs []OptimizedExpr) []Instruction {
	out := make([]Instruction, len(exprs))
	for i, e := range exprs {
		switch v := e.(type) {
		case NodeOpt:
			out[i] = NodeInst{Ident: v.Ident, ScopeSize: v.ScopeSize}
		case ViewOpt:
			out[i] = ViewInst{Ident: v.Ident, ScopeSize: v.ScopeSize}
		case SlotOpt:
			out[i] = SlotInst{ScopeSize: v.ScopeSize}
		case LoadTextOpt:
			out[i] = LoadTextInst{Expr: v.Expr}
		case LoadAttributeOpt:
			out[i] = LoadAttributeInst{Key: v.Key, Value: v.Value}
		case IfOpt:
			out[i] = IfInst{Cond: v.Cond, Size: v.Size}
		case ElseOpt:
			out[i] = ElseInst{Cond: v.Cond, Size: v.Size}
		case ForOpt:
			out[i] = ForInst{Data: v.Data, Binding: v.Binding, Size: v.Size}
		}
	}
	return out
}
