package template

// Blueprint is a materialized template tree node, ready for the widget
// evaluator to walk. Unlike Instruction it is shaped like an actual
// tree (Children/Body slices) rather than a flat, size-annotated vector
// — this is the final artifact the rest of the pipeline produces from
// a parsed template.
type Blueprint interface {
	isBlueprint()
}

// Single is a concrete widget instance: a `text`, `border`, `vstack`,
// and so on, with its attribute expressions and, for leaf text nodes,
// an inline value expression.
type Single struct {
	Ident      string
	Value      Expression // nil if the node had no inline `: expr` value
	Attributes map[string]Expression
	Children   []Blueprint
}

// For materializes For{binding, data, body} from §3.3: one Iteration
// widget is produced per element of Data's evaluation at runtime.
type For struct {
	Binding string
	Data    Expression
	Body    []Blueprint
}

// ElseBranch is one arm of a ControlFlow: Cond is nil only for the final,
// unconditional `else`; the leading `if` arm always carries its condition.
type ElseBranch struct {
	Cond Expression
	Body []Blueprint
}

// ControlFlow groups an `if` with its `else if`/`else` chain: at most
// one branch is shown at a time.
type ControlFlow struct {
	Elses []ElseBranch
}

// Component is a `@name` reference to a separately defined component.
// AssocFunctions is populated by the component registry at evaluation
// time (key/focus handlers registered in Go), not by the template
// parser — template source carries no syntax for it.
type Component struct {
	ID             int
	Name           string
	Body           []Blueprint
	Attributes     map[string]Expression
	AssocFunctions []string
}

// Slot marks where the enclosing component's call-site children splice
// in; Body holds the default content shown when nothing is supplied.
type Slot struct {
	Body []Blueprint
}

func (Single) isBlueprint()    {}
func (For) isBlueprint()       {}
func (ControlFlow) isBlueprint() {}
func (Component) isBlueprint() {}
func (Slot) isBlueprint()      {}

// Materialize walks a compiled Instruction vector into a Blueprint
// forest. It is the final pipeline stage: every size field written
// during optimization is consumed here to slice out each node's body
// without needing scope sentinels any more.
func Materialize(insts []Instruction) ([]Blueprint, error) {
	m := &materializer{}
	return m.siblings(insts)
}

type materializer struct {
	nextComponentID int
}

func splitBody(body []Instruction) (value Expression, attrs map[string]Expression, rest []Instruction) {
	attrs = map[string]Expression{}
	i := 0
	for i < len(body) {
		switch v := body[i].(type) {
		case LoadAttributeInst:
			attrs[v.Key] = v.Value
			i++
			continue
		case LoadTextInst:
			value = v.Expr
			i++
			continue
		}
		break
	}
	return value, attrs, body[i:]
}

func (m *materializer) siblings(insts []Instruction) ([]Blueprint, error) {
	var out []Blueprint
	i := 0
	for i < len(insts) {
		switch v := insts[i].(type) {
		case NodeInst:
			sub := insts[i+1 : i+1+v.ScopeSize]
			value, attrs, rest := splitBody(sub)
			children, err := m.siblings(rest)
			if err != nil {
				return nil, err
			}
			out = append(out, Single{Ident: v.Ident, Value: value, Attributes: attrs, Children: children})
			i += 1 + v.ScopeSize

		case ViewInst:
			sub := insts[i+1 : i+1+v.ScopeSize]
			_, attrs, rest := splitBody(sub)
			body, err := m.siblings(rest)
			if err != nil {
				return nil, err
			}
			m.nextComponentID++
			out = append(out, Component{ID: m.nextComponentID, Name: v.Ident, Attributes: attrs, Body: body})
			i += 1 + v.ScopeSize

		case SlotInst:
			sub := insts[i+1 : i+1+v.ScopeSize]
			body, err := m.siblings(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, Slot{Body: body})
			i += 1 + v.ScopeSize

		case IfInst:
			var elses []ElseBranch
			ifBody := insts[i+1 : i+1+v.Size]
			bp, err := m.siblings(ifBody)
			if err != nil {
				return nil, err
			}
			elses = append(elses, ElseBranch{Cond: v.Cond, Body: bp})
			i += 1 + v.Size

			for i < len(insts) {
				e, ok := insts[i].(ElseInst)
				if !ok {
					break
				}
				eBody := insts[i+1 : i+1+e.Size]
				ebp, err := m.siblings(eBody)
				if err != nil {
					return nil, err
				}
				elses = append(elses, ElseBranch{Cond: e.Cond, Body: ebp})
				i += 1 + e.Size
			}
			out = append(out, ControlFlow{Elses: elses})

		case ForInst:
			body := insts[i+1 : i+1+v.Size]
			bp, err := m.siblings(body)
			if err != nil {
				return nil, err
			}
			out = append(out, For{Binding: v.Binding, Data: v.Data, Body: bp})
			i += 1 + v.Size

		case ElseInst:
			return nil, &ParseError{Kind: InvalidToken, Expected: "else to follow a matching if"}

		default:
			// LoadAttributeInst/LoadTextInst at sibling level belong to a
			// malformed stream (the owning Node/View should have already
			// consumed them via splitBody); skip defensively.
			i++
		}
	}
	return out, nil
}
