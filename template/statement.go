package template

// Statement is one entry in the parser's output stream: a flat,
// indentation-resolved sequence that the optimizer later folds back into
// a tree shape. ScopeStart/ScopeEnd are explicit sentinels marking where
// a block of child statements begins and ends, standing in for the
// source's indentation.
type Statement interface {
	isStatement()
}

// Node opens a widget statement by its template identifier, e.g. `text`
// or `border`. Any following LoadAttribute/LoadValue statements before
// the next ScopeStart belong to this node.
type Node struct{ Ident string }

// LoadValue supplies a node's inline text payload (`ident: expr`).
type LoadValue struct{ Expr Expression }

// LoadAttribute supplies one `key: expr` attribute pair.
type LoadAttribute struct {
	Key   string
	Value Expression
}

// If opens a conditional branch.
type If struct{ Cond Expression }

// Else opens a following branch; Cond is nil for a plain `else`, set for
// `else if`.
type Else struct{ Cond Expression }

// For opens a loop body, binding each element of Data's evaluation to
// Binding within the loop's scope.
type For struct {
	Data    Expression
	Binding string
}

// View references a named component by identifier (`@name`).
type View struct{ Ident string }

// Slot marks a `$` insertion point: the compiled tree splices the
// enclosing component's call-site children in here.
type Slot struct{}

// ScopeStart/ScopeEnd bracket the child statements of whichever
// Node/If/Else/For/View statement precedes them.
type ScopeStart struct{}
type ScopeEnd struct{}

func (Node) isStatement()          {}
func (LoadValue) isStatement()     {}
func (LoadAttribute) isStatement() {}
func (If) isStatement()            {}
func (Else) isStatement()          {}
func (For) isStatement()           {}
func (View) isStatement()          {}
func (Slot) isStatement()          {}
func (ScopeStart) isStatement()    {}
func (ScopeEnd) isStatement()      {}
