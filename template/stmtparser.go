package template

func stmtErr(pos int, expected string) error {
	return &ParseError{Kind: InvalidToken, Start: pos, End: pos, Expected: expected}
}

// EOF is the terminal statement emitted once parsing reaches the end of
// the token stream, after every open scope has been closed.
type EOF struct{}

func (EOF) isStatement() {}

// ParseStatements runs the indent-significant statement parser over src,
// returning the flat ScopeStart/ScopeEnd-bracketed statement stream plus
// the `let`-declared globals collected along the way. A second `let` for
// a name already bound is a GlobalAlreadyAssignedError.
func ParseStatements(src string) ([]Statement, map[string]Expression, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, nil, err
	}
	p := &stmtParser{c: newTokenCursor(toks), globals: map[string]Expression{}}
	if err := p.run(); err != nil {
		return nil, nil, err
	}
	// p.out always ends with EOF{}; a `let`-only (or comment/blank-only)
	// source never appends anything else to it, since TokDecl goes
	// straight into p.globals rather than the statement stream. Nothing
	// else produces statements either, so len(p.out) == 1 means the
	// template has no renderable content at all.
	if len(p.out) == 1 {
		return nil, nil, &EmptyTemplateError{}
	}
	return p.out, p.globals, nil
}

type stmtParser struct {
	c           *tokenCursor
	out         []Statement
	globals     map[string]Expression
	indentStack []int
}

func (p *stmtParser) run() error {
	p.indentStack = []int{0}

	for {
		// Leading indent (or its absence, meaning width 0).
		width := 0
		if p.c.pos < len(p.c.toks) && p.c.toks[p.c.pos].Kind == TokIndent {
			width = int(p.c.toks[p.c.pos].Int)
			p.c.pos++
		}

		if p.c.pos >= len(p.c.toks) || p.c.toks[p.c.pos].Kind == TokEOF {
			p.closeScopesTo(0)
			p.out = append(p.out, EOF{})
			return nil
		}

		if p.c.toks[p.c.pos].Kind == TokNewline {
			p.c.pos++ // blank line, no scope change
			continue
		}

		p.adjustScope(width)

		if err := p.parseLine(); err != nil {
			return err
		}

		// Consume the statement's terminating newline, if present.
		if p.c.pos < len(p.c.toks) && p.c.toks[p.c.pos].Kind == TokNewline {
			p.c.pos++
		}
	}
}

func (p *stmtParser) adjustScope(width int) {
	for len(p.indentStack) > 1 && width < p.indentStack[len(p.indentStack)-1] {
		p.indentStack = p.indentStack[:len(p.indentStack)-1]
		p.out = append(p.out, ScopeEnd{})
	}
	if width > p.indentStack[len(p.indentStack)-1] {
		p.indentStack = append(p.indentStack, width)
		p.out = append(p.out, ScopeStart{})
	}
}

func (p *stmtParser) closeScopesTo(width int) {
	for len(p.indentStack) > 1 && width < p.indentStack[len(p.indentStack)-1] {
		p.indentStack = p.indentStack[:len(p.indentStack)-1]
		p.out = append(p.out, ScopeEnd{})
	}
}

func (p *stmtParser) parseLine() error {
	tok := p.c.toks[p.c.pos]

	switch tok.Kind {
	case TokDecl: // let IDENT = expr
		p.c.pos++
		nameTok := p.c.nextNoIndent()
		if nameTok.Kind != TokIdent {
			return stmtErr(nameTok.Pos, "identifier after let")
		}
		eq := p.c.nextNoIndent()
		if eq.Kind != TokEqual {
			return stmtErr(eq.Pos, "= after let identifier")
		}
		expr, err := exprBP(p.c, precInitial)
		if err != nil {
			return err
		}
		if _, exists := p.globals[nameTok.Str]; exists {
			return &GlobalAlreadyAssignedError{Name: nameTok.Str}
		}
		p.globals[nameTok.Str] = expr
		return nil

	case TokIf:
		p.c.pos++
		cond, err := exprBP(p.c, precInitial)
		if err != nil {
			return err
		}
		p.out = append(p.out, If{Cond: cond})
		return nil

	case TokElse:
		p.c.pos++
		if p.c.peekSkipIndent().Kind == TokIf {
			p.c.consume()
			cond, err := exprBP(p.c, precInitial)
			if err != nil {
				return err
			}
			p.out = append(p.out, Else{Cond: cond})
			return nil
		}
		p.out = append(p.out, Else{})
		return nil

	case TokFor:
		p.c.pos++
		bindingTok := p.c.nextNoIndent()
		if bindingTok.Kind != TokIdent {
			return stmtErr(bindingTok.Pos, "binding identifier after for")
		}
		inTok := p.c.nextNoIndent()
		if inTok.Kind != TokIn {
			return stmtErr(inTok.Pos, "in after for binding")
		}
		data, err := exprBP(p.c, precInitial)
		if err != nil {
			return err
		}
		p.out = append(p.out, For{Data: data, Binding: bindingTok.Str})
		return nil

	case TokComponent:
		p.c.pos++
		nameTok := p.c.nextNoIndent()
		if nameTok.Kind != TokIdent {
			return stmtErr(nameTok.Pos, "component name after @")
		}
		p.out = append(p.out, View{Ident: nameTok.Str})
		return p.parseAttributeList()

	case TokComponentSlot:
		p.c.pos++
		p.out = append(p.out, Slot{})
		return nil

	case TokIdent:
		p.c.pos++
		p.out = append(p.out, Node{Ident: tok.Str})
		return p.parseAttributeList()

	default:
		return stmtErr(tok.Pos, "a statement")
	}
}

// parseAttributeList consumes the remainder of a node/view line: zero or
// more `key: expr` attribute pairs, then an optional trailing `: expr`
// text/value payload.
func (p *stmtParser) parseAttributeList() error {
	for {
		tok := p.c.peekSkipIndent()
		if tok.Kind == TokOp && tok.Op == OpColon {
			p.c.consume()
			expr, err := exprBP(p.c, precInitial)
			if err != nil {
				return err
			}
			p.out = append(p.out, LoadValue{Expr: expr})
			return nil
		}
		if tok.Kind != TokIdent {
			return nil
		}
		// Lookahead: IDENT ':' only counts as an attribute if followed by
		// a colon; otherwise this ident belongs to whatever comes next
		// (which, in a well-formed template, is nothing — end of line).
		save := p.c.pos
		p.c.skipIndent()
		key := p.c.toks[p.c.pos]
		p.c.pos++
		colon := p.c.peekSkipIndent()
		if !(colon.Kind == TokOp && colon.Op == OpColon) {
			p.c.pos = save
			return nil
		}
		p.c.consume()
		value, err := exprBP(p.c, precInitial)
		if err != nil {
			return err
		}
		p.out = append(p.out, LoadAttribute{Key: key.Str, Value: value})
	}
}
