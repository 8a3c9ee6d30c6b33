package template

import "fmt"

// Precedence levels, low to high, matching the grammar's binding-power
// table: a postfix/infix operator only binds to the left-hand
// expression currently being built if its precedence is strictly higher
// than the precedence the caller is parsing at.
const (
	precInitial = iota
	precEither
	precConditional
	precEquality
	precLogical
	precSum
	precProduct
	_
	precPrefix
	_
	precCall
	precSubscript
)

func precedenceOf(op Operator) int {
	switch op {
	case OpEither:
		return precEither
	case OpDot, OpLBracket:
		return precSubscript
	case OpLParen:
		return precCall
	case OpMul, OpDiv, OpMod:
		return precProduct
	case OpPlus, OpMinus:
		return precSum
	case OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual:
		return precLogical
	case OpEqualEqual, OpNotEqual:
		return precEquality
	case OpAnd, OpOr:
		return precConditional
	default:
		return precInitial
	}
}

func exprErr(pos int, expected string) error {
	return &ParseError{Kind: InvalidToken, Start: pos, End: pos, Expected: expected}
}

// tokenCursor is a random-access, indent-skipping view over a token
// slice: expression parsing never cares about TokIndent, so every
// lookahead method steps over it transparently.
type tokenCursor struct {
	toks []Token
	pos  int
}

func newTokenCursor(toks []Token) *tokenCursor {
	return &tokenCursor{toks: toks}
}

func (c *tokenCursor) skipIndent() {
	for c.pos < len(c.toks) && c.toks[c.pos].Kind == TokIndent {
		c.pos++
	}
}

// nextNoIndent consumes and returns the next non-indent token.
func (c *tokenCursor) nextNoIndent() Token {
	c.skipIndent()
	if c.pos >= len(c.toks) {
		return Token{Kind: TokEOF}
	}
	tok := c.toks[c.pos]
	c.pos++
	return tok
}

// peekSkipIndent returns the next non-indent token without consuming it.
func (c *tokenCursor) peekSkipIndent() Token {
	c.skipIndent()
	if c.pos >= len(c.toks) {
		return Token{Kind: TokEOF}
	}
	return c.toks[c.pos]
}

func (c *tokenCursor) consume() {
	c.skipIndent()
	if c.pos < len(c.toks) {
		c.pos++
	}
}

// ParseExpr parses a single expression from toks starting at the
// cursor's current position.
func ParseExpr(c *tokenCursor) (Expression, error) {
	return exprBP(c, precInitial)
}

// ParseExprString is a convenience entry point for callers holding a
// bare expression string (the statement parser calls exprBP on its own
// cursor instead): it tokenizes src and parses exactly one expression
// from the result.
func ParseExprString(src string) (Expression, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	c := newTokenCursor(toks)
	return ParseExpr(c)
}

func exprBP(c *tokenCursor, precedence int) (Expression, error) {
	left, err := parsePrefix(c)
	if err != nil {
		return nil, err
	}

	for {
		tok := c.peekSkipIndent()
		if tok.Kind != TokOp {
			return left, nil
		}
		tokPrec := precedenceOf(tok.Op)
		if precedence >= tokPrec {
			return left, nil
		}
		c.consume()

		switch tok.Op {
		case OpLParen:
			left, err = parseCall(c, left)
			if err != nil {
				return nil, err
			}
			continue
		case OpLBracket:
			index, err := exprBP(c, precInitial)
			if err != nil {
				return nil, err
			}
			closing := c.nextNoIndent()
			if !(closing.Kind == TokOp && closing.Op == OpRBracket) {
				return nil, exprErr(closing.Pos, "closing ]")
			}
			left = IndexExpr{Lhs: left, Index: index}
			continue
		case OpDot:
			rhs, err := exprBP(c, tokPrec)
			if err != nil {
				return nil, err
			}
			ident, ok := rhs.(IdentExpr)
			if !ok {
				return nil, exprErr(tok.Pos, "identifier after .")
			}
			left = IndexExpr{Lhs: left, Index: StrExpr{Value: ident.Name}}
			continue
		case OpEither:
			rhs, err := exprBP(c, tokPrec)
			if err != nil {
				return nil, err
			}
			left = EitherExpr{Lhs: left, Rhs: rhs}
			continue
		}

		rhs, err := exprBP(c, tokPrec)
		if err != nil {
			return nil, err
		}
		left, err = combineBinary(tok.Op, left, rhs)
		if err != nil {
			return nil, err
		}
	}
}

func combineBinary(op Operator, lhs, rhs Expression) (Expression, error) {
	switch op {
	case OpMul:
		return OpExpr{Lhs: lhs, Rhs: rhs, Op: OpMul}, nil
	case OpPlus:
		return OpExpr{Lhs: lhs, Rhs: rhs, Op: OpAdd}, nil
	case OpMinus:
		return OpExpr{Lhs: lhs, Rhs: rhs, Op: OpSub}, nil
	case OpDiv:
		return OpExpr{Lhs: lhs, Rhs: rhs, Op: OpDiv}, nil
	case OpMod:
		return OpExpr{Lhs: lhs, Rhs: rhs, Op: OpMod}, nil
	case OpEqualEqual:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqEq}, nil
	case OpNotEqual:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqNotEq}, nil
	case OpGreaterThan:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqGt}, nil
	case OpGreaterThanOrEqual:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqGte}, nil
	case OpLessThan:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqLt}, nil
	case OpLessThanOrEqual:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqLte}, nil
	case OpAnd:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqAnd}, nil
	case OpOr:
		return EqualityExpr{Lhs: lhs, Rhs: rhs, Eq: EqOr}, nil
	default:
		return nil, exprErr(0, fmt.Sprintf("%s to be a valid binary operator", operatorName(op)))
	}
}

func parsePrefix(c *tokenCursor) (Expression, error) {
	tok := c.nextNoIndent()

	switch tok.Kind {
	case TokOp:
		switch tok.Op {
		case OpLBracket:
			return parseList(c)
		case OpLCurly:
			return parseMap(c)
		case OpLParen:
			inner, err := exprBP(c, precInitial)
			if err != nil {
				return nil, err
			}
			closing := c.nextNoIndent()
			if !(closing.Kind == TokOp && closing.Op == OpRParen) {
				return nil, exprErr(closing.Pos, "closing )")
			}
			return inner, nil
		case OpNot:
			expr, err := exprBP(c, precPrefix)
			if err != nil {
				return nil, err
			}
			return NotExpr{Expr: expr}, nil
		case OpMinus:
			expr, err := exprBP(c, precPrefix)
			if err != nil {
				return nil, err
			}
			return NegativeExpr{Expr: expr}, nil
		default:
			return nil, exprErr(tok.Pos, "a prefix operator")
		}
	case TokInt:
		return PrimitiveExpr{Value: Primitive{Kind: PrimInt, Int: tok.Int}}, nil
	case TokFloat:
		return PrimitiveExpr{Value: Primitive{Kind: PrimFloat, Float: tok.Float}}, nil
	case TokBool:
		return PrimitiveExpr{Value: Primitive{Kind: PrimBool, Bool: tok.Bool}}, nil
	case TokHex:
		return PrimitiveExpr{Value: Primitive{Kind: PrimHex, Hex: tok.Hex}}, nil
	case TokIdent:
		return IdentExpr{Name: tok.Str}, nil
	case TokString:
		return StrExpr{Value: tok.Str}, nil
	case TokEOF:
		return nil, exprErr(tok.Pos, "an expression")
	default:
		return nil, exprErr(tok.Pos, "an expression")
	}
}

func parseCall(c *tokenCursor, fun Expression) (Expression, error) {
	var args []Expression
	for {
		tok := c.peekSkipIndent()
		if tok.Kind == TokOp && tok.Op == OpComma {
			c.consume()
			continue
		}
		if tok.Kind == TokOp && tok.Op == OpRParen {
			c.consume()
			break
		}
		arg, err := exprBP(c, precInitial)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return CallExpr{Fun: fun, Args: args}, nil
}

func parseList(c *tokenCursor) (Expression, error) {
	var items []Expression
	for {
		tok := c.peekSkipIndent()
		if tok.Kind == TokNewline || (tok.Kind == TokOp && tok.Op == OpComma) {
			c.consume()
			continue
		}
		if tok.Kind == TokOp && tok.Op == OpRBracket {
			c.consume()
			break
		}
		item, err := exprBP(c, precInitial)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return ListExpr{Items: items}, nil
}

func parseMap(c *tokenCursor) (Expression, error) {
	entries := map[string]Expression{}
	for {
		tok := c.peekSkipIndent()
		if tok.Kind == TokNewline || (tok.Kind == TokOp && tok.Op == OpComma) {
			c.consume()
			continue
		}
		if tok.Kind == TokOp && tok.Op == OpRCurly {
			c.consume()
			break
		}

		keyTok := c.nextNoIndent()
		var key string
		switch keyTok.Kind {
		case TokIdent:
			key = keyTok.Str
		case TokString:
			key = keyTok.Str
		default:
			return nil, exprErr(keyTok.Pos, "an identifier or string map key")
		}

		colon := c.nextNoIndent()
		if !(colon.Kind == TokOp && colon.Op == OpColon) {
			return nil, exprErr(colon.Pos, ": after map key")
		}

		value, err := exprBP(c, precInitial)
		if err != nil {
			return nil, err
		}
		entries[key] = value
	}
	return MapExpr{Entries: entries}, nil
}
