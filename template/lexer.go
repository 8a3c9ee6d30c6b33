package template

import (
	"strconv"
	"unicode/utf8"
)

// Lexer turns template source into a stream of Tokens. It is a
// byte-offset, not a rune-offset, lexer: Token.Pos is always a valid
// index into the original source string.
type Lexer struct {
	src string
	pos int
}

// NewLexer creates a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// runeAt returns the rune at byte offset pos without advancing.
func (l *Lexer) runeAt(pos int) (rune, int, bool) {
	if pos >= len(l.src) {
		return 0, 0, false
	}
	r, size := utf8.DecodeRuneInString(l.src[pos:])
	return r, size, true
}

// Next returns the next Token. Once it returns a TokEOF token, every
// subsequent call keeps returning TokEOF at the same position.
func (l *Lexer) Next() (Token, error) {
	return l.nextToken()
}

func (l *Lexer) nextToken() (Token, error) {
	index := l.pos
	c, size, ok := l.runeAt(index)
	if !ok {
		return Token{Kind: TokEOF, Pos: len(l.src)}, nil
	}
	l.pos += size
	next, _, hasNext := l.runeAt(l.pos)

	switch {
	case c == '/' && hasNext && next == '/':
		l.pos++
		for {
			r, sz, ok := l.runeAt(l.pos)
			if !ok || r == '\n' {
				break
			}
			l.pos += sz
		}
		return l.nextToken()

	case c == '&' && hasNext && next == '&':
		l.pos++
		return Token{Kind: TokOp, Op: OpAnd, Pos: index}, nil
	case c == '|' && hasNext && next == '|':
		l.pos++
		return Token{Kind: TokOp, Op: OpOr, Pos: index}, nil
	case c == '=' && hasNext && next == '=':
		l.pos++
		return Token{Kind: TokOp, Op: OpEqualEqual, Pos: index}, nil
	case c == '!' && hasNext && next == '=':
		l.pos++
		return Token{Kind: TokOp, Op: OpNotEqual, Pos: index}, nil
	case c == '>' && hasNext && next == '=':
		l.pos++
		return Token{Kind: TokOp, Op: OpGreaterThanOrEqual, Pos: index}, nil
	case c == '<' && hasNext && next == '=':
		l.pos++
		return Token{Kind: TokOp, Op: OpLessThanOrEqual, Pos: index}, nil
	case c == '-' && hasNext && next == '>':
		l.pos++
		return Token{Kind: TokOp, Op: OpAssociation, Pos: index}, nil
	case c == '?' && hasNext && next == '?':
		l.pos++
		return Token{Kind: TokOp, Op: OpEither, Pos: index}, nil

	case c == '(':
		return Token{Kind: TokOp, Op: OpLParen, Pos: index}, nil
	case c == ')':
		return Token{Kind: TokOp, Op: OpRParen, Pos: index}, nil
	case c == '[':
		return Token{Kind: TokOp, Op: OpLBracket, Pos: index}, nil
	case c == ']':
		return Token{Kind: TokOp, Op: OpRBracket, Pos: index}, nil
	case c == '{':
		return Token{Kind: TokOp, Op: OpLCurly, Pos: index}, nil
	case c == '}':
		return Token{Kind: TokOp, Op: OpRCurly, Pos: index}, nil
	case c == ':':
		return Token{Kind: TokOp, Op: OpColon, Pos: index}, nil
	case c == ',':
		return Token{Kind: TokOp, Op: OpComma, Pos: index}, nil
	case c == '.':
		return Token{Kind: TokOp, Op: OpDot, Pos: index}, nil
	case c == '!':
		return Token{Kind: TokOp, Op: OpNot, Pos: index}, nil
	case c == '+':
		return Token{Kind: TokOp, Op: OpPlus, Pos: index}, nil
	case c == '-':
		return Token{Kind: TokOp, Op: OpMinus, Pos: index}, nil
	case c == '*':
		return Token{Kind: TokOp, Op: OpMul, Pos: index}, nil
	case c == '/':
		return Token{Kind: TokOp, Op: OpDiv, Pos: index}, nil
	case c == '%':
		return Token{Kind: TokOp, Op: OpMod, Pos: index}, nil
	case c == '>':
		return Token{Kind: TokOp, Op: OpGreaterThan, Pos: index}, nil
	case c == '<':
		return Token{Kind: TokOp, Op: OpLessThan, Pos: index}, nil
	case c == '=':
		return Token{Kind: TokEqual, Pos: index}, nil
	case c == '\n':
		return Token{Kind: TokNewline, Pos: index}, nil
	case c == '@':
		return Token{Kind: TokComponent, Pos: index}, nil
	case c == '$':
		return Token{Kind: TokComponentSlot, Pos: index}, nil

	case isIdentStart(c):
		return l.takeIdentOrKeyword(index), nil

	case c >= '0' && c <= '9':
		return l.takeNumber(index)

	case c == '"' || c == '\'':
		return l.takeString(c, index)

	case isHorizontalSpace(c):
		return l.takeWhitespace(index), nil

	case c == '#' && hasNext && isHexDigit(next):
		return l.takeHexValue(index)

	default:
		l.pos = len(l.src)
		return Token{Kind: TokEOF, Pos: len(l.src)}, nil
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || c == '|' || (c >= '0' && c <= '9')
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isHorizontalSpace(c rune) bool {
	return c != '\n' && (c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f')
}

func (l *Lexer) takeString(quote rune, startIndex int) (Token, error) {
	var content []byte
	for {
		r, sz, ok := l.runeAt(l.pos)
		if !ok {
			return Token{}, &ParseError{Kind: UnterminatedString, Start: startIndex, End: len(l.src), Src: l.src}
		}
		if r == quote {
			l.pos += sz
			return Token{Kind: TokString, Str: string(content), Pos: startIndex}, nil
		}
		if r == '\\' {
			if nr, nsz, ok := l.runeAt(l.pos + sz); ok && nr == quote {
				content = append(content, l.src[l.pos+sz:l.pos+sz+nsz]...)
				l.pos += sz + nsz
				continue
			}
		}
		content = append(content, l.src[l.pos:l.pos+sz]...)
		l.pos += sz
	}
}

func (l *Lexer) takeNumber(index int) (Token, error) {
	end := l.pos
	isFloat := false
	for {
		r, sz, ok := l.runeAt(end)
		if !ok || !(r == '.' || (r >= '0' && r <= '9')) {
			break
		}
		if r == '.' {
			isFloat = true
		}
		end += sz
	}
	l.pos = end
	text := l.src[index:end]

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, &ParseError{Kind: InvalidNumber, Start: index, End: end, Src: l.src}
		}
		return Token{Kind: TokFloat, Float: f, Pos: index}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, &ParseError{Kind: InvalidNumber, Start: index, End: end, Src: l.src}
	}
	return Token{Kind: TokInt, Int: n, Pos: index}, nil
}

func (l *Lexer) takeIdentOrKeyword(index int) Token {
	end := l.pos
	for {
		r, sz, ok := l.runeAt(end)
		if !ok || !isIdentCont(r) {
			break
		}
		end += sz
	}
	l.pos = end
	s := l.src[index:end]

	switch s {
	case "for":
		return Token{Kind: TokFor, Pos: index}
	case "in":
		return Token{Kind: TokIn, Pos: index}
	case "if":
		return Token{Kind: TokIf, Pos: index}
	case "else":
		return Token{Kind: TokElse, Pos: index}
	case "let":
		return Token{Kind: TokDecl, Pos: index}
	case "true":
		return Token{Kind: TokBool, Bool: true, Pos: index}
	case "false":
		return Token{Kind: TokBool, Bool: false, Pos: index}
	default:
		return Token{Kind: TokIdent, Str: s, Pos: index}
	}
}

func (l *Lexer) takeWhitespace(index int) Token {
	count := 1
	for {
		r, sz, ok := l.runeAt(l.pos)
		if !ok || !isHorizontalSpace(r) {
			break
		}
		count++
		l.pos += sz
	}
	return Token{Kind: TokIndent, Int: int64(count), Pos: index}
}

func (l *Lexer) takeHexValue(hashIndex int) (Token, error) {
	index := hashIndex + 1 // consume '#'
	end := index
	for {
		r, sz, ok := l.runeAt(end)
		if !ok || !isHexDigit(r) {
			break
		}
		end += sz
	}
	l.pos = end
	hex := l.src[index:end]

	var rgb [3]uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			v, _ := strconv.ParseUint(hex[i:i+1], 16, 8)
			rgb[i] = uint8(v)<<4 | uint8(v)
		}
	case 6:
		for i := 0; i < 3; i++ {
			v, _ := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			rgb[i] = uint8(v)
		}
	default:
		return Token{}, &ParseError{Kind: InvalidHexValue, Start: index, End: end, Src: l.src}
	}
	return Token{Kind: TokHex, Hex: rgb, Pos: index}, nil
}

// Tokenize lexes src to completion, returning every token up to and
// including the terminal TokEOF.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			return tokens, nil
		}
	}
}
