package template

import "testing"

func firstToken(t *testing.T, src string) Token {
	t.Helper()
	tok, err := NewLexer(src).Next()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	return tok
}

func TestLexerHexShortExpandsEachNibble(t *testing.T) {
	tok := firstToken(t, "#abc")
	if tok.Kind != TokHex {
		t.Fatalf("expected TokHex, got %v", tok.Kind)
	}
	want := [3]uint8{0xaa, 0xbb, 0xcc}
	if tok.Hex != want {
		t.Fatalf("expected %v, got %v", want, tok.Hex)
	}
}

func TestLexerHexLongIsExact(t *testing.T) {
	tok := firstToken(t, "#1a2b3c")
	want := [3]uint8{0x1a, 0x2b, 0x3c}
	if tok.Hex != want {
		t.Fatalf("expected %v, got %v", want, tok.Hex)
	}
}

func TestLexerHexWrongLengthErrors(t *testing.T) {
	_, err := NewLexer("#1234").Next()
	if err == nil {
		t.Fatal("expected error for a 4-digit hex value")
	}
	lexErr, ok := err.(*ParseError)
	if !ok || lexErr.Kind != InvalidHexValue {
		t.Fatalf("expected InvalidHexValue, got %v", err)
	}
}

func TestLexerDoubleOperators(t *testing.T) {
	cases := map[string]Operator{
		"&&": OpAnd,
		"||": OpOr,
		"==": OpEqualEqual,
		"!=": OpNotEqual,
		">=": OpGreaterThanOrEqual,
		"<=": OpLessThanOrEqual,
		"->": OpAssociation,
	}
	for src, want := range cases {
		tok := firstToken(t, src)
		if tok.Kind != TokOp || tok.Op != want {
			t.Fatalf("%q: expected op %v, got kind=%v op=%v", src, want, tok.Kind, tok.Op)
		}
	}
}

func TestLexerStringEscapesOnlyTerminator(t *testing.T) {
	tok := firstToken(t, `"a\"b"`)
	if tok.Kind != TokString {
		t.Fatalf("expected TokString, got %v", tok.Kind)
	}
	if tok.Str != `a"b` {
		t.Fatalf("expected %q, got %q", `a"b`, tok.Str)
	}
}

func TestLexerUnterminatedStringErrors(t *testing.T) {
	_, err := NewLexer(`"abc`).Next()
	if err == nil {
		t.Fatal("expected unterminated string error")
	}
	if lexErr, ok := err.(*ParseError); !ok || lexErr.Kind != UnterminatedString {
		t.Fatalf("expected UnterminatedString, got %v", err)
	}
}

func TestLexerNumbers(t *testing.T) {
	tok := firstToken(t, "42")
	if tok.Kind != TokInt || tok.Int != 42 {
		t.Fatalf("expected int 42, got kind=%v int=%d", tok.Kind, tok.Int)
	}

	tok = firstToken(t, "3.14")
	if tok.Kind != TokFloat || tok.Float != 3.14 {
		t.Fatalf("expected float 3.14, got kind=%v float=%v", tok.Kind, tok.Float)
	}
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	cases := map[string]TokenKind{
		"for":     TokFor,
		"in":      TokIn,
		"if":      TokIf,
		"else":    TokElse,
		"let":     TokDecl,
		"foo_bar": TokIdent,
	}
	for src, want := range cases {
		tok := firstToken(t, src)
		if tok.Kind != want {
			t.Fatalf("%q: expected kind %v, got %v", src, want, tok.Kind)
		}
	}

	tok := firstToken(t, "true")
	if tok.Kind != TokBool || !tok.Bool {
		t.Fatalf("expected bool true, got %v", tok)
	}
}

func TestLexerLineCommentSkipsToNewline(t *testing.T) {
	tokens, err := Tokenize("// a comment\nfoo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Kind != TokNewline {
		t.Fatalf("expected first token to be newline past the comment, got %v", tokens[0].Kind)
	}
	if tokens[1].Kind != TokIdent || tokens[1].Str != "foo" {
		t.Fatalf("expected ident foo, got %v", tokens[1])
	}
}

func TestLexerIndentCountsHorizontalWhitespace(t *testing.T) {
	tok := firstToken(t, "    foo")
	if tok.Kind != TokIndent || tok.Int != 4 {
		t.Fatalf("expected indent of 4, got %v", tok)
	}
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	tokens, err := Tokenize("foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := tokens[len(tokens)-1]
	if last.Kind != TokEOF {
		t.Fatalf("expected final token to be EOF, got %v", last.Kind)
	}
}
