package template

import "fmt"

// ParseErrorKind classifies a syntax error raised anywhere in the
// pipeline (lexer, expression parser, or statement parser) under one
// umbrella error type.
type ParseErrorKind int

const (
	InvalidNumber ParseErrorKind = iota
	InvalidHexValue
	UnterminatedString
	InvalidToken
	InvalidKey
)

func (k ParseErrorKind) String() string {
	switch k {
	case InvalidNumber:
		return "invalid number"
	case InvalidHexValue:
		return "invalid hex value"
	case UnterminatedString:
		return "unterminated string"
	case InvalidToken:
		return "invalid token"
	case InvalidKey:
		return "invalid key"
	default:
		return "parse error"
	}
}

// ParseError is the umbrella syntax-error type carried out of the
// pipeline, with the offending span and the source it was parsed from.
type ParseError struct {
	Kind     ParseErrorKind
	Start    int
	End      int
	Src      string
	Expected string
}

func (e *ParseError) Error() string {
	if e.Kind == InvalidToken && e.Expected != "" {
		return fmt.Sprintf("%s at %d: expected %s", e.Kind, e.Start, e.Expected)
	}
	return fmt.Sprintf("%s at %d:%d", e.Kind, e.Start, e.End)
}

// MissingComponentError reports an `@name` view with no registered
// component of that name.
type MissingComponentError struct{ Name string }

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("missing component: %s", e.Name)
}

// EmptyTemplateError reports a template source with no statements at all.
type EmptyTemplateError struct{}

func (e *EmptyTemplateError) Error() string { return "empty template" }

// GlobalAlreadyAssignedError reports a second top-level `let` binding for
// a name already registered in Globals.
type GlobalAlreadyAssignedError struct{ Name string }

func (e *GlobalAlreadyAssignedError) Error() string {
	return fmt.Sprintf("global already assigned: %s", e.Name)
}
