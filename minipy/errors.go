package minipy

import "fmt"

// LexError reports an invalid character, unterminated string, or
// inconsistent indentation found during tokenization.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ParseError reports malformed input as an expected/found pair.
type ParseError struct {
	Pos      Position
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("parse error at %d:%d: unexpected %s", e.Pos.Line, e.Pos.Column, e.Found)
	}
	return fmt.Sprintf("parse error at %d:%d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Found)
}

// RuntimeErrorKind tags the semantic violation a RuntimeError reports.
type RuntimeErrorKind string

const (
	ErrUndefinedVariable RuntimeErrorKind = "UndefinedVariable"
	ErrTypeMismatch      RuntimeErrorKind = "TypeMismatch"
	ErrDivisionByZero    RuntimeErrorKind = "DivisionByZero"
)

type RuntimeError struct {
	Kind      RuntimeErrorKind
	Message   string
	Pos       Position
	CodeFrame string
}

func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("runtime error: %s", e.Message)
	if e.CodeFrame != "" {
		msg += "\n" + e.CodeFrame
	}
	return msg
}
