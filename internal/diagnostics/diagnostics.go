// Package diagnostics defines the error representation shared by every
// pipeline stage: lexer, parser, analyzer and emitter all report failures
// as *Error values instead of ad-hoc fmt.Errorf strings.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/token"
)

// Kind classifies an Error by the pipeline stage that raised it, per
// spec.md §7.
type Kind string

const (
	Lexical   Kind = "lexical"
	Syntactic Kind = "syntactic"
	Type      Kind = "type"
	Compile   Kind = "compile"
)

// Error is a single fatal diagnostic. Every compile either produces
// artifacts or a non-empty slice of *Error; there is no partial recovery.
type Error struct {
	Kind    Kind
	Code    string // short stage-scoped code, e.g. "L001", "P007", "T014", "C003"
	File    string
	Line    int
	Column  int
	Message string
	RawLine string // source line excerpt, when available
}

func New(kind Kind, code string, tok token.Token, message string) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		File:    tok.File,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
		RawLine: tok.RawLine,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// Excerpt renders the error together with its source line and a caret
// pointing at the offending column, for human-facing CLI output.
func (e *Error) Excerpt() string {
	if e.RawLine == "" {
		return e.Error()
	}
	caret := make([]byte, 0, e.Column)
	for i := 1; i < e.Column; i++ {
		caret = append(caret, ' ')
	}
	caret = append(caret, '^')
	return fmt.Sprintf("%s\n%s\n%s", e.Error(), e.RawLine, string(caret))
}

// List is a collection of diagnostics produced by one compile.
type List []*Error

func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	s := l[0].Error()
	for _, e := range l[1:] {
		s += "\n" + e.Error()
	}
	return s
}

func (l List) HasErrors() bool { return len(l) > 0 }
