// Package ast is the single intermediate representation of the pipeline:
// there is no separate typed IR. Node families are closed tagged unions
// (spec.md §9 design note), matched with an explicit Visitor rather than
// open inheritance.
package ast

import (
	"github.com/funvibe/funxyc/internal/token"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// Location is the source position every AST node carries (spec.md §3
// invariant: "every AST node has a well-defined location").
type Location struct {
	File   string
	Line   int
	Column int
}

func LocOf(tok token.Token) Location {
	return Location{File: tok.File, Line: tok.Line, Column: tok.Column}
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Loc() Location
	Accept(v Visitor)
}

// Expression is a Node that produces a value when evaluated. Every
// expression carries a mutable, initially-empty InferredType slot
// filled in by the type checker (spec.md §3, §4.3); the emitter treats
// the slot as optional and may recompute locally when absent.
type Expression interface {
	Node
	expressionNode()
	SetInferredType(t typesystem.Type)
	InferredType() typesystem.Type
}

// Statement is a Node inside a block.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a top-level or class-body declaration.
type Declaration interface {
	Node
	declarationNode()
}

// TypeAnnotation is a surface-syntax type reference, resolved to a
// typesystem.Type by the analyzer.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// ExprBase factors the shared Location + inferred-type slot every
// expression embeds. Exported so parser construction sites can set
// Location via a keyed struct literal (ast.ExprBase{Location: loc}).
type ExprBase struct {
	Location     Location
	inferredType typesystem.Type
}

func (e *ExprBase) Loc() Location                     { return e.Location }
func (e *ExprBase) SetInferredType(t typesystem.Type) { e.inferredType = t }
func (e *ExprBase) InferredType() typesystem.Type     { return e.inferredType }
func (e *ExprBase) expressionNode()                   {}

// Program is the root node: a sequence of top-level declarations
// (spec.md §2: "the AST... produces an abstract syntax tree").
type Program struct {
	File         string
	Declarations []Declaration
}

func (p *Program) Loc() Location {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Loc()
	}
	return Location{File: p.File, Line: 1, Column: 1}
}
func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
