// Package analyzer is the type checker and inferencer: it walks the AST
// produced by the parser, resolves every type annotation to a semantic
// type, infers the types of expressions that carry none, and validates
// every declaration (spec.md §4.5).
package analyzer

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/symbols"
	"github.com/funvibe/funxyc/internal/token"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// Analyzer runs the two-pass type check of spec.md §4.5 over a single
// parsed Program. Construct a fresh Analyzer per compile; it carries no
// state that should survive one run (spec.md §9 "global mutable state").
type Analyzer struct {
	Table   *symbols.Table
	TypeMap map[ast.Expression]typesystem.Type
	Errors  []*diagnostics.Error
}

func New() *Analyzer {
	return &Analyzer{
		Table:   symbols.New(),
		TypeMap: make(map[ast.Expression]typesystem.Type),
	}
}

func (a *Analyzer) errorf(kind diagnostics.Kind, code string, loc ast.Location, format string, args ...interface{}) {
	tok := locToken(loc)
	a.Errors = append(a.Errors, diagnostics.New(kind, code, tok, fmt.Sprintf(format, args...)))
}

// locToken adapts an ast.Location back into a token.Token, since the
// analyzer (unlike the lexer/parser) only ever has a Location on hand
// once parsing is done; diagnostics.New only reads the position fields
// off it.
func locToken(loc ast.Location) token.Token {
	return token.Token{File: loc.File, Line: loc.Line, Column: loc.Column}
}

// resolveType turns a surface TypeAnnotation into a semantic
// typesystem.Type, looking up named types in the global table. An
// unresolvable generic type-argument count is a type error (spec.md §3
// invariant: "a generic type's type-argument count equals its declared
// type-parameter count").
func (a *Analyzer) resolveType(ann ast.TypeAnnotation) typesystem.Type {
	if ann == nil {
		return typesystem.Any
	}
	switch t := ann.(type) {
	case *ast.SimpleType:
		return a.resolveSimpleName(t.Name, t.Location)
	case *ast.GenericType:
		return a.resolveGenericType(t)
	case *ast.FunctionType:
		params := make([]typesystem.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = a.resolveType(p)
		}
		return typesystem.FuncType{Params: params, Return: a.resolveType(t.Return)}
	case *ast.StructuralTypeAnnotation:
		members := make(map[string]typesystem.Type, len(t.Members))
		for _, m := range t.Members {
			members[m.Name] = a.resolveType(m.Annotation)
		}
		return typesystem.StructuralType{Members: members}
	default:
		a.errorf(diagnostics.Type, "T001", ann.Loc(), "unknown type annotation %T", ann)
		return typesystem.Any
	}
}

func (a *Analyzer) resolveSimpleName(name string, loc ast.Location) typesystem.Type {
	switch name {
	case "Int":
		return typesystem.Int
	case "Double":
		return typesystem.Double
	case "String":
		return typesystem.Str
	case "Boolean":
		return typesystem.Boolean
	case "Unit":
		return typesystem.Unit
	case "Any", "AnyRef":
		return typesystem.Any
	case "Nothing":
		return typesystem.Nothing
	case "Null":
		return typesystem.Null
	case "List":
		return typesystem.ListType{Elem: typesystem.Any}
	case "Set":
		return typesystem.SetType{Elem: typesystem.Any}
	case "Map":
		return typesystem.MapType{Key: typesystem.Any, Value: typesystem.Any}
	}
	if sym, ok := a.Table.Lookup(name); ok {
		return sym.Type
	}
	if tv, ok := a.Table.Resolve(name); ok {
		if _, isTypeVar := tv.(typesystem.TypeVar); isTypeVar {
			return tv
		}
	}
	a.errorf(diagnostics.Type, "T002", loc, "unknown type %q", name)
	return typesystem.Any
}

func (a *Analyzer) resolveGenericType(t *ast.GenericType) typesystem.Type {
	switch t.Name {
	case "List":
		if len(t.Args) != 1 {
			a.errorf(diagnostics.Type, "T003", t.Location, "List takes exactly 1 type argument, got %d", len(t.Args))
			return typesystem.ListType{Elem: typesystem.Any}
		}
		return typesystem.ListType{Elem: a.resolveType(t.Args[0])}
	case "Set":
		if len(t.Args) != 1 {
			a.errorf(diagnostics.Type, "T004", t.Location, "Set takes exactly 1 type argument, got %d", len(t.Args))
			return typesystem.SetType{Elem: typesystem.Any}
		}
		return typesystem.SetType{Elem: a.resolveType(t.Args[0])}
	case "Map":
		if len(t.Args) != 2 {
			a.errorf(diagnostics.Type, "T005", t.Location, "Map takes exactly 2 type arguments, got %d", len(t.Args))
			return typesystem.MapType{Key: typesystem.Any, Value: typesystem.Any}
		}
		return typesystem.MapType{Key: a.resolveType(t.Args[0]), Value: a.resolveType(t.Args[1])}
	}
	sym, ok := a.Table.Lookup(t.Name)
	if !ok {
		a.errorf(diagnostics.Type, "T006", t.Location, "unknown type %q", t.Name)
		return typesystem.Any
	}
	named, ok := sym.Type.(*typesystem.NamedType)
	if !ok {
		a.errorf(diagnostics.Type, "T007", t.Location, "%q is not a generic type", t.Name)
		return typesystem.Any
	}
	if len(t.Args) != len(named.TypeParams) {
		a.errorf(diagnostics.Type, "T008", t.Location, "%s takes %d type argument(s), got %d", t.Name, len(named.TypeParams), len(t.Args))
	}
	args := make([]typesystem.Type, len(t.Args))
	for i, arg := range t.Args {
		args[i] = a.resolveType(arg)
	}
	clone := *named
	clone.TypeArgs = args
	return &clone
}
