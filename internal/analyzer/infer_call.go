package analyzer

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/stdlib"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// inferCall implements spec.md §4.5's method-call inference rule. The
// parser normalizes every bare call `f(args)` to receiver=f, name=
// "apply" (spec.md §4.2/§9); a receiver whose inferred type is itself a
// function type and whose method name is "apply" is a direct
// application rather than a member lookup (§9 "function references vs
// calls" design note).
func (a *Analyzer) inferCall(e *ast.CallExpression) typesystem.Type {
	if id, ok := e.Receiver.(*ast.Identifier); ok && e.Name == "apply" {
		if t, ok := a.Table.Resolve(id.Name); ok {
			if fn, isFunc := t.(typesystem.FuncType); isFunc {
				id.SetInferredType(fn)
				a.TypeMap[id] = fn
				return a.checkCallArgs(e, fn)
			}
			if named, isNamed := t.(*typesystem.NamedType); isNamed && named.Kind == typesystem.ClassKind {
				if sym, ok := a.Table.Lookup(id.Name); ok && sym.Type == t {
					ctor := typesystem.FuncType{Return: named}
					if decl, ok := sym.DefinitionNode.(*ast.ClassDeclaration); ok && decl.Constructor != nil {
						for _, p := range decl.Constructor.Parameters {
							ctor.Params = append(ctor.Params, named.Members[p.Name])
						}
					}
					id.SetInferredType(named)
					a.TypeMap[id] = named
					return a.checkCallArgs(e, ctor)
				}
			}
		}
	}

	receiver := a.inferExpression(e.Receiver)
	if e.Name == "apply" {
		if fn, isFunc := receiver.(typesystem.FuncType); isFunc {
			return a.checkCallArgs(e, fn)
		}
	}

	if fn, ok := lookupMethod(receiver, e.Name); ok {
		return a.checkCallArgs(e, fn)
	}
	if fn, ok := stdlib.BuiltinMethod(receiver, e.Name, elemOf(receiver)); ok {
		return a.checkCallArgs(e, fn)
	}
	if fn, ok := a.lookupExtensionOn(receiver, e.Name); ok {
		return a.checkCallArgs(e, fn)
	}
	a.errorf(diagnostics.Type, "T070", e.Location, "%s has no method %q", receiver, e.Name)
	for _, arg := range e.Args {
		a.inferExpression(arg)
	}
	return typesystem.Any
}

func elemOf(t typesystem.Type) typesystem.Type {
	switch tt := t.(type) {
	case typesystem.ListType:
		return tt.Elem
	case typesystem.SetType:
		return tt.Elem
	}
	return typesystem.Any
}

// lookupMethod finds a method's function type by walking the same
// member chain lookupMember uses, restricted to members whose semantic
// type is itself a FuncType.
func lookupMethod(t typesystem.Type, name string) (typesystem.FuncType, bool) {
	m, ok := lookupMember(t, name)
	if !ok {
		return typesystem.FuncType{}, false
	}
	fn, ok := m.(typesystem.FuncType)
	return fn, ok
}

func (a *Analyzer) lookupExtensionOn(receiver typesystem.Type, name string) (typesystem.FuncType, bool) {
	sym, ok := a.Table.Lookup(extensionKey(receiver, name))
	if !ok {
		return typesystem.FuncType{}, false
	}
	fn, ok := sym.Type.(typesystem.FuncType)
	return fn, ok
}

// checkCallArgs validates arity and argument subtyping against fn's
// parameters, inferring (and annotating) every argument expression
// regardless of outcome so later stages still see a type for each.
func (a *Analyzer) checkCallArgs(e *ast.CallExpression, fn typesystem.FuncType) typesystem.Type {
	if len(e.Args) != len(fn.Params) {
		a.errorf(diagnostics.Type, "T071", e.Location, "expected %d argument(s), got %d", len(fn.Params), len(e.Args))
	}
	for i, arg := range e.Args {
		argType := a.inferExpression(arg)
		if i >= len(fn.Params) {
			continue
		}
		if !typesystem.Subtype(argType, fn.Params[i], a.Table) {
			a.errorf(diagnostics.Type, "T072", arg.Loc(), "argument %d has type %s, not a subtype of parameter type %s", i+1, argType, fn.Params[i])
		}
	}
	return fn.Return
}
