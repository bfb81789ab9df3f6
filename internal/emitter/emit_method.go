package emitter

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitMethod compiles one concrete instance method body shared by
// class, trait (default methods) and object emission. access controls
// only the visibility/interface-ness bits the caller wants on top of
// the method being a regular, non-static instance method.
func (e *Emitter) emitMethod(cw *classfile.ClassWriter, access uint16, owner string, named *typesystem.NamedType, m *ast.FunctionDeclaration) {
	fn, _ := named.Members[m.Name].(typesystem.FuncType)

	scope := newMethodScope(nil)
	scope.reserveThis(named)
	for i, p := range m.Parameters {
		scope.declare(p.Name, fn.Params[i])
	}
	cb := classfile.NewCodeBuilder(scope.maxSlot())
	var pending []lambdaSpec
	ctx := &emitCtx{e: e, cw: cw, cb: cb, scope: scope, owner: named, thisName: owner, pending: &pending}

	actual := ctx.emitBlock(m.Body)
	if fn.Return == typesystem.Unit {
		cb.Emit(classfile.OpReturn, 0)
	} else {
		cb.Emit(returnOpFor(fn.Return), -width(actual))
	}

	desc := methodDescriptor(fn.Params, fn.Return)
	cw.AddMethod(access, m.Name, desc, cb)
	e.materializeLambdas(cw, owner, named, &pending)
}

// emitAbstractMethod appends a trait's `def` signature with no Code
// attribute (spec.md §4.6: "abstract signatures for def").
func (e *Emitter) emitAbstractMethod(cw *classfile.ClassWriter, named *typesystem.NamedType, m *ast.FunctionDeclaration) {
	fn, _ := named.Members[m.Name].(typesystem.FuncType)
	desc := methodDescriptor(fn.Params, fn.Return)
	cw.AddMethod(classfile.AccPublic|classfile.AccAbstract, m.Name, desc, nil)
}
