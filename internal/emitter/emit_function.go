package emitter

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitFunction lowers a top-level function declaration to its own
// "<name>$" wrapper class carrying a single public static method named
// apply (spec.md §4.6), the shape emitCall's direct-static-call branch
// already assumes.
func (e *Emitter) emitFunction(decl *ast.FunctionDeclaration) error {
	sym, ok := e.Table.Lookup(decl.Name)
	if !ok {
		return fmt.Errorf("emitter: %s not registered in symbol table", decl.Name)
	}
	fn, ok := sym.Type.(typesystem.FuncType)
	if !ok {
		return fmt.Errorf("emitter: %s is not a function symbol", decl.Name)
	}

	owner := functionOwnerClass(decl.Name)
	cw := classfile.NewClassWriter(e.classMajorVersion(), owner, config.RootSuperclass)

	scope := newMethodScope(nil)
	for i, p := range decl.Parameters {
		scope.declare(p.Name, fn.Params[i])
	}
	cb := classfile.NewCodeBuilder(scope.maxSlot())
	var pending []lambdaSpec
	ctx := &emitCtx{e: e, cw: cw, cb: cb, scope: scope, owner: nil, thisName: owner, pending: &pending}

	actual := ctx.emitBlock(decl.Body)
	if fn.Return == typesystem.Unit {
		cb.Emit(classfile.OpReturn, 0)
	} else {
		cb.Emit(returnOpFor(fn.Return), -width(actual))
	}

	desc := methodDescriptor(fn.Params, fn.Return)
	cw.AddMethod(classfile.AccPublic|classfile.AccStatic, "apply", desc, cb)

	e.materializeLambdas(cw, owner, nil, &pending)
	e.addArtifact(owner, cw.Bytes())
	return nil
}
