package emitter

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitListLiteral lowers `[e1, e2, ...]` to a fresh java.util.ArrayList
// populated by successive add() calls, the same shape javac-era
// library code builds list literals from.
func (ctx *emitCtx) emitListLiteral(e *ast.ListLiteral) typesystem.Type {
	result := ctx.typeOf(e)
	lt, _ := result.(typesystem.ListType)
	ctx.emitNewCollection("java/util/ArrayList")
	for _, el := range e.Elements {
		ctx.cb.Emit(classfile.OpDup, 1)
		t := ctx.emitExpression(el)
		ctx.boxIfPrimitive(t)
		ref := ctx.cw.Pool.InterfaceMethodref("java/util/List", "add", "(Ljava/lang/Object;)Z")
		ctx.cb.EmitInvokeInterface(ref, 1, -1)
		ctx.popValue(typesystem.Boolean)
	}
	_ = lt
	return result
}

// emitMapLiteral lowers `{k1: v1, k2: v2}` to a fresh java.util.HashMap
// populated by successive put() calls.
func (ctx *emitCtx) emitMapLiteral(e *ast.MapLiteral) typesystem.Type {
	result := ctx.typeOf(e)
	ctx.emitNewCollection("java/util/HashMap")
	for _, entry := range e.Entries {
		ctx.cb.Emit(classfile.OpDup, 1)
		kt := ctx.emitExpression(entry.Key)
		ctx.boxIfPrimitive(kt)
		vt := ctx.emitExpression(entry.Value)
		ctx.boxIfPrimitive(vt)
		ref := ctx.cw.Pool.InterfaceMethodref("java/util/Map", "put",
			"(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;")
		ctx.cb.EmitInvokeInterface(ref, 2, -2)
		ctx.popValue(typesystem.Any)
	}
	return result
}

// emitNewCollection pushes `new <concreteClass>()`, leaving the fresh
// instance on the stack.
func (ctx *emitCtx) emitNewCollection(concreteClass string) {
	classIdx := ctx.cw.Pool.Class(concreteClass)
	ctor := ctx.cw.Pool.Methodref(concreteClass, "<init>", "()V")
	ctx.cb.EmitU2(classfile.OpNew, classIdx, 1)
	ctx.cb.Emit(classfile.OpDup, 1)
	ctx.cb.EmitU2(classfile.OpInvokeSpecial, ctor, -1)
}
