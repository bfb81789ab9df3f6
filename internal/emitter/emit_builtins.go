package emitter

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitBuiltinCall lowers one of stdlib.BuiltinMethod's well-known
// List/Set/String operations to the target VM's own java.util/
// java.lang method of the same shape.
func (ctx *emitCtx) emitBuiltinCall(receiverType typesystem.Type, name string, fn typesystem.FuncType, args []ast.Expression) typesystem.Type {
	switch receiverType.(type) {
	case typesystem.ListType:
		return ctx.emitListBuiltin(name, fn, args)
	case typesystem.SetType:
		return ctx.emitSetBuiltin(name, fn, args)
	}
	if receiverType == typesystem.Str {
		return ctx.emitStringBuiltin(name, args)
	}
	for _, a := range args {
		ctx.emitExpression(a)
	}
	return fn.Return
}

func (ctx *emitCtx) emitListBuiltin(name string, fn typesystem.FuncType, args []ast.Expression) typesystem.Type {
	switch name {
	case "size", "length":
		ref := ctx.cw.Pool.InterfaceMethodref("java/util/List", "size", "()I")
		ctx.cb.EmitInvokeInterface(ref, 0, callDelta(true, nil, typesystem.Int))
		return typesystem.Int
	case "get":
		ctx.emitExpression(args[0])
		ref := ctx.cw.Pool.InterfaceMethodref("java/util/List", "get", "(I)Ljava/lang/Object;")
		ctx.cb.EmitInvokeInterface(ref, 1, callDelta(true, []typesystem.Type{typesystem.Int}, typesystem.Any))
		ctx.unboxToType(fn.Return)
		return fn.Return
	case "add":
		t := ctx.emitExpression(args[0])
		ctx.boxIfPrimitive(t)
		ref := ctx.cw.Pool.InterfaceMethodref("java/util/List", "add", "(Ljava/lang/Object;)Z")
		ctx.cb.EmitInvokeInterface(ref, 1, -1)
		ctx.popValue(typesystem.Boolean)
		return typesystem.Unit
	}
	return fn.Return
}

func (ctx *emitCtx) emitSetBuiltin(name string, fn typesystem.FuncType, args []ast.Expression) typesystem.Type {
	switch name {
	case "size", "length":
		ref := ctx.cw.Pool.InterfaceMethodref("java/util/Set", "size", "()I")
		ctx.cb.EmitInvokeInterface(ref, 0, callDelta(true, nil, typesystem.Int))
		return typesystem.Int
	case "add":
		t := ctx.emitExpression(args[0])
		ctx.boxIfPrimitive(t)
		ref := ctx.cw.Pool.InterfaceMethodref("java/util/Set", "add", "(Ljava/lang/Object;)Z")
		ctx.cb.EmitInvokeInterface(ref, 1, -1)
		ctx.popValue(typesystem.Boolean)
		return typesystem.Unit
	}
	return fn.Return
}

func (ctx *emitCtx) emitStringBuiltin(name string, args []ast.Expression) typesystem.Type {
	switch name {
	case "size", "length":
		ref := ctx.cw.Pool.Methodref("java/lang/String", "length", "()I")
		ctx.cb.EmitU2(classfile.OpInvokeVirtual, ref, callDelta(true, nil, typesystem.Int))
		return typesystem.Int
	case "get":
		ctx.emitExpression(args[0])
		charAt := ctx.cw.Pool.Methodref("java/lang/String", "charAt", "(I)C")
		ctx.cb.EmitU2(classfile.OpInvokeVirtual, charAt, callDelta(true, []typesystem.Type{typesystem.Int}, typesystem.Int))
		valueOf := ctx.cw.Pool.Methodref("java/lang/String", "valueOf", "(C)Ljava/lang/String;")
		ctx.cb.EmitU2(classfile.OpInvokeStatic, valueOf, 0)
		return typesystem.Str
	case "substring":
		ctx.emitExpression(args[0])
		ctx.emitExpression(args[1])
		ref := ctx.cw.Pool.Methodref("java/lang/String", "substring", "(II)Ljava/lang/String;")
		ctx.cb.EmitU2(classfile.OpInvokeVirtual, ref,
			callDelta(true, []typesystem.Type{typesystem.Int, typesystem.Int}, typesystem.Str))
		return typesystem.Str
	}
	return typesystem.Any
}
