package emitter

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/stdlib"
	"github.com/funvibe/funxyc/internal/symbols"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// functionOwnerClass names the synthetic wrapper class a top-level
// function lowers to (spec.md §4.6: "a <name>$ wrapper class with one
// public static method").
func functionOwnerClass(name string) string {
	return internalName(name + config.FunctionWrapperSuffix)
}

func extensionOwnerClass(target typesystem.Type) string {
	return internalName(target.String() + config.ExtensionSuffix)
}

func extensionKey(target typesystem.Type, method string) string {
	return "$ext$" + target.String() + "." + method
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

func paramWidth(params []typesystem.Type) int {
	n := 0
	for _, p := range params {
		n += width(p)
	}
	return n
}

// callDelta computes invoke*'s net operand-stack effect: the
// receiver (if any) and arguments are popped, the return value (if
// not Unit) is pushed.
func callDelta(hasReceiver bool, params []typesystem.Type, ret typesystem.Type) int {
	consumed := paramWidth(params)
	if hasReceiver {
		consumed++
	}
	produced := 0
	if ret != typesystem.Unit {
		produced = width(ret)
	}
	return produced - consumed
}

// emitCall lowers a call expression. The parser's uniform
// normalization means every surface call and method call alike reach
// here as Receiver/Name/Args; spec.md §4.6's identifier lowering order
// is what distinguishes a direct static call to a sibling function
// from a call through a function-valued local.
func (ctx *emitCtx) emitCall(e *ast.CallExpression) typesystem.Type {
	if id, ok := e.Receiver.(*ast.Identifier); ok && e.Name == "apply" {
		if _, _, isLocal := ctx.scope.lookup(id.Name); !isLocal {
			if sym, ok := ctx.e.Table.Lookup(id.Name); ok {
				switch t := sym.Type.(type) {
				case typesystem.FuncType:
					return ctx.emitStaticCall(functionOwnerClass(id.Name), "apply", t, e.Args)
				case *typesystem.NamedType:
					if t.Kind == typesystem.ClassKind {
						return ctx.emitConstructorCall(sym, t, e.Args)
					}
				}
			}
		}
	}

	receiverType := ctx.emitExpression(e.Receiver)
	if e.Name == "apply" {
		if fn, isFunc := receiverType.(typesystem.FuncType); isFunc {
			return ctx.emitFunctionValueApply(fn, e.Args)
		}
	}

	if named, ok := receiverType.(*typesystem.NamedType); ok {
		if m, ok := ctx.memberType(named, e.Name); ok {
			if fn, isFunc := m.(typesystem.FuncType); isFunc {
				return ctx.emitInstanceCall(named, e.Name, fn, e.Args)
			}
		}
	}
	if fn, ok := stdlib.BuiltinMethod(receiverType, e.Name, elemOf(receiverType)); ok {
		return ctx.emitBuiltinCall(receiverType, e.Name, fn, e.Args)
	}
	if sym, ok := ctx.e.Table.Lookup(extensionKey(receiverType, e.Name)); ok {
		if fn, isFunc := sym.Type.(typesystem.FuncType); isFunc {
			return ctx.emitExtensionCall(receiverType, fn, e.Args)
		}
	}
	for _, a := range e.Args {
		ctx.emitExpression(a)
	}
	return ctx.typeOf(e)
}

// emitConstructorCall lowers `ClassName(args)` to `new ClassName` plus
// an invokespecial of its <init>, the same normalization every plain
// call reaches emitCall through (spec.md §4.2's uniform call shape
// gives class construction no dedicated AST node).
func (ctx *emitCtx) emitConstructorCall(sym *symbols.Symbol, named *typesystem.NamedType, args []ast.Expression) typesystem.Type {
	decl, _ := sym.DefinitionNode.(*ast.ClassDeclaration)
	var params []typesystem.Type
	if decl != nil && decl.Constructor != nil {
		for _, p := range decl.Constructor.Parameters {
			params = append(params, named.Members[p.Name])
		}
	}
	owner := internalName(named.Name)
	classIdx := ctx.cw.Pool.Class(owner)
	ctx.cb.EmitU2(classfile.OpNew, classIdx, 1)
	ctx.cb.Emit(classfile.OpDup, 1)
	for _, a := range args {
		ctx.emitExpression(a)
	}
	ref := ctx.cw.Pool.Methodref(owner, "<init>", methodDescriptor(params, typesystem.Unit))
	ctx.cb.EmitU2(classfile.OpInvokeSpecial, ref, callDelta(true, params, typesystem.Unit))
	return named
}

func (ctx *emitCtx) emitStaticCall(ownerClass, methodName string, fn typesystem.FuncType, args []ast.Expression) typesystem.Type {
	for _, a := range args {
		ctx.emitExpression(a)
	}
	desc := methodDescriptor(fn.Params, fn.Return)
	ref := ctx.cw.Pool.Methodref(ownerClass, methodName, desc)
	ctx.cb.EmitU2(classfile.OpInvokeStatic, ref, callDelta(false, fn.Params, fn.Return))
	return fn.Return
}

// emitInstanceCall dispatches a user-declared method. Trait methods
// resolve as interface methods (invokeinterface); class and object
// methods as virtual methods (spec.md §4.6: traits lower to
// interfaces, classes/objects to regular classes).
func (ctx *emitCtx) emitInstanceCall(named *typesystem.NamedType, name string, fn typesystem.FuncType, args []ast.Expression) typesystem.Type {
	for _, a := range args {
		ctx.emitExpression(a)
	}
	desc := methodDescriptor(fn.Params, fn.Return)
	owner := internalName(named.Name)
	delta := callDelta(true, fn.Params, fn.Return)
	if named.Kind == typesystem.TraitKind {
		ref := ctx.cw.Pool.InterfaceMethodref(owner, name, desc)
		ctx.cb.EmitInvokeInterface(ref, len(fn.Params), delta)
		return fn.Return
	}
	ref := ctx.cw.Pool.Methodref(owner, name, desc)
	ctx.cb.EmitU2(classfile.OpInvokeVirtual, ref, delta)
	return fn.Return
}

func (ctx *emitCtx) emitExtensionCall(target typesystem.Type, fn typesystem.FuncType, args []ast.Expression) typesystem.Type {
	for _, a := range args {
		ctx.emitExpression(a)
	}
	extParams := append([]typesystem.Type{target}, fn.Params...)
	desc := methodDescriptor(extParams, fn.Return)
	ref := ctx.cw.Pool.Methodref(extensionOwnerClass(target), "apply", desc)
	ctx.cb.EmitU2(classfile.OpInvokeStatic, ref, callDelta(false, extParams, fn.Return))
	return fn.Return
}

// emitFunctionValueApply invokes a function value already on the
// stack through its functional interface's single abstract method.
func (ctx *emitCtx) emitFunctionValueApply(fn typesystem.FuncType, args []ast.Expression) typesystem.Type {
	shape, err := chooseFunctionalInterface(fn.Params, fn.Return)
	if err != nil {
		for _, a := range args {
			ctx.emitExpression(a)
		}
		return fn.Return
	}
	for i, a := range args {
		t := ctx.emitExpression(a)
		if i < len(fn.Params) && !shape.paramIsPrimitiveSlot(i) && isPrimitive(fn.Params[i]) {
			ctx.boxIfPrimitive(t)
		}
	}
	// invokeinterface's stack effect is computed against the SAM's own
	// (possibly boxed) signature, not fn's unerased one.
	ref := ctx.cw.Pool.InterfaceMethodref(shape.Interface, shape.Method, shape.Descriptor)
	ctx.cb.EmitInvokeInterface(ref, len(fn.Params), callDeltaForShape(shape, fn))
	if !shape.returnIsPrimitiveSlot() && isPrimitive(fn.Return) {
		ctx.unboxToType(fn.Return)
	}
	return fn.Return
}

// callDeltaForShape mirrors callDelta but widens each boxed slot back
// to one word, since boxing/unboxing around the call already adjusted
// the stack for any primitive widened beyond a single word (Double).
func callDeltaForShape(shape FuncShape, fn typesystem.FuncType) int {
	consumed := 1 // receiver
	for i := range fn.Params {
		if shape.paramIsPrimitiveSlot(i) {
			consumed += width(fn.Params[i])
			continue
		}
		consumed++ // boxed to a single-word reference
	}
	if fn.Return == typesystem.Unit {
		return -consumed
	}
	if shape.returnIsPrimitiveSlot() {
		return width(fn.Return) - consumed
	}
	return 1 - consumed
}
