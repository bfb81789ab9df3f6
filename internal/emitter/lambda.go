package emitter

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// FuncShape names the functional-interface type, single-abstract-method
// name and descriptor a function value materialises as, per spec.md
// §4.6's parameter/return dispatch table.
type FuncShape struct {
	Interface  string // internal (slash-separated) interface name
	Method     string
	Descriptor string // the SAM's own descriptor, e.g. "(I)I"
}

func (s FuncShape) ObjectDescriptor() string { return "L" + s.Interface + ";" }

// paramIsPrimitiveSlot reports whether the SAM's i-th parameter is one
// of the Int-specialised shapes' primitive slots rather than an
// erased Object slot.
func (s FuncShape) paramIsPrimitiveSlot(i int) bool {
	switch s.Interface {
	case "java/util/function/IntUnaryOperator", "java/util/function/IntToDoubleFunction",
		"java/util/function/IntFunction":
		return i == 0
	case "java/util/function/IntBinaryOperator":
		return i == 0 || i == 1
	default:
		return false
	}
}

// returnIsPrimitiveSlot reports whether the SAM's return is itself a
// primitive (int/double) rather than an erased Object return.
func (s FuncShape) returnIsPrimitiveSlot() bool {
	switch s.Interface {
	case "java/util/function/IntUnaryOperator", "java/util/function/IntToDoubleFunction",
		"java/util/function/ToIntFunction", "java/util/function/IntBinaryOperator":
		return true
	default:
		return false
	}
}

// chooseFunctionalInterface implements spec.md §4.6's dispatch table,
// preferring a primitive-specialised interface shape and falling back
// to an object-typed one. An unsupported arity is reported to the
// caller as an error rather than silently defaulting, per spec.md §4.6
// "unsupported arities must fail at compile time with a clear error."
func chooseFunctionalInterface(params []typesystem.Type, ret typesystem.Type) (FuncShape, error) {
	switch len(params) {
	case 0:
		return FuncShape{"java/util/function/Supplier", "get", "()Ljava/lang/Object;"}, nil
	case 1:
		p := params[0]
		switch {
		case p == typesystem.Int && ret == typesystem.Int:
			return FuncShape{"java/util/function/IntUnaryOperator", "applyAsInt", "(I)I"}, nil
		case p == typesystem.Int && ret == typesystem.Double:
			return FuncShape{"java/util/function/IntToDoubleFunction", "applyAsDouble", "(I)D"}, nil
		case p == typesystem.Int:
			return FuncShape{"java/util/function/IntFunction", "apply", "(I)Ljava/lang/Object;"}, nil
		case ret == typesystem.Int:
			return FuncShape{"java/util/function/ToIntFunction", "applyAsInt", "(Ljava/lang/Object;)I"}, nil
		default:
			return FuncShape{"java/util/function/Function", "apply", "(Ljava/lang/Object;)Ljava/lang/Object;"}, nil
		}
	case 2:
		if params[0] == typesystem.Int && params[1] == typesystem.Int && ret == typesystem.Int {
			return FuncShape{"java/util/function/IntBinaryOperator", "applyAsInt", "(II)I"}, nil
		}
		return FuncShape{"java/util/function/BiFunction", "apply",
			"(Ljava/lang/Object;Ljava/lang/Object;)Ljava/lang/Object;"}, nil
	default:
		return FuncShape{}, fmt.Errorf("unsupported lambda arity %d: the target VM's lambda factory only has shapes for 0, 1 and 2 parameters", len(params))
	}
}

func functionalInterfaceDescriptor(fn typesystem.FuncType) string {
	shape, err := chooseFunctionalInterface(fn.Params, fn.Return)
	if err != nil {
		return "Ljava/lang/Object;"
	}
	return shape.ObjectDescriptor()
}

// lambdaMetafactoryHandle adds the platform lambda-factory handle
// every invokedynamic call site in this package bootstraps through.
// The pool doesn't dedup MethodHandle entries the way it dedups
// Methodref entries, so repeated calls cost a few redundant constant
// slots rather than a correctness problem.
func lambdaMetafactoryHandle(pool *classfile.ConstantPool) uint16 {
	ref := pool.Methodref(
		"java/lang/invoke/LambdaMetafactory",
		"metafactory",
		"(Ljava/lang/invoke/MethodHandles$Lookup;Ljava/lang/String;Ljava/lang/invoke/MethodType;"+
			"Ljava/lang/invoke/MethodType;Ljava/lang/invoke/MethodHandle;Ljava/lang/invoke/MethodType;)"+
			"Ljava/lang/invoke/CallSite;",
	)
	return pool.MethodHandle(classfile.RefInvokeStatic, ref)
}

// emitIndyForStaticTarget is the shared core of emitFunctionValueRef
// and emitLambdaValue: both materialize a function value by pointing
// an invokedynamic call site at a static method already known to
// exist (or about to be, for a lambda's own synthetic body) on
// ownerClass, using that method's own unerased descriptor as the
// "instantiated" method type LambdaMetafactory bridges from the SAM's
// erased one.
func (ctx *emitCtx) emitIndyForStaticTarget(ownerClass, methodName string, fn typesystem.FuncType) typesystem.Type {
	shape, err := chooseFunctionalInterface(fn.Params, fn.Return)
	if err != nil {
		ctx.cb.Emit(classfile.OpAConstNull, 1)
		return fn
	}
	targetDesc := methodDescriptor(fn.Params, fn.Return)
	methodRef := ctx.cw.Pool.Methodref(ownerClass, methodName, targetDesc)
	targetHandle := ctx.cw.Pool.MethodHandle(classfile.RefInvokeStatic, methodRef)
	factory := lambdaMetafactoryHandle(ctx.cw.Pool)
	samType := ctx.cw.Pool.MethodType(shape.Descriptor)
	instantiatedType := ctx.cw.Pool.MethodType(targetDesc)
	bsmIdx := ctx.cw.AddBootstrapMethod(factory, samType, targetHandle, instantiatedType)
	indy := ctx.cw.Pool.InvokeDynamic(bsmIdx, shape.Method, "()"+shape.ObjectDescriptor())
	ctx.cb.EmitInvokeDynamic(indy, 1)
	return fn
}

// emitFunctionValueRef materializes a reference to an existing named
// static function (a sibling top-level function used as a value
// rather than applied) as an instance of its chosen functional
// interface.
func (ctx *emitCtx) emitFunctionValueRef(ownerClass, name string, fn typesystem.FuncType) typesystem.Type {
	return ctx.emitIndyForStaticTarget(ownerClass, name, fn)
}

// emitLambdaValue lowers a lambda expression. The body is queued as a
// lambdaSpec rather than emitted inline; the enclosing entity emitter
// drains ctx.pending and materializes each queued body as a synthetic
// private static method on the same class once the triggering method
// body is complete. Only non-capturing lambdas are supported: the
// synthetic method's parameter list is exactly the lambda's own
// parameters, with no slots for variables captured from the enclosing
// scope.
func (ctx *emitCtx) emitLambdaValue(lam *ast.Lambda) typesystem.Type {
	fn, ok := ctx.typeOf(lam).(typesystem.FuncType)
	if !ok {
		ctx.cb.Emit(classfile.OpAConstNull, 1)
		return typesystem.Any
	}
	name := ctx.e.nextLambdaName(ctx.thisName)
	*ctx.pending = append(*ctx.pending, lambdaSpec{
		name:   name,
		params: lam.Parameters,
		types:  fn.Params,
		ret:    fn.Return,
		body:   lam.Body,
	})
	return ctx.emitIndyForStaticTarget(ctx.thisName, name, fn)
}

// materializeLambdas drains pending, compiling each queued lambda body
// as a private static method on cw. Compiling one body can itself
// discover further nested lambdas, so this keeps draining until the
// queue is empty rather than a single pass.
func (e *Emitter) materializeLambdas(cw *classfile.ClassWriter, thisName string, owner *typesystem.NamedType, pending *[]lambdaSpec) {
	for len(*pending) > 0 {
		spec := (*pending)[0]
		*pending = (*pending)[1:]

		scope := newMethodScope(nil)
		for i, p := range spec.params {
			scope.declare(p.Name, spec.types[i])
		}
		cb := classfile.NewCodeBuilder(scope.maxSlot())
		bodyCtx := &emitCtx{e: e, cw: cw, cb: cb, scope: scope, owner: owner, thisName: thisName, pending: pending}
		bodyType := bodyCtx.emitExpression(spec.body)
		if spec.ret == typesystem.Unit {
			cb.Emit(classfile.OpReturn, 0)
		} else {
			cb.Emit(returnOpFor(spec.ret), -width(bodyType))
		}

		desc := methodDescriptor(spec.types, spec.ret)
		cw.AddMethod(classfile.AccPrivate|classfile.AccStatic, spec.name, desc, cb)
	}
}
