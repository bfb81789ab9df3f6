package emitter

import (
	"strings"

	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// boxIfPrimitive wraps a primitive value already on the stack in its
// boxed wrapper type, needed wherever a primitive value crosses into
// an Object-typed slot (a functional-interface parameter, a
// java.util.List/Set element, a StringBuilder.append(Object) argument).
func (ctx *emitCtx) boxIfPrimitive(t typesystem.Type) {
	switch t {
	case typesystem.Int:
		ref := ctx.cw.Pool.Methodref("java/lang/Integer", "valueOf", "(I)Ljava/lang/Integer;")
		ctx.cb.EmitU2(classfile.OpInvokeStatic, ref, 0)
	case typesystem.Double:
		ref := ctx.cw.Pool.Methodref("java/lang/Double", "valueOf", "(D)Ljava/lang/Double;")
		ctx.cb.EmitU2(classfile.OpInvokeStatic, ref, -1)
	case typesystem.Boolean:
		ref := ctx.cw.Pool.Methodref("java/lang/Boolean", "valueOf", "(Z)Ljava/lang/Boolean;")
		ctx.cb.EmitU2(classfile.OpInvokeStatic, ref, 0)
	}
}

// unboxToType narrows an Object value already on the stack down to t:
// an unboxing call for a primitive wrapper, a checkcast for any other
// reference type, nothing for Any/Object itself.
func (ctx *emitCtx) unboxToType(t typesystem.Type) {
	switch t {
	case typesystem.Int:
		ctx.cb.EmitU2(classfile.OpCheckCast, ctx.cw.Pool.Class("java/lang/Integer"), 0)
		ref := ctx.cw.Pool.Methodref("java/lang/Integer", "intValue", "()I")
		ctx.cb.EmitU2(classfile.OpInvokeVirtual, ref, 0)
	case typesystem.Double:
		ctx.cb.EmitU2(classfile.OpCheckCast, ctx.cw.Pool.Class("java/lang/Double"), 0)
		ref := ctx.cw.Pool.Methodref("java/lang/Double", "doubleValue", "()D")
		ctx.cb.EmitU2(classfile.OpInvokeVirtual, ref, 1)
	case typesystem.Boolean:
		ctx.cb.EmitU2(classfile.OpCheckCast, ctx.cw.Pool.Class("java/lang/Boolean"), 0)
		ref := ctx.cw.Pool.Methodref("java/lang/Boolean", "booleanValue", "()Z")
		ctx.cb.EmitU2(classfile.OpInvokeVirtual, ref, 0)
	default:
		desc := descriptorOf(t)
		if name, ok := internalNameFromObjectDescriptor(desc); ok && name != "java/lang/Object" {
			ctx.cb.EmitU2(classfile.OpCheckCast, ctx.cw.Pool.Class(name), 0)
		}
	}
}

func internalNameFromObjectDescriptor(desc string) (string, bool) {
	if !strings.HasPrefix(desc, "L") || !strings.HasSuffix(desc, ";") {
		return "", false
	}
	return desc[1 : len(desc)-1], true
}
