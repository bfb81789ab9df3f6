package emitter

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitFieldAccess lowers `receiver.name` read as a value. A member
// that resolves to a FuncType is a bound method reference rather than
// a field; this compiler doesn't materialize those as captured
// function values (only plain top-level functions and already-bound
// local function variables go through chooseFunctionalInterface), so
// it degrades to null rather than silently reading the wrong slot.
func (ctx *emitCtx) emitFieldAccess(e *ast.FieldAccess) typesystem.Type {
	receiverType := ctx.emitExpression(e.Receiver)
	named, ok := receiverType.(*typesystem.NamedType)
	if !ok {
		ctx.popValue(receiverType)
		ctx.cb.Emit(classfile.OpAConstNull, 1)
		return typesystem.Any
	}
	t, ok := ctx.memberType(named, e.Name)
	if !ok {
		ctx.popValue(receiverType)
		ctx.cb.Emit(classfile.OpAConstNull, 1)
		return typesystem.Any
	}
	if _, isFunc := t.(typesystem.FuncType); isFunc {
		ctx.popValue(receiverType)
		ctx.cb.Emit(classfile.OpAConstNull, 1)
		return t
	}
	ref := ctx.cw.Pool.Fieldref(internalName(named.Name), e.Name, descriptorOf(t))
	ctx.cb.EmitU2(classfile.OpGetField, ref, width(t)-1)
	return t
}

// emitAssign lowers `target = value`, storing to a local slot, a
// `this` field, or an arbitrary object's field depending on the
// target shape (spec.md §4.2's l-value restriction to Identifier and
// FieldAccess targets is already enforced by the checker).
func (ctx *emitCtx) emitAssign(e *ast.AssignExpression) typesystem.Type {
	switch target := e.Target.(type) {
	case *ast.Identifier:
		ctx.emitAssignIdentifier(target, e.Value)
	case *ast.FieldAccess:
		ctx.emitAssignField(target, e.Value)
	}
	return typesystem.Unit
}

func (ctx *emitCtx) emitAssignIdentifier(target *ast.Identifier, value ast.Expression) {
	if slot, t, ok := ctx.scope.lookup(target.Name); ok {
		vt := ctx.emitExpression(value)
		ctx.cb.EmitU1(storeOpFor(t), byte(slot), -width(vt))
		return
	}
	if ctx.owner != nil {
		if t, ok := ctx.memberType(ctx.owner, target.Name); ok {
			ctx.cb.Emit(classfile.OpALoad0, 1)
			vt := ctx.emitExpression(value)
			ref := ctx.cw.Pool.Fieldref(ctx.thisName, target.Name, descriptorOf(t))
			ctx.cb.EmitU2(classfile.OpPutField, ref, -1-width(vt))
			return
		}
	}
	vt := ctx.emitExpression(value)
	ctx.popValue(vt)
}

func (ctx *emitCtx) emitAssignField(target *ast.FieldAccess, value ast.Expression) {
	receiverType := ctx.emitExpression(target.Receiver)
	named, ok := receiverType.(*typesystem.NamedType)
	if !ok {
		ctx.popValue(receiverType)
		vt := ctx.emitExpression(value)
		ctx.popValue(vt)
		return
	}
	t, _ := ctx.memberType(named, target.Name)
	vt := ctx.emitExpression(value)
	ref := ctx.cw.Pool.Fieldref(internalName(named.Name), target.Name, descriptorOf(t))
	ctx.cb.EmitU2(classfile.OpPutField, ref, -1-width(vt))
}
