package emitter

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitStatement lowers one statement. isLast matters only for an
// ExpressionStatement, since a block's value is its last statement's
// value (spec.md §4.2); every non-last expression statement pops its
// result, mirroring the teacher's own "statement expressions discard
// their value" bytecode discipline.
func (ctx *emitCtx) emitStatement(stmt ast.Statement, isLast bool) typesystem.Type {
	ctx.cb.Line(stmt.Loc().Line)
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		t := ctx.emitExpression(s.Expr)
		if isLast {
			return t
		}
		ctx.popValue(t)
		return typesystem.Unit
	case *ast.VarDeclaration:
		ctx.emitVarDeclaration(s)
		return typesystem.Unit
	case *ast.ReturnStatement:
		ctx.emitReturn(s)
		return typesystem.Unit
	default:
		return typesystem.Unit
	}
}

func (ctx *emitCtx) popValue(t typesystem.Type) {
	if t == typesystem.Unit {
		return
	}
	if width(t) == 2 {
		ctx.cb.Emit(classfile.OpPop2, -2)
		return
	}
	ctx.cb.Emit(classfile.OpPop, -1)
}

func (ctx *emitCtx) emitVarDeclaration(s *ast.VarDeclaration) {
	var t typesystem.Type
	if s.Initializer != nil {
		t = ctx.emitExpression(s.Initializer)
	} else {
		// No initializer and no expression-level type to recover in this
		// stage (annotations resolve to semantic types during checking,
		// not emission); fall back to a reference default.
		t = typesystem.Any
		ctx.cb.Emit(classfile.OpAConstNull, 1)
	}
	slot := ctx.scope.declare(s.Name, t)
	ctx.cb.ReserveLocal(slot + width(t) - 1)
	ctx.cb.EmitU1(storeOpFor(t), byte(slot), -width(t))
}

func (ctx *emitCtx) emitReturn(s *ast.ReturnStatement) {
	if s.Value == nil {
		ctx.cb.Emit(classfile.OpReturn, 0)
		return
	}
	t := ctx.emitExpression(s.Value)
	ctx.cb.Emit(returnOpFor(t), -width(t))
}
