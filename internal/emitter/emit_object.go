package emitter

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitObject lowers a singleton declaration to a final class with one
// instance, reachable through a `public static final INSTANCE` field
// initialized by a class initializer (spec.md §4.6).
func (e *Emitter) emitObject(decl *ast.ObjectDeclaration) error {
	sym, ok := e.Table.Lookup(decl.Name)
	if !ok {
		return fmt.Errorf("emitter: %s not registered in symbol table", decl.Name)
	}
	named, ok := sym.Type.(*typesystem.NamedType)
	if !ok {
		return fmt.Errorf("emitter: %s is not an object symbol", decl.Name)
	}

	owner := internalName(decl.Name)
	super := config.RootSuperclass
	if named.Super != nil {
		super = internalName(named.Super.Name)
	}
	cw := classfile.NewClassWriter(e.classMajorVersion(), owner, super)
	cw.AccessFlags |= classfile.AccFinal
	for _, tr := range named.Traits {
		cw.AddInterface(internalName(tr.Name))
	}

	cw.AddField(classfile.AccPublic|classfile.AccStatic|classfile.AccFinal, "INSTANCE", "L"+owner+";")
	for _, f := range decl.Fields {
		access := uint16(classfile.AccPrivate)
		if !f.Mutable {
			access |= classfile.AccFinal
		}
		cw.AddField(access, f.Name, descriptorOf(named.Members[f.Name]))
	}

	e.emitObjectConstructor(cw, owner, super, named, decl.Fields)
	e.emitObjectClinit(cw, owner)

	for _, m := range decl.Methods {
		e.emitMethod(cw, classfile.AccPublic, owner, named, m)
	}

	e.addArtifact(owner, cw.Bytes())
	return nil
}

func (e *Emitter) emitObjectConstructor(cw *classfile.ClassWriter, owner, super string, named *typesystem.NamedType, fields []*ast.FieldDeclaration) {
	scope := newMethodScope(nil)
	scope.reserveThis(named)
	cb := classfile.NewCodeBuilder(scope.maxSlot())
	var pending []lambdaSpec
	ctx := &emitCtx{e: e, cw: cw, cb: cb, scope: scope, owner: named, thisName: owner, pending: &pending}

	cb.Emit(classfile.OpALoad0, 1)
	superCtor := cw.Pool.Methodref(super, "<init>", "()V")
	cb.EmitU2(classfile.OpInvokeSpecial, superCtor, -1)

	for _, f := range fields {
		if f.Initializer == nil {
			continue
		}
		cb.Emit(classfile.OpALoad0, 1)
		t := ctx.emitExpression(f.Initializer)
		ref := cw.Pool.Fieldref(owner, f.Name, descriptorOf(named.Members[f.Name]))
		cb.EmitU2(classfile.OpPutField, ref, -1-width(t))
	}
	cb.Emit(classfile.OpReturn, 0)

	cw.AddMethod(classfile.AccPrivate, "<init>", "()V", cb)
	e.materializeLambdas(cw, owner, named, &pending)
}

// emitObjectClinit builds `static { INSTANCE = new <owner>(); }`.
func (e *Emitter) emitObjectClinit(cw *classfile.ClassWriter, owner string) {
	cb := classfile.NewCodeBuilder(0)
	classIdx := cw.Pool.Class(owner)
	ctor := cw.Pool.Methodref(owner, "<init>", "()V")
	cb.EmitU2(classfile.OpNew, classIdx, 1)
	cb.Emit(classfile.OpDup, 1)
	cb.EmitU2(classfile.OpInvokeSpecial, ctor, -1)
	field := cw.Pool.Fieldref(owner, "INSTANCE", "L"+owner+";")
	cb.EmitU2(classfile.OpPutStatic, field, -1)
	cb.Emit(classfile.OpReturn, 0)
	cw.AddMethod(classfile.AccStatic, "<clinit>", "()V", cb)
}
