package emitter

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitClass lowers a class declaration to a regular class: its
// declared traits become implemented interfaces and its constructor
// parameters become private final fields (spec.md §4.6).
func (e *Emitter) emitClass(decl *ast.ClassDeclaration) error {
	sym, ok := e.Table.Lookup(decl.Name)
	if !ok {
		return fmt.Errorf("emitter: %s not registered in symbol table", decl.Name)
	}
	named, ok := sym.Type.(*typesystem.NamedType)
	if !ok {
		return fmt.Errorf("emitter: %s is not a class symbol", decl.Name)
	}

	owner := internalName(decl.Name)
	super := config.RootSuperclass
	if named.Super != nil {
		super = internalName(named.Super.Name)
	}
	cw := classfile.NewClassWriter(e.classMajorVersion(), owner, super)
	for _, tr := range named.Traits {
		cw.AddInterface(internalName(tr.Name))
	}

	var ctorNames []string
	var ctorParams []typesystem.Type
	if decl.Constructor != nil {
		for _, p := range decl.Constructor.Parameters {
			t := named.Members[p.Name]
			ctorNames = append(ctorNames, p.Name)
			ctorParams = append(ctorParams, t)
			cw.AddField(classfile.AccPrivate|classfile.AccFinal, p.Name, descriptorOf(t))
		}
	}
	for _, f := range decl.Fields {
		t := named.Members[f.Name]
		access := uint16(classfile.AccPrivate)
		if !f.Mutable {
			access |= classfile.AccFinal
		}
		cw.AddField(access, f.Name, descriptorOf(t))
	}

	e.emitConstructor(cw, owner, super, named, ctorNames, ctorParams, decl.Constructor, decl.Fields)

	for _, m := range decl.Methods {
		e.emitMethod(cw, classfile.AccPublic, owner, named, m)
	}

	e.addArtifact(owner, cw.Bytes())
	return nil
}

// emitConstructor builds the `<init>` method: it chains to the
// superclass's no-arg constructor, stores each constructor parameter
// into its backing field, runs any field initializers in declaration
// order, and finally runs the constructor body (if any) for side
// effects beyond field initialization.
func (e *Emitter) emitConstructor(cw *classfile.ClassWriter, owner, super string, named *typesystem.NamedType, ctorNames []string, ctorParams []typesystem.Type, ctor *ast.Constructor, fields []*ast.FieldDeclaration) {
	scope := newMethodScope(nil)
	scope.reserveThis(named)
	for i, name := range ctorNames {
		scope.declare(name, ctorParams[i])
	}
	cb := classfile.NewCodeBuilder(scope.maxSlot())
	var pending []lambdaSpec
	ctx := &emitCtx{e: e, cw: cw, cb: cb, scope: scope, owner: named, thisName: owner, pending: &pending}

	cb.Emit(classfile.OpALoad0, 1)
	superCtor := cw.Pool.Methodref(super, "<init>", "()V")
	cb.EmitU2(classfile.OpInvokeSpecial, superCtor, -1)

	for i, name := range ctorNames {
		t := ctorParams[i]
		cb.Emit(classfile.OpALoad0, 1)
		slot, _, _ := scope.lookup(name)
		cb.EmitU1(loadOpFor(t), byte(slot), width(t))
		ref := cw.Pool.Fieldref(owner, name, descriptorOf(t))
		cb.EmitU2(classfile.OpPutField, ref, -1-width(t))
	}

	for _, f := range fields {
		if f.Initializer == nil {
			continue
		}
		cb.Emit(classfile.OpALoad0, 1)
		t := ctx.emitExpression(f.Initializer)
		ref := cw.Pool.Fieldref(owner, f.Name, descriptorOf(named.Members[f.Name]))
		cb.EmitU2(classfile.OpPutField, ref, -1-width(t))
	}

	if ctor != nil && ctor.Body != nil {
		bodyType := ctx.emitBlock(ctor.Body)
		ctx.popValue(bodyType)
	}
	cb.Emit(classfile.OpReturn, 0)

	desc := methodDescriptor(ctorParams, typesystem.Unit)
	cw.AddMethod(classfile.AccPublic, "<init>", desc, cb)
	e.materializeLambdas(cw, owner, named, &pending)
}
