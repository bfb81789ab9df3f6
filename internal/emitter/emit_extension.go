package emitter

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitExtension lowers an extension declaration to a final
// `<Target>$Extension` class of static methods, each taking the
// receiver as its first parameter (spec.md §4.6).
func (e *Emitter) emitExtension(decl *ast.ExtensionDeclaration) error {
	target, ok := e.resolveExtensionTarget(decl.Target)
	if !ok {
		return fmt.Errorf("emitter: extension target %T not resolvable", decl.Target)
	}
	owner := extensionOwnerClass(target)
	cw := classfile.NewClassWriter(e.classMajorVersion(), owner, config.RootSuperclass)
	cw.AccessFlags |= classfile.AccFinal

	for _, m := range decl.Methods {
		sym, ok := e.Table.Lookup(extensionKey(target, m.Name))
		if !ok {
			continue
		}
		fn, ok := sym.Type.(typesystem.FuncType)
		if !ok {
			continue
		}
		e.emitExtensionMethod(cw, owner, target, fn, m)
	}

	e.addArtifact(owner, cw.Bytes())
	return nil
}

// emitExtensionMethod compiles one extension method body. Its receiver
// is bound at local-variable slot 0 exactly like an instance method's
// `this`, so ThisExpression inside the body (a load of that slot with
// the receiver type's load opcode) resolves to the receiver without a
// separate lowering path.
// ctx.owner stays nil: an extension has no field namespace of its own,
// so `this`-field lookups never apply here.
func (e *Emitter) emitExtensionMethod(cw *classfile.ClassWriter, owner string, target typesystem.Type, fn typesystem.FuncType, m *ast.FunctionDeclaration) {
	scope := newMethodScope(nil)
	scope.reserveThis(target)
	for i, p := range m.Parameters {
		scope.declare(p.Name, fn.Params[i])
	}
	cb := classfile.NewCodeBuilder(scope.maxSlot())
	var pending []lambdaSpec
	ctx := &emitCtx{e: e, cw: cw, cb: cb, scope: scope, owner: nil, thisName: owner, pending: &pending}

	actual := ctx.emitBlock(m.Body)
	if fn.Return == typesystem.Unit {
		cb.Emit(classfile.OpReturn, 0)
	} else {
		cb.Emit(returnOpFor(fn.Return), -width(actual))
	}

	params := append([]typesystem.Type{target}, fn.Params...)
	desc := methodDescriptor(params, fn.Return)
	cw.AddMethod(classfile.AccPublic|classfile.AccStatic, "apply", desc, cb)
	e.materializeLambdas(cw, owner, nil, &pending)
}

// resolveExtensionTarget mirrors the analyzer's own simple-name/generic
// resolution (resolver.go) for the handful of annotation shapes an
// extension target realistically takes, so the class name and
// extensionKey it computes line up with what collectExtension already
// registered under.
func (e *Emitter) resolveExtensionTarget(ann ast.TypeAnnotation) (typesystem.Type, bool) {
	switch t := ann.(type) {
	case *ast.SimpleType:
		return e.resolveSimpleExtensionName(t.Name)
	case *ast.GenericType:
		switch t.Name {
		case "List":
			elem := e.extensionArg(t.Args, 0)
			return typesystem.ListType{Elem: elem}, true
		case "Set":
			elem := e.extensionArg(t.Args, 0)
			return typesystem.SetType{Elem: elem}, true
		case "Map":
			key := e.extensionArg(t.Args, 0)
			val := e.extensionArg(t.Args, 1)
			return typesystem.MapType{Key: key, Value: val}, true
		}
		if sym, ok := e.Table.Lookup(t.Name); ok {
			return sym.Type, true
		}
	}
	return typesystem.Any, false
}

func (e *Emitter) extensionArg(args []ast.TypeAnnotation, i int) typesystem.Type {
	if i >= len(args) {
		return typesystem.Any
	}
	t, ok := e.resolveExtensionTarget(args[i])
	if !ok {
		return typesystem.Any
	}
	return t
}

func (e *Emitter) resolveSimpleExtensionName(name string) (typesystem.Type, bool) {
	switch name {
	case "Int":
		return typesystem.Int, true
	case "Double":
		return typesystem.Double, true
	case "String":
		return typesystem.Str, true
	case "Boolean":
		return typesystem.Boolean, true
	case "Unit":
		return typesystem.Unit, true
	case "Any", "AnyRef":
		return typesystem.Any, true
	case "List":
		return typesystem.ListType{Elem: typesystem.Any}, true
	case "Set":
		return typesystem.SetType{Elem: typesystem.Any}, true
	case "Map":
		return typesystem.MapType{Key: typesystem.Any, Value: typesystem.Any}, true
	}
	if sym, ok := e.Table.Lookup(name); ok {
		return sym.Type, true
	}
	return typesystem.Any, false
}
