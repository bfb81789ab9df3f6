package analyzer

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// Check runs the check pass (spec.md §4.5 step 2) over every
// declaration, in source order (spec.md §5: "the emitter walks
// declarations in source order"; checking follows the same order, the
// collection pass having already made every signature visible).
func (a *Analyzer) Check(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		a.checkDeclaration(decl)
	}
}

func (a *Analyzer) checkDeclaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		a.checkFunction(d)
	case *ast.ClassDeclaration:
		a.checkClass(d)
	case *ast.TraitDeclaration:
		a.checkTrait(d)
	case *ast.ObjectDeclaration:
		a.checkObject(d)
	case *ast.ExtensionDeclaration:
		a.checkExtension(d)
	}
}

// checkFunction binds type parameters as fresh type variables, resolves
// parameters and body, and validates the body against an explicit
// return type if given (spec.md §4.5).
func (a *Analyzer) checkFunction(d *ast.FunctionDeclaration) {
	sym, _ := a.Table.Lookup(d.Name)
	fn := sym.Type.(typesystem.FuncType)

	a.Table.PushScope()
	defer a.Table.PopScope()
	a.bindTypeParams(d.TypeParams)
	for i, p := range d.Parameters {
		a.Table.Bind(p.Name, fn.Params[i])
	}
	if d.Body == nil {
		return
	}
	bodyType := a.inferExpression(d.Body)
	if d.ReturnType != nil {
		if !typesystem.Subtype(bodyType, fn.Return, a.Table) {
			a.errorf(diagnostics.Type, "T030", d.Body.Loc(), "body of %q has type %s, not a subtype of declared return type %s", d.Name, bodyType, fn.Return)
		}
	}
}

// bindTypeParams introduces each declared type parameter as a fresh
// type variable in the current scope, so uses of the parameter name
// inside the body resolve via resolveSimpleName's Table.Resolve branch.
func (a *Analyzer) bindTypeParams(tps []*ast.TypeParameter) {
	for _, tp := range tps {
		a.Table.Bind(tp.Name, typesystem.NewTypeVar(tp.Name))
	}
}

func (a *Analyzer) checkClass(d *ast.ClassDeclaration) {
	sym, _ := a.Table.Lookup(d.Name)
	named := sym.Type.(*typesystem.NamedType)

	a.Table.PushScope()
	defer a.Table.PopScope()
	a.bindTypeParams(d.TypeParams)
	a.Table.Bind("this", named)
	if d.Constructor != nil {
		for _, p := range d.Constructor.Parameters {
			a.Table.Bind(p.Name, named.Members[p.Name])
		}
	}
	for name, ty := range named.Members {
		a.Table.Bind(name, ty)
	}
	for _, f := range d.Fields {
		if f.Initializer != nil {
			initType := a.inferExpression(f.Initializer)
			declared := named.Members[f.Name]
			if !typesystem.Subtype(initType, declared, a.Table) {
				a.errorf(diagnostics.Type, "T031", f.Initializer.Loc(), "initializer of field %q has type %s, not a subtype of %s", f.Name, initType, declared)
			}
		}
	}
	if d.Constructor != nil && d.Constructor.Body != nil {
		a.inferExpression(d.Constructor.Body)
	}
	for _, m := range d.Methods {
		a.checkMethodBody(m, named)
	}
}

func (a *Analyzer) checkTrait(d *ast.TraitDeclaration) {
	sym, _ := a.Table.Lookup(d.Name)
	named := sym.Type.(*typesystem.NamedType)

	a.Table.PushScope()
	defer a.Table.PopScope()
	a.bindTypeParams(d.TypeParams)
	a.Table.Bind("this", named)
	for name, ty := range named.Members {
		a.Table.Bind(name, ty)
	}
	for _, m := range d.Methods {
		if m.IsAbstract {
			continue
		}
		a.checkMethodBody(m, named)
	}
}

func (a *Analyzer) checkObject(d *ast.ObjectDeclaration) {
	sym, _ := a.Table.Lookup(d.Name)
	named := sym.Type.(*typesystem.NamedType)

	a.Table.PushScope()
	defer a.Table.PopScope()
	a.Table.Bind("this", named)
	for name, ty := range named.Members {
		a.Table.Bind(name, ty)
	}
	for _, f := range d.Fields {
		if f.Initializer != nil {
			initType := a.inferExpression(f.Initializer)
			declared := named.Members[f.Name]
			if !typesystem.Subtype(initType, declared, a.Table) {
				a.errorf(diagnostics.Type, "T032", f.Initializer.Loc(), "initializer of field %q has type %s, not a subtype of %s", f.Name, initType, declared)
			}
		}
	}
	for _, m := range d.Methods {
		a.checkMethodBody(m, named)
	}
}

// checkExtension binds `this` to the target semantic type while
// checking each method (spec.md §4.5).
func (a *Analyzer) checkExtension(d *ast.ExtensionDeclaration) {
	target := a.resolveType(d.Target)
	for _, m := range d.Methods {
		a.Table.PushScope()
		a.Table.Bind("this", target)
		fn := a.lookupExtensionMethodType(target, m.Name)
		for i, p := range m.Parameters {
			a.Table.Bind(p.Name, fn.Params[i])
		}
		if m.Body != nil {
			bodyType := a.inferExpression(m.Body)
			if m.ReturnType != nil && !typesystem.Subtype(bodyType, fn.Return, a.Table) {
				a.errorf(diagnostics.Type, "T033", m.Body.Loc(), "body of extension method %q has type %s, not a subtype of declared return type %s", m.Name, bodyType, fn.Return)
			}
		}
		a.Table.PopScope()
	}
}

func (a *Analyzer) lookupExtensionMethodType(target typesystem.Type, method string) typesystem.FuncType {
	key := extensionKey(target, method)
	if sym, ok := a.Table.Lookup(key); ok {
		return sym.Type.(typesystem.FuncType)
	}
	return typesystem.FuncType{}
}

func (a *Analyzer) checkMethodBody(m *ast.FunctionDeclaration, owner *typesystem.NamedType) {
	if m.Body == nil {
		return
	}
	fn := owner.Members[m.Name].(typesystem.FuncType)
	a.Table.PushScope()
	defer a.Table.PopScope()
	a.bindTypeParams(m.TypeParams)
	for i, p := range m.Parameters {
		a.Table.Bind(p.Name, fn.Params[i])
	}
	bodyType := a.inferExpression(m.Body)
	if m.ReturnType != nil && !typesystem.Subtype(bodyType, fn.Return, a.Table) {
		a.errorf(diagnostics.Type, "T034", m.Body.Loc(), "body of method %q has type %s, not a subtype of declared return type %s", m.Name, bodyType, fn.Return)
	}
}
