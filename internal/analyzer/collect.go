package analyzer

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/symbols"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// Collect runs the collection pass (spec.md §4.5 step 1): for every
// top-level declaration it computes a preliminary semantic type and
// binds it into the global table, before any body is checked. This is
// what lets a declaration's body reference a sibling declared later in
// source order (spec.md §5 ordering guarantee, §9 cyclic-reference note).
func (a *Analyzer) Collect(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		a.collectDeclaration(decl)
	}
	for _, decl := range prog.Declarations {
		a.linkSupertypes(decl)
	}
}

// linkSupertypes resolves each class/trait's declared super/traits now
// that every named type in the compilation unit is registered, so a
// supertype declared later in source order still resolves (spec.md §5
// ordering guarantee).
func (a *Analyzer) linkSupertypes(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.ClassDeclaration:
		sym, _ := a.Table.Lookup(d.Name)
		named := sym.Type.(*typesystem.NamedType)
		if d.Super != nil {
			super := a.resolveType(d.Super)
			if sup, ok := super.(*typesystem.NamedType); ok {
				named.Super = sup
			} else {
				a.errorf(diagnostics.Type, "T017", d.Location, "superclass of %q must be a class type", d.Name)
			}
		}
		for _, t := range d.Traits {
			tr := a.resolveType(t)
			if trait, ok := tr.(*typesystem.NamedType); ok {
				named.Traits = append(named.Traits, trait)
			} else {
				a.errorf(diagnostics.Type, "T018", d.Location, "trait of %q must be a trait type", d.Name)
			}
		}
	case *ast.TraitDeclaration:
		sym, _ := a.Table.Lookup(d.Name)
		named := sym.Type.(*typesystem.NamedType)
		for _, t := range d.SuperTraits {
			tr := a.resolveType(t)
			if trait, ok := tr.(*typesystem.NamedType); ok {
				named.Traits = append(named.Traits, trait)
			} else {
				a.errorf(diagnostics.Type, "T019", d.Location, "supertrait of %q must be a trait type", d.Name)
			}
		}
	case *ast.ObjectDeclaration:
		sym, _ := a.Table.Lookup(d.Name)
		named := sym.Type.(*typesystem.NamedType)
		if d.Super != nil {
			super := a.resolveType(d.Super)
			if sup, ok := super.(*typesystem.NamedType); ok {
				named.Super = sup
			} else {
				a.errorf(diagnostics.Type, "T020", d.Location, "superclass of %q must be a class type", d.Name)
			}
		}
		for _, t := range d.Traits {
			tr := a.resolveType(t)
			if trait, ok := tr.(*typesystem.NamedType); ok {
				named.Traits = append(named.Traits, trait)
			} else {
				a.errorf(diagnostics.Type, "T021", d.Location, "trait of %q must be a trait type", d.Name)
			}
		}
	}
}

func (a *Analyzer) collectDeclaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		a.collectFunction(d)
	case *ast.ClassDeclaration:
		a.collectClass(d)
	case *ast.TraitDeclaration:
		a.collectTrait(d)
	case *ast.ObjectDeclaration:
		a.collectObject(d)
	case *ast.ExtensionDeclaration:
		a.collectExtension(d)
	}
}

func (a *Analyzer) declareTop(sym *symbols.Symbol, loc ast.Location) {
	if err := a.Table.Declare(sym); err != nil {
		a.errorf(diagnostics.Type, "T010", loc, "%s", err.Error())
	}
}

func (a *Analyzer) collectFunction(d *ast.FunctionDeclaration) {
	params := make([]typesystem.Type, len(d.Parameters))
	for i, p := range d.Parameters {
		if p.Annotation == nil {
			a.errorf(diagnostics.Type, "T011", p.Location, "parameter %q of top-level function %q requires a type annotation", p.Name, d.Name)
			params[i] = typesystem.Any
			continue
		}
		params[i] = a.resolveType(p.Annotation)
	}
	var ret typesystem.Type
	if d.ReturnType != nil {
		ret = a.resolveType(d.ReturnType)
	} else {
		ret = typesystem.NewTypeVar(d.Name + ".return")
	}
	fn := typesystem.FuncType{Params: params, Return: ret}
	a.declareTop(&symbols.Symbol{Name: d.Name, Kind: symbols.KindFunction, Type: fn, DefinitionNode: d}, d.Location)
}

func (a *Analyzer) namedTypeParams(tps []*ast.TypeParameter) []typesystem.TypeParameter {
	out := make([]typesystem.TypeParameter, len(tps))
	for i, tp := range tps {
		out[i] = typesystem.TypeParameter{
			Name:     tp.Name,
			Variance: astVarianceToTypesystem(tp.Variance),
		}
		if tp.Upper != nil {
			out[i].Upper = a.resolveType(tp.Upper)
		}
		if tp.Lower != nil {
			out[i].Lower = a.resolveType(tp.Lower)
		}
	}
	return out
}

func astVarianceToTypesystem(v ast.Variance) typesystem.Variance {
	switch v {
	case ast.Covariant:
		return typesystem.Covariant
	case ast.Contravariant:
		return typesystem.Contravariant
	default:
		return typesystem.Invariant
	}
}

func (a *Analyzer) collectClass(d *ast.ClassDeclaration) {
	typeParams := a.namedTypeParams(d.TypeParams)
	members := make(map[string]typesystem.Type)
	named := &typesystem.NamedType{Kind: typesystem.ClassKind, Name: d.Name, TypeParams: typeParams, Members: members}
	a.declareTop(&symbols.Symbol{Name: d.Name, Kind: symbols.KindClass, Type: named, DefinitionNode: d}, d.Location)
	if d.Constructor != nil {
		for _, p := range d.Constructor.Parameters {
			if p.Annotation == nil {
				a.errorf(diagnostics.Type, "T012", p.Location, "constructor parameter %q of class %q requires a type annotation", p.Name, d.Name)
				members[p.Name] = typesystem.Any
				continue
			}
			members[p.Name] = a.resolveType(p.Annotation)
		}
	}
	for _, f := range d.Fields {
		if f.Annotation == nil {
			a.errorf(diagnostics.Type, "T013", f.Location, "field %q of class %q requires a type annotation", f.Name, d.Name)
			members[f.Name] = typesystem.Any
			continue
		}
		if _, dup := members[f.Name]; dup {
			a.errorf(diagnostics.Type, "T014", f.Location, "duplicate member %q in class %q", f.Name, d.Name)
		}
		members[f.Name] = a.resolveType(f.Annotation)
	}
	for _, m := range d.Methods {
		if _, dup := members[m.Name]; dup {
			a.errorf(diagnostics.Type, "T014", m.Location, "duplicate member %q in class %q", m.Name, d.Name)
		}
		members[m.Name] = a.methodType(m, d.Name)
	}
	if len(typeParams) > 0 {
		a.Table.DeclareGeneric(&typesystem.GenericDef{Name: d.Name, TypeParams: typeParams, Base: named})
	}
}

func (a *Analyzer) collectTrait(d *ast.TraitDeclaration) {
	typeParams := a.namedTypeParams(d.TypeParams)
	members := make(map[string]typesystem.Type)
	for _, m := range d.Methods {
		members[m.Name] = a.methodType(m, d.Name)
	}
	named := &typesystem.NamedType{Kind: typesystem.TraitKind, Name: d.Name, TypeParams: typeParams, Members: members}
	a.declareTop(&symbols.Symbol{Name: d.Name, Kind: symbols.KindTrait, Type: named, DefinitionNode: d}, d.Location)
	if len(typeParams) > 0 {
		a.Table.DeclareGeneric(&typesystem.GenericDef{Name: d.Name, TypeParams: typeParams, Base: named})
	}
}

func (a *Analyzer) collectObject(d *ast.ObjectDeclaration) {
	members := make(map[string]typesystem.Type)
	for _, f := range d.Fields {
		if f.Annotation == nil {
			a.errorf(diagnostics.Type, "T015", f.Location, "field %q of object %q requires a type annotation", f.Name, d.Name)
			members[f.Name] = typesystem.Any
			continue
		}
		members[f.Name] = a.resolveType(f.Annotation)
	}
	for _, m := range d.Methods {
		members[m.Name] = a.methodType(m, d.Name)
	}
	named := &typesystem.NamedType{Kind: typesystem.ObjectKind, Name: d.Name, Members: members}
	a.declareTop(&symbols.Symbol{Name: d.Name, Kind: symbols.KindObject, Type: named, DefinitionNode: d}, d.Location)
}

// collectExtension registers each extension method as a static function
// on the target type, named "<Target>.<method>" so call resolution can
// find it without mutating the target's own member map (spec.md §4.5:
// "an extension contributes each method as a static function on the
// target type").
func (a *Analyzer) collectExtension(d *ast.ExtensionDeclaration) {
	target := a.resolveType(d.Target)
	for _, m := range d.Methods {
		fn := a.methodType(m, "")
		key := extensionKey(target, m.Name)
		a.declareTop(&symbols.Symbol{Name: key, Kind: symbols.KindExtensionMethod, Type: fn, DefinitionNode: m}, m.Location)
	}
}

func extensionKey(target typesystem.Type, method string) string {
	return "$ext$" + target.String() + "." + method
}

func (a *Analyzer) methodType(m *ast.FunctionDeclaration, ownerName string) typesystem.Type {
	params := make([]typesystem.Type, len(m.Parameters))
	for i, p := range m.Parameters {
		if p.Annotation == nil {
			a.errorf(diagnostics.Type, "T016", p.Location, "parameter %q of method %q requires a type annotation", p.Name, m.Name)
			params[i] = typesystem.Any
			continue
		}
		params[i] = a.resolveType(p.Annotation)
	}
	var ret typesystem.Type
	if m.ReturnType != nil {
		ret = a.resolveType(m.ReturnType)
	} else {
		ret = typesystem.NewTypeVar(ownerName + "." + m.Name + ".return")
	}
	return typesystem.FuncType{Params: params, Return: ret}
}
