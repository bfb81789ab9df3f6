package emitter

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/classfile"
	"github.com/funvibe/funxyc/internal/config"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// emitTrait lowers a trait declaration to an interface: a `fun` method
// with a body becomes a default method, a `def` signature stays
// abstract (spec.md §4.6).
func (e *Emitter) emitTrait(decl *ast.TraitDeclaration) error {
	sym, ok := e.Table.Lookup(decl.Name)
	if !ok {
		return fmt.Errorf("emitter: %s not registered in symbol table", decl.Name)
	}
	named, ok := sym.Type.(*typesystem.NamedType)
	if !ok {
		return fmt.Errorf("emitter: %s is not a trait symbol", decl.Name)
	}

	owner := internalName(decl.Name)
	cw := classfile.NewClassWriter(e.classMajorVersion(), owner, config.RootSuperclass)
	cw.AccessFlags |= classfile.AccInterface | classfile.AccAbstract
	for _, tr := range named.Traits {
		cw.AddInterface(internalName(tr.Name))
	}

	for _, m := range decl.Methods {
		if m.IsAbstract {
			e.emitAbstractMethod(cw, named, m)
			continue
		}
		e.emitMethod(cw, classfile.AccPublic, owner, named, m)
	}

	e.addArtifact(owner, cw.Bytes())
	return nil
}
