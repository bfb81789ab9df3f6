// Package symbols holds the per-compile global name/type context: the
// table the type checker uses to register every top-level declaration
// by name before any body is checked (spec.md §9 design note — "allocate
// names in a preliminary pass... index the global context by name" to
// avoid literal cyclic owning pointers between mutually-referencing
// class/trait/object members).
package symbols

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// Kind classifies a top-level Symbol.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
	KindTrait
	KindObject
	KindExtensionMethod
)

// Symbol is one top-level name binding: a function, a class/trait/object
// type, or an extension method registered as a static function on its
// target type.
type Symbol struct {
	Name           string
	Kind           Kind
	Type           typesystem.Type // FuncType for functions/extension methods; *NamedType for class/trait/object
	DefinitionNode ast.Node
}

// Table is the global context for one compile. It is constructed fresh
// per compile (spec.md §9: "the emitter's table... must be scoped per
// compile invocation — construct a fresh emitter per program"; the
// analyzer follows the same discipline for its symbol table).
type Table struct {
	globals  map[string]*Symbol
	generics map[string]*typesystem.GenericDef
	scopes   []map[string]typesystem.Type // local-variable stack; scopes[0] is the outermost function scope
}

func New() *Table {
	return &Table{
		globals:  make(map[string]*Symbol),
		generics: make(map[string]*typesystem.GenericDef),
	}
}

// Declare registers a top-level symbol. It fails if the name is already
// bound, enforcing spec.md §3's "a declared top-level name is unique
// per compilation unit" invariant.
func (t *Table) Declare(sym *Symbol) error {
	if _, exists := t.globals[sym.Name]; exists {
		return fmt.Errorf("duplicate top-level declaration: %s", sym.Name)
	}
	t.globals[sym.Name] = sym
	return nil
}

// Lookup resolves a top-level name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.globals[name]
	return s, ok
}

// DeclareGeneric registers a class/trait/object's generic definition
// (type parameters + variance) once per declaration, independent of
// the symbol's resolved instance type.
func (t *Table) DeclareGeneric(def *typesystem.GenericDef) {
	t.generics[def.Name] = def
}

// GenericDef implements typesystem.Context.
func (t *Table) GenericDef(name string) (*typesystem.GenericDef, bool) {
	d, ok := t.generics[name]
	return d, ok
}

// PushScope opens a new local-variable scope (a function body, a
// block, a lambda body).
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, make(map[string]typesystem.Type))
}

// PopScope closes the most recently opened local-variable scope.
func (t *Table) PopScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Bind introduces a local binding (parameter, `val`/`var`, lambda
// parameter, or `this`) into the innermost open scope.
func (t *Table) Bind(name string, ty typesystem.Type) {
	t.scopes[len(t.scopes)-1][name] = ty
}

// Resolve looks up a name, searching from the innermost local scope
// outward and finally the global table — so a local shadows a
// same-named top-level declaration.
func (t *Table) Resolve(name string) (typesystem.Type, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if ty, ok := t.scopes[i][name]; ok {
			return ty, true
		}
	}
	if sym, ok := t.globals[name]; ok {
		return sym.Type, true
	}
	return nil, false
}
