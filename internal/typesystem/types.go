// Package typesystem represents semantic types and implements the
// subtype relation, declaration-site variance and structural
// compatibility described in spec.md §4.4.
package typesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Type is the interface implemented by every semantic type.
type Type interface {
	String() string
}

// Variance is a per-type-parameter attribute controlling how the
// subtype relation lifts through that parameter's position.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "+"
	case Contravariant:
		return "-"
	default:
		return ""
	}
}

// --- Primitive singletons -------------------------------------------------

type primitive struct{ name string }

func (p primitive) String() string { return p.name }

var (
	Int     Type = primitive{"Int"}
	Double  Type = primitive{"Double"}
	Str     Type = primitive{"String"}
	Boolean Type = primitive{"Boolean"}
	Unit    Type = primitive{"Unit"}
	Any     Type = primitive{"Any"}
	Nothing Type = primitive{"Nothing"}
	Null    Type = primitive{"Null"}
)

func isPrimitive(t Type) bool {
	_, ok := t.(primitive)
	return ok
}

// --- Collections -----------------------------------------------------------

type ListType struct{ Elem Type }

func (l ListType) String() string { return fmt.Sprintf("List<%s>", l.Elem) }

type SetType struct{ Elem Type }

func (s SetType) String() string { return fmt.Sprintf("Set<%s>", s.Elem) }

type MapType struct{ Key, Value Type }

func (m MapType) String() string { return fmt.Sprintf("Map<%s, %s>", m.Key, m.Value) }

// --- Function ---------------------------------------------------------------

type FuncType struct {
	Params []Type
	Return Type
}

func (f FuncType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), f.Return)
}

// --- Structural --------------------------------------------------------------

// StructuralType is an anonymous mapping from member name to member type,
// as produced by `{ name: Type, ... }` annotations.
type StructuralType struct {
	Members map[string]Type
}

func (s StructuralType) String() string {
	names := make([]string, 0, len(s.Members))
	for n := range s.Members {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s: %s", n, s.Members[n])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// --- Type variables ----------------------------------------------------------

// TypeVar is a fresh unknown minted during inference. Id is globally
// unique within one type-checking pass (spec.md §3 invariant); backed
// by uuid.New() rather than a bare counter so ids stay unique even
// across the module's analyzed-in-any-order imports.
type TypeVar struct {
	Name string
	Id   string
}

func (v TypeVar) String() string { return v.Name }

// NewTypeVar mints a fresh type variable named after hint (e.g. "t" for
// inferred locals, "ret" for inferred return types).
func NewTypeVar(hint string) TypeVar {
	return TypeVar{Name: hint, Id: uuid.NewString()}
}

// --- Named types: class / trait / object ------------------------------------

type NamedKind int

const (
	ClassKind NamedKind = iota
	TraitKind
	ObjectKind
)

// TypeParameter is a declared generic parameter with its variance and
// optional bounds (spec.md §4.4).
type TypeParameter struct {
	Name     string
	Variance Variance
	Upper    Type // optional upper bound (<:), nil if absent
	Lower    Type // optional lower bound (>:), nil if absent
}

// NamedType represents a class, trait, or object's semantic type: a
// name, resolved type arguments, an optional super type, declared
// traits, and a member map (spec.md §3).
type NamedType struct {
	Kind       NamedKind
	Name       string
	TypeArgs   []Type
	Super      *NamedType
	Traits     []*NamedType
	Members    map[string]Type
	TypeParams []TypeParameter // only populated on the generic definition itself
}

func (n *NamedType) String() string {
	if len(n.TypeArgs) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.TypeArgs))
	for i, a := range n.TypeArgs {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(parts, ", "))
}

// GenericDef is the type-level declaration registered once per
// generic class/trait/object/type-alias declaration (spec.md §3).
type GenericDef struct {
	Name       string
	TypeParams []TypeParameter
	Base       *NamedType
}
