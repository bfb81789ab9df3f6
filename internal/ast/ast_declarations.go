package ast

// DeclBase factors the Location every declaration embeds.
type DeclBase struct {
	Location Location
}

func (d *DeclBase) Loc() Location    { return d.Location }
func (d *DeclBase) declarationNode() {}

// Parameter is a function/lambda/constructor parameter. Default is
// reserved and never set by the parser; no parameter list in the
// grammar carries defaults. Annotation is required on every top-level function
// parameter and optional on every lambda parameter (spec.md §3).
type Parameter struct {
	Location   Location
	Name       string
	Annotation TypeAnnotation // nil for an unannotated lambda parameter
	Default    Expression     // nil; reserved, never populated by the parser
}

// Variance is the surface spelling of a type parameter's declaration-
// site variance marker: "+", "-", or "" (invariant).
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// TypeParameter is a declared generic parameter with optional bounds.
type TypeParameter struct {
	Location Location
	Name     string
	Variance Variance
	Upper    TypeAnnotation // `<: Bound`, nil if absent
	Lower    TypeAnnotation // `>: Bound`, nil if absent
}

// Constructor is a class's primary constructor: its parameter list
// (each parameter becomes a private-final field, spec.md §4.6) plus an
// optional body run after field initialization.
type Constructor struct {
	Parameters []*Parameter
	Body       *BlockExpression // nil if the class has no constructor body
}

// FunctionDeclaration is `fun name<T...>(params): R { body }`, used
// both at the top level and as a concrete class/trait/object method.
type FunctionDeclaration struct {
	DeclBase
	Name       string
	TypeParams []*TypeParameter
	Parameters []*Parameter
	ReturnType TypeAnnotation // nil if omitted; a fresh return type variable is introduced (spec.md §4.5)
	Body       *BlockExpression
	IsAbstract bool // true for a trait's `def` signature (no Body)
}

func (n *FunctionDeclaration) Accept(v Visitor) { v.VisitFunctionDeclaration(n) }

// FieldDeclaration is a class body field; every field must carry an
// annotation (spec.md §3 invariant). Mutability follows the same
// val/var distinction as VarDeclaration and determines whether the
// emitter marks the backing field `final` (spec.md §4.6).
type FieldDeclaration struct {
	DeclBase
	Name        string
	Annotation  TypeAnnotation
	Initializer Expression
	Mutable     bool
}

func (n *FieldDeclaration) Accept(v Visitor) { v.VisitFieldDeclaration(n) }

// ClassDeclaration is `class Name<T...>(ctor params) extends Super with Trait1, Trait2 { members }`.
type ClassDeclaration struct {
	DeclBase
	Name        string
	TypeParams  []*TypeParameter
	Super       TypeAnnotation // nil if absent (implies the universal root)
	Traits      []TypeAnnotation
	Constructor *Constructor // nil if the class declares no constructor parameters
	Methods     []*FunctionDeclaration
	Fields      []*FieldDeclaration
}

func (n *ClassDeclaration) Accept(v Visitor) { v.VisitClassDeclaration(n) }

// TraitDeclaration is `trait Name<T...> extends Super1, Super2 { members }`.
// Members are either concrete (`fun`, IsAbstract=false) or abstract
// signatures (`def`, IsAbstract=true, Body=nil).
type TraitDeclaration struct {
	DeclBase
	Name        string
	TypeParams  []*TypeParameter
	SuperTraits []TypeAnnotation
	Methods     []*FunctionDeclaration
}

func (n *TraitDeclaration) Accept(v Visitor) { v.VisitTraitDeclaration(n) }

// ObjectDeclaration is a singleton: `object Name extends Super with Trait { members }`.
type ObjectDeclaration struct {
	DeclBase
	Name    string
	Super   TypeAnnotation
	Traits  []TypeAnnotation
	Methods []*FunctionDeclaration
	Fields  []*FieldDeclaration
}

func (n *ObjectDeclaration) Accept(v Visitor) { v.VisitObjectDeclaration(n) }

// ExtensionDeclaration is `extension TargetAnnotation { methods }`,
// lowered to static methods on a `<Target>$Extension` carrier class
// (spec.md §4.6).
type ExtensionDeclaration struct {
	DeclBase
	Target  TypeAnnotation
	Methods []*FunctionDeclaration
}

func (n *ExtensionDeclaration) Accept(v Visitor) { v.VisitExtensionDeclaration(n) }
