package ast

// TypeBase factors the Location every type annotation embeds.
type TypeBase struct {
	Location Location
}

func (t *TypeBase) Loc() Location      { return t.Location }
func (t *TypeBase) typeAnnotationNode() {}

// SimpleType is a bare name reference: `Int`, `Point`, a type parameter name.
type SimpleType struct {
	TypeBase
	Name string
}

func (n *SimpleType) Accept(v Visitor) { v.VisitSimpleType(n) }

// GenericType is `Name<Arg1, Arg2, ...>`.
type GenericType struct {
	TypeBase
	Name string
	Args []TypeAnnotation
}

func (n *GenericType) Accept(v Visitor) { v.VisitGenericType(n) }

// FunctionType is `(P1, P2) => R`; the single-parameter shorthand
// `P => R` (spec.md §4.2) is normalized to this shape with one element
// in Params by the parser, so the analyzer never special-cases it.
type FunctionType struct {
	TypeBase
	Params []TypeAnnotation
	Return TypeAnnotation
}

func (n *FunctionType) Accept(v Visitor) { v.VisitFunctionType(n) }

// StructuralMember is one `name: Type` entry of a StructuralTypeAnnotation.
type StructuralMember struct {
	Name       string
	Annotation TypeAnnotation
}

// StructuralTypeAnnotation is `{ name: Type, ... }`.
type StructuralTypeAnnotation struct {
	TypeBase
	Members []StructuralMember
}

func (n *StructuralTypeAnnotation) Accept(v Visitor) { v.VisitStructuralTypeAnnotation(n) }
