package ast

// StmtBase factors the Location every statement embeds.
type StmtBase struct {
	Location Location
}

func (s *StmtBase) Loc() Location  { return s.Location }
func (s *StmtBase) statementNode() {}

// ExpressionStatement wraps an expression used for its side effect.
type ExpressionStatement struct {
	StmtBase
	Expr Expression
}

func (n *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(n) }

// VarDeclaration is `val`/`var name[: Type] [= initializer]`.
// Mutable distinguishes `var` (true) from `val` (false).
type VarDeclaration struct {
	StmtBase
	Name        string
	Annotation  TypeAnnotation // nil if omitted; local variable annotations may be absent (spec.md §3)
	Initializer Expression     // nil if omitted
	Mutable     bool
}

func (n *VarDeclaration) Accept(v Visitor) { v.VisitVarDeclaration(n) }

// ReturnStatement is `return [value]`.
type ReturnStatement struct {
	StmtBase
	Value Expression // nil if bare `return`
}

func (n *ReturnStatement) Accept(v Visitor) { v.VisitReturnStatement(n) }
