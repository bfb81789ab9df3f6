package ast

// IntegerLiteral is an integer literal expression.
type IntegerLiteral struct {
	ExprBase
	Value int64
}

func (n *IntegerLiteral) Accept(v Visitor) { v.VisitIntegerLiteral(n) }

// DoubleLiteral is a floating-point literal expression.
type DoubleLiteral struct {
	ExprBase
	Value float64
}

func (n *DoubleLiteral) Accept(v Visitor) { v.VisitDoubleLiteral(n) }

// StringLiteral carries both the decoded value and the raw source text.
type StringLiteral struct {
	ExprBase
	Value string
	Raw   string
}

func (n *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(n) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	ExprBase
	Value bool
}

func (n *BooleanLiteral) Accept(v Visitor) { v.VisitBooleanLiteral(n) }

// Identifier references a binding by name.
type Identifier struct {
	ExprBase
	Name string
}

func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }

// ThisExpression is `this` inside a method, constructor or extension body.
type ThisExpression struct {
	ExprBase
}

func (n *ThisExpression) Accept(v Visitor) { v.VisitThisExpression(n) }

// BinaryExpression is `left op right`.
type BinaryExpression struct {
	ExprBase
	Op    string
	Left  Expression
	Right Expression
}

func (n *BinaryExpression) Accept(v Visitor) { v.VisitBinaryExpression(n) }

// UnaryExpression is `op operand` (prefix `! - +`).
type UnaryExpression struct {
	ExprBase
	Op      string
	Operand Expression
}

func (n *UnaryExpression) Accept(v Visitor) { v.VisitUnaryExpression(n) }

// CallExpression is a method call. Receiver is never nil: the
// surface form `f(args)` is parsed uniformly with Receiver=f and
// Name="apply" (spec.md §4.2's "call and function-value invocation"
// rule) so later stages can recognise the direct-call-vs-function-value
// pattern by inspecting Name.
type CallExpression struct {
	ExprBase
	Receiver Expression // the callee itself for an unqualified call f(args)
	Name     string
	Args     []Expression
	TypeArgs []TypeAnnotation
}

func (n *CallExpression) Accept(v Visitor) { v.VisitCallExpression(n) }

// FieldAccess is `receiver.name` read as a value (not followed by a call).
type FieldAccess struct {
	ExprBase
	Receiver Expression
	Name     string
}

func (n *FieldAccess) Accept(v Visitor) { v.VisitFieldAccess(n) }

// AssignExpression is `target = value`.
type AssignExpression struct {
	ExprBase
	Target Expression
	Value  Expression
}

func (n *AssignExpression) Accept(v Visitor) { v.VisitAssignExpression(n) }

// BlockExpression is a brace-enclosed statement sequence; its value is
// the last statement's value (spec.md §4.2).
type BlockExpression struct {
	ExprBase
	Statements []Statement
}

func (n *BlockExpression) Accept(v Visitor) { v.VisitBlockExpression(n) }

// IfExpression is `if (cond) then [else else]`.
type IfExpression struct {
	ExprBase
	Condition Expression
	Then      Expression
	Else      Expression // nil if absent
}

func (n *IfExpression) Accept(v Visitor) { v.VisitIfExpression(n) }

// WhileExpression is `while (cond) body`; always evaluates to Unit.
type WhileExpression struct {
	ExprBase
	Condition Expression
	Body      Expression
}

func (n *WhileExpression) Accept(v Visitor) { v.VisitWhileExpression(n) }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	ExprBase
	Elements []Expression
}

func (n *ListLiteral) Accept(v Visitor) { v.VisitListLiteral(n) }

// MapEntry is one `key: value` pair of a MapLiteral.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapLiteral is a map literal `{k1: v1, k2: v2}` in expression position
// (distinct from the structural *type* annotation syntax, which never
// appears as an expression).
type MapLiteral struct {
	ExprBase
	Entries []MapEntry
}

func (n *MapLiteral) Accept(v Visitor) { v.VisitMapLiteral(n) }

// Lambda is `(params) => body` or the trailing-lambda sugar `{ params => body }`.
type Lambda struct {
	ExprBase
	Parameters []*Parameter
	Body       Expression
}

func (n *Lambda) Accept(v Visitor) { v.VisitLambda(n) }
