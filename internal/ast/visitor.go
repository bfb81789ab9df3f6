package ast

// Visitor is implemented by every consumer that walks the AST (the
// analyzer and the emitter). Using an explicit double-dispatch visitor
// over a closed set of node types, rather than open interface
// inheritance, keeps every node family exhaustively matchable
// (spec.md §9 design note).
type Visitor interface {
	VisitProgram(n *Program)

	VisitIntegerLiteral(n *IntegerLiteral)
	VisitDoubleLiteral(n *DoubleLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitIdentifier(n *Identifier)
	VisitThisExpression(n *ThisExpression)
	VisitBinaryExpression(n *BinaryExpression)
	VisitUnaryExpression(n *UnaryExpression)
	VisitCallExpression(n *CallExpression)
	VisitFieldAccess(n *FieldAccess)
	VisitAssignExpression(n *AssignExpression)
	VisitBlockExpression(n *BlockExpression)
	VisitIfExpression(n *IfExpression)
	VisitWhileExpression(n *WhileExpression)
	VisitListLiteral(n *ListLiteral)
	VisitMapLiteral(n *MapLiteral)
	VisitLambda(n *Lambda)

	VisitExpressionStatement(n *ExpressionStatement)
	VisitVarDeclaration(n *VarDeclaration)
	VisitReturnStatement(n *ReturnStatement)

	VisitFunctionDeclaration(n *FunctionDeclaration)
	VisitFieldDeclaration(n *FieldDeclaration)
	VisitClassDeclaration(n *ClassDeclaration)
	VisitTraitDeclaration(n *TraitDeclaration)
	VisitObjectDeclaration(n *ObjectDeclaration)
	VisitExtensionDeclaration(n *ExtensionDeclaration)

	VisitSimpleType(n *SimpleType)
	VisitGenericType(n *GenericType)
	VisitFunctionType(n *FunctionType)
	VisitStructuralTypeAnnotation(n *StructuralTypeAnnotation)
}
