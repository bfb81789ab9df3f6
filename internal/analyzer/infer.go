package analyzer

import (
	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/typesystem"
)

// inferExpression implements the inference rules of spec.md §4.5 and
// annotates the node's InferredType slot as it goes (spec.md §4.3: the
// emitter treats the slot as optional, but the checker always fills it
// when inference succeeds).
func (a *Analyzer) inferExpression(expr ast.Expression) typesystem.Type {
	t := a.infer(expr)
	expr.SetInferredType(t)
	a.TypeMap[expr] = t
	return t
}

func (a *Analyzer) infer(expr ast.Expression) typesystem.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return typesystem.Int
	case *ast.DoubleLiteral:
		return typesystem.Double
	case *ast.StringLiteral:
		return typesystem.Str
	case *ast.BooleanLiteral:
		return typesystem.Boolean
	case *ast.Identifier:
		return a.inferIdentifier(e)
	case *ast.ThisExpression:
		if t, ok := a.Table.Resolve("this"); ok {
			return t
		}
		a.errorf(diagnostics.Type, "T040", e.Location, "'this' used outside of a method, constructor or extension body")
		return typesystem.Any
	case *ast.BinaryExpression:
		return a.inferBinary(e)
	case *ast.UnaryExpression:
		return a.inferUnary(e)
	case *ast.IfExpression:
		return a.inferIf(e)
	case *ast.WhileExpression:
		a.requireBoolean(e.Condition, "T041")
		a.inferExpression(e.Body)
		return typesystem.Unit
	case *ast.BlockExpression:
		return a.inferBlock(e)
	case *ast.ListLiteral:
		return a.inferListLiteral(e)
	case *ast.MapLiteral:
		return a.inferMapLiteral(e)
	case *ast.Lambda:
		return a.inferLambda(e)
	case *ast.CallExpression:
		return a.inferCall(e)
	case *ast.FieldAccess:
		return a.inferFieldAccess(e)
	case *ast.AssignExpression:
		return a.inferAssign(e)
	default:
		a.errorf(diagnostics.Type, "T042", expr.Loc(), "unsupported expression %T", expr)
		return typesystem.Any
	}
}

func (a *Analyzer) inferIdentifier(e *ast.Identifier) typesystem.Type {
	if t, ok := a.Table.Resolve(e.Name); ok {
		return t
	}
	a.errorf(diagnostics.Type, "T043", e.Location, "undefined: %s", e.Name)
	return typesystem.Any
}

func (a *Analyzer) requireBoolean(expr ast.Expression, code string) {
	t := a.inferExpression(expr)
	if !typesystem.Subtype(t, typesystem.Boolean, a.Table) {
		a.errorf(diagnostics.Type, code, expr.Loc(), "expected Boolean, got %s", t)
	}
}

func isNumeric(t typesystem.Type) bool {
	return t == typesystem.Int || t == typesystem.Double
}

func (a *Analyzer) inferBinary(e *ast.BinaryExpression) typesystem.Type {
	left := a.inferExpression(e.Left)
	right := a.inferExpression(e.Right)
	switch e.Op {
	case "+", "-", "*", "/", "%":
		if e.Op == "+" && (left == typesystem.Str || right == typesystem.Str) {
			return typesystem.Str
		}
		if left == typesystem.Int && right == typesystem.Int {
			return typesystem.Int
		}
		if isNumeric(left) && isNumeric(right) {
			return typesystem.Double
		}
		a.errorf(diagnostics.Type, "T050", e.Location, "operator %s requires numeric operands, got %s and %s", e.Op, left, right)
		return typesystem.Int
	case "==", "!=", "<", ">", "<=", ">=":
		if !typesystem.Subtype(left, right, a.Table) && !typesystem.Subtype(right, left, a.Table) {
			a.errorf(diagnostics.Type, "T051", e.Location, "operands of %s are not comparable: %s and %s", e.Op, left, right)
		}
		return typesystem.Boolean
	case "&&", "||":
		if left != typesystem.Boolean || right != typesystem.Boolean {
			a.errorf(diagnostics.Type, "T052", e.Location, "operator %s requires Boolean operands, got %s and %s", e.Op, left, right)
		}
		return typesystem.Boolean
	default:
		a.errorf(diagnostics.Type, "T053", e.Location, "unknown binary operator %q", e.Op)
		return typesystem.Any
	}
}

func (a *Analyzer) inferUnary(e *ast.UnaryExpression) typesystem.Type {
	operand := a.inferExpression(e.Operand)
	switch e.Op {
	case "!":
		if operand != typesystem.Boolean {
			a.errorf(diagnostics.Type, "T054", e.Location, "unary ! requires a Boolean operand, got %s", operand)
		}
		return typesystem.Boolean
	case "-", "+":
		if !isNumeric(operand) {
			a.errorf(diagnostics.Type, "T055", e.Location, "unary %s requires a numeric operand, got %s", e.Op, operand)
		}
		return operand
	default:
		a.errorf(diagnostics.Type, "T056", e.Location, "unknown unary operator %q", e.Op)
		return typesystem.Any
	}
}

func (a *Analyzer) inferIf(e *ast.IfExpression) typesystem.Type {
	a.requireBoolean(e.Condition, "T057")
	thenType := a.inferExpression(e.Then)
	if e.Else == nil {
		return typesystem.Unit
	}
	elseType := a.inferExpression(e.Else)
	unified, ok := typesystem.Unify(thenType, elseType, a.Table)
	if !ok {
		a.errorf(diagnostics.Type, "T058", e.Location, "branches of if have incompatible types %s and %s", thenType, elseType)
		return typesystem.Any
	}
	return unified
}

func (a *Analyzer) inferBlock(e *ast.BlockExpression) typesystem.Type {
	a.Table.PushScope()
	defer a.Table.PopScope()
	result := typesystem.Type(typesystem.Unit)
	for _, stmt := range e.Statements {
		result = a.inferStatement(stmt)
	}
	return result
}

func (a *Analyzer) inferStatement(stmt ast.Statement) typesystem.Type {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return a.inferExpression(s.Expr)
	case *ast.VarDeclaration:
		a.inferVarDeclaration(s)
		return typesystem.Unit
	case *ast.ReturnStatement:
		if s.Value != nil {
			a.inferExpression(s.Value)
		}
		return typesystem.Unit
	default:
		a.errorf(diagnostics.Type, "T059", stmt.Loc(), "unsupported statement %T", stmt)
		return typesystem.Unit
	}
}

func (a *Analyzer) inferVarDeclaration(s *ast.VarDeclaration) {
	var declared typesystem.Type
	if s.Annotation != nil {
		declared = a.resolveType(s.Annotation)
	}
	var initType typesystem.Type
	if s.Initializer != nil {
		initType = a.inferExpression(s.Initializer)
	} else {
		initType = typesystem.NewTypeVar(s.Name)
	}
	if declared != nil {
		if s.Initializer != nil && !typesystem.Subtype(initType, declared, a.Table) {
			a.errorf(diagnostics.Type, "T060", s.Location, "initializer of %q has type %s, not a subtype of declared type %s", s.Name, initType, declared)
		}
		a.Table.Bind(s.Name, declared)
		return
	}
	a.Table.Bind(s.Name, initType)
}

func (a *Analyzer) inferListLiteral(e *ast.ListLiteral) typesystem.Type {
	if len(e.Elements) == 0 {
		return typesystem.ListType{Elem: typesystem.NewTypeVar("elem")}
	}
	elem := a.inferExpression(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := a.inferExpression(el)
		unified, ok := typesystem.Unify(elem, t, a.Table)
		if !ok {
			a.errorf(diagnostics.Type, "T061", el.Loc(), "list element type %s incompatible with preceding elements' type %s", t, elem)
			continue
		}
		elem = unified
	}
	return typesystem.ListType{Elem: elem}
}

func (a *Analyzer) inferMapLiteral(e *ast.MapLiteral) typesystem.Type {
	if len(e.Entries) == 0 {
		return typesystem.MapType{Key: typesystem.NewTypeVar("key"), Value: typesystem.NewTypeVar("value")}
	}
	keyType := a.inferExpression(e.Entries[0].Key)
	valType := a.inferExpression(e.Entries[0].Value)
	for _, entry := range e.Entries[1:] {
		k := a.inferExpression(entry.Key)
		v := a.inferExpression(entry.Value)
		if unified, ok := typesystem.Unify(keyType, k, a.Table); ok {
			keyType = unified
		}
		if unified, ok := typesystem.Unify(valType, v, a.Table); ok {
			valType = unified
		}
	}
	return typesystem.MapType{Key: keyType, Value: valType}
}

func (a *Analyzer) inferLambda(e *ast.Lambda) typesystem.Type {
	a.Table.PushScope()
	defer a.Table.PopScope()
	params := make([]typesystem.Type, len(e.Parameters))
	for i, p := range e.Parameters {
		var pt typesystem.Type
		if p.Annotation != nil {
			pt = a.resolveType(p.Annotation)
		} else {
			pt = typesystem.NewTypeVar(p.Name)
		}
		params[i] = pt
		a.Table.Bind(p.Name, pt)
	}
	bodyType := a.inferExpression(e.Body)
	return typesystem.FuncType{Params: params, Return: bodyType}
}

func (a *Analyzer) inferFieldAccess(e *ast.FieldAccess) typesystem.Type {
	receiver := a.inferExpression(e.Receiver)
	if t, ok := lookupMember(receiver, e.Name); ok {
		return t
	}
	a.errorf(diagnostics.Type, "T062", e.Location, "%s has no member %q", receiver, e.Name)
	return typesystem.Any
}

func (a *Analyzer) inferAssign(e *ast.AssignExpression) typesystem.Type {
	switch e.Target.(type) {
	case *ast.Identifier, *ast.FieldAccess:
	default:
		a.errorf(diagnostics.Compile, "C001", e.Location, "assignment to a non-l-value")
		return typesystem.Unit
	}
	targetType := a.inferExpression(e.Target)
	valueType := a.inferExpression(e.Value)
	if !typesystem.Subtype(valueType, targetType, a.Table) {
		a.errorf(diagnostics.Type, "T063", e.Location, "cannot assign %s to target of type %s", valueType, targetType)
	}
	return typesystem.Unit
}
