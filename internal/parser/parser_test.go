package parser

import (
	"testing"

	"github.com/funvibe/funxyc/internal/ast"
)

func parseOk(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := FromSource(src, "test.funxy")
	prog := p.ParseProgram()
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	return prog
}

func TestParseAddFunction(t *testing.T) {
	prog := parseOk(t, `fun add(x: Int, y: Int): Int { x + y }`)
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Declarations))
	}
	fn, ok := prog.Declarations[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", prog.Declarations[0])
	}
	if fn.Name != "add" || len(fn.Parameters) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if fn.ReturnType == nil {
		t.Fatalf("expected a return type annotation")
	}
	body := fn.Body.Statements
	if len(body) != 1 {
		t.Fatalf("expected single-statement body, got %d", len(body))
	}
}

func TestParseFactorialIfElse(t *testing.T) {
	prog := parseOk(t, `fun factorial(n: Int): Int { if (n <= 1) { 1 } else { n * factorial(n - 1) } }`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	ifExpr, ok := stmt.Expr.(*ast.IfExpression)
	if !ok {
		t.Fatalf("expected IfExpression, got %T", stmt.Expr)
	}
	if ifExpr.Else == nil {
		t.Fatalf("expected an else branch")
	}
}

func TestParseClassWithConstructorAndMethods(t *testing.T) {
	prog := parseOk(t, `class Point(x: Int, y: Int) { fun getX(): Int { x } fun getY(): Int { y } }`)
	cls := prog.Declarations[0].(*ast.ClassDeclaration)
	if cls.Name != "Point" {
		t.Fatalf("expected class Point, got %s", cls.Name)
	}
	if cls.Constructor == nil || len(cls.Constructor.Parameters) != 2 {
		t.Fatalf("expected a 2-parameter constructor, got %+v", cls.Constructor)
	}
	if len(cls.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cls.Methods))
	}
}

func TestParseObjectSingleton(t *testing.T) {
	prog := parseOk(t, `object Math { fun pi(): Double { 3.14159 } fun square(x: Int): Int { x * x } }`)
	obj := prog.Declarations[0].(*ast.ObjectDeclaration)
	if obj.Name != "Math" || len(obj.Methods) != 2 {
		t.Fatalf("unexpected object shape: %+v", obj)
	}
}

func TestParseExtension(t *testing.T) {
	prog := parseOk(t, `extension Int { fun isEven(): Boolean { this % 2 == 0 } fun double(): Int { this * 2 } }`)
	ext := prog.Declarations[0].(*ast.ExtensionDeclaration)
	if len(ext.Methods) != 2 {
		t.Fatalf("expected 2 extension methods, got %d", len(ext.Methods))
	}
	simple, ok := ext.Target.(*ast.SimpleType)
	if !ok || simple.Name != "Int" {
		t.Fatalf("expected extension target Int, got %+v", ext.Target)
	}
}

func TestParseFunctionTypeParameterAndLambdaCall(t *testing.T) {
	prog := parseOk(t, `fun twice(f: Int => Int, x: Int): Int { f(f(x)) }`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	fnType, ok := fn.Parameters[0].Annotation.(*ast.FunctionType)
	if !ok {
		t.Fatalf("expected FunctionType annotation, got %T", fn.Parameters[0].Annotation)
	}
	if len(fnType.Params) != 1 {
		t.Fatalf("expected the single-parameter shorthand to normalize to one param, got %d", len(fnType.Params))
	}
}

func TestParseParenthesizedLambdaArgument(t *testing.T) {
	prog := parseOk(t, `fun main(): Int { twice((x: Int) => x * 2, 3) }`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected CallExpression, got %T", stmt.Expr)
	}
	if call.Name != "apply" {
		t.Fatalf("expected bare call to normalize to method name apply, got %q", call.Name)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Args))
	}
	if _, ok := call.Args[0].(*ast.Lambda); !ok {
		t.Fatalf("expected first argument to be a Lambda, got %T", call.Args[0])
	}
}

func TestParseTrailingLambdaOnIdentifier(t *testing.T) {
	prog := parseOk(t, `fun main(): Unit { run { x => x } }`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected the trailing lambda to sugar to a call, got %T", stmt.Expr)
	}
	if len(call.Args) != 1 {
		t.Fatalf("expected a single lambda argument, got %d", len(call.Args))
	}
}

func TestParseMapLiteralVsBlockDisambiguation(t *testing.T) {
	prog := parseOk(t, `fun main(): Unit { val m = {"a": 1, "b": 2} val b = { 1 } }`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	first := fn.Body.Statements[0].(*ast.VarDeclaration)
	if _, ok := first.Initializer.(*ast.MapLiteral); !ok {
		t.Fatalf("expected a MapLiteral initializer, got %T", first.Initializer)
	}
	second := fn.Body.Statements[1].(*ast.VarDeclaration)
	if _, ok := second.Initializer.(*ast.BlockExpression); !ok {
		t.Fatalf("expected a BlockExpression initializer, got %T", second.Initializer)
	}
}

func TestParseLongestOperatorNotDoubleAssign(t *testing.T) {
	prog := parseOk(t, `fun main(): Boolean { 1 == 1 }`)
	fn := prog.Declarations[0].(*ast.FunctionDeclaration)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	bin, ok := stmt.Expr.(*ast.BinaryExpression)
	if !ok || bin.Op != "==" {
		t.Fatalf("expected a single == BinaryExpression, got %+v", stmt.Expr)
	}
}

func TestParseMatchIsRejected(t *testing.T) {
	p := FromSource(`fun main(): Int { match (1) { case 1 => 2 } }`, "test.funxy")
	p.ParseProgram()
	if len(p.Errors) == 0 {
		t.Fatalf("expected match/case to be rejected as unsupported")
	}
	if p.Errors[0].Code != "P010" {
		t.Fatalf("expected error code P010, got %s", p.Errors[0].Code)
	}
}

func TestParseTraitWithAbstractAndConcreteMethods(t *testing.T) {
	prog := parseOk(t, `trait Shape { def area(): Double fun name(): String { "shape" } }`)
	tr := prog.Declarations[0].(*ast.TraitDeclaration)
	if len(tr.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(tr.Methods))
	}
	if !tr.Methods[0].IsAbstract {
		t.Fatalf("expected first method to be abstract")
	}
	if tr.Methods[0].Body != nil {
		t.Fatalf("expected abstract method to carry no body")
	}
	if tr.Methods[1].IsAbstract {
		t.Fatalf("expected second method to be concrete")
	}
}

func TestParseUndefinedVariableStillParses(t *testing.T) {
	// Parsing never rejects undefined names; that is the analyzer's job
	// (spec.md §8 scenario 7).
	prog := parseOk(t, `fun broken(x: Int): Int { undefined_variable + x }`)
	if len(prog.Declarations) != 1 {
		t.Fatalf("expected broken to parse cleanly")
	}
}
