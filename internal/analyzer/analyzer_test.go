package analyzer

import (
	"testing"

	"github.com/funvibe/funxyc/internal/parser"
)

// checkOk parses src, runs both analysis passes, and fails the test if
// any diagnostic was produced.
func checkOk(t *testing.T, src string) *Analyzer {
	t.Helper()
	p := parser.FromSource(src, "test.funxy")
	prog := p.ParseProgram()
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	a := New()
	a.Collect(prog)
	a.Check(prog)
	if len(a.Errors) != 0 {
		t.Fatalf("unexpected type errors: %v", a.Errors)
	}
	return a
}

// checkErr parses src, runs both passes, and fails unless at least one
// reported diagnostic carries the given code.
func checkErr(t *testing.T, src, code string) {
	t.Helper()
	p := parser.FromSource(src, "test.funxy")
	prog := p.ParseProgram()
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors)
	}
	a := New()
	a.Collect(prog)
	a.Check(prog)
	for _, e := range a.Errors {
		if e.Code == code {
			return
		}
	}
	t.Fatalf("expected a %s diagnostic, got %v", code, a.Errors)
}

func TestCheckAddFunction(t *testing.T) {
	checkOk(t, `fun add(x: Int, y: Int): Int { x + y }`)
}

func TestCheckFactorialRecursion(t *testing.T) {
	checkOk(t, `fun factorial(n: Int): Int { if (n <= 1) { 1 } else { n * factorial(n - 1) } }`)
}

func TestCheckPointClassFields(t *testing.T) {
	checkOk(t, `
class Point(x: Int, y: Int) {
	fun getX(): Int { x }
	fun getY(): Int { y }
	fun add(other: Point): Point { Point(x + other.getX(), y + other.getY()) }
}`)
}

func TestCheckMathSingletonObject(t *testing.T) {
	checkOk(t, `
object Math {
	val pi: Double = 3.14159
	fun square(n: Int): Int { n * n }
}`)
}

func TestCheckIntExtension(t *testing.T) {
	checkOk(t, `
extension Int {
	fun doubled(): Int { this + this }
}
fun useIt(n: Int): Int { n.doubled() }`)
}

func TestCheckLambdaAndHigherOrderCall(t *testing.T) {
	checkOk(t, `
fun twice(f: Int => Int, x: Int): Int { f(f(x)) }
fun run(): Int { twice((n: Int) => n + 1, 0) }`)
}

func TestCheckTraitWithAbstractMethod(t *testing.T) {
	checkOk(t, `
trait Shape {
	def area(): Double
}
class Circle(r: Double) {
	fun area(): Double { r * r }
}`)
}

func TestCheckUndefinedVariableRejected(t *testing.T) {
	checkErr(t, `fun broken(): Int { missing + 1 }`, "T043")
}

func TestCheckWrongArgumentCountRejected(t *testing.T) {
	checkErr(t, `
fun add(x: Int, y: Int): Int { x + y }
fun call(): Int { add(1) }`, "T071")
}

func TestCheckMismatchedReturnTypeRejected(t *testing.T) {
	checkErr(t, `fun bad(): String { 1 + 2 }`, "T030")
}

func TestCheckListLiteralElementUnification(t *testing.T) {
	a := checkOk(t, `fun makeList(): List<Int> { [1, 2, 3] }`)
	if len(a.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", a.Errors)
	}
}

func TestCheckAssignToNonLValueRejected(t *testing.T) {
	checkErr(t, `fun broken(): Unit { 1 + 1 = 2 }`, "C001")
}
