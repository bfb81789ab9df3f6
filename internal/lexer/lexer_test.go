package lexer

import (
	"strings"
	"testing"

	"github.com/funvibe/funxyc/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `fun add(x: Int, y: Int): Int { x + y }`
	l := New(input, "basics.lang")

	want := []token.Type{
		token.FUN, token.IDENT, token.LPAREN, token.IDENT, token.COLON, token.INT_TYPE,
		token.COMMA, token.IDENT, token.COLON, token.INT_TYPE, token.RPAREN, token.COLON,
		token.INT_TYPE, token.LBRACE, token.IDENT, token.PLUS, token.IDENT, token.RBRACE, token.EOF,
	}
	for i, wt := range want {
		got := l.NextToken()
		if got.Type != wt {
			t.Fatalf("token %d: got %s, want %s (lexeme %q)", i, got.Type, wt, got.Lexeme)
		}
	}
}

func TestLongestMatchOperators(t *testing.T) {
	cases := []struct {
		input string
		want  token.Type
	}{
		{"<=", token.LTE},
		{"<", token.LT},
		{"==", token.EQ},
		{"=", token.ASSIGN},
		{"=>", token.IMPLY},
		{"->", token.ARROW},
		{"<:", token.SUBTYPE},
		{"&&", token.AND},
		{"||", token.OR},
		{"++", token.CONCAT},
	}
	for _, c := range cases {
		l := New(c.input, "ops.lang")
		got := l.NextToken()
		if got.Type != c.want || got.Lexeme != c.input {
			t.Errorf("input %q: got {%s %q}, want {%s %q}", c.input, got.Type, got.Lexeme, c.want, c.input)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\\d\"e"`, "str.lang")
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	want := "a\nb\tc\\d\"e"
	if tok.Literal != want {
		t.Errorf("got literal %q, want %q", tok.Literal, want)
	}
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	l := New(`"unterminated`, "bad.lang")
	l.NextToken()
	if len(l.Errors) != 1 {
		t.Fatalf("expected exactly one lexical error, got %d", len(l.Errors))
	}
	if l.Errors[0].Code != "L002" {
		t.Errorf("got code %s, want L002", l.Errors[0].Code)
	}
}

func TestUnterminatedBlockCommentIsLexicalError(t *testing.T) {
	l := New("/* never closes", "bad.lang")
	l.NextToken()
	if len(l.Errors) != 1 || l.Errors[0].Code != "L003" {
		t.Fatalf("expected L003 lexical error, got %+v", l.Errors)
	}
}

// TestRoundTripSignificantTokens checks spec.md §8's lexer round-trip
// property: concatenating the raw lexeme text of every non-EOF token
// reproduces the source with its whitespace removed (whitespace itself is
// not tokenised, so the round-trip property here covers significant
// tokens only).
func TestRoundTripSignificantTokens(t *testing.T) {
	input := "val x: Int = 1 + 2"
	l := New(input, "rt.lang")
	var sb strings.Builder
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		sb.WriteString(tok.Lexeme)
	}
	want := strings.ReplaceAll(input, " ", "")
	if sb.String() != want {
		t.Errorf("round trip: got %q, want %q", sb.String(), want)
	}
}

func TestIntegerAndFloatLiterals(t *testing.T) {
	l := New("123 3.14 0", "num.lang")
	tok1 := l.NextToken()
	if tok1.Type != token.INT || tok1.Literal != "123" {
		t.Errorf("got %+v", tok1)
	}
	tok2 := l.NextToken()
	if tok2.Type != token.FLOAT || tok2.Literal != "3.14" {
		t.Errorf("got %+v", tok2)
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	l := New("1 // a comment\n2", "cmt.lang")
	tok1 := l.NextToken()
	if tok1.Type != token.INT {
		t.Fatalf("got %s", tok1.Type)
	}
	nl := l.NextToken()
	if nl.Type != token.NEWLINE {
		t.Fatalf("expected newline after comment, got %s", nl.Type)
	}
	tok2 := l.NextToken()
	if tok2.Type != token.INT || tok2.Literal != "2" {
		t.Errorf("got %+v", tok2)
	}
}
