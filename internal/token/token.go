// Package token defines the lexical token vocabulary of the language.
package token

// Type identifies the lexical category of a Token.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE
	COMMENT

	IDENT
	INT
	FLOAT
	STRING
	TRUE
	FALSE

	// Keywords
	FUN
	CLASS
	TRAIT
	OBJECT
	VAL
	VAR
	DEF
	EXTENSION
	IF
	ELSE
	WHILE
	FOR
	MATCH
	CASE
	TRY
	CATCH
	FINALLY
	IMPORT
	PACKAGE
	EXTENDS
	WITH
	OVERRIDE
	ABSTRACT
	FINAL
	PRIVATE
	PROTECTED
	PUBLIC
	SEALED
	IMPLICIT
	EXPLICIT
	NULL
	THIS
	SUPER
	NEW
	RETURN
	THROW
	INT_TYPE
	DOUBLE_TYPE
	STRING_TYPE
	BOOLEAN_TYPE
	UNIT_TYPE
	ANY_TYPE
	ANYREF_TYPE
	NOTHING_TYPE

	// Operators, longest-match-first in the lexer.
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER // **
	EQ    // ==
	NOT_EQ
	LT
	GT
	LTE
	GTE
	AND // &&
	OR  // ||
	BANG
	ASSIGN // =
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	IMPLY  // =>
	ARROW  // ->
	LARROW // <-
	SUBTYPE // <:
	SUPERTYPE // >:
	DOT
	DOUBLE_COLON // ::
	TRIPLE_COLON // :::
	CONCAT       // ++
	DECR         // --

	// Delimiters
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	COLON
	UNDERSCORE
)

var keywords = map[string]Type{
	"fun":       FUN,
	"class":     CLASS,
	"trait":     TRAIT,
	"object":    OBJECT,
	"val":       VAL,
	"var":       VAR,
	"def":       DEF,
	"extension": EXTENSION,
	"if":        IF,
	"else":      ELSE,
	"while":     WHILE,
	"for":       FOR,
	"match":     MATCH,
	"case":      CASE,
	"try":       TRY,
	"catch":     CATCH,
	"finally":   FINALLY,
	"import":    IMPORT,
	"package":   PACKAGE,
	"extends":   EXTENDS,
	"with":      WITH,
	"override":  OVERRIDE,
	"abstract":  ABSTRACT,
	"final":     FINAL,
	"private":   PRIVATE,
	"protected": PROTECTED,
	"public":    PUBLIC,
	"sealed":    SEALED,
	"implicit":  IMPLICIT,
	"explicit":  EXPLICIT,
	"true":      TRUE,
	"false":     FALSE,
	"null":      NULL,
	"this":      THIS,
	"super":     SUPER,
	"new":       NEW,
	"return":    RETURN,
	"throw":     THROW,

	"Int":     INT_TYPE,
	"Double":  DOUBLE_TYPE,
	"String":  STRING_TYPE,
	"Boolean": BOOLEAN_TYPE,
	"Unit":    UNIT_TYPE,
	"Any":     ANY_TYPE,
	"AnyRef":  ANYREF_TYPE,
	"Nothing": NOTHING_TYPE,
}

// LookupIdent returns the keyword Type for ident, or IDENT if ident is not reserved.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Token is a single lexical unit with its source position.
type Token struct {
	Type    Type
	Lexeme  string // raw source text of the token, used for diagnostics and round-tripping
	Literal string // decoded value for string/number tokens; equals Lexeme otherwise
	File    string
	Line    int
	Column  int
	RawLine string // full text of the source line the token starts on
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var typeNames = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE", COMMENT: "COMMENT",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", TRUE: "true", FALSE: "false",
	FUN: "fun", CLASS: "class", TRAIT: "trait", OBJECT: "object", VAL: "val", VAR: "var",
	DEF: "def", EXTENSION: "extension", IF: "if", ELSE: "else", WHILE: "while", FOR: "for",
	MATCH: "match", CASE: "case", TRY: "try", CATCH: "catch", FINALLY: "finally",
	IMPORT: "import", PACKAGE: "package", EXTENDS: "extends", WITH: "with",
	OVERRIDE: "override", ABSTRACT: "abstract", FINAL: "final", PRIVATE: "private",
	PROTECTED: "protected", PUBLIC: "public", SEALED: "sealed", IMPLICIT: "implicit",
	EXPLICIT: "explicit", NULL: "null", THIS: "this", SUPER: "super", NEW: "new",
	RETURN: "return", THROW: "throw",
	INT_TYPE: "Int", DOUBLE_TYPE: "Double", STRING_TYPE: "String", BOOLEAN_TYPE: "Boolean",
	UNIT_TYPE: "Unit", ANY_TYPE: "Any", ANYREF_TYPE: "AnyRef", NOTHING_TYPE: "Nothing",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	EQ: "==", NOT_EQ: "!=", LT: "<", GT: ">", LTE: "<=", GTE: ">=", AND: "&&", OR: "||",
	BANG: "!", ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=",
	SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", IMPLY: "=>", ARROW: "->", LARROW: "<-",
	SUBTYPE: "<:", SUPERTYPE: ">:", DOT: ".", DOUBLE_COLON: "::", TRIPLE_COLON: ":::",
	CONCAT: "++", DECR: "--",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", LBRACE: "{", RBRACE: "}",
	COMMA: ",", SEMICOLON: ";", COLON: ":", UNDERSCORE: "_",
}
