// Package parser is a recursive-descent, one-token-lookahead parser
// (with two limited-lookahead exceptions: looksLikeLambdaParams for
// lambda-vs-parenthesized-expression, and the trailing-lambda reading of
// `{` in postfix position) that turns a token sequence into a Program AST
// (spec.md §4.2).
package parser

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/diagnostics"
	"github.com/funvibe/funxyc/internal/lexer"
	"github.com/funvibe/funxyc/internal/token"
)

// Parser holds the filtered token stream and parse position. Newline
// tokens are insignificant to this grammar and are dropped up front,
// per spec.md §4.1 ("the parser filters [newlines]").
type Parser struct {
	file   string
	tokens []token.Token
	pos    int
	Errors []*diagnostics.Error
}

// New builds a Parser directly from a token sequence (e.g. already
// produced by a Lexer via Tokens()).
func New(tokens []token.Token, file string) *Parser {
	filtered := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type == token.NEWLINE {
			continue
		}
		filtered = append(filtered, t)
	}
	return &Parser{file: file, tokens: filtered}
}

// FromSource lexes source and wraps the result in a Parser, surfacing
// any lexical errors onto the parser's own Errors slice so callers only
// need to check one place.
func FromSource(source, file string) *Parser {
	l := lexer.New(source, file)
	toks := l.Tokens()
	p := New(toks, file)
	p.Errors = append(p.Errors, l.Errors...)
	return p
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) at(tt token.Type) bool { return p.cur().Type == tt }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) match(tt token.Type) bool {
	if p.at(tt) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it has type tt, otherwise
// records a syntactic error citing the expected and actual token.
func (p *Parser) expect(tt token.Type, context string) token.Token {
	if p.at(tt) {
		return p.advance()
	}
	tok := p.cur()
	p.errAt(tok, "P001", fmt.Sprintf("expected %s (%s), found %s %q", tt, context, tok.Type, tok.Lexeme))
	return tok
}

func (p *Parser) errAt(tok token.Token, code, message string) {
	p.Errors = append(p.Errors, diagnostics.New(diagnostics.Syntactic, code, tok, message))
}

// ParseProgram parses the full token stream into a Program of top-level
// declarations (spec.md §2: "a sequence of top-level declarations").
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.file}
	for !p.at(token.EOF) {
		decl := p.parseDeclaration()
		if decl == nil {
			// Avoid an infinite loop on unrecoverable input.
			if !p.at(token.EOF) {
				p.advance()
			}
			continue
		}
		prog.Declarations = append(prog.Declarations, decl)
	}
	return prog
}

func (p *Parser) parseDeclaration() ast.Declaration {
	switch p.cur().Type {
	case token.FUN:
		return p.parseFunctionDeclaration(false)
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.TRAIT:
		return p.parseTraitDeclaration()
	case token.OBJECT:
		return p.parseObjectDeclaration()
	case token.EXTENSION:
		return p.parseExtensionDeclaration()
	default:
		tok := p.cur()
		p.errAt(tok, "P000", fmt.Sprintf("expected a top-level declaration, found %s %q", tok.Type, tok.Lexeme))
		return nil
	}
}
