package parser

import "github.com/funvibe/funxyc/internal/ast"
import "github.com/funvibe/funxyc/internal/token"

// parseUnsupportedMatch parses `match (scrutinee) { case ... }` syntax
// fully, so the token stream is consumed and later declarations parse
// cleanly, but rejects it with a compile error rather than silently
// accepting it: pattern matching is explicitly out of scope (spec.md
// §9 open question, §1 non-goals).
func (p *Parser) parseUnsupportedMatch() ast.Expression {
	start := p.expect(token.MATCH, "match expression")
	p.expect(token.LPAREN, "match scrutinee")
	p.parseExpression()
	p.expect(token.RPAREN, "match scrutinee")
	p.expect(token.LBRACE, "match body")
	for p.at(token.CASE) {
		p.advance()
		p.parseExpression()
		p.expect(token.IMPLY, "case arrow =>")
		p.parseExpression()
	}
	p.expect(token.RBRACE, "match body")
	p.errAt(start, "P010", "pattern matching (match/case) is not supported")
	return &ast.Identifier{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Name: "<unsupported-match>"}
}
