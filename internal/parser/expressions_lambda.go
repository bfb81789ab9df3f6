package parser

import "github.com/funvibe/funxyc/internal/ast"
import "github.com/funvibe/funxyc/internal/token"

// parseParenthesizedLambda parses `(params) => body`, reached once
// looksLikeLambdaParams has confirmed the `=>` follows the matching `)`.
func (p *Parser) parseParenthesizedLambda() ast.Expression {
	start := p.cur()
	params := p.parseParameterList()
	p.expect(token.IMPLY, "lambda arrow =>")
	body := p.parseExpression()
	return &ast.Lambda{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Parameters: params, Body: body}
}

// parseParameterList parses a parenthesized, comma-separated parameter
// list. Lambda parameters may omit their annotation; callers that
// require annotations (top-level functions, constructors) enforce that
// separately once resolving semantic types (spec.md §3 invariant).
func (p *Parser) parseParameterList() []*ast.Parameter {
	p.expect(token.LPAREN, "parameter list")
	var params []*ast.Parameter
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT, "parameter name")
		param := &ast.Parameter{Location: ast.LocOf(nameTok), Name: nameTok.Lexeme}
		if p.match(token.COLON) {
			param.Annotation = p.parseType()
		}
		params = append(params, param)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "parameter list")
	return params
}
