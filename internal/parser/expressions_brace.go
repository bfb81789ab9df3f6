package parser

import "github.com/funvibe/funxyc/internal/ast"
import "github.com/funvibe/funxyc/internal/token"

// parseBlockOrLambda parses a `{`-led primary expression. In primary
// position (no preceding receiver) a brace starts either a block
// expression or a map literal (spec.md §3); the trailing-lambda reading
// of `{` only applies in postfix position, handled separately by
// parseTrailingLambda.
func (p *Parser) parseBlockOrLambda() ast.Expression {
	if p.looksLikeMapLiteral() {
		return p.parseMapLiteral()
	}
	return p.parseBlockExpression()
}

// looksLikeMapLiteral scans the brace-delimited token run at depth 0
// for a COLON appearing before any statement-introducing keyword or the
// closing brace, which only a map entry `key: value` can produce.
func (p *Parser) looksLikeMapLiteral() bool {
	if p.tokens[p.pos].Type != token.LBRACE {
		return false
	}
	if p.tokens[p.pos+1].Type == token.RBRACE {
		return false // empty brace is an empty block
	}
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		t := p.tokens[i]
		switch t.Type {
		case token.LBRACE, token.LPAREN, token.LBRACKET:
			depth++
		case token.RBRACE, token.RPAREN, token.RBRACKET:
			depth--
			if depth == 0 {
				return false
			}
		case token.VAL, token.VAR, token.RETURN:
			if depth == 1 {
				return false
			}
		case token.COLON:
			if depth == 1 {
				return true
			}
		case token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseMapLiteral() ast.Expression {
	start := p.cur()
	p.expect(token.LBRACE, "map literal")
	var entries []ast.MapEntry
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		key := p.parseExpression()
		p.expect(token.COLON, "map entry")
		value := p.parseExpression()
		entries = append(entries, ast.MapEntry{Key: key, Value: value})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE, "map literal")
	return &ast.MapLiteral{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Entries: entries}
}

// parseBlockExpression parses a brace-enclosed statement sequence
// (spec.md §4.2). Its value is the last statement's value.
func (p *Parser) parseBlockExpression() ast.Expression {
	start := p.cur()
	p.expect(token.LBRACE, "block")
	var stmts []ast.Statement
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE, "block")
	return &ast.BlockExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Statements: stmts}
}

// parseTrailingLambda parses `{ params => body }` (spec.md §4.2
// disambiguation 2). Params may be absent (leading `=>`), one bare
// name, one typed name, several comma-separated names (bare or typed),
// or a parenthesized parameter list.
func (p *Parser) parseTrailingLambda() *ast.Lambda {
	start := p.cur()
	p.expect(token.LBRACE, "trailing lambda")
	var params []*ast.Parameter
	switch {
	case p.at(token.IMPLY):
		// no parameters
	case p.at(token.LPAREN):
		params = p.parseParameterList()
	default:
		for {
			nameTok := p.expect(token.IDENT, "lambda parameter")
			param := &ast.Parameter{Location: ast.LocOf(nameTok), Name: nameTok.Lexeme}
			if p.match(token.COLON) {
				param.Annotation = p.parseType()
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.IMPLY, "lambda arrow =>")
	body := p.parseLambdaBody()
	p.expect(token.RBRACE, "trailing lambda")
	return &ast.Lambda{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Parameters: params, Body: body}
}

// parseLambdaBody parses the statement sequence making up a lambda or
// parenthesized-lambda body, without consuming the closing delimiter
// (the caller's own closing brace/paren), wrapping multiple statements
// in an implicit block so the body is always a single expression.
func (p *Parser) parseLambdaBody() ast.Expression {
	first := p.parseExpression()
	if p.at(token.COMMA) || isBlockTerminator(p.cur().Type) {
		return first
	}
	stmts := []ast.Statement{&ast.ExpressionStatement{StmtBase: ast.StmtBase{Location: first.Loc()}, Expr: first}}
	for !isBlockTerminator(p.cur().Type) {
		stmts = append(stmts, p.parseStatement())
	}
	return &ast.BlockExpression{ExprBase: ast.ExprBase{Location: first.Loc()}, Statements: stmts}
}

func isBlockTerminator(tt token.Type) bool {
	return tt == token.RBRACE || tt == token.RPAREN || tt == token.EOF
}
