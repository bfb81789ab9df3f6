package parser

import "github.com/funvibe/funxyc/internal/ast"
import "github.com/funvibe/funxyc/internal/token"

// parseStatement parses one statement form inside a block: variable
// declaration, return, or otherwise an expression statement (spec.md
// §4.2).
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.VAL, token.VAR:
		return p.parseVarDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	default:
		start := p.cur()
		expr := p.parseExpression()
		return &ast.ExpressionStatement{StmtBase: ast.StmtBase{Location: ast.LocOf(start)}, Expr: expr}
	}
}

func (p *Parser) parseVarDeclaration() ast.Statement {
	start := p.advance() // VAL or VAR
	mutable := start.Type == token.VAR
	nameTok := p.expect(token.IDENT, "variable name")
	var annotation ast.TypeAnnotation
	if p.match(token.COLON) {
		annotation = p.parseType()
	}
	var initializer ast.Expression
	if p.match(token.ASSIGN) {
		initializer = p.parseExpression()
	}
	return &ast.VarDeclaration{
		StmtBase:    ast.StmtBase{Location: ast.LocOf(start)},
		Name:        nameTok.Lexeme,
		Annotation:  annotation,
		Initializer: initializer,
		Mutable:     mutable,
	}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.expect(token.RETURN, "return statement")
	var value ast.Expression
	if !isBlockTerminator(p.cur().Type) && !p.at(token.VAL) && !p.at(token.VAR) && !p.at(token.RETURN) {
		value = p.parseExpression()
	}
	return &ast.ReturnStatement{StmtBase: ast.StmtBase{Location: ast.LocOf(start)}, Value: value}
}
