package parser

import "github.com/funvibe/funxyc/internal/ast"
import "github.com/funvibe/funxyc/internal/token"

// parseFunctionDeclaration parses `fun name<T...>(params): R { body }`.
// When abstractAllowed is true (trait bodies) a bare signature
// introduced by `def` with no body is accepted; top-level functions and
// class methods always require a body.
func (p *Parser) parseFunctionDeclaration(abstractAllowed bool) *ast.FunctionDeclaration {
	start := p.cur()
	isAbstract := false
	if p.at(token.DEF) {
		p.advance()
		isAbstract = true
	} else {
		p.expect(token.FUN, "function declaration")
	}
	nameTok := p.expect(token.IDENT, "function name")
	typeParams := p.parseOptionalTypeParams()
	params := p.parseParameterList()
	var ret ast.TypeAnnotation
	if p.match(token.COLON) {
		ret = p.parseType()
	}
	decl := &ast.FunctionDeclaration{
		DeclBase:   ast.DeclBase{Location: ast.LocOf(start)},
		Name:       nameTok.Lexeme,
		TypeParams: typeParams,
		Parameters: params,
		ReturnType: ret,
		IsAbstract: isAbstract && abstractAllowed,
	}
	if isAbstract {
		return decl
	}
	if p.at(token.LBRACE) {
		block := p.parseBlockExpression().(*ast.BlockExpression)
		decl.Body = block
	} else {
		p.errAt(p.cur(), "P003", "function declaration requires a body")
	}
	return decl
}

// parseOptionalTypeParams parses `<T, +U, -V <: Bound >: Lower, ...>` if
// present.
func (p *Parser) parseOptionalTypeParams() []*ast.TypeParameter {
	if !p.at(token.LT) {
		return nil
	}
	p.advance()
	var params []*ast.TypeParameter
	for !p.at(token.GT) && !p.at(token.EOF) {
		start := p.cur()
		variance := ast.Invariant
		if p.at(token.PLUS) {
			p.advance()
			variance = ast.Covariant
		} else if p.at(token.MINUS) {
			p.advance()
			variance = ast.Contravariant
		}
		nameTok := p.expect(token.IDENT, "type parameter name")
		tp := &ast.TypeParameter{Location: ast.LocOf(start), Name: nameTok.Lexeme, Variance: variance}
		if p.match(token.SUBTYPE) {
			tp.Upper = p.parseType()
		}
		if p.match(token.SUPERTYPE) {
			tp.Lower = p.parseType()
		}
		params = append(params, tp)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.GT, "type parameter list")
	return params
}
