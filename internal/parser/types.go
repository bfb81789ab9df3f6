package parser

import "github.com/funvibe/funxyc/internal/ast"
import "github.com/funvibe/funxyc/internal/token"

// parseType parses a type annotation: simple name, generic
// `Name<T1,...>`, function `(A,B) => R` (with the single-parameter
// shorthand `A => R`), or structural `{ name: Type, ... }` (spec.md
// §4.2).
func (p *Parser) parseType() ast.TypeAnnotation {
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseStructuralType()
	case token.LPAREN:
		return p.parseParenthesizedFunctionType()
	default:
		return p.parseNameOrShorthandFunctionType()
	}
}

func (p *Parser) parseStructuralType() ast.TypeAnnotation {
	start := p.cur()
	p.expect(token.LBRACE, "structural type")
	var members []ast.StructuralMember
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		nameTok := p.expect(token.IDENT, "structural member name")
		p.expect(token.COLON, "structural member type")
		annotation := p.parseType()
		members = append(members, ast.StructuralMember{Name: nameTok.Lexeme, Annotation: annotation})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE, "structural type")
	return &ast.StructuralTypeAnnotation{TypeBase: typeBaseAt(start), Members: members}
}

// parseParenthesizedFunctionType parses `(A, B) => R`.
func (p *Parser) parseParenthesizedFunctionType() ast.TypeAnnotation {
	start := p.cur()
	p.expect(token.LPAREN, "function type parameters")
	var params []ast.TypeAnnotation
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		params = append(params, p.parseType())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "function type parameters")
	p.expect(token.IMPLY, "function type arrow =>")
	ret := p.parseType()
	return &ast.FunctionType{TypeBase: typeBaseAt(start), Params: params, Return: ret}
}

// parseNameOrShorthandFunctionType parses a bare name (optionally
// generic), and recognizes the single-parameter function-type shorthand
// `Int => Int`, normalizing it to a one-element FunctionType so the
// analyzer never special-cases the shorthand (spec.md §4.2).
func (p *Parser) parseNameOrShorthandFunctionType() ast.TypeAnnotation {
	start := p.cur()
	nameTok := p.advance() // IDENT or a builtin type keyword
	name := nameTok.Lexeme

	var base ast.TypeAnnotation
	if p.at(token.LT) {
		p.advance()
		var args []ast.TypeAnnotation
		for !p.at(token.GT) && !p.at(token.EOF) {
			args = append(args, p.parseType())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.GT, "generic type arguments")
		base = &ast.GenericType{TypeBase: typeBaseAt(start), Name: name, Args: args}
	} else {
		base = &ast.SimpleType{TypeBase: typeBaseAt(start), Name: name}
	}

	if p.match(token.IMPLY) {
		ret := p.parseType()
		return &ast.FunctionType{TypeBase: typeBaseAt(start), Params: []ast.TypeAnnotation{base}, Return: ret}
	}
	return base
}

func typeBaseAt(tok token.Token) ast.TypeBase {
	return ast.TypeBase{Location: ast.LocOf(tok)}
}
