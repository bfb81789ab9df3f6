package parser

import "github.com/funvibe/funxyc/internal/ast"
import "github.com/funvibe/funxyc/internal/token"

// parseClassDeclaration parses
// `class Name<T...>(ctor params) extends Super with Trait1, Trait2 { members }`.
func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	start := p.expect(token.CLASS, "class declaration")
	nameTok := p.expect(token.IDENT, "class name")
	typeParams := p.parseOptionalTypeParams()

	decl := &ast.ClassDeclaration{
		DeclBase:   ast.DeclBase{Location: ast.LocOf(start)},
		Name:       nameTok.Lexeme,
		TypeParams: typeParams,
	}

	if p.at(token.LPAREN) {
		ctorParams := p.parseParameterList()
		decl.Constructor = &ast.Constructor{Parameters: ctorParams}
	}
	if p.match(token.EXTENDS) {
		decl.Super = p.parseType()
	}
	if p.match(token.WITH) {
		decl.Traits = append(decl.Traits, p.parseType())
		for p.match(token.COMMA) {
			decl.Traits = append(decl.Traits, p.parseType())
		}
	}
	if p.at(token.LBRACE) {
		p.advance()
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			switch p.cur().Type {
			case token.FUN:
				decl.Methods = append(decl.Methods, p.parseFunctionDeclaration(false))
			case token.VAL, token.VAR:
				decl.Fields = append(decl.Fields, p.parseFieldDeclaration())
			default:
				p.errAt(p.cur(), "P004", "expected a method or field in class body")
				p.advance()
			}
		}
		p.expect(token.RBRACE, "class body")
	}
	return decl
}

// parseFieldDeclaration parses a class-body field: `val`/`var name: Type [= init]`.
// A field annotation is required (spec.md §3 invariant); the analyzer,
// not the parser, rejects a missing one so a malformed field still
// parses into a complete AST for diagnostics.
func (p *Parser) parseFieldDeclaration() *ast.FieldDeclaration {
	start := p.advance() // VAL or VAR
	mutable := start.Type == token.VAR
	nameTok := p.expect(token.IDENT, "field name")
	var annotation ast.TypeAnnotation
	if p.match(token.COLON) {
		annotation = p.parseType()
	}
	var init ast.Expression
	if p.match(token.ASSIGN) {
		init = p.parseExpression()
	}
	return &ast.FieldDeclaration{
		DeclBase:    ast.DeclBase{Location: ast.LocOf(start)},
		Name:        nameTok.Lexeme,
		Annotation:  annotation,
		Initializer: init,
		Mutable:     mutable,
	}
}

// parseTraitDeclaration parses `trait Name<T...> extends Super1, Super2 { members }`.
// Members are either concrete (`fun`) or abstract signatures (`def`).
func (p *Parser) parseTraitDeclaration() *ast.TraitDeclaration {
	start := p.expect(token.TRAIT, "trait declaration")
	nameTok := p.expect(token.IDENT, "trait name")
	typeParams := p.parseOptionalTypeParams()

	decl := &ast.TraitDeclaration{
		DeclBase:   ast.DeclBase{Location: ast.LocOf(start)},
		Name:       nameTok.Lexeme,
		TypeParams: typeParams,
	}
	if p.match(token.EXTENDS) {
		decl.SuperTraits = append(decl.SuperTraits, p.parseType())
		for p.match(token.COMMA) {
			decl.SuperTraits = append(decl.SuperTraits, p.parseType())
		}
	}
	p.expect(token.LBRACE, "trait body")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		switch p.cur().Type {
		case token.FUN:
			decl.Methods = append(decl.Methods, p.parseFunctionDeclaration(true))
		case token.DEF:
			decl.Methods = append(decl.Methods, p.parseFunctionDeclaration(true))
		default:
			p.errAt(p.cur(), "P005", "expected a method signature in trait body")
			p.advance()
		}
	}
	p.expect(token.RBRACE, "trait body")
	return decl
}

// parseObjectDeclaration parses a singleton: `object Name extends Super with Trait { members }`.
func (p *Parser) parseObjectDeclaration() *ast.ObjectDeclaration {
	start := p.expect(token.OBJECT, "object declaration")
	nameTok := p.expect(token.IDENT, "object name")
	decl := &ast.ObjectDeclaration{
		DeclBase: ast.DeclBase{Location: ast.LocOf(start)},
		Name:     nameTok.Lexeme,
	}
	if p.match(token.EXTENDS) {
		decl.Super = p.parseType()
	}
	if p.match(token.WITH) {
		decl.Traits = append(decl.Traits, p.parseType())
		for p.match(token.COMMA) {
			decl.Traits = append(decl.Traits, p.parseType())
		}
	}
	p.expect(token.LBRACE, "object body")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		switch p.cur().Type {
		case token.FUN:
			decl.Methods = append(decl.Methods, p.parseFunctionDeclaration(false))
		case token.VAL, token.VAR:
			decl.Fields = append(decl.Fields, p.parseFieldDeclaration())
		default:
			p.errAt(p.cur(), "P006", "expected a method or field in object body")
			p.advance()
		}
	}
	p.expect(token.RBRACE, "object body")
	return decl
}

// parseExtensionDeclaration parses `extension TargetAnnotation { methods }`.
func (p *Parser) parseExtensionDeclaration() *ast.ExtensionDeclaration {
	start := p.expect(token.EXTENSION, "extension declaration")
	target := p.parseType()
	decl := &ast.ExtensionDeclaration{
		DeclBase: ast.DeclBase{Location: ast.LocOf(start)},
		Target:   target,
	}
	p.expect(token.LBRACE, "extension body")
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		if p.at(token.FUN) {
			decl.Methods = append(decl.Methods, p.parseFunctionDeclaration(false))
		} else {
			p.errAt(p.cur(), "P007", "expected a method in extension body")
			p.advance()
		}
	}
	p.expect(token.RBRACE, "extension body")
	return decl
}
