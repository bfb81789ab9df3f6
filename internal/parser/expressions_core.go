package parser

import (
	"fmt"

	"github.com/funvibe/funxyc/internal/ast"
	"github.com/funvibe/funxyc/internal/token"
)

// parseExpression enters the precedence ladder at its lowest rung,
// assignment (spec.md §4.2).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment is right-associative, single `=`.
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseOr()
	if p.at(token.ASSIGN) {
		eq := p.advance()
		value := p.parseAssignment()
		return &ast.AssignExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(eq)}, Target: left, Value: value}
	}
	return left
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(token.OR) {
		op := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(op)}, Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.at(token.AND) {
		op := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(op)}, Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NOT_EQ) {
		op := p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(op)}, Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LTE) || p.at(token.GTE) {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(op)}, Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(op)}, Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(op)}, Op: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.BANG) || p.at(token.MINUS) || p.at(token.PLUS) {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(op)}, Op: op.Lexeme, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix chains call `(...)`, member `.name`, and the trailing
// lambda sugar `{ params => body }` (spec.md §4.2 disambiguation 2).
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(token.LPAREN):
			expr = p.finishCall(expr, "")
		case p.at(token.DOT):
			p.advance()
			nameTok := p.expect(token.IDENT, "member name")
			if p.at(token.LPAREN) {
				expr = p.finishCall(expr, nameTok.Lexeme)
			} else {
				expr = &ast.FieldAccess{ExprBase: ast.ExprBase{Location: ast.LocOf(nameTok)}, Receiver: expr, Name: nameTok.Lexeme}
			}
		case p.at(token.LBRACE) && p.canStartTrailingLambda():
			lambda := p.parseTrailingLambda()
			expr = p.attachTrailingLambda(expr, lambda)
		default:
			return expr
		}
	}
}

// canStartTrailingLambda reports whether the `{` at the current position
// plausibly opens trailing-lambda syntax rather than, say, the start of
// an unrelated block in a position that can't take one. Any identifier
// or call/member-access primary may be followed by a trailing lambda
// (spec.md §4.2); this always returns true when at LBRACE since every
// postfix chain position is eligible.
func (p *Parser) canStartTrailingLambda() bool {
	return true
}

// finishCall parses `(args)` after a callee already parsed. If name is
// non-empty, this is `receiver.name(args)`; otherwise the surface call
// `callee(args)` is normalized to receiver=callee, name="apply"
// (spec.md §4.2 "call and function-value invocation").
func (p *Parser) finishCall(callee ast.Expression, name string) ast.Expression {
	start := p.cur()
	p.expect(token.LPAREN, "call arguments")
	var args []ast.Expression
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExpression())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "call arguments")
	receiver := callee
	methodName := name
	if methodName == "" {
		methodName = "apply"
	}
	call := &ast.CallExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Receiver: receiver, Name: methodName, Args: args}
	// A trailing lambda appended to a parenthesized call is an extra argument.
	if p.at(token.LBRACE) {
		lambda := p.parseTrailingLambda()
		call.Args = append(call.Args, lambda)
	}
	return call
}

// attachTrailingLambda implements the two no-parens trailing-lambda
// sugars: on a bare identifier, it becomes a call on that identifier
// with the lambda as sole argument; on a member access, a method call
// with the lambda as sole argument.
func (p *Parser) attachTrailingLambda(expr ast.Expression, lambda *ast.Lambda) ast.Expression {
	switch e := expr.(type) {
	case *ast.Identifier:
		return &ast.CallExpression{ExprBase: ast.ExprBase{Location: e.Location}, Receiver: e, Name: "apply", Args: []ast.Expression{lambda}}
	case *ast.FieldAccess:
		return &ast.CallExpression{ExprBase: ast.ExprBase{Location: e.Location}, Receiver: e.Receiver, Name: e.Name, Args: []ast.Expression{lambda}}
	default:
		return &ast.CallExpression{ExprBase: ast.ExprBase{Location: expr.Loc()}, Receiver: expr, Name: "apply", Args: []ast.Expression{lambda}}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.INT:
		p.advance()
		return &ast.IntegerLiteral{ExprBase: ast.ExprBase{Location: ast.LocOf(tok)}, Value: parseIntLiteral(tok.Literal)}
	case token.FLOAT:
		p.advance()
		return &ast.DoubleLiteral{ExprBase: ast.ExprBase{Location: ast.LocOf(tok)}, Value: parseFloatLiteral(tok.Literal)}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{ExprBase: ast.ExprBase{Location: ast.LocOf(tok)}, Value: tok.Literal, Raw: tok.Lexeme}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{ExprBase: ast.ExprBase{Location: ast.LocOf(tok)}, Value: tok.Type == token.TRUE}
	case token.THIS:
		p.advance()
		return &ast.ThisExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(tok)}}
	case token.IF:
		return p.parseIfExpression()
	case token.WHILE:
		return p.parseWhileExpression()
	case token.LBRACE:
		return p.parseBlockOrLambda()
	case token.LBRACKET:
		return p.parseListLiteral()
	case token.LPAREN:
		if p.looksLikeLambdaParams() {
			return p.parseParenthesizedLambda()
		}
		return p.parseParenthesizedExpression()
	case token.MATCH:
		return p.parseUnsupportedMatch()
	case token.IDENT:
		p.advance()
		return &ast.Identifier{ExprBase: ast.ExprBase{Location: ast.LocOf(tok)}, Name: tok.Lexeme}
	default:
		p.errAt(tok, "P002", fmt.Sprintf("expected an expression, found %s %q", tok.Type, tok.Lexeme))
		p.advance()
		return &ast.Identifier{ExprBase: ast.ExprBase{Location: ast.LocOf(tok)}, Name: "<error>"}
	}
}

// looksLikeLambdaParams implements disambiguation 1 (spec.md §4.2):
// scan forward from `(` past its matching `)` and check whether `=>`
// immediately follows. No backtracking of parsed state is required
// since this only inspects the token stream.
func (p *Parser) looksLikeLambdaParams() bool {
	depth := 0
	i := p.pos
	for {
		t := p.tokens[i]
		switch t.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				next := i + 1
				if next >= len(p.tokens) {
					return false
				}
				return p.tokens[next].Type == token.IMPLY
			}
		case token.EOF:
			return false
		}
		i++
	}
}

func (p *Parser) parseParenthesizedExpression() ast.Expression {
	p.expect(token.LPAREN, "parenthesized expression")
	inner := p.parseExpression()
	p.expect(token.RPAREN, "parenthesized expression")
	return inner
}

func (p *Parser) parseListLiteral() ast.Expression {
	start := p.cur()
	p.expect(token.LBRACKET, "list literal")
	var elems []ast.Expression
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpression())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET, "list literal")
	return &ast.ListLiteral{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Elements: elems}
}

func (p *Parser) parseIfExpression() ast.Expression {
	start := p.expect(token.IF, "if expression")
	p.expect(token.LPAREN, "if condition")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "if condition")
	then := p.parseExpression()
	var elseExpr ast.Expression
	if p.match(token.ELSE) {
		elseExpr = p.parseExpression()
	}
	return &ast.IfExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Condition: cond, Then: then, Else: elseExpr}
}

func (p *Parser) parseWhileExpression() ast.Expression {
	start := p.expect(token.WHILE, "while expression")
	p.expect(token.LPAREN, "while condition")
	cond := p.parseExpression()
	p.expect(token.RPAREN, "while condition")
	body := p.parseExpression()
	return &ast.WhileExpression{ExprBase: ast.ExprBase{Location: ast.LocOf(start)}, Condition: cond, Body: body}
}
