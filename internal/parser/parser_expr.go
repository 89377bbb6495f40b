package parser

import (
	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/token"
)

// parseExpr is the Pratt/precedence-climbing entry point. Each
// registered prefix function consumes its own tokens and returns with
// p.cur already positioned at the token following the expression it
// built; each infix function is invoked with p.cur sitting on the
// operator token itself and is responsible for consuming it.
func (p *Parser) parseExpr(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Kind]
	if !ok {
		p.errorf("PAR001", "unexpected token %s in expression", p.cur.Kind)
		p.nextToken()
		return nil
	}
	left := prefix()

	for !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) && precedence < p.curPrecedence() {
		if p.curIs(token.IDENTIFIER) && p.cur.Lexeme == "as" {
			left = p.parseCastContinuation(left)
			continue
		}
		infix, ok := p.infixFns[p.cur.Kind]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if p.curIs(token.IDENTIFIER) && p.cur.Lexeme == "as" {
		return CAST
	}
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseCastContinuation(left ast.Expr) ast.Expr {
	tok := p.cur
	p.nextToken()
	target := p.parseTypeInstance()
	return ast.NewCast(tok, left, target)
}

func (p *Parser) parseIdentifierOrNamespace() ast.Expr {
	tok := p.cur
	name := p.cur.Lexeme
	p.nextToken()
	return ast.NewIdentifier(tok, "", name)
}

func (p *Parser) parseLiteral(kind ast.LiteralKind) prefixParseFn {
	return func() ast.Expr {
		tok := p.cur
		lex := p.cur.Lexeme
		p.nextToken()
		return ast.NewLiteral(tok, kind, lex)
	}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.cur
	lex := p.cur.Lexeme
	p.nextToken()
	return ast.NewLiteral(tok, ast.BoolLiteral, lex)
}

// parseGroupedOrTuple disambiguates `(expr)` from `(a, b, ...)`: a
// single expression with no trailing comma is a Grouped node; one or
// more commas makes a Tuple, including the zero-element `()`.
func (p *Parser) parseGroupedOrTuple() ast.Expr {
	tok := p.cur
	p.nextToken() // consume '('

	if p.curIs(token.RPAREN) {
		p.nextToken()
		return ast.NewTuple(tok, nil)
	}

	first := p.parseExpr(LOWEST)
	if !p.curIs(token.COMMA) {
		p.expect(token.RPAREN)
		return ast.NewGrouped(tok, first)
	}

	elems := []ast.Expr{first}
	for p.curIs(token.COMMA) {
		p.nextToken()
		if p.curIs(token.RPAREN) {
			break
		}
		elems = append(elems, p.parseExpr(LOWEST))
	}
	p.expect(token.RPAREN)
	return ast.NewTuple(tok, elems)
}

func (p *Parser) parseListLiteral() ast.Expr {
	tok := p.cur
	p.nextToken() // consume '['
	var elems []ast.Expr
	for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpr(LOWEST))
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return ast.NewList(tok, elems)
}

func (p *Parser) parseMapLiteral() ast.Expr {
	tok := p.cur
	p.nextToken() // consume '{'
	var entries []ast.MapEntry
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		key := p.parseExpr(LOWEST)
		p.expect(token.COLON)
		val := p.parseExpr(LOWEST)
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return ast.NewMap(tok, entries)
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.cur
	op := ast.OpNeg
	if tok.Kind == token.NOT {
		op = ast.OpNot
	}
	p.nextToken()
	operand := p.parseExpr(PREFIX)
	return ast.NewUnary(tok, op, operand)
}

func (p *Parser) parseBinary(op ast.BinaryOp) infixParseFn {
	return func(left ast.Expr) ast.Expr {
		tok := p.cur
		prec := precedences[tok.Kind]
		p.nextToken()
		right := p.parseExpr(prec)
		return ast.NewBinary(tok, op, left, right)
	}
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	tok := p.cur // '('
	var ns, name string
	switch l := left.(type) {
	case *ast.Identifier:
		ns, name = l.Namespace, l.Name
	case *ast.NamespaceAccess:
		ns, name = l.Namespace, l.Name
	default:
		p.errorf("PAR001", "call target must be a name")
	}
	p.nextToken() // consume '('
	var args []ast.Expr
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpr(LOWEST))
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return ast.NewCall(tok, ns, name, args)
}

func (p *Parser) parseSubscript(left ast.Expr) ast.Expr {
	tok := p.cur // '['
	p.nextToken()
	idx := p.parseExpr(LOWEST)
	p.expect(token.RBRACKET)
	return ast.NewSubscript(tok, left, idx)
}

// parseDot handles both field access (`.`) and namespace
// qualification (`::`) — the lexer emits both under token.DOT,
// distinguished here by lexeme.
func (p *Parser) parseDot(left ast.Expr) ast.Expr {
	tok := p.cur
	isNamespace := tok.Lexeme == "::"
	p.nextToken() // consume '.' or '::'
	name := p.cur.Lexeme
	p.expect(token.IDENTIFIER)

	if isNamespace {
		ident, ok := left.(*ast.Identifier)
		if !ok {
			p.errorf("PAR001", "namespace qualifier must be a simple name")
			return left
		}
		return ast.NewNamespaceAccess(tok, ident.Name, name)
	}
	return ast.NewDot(tok, left, name)
}

func (p *Parser) parseAssignment(left ast.Expr) ast.Expr {
	tok := p.cur
	p.nextToken()
	value := p.parseExpr(LOWEST)
	return ast.NewAssignment(tok, left, value)
}

func (p *Parser) parseConditionalExpr() ast.Expr {
	tok := p.cur
	p.expect(token.IF)
	cond := p.parseExpr(LOWEST)
	p.expectKeyword("then")
	thenExpr := p.parseExpr(LOWEST)
	p.expect(token.ELSE)
	elseExpr := p.parseExpr(LOWEST)
	return ast.NewConditional(tok, cond, thenExpr, elseExpr)
}

// expectKeyword consumes a contextual keyword spelled as a plain
// identifier (e.g. "then"), since it is not reserved everywhere.
func (p *Parser) expectKeyword(word string) bool {
	if p.curIs(token.IDENTIFIER) && p.cur.Lexeme == word {
		p.nextToken()
		return true
	}
	p.errorf("PAR001", "expected '%s', found %s", word, p.cur.Kind)
	return false
}

func (p *Parser) parseMatchExpr() ast.Expr {
	tok := p.cur
	p.expect(token.MATCH)
	scrutinee := p.parseExpr(LOWEST)
	p.expect(token.WITH)
	p.consumeStmtEnd()
	p.expect(token.INDENT)
	p.skipNewlines()
	var arms []ast.MatchArm
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		pattern := p.parseExpr(LOWEST)
		var guard ast.Expr
		if p.curIs(token.IF) {
			p.nextToken()
			guard = p.parseExpr(LOWEST)
		}
		p.expect(token.ARROW)
		body := p.parseExpr(LOWEST)
		arms = append(arms, ast.MatchArm{Pattern: pattern, Guard: guard, Body: body})
		p.consumeStmtEnd()
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return ast.NewMatch(tok, scrutinee, arms)
}
