package parser

import (
	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/token"
)

// parseTypeInstance parses a syntactic type annotation into an
// unresolved ast.TypeInstance (ResolvedType stays nil until the
// type-instance checker runs). Structural categories are recognized
// directly from their bracket shape; everything else is a UserCategory
// head with an optional bracketed parameter list.
func (p *Parser) parseTypeInstance() *ast.TypeInstance {
	isRef := false
	if p.curIs(token.IDENTIFIER) && p.cur.Lexeme == "ref" {
		isRef = true
		p.nextToken()
	}

	var inst *ast.TypeInstance
	switch {
	case p.curIs(token.STAR):
		tok := p.cur
		p.nextToken()
		inst = ast.NewStarInstance(tok)

	case p.curIs(token.LPAREN):
		inst = p.parseTupleTypeInstance()

	case p.curIs(token.LBRACKET):
		inst = p.parseListTypeInstance()

	case p.curIs(token.LBRACE):
		inst = p.parseMapTypeInstance()

	case p.curIs(token.IDENTIFIER):
		inst = p.parseUserTypeInstance()

	default:
		p.errorf("PAR001", "expected a type, found %s", p.cur.Kind)
		tok := p.cur
		p.nextToken()
		inst = ast.NewStarInstance(tok)
	}

	if isRef {
		return ast.NewReferenceInstance(inst.Tok(), inst)
	}
	return inst
}

func (p *Parser) parseTupleTypeInstance() *ast.TypeInstance {
	tok := p.cur
	p.expect(token.LPAREN)
	var elems []*ast.TypeInstance
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseTypeInstance())
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	if len(elems) == 1 {
		return elems[0]
	}
	return ast.NewTupleInstance(tok, elems)
}

func (p *Parser) parseListTypeInstance() *ast.TypeInstance {
	tok := p.cur
	p.expect(token.LBRACKET)
	elem := p.parseTypeInstance()
	p.expect(token.RBRACKET)
	return ast.NewListInstance(tok, elem)
}

func (p *Parser) parseMapTypeInstance() *ast.TypeInstance {
	tok := p.cur
	p.expect(token.LBRACE)
	key := p.parseTypeInstance()
	p.expect(token.COLON)
	val := p.parseTypeInstance()
	p.expect(token.RBRACE)
	return ast.NewMapInstance(tok, key, val)
}

func (p *Parser) parseUserTypeInstance() *ast.TypeInstance {
	tok := p.cur
	name := p.cur.Lexeme
	p.nextToken()
	var params []*ast.TypeInstance
	if p.curIs(token.LBRACKET) {
		p.nextToken()
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			params = append(params, p.parseTypeInstance())
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.RBRACKET)
	}
	return ast.NewUserInstance(tok, name, params)
}
