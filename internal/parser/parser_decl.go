package parser

import (
	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/token"
)

// parseDecl dispatches on the current token to parse one top-level
// (or namespace-nested) declaration. ns is the enclosing namespace
// name (wildcardNS at module top level); scope is where declared names are
// inserted.
func (p *Parser) parseDecl(scope *ast.Scope, ns string) ast.Decl {
	// Declarations are public unless marked private — matching the
	// original compiler's default-true is_public.
	vis := ast.Public
	switch {
	case p.curIs(token.PUBLIC):
		vis = ast.Public
		p.nextToken()
	case p.curIs(token.PRIVATE):
		vis = ast.Private
		p.nextToken()
	}

	switch p.cur.Kind {
	case token.IMPORT:
		return p.parseImportDecl()
	case token.NAMESPACE:
		return p.parseNamespaceDecl(scope, ns)
	case token.TYPE:
		return p.parseTypeDecl(scope, ns, vis)
	case token.DEF:
		return p.parseFunctionDecl(scope, ns, vis)
	case token.VAR, token.VAL:
		v := p.parseVarDecl(scope, ns, vis)
		return ast.NewVariableDecl(v)
	default:
		s := p.parseStmt(scope)
		if s == nil {
			return nil
		}
		return ast.NewStatementDecl(s)
	}
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	tok := p.cur
	p.expect(token.IMPORT)
	name := p.parseDottedName()
	fqn := token.FromName(name)
	p.consumeStmtEnd()
	return ast.NewImportDecl(tok, name, fqn)
}

func (p *Parser) parseDottedName() string {
	name := p.cur.Lexeme
	p.expect(token.IDENTIFIER)
	for p.curIs(token.DOT) {
		p.nextToken()
		name += "." + p.cur.Lexeme
		p.expect(token.IDENTIFIER)
	}
	return name
}

func (p *Parser) parseNamespaceDecl(scope *ast.Scope, outerNS string) *ast.NamespaceDecl {
	tok := p.cur
	p.expect(token.NAMESPACE)
	name := p.cur.Lexeme
	p.expect(token.IDENTIFIER)
	fullNS := name
	if outerNS != "" && outerNS != wildcardNS {
		fullNS = outerNS + "." + name
	}
	p.expect(token.COLON)
	p.consumeStmtEnd()
	p.expect(token.INDENT)
	var decls []ast.Decl
	p.skipNewlines()
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		d := p.parseDecl(scope, fullNS)
		if d != nil {
			decls = append(decls, d)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return ast.NewNamespaceDecl(tok, fullNS, decls)
}

func (p *Parser) consumeStmtEnd() {
	if p.curIs(token.NEWLINE) {
		p.nextToken()
		return
	}
	if p.curIs(token.EOF) || p.curIs(token.DEDENT) {
		return
	}
	p.errorf("PAR002", "expected end of statement, found %s", p.cur.Kind)
}

// parseTypeDecl parses a nominal type declaration and its
// constructors:
//
//	type Name[T, U]:
//	    Ctor1(T, U)
//	    Ctor2{field: T}
func (p *Parser) parseTypeDecl(scope *ast.Scope, ns string, vis ast.Visibility) *ast.TypeDecl {
	tok := p.cur
	p.expect(token.TYPE)
	name := p.cur.Lexeme
	p.expect(token.IDENTIFIER)

	var params []string
	if p.curIs(token.LBRACKET) {
		p.nextToken()
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			params = append(params, p.cur.Lexeme)
			p.expect(token.IDENTIFIER)
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.RBRACKET)
	}

	t := ast.NewType(tok, name, ns, vis, params)
	p.expect(token.COLON)
	p.consumeStmtEnd()
	p.expect(token.INDENT)
	p.skipNewlines()
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		c := p.parseConstructor(t)
		if c != nil {
			t.AddConstructor(c)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)

	scope.AddType(ns, t)
	return ast.NewTypeDecl(t)
}

func (p *Parser) parseConstructor(owner *ast.Type) *ast.Constructor {
	tok := p.cur
	name := p.cur.Lexeme
	if !p.expect(token.IDENTIFIER) {
		return nil
	}
	c := &ast.Constructor{Name: name, Owner: owner}
	c.Token = tok

	switch {
	case p.curIs(token.LPAREN):
		p.nextToken()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			c.Params = append(c.Params, p.parseTypeInstance())
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
		c.Kind = ast.DefaultConstructorKind

	case p.curIs(token.LBRACE):
		p.nextToken()
		for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			fname := p.cur.Lexeme
			p.expect(token.IDENTIFIER)
			p.expect(token.COLON)
			ftype := p.parseTypeInstance()
			c.FieldNames = append(c.FieldNames, fname)
			c.FieldTypes = append(c.FieldTypes, ftype)
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.RBRACE)
		c.Kind = ast.RecordConstructorKind

	default:
		c.Kind = ast.DefaultConstructorKind
	}
	p.consumeStmtEnd()
	return c
}

// parseFunctionDecl parses:
//
//	def name[T](a: T, b: int) -> T:
//	    <block>
func (p *Parser) parseFunctionDecl(scope *ast.Scope, ns string, vis ast.Visibility) *ast.FunctionDecl {
	tok := p.cur
	p.expect(token.DEF)
	name := p.cur.Lexeme
	p.expect(token.IDENTIFIER)

	var constraints []string
	if p.curIs(token.LBRACKET) {
		p.nextToken()
		for !p.curIs(token.RBRACKET) && !p.curIs(token.EOF) {
			constraints = append(constraints, p.cur.Lexeme)
			p.expect(token.IDENTIFIER)
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(token.RBRACKET)
	}

	fnScope := ast.NewScope(scope)

	p.expect(token.LPAREN)
	var params []*ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		ptok := p.cur
		pname := p.cur.Lexeme
		p.expect(token.IDENTIFIER)
		p.expect(token.COLON)
		ptype := p.parseTypeInstance()
		v := ast.NewVariable(ptok, pname, false, ptype, nil)
		v.Parent = fnScope
		fnScope.AddVariable(ns, v)
		params = append(params, &ast.Param{Name: pname, Variable: v})
		if p.curIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	var ret *ast.TypeInstance
	if p.curIs(token.ARROW) {
		p.nextToken()
		ret = p.parseTypeInstance()
		// `-> void` is stored as a nil Return, same as an omitted arrow.
		if ret.Category == ast.UserCategory && ret.Name == "void" && len(ret.Params) == 0 {
			ret = nil
		}
	}

	p.expect(token.COLON)
	p.consumeStmtEnd()
	body := p.parseBlockBody(fnScope)

	f := ast.NewFunction(tok, name, ns, vis, constraints, params, ret, body)
	f.Scope = fnScope
	scope.AddFunction(ns, f)
	return ast.NewFunctionDecl(f)
}

func (p *Parser) parseVarDecl(scope *ast.Scope, ns string, vis ast.Visibility) *ast.Variable {
	tok := p.cur
	mutable := p.curIs(token.VAR)
	p.nextToken() // consume var/val

	name := p.cur.Lexeme
	p.expect(token.IDENTIFIER)

	var declared *ast.TypeInstance
	if p.curIs(token.COLON) {
		p.nextToken()
		declared = p.parseTypeInstance()
	}
	p.expect(token.ASSIGN)
	init := p.parseExpr(LOWEST)
	p.consumeStmtEnd()

	v := ast.NewVariable(tok, name, mutable, declared, init)
	v.Parent = scope
	v.Public = vis == ast.Public
	scope.AddVariable(ns, v)
	return v
}
