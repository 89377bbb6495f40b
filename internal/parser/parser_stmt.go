package parser

import (
	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/token"
)

// parseBlockBody parses an INDENT {stmt} DEDENT suite immediately
// following a ':' NEWLINE, building its statements in a new child
// scope of parent.
func (p *Parser) parseBlockBody(parent *ast.Scope) *ast.Block {
	tok := p.cur
	blockScope := ast.NewScope(parent)
	if !p.expect(token.INDENT) {
		return ast.NewBlock(tok, blockScope, nil)
	}
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		s := p.parseStmt(blockScope)
		if s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return ast.NewBlock(tok, blockScope, stmts)
}

func (p *Parser) parseStmt(scope *ast.Scope) ast.Stmt {
	switch p.cur.Kind {
	case token.IF:
		return p.parseIfStmt(scope)
	case token.WHILE:
		return p.parseWhileStmt(scope)
	case token.BREAK:
		tok := p.cur
		p.nextToken()
		p.consumeStmtEnd()
		return ast.NewBreakStmt(tok)
	case token.CONTINUE:
		tok := p.cur
		p.nextToken()
		p.consumeStmtEnd()
		return ast.NewContinueStmt(tok)
	case token.PASS:
		tok := p.cur
		p.nextToken()
		p.consumeStmtEnd()
		return ast.NewPassStmt(tok)
	case token.RETURN:
		tok := p.cur
		p.nextToken()
		var val ast.Expr
		if !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) && !p.curIs(token.DEDENT) {
			val = p.parseExpr(LOWEST)
		}
		p.consumeStmtEnd()
		return ast.NewReturnStmt(tok, val)
	case token.VAR, token.VAL:
		// Locals live in the wildcard namespace like every other
		// declaration — the lookup chain (scope → wildcard → parent)
		// only ever searches "*" for an unqualified name.
		v := p.parseVarDecl(scope, wildcardNS, ast.Private)
		return ast.NewVarDeclStmt(v.Tok(), v)
	case token.NEWLINE:
		p.nextToken()
		return nil
	default:
		tok := p.cur
		e := p.parseExpr(LOWEST)
		p.consumeStmtEnd()
		if e == nil {
			return nil
		}
		return ast.NewExprStmt(tok, e)
	}
}

func (p *Parser) parseIfStmt(scope *ast.Scope) *ast.IfStmt {
	tok := p.cur
	var clauses []ast.IfClause

	p.expect(token.IF)
	cond := p.parseExpr(LOWEST)
	p.expect(token.COLON)
	p.consumeStmtEnd()
	body := p.parseBlockBody(scope)
	clauses = append(clauses, ast.IfClause{Cond: cond, Body: body})

	for p.curIs(token.ELIF) {
		p.nextToken()
		c := p.parseExpr(LOWEST)
		p.expect(token.COLON)
		p.consumeStmtEnd()
		b := p.parseBlockBody(scope)
		clauses = append(clauses, ast.IfClause{Cond: c, Body: b})
	}

	var elseBlock *ast.Block
	if p.curIs(token.ELSE) {
		p.nextToken()
		p.expect(token.COLON)
		p.consumeStmtEnd()
		elseBlock = p.parseBlockBody(scope)
	}

	return ast.NewIfStmt(tok, clauses, elseBlock)
}

func (p *Parser) parseWhileStmt(scope *ast.Scope) *ast.WhileStmt {
	tok := p.cur
	p.expect(token.WHILE)
	cond := p.parseExpr(LOWEST)
	p.expect(token.COLON)
	p.consumeStmtEnd()
	body := p.parseBlockBody(scope)
	return ast.NewWhileStmt(tok, cond, body)
}
