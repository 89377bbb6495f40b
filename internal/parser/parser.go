// Package parser builds an internal/ast.Program from a token stream
// produced by internal/lexer, using recursive descent for statements
// and declarations and Pratt (precedence-climbing) parsing for
// expressions.
package parser

import (
	"fmt"
	"strconv"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/lexer"
	"github.com/avalon-lang/avalon/internal/token"
)

// Precedence levels, lowest to highest.
const (
	LOWEST int = iota
	ASSIGNMENT
	LOGICALOR
	LOGICALAND
	EQUALITY
	COMPARISON
	SUM
	PRODUCT
	PREFIX
	CAST
	CALL
	SUBSCRIPT
	DOTACCESS
)

var precedences = map[token.Kind]int{
	token.ASSIGN:   ASSIGNMENT,
	token.OR:       LOGICALOR,
	token.AND:      LOGICALAND,
	token.EQ:       EQUALITY,
	token.NEQ:      EQUALITY,
	token.LT:       COMPARISON,
	token.LE:       COMPARISON,
	token.GT:       COMPARISON,
	token.GE:       COMPARISON,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.STAR:     PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.CARET:    PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: SUBSCRIPT,
	token.DOT:      DOTACCESS,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser holds a two-token lookahead window over a Lexer's output.
type Parser struct {
	l    *lexer.Lexer
	sink *errors.Sink

	cur  token.Token
	peek token.Token

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New creates a Parser reading from l, reporting diagnostics to sink.
func New(l *lexer.Lexer, sink *errors.Sink) *Parser {
	p := &Parser{l: l, sink: sink}

	p.prefixFns = map[token.Kind]prefixParseFn{
		token.IDENTIFIER: p.parseIdentifierOrNamespace,
		token.INTEGER:    p.parseLiteral(ast.IntLiteral),
		token.FLOAT:      p.parseLiteral(ast.FloatLiteral),
		token.DECIMAL:    p.parseLiteral(ast.DecimalLiteral),
		token.BIT:        p.parseLiteral(ast.BitLiteral),
		token.QUBIT:      p.parseLiteral(ast.QubitLiteral),
		token.STRING:     p.parseLiteral(ast.StringLiteral),
		token.TRUE:       p.parseBoolLiteral,
		token.FALSE:      p.parseBoolLiteral,
		token.LPAREN:     p.parseGroupedOrTuple,
		token.LBRACKET:   p.parseListLiteral,
		token.LBRACE:     p.parseMapLiteral,
		token.MINUS:      p.parseUnary,
		token.NOT:        p.parseUnary,
		token.IF:         p.parseConditionalExpr,
		token.MATCH:      p.parseMatchExpr,
	}

	p.infixFns = map[token.Kind]infixParseFn{
		token.PLUS:     p.parseBinary(ast.OpAdd),
		token.MINUS:    p.parseBinary(ast.OpSub),
		token.STAR:     p.parseBinary(ast.OpMul),
		token.SLASH:    p.parseBinary(ast.OpDiv),
		token.PERCENT:  p.parseBinary(ast.OpMod),
		token.CARET:    p.parseBinary(ast.OpPow),
		token.EQ:       p.parseBinary(ast.OpEq),
		token.NEQ:      p.parseBinary(ast.OpNeq),
		token.LT:       p.parseBinary(ast.OpLt),
		token.LE:       p.parseBinary(ast.OpLe),
		token.GT:       p.parseBinary(ast.OpGt),
		token.GE:       p.parseBinary(ast.OpGe),
		token.AND:      p.parseBinary(ast.OpAnd),
		token.OR:       p.parseBinary(ast.OpOr),
		token.LPAREN:   p.parseCall,
		token.LBRACKET: p.parseSubscript,
		token.DOT:      p.parseDot,
		token.ASSIGN:   p.parseAssignment,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// skipNewlines consumes any run of NEWLINE tokens, used between
// statements/declarations where blank lines are insignificant.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) expect(k token.Kind) bool {
	if p.curIs(k) {
		p.nextToken()
		return true
	}
	p.errorf("PAR001", "expected %s, found %s", k, p.cur.Kind)
	return false
}

func (p *Parser) errorf(code, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.sink.Error(errors.New(code, "parse", msg,
		errors.Pos{File: p.cur.File, Line: p.cur.Line, Column: p.cur.Column}, true))
}

// Parse consumes the full token stream and returns the resulting
// Program, keyed by fqn.
func Parse(l *lexer.Lexer, fqn token.FQN, sink *errors.Sink) *ast.Program {
	prog := ast.NewProgram(fqn)
	ParseInto(l, prog, sink)
	return prog
}

// ParseInto parses into a Program the caller already registered (the
// importer registers a Program in its global table, in the Visiting
// state, before parsing its body, so a self-import is detected as a
// cycle rather than a cache miss).
func ParseInto(l *lexer.Lexer, prog *ast.Program, sink *errors.Sink) {
	p := New(l, sink)
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		d := p.parseDecl(prog.Scope, wildcardNS)
		if d != nil {
			prog.AddDecl(d)
			if imp, ok := d.(*ast.ImportDecl); ok {
				prog.Imports = append(prog.Imports, imp.FQN)
			}
		}
		p.skipNewlines()
	}
}

const wildcardNS = "*"

// parseIntLexeme parses a decimal integer lexeme into an int64. No
// parser path calls it; literals keep their raw lexeme.
func parseIntLexeme(lex string) (int64, error) {
	return strconv.ParseInt(lex, 10, 64)
}
