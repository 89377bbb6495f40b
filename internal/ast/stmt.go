package ast

import "github.com/avalon-lang/avalon/internal/token"

// Stmt is implemented by every statement node. The termination and
// reachability analyzer flips Reachable/Terminates/Passes on
// each one as it walks a Block in order.
type Stmt interface {
	Node
	stmtNode()
	Flags() *StmtFlags
}

// StmtFlags holds the three dataflow facts the analyzer computes for
// every statement: whether control can reach it at all, whether
// executing it always terminates the enclosing function (via return,
// or an exhaustively-terminating branch), and whether it can fall
// through to the statement after it ("passes").
type StmtFlags struct {
	Reachable  bool
	Terminates bool
	Passes     bool
}

type stmtBase struct {
	base
	flags StmtFlags
}

func (s *stmtBase) stmtNode() {}

func (s *stmtBase) Flags() *StmtFlags { return &s.flags }

// Block is an ordered sequence of statements sharing a Scope.
type Block struct {
	stmtBase
	Scope *Scope
	Stmts []Stmt
}

func NewBlock(tok token.Token, scope *Scope, stmts []Stmt) *Block {
	return &Block{stmtBase: stmtBase{base: base{Token: tok}}, Scope: scope, Stmts: stmts}
}

func (b *Block) String() string { return "{ ... }" }

// CloneBlock copies a Block one level deep: a fresh slice of statement
// pointers and a fresh child Scope of parent. The statements
// themselves are not copied; the clone shares every statement node
// (and its expressions and annotations) with the original.
// parent is the specialization's own function scope, not the generic
// original's — so names inside the clone resolve to the specialized
// parameter Variables, not the still-parametric originals.
func CloneBlock(b *Block, parent *Scope) *Block {
	if b == nil {
		return nil
	}
	clone := &Block{
		stmtBase: stmtBase{base: base{Token: b.Token}},
		Scope:    NewScope(parent),
		Stmts:    make([]Stmt, len(b.Stmts)),
	}
	copy(clone.Stmts, b.Stmts)
	return clone
}

// VarDeclStmt declares a local variable inside a block.
type VarDeclStmt struct {
	stmtBase
	Variable *Variable
}

func NewVarDeclStmt(tok token.Token, v *Variable) *VarDeclStmt {
	return &VarDeclStmt{stmtBase: stmtBase{base: base{Token: tok}}, Variable: v}
}

func (s *VarDeclStmt) String() string { return s.Variable.String() }

// ExprStmt is an expression evaluated for its side effect, its value
// discarded.
type ExprStmt struct {
	stmtBase
	Expr Expr
}

func NewExprStmt(tok token.Token, e Expr) *ExprStmt {
	return &ExprStmt{stmtBase: stmtBase{base: base{Token: tok}}, Expr: e}
}

func (s *ExprStmt) String() string { return s.Expr.String() }

// IfClause is one `if`/`elif` condition-and-body pair.
type IfClause struct {
	Cond Expr
	Body *Block
}

// IfStmt is an if/elif.../else chain. Else is nil when absent.
type IfStmt struct {
	stmtBase
	Clauses []IfClause
	Else    *Block
}

func NewIfStmt(tok token.Token, clauses []IfClause, els *Block) *IfStmt {
	return &IfStmt{stmtBase: stmtBase{base: base{Token: tok}}, Clauses: clauses, Else: els}
}

func (s *IfStmt) String() string { return "if ..." }

// WhileStmt is a condition-checked-first loop.
type WhileStmt struct {
	stmtBase
	Cond Expr
	Body *Block
}

func NewWhileStmt(tok token.Token, cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{stmtBase: stmtBase{base: base{Token: tok}}, Cond: cond, Body: body}
}

func (s *WhileStmt) String() string { return "while " + s.Cond.String() }

// BreakStmt exits the nearest enclosing WhileStmt.
type BreakStmt struct{ stmtBase }

func NewBreakStmt(tok token.Token) *BreakStmt {
	return &BreakStmt{stmtBase: stmtBase{base: base{Token: tok}}}
}

func (s *BreakStmt) String() string { return "break" }

// ContinueStmt jumps to the next iteration check of the nearest
// enclosing WhileStmt.
type ContinueStmt struct{ stmtBase }

func NewContinueStmt(tok token.Token) *ContinueStmt {
	return &ContinueStmt{stmtBase: stmtBase{base: base{Token: tok}}}
}

func (s *ContinueStmt) String() string { return "continue" }

// PassStmt is an explicit no-op, used as a placeholder body.
type PassStmt struct{ stmtBase }

func NewPassStmt(tok token.Token) *PassStmt {
	return &PassStmt{stmtBase: stmtBase{base: base{Token: tok}}}
}

func (s *PassStmt) String() string { return "pass" }

// ReturnStmt returns from the enclosing function, optionally with a
// value (nil Value means a bare `return` from a void function).
type ReturnStmt struct {
	stmtBase
	Value Expr
}

func NewReturnStmt(tok token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{stmtBase: stmtBase{base: base{Token: tok}}, Value: value}
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}
