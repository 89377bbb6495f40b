package ast

import (
	"strings"

	"github.com/avalon-lang/avalon/internal/token"
)

// Expr is implemented by every expression node. ExprType/SetExprType
// let the checker annotate each node with its inferred TypeInstance
// in place, the same way the original representer stores a type
// instance directly on each expression object.
type Expr interface {
	Node
	exprNode()
	ExprType() *TypeInstance
	SetExprType(*TypeInstance)
}

// exprBase centralizes the inferred-type slot shared by every
// expression kind.
type exprBase struct {
	base
	inferred *TypeInstance
}

func (e *exprBase) exprNode() {}

func (e *exprBase) ExprType() *TypeInstance { return e.inferred }

func (e *exprBase) SetExprType(t *TypeInstance) { e.inferred = t }

// LiteralKind tags the flavor of a Literal expression.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	DecimalLiteral
	BitLiteral
	QubitLiteral
	StringLiteral
	BoolLiteral
)

// Literal is a constant value written directly in source.
type Literal struct {
	exprBase
	Kind  LiteralKind
	Value string // raw lexeme, reparsed by the checker/builtins as needed
}

func NewLiteral(tok token.Token, kind LiteralKind, value string) *Literal {
	return &Literal{exprBase: exprBase{base: base{Token: tok}}, Kind: kind, Value: value}
}

func (l *Literal) String() string { return l.Value }

// Identifier is a bare name reference, resolved by the checker to
// either a Variable or (when immediately called) a Function set.
type Identifier struct {
	exprBase
	Namespace string // "" unless explicitly qualified at the use site
	Name      string

	ResolvedVariable *Variable
}

func NewIdentifier(tok token.Token, namespace, name string) *Identifier {
	return &Identifier{exprBase: exprBase{base: base{Token: tok}}, Namespace: namespace, Name: name}
}

func (i *Identifier) String() string { return i.Name }

// Call is a function-call expression: a callee name (possibly
// namespace-qualified) plus argument expressions. ResolvedFunction is
// filled in by the function resolver; after generation it points at the
// concrete specialization, not the generic original.
type Call struct {
	exprBase
	Namespace string
	Name      string
	Args      []Expr

	ResolvedFunction *Function
}

func NewCall(tok token.Token, namespace, name string, args []Expr) *Call {
	return &Call{exprBase: exprBase{base: base{Token: tok}}, Namespace: namespace, Name: name, Args: args}
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Tuple is a fixed-arity heterogeneous grouping `(a, b, c)`.
type Tuple struct {
	exprBase
	Elements []Expr
}

func NewTuple(tok token.Token, elements []Expr) *Tuple {
	return &Tuple{exprBase: exprBase{base: base{Token: tok}}, Elements: elements}
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// List is a homogeneous sequence literal `[a, b, c]`.
type List struct {
	exprBase
	Elements []Expr
}

func NewList(tok token.Token, elements []Expr) *List {
	return &List{exprBase: exprBase{base: base{Token: tok}}, Elements: elements}
}

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapEntry is a single key/value pair inside a Map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// Map is a key/value literal `{k1: v1, k2: v2}`.
type Map struct {
	exprBase
	Entries []MapEntry
}

func NewMap(tok token.Token, entries []MapEntry) *Map {
	return &Map{exprBase: exprBase{base: base{Token: tok}}, Entries: entries}
}

func (m *Map) String() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Cast is an explicit `expr as Type` conversion, resolved via the
// target type's `__cast__` constructor-function.
type Cast struct {
	exprBase
	Operand Expr
	Target  *TypeInstance
}

func NewCast(tok token.Token, operand Expr, target *TypeInstance) *Cast {
	return &Cast{exprBase: exprBase{base: base{Token: tok}}, Operand: operand, Target: target}
}

func (c *Cast) String() string { return c.Operand.String() + " as " + c.Target.String() }

// MatchArm is one `case pattern: expr` arm of a Match expression.
type MatchArm struct {
	Pattern Expr
	Guard   Expr // nil if unguarded
	Body    Expr
}

// Match is a pattern-matching expression over a scrutinee.
type Match struct {
	exprBase
	Scrutinee Expr
	Arms      []MatchArm
}

func NewMatch(tok token.Token, scrutinee Expr, arms []MatchArm) *Match {
	return &Match{exprBase: exprBase{base: base{Token: tok}}, Scrutinee: scrutinee, Arms: arms}
}

func (m *Match) String() string { return "match " + m.Scrutinee.String() + " with ..." }

// Grouped is a parenthesized sub-expression kept distinct from Tuple
// so `(expr)` is not mistaken for a one-element tuple.
type Grouped struct {
	exprBase
	Inner Expr
}

func NewGrouped(tok token.Token, inner Expr) *Grouped {
	return &Grouped{exprBase: exprBase{base: base{Token: tok}}, Inner: inner}
}

func (g *Grouped) String() string { return "(" + g.Inner.String() + ")" }

// BinaryOp is the surface operator spelling of a Binary expression;
// the checker rewrites each one to a call of the matching dunder
// function (`__add__`, `__eq__`, ...) on the left operand's type.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

var binaryOpDunder = map[BinaryOp]string{
	OpAdd: "__add__", OpSub: "__sub__", OpMul: "__mul__", OpDiv: "__div__",
	OpMod: "__mod__", OpPow: "__pow__", OpEq: "__eq__", OpNeq: "__ne__",
	OpLt: "__lt__", OpLe: "__le__", OpGt: "__gt__", OpGe: "__ge__",
	OpAnd: "__and__", OpOr: "__or__",
}

// Dunder returns the builtin operator-function name this operator
// desugars to.
func (op BinaryOp) Dunder() string { return binaryOpDunder[op] }

// Binary is a two-operand operator expression, desugared by the
// checker into a Call on Op.Dunder().
type Binary struct {
	exprBase
	Op    BinaryOp
	Left  Expr
	Right Expr

	// Desugared holds the Call this binary expression rewrites to once
	// the checker resolves its dunder function; nil before checking.
	Desugared *Call
}

func NewBinary(tok token.Token, op BinaryOp, left, right Expr) *Binary {
	return &Binary{exprBase: exprBase{base: base{Token: tok}}, Op: op, Left: left, Right: right}
}

func (b *Binary) String() string { return b.Left.String() + " " + b.Op.Dunder() + " " + b.Right.String() }

// UnaryOp is the surface spelling of a Unary expression's operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

var unaryOpDunder = map[UnaryOp]string{OpNeg: "__neg__", OpNot: "__not__"}

func (op UnaryOp) Dunder() string { return unaryOpDunder[op] }

// Unary is a single-operand operator expression.
type Unary struct {
	exprBase
	Op        UnaryOp
	Operand   Expr
	Desugared *Call
}

func NewUnary(tok token.Token, op UnaryOp, operand Expr) *Unary {
	return &Unary{exprBase: exprBase{base: base{Token: tok}}, Op: op, Operand: operand}
}

func (u *Unary) String() string { return u.Op.Dunder() + " " + u.Operand.String() }

// Conditional is the `if cond then a else b` ternary expression form.
type Conditional struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

func NewConditional(tok token.Token, cond, then, els Expr) *Conditional {
	return &Conditional{exprBase: exprBase{base: base{Token: tok}}, Cond: cond, Then: then, Else: els}
}

func (c *Conditional) String() string {
	return "if " + c.Cond.String() + " then " + c.Then.String() + " else " + c.Else.String()
}

// Assignment is `lhs = rhs` as an expression (it yields void).
type Assignment struct {
	exprBase
	Target Expr
	Value  Expr
}

func NewAssignment(tok token.Token, target, value Expr) *Assignment {
	return &Assignment{exprBase: exprBase{base: base{Token: tok}}, Target: target, Value: value}
}

func (a *Assignment) String() string { return a.Target.String() + " = " + a.Value.String() }

// Subscript is `expr[index]`, used for list/map element access.
type Subscript struct {
	exprBase
	Target Expr
	Index  Expr
}

func NewSubscript(tok token.Token, target, index Expr) *Subscript {
	return &Subscript{exprBase: exprBase{base: base{Token: tok}}, Target: target, Index: index}
}

func (s *Subscript) String() string { return s.Target.String() + "[" + s.Index.String() + "]" }

// Dot is `expr.field`, used for record-constructor field access.
type Dot struct {
	exprBase
	Target Expr
	Field  string
}

func NewDot(tok token.Token, target Expr, field string) *Dot {
	return &Dot{exprBase: exprBase{base: base{Token: tok}}, Target: target, Field: field}
}

func (d *Dot) String() string { return d.Target.String() + "." + d.Field }

// NamespaceAccess is `ns::name`, an explicitly namespace-qualified
// reference to a type, variable or function.
type NamespaceAccess struct {
	exprBase
	Namespace string
	Name      string
}

func NewNamespaceAccess(tok token.Token, namespace, name string) *NamespaceAccess {
	return &NamespaceAccess{exprBase: exprBase{base: base{Token: tok}}, Namespace: namespace, Name: name}
}

func (n *NamespaceAccess) String() string { return n.Namespace + "::" + n.Name }
