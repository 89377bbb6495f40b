package ast

import "github.com/avalon-lang/avalon/internal/token"

// Decl is implemented by every top-level declaration a Program holds
// in source order: imports, namespace blocks, types, functions, and
// module-scope variable/statement declarations (the last of which the
// cleaner flags as stray).
type Decl interface {
	Node
	declNode()
}

type declBase struct{ base }

func (d *declBase) declNode() {}

// ImportDecl names a module to bring into scope, by its dotted
// logical name (e.g. "io", "std.collections").
type ImportDecl struct {
	declBase
	Name string
	FQN  token.FQN
}

func NewImportDecl(tok token.Token, name string, fqn token.FQN) *ImportDecl {
	return &ImportDecl{declBase: declBase{base{Token: tok}}, Name: name, FQN: fqn}
}

func (d *ImportDecl) String() string { return "import " + d.Name }

// NamespaceDecl groups a sequence of declarations under an explicit
// namespace name (the supplemented first-class `ns` block).
type NamespaceDecl struct {
	declBase
	Name  string
	Decls []Decl
}

func NewNamespaceDecl(tok token.Token, name string, decls []Decl) *NamespaceDecl {
	return &NamespaceDecl{declBase: declBase{base{Token: tok}}, Name: name, Decls: decls}
}

func (d *NamespaceDecl) String() string { return "ns " + d.Name }

// TypeDecl wraps a Type as a top-level declaration.
type TypeDecl struct {
	declBase
	Type *Type
}

func NewTypeDecl(t *Type) *TypeDecl {
	return &TypeDecl{declBase: declBase{base{Token: t.Token}}, Type: t}
}

func (d *TypeDecl) String() string { return d.Type.String() }

// FunctionDecl wraps a Function as a top-level declaration.
type FunctionDecl struct {
	declBase
	Function *Function
}

func NewFunctionDecl(f *Function) *FunctionDecl {
	return &FunctionDecl{declBase: declBase{base{Token: f.Token}}, Function: f}
}

func (d *FunctionDecl) String() string { return d.Function.String() }

// VariableDecl wraps a module-scope Variable as a top-level
// declaration.
type VariableDecl struct {
	declBase
	Variable *Variable
}

func NewVariableDecl(v *Variable) *VariableDecl {
	return &VariableDecl{declBase: declBase{base{Token: v.Token}}, Variable: v}
}

func (d *VariableDecl) String() string { return d.Variable.String() }

// StatementDecl wraps a bare statement found at module scope. No
// statement kind is legal here; the cleaner reports every one as a
// stray statement (STM006).
type StatementDecl struct {
	declBase
	Stmt Stmt
}

func NewStatementDecl(s Stmt) *StatementDecl {
	return &StatementDecl{declBase: declBase{base{Token: s.Tok()}}, Stmt: s}
}

func (d *StatementDecl) String() string { return d.Stmt.String() }
