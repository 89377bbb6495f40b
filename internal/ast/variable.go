package ast

import "github.com/avalon-lang/avalon/internal/token"

// Variable is a binding: a token, mutability flag, optional declared
// type instance, initializer expression, and the flags the checker and
// cleaner flip in place as they walk the program.
type Variable struct {
	base

	Name        string
	Mutable     bool
	Declared    *TypeInstance // nil if inferred from Init
	Init        Expr
	Type        *TypeInstance // filled in by the checker, ground or parametric

	Global     bool
	Public     bool
	Used       bool
	Reachable  bool
	Initialized bool // true once Init has been evaluated-in-order (use-before-init check)

	// Parent is the scope this variable was declared into. Go's
	// garbage collector handles the child→parent cycle the original's
	// "weak pointer" comment calls out; no manual
	// weak-reference emulation is needed.
	Parent *Scope
}

func NewVariable(tok token.Token, name string, mutable bool, declared *TypeInstance, init Expr) *Variable {
	return &Variable{
		base:     base{Token: tok},
		Name:     name,
		Mutable:  mutable,
		Declared: declared,
		Init:     init,
	}
}

func (v *Variable) String() string {
	if v.Mutable {
		return "var " + v.Name
	}
	return "val " + v.Name
}
