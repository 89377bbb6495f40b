package ast

import (
	"strings"

	"github.com/avalon-lang/avalon/internal/token"
)

// Param is a single formal parameter: its name and backing Variable.
type Param struct {
	Name     string
	Variable *Variable
}

// Function is a (possibly parametric) function declaration. The same
// struct is shallow-cloned by the generator to produce a
// specialization; Specializations holds those clones keyed by their
// mangled concrete signature.
type Function struct {
	base

	Name         string // current name (== OriginalName unless specialized)
	OriginalName string // name before any specialization

	FQN       token.Token
	Namespace string

	Visibility Visibility
	Builtin    bool
	Used       bool

	// Constraints are this function's formal type parameters.
	Constraints []string

	Params []*Param
	Return *TypeInstance

	Body *Block

	// Scope is this function's own scope, child of the declaring
	// program's root scope.
	Scope *Scope

	// Specializations holds concrete instantiations, keyed by
	// MangleSignature(name, paramTypes, returnType). Owned by this
	// Function: specializations are never re-inserted into a global
	// declaration table.
	Specializations map[string]*Function

	// Reachable/Terminates/Passes mirror the per-declaration flags of
	// the reachability analyzer, evaluated for the function's body as a whole.
	Reachable  bool
	Terminates bool
	Passes     bool

	// IsEntry marks the function selected by the cleaner as the
	// program's single entry point.
	IsEntry bool
}

func NewFunction(tok token.Token, name, namespace string, vis Visibility, constraints []string, params []*Param, ret *TypeInstance, body *Block) *Function {
	return &Function{
		base:            base{Token: tok},
		Name:            name,
		OriginalName:    name,
		Namespace:       namespace,
		Visibility:      vis,
		Constraints:     constraints,
		Params:          params,
		Return:          ret,
		Body:            body,
		Specializations: map[string]*Function{},
	}
}

// Arity is the declared parameter count.
func (f *Function) Arity() int { return len(f.Params) }

// IsConstraint reports whether name is one of this function's own
// formal type parameters.
func (f *Function) IsConstraint(name string) bool {
	for _, c := range f.Constraints {
		if c == name {
			return true
		}
	}
	return false
}

// IsParametric reports whether this function declares any constraints
// at all.
func (f *Function) IsParametric() bool { return len(f.Constraints) > 0 }

// ParamTypes returns the ordered parameter type instances.
func (f *Function) ParamTypes() []*TypeInstance {
	out := make([]*TypeInstance, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Variable.Declared
	}
	return out
}

func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name + ": " + p.Variable.Declared.String()
	}
	ret := "void"
	if f.Return != nil {
		ret = f.Return.String()
	}
	return "def " + f.Name + "(" + strings.Join(parts, ", ") + ") -> " + ret
}

// ShallowClone makes a copy of this Function as the starting point
// for the generator: each parameter Variable and the Return instance
// are copied one level deep (nested TypeInstances are shared), and
// Body is a CloneBlock copy whose statements are shared with the
// original. The clone has its own Scope holding the copied parameter
// Variables.
func (f *Function) ShallowClone() *Function {
	clone := *f
	clone.Scope = NewScope(f.Scope.Parent)
	clone.Params = make([]*Param, len(f.Params))
	for i, p := range f.Params {
		v := *p.Variable
		v.Parent = clone.Scope
		clone.Params[i] = &Param{Name: p.Name, Variable: &v}
		clone.Scope.AddVariable(wildcardNamespace, &v)
	}
	if f.Return != nil {
		r := *f.Return
		clone.Return = &r
	}
	if f.Body != nil {
		clone.Body = CloneBlock(f.Body, clone.Scope)
	}
	clone.Specializations = map[string]*Function{}
	return &clone
}
