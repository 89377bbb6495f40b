package ast

import (
	"strconv"
	"strings"

	"github.com/avalon-lang/avalon/internal/token"
)

// ValidationState short-circuits recursive type checks: a Type being
// validated that is re-entered (e.g. via a recursive constructor field)
// is detected by seeing Validating rather than recursing forever.
type ValidationState int

const (
	Unknown ValidationState = iota
	Validating
	Valid
	Invalid
)

// Visibility controls whether a declaration is usable from outside its
// declaring namespace.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// ConstructorKind distinguishes the two constructor flavors a Type
// may declare.
type ConstructorKind int

const (
	DefaultConstructorKind ConstructorKind = iota
	RecordConstructorKind
)

// Constructor is keyed within its Type by (Name, Arity). Default
// constructors carry ordered parameter instances; record constructors
// carry named fields instead.
type Constructor struct {
	base
	Name   string
	Kind   ConstructorKind
	Params []*TypeInstance // default-constructor positional parameters

	FieldNames []string        // record-constructor field names, in order
	FieldTypes []*TypeInstance // parallel to FieldNames

	Owner *Type // the type this constructor builds
}

// Arity is the constructor's parameter count.
func (c *Constructor) Arity() int {
	if c.Kind == RecordConstructorKind {
		return len(c.FieldNames)
	}
	return len(c.Params)
}

func (c *Constructor) String() string {
	if c.Kind == RecordConstructorKind {
		parts := make([]string, len(c.FieldNames))
		for i, n := range c.FieldNames {
			parts[i] = n + ": " + c.FieldTypes[i].String()
		}
		return c.Name + "{" + strings.Join(parts, ", ") + "}"
	}
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// FieldType returns the declared type instance of a named field on a
// record constructor, or nil if absent.
func (c *Constructor) FieldType(name string) *TypeInstance {
	for i, n := range c.FieldNames {
		if n == name {
			return c.FieldTypes[i]
		}
	}
	return nil
}

// Type is a named nominal declaration: a name, declaring FQN and
// namespace, visibility, formal type parameters (constraint tokens),
// a set of constructors, a quantum flag, and a specialization map.
type Type struct {
	base

	Name       string
	FQN        token.Token // carries the declaring program's FQN name in Lexeme
	Namespace  string
	Visibility Visibility

	// Params are the formal constraint tokens ("T", "U", ...).
	Params []string

	// Constructors are keyed by "name/arity".
	Constructors map[string]*Constructor

	// Quantum marks a type from the quantum primitive layer (qubit
	// register widths, gate/cgate); forbidden as a plain function
	// parameter.
	Quantum bool

	// Builtin marks a type declared by the registry rather than user
	// source.
	Builtin bool

	State ValidationState

	// Specializations holds concrete instantiations of this type,
	// keyed by the mangled parameter vector. Consumed only by a later
	// stage: the core stores but never interprets
	// these beyond key/value lookup.
	Specializations map[string]*Type
}

// NewType builds an empty Type declaration ready to receive
// constructors.
func NewType(tok token.Token, name, namespace string, vis Visibility, params []string) *Type {
	return &Type{
		base:            base{Token: tok},
		Name:            name,
		Namespace:       namespace,
		Visibility:      vis,
		Params:          params,
		Constructors:    map[string]*Constructor{},
		Specializations: map[string]*Type{},
		State:           Unknown,
	}
}

// Arity is the number of formal type parameters.
func (t *Type) Arity() int { return len(t.Params) }

// IsConstraint reports whether name is one of this type's own formal
// parameters (relevant only while checking the type's own
// constructors, not at arbitrary call sites).
func (t *Type) IsConstraint(name string) bool {
	for _, p := range t.Params {
		if p == name {
			return true
		}
	}
	return false
}

func (t *Type) AddConstructor(c *Constructor) {
	c.Owner = t
	key := c.Name + "/" + strconv.Itoa(c.Arity())
	t.Constructors[key] = c
}

func (t *Type) GetConstructor(name string, arity int) (*Constructor, bool) {
	c, ok := t.Constructors[name+"/"+strconv.Itoa(arity)]
	return c, ok
}

func (t *Type) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	return t.Name + "[" + strings.Join(t.Params, ", ") + "]"
}

