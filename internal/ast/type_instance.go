package ast

import (
	"fmt"
	"strings"

	"github.com/avalon-lang/avalon/internal/token"
)

// Category tags the structural shape of a TypeInstance.
type Category int

const (
	// UserCategory is a reference to a user- or builtin-declared Type
	// (equality requires Type identity plus pointwise parameters).
	UserCategory Category = iota
	// TupleCategory, ListCategory and MapCategory are structural:
	// equality ignores declared Type identity and compares parameter
	// vectors directly.
	TupleCategory
	ListCategory
	MapCategory
	// ReferenceCategory marks a `ref T` instance; structural like the
	// container categories above, single parameter.
	ReferenceCategory
	// StarCategory is the wildcard used to defer inference.
	StarCategory
)

func (c Category) String() string {
	switch c {
	case UserCategory:
		return "user"
	case TupleCategory:
		return "tuple"
	case ListCategory:
		return "list"
	case MapCategory:
		return "map"
	case ReferenceCategory:
		return "reference"
	case StarCategory:
		return "star"
	default:
		return "unknown"
	}
}

// TypeInstance is a reference to a Type together with actual parameter
// instances (recursive). It is created by the parser from a syntactic
// type annotation and then resolved in place by the type-instance
// checker: ResolvedType starts nil and is filled in once
// complex_check succeeds.
type TypeInstance struct {
	base

	// Name is the head identifier as written (e.g. "Maybe", "int",
	// the constraint token "T").
	Name string

	// Category is the structural tag (User/Tuple/List/Map/Reference/Star).
	Category Category

	// Params are the actual parameter instances, recursive. For Tuple
	// these are the element instances in order; for Map these are
	// [key, value]; for List and Reference these hold exactly one.
	Params []*TypeInstance

	// ResolvedType is the Type this instance names, filled in by
	// complex_check for the User category. Nil until resolved, and
	// always nil for structural/Star categories.
	ResolvedType *Type

	// IsParametric is true iff this instance references a constraint
	// token in scope anywhere in its tree (set by complex_check).
	IsParametric bool

	// IsReference marks an instance written with the `ref` prefix.
	IsReference bool
}

// NewStarInstance builds the wildcard TypeInstance used to defer
// inference (e.g. an omitted return-type argument at a call site).
func NewStarInstance(tok token.Token) *TypeInstance {
	return &TypeInstance{base: base{Token: tok}, Name: "*", Category: StarCategory}
}

// NewTupleInstance builds a structural tuple type instance from its
// ordered element instances.
func NewTupleInstance(tok token.Token, elems []*TypeInstance) *TypeInstance {
	return &TypeInstance{base: base{Token: tok}, Name: "tuple", Category: TupleCategory, Params: elems}
}

// NewListInstance builds a structural list type instance.
func NewListInstance(tok token.Token, elem *TypeInstance) *TypeInstance {
	return &TypeInstance{base: base{Token: tok}, Name: "list", Category: ListCategory, Params: []*TypeInstance{elem}}
}

// NewMapInstance builds a structural map type instance from its key
// and value instances.
func NewMapInstance(tok token.Token, key, val *TypeInstance) *TypeInstance {
	return &TypeInstance{base: base{Token: tok}, Name: "map", Category: MapCategory, Params: []*TypeInstance{key, val}}
}

// NewUserInstance builds a nominal type-instance reference by head
// name and actual parameters, unresolved until complex_check runs.
func NewUserInstance(tok token.Token, name string, params []*TypeInstance) *TypeInstance {
	return &TypeInstance{base: base{Token: tok}, Name: name, Category: UserCategory, Params: params}
}

// NewReferenceInstance wraps an instance as a `ref T` reference type.
func NewReferenceInstance(tok token.Token, inner *TypeInstance) *TypeInstance {
	return &TypeInstance{base: base{Token: tok}, Name: "ref", Category: ReferenceCategory, IsReference: true, Params: []*TypeInstance{inner}}
}

// IsStar reports whether this is the wildcard instance.
func (t *TypeInstance) IsStar() bool { return t.Category == StarCategory }

// IsGround reports whether this instance is ground: not Star, and
// every leaf resolves to a concrete Type (no parametric leaf anywhere).
// A ground instance is the complement of a parametric one — the
// invariant that a non-Star instance is either ground or
// parametric means the two are checked by the same IsParametric flag
// once complex_check has run.
func (t *TypeInstance) IsGround() bool {
	if t.IsStar() {
		return false
	}
	return !t.IsParametric
}

func (t *TypeInstance) String() string {
	switch t.Category {
	case StarCategory:
		return "*"
	case TupleCategory:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case ListCategory:
		return "[" + t.Params[0].String() + "]"
	case MapCategory:
		return fmt.Sprintf("{%s: %s}", t.Params[0].String(), t.Params[1].String())
	case ReferenceCategory:
		return "ref " + t.Params[0].String()
	default:
		if len(t.Params) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("%s[%s]", t.Name, strings.Join(parts, ", "))
	}
}

// StrongCompare requires identical Type identity (for User), identical
// category, and identical parameter vectors under StrongCompare —
// nominal-and-structural equality.
func StrongCompare(a, b *TypeInstance) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Category != b.Category {
		return false
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	if a.Category == UserCategory {
		if a.ResolvedType != b.ResolvedType || a.Name != b.Name {
			return false
		}
	}
	for i := range a.Params {
		if !StrongCompare(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// WeakCompare is structural equality: a Star on either side matches
// anything, a parametric side matches anything of the right shape,
// otherwise identical head and pointwise weak match.
func WeakCompare(a, b *TypeInstance) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsStar() || b.IsStar() {
		return true
	}
	if a.IsParametric || b.IsParametric {
		return true
	}
	if a.Category != b.Category {
		return false
	}
	if a.Category == UserCategory && a.Name != b.Name {
		return false
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !WeakCompare(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// Weight expresses how closely an actual argument type instance
// matches a formal parameter type instance: exactly-equal instances
// score highest, a parametric formal matching any concrete actual
// scores one tier lower, and a Star on either side scores zero. This
// is the ad-hoc scheme the original documents as such (an open
// questions) — reimplemented literally, no embellishment.
func Weight(formal, actual *TypeInstance) int {
	const (
		tierExact      = 2
		tierParametric = 1
		tierNone       = 0
	)
	if formal == nil || actual == nil {
		return tierNone
	}
	if formal.IsStar() || actual.IsStar() {
		return tierNone
	}
	if formal.IsParametric {
		return tierParametric
	}
	if StrongCompare(formal, actual) {
		return tierExact
	}
	if formal.Category == actual.Category && len(formal.Params) == len(actual.Params) {
		sum := 0
		ok := true
		for i := range formal.Params {
			w := Weight(formal.Params[i], actual.Params[i])
			if w == tierNone {
				ok = false
				break
			}
			sum += w
		}
		if ok && len(formal.Params) > 0 {
			return tierParametric
		}
	}
	return tierNone
}

// Mangle produces the canonical string used as a specialization cache
// key: the instance's head name followed by its parameters' mangled
// forms, recursively. Two ground instances with the same shape mangle
// identically regardless of how they were syntactically written.
func (t *TypeInstance) Mangle() string {
	if t == nil {
		return "_"
	}
	switch t.Category {
	case StarCategory:
		return "*"
	case TupleCategory:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.Mangle()
		}
		return "(" + strings.Join(parts, ",") + ")"
	case ListCategory:
		return "[" + t.Params[0].Mangle() + "]"
	case MapCategory:
		return "{" + t.Params[0].Mangle() + ":" + t.Params[1].Mangle() + "}"
	case ReferenceCategory:
		return "ref<" + t.Params[0].Mangle() + ">"
	default:
		if len(t.Params) == 0 {
			return t.Name
		}
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.Mangle()
		}
		return t.Name + "<" + strings.Join(parts, ",") + ">"
	}
}

// MangleSignature builds the specialization key for a function call:
// the mangled parameter vector followed by the mangled return
// instance, matching mangle(concrete_params, concrete_return).
func MangleSignature(name string, params []*TypeInstance, ret *TypeInstance) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Mangle()
	}
	return fmt.Sprintf("%s(%s)->%s", name, strings.Join(parts, ","), ret.Mangle())
}
