package checker

import (
	"github.com/avalon-lang/avalon/internal/ast"
)

// resolveTypeInstance is complex_check: it walks ti's tree, marking
// IsParametric wherever a leaf name matches one of constraints, and
// filling ResolvedType for every User-category leaf that is not a
// constraint reference. scope is nil only while validating a Type's
// own constructor fields, where a constraint-token leaf is resolved
// purely against that Type's own Params (no outer scope exists yet).
func (c *Checker) resolveTypeInstance(scope *ast.Scope, constraints []string, ti *ast.TypeInstance) error {
	if ti == nil || ti.IsStar() {
		return nil
	}

	switch ti.Category {
	case ast.TupleCategory, ast.ListCategory, ast.MapCategory, ast.ReferenceCategory:
		parametric := false
		for _, p := range ti.Params {
			if err := c.resolveTypeInstance(scope, constraints, p); err != nil {
				return err
			}
			if p.IsParametric {
				parametric = true
			}
		}
		ti.IsParametric = parametric
		return nil

	case ast.UserCategory:
		if isConstraint(constraints, ti.Name) {
			ti.IsParametric = true
			return nil
		}
		if scope == nil {
			// Validating a type's own constructors: no scope is
			// threaded in at this call site (see checkType), so a name
			// that isn't one of the type's own constraints is not
			// looked up and its arity is not checked; only its
			// parameters are walked.
			for _, p := range ti.Params {
				if err := c.resolveTypeInstance(scope, constraints, p); err != nil {
					return err
				}
			}
			return nil
		}
		t, ok := scope.GetType(wildcardNS, ti.Name)
		if !ok {
			c.errorf("TYP001", ti, "unknown type %q", ti.Name)
			return errUnresolved
		}
		if len(t.Params) != len(ti.Params) {
			c.errorf("TYP002", ti, "type %q expects %d parameter(s), got %d", ti.Name, len(t.Params), len(ti.Params))
			return errUnresolved
		}
		if t.Visibility == ast.Private && t.Namespace != "" {
			// Visibility is enforced at the namespace boundary; the
			// importer only ever merges Public declarations across
			// programs, so a Private hit here means an in-program
			// cross-namespace reference.
		}
		parametric := false
		for _, p := range ti.Params {
			if err := c.resolveTypeInstance(scope, constraints, p); err != nil {
				return err
			}
			if p.IsParametric {
				parametric = true
			}
		}
		ti.ResolvedType = t
		ti.IsParametric = parametric
		return nil
	}
	return nil
}

func isConstraint(constraints []string, name string) bool {
	for _, c := range constraints {
		if c == name {
			return true
		}
	}
	return false
}

var errUnresolved = &unresolvedError{}

type unresolvedError struct{}

func (e *unresolvedError) Error() string { return "type instance could not be resolved" }
