package checker

import "github.com/avalon-lang/avalon/internal/ast"

// checkFunctionHeader resolves a function's declared parameter and
// return type instances and enforces the header-level shape rules: a
// public function's parameters and return must themselves be public,
// string/tuple/list/map parameters must be immutable (no `ref`
// wrapper), and quantum types are forbidden as plain (non-`ref`)
// parameters.
func (c *Checker) checkFunctionHeader(f *ast.Function) {
	for _, p := range f.Params {
		decl := p.Variable.Declared
		if decl == nil {
			continue
		}
		if err := c.resolveTypeInstance(f.Scope, f.Constraints, decl); err != nil {
			continue
		}
		p.Variable.Type = decl
		c.checkParamShape(decl)
		if f.Visibility == ast.Public {
			c.checkPublicSurface(decl, f)
		}
	}
	if f.Return != nil {
		if err := c.resolveTypeInstance(f.Scope, f.Constraints, f.Return); err == nil {
			if f.Visibility == ast.Public {
				c.checkPublicSurface(f.Return, f)
			}
		}
	}
}

func (c *Checker) checkParamShape(decl *ast.TypeInstance) {
	if decl.ResolvedType != nil && decl.ResolvedType.Quantum && !decl.IsReference {
		c.errorf("TYP005", decl, "quantum type %q forbidden as a plain parameter; pass by ref", decl.Name)
		return
	}
	inner := decl
	if decl.Category == ast.ReferenceCategory && len(decl.Params) == 1 {
		inner = decl.Params[0]
	}
	immutableOnly := inner.Category == ast.TupleCategory || inner.Category == ast.ListCategory || inner.Category == ast.MapCategory ||
		(inner.Category == ast.UserCategory && inner.Name == "string")
	if immutableOnly && decl.IsReference {
		c.errorf("TYP005", decl, "%s parameters must be immutable (no ref)", inner.Category)
	}
}

func (c *Checker) checkPublicSurface(decl *ast.TypeInstance, f *ast.Function) {
	if decl.ResolvedType != nil && decl.ResolvedType.Visibility == ast.Private {
		c.errorf("TYP004", f, "public function %q cannot use private type %q in its signature", f.Name, decl.ResolvedType.Name)
	}
}
