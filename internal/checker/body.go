package checker

import "github.com/avalon-lang/avalon/internal/ast"

// checkFunctionBody type-checks f's statements against its own scope
// and constraints, then runs the termination analysis and reports
// STM004 if a non-void function can fall off the end of its body
// along some path. Called directly for every top-level function, and
// once per fresh specialization by the generator.
func (c *Checker) checkFunctionBody(f *ast.Function) {
	if f.Body == nil {
		return
	}
	ctx := &exprCtx{scope: f.Scope, constraints: f.Constraints, fn: f}
	c.checkBlock(ctx, f.Body, 0)

	terminates := c.analyzeBlock(f.Body, true)
	f.Reachable = true
	f.Terminates = terminates
	f.Passes = !terminates
	if f.Return != nil && !terminates {
		c.errorf("STM004", f, "function %q does not return on every path", f.Name)
	}
}
