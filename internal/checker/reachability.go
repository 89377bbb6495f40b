package checker

import "github.com/avalon-lang/avalon/internal/ast"

// analyzeBlock walks b in order, setting each statement's Reachable,
// Terminates and Passes flags, and returns whether b as a whole is
// guaranteed to terminate the enclosing function on every path
// (return, or an if/elif/.../else whose every branch terminates).
// entryReachable is false only when b itself sits behind an already
// terminated predecessor — dead code the diagnostic marks but still
// walks, so every nested statement still gets its flags set.
func (c *Checker) analyzeBlock(b *ast.Block, entryReachable bool) bool {
	if b == nil {
		return false
	}
	reachable := entryReachable
	terminated := false
	for _, s := range b.Stmts {
		flags := s.Flags()
		flags.Reachable = reachable
		term := c.analyzeStmt(s, reachable)
		flags.Terminates = term
		switch s.(type) {
		case *ast.BreakStmt, *ast.ContinueStmt:
			flags.Passes = false
		default:
			flags.Passes = !term
		}
		if term {
			terminated = true
		}
		if !flags.Passes {
			reachable = false
		}
	}
	return terminated
}

func (c *Checker) analyzeStmt(s ast.Stmt, reachable bool) bool {
	switch st := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.IfStmt:
		allTerminate := st.Else != nil
		for _, cl := range st.Clauses {
			if !c.analyzeBlock(cl.Body, reachable) {
				allTerminate = false
			}
		}
		if st.Else != nil && !c.analyzeBlock(st.Else, reachable) {
			allTerminate = false
		}
		return allTerminate
	case *ast.WhileStmt:
		c.analyzeBlock(st.Body, reachable)
		return false
	default:
		return false
	}
}
