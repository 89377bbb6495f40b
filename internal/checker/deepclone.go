package checker

import "github.com/avalon-lang/avalon/internal/ast"

// deepCloneBlock builds an entirely independent copy of b's statement
// and expression tree, parented at parent. ast.CloneBlock only copies
// the top-level statement slice, leaving every statement (and every
// expression reachable from it) shared with the generic original; two
// specializations of the same function would otherwise clobber each
// other's substituted types and ExprType annotations on those shared
// nodes. The generator always specializes through this instead.
func deepCloneBlock(b *ast.Block, parent *ast.Scope) *ast.Block {
	if b == nil {
		return nil
	}
	scope := ast.NewScope(parent)
	stmts := make([]ast.Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		stmts[i] = deepCloneStmt(s, scope)
	}
	return ast.NewBlock(b.Tok(), scope, stmts)
}

func deepCloneStmt(s ast.Stmt, scope *ast.Scope) ast.Stmt {
	switch st := s.(type) {
	case *ast.VarDeclStmt:
		v := deepCloneVariable(st.Variable, scope)
		return ast.NewVarDeclStmt(st.Tok(), v)
	case *ast.ExprStmt:
		return ast.NewExprStmt(st.Tok(), deepCloneExpr(st.Expr))
	case *ast.IfStmt:
		clauses := make([]ast.IfClause, len(st.Clauses))
		for i, cl := range st.Clauses {
			clauses[i] = ast.IfClause{Cond: deepCloneExpr(cl.Cond), Body: deepCloneBlock(cl.Body, scope)}
		}
		return ast.NewIfStmt(st.Tok(), clauses, deepCloneBlock(st.Else, scope))
	case *ast.WhileStmt:
		return ast.NewWhileStmt(st.Tok(), deepCloneExpr(st.Cond), deepCloneBlock(st.Body, scope))
	case *ast.BreakStmt:
		return ast.NewBreakStmt(st.Tok())
	case *ast.ContinueStmt:
		return ast.NewContinueStmt(st.Tok())
	case *ast.PassStmt:
		return ast.NewPassStmt(st.Tok())
	case *ast.ReturnStmt:
		var v ast.Expr
		if st.Value != nil {
			v = deepCloneExpr(st.Value)
		}
		return ast.NewReturnStmt(st.Tok(), v)
	default:
		return s
	}
}

func deepCloneVariable(v *ast.Variable, scope *ast.Scope) *ast.Variable {
	var init ast.Expr
	if v.Init != nil {
		init = deepCloneExpr(v.Init)
	}
	clone := ast.NewVariable(v.Tok(), v.Name, v.Mutable, v.Declared, init)
	clone.Parent = scope
	clone.Public = v.Public
	clone.Global = v.Global
	scope.AddVariable(wildcardNS, clone)
	return clone
}

func deepCloneExpr(e ast.Expr) ast.Expr {
	switch ex := e.(type) {
	case nil:
		return nil
	case *ast.Literal:
		return ast.NewLiteral(ex.Tok(), ex.Kind, ex.Value)
	case *ast.Identifier:
		return ast.NewIdentifier(ex.Tok(), ex.Namespace, ex.Name)
	case *ast.Call:
		args := make([]ast.Expr, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = deepCloneExpr(a)
		}
		return ast.NewCall(ex.Tok(), ex.Namespace, ex.Name, args)
	case *ast.Tuple:
		elems := make([]ast.Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = deepCloneExpr(el)
		}
		return ast.NewTuple(ex.Tok(), elems)
	case *ast.List:
		elems := make([]ast.Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = deepCloneExpr(el)
		}
		return ast.NewList(ex.Tok(), elems)
	case *ast.Map:
		entries := make([]ast.MapEntry, len(ex.Entries))
		for i, entry := range ex.Entries {
			entries[i] = ast.MapEntry{Key: deepCloneExpr(entry.Key), Value: deepCloneExpr(entry.Value)}
		}
		return ast.NewMap(ex.Tok(), entries)
	case *ast.Cast:
		target := *ex.Target
		return ast.NewCast(ex.Tok(), deepCloneExpr(ex.Operand), &target)
	case *ast.Binary:
		return ast.NewBinary(ex.Tok(), ex.Op, deepCloneExpr(ex.Left), deepCloneExpr(ex.Right))
	case *ast.Unary:
		return ast.NewUnary(ex.Tok(), ex.Op, deepCloneExpr(ex.Operand))
	case *ast.Conditional:
		return ast.NewConditional(ex.Tok(), deepCloneExpr(ex.Cond), deepCloneExpr(ex.Then), deepCloneExpr(ex.Else))
	case *ast.Assignment:
		return ast.NewAssignment(ex.Tok(), deepCloneExpr(ex.Target), deepCloneExpr(ex.Value))
	case *ast.Subscript:
		return ast.NewSubscript(ex.Tok(), deepCloneExpr(ex.Target), deepCloneExpr(ex.Index))
	case *ast.Grouped:
		return ast.NewGrouped(ex.Tok(), deepCloneExpr(ex.Inner))
	case *ast.Dot:
		return ast.NewDot(ex.Tok(), deepCloneExpr(ex.Target), ex.Field)
	case *ast.NamespaceAccess:
		return ast.NewNamespaceAccess(ex.Tok(), ex.Namespace, ex.Name)
	case *ast.Match:
		arms := make([]ast.MatchArm, len(ex.Arms))
		for i, arm := range ex.Arms {
			var guard ast.Expr
			if arm.Guard != nil {
				guard = deepCloneExpr(arm.Guard)
			}
			arms[i] = ast.MatchArm{Pattern: deepCloneExpr(arm.Pattern), Guard: guard, Body: deepCloneExpr(arm.Body)}
		}
		return ast.NewMatch(ex.Tok(), deepCloneExpr(ex.Scrutinee), arms)
	default:
		return e
	}
}
