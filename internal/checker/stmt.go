package checker

import "github.com/avalon-lang/avalon/internal/ast"

// checkBlock type-checks every statement in b in order, threading a
// scope-narrowed copy of ctx so each statement sees locals declared
// earlier in the same block. loopDepth lets break/continue validate
// they sit inside a WhileStmt.
func (c *Checker) checkBlock(ctx *exprCtx, b *ast.Block, loopDepth int) {
	if b == nil {
		return
	}
	inner := *ctx
	inner.scope = b.Scope
	for _, s := range b.Stmts {
		c.checkStmt(&inner, s, loopDepth)
	}
}

func (c *Checker) checkStmt(ctx *exprCtx, s ast.Stmt, loopDepth int) {
	switch st := s.(type) {
	case *ast.VarDeclStmt:
		c.checkVarDeclStmt(ctx, st)
	case *ast.ExprStmt:
		c.checkExpr(ctx, st.Expr)
	case *ast.IfStmt:
		for _, cl := range st.Clauses {
			c.checkCondition(ctx, cl.Cond)
			c.checkBlock(ctx, cl.Body, loopDepth)
		}
		c.checkBlock(ctx, st.Else, loopDepth)
	case *ast.WhileStmt:
		c.checkCondition(ctx, st.Cond)
		c.checkBlock(ctx, st.Body, loopDepth+1)
	case *ast.BreakStmt:
		if loopDepth == 0 {
			c.errorf("STM002", st, "break outside of a loop")
		}
	case *ast.ContinueStmt:
		if loopDepth == 0 {
			c.errorf("STM002", st, "continue outside of a loop")
		}
	case *ast.PassStmt:
		// no-op. A pass alongside sibling statements is accepted;
		// nothing reports STM003.
	case *ast.ReturnStmt:
		c.checkReturnStmt(ctx, st)
	}
}

func (c *Checker) checkCondition(ctx *exprCtx, cond ast.Expr) {
	t, err := c.checkExpr(ctx, cond)
	if err == nil && !isBool(t) {
		c.errorf("STM001", cond, "condition must be bool, found %s", describeType(t))
	}
}

func (c *Checker) checkVarDeclStmt(ctx *exprCtx, st *ast.VarDeclStmt) {
	v := st.Variable
	v.Parent = ctx.scope
	if v.Declared != nil {
		if err := c.resolveTypeInstance(ctx.scope, ctx.constraints, v.Declared); err != nil {
			return
		}
	}
	if v.Init != nil {
		initType, err := c.checkExpr(ctx, v.Init)
		if err != nil {
			return
		}
		if v.Declared != nil && initType != nil && !ast.WeakCompare(v.Declared, initType) {
			c.errorf("TYP003", v, "initializer type %s does not match declared type %s", describeType(initType), describeType(v.Declared))
		}
		v.Type = chooseDeclaredOrInferred(v.Declared, initType)
	} else {
		v.Type = v.Declared
	}
	v.Initialized = v.Init != nil
}

func (c *Checker) checkReturnStmt(ctx *exprCtx, st *ast.ReturnStmt) {
	var declaredRet *ast.TypeInstance
	if ctx.fn != nil {
		declaredRet = ctx.fn.Return
	}
	if st.Value == nil {
		if declaredRet != nil {
			c.errorf("STM005", st, "missing return value; function declares return type %s", describeType(declaredRet))
		}
		return
	}
	valT, err := c.checkExpr(ctx, st.Value)
	if err != nil {
		return
	}
	if declaredRet == nil {
		c.errorf("STM005", st, "void function cannot return a value of type %s", describeType(valT))
		return
	}
	if valT != nil && !ast.WeakCompare(declaredRet, valT) {
		c.errorf("STM005", st, "returned type %s does not match declared return type %s", describeType(valT), describeType(declaredRet))
	}
}
