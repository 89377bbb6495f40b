package checker

import (
	"github.com/avalon-lang/avalon/internal/ast"
)

// exprCtx carries what checkExpr needs at every recursion point: the
// lexical scope to resolve names against, the enclosing function's
// constraints (for resolving parametric annotations written inline,
// e.g. a cast target), and the enclosing function itself (nil at
// module scope, where assignment/return have no function to check
// against).
type exprCtx struct {
	scope       *ast.Scope
	constraints []string
	fn          *ast.Function
}

var literalTypeName = map[ast.LiteralKind]string{
	ast.IntLiteral:     "int",
	ast.FloatLiteral:   "float",
	ast.DecimalLiteral: "decimal",
	ast.BitLiteral:     "bit",
	ast.QubitLiteral:   "qubit1",
	ast.StringLiteral:  "string",
	ast.BoolLiteral:    "bool",
}

// checkExpr infers and annotates e's type, resolving names, desugaring
// operators to calls, and recursing into every subexpression.
func (c *Checker) checkExpr(ctx *exprCtx, e ast.Expr) (*ast.TypeInstance, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return c.checkLiteral(ctx, ex)
	case *ast.Identifier:
		return c.checkIdentifier(ctx, ex)
	case *ast.Call:
		return c.checkCall(ctx, ex)
	case *ast.Tuple:
		return c.checkTuple(ctx, ex)
	case *ast.List:
		return c.checkList(ctx, ex)
	case *ast.Map:
		return c.checkMap(ctx, ex)
	case *ast.Cast:
		return c.checkCast(ctx, ex)
	case *ast.Binary:
		return c.checkBinary(ctx, ex)
	case *ast.Unary:
		return c.checkUnary(ctx, ex)
	case *ast.Conditional:
		return c.checkConditional(ctx, ex)
	case *ast.Match:
		return c.checkMatch(ctx, ex)
	case *ast.Assignment:
		return c.checkAssignment(ctx, ex)
	case *ast.Subscript:
		return c.checkSubscript(ctx, ex)
	case *ast.Grouped:
		t, err := c.checkExpr(ctx, ex.Inner)
		if err == nil {
			ex.SetExprType(t)
		}
		return t, err
	case *ast.Dot:
		return c.checkDot(ctx, ex)
	case *ast.NamespaceAccess:
		return c.checkNamespaceAccess(ctx, ex)
	default:
		return nil, nil
	}
}

func (c *Checker) checkLiteral(ctx *exprCtx, l *ast.Literal) (*ast.TypeInstance, error) {
	name, ok := literalTypeName[l.Kind]
	if !ok {
		return nil, nil
	}
	t, ok := ctx.scope.GetType(wildcardNS, name)
	if !ok {
		return nil, nil
	}
	ti := ast.NewUserInstance(l.Tok(), name, nil)
	ti.ResolvedType = t
	l.SetExprType(ti)
	return ti, nil
}

func (c *Checker) checkIdentifier(ctx *exprCtx, id *ast.Identifier) (*ast.TypeInstance, error) {
	ns := id.Namespace
	if ns == "" {
		ns = wildcardNS
	}
	v, ok := ctx.scope.GetVariable(ns, id.Name)
	if !ok {
		c.errorf("VAR004", id, "undeclared variable %q", id.Name)
		return nil, errUnresolved
	}
	v.Used = true
	id.ResolvedVariable = v
	id.SetExprType(v.Type)
	return v.Type, nil
}

func (c *Checker) argTypes(ctx *exprCtx, args []ast.Expr) ([]*ast.TypeInstance, error) {
	out := make([]*ast.TypeInstance, len(args))
	var firstErr error
	for i, a := range args {
		t, err := c.checkExpr(ctx, a)
		out[i] = t
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return out, firstErr
}

func (c *Checker) checkCall(ctx *exprCtx, call *ast.Call) (*ast.TypeInstance, error) {
	argTypes, err := c.argTypes(ctx, call.Args)
	if err != nil {
		return nil, err
	}
	ns := call.Namespace
	if ns == "" {
		ns = wildcardNS
	}
	f, err := c.resolveCall(ctx.scope, ns, call.Name, argTypes, nil, call.Tok())
	if err != nil {
		return nil, err
	}
	f.Used = true
	specialized, err := c.gen.specialize(f, argTypes, call.Tok())
	if err != nil {
		return nil, err
	}
	call.ResolvedFunction = specialized
	call.SetExprType(specialized.Return)
	return specialized.Return, nil
}

func (c *Checker) checkTuple(ctx *exprCtx, tup *ast.Tuple) (*ast.TypeInstance, error) {
	elems := make([]*ast.TypeInstance, len(tup.Elements))
	var firstErr error
	for i, e := range tup.Elements {
		t, err := c.checkExpr(ctx, e)
		elems[i] = t
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	ti := ast.NewTupleInstance(tup.Tok(), elems)
	tup.SetExprType(ti)
	return ti, nil
}

func (c *Checker) checkList(ctx *exprCtx, l *ast.List) (*ast.TypeInstance, error) {
	var elem *ast.TypeInstance
	for _, e := range l.Elements {
		t, err := c.checkExpr(ctx, e)
		if err != nil {
			return nil, err
		}
		if elem == nil {
			elem = t
		} else if !ast.WeakCompare(elem, t) {
			c.errorf("TYP003", e, "list elements must share a single type; found %s alongside %s", t.String(), elem.String())
			return nil, errUnresolved
		}
	}
	if elem == nil {
		elem = ast.NewStarInstance(l.Tok())
	}
	ti := ast.NewListInstance(l.Tok(), elem)
	l.SetExprType(ti)
	return ti, nil
}

func (c *Checker) checkMap(ctx *exprCtx, m *ast.Map) (*ast.TypeInstance, error) {
	var keyT, valT *ast.TypeInstance
	for _, entry := range m.Entries {
		kt, err := c.checkExpr(ctx, entry.Key)
		if err != nil {
			return nil, err
		}
		vt, err := c.checkExpr(ctx, entry.Value)
		if err != nil {
			return nil, err
		}
		if keyT == nil {
			keyT, valT = kt, vt
			continue
		}
		if !ast.WeakCompare(keyT, kt) || !ast.WeakCompare(valT, vt) {
			c.errorf("TYP003", entry.Key, "map entries must share a single key/value type")
			return nil, errUnresolved
		}
	}
	if keyT == nil {
		keyT = ast.NewStarInstance(m.Tok())
		valT = ast.NewStarInstance(m.Tok())
	}
	ti := ast.NewMapInstance(m.Tok(), keyT, valT)
	m.SetExprType(ti)
	return ti, nil
}

func (c *Checker) checkCast(ctx *exprCtx, cast *ast.Cast) (*ast.TypeInstance, error) {
	operandT, err := c.checkExpr(ctx, cast.Operand)
	if err != nil {
		return nil, err
	}
	if err := c.resolveTypeInstance(ctx.scope, ctx.constraints, cast.Target); err != nil {
		return nil, err
	}
	f, err := c.resolveCall(ctx.scope, wildcardNS, "__cast__", []*ast.TypeInstance{operandT}, cast.Target, cast.Tok())
	if err != nil {
		return nil, err
	}
	f.Used = true
	cast.SetExprType(cast.Target)
	return cast.Target, nil
}

func (c *Checker) checkBinary(ctx *exprCtx, b *ast.Binary) (*ast.TypeInstance, error) {
	lt, err := c.checkExpr(ctx, b.Left)
	if err != nil {
		return nil, err
	}
	rt, err := c.checkExpr(ctx, b.Right)
	if err != nil {
		return nil, err
	}
	call := ast.NewCall(b.Tok(), "", b.Op.Dunder(), []ast.Expr{b.Left, b.Right})
	f, err := c.resolveCall(ctx.scope, wildcardNS, b.Op.Dunder(), []*ast.TypeInstance{lt, rt}, nil, b.Tok())
	if err != nil {
		return nil, err
	}
	f.Used = true
	specialized, err := c.gen.specialize(f, []*ast.TypeInstance{lt, rt}, b.Tok())
	if err != nil {
		return nil, err
	}
	call.ResolvedFunction = specialized
	call.SetExprType(specialized.Return)
	b.Desugared = call
	b.SetExprType(specialized.Return)
	return specialized.Return, nil
}

func (c *Checker) checkUnary(ctx *exprCtx, u *ast.Unary) (*ast.TypeInstance, error) {
	ot, err := c.checkExpr(ctx, u.Operand)
	if err != nil {
		return nil, err
	}
	call := ast.NewCall(u.Tok(), "", u.Op.Dunder(), []ast.Expr{u.Operand})
	f, err := c.resolveCall(ctx.scope, wildcardNS, u.Op.Dunder(), []*ast.TypeInstance{ot}, nil, u.Tok())
	if err != nil {
		return nil, err
	}
	f.Used = true
	specialized, err := c.gen.specialize(f, []*ast.TypeInstance{ot}, u.Tok())
	if err != nil {
		return nil, err
	}
	call.ResolvedFunction = specialized
	call.SetExprType(specialized.Return)
	u.Desugared = call
	u.SetExprType(specialized.Return)
	return specialized.Return, nil
}

func (c *Checker) checkConditional(ctx *exprCtx, cond *ast.Conditional) (*ast.TypeInstance, error) {
	ct, err := c.checkExpr(ctx, cond.Cond)
	if err != nil {
		return nil, err
	}
	if !isBool(ct) {
		c.errorf("STM001", cond.Cond, "condition must be bool, found %s", describeType(ct))
	}
	thenT, err := c.checkExpr(ctx, cond.Then)
	if err != nil {
		return nil, err
	}
	elseT, err := c.checkExpr(ctx, cond.Else)
	if err != nil {
		return nil, err
	}
	if !ast.WeakCompare(thenT, elseT) {
		c.errorf("TYP003", cond, "if-expression branches disagree: %s vs %s", describeType(thenT), describeType(elseT))
		return nil, errUnresolved
	}
	result := thenT
	if thenT == nil || thenT.IsParametric {
		result = elseT
	}
	cond.SetExprType(result)
	return result, nil
}

func (c *Checker) checkMatch(ctx *exprCtx, m *ast.Match) (*ast.TypeInstance, error) {
	_, err := c.checkExpr(ctx, m.Scrutinee)
	if err != nil {
		return nil, err
	}
	var resultT *ast.TypeInstance
	for _, arm := range m.Arms {
		if arm.Guard != nil {
			gt, err := c.checkExpr(ctx, arm.Guard)
			if err == nil && !isBool(gt) {
				c.errorf("STM001", arm.Guard, "match guard must be bool, found %s", describeType(gt))
			}
		}
		bt, err := c.checkExpr(ctx, arm.Body)
		if err != nil {
			continue
		}
		if resultT == nil || resultT.IsParametric {
			resultT = bt
		} else if bt != nil && !bt.IsParametric && !ast.WeakCompare(resultT, bt) {
			c.errorf("TYP003", arm.Body, "match arms disagree: %s vs %s", describeType(resultT), describeType(bt))
		}
	}
	m.SetExprType(resultT)
	return resultT, nil
}

func (c *Checker) checkAssignment(ctx *exprCtx, a *ast.Assignment) (*ast.TypeInstance, error) {
	targetT, err := c.checkExpr(ctx, a.Target)
	if err != nil {
		return nil, err
	}
	if id, ok := a.Target.(*ast.Identifier); ok && id.ResolvedVariable != nil && !id.ResolvedVariable.Mutable {
		c.errorf("VAR003", a.Target, "cannot assign to immutable variable %q", id.ResolvedVariable.Name)
	}
	valT, err := c.checkExpr(ctx, a.Value)
	if err != nil {
		return nil, err
	}
	if targetT != nil && valT != nil && !ast.WeakCompare(targetT, valT) {
		c.errorf("TYP003", a, "cannot assign %s to a variable of type %s", describeType(valT), describeType(targetT))
	}
	a.SetExprType(nil)
	return nil, nil
}

func (c *Checker) checkSubscript(ctx *exprCtx, s *ast.Subscript) (*ast.TypeInstance, error) {
	targetT, err := c.checkExpr(ctx, s.Target)
	if err != nil {
		return nil, err
	}
	if _, err := c.checkExpr(ctx, s.Index); err != nil {
		return nil, err
	}
	if targetT == nil {
		return nil, nil
	}
	switch targetT.Category {
	case ast.ListCategory:
		s.SetExprType(targetT.Params[0])
		return targetT.Params[0], nil
	case ast.MapCategory:
		s.SetExprType(targetT.Params[1])
		return targetT.Params[1], nil
	default:
		c.errorf("TYP001", s, "%s is not subscriptable", describeType(targetT))
		return nil, errUnresolved
	}
}

func (c *Checker) checkDot(ctx *exprCtx, d *ast.Dot) (*ast.TypeInstance, error) {
	targetT, err := c.checkExpr(ctx, d.Target)
	if err != nil {
		return nil, err
	}
	if targetT == nil || targetT.ResolvedType == nil {
		return nil, nil
	}
	for _, ctor := range targetT.ResolvedType.Constructors {
		if ctor.Kind != ast.RecordConstructorKind {
			continue
		}
		if ft := ctor.FieldType(d.Field); ft != nil {
			d.SetExprType(ft)
			return ft, nil
		}
	}
	c.errorf("TYP001", d, "type %q has no field %q", targetT.ResolvedType.Name, d.Field)
	return nil, errUnresolved
}

func (c *Checker) checkNamespaceAccess(ctx *exprCtx, n *ast.NamespaceAccess) (*ast.TypeInstance, error) {
	if v, ok := ctx.scope.GetVariable(n.Namespace, n.Name); ok {
		v.Used = true
		n.SetExprType(v.Type)
		return v.Type, nil
	}
	c.errorf("VAR004", n, "undeclared variable %q in namespace %q", n.Name, n.Namespace)
	return nil, errUnresolved
}

func isBool(t *ast.TypeInstance) bool {
	return t != nil && t.Category == ast.UserCategory && t.Name == "bool"
}

func describeType(t *ast.TypeInstance) string {
	if t == nil {
		return "void"
	}
	return t.String()
}

