package checker

import (
	"fmt"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/token"
)

// generator is the function specializer (monomorphizer): given a
// parametric Function and the concrete argument types a call site
// provides, it substitutes every constraint token throughout the
// function's header and body with its bound concrete type instance,
// producing (and caching) a fully concrete Function the statement/
// expression checker can then validate like any non-generic one.
type generator struct {
	sink      *errors.Sink
	checkBody func(*ast.Function)
}

func newGenerator(sink *errors.Sink, checkBody func(*ast.Function)) *generator {
	return &generator{sink: sink, checkBody: checkBody}
}

// specialize returns f unchanged if it is not parametric; otherwise it
// binds f's constraints against argTypes, builds the specialization
// cache key, and either returns the cached clone or builds, checks and
// caches a new one.
func (g *generator) specialize(f *ast.Function, argTypes []*ast.TypeInstance, at token.Token) (*ast.Function, error) {
	if !f.IsParametric() {
		return f, nil
	}

	bindings := map[string]*ast.TypeInstance{}
	formals := f.ParamTypes()
	for i, actual := range argTypes {
		if i >= len(formals) {
			break
		}
		if err := g.bind(formals[i], actual, bindings, at); err != nil {
			return nil, err
		}
	}

	concreteReturn := substitute(f.Return, bindings)
	key := ast.MangleSignature(f.Name, argTypes, concreteReturn)
	if cached, ok := f.Specializations[key]; ok {
		return cached, nil
	}

	clone := f.ShallowClone()
	clone.Name = fmt.Sprintf("%s$%s", f.OriginalName, shortMangle(argTypes))
	clone.Constraints = nil
	for _, p := range clone.Params {
		p.Variable.Declared = substitute(p.Variable.Declared, bindings)
		p.Variable.Type = p.Variable.Declared
	}
	clone.Return = concreteReturn
	// f.Body's statements and expressions are shared syntax; rebuild an
	// independent tree so this specialization's substitutions and
	// ExprType annotations never clobber a sibling specialization's.
	clone.Body = deepCloneBlock(f.Body, clone.Scope)
	substituteBlock(clone.Body, bindings)

	f.Specializations[key] = clone
	g.checkBody(clone)
	return clone, nil
}

func shortMangle(ts []*ast.TypeInstance) string {
	out := ""
	for i, t := range ts {
		if i > 0 {
			out += ","
		}
		out += t.Mangle()
	}
	return out
}

// bind unifies a (possibly parametric) formal type instance against a
// concrete actual one, recording each constraint-token leaf's binding.
// A constraint already bound to a structurally different concrete
// instance is FUN003 — the specialization can't be made consistent.
func (g *generator) bind(formal, actual *ast.TypeInstance, bindings map[string]*ast.TypeInstance, at token.Token) error {
	if formal == nil || actual == nil || formal.IsStar() {
		return nil
	}
	if formal.Category == ast.UserCategory && formal.ResolvedType == nil && formal.IsParametric {
		if existing, ok := bindings[formal.Name]; ok {
			if !ast.StrongCompare(existing, actual) {
				g.sink.Error(errors.New("FUN003", "function",
					fmt.Sprintf("constraint %q bound to both %s and %s", formal.Name, existing.String(), actual.String()),
					errors.Pos{File: at.File, Line: at.Line, Column: at.Column}, false))
				return errUnresolved
			}
			return nil
		}
		bindings[formal.Name] = actual
		return nil
	}
	if len(formal.Params) != len(actual.Params) {
		return nil
	}
	for i := range formal.Params {
		if err := g.bind(formal.Params[i], actual.Params[i], bindings, at); err != nil {
			return err
		}
	}
	return nil
}

// substitute rebuilds ti with every constraint-token leaf replaced by
// its bound concrete instance, leaving everything else shared.
func substitute(ti *ast.TypeInstance, bindings map[string]*ast.TypeInstance) *ast.TypeInstance {
	if ti == nil {
		return nil
	}
	if ti.Category == ast.UserCategory && ti.IsParametric && len(ti.Params) == 0 {
		if bound, ok := bindings[ti.Name]; ok {
			return bound
		}
		return ti
	}
	if len(ti.Params) == 0 {
		return ti
	}
	newParams := make([]*ast.TypeInstance, len(ti.Params))
	changed := false
	for i, p := range ti.Params {
		newParams[i] = substitute(p, bindings)
		if newParams[i] != p {
			changed = true
		}
	}
	if !changed {
		return ti
	}
	clone := *ti
	clone.Params = newParams
	return &clone
}

// substituteBlock rewrites every explicit type annotation reachable
// from a function body's statements in place: local variable
// declarations and cast targets. Expression result types are not
// touched here — the statement/expression checker assigns those fresh
// when it walks the specialized clone's body.
func substituteBlock(b *ast.Block, bindings map[string]*ast.TypeInstance) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		substituteStmt(s, bindings)
	}
}

func substituteStmt(s ast.Stmt, bindings map[string]*ast.TypeInstance) {
	switch st := s.(type) {
	case *ast.VarDeclStmt:
		if st.Variable.Declared != nil {
			st.Variable.Declared = substitute(st.Variable.Declared, bindings)
		}
		substituteExpr(st.Variable.Init, bindings)
	case *ast.ExprStmt:
		substituteExpr(st.Expr, bindings)
	case *ast.IfStmt:
		for _, cl := range st.Clauses {
			substituteExpr(cl.Cond, bindings)
			substituteBlock(cl.Body, bindings)
		}
		substituteBlock(st.Else, bindings)
	case *ast.WhileStmt:
		substituteExpr(st.Cond, bindings)
		substituteBlock(st.Body, bindings)
	case *ast.ReturnStmt:
		substituteExpr(st.Value, bindings)
	}
}

func substituteExpr(e ast.Expr, bindings map[string]*ast.TypeInstance) {
	switch ex := e.(type) {
	case nil:
	case *ast.Cast:
		ex.Target = substitute(ex.Target, bindings)
		substituteExpr(ex.Operand, bindings)
	case *ast.Call:
		for _, a := range ex.Args {
			substituteExpr(a, bindings)
		}
	case *ast.Binary:
		substituteExpr(ex.Left, bindings)
		substituteExpr(ex.Right, bindings)
	case *ast.Unary:
		substituteExpr(ex.Operand, bindings)
	case *ast.Tuple:
		for _, el := range ex.Elements {
			substituteExpr(el, bindings)
		}
	case *ast.List:
		for _, el := range ex.Elements {
			substituteExpr(el, bindings)
		}
	case *ast.Map:
		for _, entry := range ex.Entries {
			substituteExpr(entry.Key, bindings)
			substituteExpr(entry.Value, bindings)
		}
	case *ast.Conditional:
		substituteExpr(ex.Cond, bindings)
		substituteExpr(ex.Then, bindings)
		substituteExpr(ex.Else, bindings)
	case *ast.Assignment:
		substituteExpr(ex.Target, bindings)
		substituteExpr(ex.Value, bindings)
	case *ast.Subscript:
		substituteExpr(ex.Target, bindings)
		substituteExpr(ex.Index, bindings)
	case *ast.Grouped:
		substituteExpr(ex.Inner, bindings)
	case *ast.Match:
		substituteExpr(ex.Scrutinee, bindings)
		for _, arm := range ex.Arms {
			substituteExpr(arm.Guard, bindings)
			substituteExpr(arm.Body, bindings)
		}
	}
}
