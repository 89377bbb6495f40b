// Package checker is the semantic front-end's type-instance checker,
// function resolver, function generator, statement/expression checker
// and reachability analyzer, run in that order over an already-imported
// ast.Program.
package checker

import (
	"fmt"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
)

const wildcardNS = "*"

// Checker drives every check stage over a single Program. A fresh
// Checker is created per program by the driver; the generator's
// specialization cache lives on each Function itself, so nothing here
// needs to survive across programs.
type Checker struct {
	sink *errors.Sink
	gen  *generator
}

// New creates a Checker reporting diagnostics to sink.
func New(sink *errors.Sink) *Checker {
	c := &Checker{sink: sink}
	c.gen = newGenerator(sink, c.checkFunctionBody)
	return c
}

// CheckProgram validates every type and function declared in prog,
// including those nested inside namespace blocks: type-instance
// resolution and header checks first (so forward references between
// sibling declarations resolve), then every function body, then
// reachability.
func (c *Checker) CheckProgram(prog *ast.Program) {
	decls := flattenDecls(prog.Decls)
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.TypeDecl:
			c.checkType(decl.Type)
		case *ast.FunctionDecl:
			c.checkFunctionHeader(decl.Function)
		case *ast.VariableDecl:
			c.checkModuleVariable(decl.Variable)
		}
	}
	for _, d := range decls {
		fd, ok := d.(*ast.FunctionDecl)
		if !ok {
			continue
		}
		// A parametric function's body references constraint tokens
		// with no concrete operator surface of their own; it is only
		// ever checked once concrete, as each call site's generator
		// specialization. Checking the generic original directly would
		// report spurious FUN001s for every operator on a constrained
		// parameter.
		if fd.Function.IsParametric() {
			continue
		}
		c.checkFunctionBody(fd.Function)
	}
}

// flattenDecls expands namespace blocks in place so every type,
// function, and variable declaration is visited regardless of
// nesting, while leaving the NamespaceDecl itself out of the result
// (its own declarations, not the wrapper, are what callers check).
func flattenDecls(decls []ast.Decl) []ast.Decl {
	var out []ast.Decl
	for _, d := range decls {
		if ns, ok := d.(*ast.NamespaceDecl); ok {
			out = append(out, flattenDecls(ns.Decls)...)
			continue
		}
		out = append(out, d)
	}
	return out
}

func (c *Checker) errorf(code string, tok ast.Node, format string, args ...any) {
	t := tok.Tok()
	c.sink.Error(errors.New(code, phaseOf(code), fmt.Sprintf(format, args...),
		errors.Pos{File: t.File, Line: t.Line, Column: t.Column}, false))
}

func phaseOf(code string) string {
	if info, ok := errors.GetInfo(code); ok {
		return info.Phase
	}
	return "check"
}

func (c *Checker) checkType(t *ast.Type) {
	if t.State == ast.Valid || t.State == ast.Invalid {
		return
	}
	if t.State == ast.Validating {
		// Recursive constructor field referencing its own owner type is
		// legal (e.g. a list-like ADT); re-entering just means "assume
		// valid for now", matched against concrete instances later.
		return
	}
	t.State = ast.Validating
	ok := true
	for _, ctor := range t.Constructors {
		fields := ctor.Params
		if ctor.Kind == ast.RecordConstructorKind {
			fields = ctor.FieldTypes
		}
		for _, field := range fields {
			if err := c.resolveTypeInstance(nil, t.Params, field); err != nil {
				ok = false
			}
		}
	}
	if ok {
		t.State = ast.Valid
	} else {
		t.State = ast.Invalid
	}
}

func (c *Checker) checkModuleVariable(v *ast.Variable) {
	scope := v.Parent
	if v.Declared != nil {
		if err := c.resolveTypeInstance(scope, nil, v.Declared); err != nil {
			return
		}
	}
	if v.Init != nil {
		initType, err := c.checkExpr(&exprCtx{scope: scope, constraints: nil}, v.Init)
		if err == nil {
			v.Type = chooseDeclaredOrInferred(v.Declared, initType)
		}
	} else if v.Declared != nil {
		v.Type = v.Declared
	}
}

func chooseDeclaredOrInferred(declared, inferred *ast.TypeInstance) *ast.TypeInstance {
	if declared != nil {
		return declared
	}
	return inferred
}
