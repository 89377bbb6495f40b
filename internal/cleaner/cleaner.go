// Package cleaner implements the post-check sweep that runs once the
// checker has validated every loaded program: it flags locals that
// were declared but never read, locates and marks the program's
// entry function, and rejects bare statements left at module scope.
package cleaner

import (
	"fmt"
	"sort"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
)

const wildcardNS = "*"

// Clean walks every program the importer loaded for this compilation,
// reporting unused locals as warnings and stray module-scope
// statements as errors, then locates root's entry function. root must
// already appear in table (it is the file named on the command line).
func Clean(root *ast.Program, table *ast.GlobalTable, sink *errors.Sink) {
	findEntry(root, sink)
	for _, prog := range table.Order() {
		cleanProgram(prog, sink)
	}
}

func cleanProgram(prog *ast.Program, sink *errors.Sink) {
	cleanDecls(prog.Decls, sink)
}

// cleanDecls walks decls, recursing into namespace blocks so a
// function or bare statement nested inside `namespace ...:` gets the
// same sweep as one declared at plain module scope.
func cleanDecls(decls []ast.Decl, sink *errors.Sink) {
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.FunctionDecl:
			cleanFunction(decl.Function, sink)
		case *ast.StatementDecl:
			t := decl.Stmt.Tok()
			sink.Error(errors.New("STM006", "statement", "statement declared at module scope",
				errors.Pos{File: t.File, Line: t.Line, Column: t.Column}, false))
		case *ast.NamespaceDecl:
			cleanDecls(decl.Decls, sink)
		}
	}
}

// cleanFunction sweeps the body actually checked for a declaration:
// for a parametric function that is every specialization built for
// it, for a concrete one its own body. A never-called function (not
// Used, not the entry point) is skipped: its unused locals are not
// reported.
func cleanFunction(f *ast.Function, sink *errors.Sink) {
	if !f.Used && !f.IsEntry {
		return
	}
	if f.IsParametric() {
		for _, spec := range f.Specializations {
			walkUnused(spec.Body, sink)
		}
		return
	}
	walkUnused(f.Body, sink)
}

func walkUnused(b *ast.Block, sink *errors.Sink) {
	if b == nil {
		return
	}
	locals := b.Scope.LocalVariables(wildcardNS)
	names := make([]string, 0, len(locals))
	for name := range locals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := locals[name]
		if v.Used {
			continue
		}
		t := v.Tok()
		sink.Warn(errors.New("VAR005", "variable", fmt.Sprintf("local variable %q declared but never used", name),
			errors.Pos{File: t.File, Line: t.Line, Column: t.Column}, false))
	}
	for _, s := range b.Stmts {
		walkUnusedStmt(s, sink)
	}
}

func walkUnusedStmt(s ast.Stmt, sink *errors.Sink) {
	switch st := s.(type) {
	case *ast.IfStmt:
		for _, cl := range st.Clauses {
			walkUnused(cl.Body, sink)
		}
		walkUnused(st.Else, sink)
	case *ast.WhileStmt:
		walkUnused(st.Body, sink)
	}
}

// findEntry looks for a function named __main__ with the required
// shape — a single [string] parameter, void return — among root's own
// top-level declarations (the entry function is never satisfied by an
// imported module; only the file named on the command line is run).
// A match is marked IsEntry/Used so cleanProgram's sweep covers its
// body, and stored on root.Entry for the driver/evaluator to invoke.
func findEntry(root *ast.Program, sink *errors.Sink) {
	for _, d := range root.Decls {
		fd, ok := d.(*ast.FunctionDecl)
		if !ok || fd.Function.Name != "__main__" {
			continue
		}
		fn := fd.Function
		if isEntryShape(fn) {
			fn.IsEntry = true
			fn.Used = true
			root.Entry = fn
			return
		}
	}
	sink.Error(errors.New("FUN005", "function",
		"entry function __main__(args: [string]) -> void not found",
		errors.Pos{File: root.FQN.Path(), Line: 1, Column: 1}, true))
}

func isEntryShape(fn *ast.Function) bool {
	if fn.IsParametric() || len(fn.Params) != 1 {
		return false
	}
	if fn.Return != nil {
		return false
	}
	pt := fn.Params[0].Variable.Declared
	if pt == nil || pt.Category != ast.ListCategory || len(pt.Params) != 1 {
		return false
	}
	elem := pt.Params[0]
	return elem != nil && elem.Category == ast.UserCategory && elem.Name == "string"
}
