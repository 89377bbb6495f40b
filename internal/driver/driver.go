// Package driver sequences the whole front-end over a source file:
// import (which itself scans, tokenizes and parses every transitively
// imported module), check every loaded program, clean the result, and
// hand the checked entry function to an evaluator.
package driver

import (
	"fmt"
	"io"
	"sort"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/checker"
	"github.com/avalon-lang/avalon/internal/cleaner"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/evaluator"
	"github.com/avalon-lang/avalon/internal/importer"
)

// Driver owns one compilation's diagnostic sink and global table.
type Driver struct {
	Sink  *errors.Sink
	Eval  evaluator.Evaluator
	table *ast.GlobalTable
}

// New creates a Driver. eval may be nil, in which case
// evaluator.Unavailable is used — Run will still fully check and clean
// the program, only execution itself is refused.
func New(eval evaluator.Evaluator) *Driver {
	if eval == nil {
		eval = evaluator.Unavailable{}
	}
	return &Driver{Sink: errors.NewSink(), Eval: eval}
}

// Table returns the global table accumulated by the last Compile call.
func (d *Driver) Table() *ast.GlobalTable { return d.table }

// Compile loads path and every module it transitively imports,
// type-checks every one of them, then runs the cleaner over the whole
// table. It returns the root program even when a fatal error aborted
// checking, since partial diagnostics are still useful to the caller.
func (d *Driver) Compile(path string) (*ast.Program, error) {
	imp := importer.New(d.Sink)
	root, err := imp.LoadFile(path)
	if err != nil {
		return nil, err
	}
	d.table = imp.Table()

	for _, prog := range d.table.Order() {
		if prog.FQN.IsBuiltin() {
			continue
		}
		checker.New(d.Sink).CheckProgram(prog)
	}
	if d.Sink.HasFatal() {
		return root, errors.Wrap(errors.New("IMP003", "import", "compilation aborted by a fatal diagnostic",
			errors.Pos{File: path}, true))
	}

	cleaner.Clean(root, d.table, d.Sink)
	return root, nil
}

// Run compiles path then, if compilation produced no error diagnostic
// and located an entry function, hands it to the configured evaluator
// along with args. It returns the process exit code the caller should
// use.
func (d *Driver) Run(path string, args []string) int {
	root, err := d.Compile(path)
	if err != nil {
		return 1
	}
	if d.Sink.Failed() {
		return 1
	}
	if root.Entry == nil {
		return 1
	}
	code, err := d.Eval.Run(root.Entry, args)
	if err != nil {
		d.Sink.Error(errors.New("FUN005", "function", err.Error(), errors.Pos{File: path}, true))
		return 1
	}
	return code
}

// DumpGlobalTable writes, for every loaded program in dependency
// order, its FQN, the FQNs it imports, and the names of its public
// declarations — a debugging aid equivalent to the teacher's module
// loader dump, surfaced through cmd/avalon's --dump-scope flag.
func (d *Driver) DumpGlobalTable(w io.Writer) {
	if d.table == nil {
		return
	}
	for _, prog := range d.table.Order() {
		fmt.Fprintf(w, "%s\n", prog.FQN.Name())
		for _, imp := range prog.Imports {
			fmt.Fprintf(w, "  imports %s\n", imp.Name())
		}
		for _, name := range publicDeclNames(prog) {
			fmt.Fprintf(w, "  exports %s\n", name)
		}
	}
}

func publicDeclNames(prog *ast.Program) []string {
	var names []string
	collectPublicDeclNames(prog.Decls, &names)
	sort.Strings(names)
	return names
}

// collectPublicDeclNames recurses into namespace blocks so a public
// declaration nested inside `namespace ...:` is listed the same as one
// declared at plain module scope.
func collectPublicDeclNames(decls []ast.Decl, names *[]string) {
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.TypeDecl:
			if decl.Type.Visibility == ast.Public {
				*names = append(*names, "type "+decl.Type.Name)
			}
		case *ast.FunctionDecl:
			if decl.Function.Visibility == ast.Public {
				*names = append(*names, "def "+decl.Function.Name)
			}
		case *ast.VariableDecl:
			if decl.Variable.Public {
				*names = append(*names, "var "+decl.Variable.Name)
			}
		case *ast.NamespaceDecl:
			collectPublicDeclNames(decl.Decls, names)
		}
	}
}
