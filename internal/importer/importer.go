// Package importer resolves Avalon import declarations into a
// dependency-ordered internal/ast.GlobalTable: it searches
// AVALON_HOME (and a couple of conventional fallbacks) for each
// imported FQN's source file, parses it, recurses into its own
// imports with cycle detection, and copies every public declaration
// in a dependency's wildcard (top-level) namespace into the importing
// program's scope. Declarations inside `namespace` blocks are not
// copied.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/builtins"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/lexer"
	"github.com/avalon-lang/avalon/internal/parser"
	"github.com/avalon-lang/avalon/internal/token"
)

// Importer owns the global table and search path for a single
// compilation.
type Importer struct {
	sink        *errors.Sink
	table       *ast.GlobalTable
	searchPaths []string

	// trace records, per FQN name, the chain of imports that led to
	// it — surfaced on an IMP001/IMP002 failure as a
	// resolution trace (the supplemented diagnostic detail, since a
	// bare "file not found" gives no clue which import statement,
	// however many levels up, is actually at fault).
	trace []string
}

// New creates an Importer. AVALON_HOME, if set, is a
// filepath.ListSeparator-delimited list of directories searched after
// the current directory.
func New(sink *errors.Sink) *Importer {
	return &Importer{
		sink:        sink,
		table:       ast.NewGlobalTable(),
		searchPaths: defaultSearchPaths(),
	}
}

func defaultSearchPaths() []string {
	paths := []string{"."}
	if home := os.Getenv("AVALON_HOME"); home != "" {
		paths = append(paths, strings.Split(home, string(os.PathListSeparator))...)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".avalon", "modules"))
	}
	return paths
}

// Table returns the global table accumulated so far.
func (imp *Importer) Table() *ast.GlobalTable { return imp.table }

// LoadFile loads and fully resolves the program at path as the
// compilation's root, along with everything it (transitively)
// imports. The builtins program is always merged in first.
func (imp *Importer) LoadFile(path string) (*ast.Program, error) {
	bi := builtins.Program()
	bi.State = ast.Visited
	imp.table.Put(bi)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fqn := token.FromPath(imp.relativeToSearchRoot(abs))
	return imp.load(fqn, abs)
}

// Load resolves and loads fqn if not already loaded, recursing into
// its own imports.
func (imp *Importer) Load(fqn token.FQN) (*ast.Program, error) {
	if p, ok := imp.table.Get(fqn.Name()); ok {
		if p.State == ast.Visiting {
			return nil, imp.cycleError(fqn)
		}
		return p, nil
	}
	path, err := imp.resolvePath(fqn)
	if err != nil {
		r := errors.New("IMP001", "import", fmt.Sprintf("module %q not found: %v", fqn.Name(), err),
			errors.Pos{File: fqn.Path()}, true).WithData("trace", append([]string{}, imp.trace...))
		imp.sink.Error(r)
		return nil, errors.Wrap(r)
	}
	return imp.load(fqn, path)
}

func (imp *Importer) load(fqn token.FQN, path string) (*ast.Program, error) {
	imp.trace = append(imp.trace, fqn.Name())
	defer func() { imp.trace = imp.trace[:len(imp.trace)-1] }()

	prog := ast.NewProgram(fqn)
	prog.State = ast.Visiting
	imp.table.Put(prog)

	src, err := os.ReadFile(path)
	if err != nil {
		r := errors.New("IMP001", "import", fmt.Sprintf("cannot read %q: %v", path, err),
			errors.Pos{File: path}, true)
		imp.sink.Error(r)
		return nil, errors.Wrap(r)
	}

	l := lexer.New(src, path, imp.sink)
	parser.ParseInto(l, prog, imp.sink)
	if imp.sink.HasFatal() {
		return nil, errors.Wrap(errors.New("IMP003", "import",
			fmt.Sprintf("parse failure loading %q", fqn.Name()), errors.Pos{File: path}, true))
	}

	// Builtins are always implicitly visible.
	imp.mergePublic(prog, builtinsProgram())

	var firstErr error
	for _, depFQN := range prog.Imports {
		dep, err := imp.Load(depFQN)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue // keep resolving siblings so the sink collects every failure
		}
		imp.mergePublic(prog, dep)
	}

	prog.State = ast.Visited
	imp.table.Put(prog)
	if firstErr != nil {
		return prog, firstErr
	}
	return prog, nil
}

func builtinsProgram() *ast.Program { return builtins.Program() }

// mergePublic copies every public type, variable and function
// declared directly in dep's scope into importer's scope, under the
// wildcard namespace (so they resolve the same way a program's own
// top-level declarations do). A name collision with something already
// present is reported as IMP005 rather than silently shadowed.
func (imp *Importer) mergePublic(importer, dep *ast.Program) {
	for ns, types := range allNamespaces(dep.Scope) {
		for name, t := range dep.Scope.LocalTypes(ns) {
			if t.Visibility != ast.Public {
				continue
			}
			if existing, ok := importer.Scope.GetType(wildcardNS, name); ok && existing != t {
				imp.collision("IMP005", t.Tok(), "type", name)
				continue
			}
			importer.Scope.AddType(wildcardNS, t)
		}
		for name, v := range dep.Scope.LocalVariables(ns) {
			if !v.Public {
				continue
			}
			if existing, ok := importer.Scope.GetVariable(wildcardNS, name); ok && existing != v {
				imp.collision("IMP005", v.Tok(), "variable", name)
				continue
			}
			importer.Scope.AddVariable(wildcardNS, v)
		}
		for _, fns := range dep.Scope.LocalFunctions(ns) {
			for _, f := range fns {
				if f.Visibility != ast.Public {
					continue
				}
				existing := importer.Scope.GetFunctions(wildcardNS, f.Name)
				already := false
				for _, c := range existing {
					if c == f {
						already = true
						break
					}
				}
				if already {
					continue // merged before (builtins, or a diamond import)
				}
				if sameArityOverloadExists(existing, f) {
					imp.collision("IMP005", f.Tok(), "function", f.Name)
					continue
				}
				importer.Scope.AddFunction(wildcardNS, f)
			}
		}
	}
}

// allNamespaces returns the one namespace key mergePublic walks: the
// wildcard namespace the parser inserts top-level declarations under.
// Declarations made inside a `namespace` block live under their own
// key and are not returned here.
func allNamespaces(s *ast.Scope) map[string]struct{} {
	return map[string]struct{}{wildcardNS: {}}
}

const wildcardNS = "*"

// sameArityOverloadExists reports whether candidates already contains
// an overload with f's exact (weakly-compared) parameter shape and
// return type — the collision IMP005 reports. Overloads that differ
// only in return type (such as the builtin casts) do not collide.
func sameArityOverloadExists(candidates []*ast.Function, f *ast.Function) bool {
	for _, c := range candidates {
		if c.Arity() != f.Arity() {
			continue
		}
		match := true
		cp, fp := c.ParamTypes(), f.ParamTypes()
		for i := range cp {
			if !ast.WeakCompare(cp[i], fp[i]) {
				match = false
				break
			}
		}
		if match && ast.WeakCompare(c.Return, f.Return) {
			return true
		}
	}
	return false
}

func (imp *Importer) collision(code string, tok token.Token, kind, name string) {
	imp.sink.Error(errors.New(code, "import",
		fmt.Sprintf("%s %q collides with an existing import", kind, name),
		errors.Pos{File: tok.File, Line: tok.Line, Column: tok.Column}, false))
}

func (imp *Importer) cycleError(fqn token.FQN) error {
	chain := append(append([]string{}, imp.trace...), fqn.Name())
	r := errors.New("IMP002", "import",
		fmt.Sprintf("cyclic import: %s", strings.Join(chain, " -> ")),
		errors.Pos{File: fqn.Path()}, true).WithData("trace", chain)
	imp.sink.Error(r)
	return errors.Wrap(r)
}

func (imp *Importer) resolvePath(fqn token.FQN) (string, error) {
	rel := fqn.Path()
	for _, sp := range imp.searchPaths {
		candidate := filepath.Join(sp, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("searched %s", strings.Join(imp.searchPaths, ", "))
}

// relativeToSearchRoot finds which search path contains abs and
// returns abs relative to it, so a root file loaded directly by
// LoadFile derives the exact same FQN name that a sibling program's
// `import` of it would resolve to — without this, a self-importing
// entry file would be assigned two different table keys and its own
// cycle would go undetected.
func (imp *Importer) relativeToSearchRoot(abs string) string {
	for _, sp := range imp.searchPaths {
		spAbs, err := filepath.Abs(sp)
		if err != nil {
			continue
		}
		if rel, err := filepath.Rel(spAbs, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, abs); err == nil {
			return rel
		}
	}
	return abs
}
