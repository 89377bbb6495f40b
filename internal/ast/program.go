package ast

import "github.com/avalon-lang/avalon/internal/token"

// VisitState tracks an import's progress through the topological
// load order, detecting cycles the same way a DFS colors nodes
// white/gray/black.
type VisitState int

const (
	NotVisited VisitState = iota
	Visiting
	Visited
)

// Program is the parsed (and then progressively checked) declaration
// set for a single source file, keyed in the GlobalTable by its FQN.
type Program struct {
	FQN   token.FQN
	Scope *Scope

	// Decls holds every top-level declaration in source order, as
	// written (pre-import-expansion).
	Decls []Decl

	// Imports lists the FQNs this program's import declarations name,
	// in source order.
	Imports []token.FQN

	State VisitState

	// Entry is the function the cleaner selects as this program's
	// entry point, nil until the cleaner runs (and nil permanently for
	// a program that is only ever imported, never run directly).
	Entry *Function
}

func NewProgram(fqn token.FQN) *Program {
	return &Program{
		FQN:   fqn,
		Scope: NewScope(nil),
	}
}

func (p *Program) AddDecl(d Decl) { p.Decls = append(p.Decls, d) }

// GlobalTable owns every Program loaded for a compilation, keyed by
// FQN name, plus the load order the importer discovers them in
// (post-order: a program appears only after everything it imports).
type GlobalTable struct {
	programs map[string]*Program
	order    []string
}

func NewGlobalTable() *GlobalTable {
	return &GlobalTable{programs: map[string]*Program{}}
}

// Get returns the program for a given FQN name, if loaded.
func (g *GlobalTable) Get(fqnName string) (*Program, bool) {
	p, ok := g.programs[fqnName]
	return p, ok
}

// Put registers a program and moves its FQN name to the end of the
// load order. The importer puts a program again once all its imports
// are loaded, which leaves the order post-order.
func (g *GlobalTable) Put(p *Program) {
	name := p.FQN.Name()
	if _, exists := g.programs[name]; exists {
		for i, n := range g.order {
			if n == name {
				g.order = append(g.order[:i], g.order[i+1:]...)
				break
			}
		}
	}
	g.order = append(g.order, name)
	g.programs[name] = p
}

// Order returns every loaded program in dependency (post-order) load
// order: each program appears after every program it transitively
// imports.
func (g *GlobalTable) Order() []*Program {
	out := make([]*Program, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.programs[name])
	}
	return out
}

// Len reports how many programs have been loaded.
func (g *GlobalTable) Len() int { return len(g.programs) }
