package ast

// Scope is a hierarchical namespace: a lookup against it walks its own
// tables, then the "*" wildcard namespace, then its Parent. Go's
// garbage collector resolves the child→parent reference cycle; a
// plain pointer is enough where the original needed a weak_ptr.
type Scope struct {
	Parent *Scope

	// types, variables and functions are keyed by namespace ("*" for
	// the wildcard import-all namespace), then by local key.
	types     map[string]map[string]*Type
	variables map[string]map[string]*Variable
	// functions are keyed by name within a namespace; every overload
	// of that name, of any arity, shares one list.
	functions map[string]map[string][]*Function
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:    parent,
		types:     map[string]map[string]*Type{},
		variables: map[string]map[string]*Variable{},
		functions: map[string]map[string][]*Function{},
	}
}

const wildcardNamespace = "*"

func ensureTypeNS(m map[string]map[string]*Type, ns string) map[string]*Type {
	if m[ns] == nil {
		m[ns] = map[string]*Type{}
	}
	return m[ns]
}

func ensureVarNS(m map[string]map[string]*Variable, ns string) map[string]*Variable {
	if m[ns] == nil {
		m[ns] = map[string]*Variable{}
	}
	return m[ns]
}

func ensureFuncNS(m map[string]map[string][]*Function, ns string) map[string][]*Function {
	if m[ns] == nil {
		m[ns] = map[string][]*Function{}
	}
	return m[ns]
}

// AddType inserts a Type declaration into the given namespace of this
// scope. Returns false if a type of that name already exists there
// (types, unlike functions, do not overload).
func (s *Scope) AddType(ns string, t *Type) bool {
	tbl := ensureTypeNS(s.types, ns)
	if _, exists := tbl[t.Name]; exists {
		return false
	}
	tbl[t.Name] = t
	return true
}

// AddVariable inserts a Variable into the given namespace of this
// scope. Returns false if a variable of that name already exists
// there.
func (s *Scope) AddVariable(ns string, v *Variable) bool {
	tbl := ensureVarNS(s.variables, ns)
	if _, exists := tbl[v.Name]; exists {
		return false
	}
	tbl[v.Name] = v
	return true
}

// AddFunction inserts a Function into the given namespace, grouped
// with any other overloads sharing its name.
func (s *Scope) AddFunction(ns string, f *Function) {
	tbl := ensureFuncNS(s.functions, ns)
	key := f.Name
	tbl[key] = append(tbl[key], f)
}

// GetType looks up a type named `name` by searching, in order: the
// given namespace in this scope, the wildcard namespace in this
// scope, then the parent scope (recursively).
func (s *Scope) GetType(ns, name string) (*Type, bool) {
	if s == nil {
		return nil, false
	}
	if tbl, ok := s.types[ns]; ok {
		if t, ok := tbl[name]; ok {
			return t, true
		}
	}
	if ns != wildcardNamespace {
		if tbl, ok := s.types[wildcardNamespace]; ok {
			if t, ok := tbl[name]; ok {
				return t, true
			}
		}
	}
	return s.Parent.GetType(ns, name)
}

// GetVariable looks up a variable named `name` with the same
// namespace → wildcard → parent search order as GetType.
func (s *Scope) GetVariable(ns, name string) (*Variable, bool) {
	if s == nil {
		return nil, false
	}
	if tbl, ok := s.variables[ns]; ok {
		if v, ok := tbl[name]; ok {
			return v, true
		}
	}
	if ns != wildcardNamespace {
		if tbl, ok := s.variables[wildcardNamespace]; ok {
			if v, ok := tbl[name]; ok {
				return v, true
			}
		}
	}
	return s.Parent.GetVariable(ns, name)
}

// GetFunctions returns every overload named `name` visible from this
// scope, collecting matches from this scope's namespace, its
// wildcard namespace, and then the parent scope — all candidates are
// gathered (not short-circuited) so the resolver can weigh all of
// them for the function resolver.
func (s *Scope) GetFunctions(ns, name string) []*Function {
	if s == nil {
		return nil
	}
	var out []*Function
	if tbl, ok := s.functions[ns]; ok {
		out = append(out, tbl[name]...)
	}
	if ns != wildcardNamespace {
		if tbl, ok := s.functions[wildcardNamespace]; ok {
			out = append(out, tbl[name]...)
		}
	}
	out = append(out, s.Parent.GetFunctions(ns, name)...)
	return out
}

// LocalTypes returns the types declared directly in this scope's own
// namespace (not the wildcard namespace, not ancestor scopes) — used
// by the importer's mergePublic.
func (s *Scope) LocalTypes(ns string) map[string]*Type {
	return s.types[ns]
}

// LocalVariables returns the variables declared directly in this
// scope's own namespace.
func (s *Scope) LocalVariables(ns string) map[string]*Variable {
	return s.variables[ns]
}

// LocalFunctions returns the functions declared directly in this
// scope's own namespace.
func (s *Scope) LocalFunctions(ns string) map[string][]*Function {
	return s.functions[ns]
}
