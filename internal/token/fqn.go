package token

import "strings"

// builtinPath is the reserved sentinel filesystem path for FQNs that
// have no backing source file (the registry's built-in programs).
const builtinPath = "__bifqn__"

// ModuleExtension is the fixed file extension source files carry.
const ModuleExtension = ".avl"

// FQN is a fully qualified module name: a (logical_name, filesystem_path)
// pair. The conversion between the two is bijective — dots in the
// logical name map to path separators plus ModuleExtension.
type FQN struct {
	name string
	path string
}

// NewFQN builds an FQN from an explicit name/path pair, as builtin
// programs do (their path is the reserved sentinel).
func NewFQN(name, path string) FQN {
	return FQN{name: name, path: path}
}

// FromName derives an FQN from a logical, dotted module name
// ("foo.bar.baz"), computing its canonical path
// ("foo/bar/baz" + ModuleExtension) by the bijective mapping.
func FromName(name string) FQN {
	parts := strings.Split(name, ".")
	path := strings.Join(parts, "/") + ModuleExtension
	return FQN{name: name, path: path}
}

// FromPath derives an FQN from a filesystem path, stripping
// ModuleExtension and turning separators back into dots — the inverse
// of FromName.
func FromPath(path string) FQN {
	trimmed := strings.TrimSuffix(path, ModuleExtension)
	trimmed = strings.ReplaceAll(trimmed, "\\", "/")
	name := strings.ReplaceAll(trimmed, "/", ".")
	return FQN{name: name, path: path}
}

// Builtin constructs the reserved built-in FQN for a primitive program
// (e.g. "int", "bool") — these have no filesystem backing.
func Builtin(name string) FQN {
	return FQN{name: "__bifqn_" + name + "__", path: builtinPath}
}

// Name returns the dotted logical name.
func (f FQN) Name() string { return f.name }

// Path returns the filesystem-equivalent path.
func (f FQN) Path() string { return f.path }

// IsBuiltin reports whether this FQN has no filesystem backing.
func (f FQN) IsBuiltin() bool { return f.path == builtinPath }

// Equal compares two FQNs by logical name, per the original's
// operator== (path is a derived, canonical function of name).
func (f FQN) Equal(other FQN) bool { return f.name == other.name }

func (f FQN) String() string { return f.name }
