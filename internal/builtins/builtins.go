// Package builtins constructs the always-available ast.Program the
// importer implicitly imports into every other program: the
// primitive types (bool, int, float, string, void), the parametric
// Option ADT, the quantum primitive layer (qubit register widths 1,
// 2, 4, 8 plus gate/cgate), and the dunder-named operator functions
// the statement/expression checker desugars binary and unary
// operators to.
//
// The original compiler builds one program per type (avalon_int,
// avalon_float, ...), each importing the others it depends on. This
// registry merges them into a single program under the wildcard
// namespace, which is simpler to wire through a single importer
// entry while preserving the same token/function shape per type.
package builtins

import (
	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/token"
)

// FQNName is the logical name every program implicitly imports.
const FQNName = "__bifqn__"

const wildcardNS = "*"

func tok(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, "__bid__", 0, 0)
}

func identTok(name string) token.Token { return tok(token.IDENTIFIER, name) }

// Program lazily builds and caches the shared builtins program.
var cached *ast.Program

// Program returns the builtins program, building it on first call.
func Program() *ast.Program {
	if cached != nil {
		return cached
	}
	cached = build()
	return cached
}

func build() *ast.Program {
	fqn := token.Builtin(FQNName)
	prog := ast.NewProgram(fqn)
	scope := prog.Scope

	boolT := simpleType(scope, "bool")
	intT := simpleType(scope, "int")
	floatT := simpleType(scope, "float")
	decimalT := simpleType(scope, "decimal")
	bitT := simpleType(scope, "bit")
	stringT := simpleType(scope, "string")
	_ = simpleType(scope, "void")

	boolInst := instanceOf(boolT)
	intInst := instanceOf(intT)
	floatInst := instanceOf(floatT)
	decimalInst := instanceOf(decimalT)
	bitInst := instanceOf(bitT)
	stringInst := instanceOf(stringT)

	// Option[T]: Some(T) | None()
	optionT := ast.NewType(identTok("Option"), "Option", wildcardNS, ast.Public, []string{"T"})
	optionT.Builtin = true
	some := &ast.Constructor{Name: "Some", Kind: ast.DefaultConstructorKind, Params: []*ast.TypeInstance{ast.NewUserInstance(identTok("T"), "T", nil)}}
	some.Token = identTok("Some")
	none := &ast.Constructor{Name: "None", Kind: ast.DefaultConstructorKind}
	none.Token = identTok("None")
	optionT.AddConstructor(some)
	optionT.AddConstructor(none)
	scope.AddType(wildcardNS, optionT)
	prog.AddDecl(ast.NewTypeDecl(optionT))

	// Quantum primitive layer: qubit register widths and gate types.
	qubitInsts := make(map[string]*ast.TypeInstance)
	for _, width := range []string{"qubit1", "qubit2", "qubit4", "qubit8"} {
		q := ast.NewType(identTok(width), width, wildcardNS, ast.Public, nil)
		q.Builtin = true
		q.Quantum = true
		scope.AddType(wildcardNS, q)
		prog.AddDecl(ast.NewTypeDecl(q))
		qubitInsts[width] = instanceOf(q)
	}
	gateInsts := make(map[string]*ast.TypeInstance)
	for _, name := range []string{"gate", "cgate"} {
		g := ast.NewType(identTok(name), name, wildcardNS, ast.Public, nil)
		g.Builtin = true
		g.Quantum = true
		scope.AddType(wildcardNS, g)
		prog.AddDecl(ast.NewTypeDecl(g))
		gateInsts[name] = instanceOf(g)
	}

	// Quantum operator surface: __had__ applies a Hadamard-style gate to
	// a qubit register in place (a qubitN -> qubitN endomorphism, same
	// shape as __not__ on bool/bit below); __cast__ bridges the
	// single-qubit register to/from a classical bit (preparation and
	// measurement), and bridges gate/cgate to/from string, since a gate
	// is constructed by naming it (e.g. "H", "CNOT").
	for _, width := range []string{"qubit1", "qubit2", "qubit4", "qubit8"} {
		addUnary(prog, scope, "__had__", qubitInsts[width], qubitInsts[width])
	}
	addUnary(prog, scope, "__cast__", qubitInsts["qubit1"], bitInst)
	addUnary(prog, scope, "__cast__", bitInst, qubitInsts["qubit1"])
	for _, name := range []string{"gate", "cgate"} {
		addUnary(prog, scope, "__cast__", gateInsts[name], stringInst)
		addUnary(prog, scope, "__cast__", stringInst, gateInsts[name])
	}

	// Comparison + logical operators shared by bool.
	addBinary(prog, scope, "__and__", boolInst, boolInst, boolInst)
	addBinary(prog, scope, "__or__", boolInst, boolInst, boolInst)
	addUnary(prog, scope, "__not__", boolInst, boolInst)
	addBinary(prog, scope, "__eq__", boolInst, boolInst, boolInst)
	addBinary(prog, scope, "__ne__", boolInst, boolInst, boolInst)

	for _, numeric := range []*ast.TypeInstance{intInst, floatInst} {
		addUnary(prog, scope, "__neg__", numeric, numeric)
		addBinary(prog, scope, "__add__", numeric, numeric, numeric)
		addBinary(prog, scope, "__sub__", numeric, numeric, numeric)
		addBinary(prog, scope, "__mul__", numeric, numeric, numeric)
		addBinary(prog, scope, "__div__", numeric, numeric, numeric)
		addBinary(prog, scope, "__mod__", numeric, numeric, numeric)
		addBinary(prog, scope, "__pow__", numeric, numeric, numeric)
		addBinary(prog, scope, "__eq__", numeric, numeric, boolInst)
		addBinary(prog, scope, "__ne__", numeric, numeric, boolInst)
		addBinary(prog, scope, "__gt__", numeric, numeric, boolInst)
		addBinary(prog, scope, "__ge__", numeric, numeric, boolInst)
		addBinary(prog, scope, "__lt__", numeric, numeric, boolInst)
		addBinary(prog, scope, "__le__", numeric, numeric, boolInst)
	}
	addUnary(prog, scope, "__cast__", intInst, floatInst)
	addUnary(prog, scope, "__cast__", floatInst, intInst)
	addUnary(prog, scope, "__cast__", intInst, stringInst)
	addUnary(prog, scope, "__cast__", floatInst, stringInst)

	addBinary(prog, scope, "__add__", stringInst, stringInst, stringInst)
	addBinary(prog, scope, "__eq__", stringInst, stringInst, boolInst)
	addBinary(prog, scope, "__ne__", stringInst, stringInst, boolInst)

	// decimal: the arbitrary-precision sibling of float, forced by the
	// `d` numeric suffix; same arithmetic/comparison surface.
	addUnary(prog, scope, "__neg__", decimalInst, decimalInst)
	addBinary(prog, scope, "__add__", decimalInst, decimalInst, decimalInst)
	addBinary(prog, scope, "__sub__", decimalInst, decimalInst, decimalInst)
	addBinary(prog, scope, "__mul__", decimalInst, decimalInst, decimalInst)
	addBinary(prog, scope, "__div__", decimalInst, decimalInst, decimalInst)
	addBinary(prog, scope, "__eq__", decimalInst, decimalInst, boolInst)
	addBinary(prog, scope, "__ne__", decimalInst, decimalInst, boolInst)
	addUnary(prog, scope, "__cast__", decimalInst, floatInst)
	addUnary(prog, scope, "__cast__", floatInst, decimalInst)

	// bit: a single classical bit, distinct from the quantum qubitN
	// register types above — the `0b` literal base's scalar home.
	addBinary(prog, scope, "__and__", bitInst, bitInst, bitInst)
	addBinary(prog, scope, "__or__", bitInst, bitInst, bitInst)
	addUnary(prog, scope, "__not__", bitInst, bitInst)
	addBinary(prog, scope, "__eq__", bitInst, bitInst, boolInst)
	addBinary(prog, scope, "__ne__", bitInst, bitInst, boolInst)
	addUnary(prog, scope, "__cast__", bitInst, intInst)
	addUnary(prog, scope, "__cast__", intInst, bitInst)

	// math surface (avalon_trig-equivalent): unary float -> float.
	for _, name := range []string{"sqrt", "sin", "cos", "tan", "exp", "log"} {
		addUnary(prog, scope, name, floatInst, floatInst)
	}

	// io surface: println/print take a string, return void.
	voidInst := ast.NewUserInstance(identTok("void"), "void", nil)
	addUnary(prog, scope, "println", stringInst, voidInst)
	addUnary(prog, scope, "print", stringInst, voidInst)

	return prog
}

func simpleType(scope *ast.Scope, name string) *ast.Type {
	t := ast.NewType(identTok(name), name, wildcardNS, ast.Public, nil)
	t.Builtin = true
	scope.AddType(wildcardNS, t)
	return t
}

func instanceOf(t *ast.Type) *ast.TypeInstance {
	inst := ast.NewUserInstance(identTok(t.Name), t.Name, nil)
	inst.ResolvedType = t
	return inst
}

func addUnary(prog *ast.Program, scope *ast.Scope, name string, paramType, retType *ast.TypeInstance) {
	fnScope := ast.NewScope(scope)
	p := ast.NewVariable(identTok("a"), "a", false, paramType, nil)
	p.Parent = fnScope
	fnScope.AddVariable(wildcardNS, p)
	f := ast.NewFunction(identTok(name), name, wildcardNS, ast.Public, nil,
		[]*ast.Param{{Name: "a", Variable: p}}, retType, nil)
	f.Builtin = true
	f.Scope = fnScope
	scope.AddFunction(wildcardNS, f)
	prog.AddDecl(ast.NewFunctionDecl(f))
}

func addBinary(prog *ast.Program, scope *ast.Scope, name string, leftType, rightType, retType *ast.TypeInstance) {
	fnScope := ast.NewScope(scope)
	a := ast.NewVariable(identTok("a"), "a", false, leftType, nil)
	a.Parent = fnScope
	b := ast.NewVariable(identTok("b"), "b", false, rightType, nil)
	b.Parent = fnScope
	fnScope.AddVariable(wildcardNS, a)
	fnScope.AddVariable(wildcardNS, b)
	f := ast.NewFunction(identTok(name), name, wildcardNS, ast.Public, nil,
		[]*ast.Param{{Name: "a", Variable: a}, {Name: "b", Variable: b}}, retType, nil)
	f.Builtin = true
	f.Scope = fnScope
	scope.AddFunction(wildcardNS, f)
	prog.AddDecl(ast.NewFunctionDecl(f))
}
