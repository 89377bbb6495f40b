package parser

import (
	"testing"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/lexer"
	"github.com/avalon-lang/avalon/internal/token"
)

func parseSrc(t *testing.T, src string) (*ast.Program, *errors.Sink) {
	t.Helper()
	sink := errors.NewSink()
	l := lexer.New([]byte(src), "test.avl", sink)
	prog := Parse(l, token.FromName("test"), sink)
	return prog, sink
}

func TestParseSimpleFunctionDecl(t *testing.T) {
	prog, sink := parseSrc(t, "def f(x: int) -> int:\n    return x\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	fd, ok := prog.Decls[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Decls[0])
	}
	if fd.Function.Name != "f" {
		t.Errorf("function name = %q, want %q", fd.Function.Name, "f")
	}
	if len(fd.Function.Params) != 1 || fd.Function.Params[0].Name != "x" {
		t.Errorf("unexpected params: %+v", fd.Function.Params)
	}
	if fd.Function.Return == nil {
		t.Fatal("expected a non-void return type")
	}
	if len(fd.Function.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fd.Function.Body.Stmts))
	}
	if _, ok := fd.Function.Body.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Errorf("expected a ReturnStmt, got %T", fd.Function.Body.Stmts[0])
	}
}

func TestParseParametricFunctionConstraints(t *testing.T) {
	prog, sink := parseSrc(t, "def identity[T](x: T) -> T:\n    return x\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	fd := prog.Decls[0].(*ast.FunctionDecl)
	if len(fd.Function.Constraints) != 1 || fd.Function.Constraints[0] != "T" {
		t.Errorf("constraints = %v, want [T]", fd.Function.Constraints)
	}
}

func TestParseTypeDeclWithConstructors(t *testing.T) {
	prog, sink := parseSrc(t, "type Option[T]:\n    Some(T)\n    None\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	td, ok := prog.Decls[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeDecl, got %T", prog.Decls[0])
	}
	if td.Type.Name != "Option" {
		t.Errorf("type name = %q, want %q", td.Type.Name, "Option")
	}
	if len(td.Type.Constructors) != 2 {
		t.Fatalf("expected 2 constructors, got %d", len(td.Type.Constructors))
	}
	if td.Type.Constructors[0].Name != "Some" || td.Type.Constructors[0].Kind != ast.DefaultConstructorKind {
		t.Errorf("unexpected first constructor: %+v", td.Type.Constructors[0])
	}
}

func TestParsePrivateTypeDecl(t *testing.T) {
	prog, sink := parseSrc(t, "private type Secret:\n    Box(int)\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	td := prog.Decls[0].(*ast.TypeDecl)
	if td.Type.Visibility != ast.Private {
		t.Errorf("expected private visibility, got %v", td.Type.Visibility)
	}
}

func TestParseRecordConstructor(t *testing.T) {
	prog, sink := parseSrc(t, "type Point:\n    Make{x: int, y: int}\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	td := prog.Decls[0].(*ast.TypeDecl)
	ctor := td.Type.Constructors[0]
	if ctor.Kind != ast.RecordConstructorKind {
		t.Fatalf("expected a record constructor, got kind %v", ctor.Kind)
	}
	if len(ctor.FieldNames) != 2 || ctor.FieldNames[0] != "x" || ctor.FieldNames[1] != "y" {
		t.Errorf("unexpected field names: %v", ctor.FieldNames)
	}
}

func TestParseImportDecl(t *testing.T) {
	prog, sink := parseSrc(t, "import std.io\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	imp, ok := prog.Decls[0].(*ast.ImportDecl)
	if !ok {
		t.Fatalf("expected *ast.ImportDecl, got %T", prog.Decls[0])
	}
	if imp.Name != "std.io" {
		t.Errorf("import name = %q, want %q", imp.Name, "std.io")
	}
}

func TestParseNamespaceDecl(t *testing.T) {
	prog, sink := parseSrc(t, "namespace quantum:\n    def h() -> void:\n        pass\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	nd, ok := prog.Decls[0].(*ast.NamespaceDecl)
	if !ok {
		t.Fatalf("expected *ast.NamespaceDecl, got %T", prog.Decls[0])
	}
	if nd.Name != "quantum" {
		t.Errorf("namespace name = %q, want %q", nd.Name, "quantum")
	}
	if len(nd.Decls) != 1 {
		t.Fatalf("expected 1 nested decl, got %d", len(nd.Decls))
	}
}

func TestParseBinaryExpressionPrecedence(t *testing.T) {
	prog, sink := parseSrc(t, "def f() -> int:\n    return 1 + 2 * 3\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	fd := prog.Decls[0].(*ast.FunctionDecl)
	ret := fd.Function.Body.Stmts[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level *ast.Binary, got %T", ret.Value)
	}
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level op to be OpAdd (lowest precedence binds loosest), got %v", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected right-hand side to be a OpMul binary, got %T", bin.Right)
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "def f(x: int) -> int:\n" +
		"    if x == 0:\n" +
		"        return 0\n" +
		"    elif x == 1:\n" +
		"        return 1\n" +
		"    else:\n" +
		"        return 2\n"
	prog, sink := parseSrc(t, src)
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	fd := prog.Decls[0].(*ast.FunctionDecl)
	ifs, ok := fd.Function.Body.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", fd.Function.Body.Stmts[0])
	}
	if len(ifs.Clauses) != 2 {
		t.Fatalf("expected 2 clauses (if + elif), got %d", len(ifs.Clauses))
	}
	if ifs.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParseWhileBreakContinue(t *testing.T) {
	src := "def f() -> void:\n" +
		"    while true:\n" +
		"        break\n"
	prog, sink := parseSrc(t, src)
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	fd := prog.Decls[0].(*ast.FunctionDecl)
	ws, ok := fd.Function.Body.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", fd.Function.Body.Stmts[0])
	}
	if _, ok := ws.Body.Stmts[0].(*ast.BreakStmt); !ok {
		t.Errorf("expected a BreakStmt inside the while body, got %T", ws.Body.Stmts[0])
	}
}

func TestParseCallExpression(t *testing.T) {
	prog, sink := parseSrc(t, "def f() -> int:\n    return g(1, 2)\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	fd := prog.Decls[0].(*ast.FunctionDecl)
	ret := fd.Function.Body.Stmts[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", ret.Value)
	}
	if call.Name != "g" || len(call.Args) != 2 {
		t.Errorf("unexpected call: name=%q args=%d", call.Name, len(call.Args))
	}
}

func TestParseListLiteral(t *testing.T) {
	prog, sink := parseSrc(t, "def f() -> void:\n    var xs: [int] = [1, 2, 3]\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	fd := prog.Decls[0].(*ast.FunctionDecl)
	vs, ok := fd.Function.Body.Stmts[0].(*ast.VarDeclStmt)
	if !ok {
		t.Fatalf("expected *ast.VarDeclStmt, got %T", fd.Function.Body.Stmts[0])
	}
	lst, ok := vs.Variable.Init.(*ast.List)
	if !ok {
		t.Fatalf("expected *ast.List init, got %T", vs.Variable.Init)
	}
	if len(lst.Elements) != 3 {
		t.Errorf("expected 3 elements, got %d", len(lst.Elements))
	}
}

func TestParseMutableVsImmutableVar(t *testing.T) {
	prog, sink := parseSrc(t, "def f() -> void:\n    var m: int = 1\n    val c: int = 2\n")
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
	fd := prog.Decls[0].(*ast.FunctionDecl)
	mutable := fd.Function.Body.Stmts[0].(*ast.VarDeclStmt)
	immutable := fd.Function.Body.Stmts[1].(*ast.VarDeclStmt)
	if !mutable.Variable.Mutable {
		t.Error("expected `var` to produce a mutable variable")
	}
	if immutable.Variable.Mutable {
		t.Error("expected `val` to produce an immutable variable")
	}
}

func TestParseMissingColonReportsPAR001(t *testing.T) {
	_, sink := parseSrc(t, "def f() -> int\n    return 1\n")
	if !sink.Failed() {
		t.Fatal("expected a parse error for a missing colon")
	}
	found := false
	for _, e := range sink.Errors {
		if e.Code == "PAR001" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected PAR001 among %v", sink.Errors)
	}
}
