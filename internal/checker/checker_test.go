package checker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/importer"
)

// loadProgram writes src to a temp file and runs it through the
// importer, giving checker tests a fully scope-populated ast.Program
// (builtins merged) the same way the driver would hand one off.
func loadProgram(t *testing.T, sink *errors.Sink, src string) *ast.Program {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.avl")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	imp := importer.New(sink)
	prog, err := imp.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	return prog
}

func hasCode(sink *errors.Sink, code string) bool {
	for _, e := range sink.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestCheckProgramSimpleFunctionReturnsCleanly(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def add(a: int, b: int) -> int:\n    return a + b\n")

	New(sink).CheckProgram(prog)
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}

	fns := prog.Scope.GetFunctions(wildcardNS, "add")
	if len(fns) != 1 {
		t.Fatalf("expected exactly one add, got %d", len(fns))
	}
	ret := fns[0].Body.Stmts[0].(*ast.ReturnStmt)
	rt := ret.Value.ExprType()
	if rt == nil || rt.Name != "int" {
		t.Errorf("return expression type = %v, want int", rt)
	}
	bin := ret.Value.(*ast.Binary)
	if bin.Desugared == nil || bin.Desugared.ResolvedFunction == nil {
		t.Error("binary + should desugar to a resolved __add__ call")
	}
}

func TestCheckProgramMissingReturnReportsSTM004(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f() -> int:\n    pass\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "STM004") {
		t.Errorf("expected STM004, got %v", sink.Errors)
	}
}

func TestCheckProgramReturnOnEveryBranchIsClean(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f(x: bool) -> int:\n    if x:\n        return 1\n    else:\n        return 2\n")

	New(sink).CheckProgram(prog)
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
}

func TestCheckProgramUndeclaredVariableReportsVAR004(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f() -> void:\n    var y: int = x\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "VAR004") {
		t.Errorf("expected VAR004, got %v", sink.Errors)
	}
}

func TestCheckProgramAssignToImmutableReportsVAR003(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f() -> void:\n    val x: int = 1\n    x = 2\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "VAR003") {
		t.Errorf("expected VAR003, got %v", sink.Errors)
	}
}

func TestCheckProgramBreakOutsideLoopReportsSTM002(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f() -> void:\n    break\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "STM002") {
		t.Errorf("expected STM002, got %v", sink.Errors)
	}
}

func TestCheckProgramBreakInsideLoopIsClean(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f() -> void:\n    while true:\n        break\n")

	New(sink).CheckProgram(prog)
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}
}

func TestCheckProgramNonBoolConditionReportsSTM001(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f() -> void:\n    if 1:\n        pass\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "STM001") {
		t.Errorf("expected STM001, got %v", sink.Errors)
	}
}

func TestCheckProgramQuantumPlainParamReportsTYP005(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f(q: qubit1) -> void:\n    pass\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "TYP005") {
		t.Errorf("expected TYP005, got %v", sink.Errors)
	}
}

func TestCheckProgramQuantumRefParamIsAllowed(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f(q: ref qubit1) -> void:\n    pass\n")

	New(sink).CheckProgram(prog)
	if hasCode(sink, "TYP005") {
		t.Errorf("ref qubit1 parameter should be allowed, got %v", sink.Errors)
	}
}

func TestCheckProgramMutableListParamReportsTYP005(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f(xs: ref [int]) -> void:\n    pass\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "TYP005") {
		t.Errorf("expected TYP005 for a ref list parameter, got %v", sink.Errors)
	}
}

func TestCheckProgramUnknownTypeReportsTYP001(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def f(x: Nope) -> void:\n    pass\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "TYP001") {
		t.Errorf("expected TYP001, got %v", sink.Errors)
	}
}

func TestCheckProgramGenericSpecializationIsCachedPerConcreteType(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "def identity[T](x: T) -> T:\n    return x\n"+
		"def main() -> void:\n    var a: int = identity(1)\n    var b: int = identity(2)\n    var s: string = identity(\"hi\")\n")

	New(sink).CheckProgram(prog)
	if sink.Failed() {
		t.Fatalf("unexpected errors: %v", sink.Errors)
	}

	fns := prog.Scope.GetFunctions(wildcardNS, "identity")
	if len(fns) != 1 {
		t.Fatalf("expected exactly one identity declaration, got %d", len(fns))
	}
	specs := fns[0].Specializations
	if len(specs) != 2 {
		t.Errorf("expected 2 cached specializations (int, string), got %d: %v", len(specs), specs)
	}
}

func TestCheckProgramPublicFunctionWithPrivateTypeReportsTYP004(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "private type Secret:\n    Box(int)\ndef f(s: Secret) -> void:\n    pass\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "TYP004") {
		t.Errorf("expected TYP004, got %v", sink.Errors)
	}
}

func TestCheckProgramMixedTypeEqualityReportsFUN001(t *testing.T) {
	sink := errors.NewSink()
	// int's __eq__ and bool's __eq__ each require both operands of
	// their own type; comparing across the two matches neither
	// overload.
	prog := loadProgram(t, sink, "def f() -> void:\n    var b: bool = 1 == true\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "FUN001") {
		t.Errorf("expected FUN001 for a mixed-type equality comparison, got %v", sink.Errors)
	}
}

func TestCheckProgramChecksFunctionBodyInsideNamespace(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "namespace quantum:\n    def f() -> void:\n        var y: int = x\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "VAR004") {
		t.Errorf("expected VAR004 for an undeclared variable inside a namespace body, got %v", sink.Errors)
	}
}

func TestCheckProgramRejectsUnknownTypeInsideNamespace(t *testing.T) {
	sink := errors.NewSink()
	prog := loadProgram(t, sink, "namespace quantum:\n    def f(x: Nope) -> void:\n        pass\n")

	New(sink).CheckProgram(prog)
	if !hasCode(sink, "TYP001") {
		t.Errorf("expected TYP001 for an unknown parameter type inside a namespace header, got %v", sink.Errors)
	}
}
