package cleaner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/checker"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/importer"
)

func load(t *testing.T, src string) (*ast.Program, *ast.GlobalTable, *errors.Sink) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.avl")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	sink := errors.NewSink()
	imp := importer.New(sink)
	prog, err := imp.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	checker.New(sink).CheckProgram(prog)
	if sink.Failed() {
		t.Fatalf("unexpected checker errors: %v", sink.Errors)
	}
	return prog, imp.Table(), sink
}

func hasWarn(sink *errors.Sink, code string) bool {
	for _, w := range sink.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func hasErr(sink *errors.Sink, code string) bool {
	for _, e := range sink.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestCleanFlagsUnusedLocal(t *testing.T) {
	prog, table, sink := load(t, "def __main__(args: [string]) -> void:\n    var unused: int = 1\n    pass\n")
	Clean(prog, table, sink)
	if !hasWarn(sink, "VAR005") {
		t.Errorf("expected VAR005 warning, got %v", sink.Warnings)
	}
}

func TestCleanDoesNotFlagUsedLocal(t *testing.T) {
	prog, table, sink := load(t, "def __main__(args: [string]) -> void:\n    var n: int = 1\n    var m: int = n\n    pass\n")
	Clean(prog, table, sink)
	if hasWarn(sink, "VAR005") {
		t.Errorf("did not expect VAR005, got %v", sink.Warnings)
	}
}

func TestCleanFindsEntryFunction(t *testing.T) {
	prog, table, sink := load(t, "def __main__(args: [string]) -> void:\n    pass\n")
	Clean(prog, table, sink)
	if prog.Entry == nil {
		t.Fatal("expected root.Entry to be set")
	}
	if !prog.Entry.IsEntry {
		t.Error("expected entry function's IsEntry flag to be set")
	}
	if hasErr(sink, "FUN005") {
		t.Errorf("did not expect FUN005, got %v", sink.Errors)
	}
}

func TestCleanReportsMissingEntry(t *testing.T) {
	prog, table, sink := load(t, "def helper() -> void:\n    pass\n")
	Clean(prog, table, sink)
	if !hasErr(sink, "FUN005") {
		t.Errorf("expected FUN005, got %v", sink.Errors)
	}
}

func TestCleanRejectsWrongEntryShape(t *testing.T) {
	prog, table, sink := load(t, "def __main__(args: int) -> void:\n    pass\n")
	Clean(prog, table, sink)
	if !hasErr(sink, "FUN005") {
		t.Errorf("expected FUN005 for a malformed entry signature, got %v", sink.Errors)
	}
}

func TestCleanRejectsModuleScopeStatement(t *testing.T) {
	prog, table, sink := load(t, "def __main__(args: [string]) -> void:\n    pass\nprintln(\"hi\")\n")
	Clean(prog, table, sink)
	if !hasErr(sink, "STM006") {
		t.Errorf("expected STM006, got %v", sink.Errors)
	}
}

func TestCleanSweepsSpecializationsOfUsedGenericFunction(t *testing.T) {
	prog, table, sink := load(t, "def identity[T](x: T) -> T:\n    var shadow: int = 0\n    return x\n"+
		"def __main__(args: [string]) -> void:\n    identity(1)\n    pass\n")
	Clean(prog, table, sink)
	if !hasWarn(sink, "VAR005") {
		t.Errorf("expected VAR005 from the identity[int] specialization's unused local, got %v", sink.Warnings)
	}
}

func TestCleanSweepsUnusedLocalInsideNamespace(t *testing.T) {
	prog, table, sink := load(t, "namespace quantum:\n    def f() -> void:\n        var unused: int = 1\n        pass\n"+
		"def __main__(args: [string]) -> void:\n    quantum::f()\n    pass\n")
	Clean(prog, table, sink)
	if !hasWarn(sink, "VAR005") {
		t.Errorf("expected VAR005 from the namespaced function's unused local, got %v", sink.Warnings)
	}
}

func TestCleanRejectsStatementInsideNamespace(t *testing.T) {
	prog, table, sink := load(t, "namespace quantum:\n    def f() -> void:\n        pass\n    println(\"hi\")\n"+
		"def __main__(args: [string]) -> void:\n    pass\n")
	Clean(prog, table, sink)
	if !hasErr(sink, "STM006") {
		t.Errorf("expected STM006 for a bare statement inside a namespace block, got %v", sink.Errors)
	}
}
