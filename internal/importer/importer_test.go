package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileNoImports(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "main.avl", "def main() -> void:\n    pass\n")

	sink := errors.NewSink()
	imp := New(sink)
	prog, err := imp.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if sink.HasFatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", sink.Errors)
	}
	if prog.State != ast.Visited {
		t.Errorf("State = %v, want Visited", prog.State)
	}
	if fns := prog.Scope.GetFunctions(wildcardNS, "main"); len(fns) != 1 {
		t.Errorf("main should resolve uniquely in the program's own scope, got %d candidates", len(fns))
	}
}

func TestLoadFileMergesBuiltins(t *testing.T) {
	dir := t.TempDir()
	path := writeModule(t, dir, "main.avl", "def main() -> void:\n    pass\n")

	sink := errors.NewSink()
	imp := New(sink)
	prog, err := imp.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if _, ok := prog.Scope.GetType(wildcardNS, "int"); !ok {
		t.Error("builtin type int should be visible after load")
	}
	if fns := prog.Scope.GetFunctions(wildcardNS, "__add__"); len(fns) == 0 {
		t.Error("builtin __add__ should be visible after load")
	}
}

func TestLoadDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.avl", "import b\ndef fa() -> void:\n    pass\n")
	writeModule(t, dir, "b.avl", "import a\ndef fb() -> void:\n    pass\n")

	sink := errors.NewSink()
	imp := New(sink)
	imp.searchPaths = []string{dir}

	_, err := imp.LoadFile(filepath.Join(dir, "a.avl"))
	if err == nil {
		t.Fatal("expected a cyclic-import error")
	}
	rep, ok := errors.AsReport(err)
	if !ok {
		t.Fatalf("expected a *Report-backed error, got %v", err)
	}
	if rep.Code != "IMP002" {
		t.Errorf("Code = %s, want IMP002", rep.Code)
	}
}

func TestLoadMissingImportReportsIMP001(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main.avl", "import nope\ndef main() -> void:\n    pass\n")

	sink := errors.NewSink()
	imp := New(sink)
	imp.searchPaths = []string{dir}

	if _, err := imp.LoadFile(filepath.Join(dir, "main.avl")); err == nil {
		t.Fatal("expected an error for a missing import")
	}
	found := false
	for _, e := range sink.Errors {
		if e.Code == "IMP001" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected IMP001 in sink, got %v", sink.Errors)
	}
}

func TestMergePublicSkipsPrivateDecls(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "lib.avl",
		"def pub() -> void:\n    pass\nprivate def priv() -> void:\n    pass\n")
	writeModule(t, dir, "main.avl",
		"import lib\ndef main() -> void:\n    pass\n")

	sink := errors.NewSink()
	imp := New(sink)
	imp.searchPaths = []string{dir}

	prog, err := imp.LoadFile(filepath.Join(dir, "main.avl"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if fns := prog.Scope.GetFunctions(wildcardNS, "pub"); len(fns) == 0 {
		t.Error("public function from import should be visible")
	}
	if fns := prog.Scope.GetFunctions(wildcardNS, "priv"); len(fns) != 0 {
		t.Error("private function from import should not be visible")
	}
}

func TestSameArityOverloadExists(t *testing.T) {
	bi := builtinsProgram()
	adds := bi.Scope.GetFunctions(wildcardNS, "__add__")
	if len(adds) < 2 {
		t.Fatalf("expected multiple __add__ overloads, got %d", len(adds))
	}
	// An overload identical in shape to an existing one collides.
	if !sameArityOverloadExists(adds, adds[0]) {
		t.Error("identical function should report as a collision")
	}
	noParams := &ast.Function{}
	if sameArityOverloadExists(nil, noParams) {
		t.Error("empty candidate list should never collide")
	}
}

func TestLoadFileTransitiveImportChain(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "c.avl", "def fc() -> void:\n    pass\n")
	writeModule(t, dir, "b.avl", "import c\ndef fb() -> void:\n    pass\n")
	writeModule(t, dir, "a.avl", "import b\ndef fa() -> void:\n    pass\n")

	sink := errors.NewSink()
	imp := New(sink)
	imp.searchPaths = []string{dir}

	prog, err := imp.LoadFile(filepath.Join(dir, "a.avl"))
	require.NoError(t, err, "LoadFile should succeed over a transitive import chain")
	assert.False(t, sink.HasFatal(), "unexpected fatal diagnostics: %v", sink.Errors)

	table := imp.Table()
	require.NotNil(t, table, "expected a populated global table after loading")
	assert.Len(t, table.Order(), 4, "expected the builtins program plus a, b, and c all loaded into the global table")
	assert.Equal(t, ast.Visited, prog.State, "root program should finish in the Visited state")
}

func TestLoadMissingImportErrorIsReportBacked(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main.avl", "import nope\ndef main() -> void:\n    pass\n")

	sink := errors.NewSink()
	imp := New(sink)
	imp.searchPaths = []string{dir}

	_, err := imp.LoadFile(filepath.Join(dir, "main.avl"))
	require.Error(t, err)

	rep, ok := errors.AsReport(err)
	require.True(t, ok, "expected a *Report-backed error")
	assert.Equal(t, "IMP001", rep.Code)
	assert.True(t, rep.Fatal, "a missing import should be fatal")
}
