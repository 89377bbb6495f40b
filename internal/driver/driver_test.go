package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/evaluator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvaluator struct {
	called bool
	entry  *ast.Function
	args   []string
}

func (r *recordingEvaluator) Run(entry *ast.Function, args []string) (int, error) {
	r.called = true
	r.entry = entry
	r.args = args
	return 0, nil
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.avl")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileCleanProgramHasNoErrors(t *testing.T) {
	path := writeSource(t, "def __main__(args: [string]) -> void:\n    pass\n")
	d := New(nil)
	root, err := d.Compile(path)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if d.Sink.Failed() {
		t.Fatalf("unexpected errors: %v", d.Sink.Errors)
	}
	if root.Entry == nil {
		t.Fatal("expected entry function to be located")
	}
}

func TestRunInvokesEvaluatorOnSuccess(t *testing.T) {
	path := writeSource(t, "def __main__(args: [string]) -> void:\n    pass\n")
	ev := &recordingEvaluator{}
	d := New(ev)
	code := d.Run(path, []string{"a", "b"})
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !ev.called {
		t.Error("expected evaluator to be invoked")
	}
	if len(ev.args) != 2 || ev.args[0] != "a" || ev.args[1] != "b" {
		t.Errorf("args = %v, want [a b]", ev.args)
	}
}

func TestRunReturnsNonZeroWithoutEvaluator(t *testing.T) {
	path := writeSource(t, "def __main__(args: [string]) -> void:\n    pass\n")
	d := New(nil)
	code := d.Run(path, nil)
	if code != 1 {
		t.Errorf("exit code = %d, want 1 when no evaluator is wired", code)
	}
}

func TestRunReturnsNonZeroOnCheckerError(t *testing.T) {
	path := writeSource(t, "def __main__(args: [string]) -> void:\n    var y: int = x\n")
	d := New(nil)
	code := d.Run(path, nil)
	if code != 1 {
		t.Errorf("exit code = %d, want 1 on a checker error", code)
	}
	if !d.Sink.Failed() {
		t.Error("expected sink to record the undeclared-variable error")
	}
}

func TestRunReturnsNonZeroWhenEntryMissing(t *testing.T) {
	path := writeSource(t, "def helper() -> void:\n    pass\n")
	d := New(nil)
	code := d.Run(path, nil)
	if code != 1 {
		t.Errorf("exit code = %d, want 1 when no entry function is found", code)
	}
}

func TestDumpGlobalTableListsExportsAndImports(t *testing.T) {
	path := writeSource(t, "def __main__(args: [string]) -> void:\n    pass\ndef helper() -> int:\n    return 1\n")
	d := New(nil)
	if _, err := d.Compile(path); err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	var buf bytes.Buffer
	d.DumpGlobalTable(&buf)
	out := buf.String()
	if !strings.Contains(out, "def __main__") || !strings.Contains(out, "def helper") {
		t.Errorf("dump missing expected exports: %s", out)
	}
}

func TestCompileThenRunIsASingleConsistentPipeline(t *testing.T) {
	path := writeSource(t, "def __main__(args: [string]) -> void:\n    pass\n")
	ev := &recordingEvaluator{}
	d := New(ev)

	root, err := d.Compile(path)
	require.NoError(t, err, "Compile should succeed on a clean program")
	require.NotNil(t, root.Entry, "expected the entry function to be located during Compile")
	assert.False(t, d.Sink.Failed(), "unexpected diagnostics: %v", d.Sink.Errors)

	code := d.Run(path, []string{"x"})
	assert.Equal(t, 0, code, "Run should exit 0 once Compile and the evaluator both succeed")
	assert.True(t, ev.called, "expected Run to invoke the evaluator")
	assert.Equal(t, []string{"x"}, ev.args)
}

func TestCompileFailsOnMissingImport(t *testing.T) {
	path := writeSource(t, "import nope\ndef __main__(args: [string]) -> void:\n    pass\n")
	d := New(nil)

	_, err := d.Compile(path)
	require.Error(t, err, "expected Compile to fail when an import cannot be resolved")
	assert.True(t, d.Sink.HasFatal(), "a missing import should be recorded as a fatal diagnostic")
}

func TestRunReturnsNonZeroOnMissingImport(t *testing.T) {
	path := writeSource(t, "import nope\ndef __main__(args: [string]) -> void:\n    pass\n")
	d := New(nil)

	code := d.Run(path, nil)
	assert.Equal(t, 1, code)
}
