// Package evaluator defines the boundary between the semantic
// front-end and program execution. Evaluating a checked, cleaned
// program — running its entry function against concrete argument
// values — is out of scope for this front-end; only the interface the
// driver invokes against lives here.
package evaluator

import "github.com/avalon-lang/avalon/internal/ast"

// Evaluator runs a program's entry function with the given
// command-line arguments and reports its exit status.
type Evaluator interface {
	Run(entry *ast.Function, args []string) (exitCode int, err error)
}

// Unavailable is the Evaluator the driver falls back to when no
// execution backend is wired in: every Run call fails, since this
// front-end stops at a fully checked and cleaned program.
type Unavailable struct{}

func (Unavailable) Run(entry *ast.Function, args []string) (int, error) {
	return 1, errNotImplemented
}

var errNotImplemented = evaluatorError("evaluation is not implemented by this front-end")

type evaluatorError string

func (e evaluatorError) Error() string { return string(e) }
