package ast

import (
	"testing"

	"github.com/avalon-lang/avalon/internal/token"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// tokAt builds distinct positions so two structurally identical trees
// never share a Token by accident — a real test of structural (not
// pointer- or position-based) comparison.
func tokAt(line int) token.Token {
	return token.New(token.IDENTIFIER, "x", "a.avl", line, 1)
}

func TestTypeInstanceStructuralEqualityIgnoresPosition(t *testing.T) {
	left := NewUserInstance(tokAt(1), "Maybe", []*TypeInstance{
		NewUserInstance(tokAt(2), "int", nil),
	})
	right := NewUserInstance(tokAt(10), "Maybe", []*TypeInstance{
		NewUserInstance(tokAt(11), "int", nil),
	})

	if diff := cmp.Diff(left, right, cmpopts.IgnoreFields(TypeInstance{}, "base")); diff != "" {
		t.Errorf("expected structurally equal instances (ignoring position), diff (-left +right):\n%s", diff)
	}
}

func TestTypeInstanceStructuralInequalityOnParams(t *testing.T) {
	left := NewUserInstance(tokAt(1), "Maybe", []*TypeInstance{
		NewUserInstance(tokAt(2), "int", nil),
	})
	right := NewUserInstance(tokAt(1), "Maybe", []*TypeInstance{
		NewUserInstance(tokAt(2), "string", nil),
	})

	if diff := cmp.Diff(left, right, cmpopts.IgnoreFields(TypeInstance{}, "base")); diff == "" {
		t.Error("expected a diff between Maybe[int] and Maybe[string], got none")
	}
}

func TestListInstanceStructuralEquality(t *testing.T) {
	left := NewListInstance(tokAt(1), NewUserInstance(tokAt(2), "bool", nil))
	right := NewListInstance(tokAt(5), NewUserInstance(tokAt(6), "bool", nil))

	if diff := cmp.Diff(left, right, cmpopts.IgnoreFields(TypeInstance{}, "base")); diff != "" {
		t.Errorf("expected [bool] to equal [bool] structurally, diff (-left +right):\n%s", diff)
	}
}
