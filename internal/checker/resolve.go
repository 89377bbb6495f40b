package checker

import (
	"fmt"

	"github.com/avalon-lang/avalon/internal/ast"
	"github.com/avalon-lang/avalon/internal/errors"
	"github.com/avalon-lang/avalon/internal/token"
)

// resolveCall is the function resolver: it weighs every same-arity
// overload visible from scope against the actual argument types,
// picking the highest-scoring unambiguous candidate. expectedReturn,
// when non-nil, additionally constrains the pick to a candidate whose
// return type instance weakly matches it. Only a cast passes one (its
// target type); calls and operators pass nil.
func (c *Checker) resolveCall(scope *ast.Scope, ns, name string, argTypes []*ast.TypeInstance, expectedReturn *ast.TypeInstance, at token.Token) (*ast.Function, error) {
	candidates := scope.GetFunctions(ns, name)

	type scored struct {
		fn     *ast.Function
		weight int
	}
	var matches []scored
	for _, f := range candidates {
		if f.Arity() != len(argTypes) {
			continue
		}
		formals := f.ParamTypes()
		total := 0
		ok := true
		for i, actual := range argTypes {
			w := ast.Weight(formals[i], actual)
			if w == 0 {
				ok = false
				break
			}
			total += w
		}
		if !ok {
			continue
		}
		matches = append(matches, scored{f, total})
	}

	if len(matches) == 0 {
		c.sink.Error(errors.New("FUN001", "function",
			fmt.Sprintf("no candidate function %q matches the given arguments", name),
			errors.Pos{File: at.File, Line: at.Line, Column: at.Column}, false))
		return nil, errUnresolved
	}

	// Winners are every candidate tied at the max argument-weight sum.
	// Only once that tier is fixed does the expected-return filter
	// apply — a candidate with a better-matching return but a worse
	// argument match must never beat a heavier-weighted candidate that
	// then gets filtered out by return type.
	maxWeight := matches[0].weight
	for _, m := range matches[1:] {
		if m.weight > maxWeight {
			maxWeight = m.weight
		}
	}
	var winners []*ast.Function
	for _, m := range matches {
		if m.weight == maxWeight {
			winners = append(winners, m.fn)
		}
	}

	if expectedReturn != nil {
		var filtered []*ast.Function
		for _, fn := range winners {
			if ast.WeakCompare(fn.Return, expectedReturn) {
				filtered = append(filtered, fn)
			}
		}
		winners = filtered
	}

	if len(winners) == 0 {
		c.sink.Error(errors.New("FUN001", "function",
			fmt.Sprintf("no candidate function %q matches the given arguments", name),
			errors.Pos{File: at.File, Line: at.Line, Column: at.Column}, false))
		return nil, errUnresolved
	}
	if len(winners) > 1 {
		c.sink.Error(errors.New("FUN002", "function",
			fmt.Sprintf("call to %q is ambiguous among %d equally good candidates", name, len(winners)),
			errors.Pos{File: at.File, Line: at.Line, Column: at.Column}, false))
		return nil, errUnresolved
	}
	return winners[0], nil
}
