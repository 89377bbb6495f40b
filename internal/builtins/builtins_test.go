package builtins

import "testing"

func TestProgramRegistersPrimitiveAndOptionTypes(t *testing.T) {
	prog := Program()
	for _, name := range []string{"bool", "int", "float", "decimal", "bit", "string", "void", "Option"} {
		if _, ok := prog.Scope.GetType(wildcardNS, name); !ok {
			t.Errorf("expected builtin type %q to be registered", name)
		}
	}
}

func TestProgramRegistersHadOverloadPerQubitWidth(t *testing.T) {
	prog := Program()
	for _, width := range []string{"qubit1", "qubit2", "qubit4", "qubit8"} {
		fns := prog.Scope.GetFunctions(wildcardNS, "__had__")
		found := false
		for _, f := range fns {
			if len(f.Params) == 1 && f.Params[0].Variable.Declared.Name == width && f.Return.Name == width {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a __had__ overload mapping %s -> %s, got %v", width, width, fns)
		}
	}
}

func TestProgramRegistersQubitBitCastPair(t *testing.T) {
	prog := Program()
	casts := prog.Scope.GetFunctions(wildcardNS, "__cast__")
	wantPairs := [][2]string{{"qubit1", "bit"}, {"bit", "qubit1"}}
	for _, pair := range wantPairs {
		found := false
		for _, f := range casts {
			if len(f.Params) == 1 && f.Params[0].Variable.Declared.Name == pair[0] && f.Return.Name == pair[1] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a __cast__ overload %s -> %s, got %v", pair[0], pair[1], casts)
		}
	}
}

func TestProgramRegistersGateStringCastPairs(t *testing.T) {
	prog := Program()
	casts := prog.Scope.GetFunctions(wildcardNS, "__cast__")
	for _, name := range []string{"gate", "cgate"} {
		wantPairs := [][2]string{{name, "string"}, {"string", name}}
		for _, pair := range wantPairs {
			found := false
			for _, f := range casts {
				if len(f.Params) == 1 && f.Params[0].Variable.Declared.Name == pair[0] && f.Return.Name == pair[1] {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected a __cast__ overload %s -> %s, got %v", pair[0], pair[1], casts)
			}
		}
	}
}

func TestProgramRegistersArithmeticOverloadsForIntAndFloat(t *testing.T) {
	prog := Program()
	adds := prog.Scope.GetFunctions(wildcardNS, "__add__")
	if len(adds) < 2 {
		t.Fatalf("expected at least int and float __add__ overloads, got %d", len(adds))
	}
}
