// Package errors provides centralized error code definitions for the
// Avalon semantic front-end. All error codes follow a consistent
// taxonomy so diagnostics stay greppable across phases.
package errors

// Error code constants organized by phase. Each constant represents a
// specific error condition reported by exactly one stage of the
// pipeline.
const (
	// ============================================================
	// Lex errors (LEX###)
	// ============================================================

	// LEX001 indicates a malformed token (bad escape, bad number literal).
	LEX001 = "LEX001"
	// LEX002 indicates inconsistent indentation (mixed tabs/spaces, or a
	// non-multiple of the file's first observed indent).
	LEX002 = "LEX002"
	// LEX003 indicates an unterminated string literal.
	LEX003 = "LEX003"
	// LEX004 indicates an unterminated block comment.
	LEX004 = "LEX004"
	// LEX005 indicates a newline embedded in a string literal.
	LEX005 = "LEX005"

	// ============================================================
	// Parse errors (PAR###)
	// ============================================================

	// PAR001 indicates an unexpected token.
	PAR001 = "PAR001"
	// PAR002 indicates a malformed declaration.
	PAR002 = "PAR002"

	// ============================================================
	// Import errors (IMP###)
	// ============================================================

	// IMP001 indicates the imported module's file could not be found.
	IMP001 = "IMP001"
	// IMP002 indicates a cyclic dependency between modules.
	IMP002 = "IMP002"
	// IMP003 indicates a parse failure in a dependency.
	IMP003 = "IMP003"
	// IMP004 indicates a reference to an unknown FQN.
	IMP004 = "IMP004"
	// IMP005 indicates an overload collision on import.
	IMP005 = "IMP005"

	// ============================================================
	// Type errors (TYP###)
	// ============================================================

	// TYP001 indicates a reference to an unknown type.
	TYP001 = "TYP001"
	// TYP002 indicates a type instance used with the wrong arity.
	TYP002 = "TYP002"
	// TYP003 indicates two type instances that must agree do not: a
	// constraint bound to two different concrete types, if-expression
	// branches or match arms of different types, list elements or map
	// entries of different types, or an initializer or assigned value
	// whose type differs from the variable's.
	TYP003 = "TYP003"
	// TYP004 indicates a visibility violation (private type used from
	// outside its declaring namespace).
	TYP004 = "TYP004"
	// TYP005 indicates a forbidden parameter shape (quantum type as a
	// plain parameter, mutable string/tuple/list/map parameter).
	TYP005 = "TYP005"

	// ============================================================
	// Function errors (FUN###)
	// ============================================================

	// FUN001 indicates no candidate function matched a call site.
	FUN001 = "FUN001"
	// FUN002 indicates an ambiguous match among candidate functions.
	FUN002 = "FUN002"
	// FUN003 indicates a constraint mapped to two different concrete
	// heads during specialization.
	FUN003 = "FUN003"
	// FUN004 indicates the resolved function's return shape does not
	// match the expected return type instance.
	FUN004 = "FUN004"
	// FUN005 indicates the program has no function named __main__ with
	// the required entry shape (args: [string]) -> void.
	FUN005 = "FUN005"

	// ============================================================
	// Statement errors (STM###)
	// ============================================================

	// STM001 indicates a non-boolean loop/conditional condition.
	STM001 = "STM001"
	// STM002 indicates break/continue outside of a loop.
	STM002 = "STM002"
	// STM003 indicates a pass statement with sibling declarations.
	STM003 = "STM003"
	// STM004 indicates a non-void function missing a return on some path.
	STM004 = "STM004"
	// STM005 indicates the type of a returned expression does not match
	// the function's declared return type.
	STM005 = "STM005"
	// STM006 indicates a statement declared at module scope, outside any
	// function.
	STM006 = "STM006"

	// ============================================================
	// Variable errors (VAR###)
	// ============================================================

	// VAR001 indicates a redeclaration of an existing name.
	VAR001 = "VAR001"
	// VAR002 indicates use of a variable before it was initialized.
	VAR002 = "VAR002"
	// VAR003 indicates an assignment to an immutable variable.
	VAR003 = "VAR003"
	// VAR004 indicates a reference to a name with no variable binding
	// visible from the use site.
	VAR004 = "VAR004"
	// VAR005 indicates a local variable whose used flag never became
	// true; reported as a warning by the cleaner, not a fatal error.
	VAR005 = "VAR005"
)

// Info describes an error code for tooling and documentation.
type Info struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps every error code to its descriptive information.
var Registry = map[string]Info{
	LEX001: {LEX001, "lex", "syntax", "Malformed token"},
	LEX002: {LEX002, "lex", "indentation", "Inconsistent indentation"},
	LEX003: {LEX003, "lex", "syntax", "Unterminated string"},
	LEX004: {LEX004, "lex", "syntax", "Unterminated comment"},
	LEX005: {LEX005, "lex", "syntax", "Newline in string literal"},

	PAR001: {PAR001, "parse", "syntax", "Unexpected token"},
	PAR002: {PAR002, "parse", "syntax", "Malformed declaration"},

	IMP001: {IMP001, "import", "resolution", "Module file not found"},
	IMP002: {IMP002, "import", "dependency", "Cyclic dependency"},
	IMP003: {IMP003, "import", "resolution", "Parse failure in dependency"},
	IMP004: {IMP004, "import", "resolution", "Unknown FQN"},
	IMP005: {IMP005, "import", "namespace", "Symbol collision on import"},

	TYP001: {TYP001, "type", "scope", "Unknown type"},
	TYP002: {TYP002, "type", "arity", "Wrong arity"},
	TYP003: {TYP003, "type", "constraint", "Constraint binding conflict"},
	TYP004: {TYP004, "type", "visibility", "Visibility violation"},
	TYP005: {TYP005, "type", "shape", "Forbidden parameter shape"},

	FUN001: {FUN001, "function", "resolution", "No matching candidate"},
	FUN002: {FUN002, "function", "resolution", "Ambiguous match"},
	FUN003: {FUN003, "function", "specialization", "Recursive specialization conflict"},
	FUN004: {FUN004, "function", "shape", "Wrong return shape"},
	FUN005: {FUN005, "function", "entry", "Entry function not found"},

	STM001: {STM001, "statement", "control-flow", "Non-boolean condition"},
	STM002: {STM002, "statement", "control-flow", "break/continue outside loop"},
	STM003: {STM003, "statement", "control-flow", "pass with siblings"},
	STM004: {STM004, "statement", "control-flow", "Missing return"},
	STM005: {STM005, "statement", "type", "Returned expression type mismatch"},
	STM006: {STM006, "statement", "scope", "Statement at module scope"},

	VAR001: {VAR001, "variable", "scope", "Redeclaration"},
	VAR002: {VAR002, "variable", "scope", "Use before initialization"},
	VAR003: {VAR003, "variable", "mutability", "Assignment to immutable"},
	VAR004: {VAR004, "variable", "scope", "Undeclared variable"},
	VAR005: {VAR005, "variable", "usage", "Unused local variable"},
}

// GetInfo returns information about an error code.
func GetInfo(code string) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}

// IsFatalPhase reports whether diagnostics in the given phase are
// fatal by default. Lex, parse and import phases are; an individual
// report can still be recoverable (the importer reports IMP005 as
// non-fatal), so Report.Fatal is what decides.
func IsFatalPhase(phase string) bool {
	switch phase {
	case "lex", "parse", "import":
		return true
	default:
		return false
	}
}
