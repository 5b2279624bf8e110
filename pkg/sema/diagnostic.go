// Package sema implements the semantic analyzer of spec.md §4.3: symbol
// table seeding, node-dependency-graph extraction, scope/shadowing
// resolution, type checking, and return-path checking. The scope-stack
// design is grounded on _examples/its-hmny-nand2tetris/code/pkg/jack/scopes.go's
// ScopeTable (built on internal/utils.Stack[T]) and on the marker
// vocabulary of _examples/original_source/src/source.rs's ScopeElem
// enum (NodeScope/FuncScope/IfScope/WhileScope/ElseScope/Variable/
// Const/Func) — unlike the teacher's scopes.go, this package enforces
// strict no-shadowing as spec.md and source.rs's check_semantics do,
// not the teacher's shadow-by-override behavior.
package sema

import "fmt"

// Code is one of the 23 stable small integers spec.md §4.3/§7 assigns
// to semantic failure causes, so a CLI can map a Diagnostic to a fixed
// message or exit code.
type Code int

const (
	DuplicateNode Code = iota + 1
	DuplicateFunction
	DuplicateParameter
	DuplicateLocalOrConst
	UnknownIdentifier
	UnknownFunction
	AssignToNonVariable
	CallToNonFunction
	TypeMismatchDeclare
	TypeMismatchAssign
	TypeMismatchOperand
	TypeMismatchComparison
	TypeMismatchBoolean
	NonIntegerIndex
	CallSignatureMismatch
	HeterogeneousArray
	MalformedArrayType
	MissingReturn
	ReturnValueInVoid
	ReturnInNonReturning
	NoReturnMissingLoop
	IOError
	DuplicateDependency
)

var codeNames = map[Code]string{
	DuplicateNode:          "duplicate node declaration",
	DuplicateFunction:      "duplicate function declaration",
	DuplicateParameter:     "duplicate parameter name",
	DuplicateLocalOrConst:  "name already declared in an enclosing scope",
	UnknownIdentifier:      "unknown identifier",
	UnknownFunction:        "unknown function",
	AssignToNonVariable:    "assignment target is not a variable",
	CallToNonFunction:      "call target is not a function",
	TypeMismatchDeclare:    "declared type does not match initializer type",
	TypeMismatchAssign:     "assignment type mismatch",
	TypeMismatchOperand:    "operand type mismatch",
	TypeMismatchComparison: "comparison operand type mismatch",
	TypeMismatchBoolean:    "boolean operand is not of type bool",
	NonIntegerIndex:        "array index is not of type int",
	CallSignatureMismatch:  "no function matches the given call signature",
	HeterogeneousArray:     "array literal elements do not share a common type",
	MalformedArrayType:     "malformed array type",
	MissingReturn:          "function body has no return value of the declared type",
	ReturnValueInVoid:      "return with a value inside a void function",
	ReturnInNonReturning:   "return statement inside a non-returning ('!') function",
	NoReturnMissingLoop:    "non-returning ('!') function body must begin with a while loop",
	IOError:                "I/O error",
	DuplicateDependency:    "duplicate node dependency",
}

// Diagnostic is a fatal semantic error (spec.md §7: "every error is
// surfaced immediately as fatal; no stage attempts local recovery").
type Diagnostic struct {
	Code    Code
	Context string
}

func (d *Diagnostic) Error() string {
	name := codeNames[d.Code]
	if d.Context == "" {
		return fmt.Sprintf("[E%03d] %s", d.Code, name)
	}
	return fmt.Sprintf("[E%03d] %s: %s", d.Code, name, d.Context)
}

func fail(code Code, format string, args ...any) error {
	return &Diagnostic{Code: code, Context: fmt.Sprintf(format, args...)}
}
