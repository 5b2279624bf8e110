package sema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/lexer"
	"nodelang.dev/nodec/pkg/ll1"
	"nodelang.dev/nodec/pkg/sema"
)

func lower(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(source).Tokenize()
	require.NoError(t, err)
	tree, err := ll1.New(tokens).Parse()
	require.NoError(t, err)
	program, err := ast.Lower(tree)
	require.NoError(t, err)
	return program
}

func analyze(t *testing.T, source string) (*sema.Result, error) {
	t.Helper()
	return sema.Analyze(lower(t, source))
}

func TestAnalyzeValidPrograms(t *testing.T) {
	t.Run("returning function", func(t *testing.T) {
		result, err := analyze(t, `node A { fn main() -> int { return 1 + 2 * 3; } }`)
		require.NoError(t, err)
		assert.Equal(t, []string{}, result.Deps["A"])
	})

	t.Run("cross-node call", func(t *testing.T) {
		_, err := analyze(t, `
			node A { export fn add(a: int, b: int) -> int { return a + b; } }
			node B: A { fn main() -> int { return add(1, 2); } }
		`)
		require.NoError(t, err)
	})

	t.Run("non-returning function must start with a while loop", func(t *testing.T) {
		_, err := analyze(t, `
			node A {
				fn main() -> ! {
					while true {
						println();
					}
				}
			}
		`)
		require.NoError(t, err)
	})
}

func asDiagnostic(t *testing.T, err error) *sema.Diagnostic {
	t.Helper()
	var diag *sema.Diagnostic
	require.True(t, errors.As(err, &diag), "expected *sema.Diagnostic, got %T: %v", err, err)
	return diag
}

func TestAnalyzeRejectsDuplicateNode(t *testing.T) {
	_, err := analyze(t, `node A { fn main() -> () { } } node A { fn main() -> () { } }`)
	require.Error(t, err)
	assert.Equal(t, sema.DuplicateNode, asDiagnostic(t, err).Code)
}

func TestAnalyzeRejectsShadowing(t *testing.T) {
	_, err := analyze(t, `
		node A {
			fn main() -> () {
				var x: int = 1;
				var x: int = 2;
			}
		}
	`)
	require.Error(t, err)
	assert.Equal(t, sema.DuplicateLocalOrConst, asDiagnostic(t, err).Code)
}

func TestAnalyzeRejectsUnknownIdentifier(t *testing.T) {
	_, err := analyze(t, `node A { fn main() -> int { return y; } }`)
	require.Error(t, err)
	assert.Equal(t, sema.UnknownIdentifier, asDiagnostic(t, err).Code)
}

func TestAnalyzeRejectsAssignTypeMismatch(t *testing.T) {
	_, err := analyze(t, `
		node A {
			fn main() -> () {
				var x: int = 1;
				x = true;
			}
		}
	`)
	require.Error(t, err)
	assert.Equal(t, sema.TypeMismatchAssign, asDiagnostic(t, err).Code)
}

func TestAnalyzeRejectsMissingReturn(t *testing.T) {
	_, err := analyze(t, `node A { fn main() -> int { var x: int = 1; } }`)
	require.Error(t, err)
	assert.Equal(t, sema.MissingReturn, asDiagnostic(t, err).Code)
}

func TestAnalyzeRejectsReturnValueInVoid(t *testing.T) {
	_, err := analyze(t, `node A { fn main() -> () { return 1; } }`)
	require.Error(t, err)
	assert.Equal(t, sema.ReturnValueInVoid, asDiagnostic(t, err).Code)
}

func TestAnalyzeRejectsCallSignatureMismatch(t *testing.T) {
	_, err := analyze(t, `
		node A {
			export fn add(a: int, b: int) -> int { return a + b; }
			fn main() -> int { return add(1); }
		}
	`)
	require.Error(t, err)
	assert.Equal(t, sema.CallSignatureMismatch, asDiagnostic(t, err).Code)
}

func TestAnalyzeRejectsHeterogeneousArray(t *testing.T) {
	_, err := analyze(t, `
		node A {
			fn main() -> () {
				var xs: [int; 2] = [1, true];
			}
		}
	`)
	require.Error(t, err)
	assert.Equal(t, sema.HeterogeneousArray, asDiagnostic(t, err).Code)
}
