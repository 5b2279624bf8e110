package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/lexer"
	"nodelang.dev/nodec/pkg/ll1"
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

func TestLowerSimpleReturn(t *testing.T) {
	program := lower(t, `node A { fn main() -> int { return 1 + 2 * 3; } }`)

	require.Len(t, program.Nodes, 1)
	node := program.Nodes[0]
	assert.Equal(t, "A", node.Name)
	require.Len(t, node.Functions, 1)

	fn := node.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, "int", fn.Return)
	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(ast.ReturnValue)
	require.True(t, ok)

	add, ok := ret.Expr.(ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)

	lhs, ok := add.Lhs.(ast.Integer)
	require.True(t, ok)
	assert.Equal(t, int32(1), lhs.Value)

	mul, ok := add.Rhs.(ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
}

// TestLeftAssociativity exercises property 2 of spec.md's testable
// properties: `a OP b OP c` parses as `((a OP b) OP c)` for every
// operator in the same precedence class, verified here for `-`.
func TestLeftAssociativity(t *testing.T) {
	program := lower(t, `node A { fn main() -> int { return 1 - 2 - 3; } }`)

	fn := program.Nodes[0].Functions[0]
	ret := fn.Body[0].(ast.ReturnValue)

	outer, ok := ret.Expr.(ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, outer.Op)

	inner, ok := outer.Lhs.(ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.OpSub, inner.Op)

	innerLhs, ok := inner.Lhs.(ast.Integer)
	require.True(t, ok)
	assert.Equal(t, int32(1), innerLhs.Value)

	innerRhs, ok := inner.Rhs.(ast.Integer)
	require.True(t, ok)
	assert.Equal(t, int32(2), innerRhs.Value)

	outerRhs, ok := outer.Rhs.(ast.Integer)
	require.True(t, ok)
	assert.Equal(t, int32(3), outerRhs.Value)
}

func TestLowerNodeDependencies(t *testing.T) {
	program := lower(t, `
		node A { fn main() -> () { } }
		node B: A { fn main() -> () { } }
	`)

	require.Len(t, program.Nodes, 2)
	assert.Equal(t, []string{"A"}, program.Nodes[1].DependsOn)
}

func TestLowerArrayLiteralAndIndex(t *testing.T) {
	program := lower(t, `
		node A {
			fn main() -> () {
				var xs: [int; 3] = [1, 2, 3];
				xs[0] = 9;
			}
		}
	`)

	fn := program.Nodes[0].Functions[0]
	decl := fn.Body[0].(ast.DeclareVar)
	assert.Equal(t, "[int; 3]", decl.Type)

	lit, ok := decl.Init.(ast.ArrayLit)
	require.True(t, ok)
	require.Len(t, lit.Elems, 3)

	assign := fn.Body[1].(ast.Assign)
	assert.Equal(t, "xs", assign.Name)
	require.Len(t, assign.Indices, 1)
}
