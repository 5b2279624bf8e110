package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodelang.dev/nodec/pkg/types"
)

func TestArrayRoundTrip(t *testing.T) {
	shape := types.Array(types.Int, 3)
	assert.Equal(t, "[int; 3]", shape)
	assert.True(t, types.IsArray(shape))

	elem, n, err := types.Decompose(shape)
	require.NoError(t, err)
	assert.Equal(t, types.Int, elem)
	assert.Equal(t, 3, n)
}

func TestDecomposeRejectsNonPositiveSize(t *testing.T) {
	_, _, err := types.Decompose("[int; 0]")
	assert.Error(t, err)
}

func TestDecomposeRejectsPrimitive(t *testing.T) {
	_, _, err := types.Decompose(types.Int)
	assert.Error(t, err)
}

func TestStorageSizePrimitives(t *testing.T) {
	size, err := types.StorageSize(types.Int)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), size)

	size, err = types.StorageSize(types.Char)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), size)
}

func TestStorageSizeNestedArray(t *testing.T) {
	shape := types.Array(types.Array(types.Int, 4), 3)
	size, err := types.StorageSize(shape)
	require.NoError(t, err)
	assert.Equal(t, uint32(4*4*3), size)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, types.IsNumeric(types.Int))
	assert.True(t, types.IsNumeric(types.Float))
	assert.False(t, types.IsNumeric(types.Bool))
	assert.True(t, types.IsNumeric(types.Char))
}
