package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nodelang.dev/nodec/internal/utils"
)

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	m := utils.NewOrderedMap[string, int]()
	m.Set("c", 3)
	m.Set("a", 1)
	m.Set("b", 2)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
	assert.True(t, m.Has("b"))
}

func TestOrderedMapOverwriteKeepsPosition(t *testing.T) {
	m := utils.NewOrderedMap[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 99)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, 99, v)
}
