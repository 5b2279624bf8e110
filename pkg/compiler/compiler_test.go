package compiler_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodelang.dev/nodec/pkg/compiler"
)

func TestCompileFileWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "program.node")
	require.NoError(t, os.WriteFile(source, []byte(`
		node A { export fn helper() -> int { return 42; } }
		node B: A { fn main() -> int { return helper(); } }
	`), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(cwd)

	written, err := compiler.CompileFile(source)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, written)

	for _, name := range written {
		body, err := os.ReadFile(filepath.Join(compiler.OutputDir, name+".k"))
		require.NoError(t, err)
		assert.NotEmpty(t, body)
	}

	graphBytes, err := os.ReadFile(filepath.Join(compiler.OutputDir, "graph.json"))
	require.NoError(t, err)

	var graph map[string][]string
	require.NoError(t, json.Unmarshal(graphBytes, &graph))
	assert.Equal(t, []string{"A"}, graph["B"])
	assert.Empty(t, graph["A"])
}

func TestCompileRejectsUnknownIdentifier(t *testing.T) {
	_, err := compiler.Compile(`node A { fn main() -> int { return y; } }`)
	assert.Error(t, err)
}
