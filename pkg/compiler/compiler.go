// Package compiler wires the whole pipeline of spec.md §2 together —
// lex, parse, lower, analyze, emit — and writes its outputs to the
// comp/ directory, a stage-by-stage handler sequence modeled on
// _examples/its-hmny-nand2tetris/code/cmd/jack_compiler/main.go's
// Handler, simplified to the single-source-file CLI contract of
// spec.md §6.
package compiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/codegen"
	"nodelang.dev/nodec/pkg/lexer"
	"nodelang.dev/nodec/pkg/ll1"
	"nodelang.dev/nodec/pkg/sema"
)

// OutputDir is the fixed opaque byte-sink directory spec.md §2 treats
// as an external collaborator: "the filesystem layout under comp/".
const OutputDir = "comp"

// CompileFile runs the full pipeline over the source file at path and
// writes comp/<node>.k plus comp/graph.json. It returns the node names
// written, in compilation order, for a caller that wants to report
// progress.
func CompileFile(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open input file: %w", err)
	}

	program, err := Compile(string(src))
	if err != nil {
		return nil, err
	}

	return WriteOutputs(program)
}

// CompiledProgram bundles the sema result and emitted bytecode for
// every node, ready to be written out or inspected by a test.
type CompiledProgram struct {
	AST    *ast.Program
	Result *sema.Result
	Nodes  map[string][]byte
}

// Compile runs lex -> parse -> lower -> analyze -> emit over source
// text, short-circuiting at the first failing stage (spec.md §7:
// "every error is surfaced immediately as fatal; no stage attempts
// local recovery").
func Compile(source string) (*CompiledProgram, error) {
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("unable to complete 'lexing' pass: %w", err)
	}

	tree, err := ll1.New(tokens).Parse()
	if err != nil {
		return nil, fmt.Errorf("unable to complete 'parsing' pass: %w", err)
	}

	program, err := ast.Lower(tree)
	if err != nil {
		return nil, fmt.Errorf("unable to complete 'lowering' pass: %w", err)
	}

	result, err := sema.Analyze(program)
	if err != nil {
		return nil, fmt.Errorf("unable to complete 'analysis' pass: %w", err)
	}

	nodes, err := codegen.Emit(result.Table)
	if err != nil {
		return nil, fmt.Errorf("unable to complete 'codegen' pass: %w", err)
	}

	return &CompiledProgram{AST: program, Result: result, Nodes: nodes}, nil
}

// WriteOutputs ensures comp/ exists, then writes one comp/<node>.k per
// compiled node plus a single comp/graph.json (spec.md §6). Writes are
// not transactional, matching spec.md §5's note that a crash mid-write
// leaves a partial file.
func WriteOutputs(program *CompiledProgram) ([]string, error) {
	if err := os.MkdirAll(OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	written := make([]string, 0, len(program.Nodes))
	for _, name := range program.Result.Table.Nodes.Keys() {
		body, ok := program.Nodes[name]
		if !ok {
			continue
		}
		dest := filepath.Join(OutputDir, name+".k")
		if err := os.WriteFile(dest, body, 0o644); err != nil {
			return nil, fmt.Errorf("unable to write %s: %w", dest, err)
		}
		written = append(written, name)
	}

	graph, err := json.Marshal(program.Result.Deps)
	if err != nil {
		return nil, fmt.Errorf("unable to encode dependency graph: %w", err)
	}
	graphPath := filepath.Join(OutputDir, "graph.json")
	if err := os.WriteFile(graphPath, graph, 0o644); err != nil {
		return nil, fmt.Errorf("unable to write %s: %w", graphPath, err)
	}

	return written, nil
}
