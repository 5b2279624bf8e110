package sema

import (
	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/pkg/symtab"
)

// Result bundles everything later stages (pkg/codegen, pkg/compiler)
// need: the fully-seeded symbol table and the node dependency graph.
type Result struct {
	Table *symtab.Table
	Deps  DepGraph
}

// Analyze runs the five passes of spec.md §4.3 in order, short-
// circuiting on the first Diagnostic returned (spec.md §7: no stage
// attempts local recovery).
func Analyze(program *ast.Program) (*Result, error) {
	table, err := seed(program)
	if err != nil {
		return nil, err
	}

	deps, err := buildDepGraph(program)
	if err != nil {
		return nil, err
	}

	if err := resolveScopes(table); err != nil {
		return nil, err
	}

	if err := checkTypes(table); err != nil {
		return nil, err
	}

	if err := checkReturns(table); err != nil {
		return nil, err
	}

	return &Result{Table: table, Deps: deps}, nil
}
