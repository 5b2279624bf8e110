// Package symtab implements the two-level symbol table of spec.md §3:
// node_name -> function_name -> FunctionEntry. Keying is grounded on
// _examples/original_source/src/source.rs's scope-qualified string
// keys ("node::fn::var"); the entry shape is grounded on
// _examples/its-hmny-nand2tetris/code/pkg/jack/jack.go's Subroutine
// (return type, ordered params, statements).
package symtab

import (
	"fmt"

	"nodelang.dev/nodec/pkg/ast"
	"nodelang.dev/nodec/internal/utils"
)

// Local describes one local variable or constant discovered in a
// function body (spec.md §3: "locals: set of (name, Type)").
type Local struct {
	Name      string
	Type      string
	IsConst   bool
	IsParam   bool
}

// FunctionEntry is spec.md §3's per-function record. Return is ""
// for void (types.Void) and "!" for non-returning (types.NoReturn).
type FunctionEntry struct {
	Node   string
	Name   string
	Return string
	Params []ast.Param
	Locals utils.OrderedMap[string, Local]
	Body   []ast.Stmt
}

// ParamTypes returns the ordered parameter type list, used for call
// signature matching (spec.md §4.3 Pass 4).
func (f *FunctionEntry) ParamTypes() []string {
	types := make([]string, len(f.Params))
	for i, p := range f.Params {
		types[i] = p.Type
	}
	return types
}

// Table is the whole-program symbol table, keyed first by node name.
type Table struct {
	Nodes utils.OrderedMap[string, *NodeEntry]
}

// NodeEntry holds the functions declared inside one node.
type NodeEntry struct {
	Name      string
	DependsOn []string
	Functions utils.OrderedMap[string, *FunctionEntry]
}

// New returns an empty Table.
func New() *Table {
	t := &Table{Nodes: utils.NewOrderedMap[string, *NodeEntry]()}
	return t
}

// Lookup resolves (node, function) to its entry.
func (t *Table) Lookup(node, function string) (*FunctionEntry, bool) {
	n, ok := t.Nodes.Get(node)
	if !ok {
		return nil, false
	}
	return n.Functions.Get(function)
}

// LookupAny resolves a bare function name against every node in the
// flat, cross-node function namespace spec.md §9 describes. Returns an
// error if more than one node defines a function with that name — the
// grammar has no way to qualify a call by node, so a genuine ambiguity
// is a program error, not a resolver bug.
func (t *Table) LookupAny(function string) (*FunctionEntry, error) {
	var found *FunctionEntry
	for _, nodeName := range t.Nodes.Keys() {
		node, _ := t.Nodes.Get(nodeName)
		if fn, ok := node.Functions.Get(function); ok {
			if found != nil {
				return nil, fmt.Errorf("function %q is ambiguous across nodes %q and %q", function, found.Node, fn.Node)
			}
			found = fn
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no function named %q is declared in any node", function)
	}
	return found, nil
}
