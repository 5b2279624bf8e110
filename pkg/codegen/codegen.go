// Package codegen implements the per-node bytecode emitter of spec.md
// §4.4: address assignment for locals and parameters, a two-phase
// preamble (allocation, then parameter binding) ahead of a function's
// body, forward-call fixups, structured control flow via patched
// jumps, and array lowering. The address-cursor-and-fixup-list design
// is grounded on
// _examples/its-hmny-nand2tetris/code/pkg/hack/codegen.go's "allocate
// on first reference, patch forward jumps at the end" pattern, adapted
// from Hack assembly symbols to this language's stack-machine opcodes.
package codegen

import (
	"fmt"

	"nodelang.dev/nodec/pkg/bytecode"
	"nodelang.dev/nodec/pkg/symtab"
)

type pendingCall struct {
	offset uint32
	name   string
}

// localVar is one entry of codegen state (c): variable_name -> (Type, addr).
type localVar struct {
	Type string
	Addr uint32
}

// funcState carries per-function codegen state (b)-(e) of spec.md §3's
// "Codegen state (per node)" note, scoped down to one function.
type funcState struct {
	buf     *bytecode.Buffer
	vars    map[string]localVar
	offsets map[string]uint32 // (b) function_name -> byte offset, shared across the whole node
	pending *[]pendingCall    // (d) pending-call list, shared across the whole node
	table   *symtab.Table     // whole-program table, for resolving cross-node calls
}

// Emit runs codegen over every node in table, returning the raw binary
// body for each (spec.md §6: "raw binary, big-endian multi-byte
// fields... No header or footer").
func Emit(table *symtab.Table) (map[string][]byte, error) {
	out := make(map[string][]byte, table.Nodes.Len())
	for _, name := range table.Nodes.Keys() {
		node, _ := table.Nodes.Get(name)
		body, err := emitNode(table, node)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		out[name] = body
	}
	return out, nil
}

func emitNode(table *symtab.Table, node *symtab.NodeEntry) ([]byte, error) {
	buf := &bytecode.Buffer{}
	offsets := map[string]uint32{}
	var pending []pendingCall

	order := orderedFunctionNames(node)
	for _, name := range order {
		fn, _ := node.Functions.Get(name)
		offsets[name] = buf.Len()
		fs := &funcState{buf: buf, vars: map[string]localVar{}, offsets: offsets, pending: &pending, table: table}
		if err := emitFunction(fs, fn); err != nil {
			return nil, fmt.Errorf("function %q: %w", name, err)
		}
	}

	emitBuiltinStubs(buf, offsets)

	// A callee declared in another node is emitted into this file too, so
	// every call fixup targets an offset in the same file.
	for i := 0; i < len(pending); i++ {
		name := pending[i].name
		if _, ok := offsets[name]; ok {
			continue
		}
		fn, err := table.LookupAny(name)
		if err != nil {
			return nil, err
		}
		offsets[name] = buf.Len()
		fs := &funcState{buf: buf, vars: map[string]localVar{}, offsets: offsets, pending: &pending, table: table}
		if err := emitFunction(fs, fn); err != nil {
			return nil, fmt.Errorf("function %q: %w", name, err)
		}
	}

	for _, pc := range pending {
		target, ok := offsets[pc.name]
		if !ok {
			return nil, fmt.Errorf("call to undefined function %q", pc.name)
		}
		buf.PatchU32(pc.offset, target)
	}

	return buf.Bytes(), nil
}

// orderedFunctionNames puts "main" first (its preamble and body must be
// the node's entry point at offset 0, per spec.md §4.4 (a)-(c)), then
// every other function in the node's declaration order, which our
// utils.OrderedMap-backed symtab already preserves in place of the
// "arbitrary map-iteration order" spec.md (d) permits.
func orderedFunctionNames(node *symtab.NodeEntry) []string {
	names := node.Functions.Keys()
	ordered := make([]string, 0, len(names))
	if node.Functions.Has("main") {
		ordered = append(ordered, "main")
	}
	for _, n := range names {
		if n != "main" {
			ordered = append(ordered, n)
		}
	}
	return ordered
}
